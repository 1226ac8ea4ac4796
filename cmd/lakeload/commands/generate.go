package commands

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/lakeload/lakeload/generator"
	"github.com/lakeload/lakeload/utils"
)

var (
	generateRows int
)

func init() {
	generateCmd.Flags().StringVar(&configPath, "config", utils.DefaultHomePath, "set custom config path")

	generateCmd.Flags().StringVar(&date, "date", "", "processing date (YYYYMMDD)")
	generateCmd.Flags().IntVar(&generateRows, "rows", 10_000, "number of rows to generate")

	rootCmd.AddCommand(generateCmd)
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a synthetic source extract for testing",
	Run: func(cmd *cobra.Command, args []string) {
		if date == "" {
			date = timeNowCompact()
		}
		canonical, err := canonicalDate(date)
		if err != nil {
			logger.Error().Str("date", date).Msg("invalid date format, expected YYYYMMDD")
			os.Exit(1)
		}

		config, err := utils.LoadConfig(configPath)
		if err != nil {
			logger.Error().Str("err", err.Error()).Msg("failed to load config")
			os.Exit(1)
		}

		path, err := generator.Generate(
			config.Pipeline.InputDir,
			config.Pipeline.FilenamePattern,
			canonical,
			config.Pipeline.Columns,
			generateRows,
		)
		if err != nil {
			logger.Error().Str("err", err.Error()).Msg("failed to generate dataset")
			os.Exit(1)
		}

		logger.Info().Str("path", path).Msg("synthetic extract ready")
	},
}

func timeNowCompact() string {
	return time.Now().Format("20060102")
}
