package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/lakeload/lakeload/pipeline"
	"github.com/lakeload/lakeload/utils"
)

var (
	date string
)

func init() {
	runCmd.Flags().StringVar(&configPath, "config", utils.DefaultHomePath, "set custom config path")

	runCmd.Flags().StringVar(&date, "date", "", "processing date (YYYYMMDD)")
	if err := runCmd.MarkFlagRequired("date"); err != nil {
		panic(fmt.Errorf("flag 'date' should be required: %w", err))
	}

	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the ingestion pipeline for one processing date",
	Run: func(cmd *cobra.Command, args []string) {
		canonical, err := canonicalDate(date)
		if err != nil {
			logger.Error().Str("date", date).Msg("invalid date format, expected YYYYMMDD")
			os.Exit(1)
		}

		p, config, err := pipeline.SetupPipeline(configPath)
		if err != nil {
			logger.Error().Str("err", err.Error()).Msg("failed to set up pipeline")
			os.Exit(1)
		}

		if config.Metrics.Enabled {
			utils.StartPrometheus(config.Metrics.Port)
		}

		status, err := p.Run(canonical)
		if err != nil {
			os.Exit(1)
		}

		logger.Info().Msg(status.String())
	},
}

// canonicalDate validates a compact YYYYMMDD argument and converts it to
// the canonical YYYY-MM-DD form the pipeline expects.
func canonicalDate(arg string) (string, error) {
	parsed, err := time.Parse("20060102", arg)
	if err != nil {
		return "", err
	}
	return parsed.Format("2006-01-02"), nil
}
