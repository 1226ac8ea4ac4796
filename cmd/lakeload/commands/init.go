package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lakeload/lakeload/utils"
)

func init() {
	initCmd.Flags().StringVar(&configPath, "config", utils.DefaultHomePath, "set custom config path")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize lakeload",
	Run: func(cmd *cobra.Command, args []string) {
		if err := utils.InitConfig(configPath); err != nil {
			logger.Error().Msg(err.Error())
			return
		}

		fmt.Println("\nSuccessfully initialized lakeload!")

		fmt.Println("\nEdit the target schema and paths in the config, then run: \n" +
			"\033[32m" +
			"lakeload generate --date 20250115\n" +
			"lakeload run --date 20250115\n" +
			"lakeload schedule --cron \"0 3 * * *\"\n" +
			"\033[0m")
	},
}
