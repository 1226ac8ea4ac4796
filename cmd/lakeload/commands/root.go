package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lakeload/lakeload/utils"
)

var (
	configPath string
	logger     = utils.LakeLogger("cmd")
)

var rootCmd = &cobra.Command{
	Use:           "lakeload",
	Short:         "lakeload",
	SilenceErrors: true,
	SilenceUsage:  true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		panic(fmt.Errorf("failed to execute root command: %w", err))
	}
}
