package commands

import (
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/spf13/cobra"

	"github.com/lakeload/lakeload/pipeline"
	"github.com/lakeload/lakeload/utils"
)

var (
	cronExpr string
)

func init() {
	scheduleCmd.Flags().StringVar(&configPath, "config", utils.DefaultHomePath, "set custom config path")

	scheduleCmd.Flags().StringVar(&cronExpr, "cron", "0 3 * * *", "cron expression for the supervised run")

	rootCmd.AddCommand(scheduleCmd)
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run a supervised scheduled ingestion, processing the previous day on each tick",
	Run: func(cmd *cobra.Command, args []string) {
		p, config, err := pipeline.SetupPipeline(configPath)
		if err != nil {
			logger.Error().Str("err", err.Error()).Msg("failed to set up pipeline")
			return
		}

		if config.Metrics.Enabled {
			utils.StartPrometheus(config.Metrics.Port)
		}

		scheduler, err := gocron.NewScheduler()
		if err != nil {
			logger.Error().Str("err", err.Error()).Msg("failed to create scheduler")
			return
		}

		_, err = scheduler.NewJob(
			gocron.CronJob(cronExpr, false),
			gocron.NewTask(func() {
				canonical := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
				logger.Info().Str("date", canonical).Msg("scheduled run starting")

				startTime := time.Now().Unix()
				if _, err := p.Run(canonical); err != nil {
					logger.Error().Str("date", canonical).Str("err", err.Error()).Msg("scheduled run failed")
					return
				}
				logger.Info().Str("date", canonical).Int64("seconds", time.Now().Unix()-startTime).Msg("scheduled run finished")
			}),
		)
		if err != nil {
			logger.Error().Str("err", err.Error()).Msg("failed to register job")
			return
		}

		logger.Info().Str("cron", cronExpr).Msg("starting supervised scheduled ingestion")
		scheduler.Start()

		select {}
	},
}
