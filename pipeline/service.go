package pipeline

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/analytics-go"

	"github.com/lakeload/lakeload/destinations"
	"github.com/lakeload/lakeload/partition"
	"github.com/lakeload/lakeload/table"
	"github.com/lakeload/lakeload/utils"
)

var (
	logger = utils.LakeLogger("pipeline")
)

// Run executes one full pipeline pass for a canonical processing date:
// locate, read, normalize, write, validate. Read and write are retried
// with their configured fixed-delay budgets; locate, normalize and
// validate failures are fatal immediately.
func (p *Pipeline) Run(date string) (Status, error) {
	startTime := time.Now()
	status := Status{RunID: uuid.New().String(), Date: date}

	logger.Info().Str("run_id", status.RunID).Str("date", date).Msg("starting run")
	utils.PrometheusRunsStarted.WithLabelValues(date).Inc()
	utils.TrackEvent(p.config.Telemetry, "run_started", analytics.NewProperties().
		Set("date", date))

	err := p.run(date, &status)
	status.Duration = time.Since(startTime)

	if err != nil {
		utils.PrometheusRunsFailed.WithLabelValues(date).Inc()
		utils.TrackEvent(p.config.Telemetry, "run_failed", analytics.NewProperties().
			Set("date", date).
			Set("error", err.Error()))
		logger.Error().
			Str("run_id", status.RunID).
			Str("err", err.Error()).
			Msg("run failed")
		p.publish(status, "failed")
		return status, err
	}

	utils.PrometheusRunsFinished.WithLabelValues(date).Inc()
	utils.PrometheusRowsWritten.WithLabelValues(date).Set(float64(status.Rows))
	utils.PrometheusPartitionsWritten.WithLabelValues(date).Set(float64(status.Partitions))
	utils.PrometheusLastRunDuration.WithLabelValues(date).Set(status.Duration.Seconds())
	utils.TrackEvent(p.config.Telemetry, "run_completed", analytics.NewProperties().
		Set("date", date).
		Set("rows", status.Rows).
		Set("partitions", status.Partitions).
		Set("duration_seconds", status.Duration.Seconds()))

	logger.Info().
		Str("run_id", status.RunID).
		Int("rows", status.Rows).
		Int("partitions", status.Partitions).
		Str("duration", status.Duration.Round(time.Millisecond).String()).
		Msg("run completed")

	p.publish(status, "completed")
	return status, nil
}

func (p *Pipeline) run(date string, status *Status) error {
	sourcePath, err := Locate(p.config.InputDir, p.config.FilenamePattern, date)
	if err != nil {
		return err
	}
	status.SourcePath = sourcePath
	logger.Info().Str("path", sourcePath).Msg("located source file")

	var raw table.Table
	err = utils.TryWithFixedBackoff(p.config.ReadAttempts, p.config.ReadDelay, func() error {
		t, readErr := p.reader.Read(sourcePath)
		if readErr != nil {
			return readErr
		}
		raw = t
		return nil
	}, func(attempt int, tryErr error) {
		utils.PrometheusStepFailedRetry.WithLabelValues(date, "read").Inc()
		logger.Warn().Int("attempt", attempt).Str("err", tryErr.Error()).Msg("read attempt failed")
	})
	if err != nil {
		return fmt.Errorf("read step: %w", err)
	}

	normalized := table.Normalize(raw, p.config.Columns)
	raw = table.Table{}
	status.Rows = normalized.NumRows()

	outputDir := filepath.Join(p.config.OutputDir, strings.ReplaceAll(date, "-", ""))
	status.OutputDir = outputDir

	err = utils.TryWithFixedBackoff(p.config.WriteAttempts, p.config.WriteDelay, func() error {
		n, writeErr := partition.Write(normalized, outputDir, p.config.ChunkSize, p.config.Compression)
		if writeErr != nil {
			return writeErr
		}
		status.Partitions = n
		return nil
	}, func(attempt int, tryErr error) {
		utils.PrometheusStepFailedRetry.WithLabelValues(date, "write").Inc()
		logger.Warn().Int("attempt", attempt).Str("err", tryErr.Error()).Msg("write attempt failed")
	})
	if err != nil {
		return fmt.Errorf("write step: %w", err)
	}

	result, err := partition.Validate(outputDir, p.config.Columns)
	if err != nil {
		return fmt.Errorf("validate step: %w", err)
	}
	if !result.Valid() {
		return fmt.Errorf("validate step: schema invalid, missing columns: %s",
			strings.Join(result.Missing, ","))
	}

	return nil
}

// publish hands the run record to the configured destinations. Destination
// failures are reported but never change the run outcome.
func (p *Pipeline) publish(status Status, outcome string) {
	record := destinations.RunRecord{
		RunID:      status.RunID,
		Date:       status.Date,
		OutputDir:  status.OutputDir,
		Rows:       status.Rows,
		Partitions: status.Partitions,
		Duration:   status.Duration,
		Outcome:    outcome,
	}
	for _, dest := range p.destinations {
		if err := dest.Publish(record); err != nil {
			logger.Warn().
				Str("destination", dest.Name()).
				Str("err", err.Error()).
				Msg("destination publish failed")
		}
	}
}
