package pipeline

import (
	"fmt"
	"time"

	"github.com/lakeload/lakeload/destinations"
	"github.com/lakeload/lakeload/pipeline/reader"
	"github.com/lakeload/lakeload/utils"
)

// SetupPipeline loads the config file and wires the pipeline with its
// reader and optional destinations.
func SetupPipeline(configPath string) (*Pipeline, *utils.Config, error) {
	config, err := utils.LoadConfig(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	r := reader.NewReader(reader.Config{
		BatchSize:   config.Reader.BatchSize,
		SampleRows:  config.Reader.SampleRows,
		TempDir:     config.Reader.TempDir,
		MaxRamBytes: uint64(config.Reader.MaxRamGB) * 1024 * 1024 * 1024,
	})

	var dests []destinations.Destination
	if config.Destinations.Postgres.Enabled {
		postgresDest := destinations.NewPostgres(destinations.PostgresConfig{
			ConnectionUrl: config.Destinations.Postgres.ConnectionURL,
			TableName:     config.Destinations.Postgres.TableName,
		})
		dests = append(dests, &postgresDest)
	}
	if config.Destinations.BigQuery.Enabled {
		bigQueryDest := destinations.NewBigQuery(destinations.BigQueryConfig{
			ProjectId:  config.Destinations.BigQuery.ProjectID,
			DatasetId:  config.Destinations.BigQuery.DatasetID,
			TableId:    config.Destinations.BigQuery.TableID,
			BucketName: config.Destinations.BigQuery.BucketName,
		})
		dests = append(dests, &bigQueryDest)
	}

	pipelineConfig := Config{
		InputDir:        config.Pipeline.InputDir,
		FilenamePattern: config.Pipeline.FilenamePattern,
		OutputDir:       config.Pipeline.OutputDir,
		ChunkSize:       config.Pipeline.ChunkSize,
		Compression:     config.Pipeline.Compression,
		Columns:         config.Pipeline.Columns,
		ReadAttempts:    config.Retry.ReadAttempts,
		ReadDelay:       time.Duration(config.Retry.ReadDelaySeconds) * time.Second,
		WriteAttempts:   config.Retry.WriteAttempts,
		WriteDelay:      time.Duration(config.Retry.WriteDelaySeconds) * time.Second,
		Telemetry:       config.Telemetry,
	}

	return NewPipeline(pipelineConfig, r, dests), config, nil
}
