package destinations

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/storage"
	"google.golang.org/api/googleapi"
)

type BigQueryConfig struct {
	ProjectId  string
	DatasetId  string
	TableId    string
	BucketName string
}

func NewBigQuery(config BigQueryConfig) BigQuery {
	return BigQuery{config: config}
}

// BigQuery uploads the written partitions to a cloud bucket and appends
// them to a table with a parquet load job.
type BigQuery struct {
	config BigQueryConfig
}

func (b *BigQuery) Name() string {
	return "big_query"
}

func (b *BigQuery) Publish(record RunRecord) error {
	if record.Outcome != "completed" || record.Partitions == 0 {
		return nil
	}

	parts, err := filepath.Glob(filepath.Join(record.OutputDir, "part-*.parquet"))
	if err != nil {
		return err
	}
	if len(parts) == 0 {
		return fmt.Errorf("no partitions to publish in %s", record.OutputDir)
	}
	sort.Strings(parts)

	prefix := fmt.Sprintf("lakeload/%s", record.Date)
	for _, part := range parts {
		object := fmt.Sprintf("%s/%s", prefix, filepath.Base(part))
		if err := b.uploadCloudBucket(object, part); err != nil {
			return fmt.Errorf("upload %s: %w", object, err)
		}
		logger.Debug().Str("object", object).Msg("uploaded partition")
	}

	uri := fmt.Sprintf("gs://%s/%s/part-*.parquet", b.config.BucketName, prefix)
	if err := b.importParquet(uri); err != nil {
		return fmt.Errorf("load job for %s: %w", uri, err)
	}

	logger.Info().
		Str("table", fmt.Sprintf("%s.%s", b.config.DatasetId, b.config.TableId)).
		Int("partitions", len(parts)).
		Msg("published partitions to BigQuery")
	return nil
}

func (b *BigQuery) uploadCloudBucket(object, path string) error {
	ctx := context.Background()
	client, err := storage.NewClient(ctx)
	if err != nil {
		return fmt.Errorf("storage.NewClient: %w", err)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(ctx, time.Second*900)
	defer cancel()

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	wc := client.Bucket(b.config.BucketName).Object(object).NewWriter(ctx)
	if _, err = io.Copy(wc, f); err != nil {
		return fmt.Errorf("io.Copy: %w", err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("Writer.Close: %w", err)
	}

	return nil
}

func (b *BigQuery) importParquet(uri string) error {
	ctx := context.Background()
	client, err := bigquery.NewClient(ctx, b.config.ProjectId)
	if err != nil {
		return fmt.Errorf("bigquery.NewClient: %w", err)
	}
	defer client.Close()

	gcsRef := bigquery.NewGCSReference(uri)
	gcsRef.SourceFormat = bigquery.Parquet
	loader := client.Dataset(b.config.DatasetId).Table(b.config.TableId).LoaderFrom(gcsRef)
	loader.WriteDisposition = bigquery.WriteAppend

	job, err := loader.Run(ctx)
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && apiErr.Code == 404 {
			return fmt.Errorf("dataset or table does not exist: %w", err)
		}
		return err
	}
	status, err := job.Wait(ctx)
	if err != nil {
		return err
	}
	if status.Err() != nil {
		return fmt.Errorf("job completed with error: %v", status.Err())
	}
	return nil
}
