package destinations

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

type PostgresConfig struct {
	ConnectionUrl string
	TableName     string
}

func NewPostgres(config PostgresConfig) Postgres {
	return Postgres{config: config}
}

// Postgres records one manifest row per pipeline run, giving operators a
// queryable run history.
type Postgres struct {
	config PostgresConfig
}

func (p *Postgres) Name() string {
	return "postgres"
}

func (p *Postgres) Publish(record RunRecord) error {
	db, err := sql.Open("postgres", p.config.ConnectionUrl)
	if err != nil {
		return fmt.Errorf("open postgres connection: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec(p.createTableCommand()); err != nil {
		return fmt.Errorf("ensure manifest table: %w", err)
	}

	stmt := fmt.Sprintf(`
INSERT INTO %s ("run_id", "processing_date", "output_dir", "row_count", "partition_count", "duration_seconds", "outcome")
VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.config.TableName,
	)

	_, err = db.Exec(stmt,
		record.RunID,
		record.Date,
		record.OutputDir,
		record.Rows,
		record.Partitions,
		record.Duration.Seconds(),
		record.Outcome,
	)
	if err != nil {
		return fmt.Errorf("insert manifest row: %w", err)
	}

	logger.Info().Str("table", p.config.TableName).Str("run_id", record.RunID).Msg("recorded run manifest")
	return nil
}

func (p *Postgres) createTableCommand() string {
	return fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
    run_id varchar NOT NULL,
    processing_date varchar NOT NULL,
    output_dir varchar,
    row_count bigint NOT NULL,
    partition_count integer NOT NULL,
    duration_seconds double precision NOT NULL,
    outcome varchar NOT NULL,
    recorded_at timestamp NOT NULL DEFAULT now(),
    PRIMARY KEY (run_id)
    )
    `, p.config.TableName)
}
