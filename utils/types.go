package utils

type Config struct {
	Pipeline     Pipeline     `yaml:"pipeline"`
	Reader       Reader       `yaml:"reader"`
	Retry        Retry        `yaml:"retry"`
	Metrics      Metrics      `yaml:"metrics"`
	Telemetry    Telemetry    `yaml:"telemetry"`
	Destinations Destinations `yaml:"destinations"`
	LogLevel     string       `yaml:"log_level"`
}

type Pipeline struct {
	InputDir        string   `yaml:"input_dir"`
	FilenamePattern string   `yaml:"filename_pattern"`
	OutputDir       string   `yaml:"output_dir"`
	ChunkSize       int      `yaml:"chunk_size"`
	Compression     string   `yaml:"compression"`
	Columns         []string `yaml:"columns"`
}

type Reader struct {
	BatchSize  int    `yaml:"batch_size"`
	SampleRows int    `yaml:"sample_rows"`
	TempDir    string `yaml:"temp_dir,omitempty"`
	MaxRamGB   int    `yaml:"max_ram_gb"`
}

type Retry struct {
	ReadAttempts      int `yaml:"read_attempts"`
	ReadDelaySeconds  int `yaml:"read_delay_seconds"`
	WriteAttempts     int `yaml:"write_attempts"`
	WriteDelaySeconds int `yaml:"write_delay_seconds"`
}

type Metrics struct {
	Enabled bool   `yaml:"enabled"`
	Port    string `yaml:"port"`
}

type Telemetry struct {
	Enabled  bool   `yaml:"enabled"`
	WriteKey string `yaml:"write_key,omitempty"`
}

type Destinations struct {
	Postgres PostgresDestination `yaml:"postgres"`
	BigQuery BigQueryDestination `yaml:"big_query"`
}

type PostgresDestination struct {
	Enabled       bool   `yaml:"enabled"`
	ConnectionURL string `yaml:"connection_url,omitempty"`
	TableName     string `yaml:"table_name,omitempty"`
}

type BigQueryDestination struct {
	Enabled    bool   `yaml:"enabled"`
	ProjectID  string `yaml:"project_id,omitempty"`
	DatasetID  string `yaml:"dataset_id,omitempty"`
	TableID    string `yaml:"table_id,omitempty"`
	BucketName string `yaml:"bucket_name,omitempty"`
}
