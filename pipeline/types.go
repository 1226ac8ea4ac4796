package pipeline

import (
	"time"

	"github.com/lakeload/lakeload/destinations"
	"github.com/lakeload/lakeload/table"
	"github.com/lakeload/lakeload/utils"
)

type Config struct {
	InputDir        string
	FilenamePattern string
	OutputDir       string
	ChunkSize       int
	Compression     string
	Columns         []string

	ReadAttempts  int
	ReadDelay     time.Duration
	WriteAttempts int
	WriteDelay    time.Duration

	Telemetry utils.Telemetry
}

// SourceReader produces a table from one gzip-compressed source file.
// Satisfied by reader.Reader.
type SourceReader interface {
	Read(path string) (table.Table, error)
}

type Pipeline struct {
	config       Config
	reader       SourceReader
	destinations []destinations.Destination
}

func NewPipeline(config Config, r SourceReader, dests []destinations.Destination) *Pipeline {
	return &Pipeline{
		config:       config,
		reader:       r,
		destinations: dests,
	}
}
