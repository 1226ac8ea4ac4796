package reader

import (
	"errors"

	"github.com/lakeload/lakeload/table"
)

// ErrExhausted is returned once every parsing strategy has failed.
var ErrExhausted = errors.New("all read strategies failed")

type Config struct {
	// BatchSize is the number of rows consumed between memory checks.
	BatchSize int
	// SampleRows bounds the leading sample used for column type inference.
	SampleRows int
	// TempDir holds decompression scratch files; empty means the OS default.
	TempDir string
	// MaxRamBytes bounds the heap the reader may fill before it blocks and
	// waits for the GC to catch up.
	MaxRamBytes uint64
}

type Reader struct {
	config Config
}

func NewReader(config Config) Reader {
	if config.BatchSize <= 0 {
		config.BatchSize = 50_000
	}
	if config.SampleRows <= 0 {
		config.SampleRows = 1_000
	}
	if config.MaxRamBytes == 0 {
		config.MaxRamBytes = 8 * 1024 * 1024 * 1024
	}
	return Reader{config: config}
}

// A strategy is one candidate parsing method. Failures are recoverable by
// falling through to the next entry in the cascade.
type strategy struct {
	name string
	run  func(path string) (table.Table, error)
}
