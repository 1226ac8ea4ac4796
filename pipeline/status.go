package pipeline

import (
	"fmt"
	"time"
)

type Status struct {
	RunID      string
	Date       string
	SourcePath string
	OutputDir  string
	Rows       int
	Partitions int
	Duration   time.Duration
}

func (s Status) String() string {
	return fmt.Sprintf(
		"Run %s (%s): %d rows in %d partitions -> %s",
		s.RunID,
		s.Date,
		s.Rows,
		s.Partitions,
		s.OutputDir,
	)
}
