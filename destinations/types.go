package destinations

import (
	"time"

	"github.com/lakeload/lakeload/utils"
)

var (
	logger = utils.LakeLogger("destinations")
)

// RunRecord describes one finished pipeline run.
type RunRecord struct {
	RunID      string
	Date       string
	OutputDir  string
	Rows       int
	Partitions int
	Duration   time.Duration
	Outcome    string
}

// Destination receives run records (and, depending on the destination,
// the written partitions) after a pipeline run. Destinations are optional
// collaborators; their failures never change the run outcome.
type Destination interface {
	Name() string
	Publish(record RunRecord) error
}
