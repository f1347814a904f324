package journeyui

import (
	"time"

	"github.com/rkapur/pathwise/internal/journey"
)

// stageDoneMsg is sent when a pipeline stage completed successfully.
type stageDoneMsg struct {
	Result *journey.StageResult
}

// stageFailedMsg is sent when a pipeline stage run returned an error.
type stageFailedMsg struct {
	Err error
}

// spinnerTickMsg animates the loading spinner while a stage is in flight.
type spinnerTickMsg time.Time
