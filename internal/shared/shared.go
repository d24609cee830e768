package shared

import (
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// State holds the runtime configuration snapshot built from viper at startup.
var State = simulatorState{}

type simulatorState struct {
	Port              int           // Port is the listen port of the HTTP adapter.
	Debug             bool          // Debug enables verbose logging.
	BruteForceCeiling int           // BruteForceCeiling bounds brute-force max length.
	WordlistPath      string        // WordlistPath is an optional extra dictionary file.
	AIAPIURL          string        // AIAPIURL is the endpoint of the external guesser.
	AIAPIKey          string        // AIAPIKey authenticates against the external guesser.
	AITimeout         time.Duration // AITimeout bounds the external call.
	SampleCount       int           // SampleCount is how many synthetic targets to precompute.
}

// AIConfigured reports whether the external guesser can be reached at all.
func (s simulatorState) AIConfigured() bool {
	return s.AIAPIKey != ""
}

// Logger is the shared structured logger for all non-test code.
var Logger = log.NewWithOptions(os.Stdout, log.Options{
	Level:           log.InfoLevel,
	ReportTimestamp: true,
})
