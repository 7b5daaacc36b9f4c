package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/skirmish/config"
)

// OutputManager handles structured match output with CSV logging.
type OutputManager struct {
	dir         string
	roundsFile  *os.File
	summaryFile *os.File

	// Track if headers have been written
	roundsHeaderWritten bool
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	f, err := os.Create(filepath.Join(dir, "rounds.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating rounds.csv: %w", err)
	}
	om.roundsFile = f

	f, err = os.Create(filepath.Join(dir, "summary.csv"))
	if err != nil {
		om.roundsFile.Close()
		return nil, fmt.Errorf("creating summary.csv: %w", err)
	}
	om.summaryFile = f

	return om, nil
}

// Dir returns the output directory.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// WriteConfig saves the effective configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteRound appends one round's records to rounds.csv.
func (om *OutputManager) WriteRound(records []RoundStats) error {
	if om == nil || len(records) == 0 {
		return nil
	}

	if !om.roundsHeaderWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, om.roundsFile); err != nil {
			return fmt.Errorf("writing rounds: %w", err)
		}
		om.roundsHeaderWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, om.roundsFile); err != nil {
		return fmt.Errorf("writing rounds: %w", err)
	}
	return nil
}

// WriteSummary replaces summary.csv with the given summaries.
func (om *OutputManager) WriteSummary(summaries []Summary) error {
	if om == nil {
		return nil
	}
	if err := om.summaryFile.Truncate(0); err != nil {
		return fmt.Errorf("truncating summary: %w", err)
	}
	if _, err := om.summaryFile.Seek(0, 0); err != nil {
		return fmt.Errorf("rewinding summary: %w", err)
	}
	if err := gocsv.Marshal(summaries, om.summaryFile); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}
	return nil
}

// Close closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error
	for _, f := range []*os.File{om.roundsFile, om.summaryFile} {
		if f == nil {
			continue
		}
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
