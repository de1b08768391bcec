package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/squash/config"
)

// TraceRow is one entity's state at one tick.
type TraceRow struct {
	Tick     int32   `csv:"tick"`
	EntityID uint32  `csv:"entity"`
	X        float64 `csv:"x"`
	Y        float64 `csv:"y"`
	TargetX  float64 `csv:"target_x"`
	TargetY  float64 `csv:"target_y"`
	Error    float64 `csv:"error"`
	Speed    float64 `csv:"speed"`
	Stretch  float64 `csv:"stretch"`
	Twist    float64 `csv:"twist_deg"`
	Swing    float64 `csv:"swing_deg"`
}

// csvStream is a CSV file that writes its header with the first batch.
type csvStream struct {
	f             *os.File
	headerWritten bool
}

func openStream(dir, name string) (*csvStream, error) {
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", name, err)
	}
	return &csvStream{f: f}, nil
}

func (s *csvStream) write(records any) error {
	if !s.headerWritten {
		if err := gocsv.Marshal(records, s.f); err != nil {
			return err
		}
		s.headerWritten = true
		return nil
	}
	return gocsv.MarshalWithoutHeaders(records, s.f)
}

// OutputManager handles structured experiment output with CSV logging.
type OutputManager struct {
	dir       string
	telemetry *csvStream
	perf      *csvStream
	trace     *csvStream
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
	var err error
	if om.telemetry, err = openStream(dir, "telemetry.csv"); err != nil {
		return nil, err
	}
	if om.perf, err = openStream(dir, "perf.csv"); err != nil {
		om.Close()
		return nil, err
	}
	if om.trace, err = openStream(dir, "trace.csv"); err != nil {
		om.Close()
		return nil, err
	}
	return om, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteTelemetry writes a window stats record to telemetry.csv.
func (om *OutputManager) WriteTelemetry(stats WindowStats) error {
	if om == nil {
		return nil
	}
	if err := om.telemetry.write([]WindowStats{stats}); err != nil {
		return fmt.Errorf("writing telemetry: %w", err)
	}
	return nil
}

// WritePerf writes a performance stats record to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, windowEnd int32) error {
	if om == nil {
		return nil
	}
	if err := om.perf.write([]PerfStatsCSV{stats.ToCSV(windowEnd)}); err != nil {
		return fmt.Errorf("writing perf: %w", err)
	}
	return nil
}

// WriteTrace appends per-entity rows to trace.csv.
func (om *OutputManager) WriteTrace(rows []TraceRow) error {
	if om == nil || len(rows) == 0 {
		return nil
	}
	if err := om.trace.write(rows); err != nil {
		return fmt.Errorf("writing trace: %w", err)
	}
	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error
	for _, s := range []*csvStream{om.telemetry, om.perf, om.trace} {
		if s == nil {
			continue
		}
		if err := s.f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
