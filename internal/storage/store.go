// Package storage keeps recorded runs on disk: one directory per run holding
// metadata.json and frames.csv.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/herogrid/internal/metrics"
)

var ErrUnknownColumn = errors.New("unknown column")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string { return s.baseDir }

type RunMetadata struct {
	ID        string             `json:"id"`
	Scenario  string             `json:"scenario"`
	Preset    string             `json:"preset,omitempty"`
	Timestamp time.Time          `json:"timestamp"`
	FPS       int                `json:"fps"`
	Frames    uint64             `json:"frames"`
	Duration  float64            `json:"duration"`
	Width     float64            `json:"width"`
	Height    float64            `json:"height"`
	Tiles     int                `json:"tiles"`
	Dispersed bool               `json:"dispersed"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Columns is the header of frames.csv.
var Columns = []string{
	"frame", "time", "count", "pressed", "tiles", "opacity", "max_offset",
	"mean_offset", "peak_offset", "kinetic", "influenced", "clamped",
}

// Save writes a run and returns its id. A zero Timestamp is set to now.
func (s *Store) Save(meta RunMetadata, samples []metrics.Sample) (string, error) {
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	name := meta.Scenario
	if name == "" {
		name = "run"
	}
	meta.ID = fmt.Sprintf("%s_%d", name, meta.Timestamp.UnixNano())
	runDir := filepath.Join(s.baseDir, meta.ID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "frames.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := WriteSeries(csvFile, samples); err != nil {
		return "", err
	}
	return meta.ID, nil
}

// WriteSeries writes samples as CSV with the Columns header.
func WriteSeries(out io.Writer, samples []metrics.Sample) error {
	w := csv.NewWriter(out)
	if err := w.Write(Columns); err != nil {
		return err
	}
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', 6, 64) }
	for _, sm := range samples {
		row := []string{
			strconv.FormatUint(sm.Frame, 10),
			f(sm.Time),
			strconv.Itoa(sm.Count),
			strconv.FormatBool(sm.Pressed),
			strconv.Itoa(sm.Tiles),
			f(sm.Opacity),
			f(sm.MaxOffset),
			f(sm.MeanOffset),
			f(sm.PeakOffset),
			f(sm.Kinetic),
			strconv.Itoa(sm.Influenced),
			strconv.Itoa(sm.Clamped),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns every readable run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadSeries reads the per-frame samples of a run. Malformed rows are skipped.
func (s *Store) LoadSeries(runID string) ([]metrics.Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "frames.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	if len(records) < 2 {
		return []metrics.Sample{}, nil
	}

	samples := make([]metrics.Sample, 0, len(records)-1)
	for _, rec := range records[1:] {
		sm, ok := parseRow(rec)
		if !ok {
			continue
		}
		samples = append(samples, sm)
	}
	return samples, nil
}

func parseRow(rec []string) (metrics.Sample, bool) {
	var sm metrics.Sample
	if len(rec) != len(Columns) {
		return sm, false
	}
	var errs []error
	fl := func(s string) float64 {
		v, err := strconv.ParseFloat(s, 64)
		errs = append(errs, err)
		return v
	}
	in := func(s string) int {
		v, err := strconv.Atoi(s)
		errs = append(errs, err)
		return v
	}
	frame, err := strconv.ParseUint(rec[0], 10, 64)
	errs = append(errs, err)
	pressed, err := strconv.ParseBool(rec[3])
	errs = append(errs, err)

	sm = metrics.Sample{
		Frame:      frame,
		Time:       fl(rec[1]),
		Count:      in(rec[2]),
		Pressed:    pressed,
		Tiles:      in(rec[4]),
		Opacity:    fl(rec[5]),
		MaxOffset:  fl(rec[6]),
		MeanOffset: fl(rec[7]),
		PeakOffset: fl(rec[8]),
		Kinetic:    fl(rec[9]),
		Influenced: in(rec[10]),
		Clamped:    in(rec[11]),
	}
	return sm, errors.Join(errs...) == nil
}

// Column extracts one numeric column from samples by its CSV name.
func Column(samples []metrics.Sample, name string) ([]float64, error) {
	var get func(metrics.Sample) float64
	switch name {
	case "frame":
		get = func(s metrics.Sample) float64 { return float64(s.Frame) }
	case "time":
		get = func(s metrics.Sample) float64 { return s.Time }
	case "count":
		get = func(s metrics.Sample) float64 { return float64(s.Count) }
	case "pressed":
		get = func(s metrics.Sample) float64 {
			if s.Pressed {
				return 1
			}
			return 0
		}
	case "tiles":
		get = func(s metrics.Sample) float64 { return float64(s.Tiles) }
	case "opacity":
		get = func(s metrics.Sample) float64 { return s.Opacity }
	case "max_offset":
		get = func(s metrics.Sample) float64 { return s.MaxOffset }
	case "mean_offset":
		get = func(s metrics.Sample) float64 { return s.MeanOffset }
	case "peak_offset":
		get = func(s metrics.Sample) float64 { return s.PeakOffset }
	case "kinetic":
		get = func(s metrics.Sample) float64 { return s.Kinetic }
	case "influenced":
		get = func(s metrics.Sample) float64 { return float64(s.Influenced) }
	case "clamped":
		get = func(s metrics.Sample) float64 { return float64(s.Clamped) }
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
	}
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = get(s)
	}
	return out, nil
}
