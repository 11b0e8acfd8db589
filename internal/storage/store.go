package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/confocal/internal/automation"
	"github.com/san-kum/confocal/internal/field"
)

// Store keeps recorded sessions, one directory per run.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string    `json:"id"`
	Scenario   string    `json:"scenario"`
	Timestamp  time.Time `json:"timestamp"`
	Width      float64   `json:"width"`
	Height     float64   `json:"height"`
	Step       float64   `json:"step"`
	WrapFactor float64   `json:"wrap_factor"`
	Samples    int       `json:"samples"`
	Wraps      int       `json:"wraps"`
	Final      string    `json:"final"`
}

// Save writes rec under a fresh run directory along with the controller
// settings it was recorded with.
func (s *Store) Save(rec *automation.Recording, ctrl *field.Controller) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", rec.Scenario, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	w, h := ctrl.Viewport()
	settings := ctrl.Settings()
	meta := RunMetadata{
		ID:         runID,
		Scenario:   rec.Scenario,
		Timestamp:  now,
		Width:      w,
		Height:     h,
		Step:       settings.Step,
		WrapFactor: settings.WrapFactor,
		Samples:    len(rec.Samples),
		Wraps:      rec.Wraps(),
	}
	if n := len(rec.Samples); n > 0 {
		meta.Final = rec.Samples[n-1].Label
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

	csvFile, err := os.Create(filepath.Join(runDir, "samples.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	cw := csv.NewWriter(csvFile)
	if err := cw.Write([]string{"step", "action", "focal", "label", "wrapped"}); err != nil {
		return "", err
	}
	for _, sample := range rec.Samples {
		row := []string{
			strconv.Itoa(sample.Step),
			sample.Action,
			strconv.FormatFloat(sample.Focal, 'f', -1, 64),
			sample.Label,
			strconv.FormatBool(sample.Wrapped),
		}
		if err := cw.Write(row); err != nil {
			return "", err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return "", err
	}

	return runID, nil
}

// List returns the metadata of every readable run, oldest first.
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

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadSamples reads the recorded samples of a run back.
func (s *Store) LoadSamples(runID string) ([]automation.Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "samples.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = 5

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []automation.Sample{}, nil
	}

	samples := make([]automation.Sample, 0, len(records)-1)
	for i, record := range records[1:] {
		step, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		focal, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		wrapped, err := strconv.ParseBool(record[4])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		samples = append(samples, automation.Sample{
			Step:    step,
			Action:  record[1],
			Focal:   focal,
			Label:   record[3],
			Wrapped: wrapped,
		})
	}
	return samples, nil
}
