package storage

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/san-kum/pvtcalc/internal/eos"
	"github.com/san-kum/pvtcalc/internal/sweep"
)

const (
	metadataFile = "metadata.json"
	statesFile   = "states.csv"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return errors.Wrapf(os.MkdirAll(s.baseDir, 0755), "failed to create %s", s.baseDir)
}

type RunMetadata struct {
	ID        string    `json:"id"`
	Calibrant string    `json:"calibrant"`
	Timestamp time.Time `json:"timestamp"`
	Kind      string    `json:"kind"`
	Fixed     float64   `json:"fixed"`
	From      float64   `json:"from"`
	To        float64   `json:"to"`
	Steps     int       `json:"steps"`
	Points    int       `json:"points"`
	Failures  []string  `json:"failures,omitempty"`
}

// Save writes a sweep as a run directory holding metadata.json and
// states.csv, and returns the run ID.
func (s *Store) Save(calibrant string, res *sweep.Result) (string, error) {
	runID := string(res.Plan.Kind) + "_" + uuid.NewString()[:8]
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", errors.Wrapf(err, "failed to create run %s", runID)
	}

	meta := RunMetadata{
		ID:        runID,
		Calibrant: calibrant,
		Timestamp: time.Now(),
		Kind:      string(res.Plan.Kind),
		Fixed:     res.Plan.Fixed,
		From:      res.Plan.From,
		To:        res.Plan.To,
		Steps:     res.Plan.Steps,
		Points:    len(res.States),
	}
	for _, f := range res.Failures {
		meta.Failures = append(meta.Failures, f.Query.String()+": "+f.Err.Error())
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeStates(filepath.Join(runDir, statesFile), res.States); err != nil {
		return "", err
	}
	return runID, nil
}

func writeStates(path string, states []*eos.State) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create states file")
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(eos.ColumnNames()); err != nil {
		return errors.Wrap(err, "failed to write header")
	}
	for _, st := range states {
		vals := st.Values()
		row := make([]string, len(vals))
		for i, v := range vals {
			row[i] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := w.Write(row); err != nil {
			return errors.Wrap(err, "failed to write row")
		}
	}
	w.Flush()
	return errors.Wrap(w.Error(), "failed to flush states")
}

// List returns the stored runs, newest first. Directories without readable
// metadata are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, errors.Wrapf(err, "failed to read %s", s.baseDir)
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
	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.After(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load run %s", runID)
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, errors.Wrapf(err, "failed to parse metadata of %s", runID)
	}
	return &meta, nil
}

// LoadStates returns the column header and the numeric rows of a run.
func (s *Store) LoadStates(runID string) ([]string, [][]float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, statesFile))
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to open states of %s", runID)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to read states of %s", runID)
	}
	if len(records) == 0 {
		return nil, [][]float64{}, nil
	}

	header := records[0]
	rows := make([][]float64, 0, len(records)-1)
	for i, record := range records[1:] {
		row := make([]float64, len(record))
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, nil, errors.Wrapf(err, "row %d column %s", i+1, header[j])
			}
			row[j] = v
		}
		rows = append(rows, row)
	}
	return header, rows, nil
}

// Column extracts the named column from rows loaded by LoadStates.
func Column(header []string, rows [][]float64, name string) ([]float64, error) {
	idx := -1
	for i, h := range header {
		if h == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, errors.Errorf("unknown column %q", name)
	}
	out := make([]float64, len(rows))
	for i, r := range rows {
		out[i] = r[idx]
	}
	return out, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", path)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return errors.Wrapf(enc.Encode(v), "failed to encode %s", path)
}
