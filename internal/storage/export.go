package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/san-kum/pvtcalc/internal/eos"
)

type ExportData struct {
	Run     RunMetadata       `json:"run"`
	Columns []string          `json:"columns"`
	Units   map[string]string `json:"units"`
	Rows    [][]float64       `json:"rows"`
}

// ExportJSON writes a stored run as a single JSON document.
func (s *Store) ExportJSON(path, runID string) error {
	if path == "" || path == "-" {
		return s.ExportJSONTo(os.Stdout, runID)
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", path)
	}
	defer f.Close()
	return s.ExportJSONTo(f, runID)
}

func (s *Store) ExportJSONTo(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	header, rows, err := s.LoadStates(runID)
	if err != nil {
		return err
	}

	data := ExportData{
		Run:     *meta,
		Columns: header,
		Units:   make(map[string]string, len(eos.Columns)),
		Rows:    rows,
	}
	for _, c := range eos.Columns {
		data.Units[c.Name] = c.Unit
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(data), "failed to encode export")
}
