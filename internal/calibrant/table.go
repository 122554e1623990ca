package calibrant

import (
	_ "embed"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownCalibrant = errors.New("calibrant: unknown calibrant")
	ErrInvalidParams    = errors.New("calibrant: invalid parameters")
)

//go:embed calibrants.yaml
var builtin []byte

// Table is a read-only set of calibrants keyed by case-folded name.
type Table struct {
	entries map[string]Params
	order   []string
}

type document struct {
	Calibrants []Params `yaml:"calibrants"`
}

func Parse(data []byte) (*Table, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "failed to parse calibrant table")
	}

	t := &Table{entries: make(map[string]Params, len(doc.Calibrants))}
	for _, p := range doc.Calibrants {
		p = p.WithDefaults()
		if p.Name == "" {
			return nil, errors.Wrap(ErrInvalidParams, "calibrant without a name")
		}
		if err := p.Validate(); err != nil {
			return nil, err
		}
		key := strings.ToLower(p.Name)
		if _, dup := t.entries[key]; dup {
			return nil, errors.Wrapf(ErrInvalidParams, "duplicate calibrant %s", p.Name)
		}
		t.entries[key] = p
		t.order = append(t.order, p.Name)
	}
	sort.Strings(t.order)
	return t, nil
}

func LoadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read calibrant table %s", path)
	}
	return Parse(data)
}

func (t *Table) Lookup(name string) (Params, error) {
	p, ok := t.entries[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Params{}, errors.Wrapf(ErrUnknownCalibrant, "%q (available: %s)", name, strings.Join(t.order, ", "))
	}
	return p, nil
}

func (t *Table) Names() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

var (
	defaultOnce  sync.Once
	defaultTable *Table
	defaultErr   error
)

// Default returns the built-in table of standards.
func Default() (*Table, error) {
	defaultOnce.Do(func() {
		defaultTable, defaultErr = Parse(builtin)
	})
	return defaultTable, defaultErr
}

// Lookup finds a calibrant in the built-in table.
func Lookup(name string) (Params, error) {
	t, err := Default()
	if err != nil {
		return Params{}, err
	}
	return t.Lookup(name)
}

func Names() []string {
	t, err := Default()
	if err != nil {
		return nil
	}
	return t.Names()
}
