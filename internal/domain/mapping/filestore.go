package mapping

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// FileStore reads manufacturer schemas from a directory of YAML files,
// one file per manufacturer. It backs the schema-import command and
// serves as the repository when no database is configured. Files are
// loaded once and cached; the store is read-only.
type FileStore struct {
	dir string

	mu      sync.Mutex
	schemas map[string]*Schema
}

// NewFileStore builds a store over dir. The directory is not read
// until first use.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (f *FileStore) load() (map[string]*Schema, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.schemas != nil {
		return f.schemas, nil
	}

	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return nil, fmt.Errorf("read schema dir: %w", err)
	}

	schemas := make(map[string]*Schema)
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || (!strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml")) {
			continue
		}
		data, err := os.ReadFile(filepath.Join(f.dir, name))
		if err != nil {
			return nil, fmt.Errorf("read schema file %s: %w", name, err)
		}
		var s Schema
		if err := yaml.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("parse schema file %s: %w", name, err)
		}
		if s.ManufacturerID == "" {
			return nil, fmt.Errorf("schema file %s: missing manufacturer_id", name)
		}
		if s.Version == 0 {
			s.Version = 1
		}
		schemas[s.ManufacturerID] = &s
	}
	f.schemas = schemas
	return schemas, nil
}

func (f *FileStore) GetSchema(_ context.Context, manufacturerID string) (*Schema, error) {
	schemas, err := f.load()
	if err != nil {
		return nil, err
	}
	s, ok := schemas[manufacturerID]
	if !ok {
		return nil, ErrUnknownManufacturer
	}
	return s, nil
}

func (f *FileStore) ListManufacturers(_ context.Context) ([]ManufacturerInfo, error) {
	schemas, err := f.load()
	if err != nil {
		return nil, err
	}
	items := make([]ManufacturerInfo, 0, len(schemas))
	for _, s := range schemas {
		items = append(items, ManufacturerInfo{
			ManufacturerID: s.ManufacturerID,
			Name:           s.Name,
			FormType:       s.FormType,
			Version:        s.Version,
			FieldCount:     len(s.Fields),
		})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ManufacturerID < items[j].ManufacturerID })
	return items, nil
}

func (f *FileStore) SaveSchema(context.Context, *Schema) error {
	return fmt.Errorf("file schema store is read-only")
}

// All returns every schema in the directory, for bulk import.
func (f *FileStore) All() ([]*Schema, error) {
	schemas, err := f.load()
	if err != nil {
		return nil, err
	}
	out := make([]*Schema, 0, len(schemas))
	for _, s := range schemas {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ManufacturerID < out[j].ManufacturerID })
	return out, nil
}
