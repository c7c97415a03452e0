package settings

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// FileStore keeps settings in a YAML file, for use when the template spreadsheet cannot (or
// should not) carry developer metadata.
type FileStore struct {
	Path string

	sync.Mutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{
		Path: path,
	}
}

func (f *FileStore) Get(ctx context.Context, keys ...string) (map[string]string, error) {
	f.Lock()
	defer f.Unlock()

	all, err := f.load()
	if err != nil {
		return nil, err
	}

	values := map[string]string{}
	for _, k := range keys {
		if v, ok := all[k]; ok {
			values[k] = v
		}
	}

	return values, nil
}

func (f *FileStore) Set(ctx context.Context, key string, value string) error {
	f.Lock()
	defer f.Unlock()

	all, err := f.load()
	if err != nil {
		return err
	}

	all[key] = value

	return f.save(all)
}

func (f *FileStore) Clear(ctx context.Context, keys ...string) error {
	f.Lock()
	defer f.Unlock()

	all, err := f.load()
	if err != nil {
		return err
	}

	for _, k := range keys {
		delete(all, k)
	}

	return f.save(all)
}

func (f *FileStore) load() (map[string]string, error) {
	values := map[string]string{}

	bytes, err := os.ReadFile(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return values, nil
	} else if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(bytes, &values); err != nil {
		return nil, fmt.Errorf("invalid settings file %v (%w)", f.Path, err)
	}

	if values == nil {
		values = map[string]string{}
	}

	return values, nil
}

func (f *FileStore) save(values map[string]string) error {
	bytes, err := yaml.Marshal(values)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(f.Path), 0770); err != nil {
		return err
	}

	tmp := f.Path + ".tmp"
	if err := os.WriteFile(tmp, bytes, 0660); err != nil {
		return err
	}

	return os.Rename(tmp, f.Path)
}
