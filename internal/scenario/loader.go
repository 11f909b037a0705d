package scenario

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Loader handles loading scenario sets from a directory.
type Loader struct {
	Root string
}

// NewLoader creates a new scenario loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all scenario files.
// Returns sets sorted by ID for deterministic ordering. Files that fail to
// parse are reported in the returned error; the valid sets are still returned.
func (l *Loader) LoadAll() ([]Set, error) {
	var (
		sets []Set
		errs []error
	)

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		if !IsScenarioFile(path) {
			return nil
		}

		set, err := LoadFile(path)
		if err != nil {
			errs = append(errs, err)
			return nil
		}

		sets = append(sets, set)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("scenario: walking directory %s: %w", l.Root, err)
	}

	sort.SliceStable(sets, func(i, j int) bool {
		return sets[i].ID < sets[j].ID
	})

	return sets, errors.Join(errs...)
}

// LoadByID loads a specific set by ID.
func (l *Loader) LoadByID(id string) (Set, error) {
	sets, err := l.LoadAll()
	for _, set := range sets {
		if set.ID == id {
			return set, nil
		}
	}
	if err != nil {
		return Set{}, err
	}
	return Set{}, fmt.Errorf("scenario: set not found: %s", id)
}

// LoadFile loads a single scenario file.
func LoadFile(path string) (Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Set{}, fmt.Errorf("scenario: reading file %s: %w", path, err)
	}

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	set, err := ParseYAML(data, stem)
	if err != nil {
		return Set{}, fmt.Errorf("scenario: parsing file %s: %w", path, err)
	}
	set.Source = path

	return set, nil
}

// LoadPaths loads every file and directory in paths, in order.
func LoadPaths(paths ...string) ([]Set, error) {
	var (
		sets []Set
		errs []error
	)
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			errs = append(errs, fmt.Errorf("scenario: %w", err))
			continue
		}
		if info.IsDir() {
			found, err := NewLoader(p).LoadAll()
			sets = append(sets, found...)
			if err != nil {
				errs = append(errs, err)
			}
			continue
		}
		set, err := LoadFile(p)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		sets = append(sets, set)
	}
	return sets, errors.Join(errs...)
}

// WriteFile stores the set in canonical YAML form, creating parent
// directories as needed.
func WriteFile(path string, set Set) error {
	data, err := EncodeYAML(set)
	if err != nil {
		return fmt.Errorf("scenario: encoding %s: %w", set.ID, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("scenario: cannot create directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("scenario: cannot write %s: %w", path, err)
	}
	return nil
}

// IsScenarioFile reports whether path has a supported extension.
func IsScenarioFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, supported := range FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}
