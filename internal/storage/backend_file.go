package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// DefaultQuotaBytes mirrors the usual browser localStorage allowance.
const DefaultQuotaBytes = 5 * 1024 * 1024

const preferencesFileName = "preferences.json"

// FileBackend stores every key in a single JSON object on disk.
//
// Each call re-reads the file so writes made by other FocusHub processes are
// visible. Writes replace the file through a temp file and rename; there is
// no lock, so a concurrent writer can overwrite another's change.
type FileBackend struct {
	path       string
	quotaBytes int
}

// NewFileBackend creates a backend for path. A non-positive quota disables the
// size check.
func NewFileBackend(path string, quotaBytes int) *FileBackend {
	return &FileBackend{path: path, quotaBytes: quotaBytes}
}

// DefaultPreferencesPath returns the preferences file inside configDir.
func DefaultPreferencesPath(configDir string) string {
	return filepath.Join(configDir, preferencesFileName)
}

// Path returns the backing file path.
func (backend *FileBackend) Path() string {
	return backend.path
}

func (backend *FileBackend) Load(key string) (string, bool, error) {
	values, err := backend.readAll()
	if err != nil {
		return "", false, err
	}
	value, ok := values[key]
	return value, ok, nil
}

func (backend *FileBackend) Save(key, value string) error {
	values, err := backend.readAll()
	if err != nil {
		// A corrupt file would otherwise block every future write.
		if !errors.Is(err, errCorruptFile) {
			return err
		}
		values = make(map[string]string)
	}
	values[key] = value
	if backend.quotaBytes > 0 && usage(values) > backend.quotaBytes {
		return ErrQuotaExceeded
	}
	return backend.writeAll(values)
}

func (backend *FileBackend) Delete(key string) error {
	values, err := backend.readAll()
	if err != nil {
		return err
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	return backend.writeAll(values)
}

func (backend *FileBackend) Keys() ([]string, error) {
	values, err := backend.readAll()
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

var errCorruptFile = errors.New("corrupt preferences file")

func (backend *FileBackend) readAll() (map[string]string, error) {
	rawData, err := os.ReadFile(backend.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return make(map[string]string), nil
		}
		return nil, fmt.Errorf("read preferences file: %w", err)
	}
	values := make(map[string]string)
	if len(rawData) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(rawData, &values); err != nil {
		return nil, fmt.Errorf("%w: %v", errCorruptFile, err)
	}
	return values, nil
}

func (backend *FileBackend) writeAll(values map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(backend.path), 0o755); err != nil {
		return fmt.Errorf("create preferences directory: %w", err)
	}

	serialized, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal preferences: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(backend.path), ".preferences-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp preferences file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(serialized); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temp preferences file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp preferences file: %w", err)
	}
	if err := os.Rename(tmpPath, backend.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace preferences file: %w", err)
	}
	return nil
}

func usage(values map[string]string) int {
	total := 0
	for key, value := range values {
		total += len(key) + len(value)
	}
	return total
}
