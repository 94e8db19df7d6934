/*
Package history persists the last fetched bulletin snapshot between runs.
*/
package history

import (
	"fmt"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"

	"github.com/shanehull/bultentakip/internal/types"
)

// Store reads and replaces the snapshot file. It assumes a single writer.
type Store struct {
	filePath string
}

func NewStore(filePath string) *Store {
	return &Store{filePath: filePath}
}

func (s *Store) FilePath() string {
	return s.filePath
}

// Load returns the persisted snapshot. A missing file is an empty history, not
// an error; a file that cannot be read or decoded returns an error and the
// caller decides how to degrade.
func (s *Store) Load() (types.Snapshot, error) {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read history file %s: %w", s.filePath, err)
	}

	var snapshot types.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal history file %s: %w", s.filePath, err)
	}
	return snapshot, nil
}

// Save replaces the snapshot file with current, pretty printed. The write goes
// through a temporary file so a crash never leaves a truncated history.
func (s *Store) Save(current types.Snapshot) error {
	if current == nil {
		current = types.Snapshot{}
	}

	data, err := json.MarshalIndent(current, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}
	data = append(data, '\n')

	if dir := filepath.Dir(s.filePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create history directory %s: %w", dir, err)
		}
	}

	tmpFile := s.filePath + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", tmpFile, err)
	}

	if _, err = file.Write(data); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return fmt.Errorf("failed to write %s: %w", tmpFile, err)
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return fmt.Errorf("failed to sync %s: %w", tmpFile, err)
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return fmt.Errorf("failed to close %s: %w", tmpFile, err)
	}

	if err = os.Rename(tmpFile, s.filePath); err != nil {
		os.Remove(tmpFile)
		return fmt.Errorf("failed to replace history file %s: %w", s.filePath, err)
	}
	return nil
}
