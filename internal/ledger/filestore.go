package ledger

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// snapshot is the on-disk shape: a human-inspectable JSON document with
// the succeeded set and the failed map, written whole on every save.
type snapshot struct {
	Succeeded []string           `json:"succeeded"`
	Failed    map[string]Failure `json:"failed"`
}

// FileStore persists Ledger snapshots to a single JSON file using
// write-temp-then-rename so a crash never leaves a torn snapshot.
type FileStore struct {
	path string
}

// NewFileStore builds a FileStore rooted at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the snapshot location.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the snapshot into a fresh Ledger. A missing file yields an
// empty ledger; a corrupt file is an error the caller decides how to treat.
func (s *FileStore) Load(maxAttempts int) (*Ledger, error) {
	l := New(maxAttempts)
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return l, nil
		}
		return l, fmt.Errorf("read ledger: %w", err)
	}
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return New(maxAttempts), fmt.Errorf("decode ledger: %w", err)
	}
	for _, name := range snap.Succeeded {
		l.succeeded[name] = struct{}{}
	}
	for name, f := range snap.Failed {
		l.failed[name] = f
	}
	return l, nil
}

// Save writes the full ledger snapshot atomically.
func (s *FileStore) Save(l *Ledger) error {
	snap := snapshot{
		Succeeded: make([]string, 0, len(l.succeeded)),
		Failed:    make(map[string]Failure, len(l.failed)),
	}
	for name := range l.succeeded {
		snap.Succeeded = append(snap.Succeeded, name)
	}
	sort.Strings(snap.Succeeded)
	for name, f := range l.failed {
		snap.Failed[name] = f
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode ledger: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create ledger dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".ledger-*.json")
	if err != nil {
		return fmt.Errorf("create temp ledger: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write temp ledger: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp ledger: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace ledger: %w", err)
	}
	return nil
}

// Snapshot returns the current ledger contents in on-disk shape, for the
// status API.
func Snapshot(l *Ledger) (succeeded []string, failed map[string]Failure) {
	succeeded = make([]string, 0, len(l.succeeded))
	for name := range l.succeeded {
		succeeded = append(succeeded, name)
	}
	sort.Strings(succeeded)
	failed = make(map[string]Failure, len(l.failed))
	for name, f := range l.failed {
		failed[name] = f
	}
	return succeeded, failed
}
