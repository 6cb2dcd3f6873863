package state

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// FileState records the last conversion of a single source file
type FileState struct {
	MTime  int64  `json:"mtime"`
	Size   int64  `json:"size"`
	Hash   string `json:"hash"`
	Output string `json:"output"`
	Format string `json:"format"`
	RunID  string `json:"run_id,omitempty"`
}

// State is the conversion cache: per-file fingerprints plus the last
// batch run that touched them
type State struct {
	Files   map[string]*FileState `json:"files"`
	LastRun string                `json:"last_run,omitempty"`
}

// NewState creates a new empty state
func NewState() *State {
	return &State{
		Files: make(map[string]*FileState),
	}
}

// Load reads state from the state file
func Load(path string) (*State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewState(), nil
		}
		return nil, err
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}

	if state.Files == nil {
		state.Files = make(map[string]*FileState)
	}

	return &state, nil
}

// Save writes state to the state file
func (s *State) Save(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}

	return nil
}

// ComputeHash computes SHA256 hash of a file
func ComputeHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return fmt.Sprintf("sha256:%x", h.Sum(nil)), nil
}

// HasChanged checks if a file has changed since its last conversion
// Uses hybrid size + mtime + hash approach
func (s *State) HasChanged(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}

	fileState, exists := s.Files[path]
	if !exists {
		// New file
		return true, nil
	}

	// A size mismatch is a content change, no hashing needed
	if fileState.Size > 0 && info.Size() != fileState.Size {
		return true, nil
	}

	// Fast path: check mtime
	if info.ModTime().Unix() == fileState.MTime {
		return false, nil
	}

	// mtime changed, compute hash to check for actual content changes
	hash, err := ComputeHash(path)
	if err != nil {
		return false, err
	}

	return hash != fileState.Hash, nil
}

// Update records a completed conversion for a file
func (s *State) Update(path, output, format, runID string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	hash, err := ComputeHash(path)
	if err != nil {
		return err
	}

	s.Files[path] = &FileState{
		MTime:  info.ModTime().Unix(),
		Size:   info.Size(),
		Hash:   hash,
		Output: output,
		Format: format,
		RunID:  runID,
	}
	if runID != "" {
		s.LastRun = runID
	}

	return nil
}

// Prune drops entries for source files that no longer exist on disk and
// returns how many were removed
func (s *State) Prune() int {
	removed := 0
	for path := range s.Files {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			delete(s.Files, path)
			removed++
		}
	}
	return removed
}
