package batch

import (
	"encoding/json"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/arloliu/mam/errs"
	"github.com/arloliu/mam/internal/hash"
)

// Entry is the manifest record of one input file.
type Entry struct {
	Input        string       `json:"input"`
	Output       string       `json:"output,omitempty"`
	Algorithm    string       `json:"algorithm,omitempty"`
	Checksummed  bool         `json:"checksummed"`
	DeclaredSize uint32       `json:"declared_size,omitempty"`
	Size         int          `json:"size"`
	StoredSize   int          `json:"stored_size,omitempty"`
	ID           string       `json:"id,omitempty"`
	Digest       *hash.Digest `json:"blake3,omitempty"`
	Result       string       `json:"result"`
	Kind         errs.Kind    `json:"error_kind,omitempty"`
	Error        string       `json:"error,omitempty"`
	Warnings     []string     `json:"warnings,omitempty"`
}

// Manifest collects entries from concurrent workers.
type Manifest struct {
	mu      sync.Mutex
	entries []Entry
}

// NewManifest creates an empty manifest.
func NewManifest() *Manifest {
	return &Manifest{}
}

// Add records e.
func (m *Manifest) Add(e Entry) {
	m.mu.Lock()
	m.entries = append(m.entries, e)
	m.mu.Unlock()
}

// Entries returns the recorded entries sorted by input path.
func (m *Manifest) Entries() []Entry {
	m.mu.Lock()
	entries := slices.Clone(m.entries)
	m.mu.Unlock()

	slices.SortFunc(entries, func(a, b Entry) int {
		return strings.Compare(a.Input, b.Input)
	})

	return entries
}

// WriteFile writes the manifest as indented JSON.
func (m *Manifest) WriteFile(path string) error {
	data, err := json.MarshalIndent(struct {
		Files []Entry `json:"files"`
	}{Files: m.Entries()}, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, append(data, '\n'), 0o644)
}
