package fingerprint

import (
	"os"
	"path/filepath"
	"strings"
)

// Store is a single durable slot holding one fingerprint. No expiry, no
// teardown: the value lives for the life of the directory.
type Store struct {
	path string
	gen  func() string
}

// NewStore creates a store backed by a file in dir. gen is invoked once, on
// the first Get against an empty slot; pass nil for the default generator.
func NewStore(dir string, gen func() string) *Store {
	if gen == nil {
		gen = func() string { return Hash(Collect()) }
	}
	return &Store{path: filepath.Join(dir, "fingerprint"), gen: gen}
}

// Get returns the persisted fingerprint, generating and persisting a new one
// on first call. Persistence is best-effort: a failed write still yields a
// usable value for this process, it just won't survive to the next run.
func (s *Store) Get() string {
	if b, err := os.ReadFile(s.path); err == nil {
		if fp := strings.TrimSpace(string(b)); fp != "" {
			return fp
		}
	}
	fp := s.gen()
	_ = os.MkdirAll(filepath.Dir(s.path), 0o700)
	_ = os.WriteFile(s.path, []byte(fp+"\n"), 0o600)
	return fp
}
