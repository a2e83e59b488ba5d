// Package assets maps source asset names to fingerprinted paths and
// publishes them to a CDN bucket.
//
// A build produces dist/manifest.json mapping each source name to its
// content-hashed version:
//
//	{
//	  "client.js": "client.a1b2c3d4.js",
//	  "app.css": "app.e5f6a7b8.css"
//	}
//
// The server resolves names through the manifest when emitting script
// and stylesheet tags, so clients cache aggressively and pick up new
// content on deploy.
package assets

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Manifest maps source asset names to fingerprinted names. Safe for
// concurrent use.
type Manifest struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewManifest creates an empty manifest.
func NewManifest() *Manifest {
	return &Manifest{entries: make(map[string]string)}
}

// Load reads a manifest JSON file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var entries map[string]string
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("assets: parse manifest %s: %w", path, err)
	}
	return &Manifest{entries: entries}, nil
}

// Save writes the manifest as JSON to path.
func (m *Manifest) Save(path string) error {
	m.mu.RLock()
	data, err := json.MarshalIndent(m.entries, "", "  ")
	m.mu.RUnlock()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Resolve returns the fingerprinted name for source, or source itself
// when the manifest has no entry for it.
func (m *Manifest) Resolve(source string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if resolved, ok := m.entries[source]; ok {
		return resolved
	}
	return source
}

// Has reports whether the manifest contains source.
func (m *Manifest) Has(source string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.entries[source]
	return ok
}

// Set adds or replaces an entry.
func (m *Manifest) Set(source, resolved string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[source] = resolved
}

// Len returns the number of entries.
func (m *Manifest) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Entries returns a sorted copy of all source names.
func (m *Manifest) Entries() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.entries))
	for name := range m.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build walks dir, fingerprints every regular file, writes the hashed
// copies next to the originals, and returns the resulting manifest.
// The fingerprint is the first 8 hex digits of the content's SHA-256.
func Build(dir string) (*Manifest, error) {
	m := NewManifest()
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		if rel == "manifest.json" || isFingerprinted(rel) {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		hashed := fingerprintName(rel, data)
		if err := os.WriteFile(filepath.Join(dir, hashed), data, 0644); err != nil {
			return err
		}
		m.Set(filepath.ToSlash(rel), filepath.ToSlash(hashed))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("assets: build manifest: %w", err)
	}
	return m, nil
}

// fingerprintName inserts the content hash before the extension:
// "client.js" with hash a1b2c3d4 becomes "client.a1b2c3d4.js".
func fingerprintName(name string, data []byte) string {
	sum := sha256.Sum256(data)
	hash := hex.EncodeToString(sum[:4])
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext) + "." + hash + ext
}

// isFingerprinted reports whether name already carries an 8-hex-digit
// fingerprint segment.
func isFingerprinted(name string) bool {
	parts := strings.Split(filepath.Base(name), ".")
	if len(parts) < 3 {
		return false
	}
	seg := parts[len(parts)-2]
	if len(seg) != 8 {
		return false
	}
	_, err := hex.DecodeString(seg)
	return err == nil
}
