// Package engineini looks up values in Unreal engine configuration files
// (DefaultEngine.ini and friends).
//
// Lookups are line based: the first line that starts with "Key=" wins,
// regardless of which [Section] it is in. Leading and trailing whitespace
// of the value is trimmed.
package engineini

import (
	"os"
	"regexp"
	"strings"
	"sync"
)

var (
	patternMu    sync.Mutex
	patternCache = make(map[string]*regexp.Regexp)
)

// Value returns the value assigned to key, and whether a line for key was
// found with at least one character after the '='.
// A key present with a whitespace-only value returns ("", true).
func Value(text, key string) (string, bool) {
	m := keyPattern(key).FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

// File is an engine configuration file loaded into memory.
type File struct {
	text string
}

// Load reads the configuration file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &File{text: string(data)}, nil
}

// Parse wraps configuration text.
func Parse(text string) *File {
	return &File{text: text}
}

// Get returns the trimmed value for key, or "" when the key is unset.
func (f *File) Get(key string) string {
	v, _ := Value(f.text, key)
	return v
}

// keyPattern compiles (once per key) the anchored line pattern for key.
func keyPattern(key string) *regexp.Regexp {
	patternMu.Lock()
	defer patternMu.Unlock()

	if re, ok := patternCache[key]; ok {
		return re
	}
	re := regexp.MustCompile(`(?m)^` + regexp.QuoteMeta(key) + `=(.+)$`)
	patternCache[key] = re
	return re
}
