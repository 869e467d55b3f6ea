// Package prompts loads the prompt templates embedded in the binary.
// Each JSON file maps template keys to template text with {{.Name}} placeholders.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
)

//go:embed *.json
var promptFiles embed.FS

// Set is the parsed content of one prompt file.
type Set struct {
	name      string
	templates map[string]string
}

var (
	setsMu sync.Mutex
	sets   = map[string]*Set{}
)

// Open parses an embedded prompt file. Parsed files are kept for the life of the process.
func Open(filename string) (*Set, error) {
	setsMu.Lock()
	defer setsMu.Unlock()

	if set, ok := sets[filename]; ok {
		return set, nil
	}

	data, err := promptFiles.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file %s: %w", filename, err)
	}
	var templates map[string]string
	if err := json.Unmarshal(data, &templates); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", filename, err)
	}

	set := &Set{name: filename, templates: templates}
	sets[filename] = set
	return set, nil
}

// Template returns the template stored under key.
func (s *Set) Template(key string) (string, error) {
	template, ok := s.templates[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found in %s", key, s.name)
	}
	return template, nil
}

// Get retrieves the template stored under key in filename (for example "strategy.json").
func Get(filename, key string) (string, error) {
	set, err := Open(filename)
	if err != nil {
		return "", err
	}
	return set.Template(key)
}

// MustGet is Get for templates the program cannot run without.
func MustGet(filename, key string) string {
	template, err := Get(filename, key)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return template
}

// Format replaces {{.Key}} placeholders with values from data in a single left-to-right pass.
// Placeholder-like text inside a substituted value is emitted literally, and placeholders
// without a value stay in place.
func Format(template string, data map[string]string) string {
	if len(data) == 0 {
		return template
	}

	keys := make([]string, 0, len(data))
	for key := range data {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys)*2)
	for _, key := range keys {
		pairs = append(pairs, "{{."+key+"}}", data[key])
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
