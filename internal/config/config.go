package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// RulebookFile is the project-level rulebook file name.
const RulebookFile = ".eldaracheck.yaml"

// rulebookFileAlt is accepted when RulebookFile is absent.
const rulebookFileAlt = ".eldaracheck.yml"

// Dependency match modes for the build file scan.
const (
	// MatchCall only counts names inside *DependencyModuleNames.Add/AddRange calls.
	MatchCall = "call"
	// MatchSubstring counts a name found anywhere in the file.
	MatchSubstring = "substring"
)

// Rulebook is the complete set of rules a project is validated against.
// The zero-config defaults describe the Eldara project layout.
type Rulebook struct {
	Version    int              `yaml:"version" json:"version"`
	Project    string           `yaml:"project" json:"project"`
	Descriptor string           `yaml:"descriptor" json:"descriptor"`
	Module     ModuleRule       `yaml:"module" json:"module"`
	Platforms  []string         `yaml:"platforms" json:"platforms"`
	Files      []FileRule       `yaml:"files" json:"files"`
	Build      BuildRule        `yaml:"build" json:"build"`
	EngineINI  EngineConfigRule `yaml:"engine_ini" json:"engine_ini"`
}

// ModuleRule requires a named module with a given Type in the descriptor.
type ModuleRule struct {
	Name string `yaml:"name" json:"name"`
	Type string `yaml:"type" json:"type"`
}

// FileRule requires a file to exist. Label is used in diagnostics.
type FileRule struct {
	Label string `yaml:"label" json:"label"`
	Path  string `yaml:"path" json:"path"`
}

// BuildRule configures the module build file dependency scan.
type BuildRule struct {
	// Path is the build file, relative to the project root.
	Path string `yaml:"path" json:"path"`
	// Dependencies must all be declared by the build file.
	Dependencies []string `yaml:"dependencies" json:"dependencies"`
	// Match is "call" (default) or "substring".
	Match string `yaml:"match" json:"match"`
}

// EngineConfigRule configures the engine ini checks.
type EngineConfigRule struct {
	Path string    `yaml:"path" json:"path"`
	Keys []KeyRule `yaml:"keys" json:"keys"`
}

// KeyRule requires a key to be set. When Expect is non-empty the value
// must match it exactly; otherwise any non-empty value passes.
type KeyRule struct {
	Key    string `yaml:"key" json:"key"`
	Expect string `yaml:"expect,omitempty" json:"expect,omitempty"`
}

// NewRulebook creates a Rulebook with the built-in Eldara defaults.
func NewRulebook() *Rulebook {
	return &Rulebook{
		Version:    1,
		Project:    "Eldara",
		Descriptor: "Eldara.uproject",
		Module: ModuleRule{
			Name: "Eldara",
			Type: "Runtime",
		},
		Platforms: []string{"Win64", "Linux"},
		Files: []FileRule{
			{Label: "Game target file", Path: "Source/Eldara.Target.cs"},
			{Label: "Editor target file", Path: "Source/EldaraEditor.Target.cs"},
			{Label: "Eldara.Build.cs", Path: "Source/Eldara/Eldara.Build.cs"},
		},
		Build: BuildRule{
			Path:         "Source/Eldara/Eldara.Build.cs",
			Dependencies: []string{"EnhancedInput", "AIModule", "UMG", "Networking", "Sockets"},
			Match:        MatchCall,
		},
		EngineINI: EngineConfigRule{
			Path: "Config/DefaultEngine.ini",
			Keys: []KeyRule{
				{Key: "GameDefaultMap"},
				{Key: "GlobalDefaultGameMode", Expect: "/Script/Eldara.EldaraGameModeBase"},
				{Key: "GameInstanceClass", Expect: "/Script/Eldara.EldaraGameInstance"},
			},
		},
	}
}

// Load loads the rulebook for the project rooted at dir.
// It applies configuration in order of increasing precedence:
//  1. Hardcoded defaults
//  2. Project rulebook (.eldaracheck.yaml in the project root)
func Load(dir string) (*Rulebook, error) {
	rb := NewRulebook()

	if err := rb.loadFromFile(dir); err != nil {
		return nil, err
	}

	if err := rb.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rulebook: %w", err)
	}

	return rb, nil
}

// RulebookPath returns the rulebook file that Load would read in dir,
// or an empty string when none exists.
func RulebookPath(dir string) string {
	yamlPath := filepath.Join(dir, RulebookFile)
	if fileExists(yamlPath) {
		return yamlPath
	}
	ymlPath := filepath.Join(dir, rulebookFileAlt)
	if fileExists(ymlPath) {
		return ymlPath
	}
	return ""
}

// loadFromFile merges .eldaracheck.yaml (or .yml) from dir if present.
func (r *Rulebook) loadFromFile(dir string) error {
	path := RulebookPath(dir)
	if path == "" {
		// No rulebook file is fine - use defaults
		return nil
	}
	return r.loadYAML(path)
}

// loadYAML loads and merges a rulebook from a YAML file.
func (r *Rulebook) loadYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read rulebook %s: %w", path, err)
	}

	var parsed Rulebook
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("failed to parse rulebook %s: %w", path, err)
	}

	r.mergeWith(&parsed)
	return nil
}

// mergeWith merges non-zero values from other into r.
// Lists replace rather than append so a project can drop a default rule.
func (r *Rulebook) mergeWith(other *Rulebook) {
	if other.Version != 0 {
		r.Version = other.Version
	}
	if other.Project != "" {
		r.Project = other.Project
	}
	if other.Descriptor != "" {
		r.Descriptor = other.Descriptor
	}

	if other.Module.Name != "" {
		r.Module.Name = other.Module.Name
	}
	if other.Module.Type != "" {
		r.Module.Type = other.Module.Type
	}

	if other.Platforms != nil {
		r.Platforms = other.Platforms
	}
	if other.Files != nil {
		r.Files = other.Files
	}

	if other.Build.Path != "" {
		r.Build.Path = other.Build.Path
	}
	if other.Build.Dependencies != nil {
		r.Build.Dependencies = other.Build.Dependencies
	}
	if other.Build.Match != "" {
		r.Build.Match = strings.ToLower(other.Build.Match)
	}

	if other.EngineINI.Path != "" {
		r.EngineINI.Path = other.EngineINI.Path
	}
	if other.EngineINI.Keys != nil {
		r.EngineINI.Keys = other.EngineINI.Keys
	}
}

// Validate checks the rulebook for values the validator cannot act on.
func (r *Rulebook) Validate() error {
	if r.Descriptor == "" {
		return fmt.Errorf("descriptor must not be empty")
	}
	if r.Module.Name == "" {
		return fmt.Errorf("module.name must not be empty")
	}

	for i, f := range r.Files {
		if f.Path == "" {
			return fmt.Errorf("files[%d].path must not be empty", i)
		}
		if f.Label == "" {
			return fmt.Errorf("files[%d].label must not be empty", i)
		}
	}

	if r.Build.Path == "" {
		return fmt.Errorf("build.path must not be empty")
	}
	switch r.Build.Match {
	case MatchCall, MatchSubstring:
	default:
		return fmt.Errorf("build.match must be '%s' or '%s', got %s", MatchCall, MatchSubstring, r.Build.Match)
	}

	if r.EngineINI.Path == "" {
		return fmt.Errorf("engine_ini.path must not be empty")
	}
	for i, k := range r.EngineINI.Keys {
		if k.Key == "" {
			return fmt.Errorf("engine_ini.keys[%d].key must not be empty", i)
		}
		if strings.ContainsAny(k.Key, "=\n") {
			return fmt.Errorf("engine_ini.keys[%d].key must not contain '=' or newlines, got %q", i, k.Key)
		}
	}

	for _, p := range []string{r.Descriptor, r.Build.Path, r.EngineINI.Path} {
		if filepath.IsAbs(p) {
			return fmt.Errorf("paths must be relative to the project root, got %s", p)
		}
	}

	return nil
}

// BuildFileName returns the base name of the build file for diagnostics.
func (r *Rulebook) BuildFileName() string {
	return filepath.Base(filepath.FromSlash(r.Build.Path))
}

// EngineININame returns the base name of the engine ini for diagnostics.
func (r *Rulebook) EngineININame() string {
	return filepath.Base(filepath.FromSlash(r.EngineINI.Path))
}

// WatchedPaths returns every project-relative file the rulebook reads,
// including the rulebook files themselves, de-duplicated and sorted.
func (r *Rulebook) WatchedPaths() []string {
	seen := make(map[string]bool)
	add := func(p string) {
		if p != "" {
			seen[filepath.ToSlash(filepath.Clean(p))] = true
		}
	}

	add(RulebookFile)
	add(rulebookFileAlt)
	add(r.Descriptor)
	for _, f := range r.Files {
		add(f.Path)
	}
	add(r.Build.Path)
	add(r.EngineINI.Path)

	paths := make([]string, 0, len(seen))
	for p := range seen {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// WriteYAML writes the rulebook to a YAML file.
func (r *Rulebook) WriteYAML(path string) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal rulebook: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write rulebook file: %w", err)
	}

	return nil
}

// FindProjectRoot finds the project root directory.
// It walks up from startDir looking for a rulebook file or a *.uproject
// descriptor, and falls back to startDir when neither is found.
func FindProjectRoot(startDir string) (string, error) {
	absDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}

	currentDir := absDir
	for {
		if RulebookPath(currentDir) != "" {
			return currentDir, nil
		}

		if matches, _ := filepath.Glob(filepath.Join(currentDir, "*.uproject")); len(matches) > 0 {
			return currentDir, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root, return original directory
			return absDir, nil
		}
		currentDir = parentDir
	}
}

// fileExists checks if a regular file exists at path.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
