package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/worldofeldara/eldaracheck/configs"
)

// =============================================================================
// Default Rulebook
// =============================================================================

func TestNewRulebook_ReturnsDefaults(t *testing.T) {
	// Given: no rulebook file exists
	rb := NewRulebook()

	// Then: the Eldara defaults are applied
	require.NotNil(t, rb)
	assert.Equal(t, 1, rb.Version)
	assert.Equal(t, "Eldara.uproject", rb.Descriptor)
	assert.Equal(t, ModuleRule{Name: "Eldara", Type: "Runtime"}, rb.Module)
	assert.Equal(t, []string{"Win64", "Linux"}, rb.Platforms)

	require.Len(t, rb.Files, 3)
	assert.Equal(t, "Source/Eldara.Target.cs", rb.Files[0].Path)
	assert.Equal(t, "Source/EldaraEditor.Target.cs", rb.Files[1].Path)
	assert.Equal(t, "Source/Eldara/Eldara.Build.cs", rb.Files[2].Path)

	assert.Equal(t, []string{"EnhancedInput", "AIModule", "UMG", "Networking", "Sockets"}, rb.Build.Dependencies)
	assert.Equal(t, MatchCall, rb.Build.Match)

	assert.Equal(t, "Config/DefaultEngine.ini", rb.EngineINI.Path)
	require.Len(t, rb.EngineINI.Keys, 3)
	assert.Equal(t, "GameDefaultMap", rb.EngineINI.Keys[0].Key)
	assert.Empty(t, rb.EngineINI.Keys[0].Expect)
	assert.Equal(t, "/Script/Eldara.EldaraGameModeBase", rb.EngineINI.Keys[1].Expect)
	assert.Equal(t, "/Script/Eldara.EldaraGameInstance", rb.EngineINI.Keys[2].Expect)

	assert.NoError(t, rb.Validate())
}

func TestRulebook_FileNames(t *testing.T) {
	rb := NewRulebook()

	assert.Equal(t, "Eldara.Build.cs", rb.BuildFileName())
	assert.Equal(t, "DefaultEngine.ini", rb.EngineININame())
}

func TestRulebook_WatchedPaths(t *testing.T) {
	// Given: the defaults, where the build file is also a required file
	rb := NewRulebook()

	// When: listing watched paths
	paths := rb.WatchedPaths()

	// Then: every input appears once, sorted
	assert.Equal(t, []string{
		".eldaracheck.yaml",
		".eldaracheck.yml",
		"Config/DefaultEngine.ini",
		"Eldara.uproject",
		"Source/Eldara.Target.cs",
		"Source/Eldara/Eldara.Build.cs",
		"Source/EldaraEditor.Target.cs",
	}, paths)
}

func TestRulebookTemplate_MatchesDefaults(t *testing.T) {
	// Given: the embedded template
	var parsed Rulebook
	require.NoError(t, yaml.Unmarshal([]byte(configs.RulebookTemplate), &parsed))

	// Then: it describes exactly the built-in defaults
	assert.Equal(t, *NewRulebook(), parsed)
}

// =============================================================================
// Loading
// =============================================================================

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	tmpDir := t.TempDir()

	rb, err := Load(tmpDir)

	require.NoError(t, err)
	assert.Equal(t, NewRulebook(), rb)
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	// Given: a rulebook that changes the match mode and the platform list
	tmpDir := t.TempDir()
	content := `
build:
  match: SUBSTRING
  dependencies: [UMG]
platforms: [Win64]
engine_ini:
  keys:
    - key: GameDefaultMap
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, RulebookFile), []byte(content), 0644))

	// When: loading
	rb, err := Load(tmpDir)

	// Then: lists are replaced and untouched fields keep defaults
	require.NoError(t, err)
	assert.Equal(t, MatchSubstring, rb.Build.Match)
	assert.Equal(t, []string{"UMG"}, rb.Build.Dependencies)
	assert.Equal(t, "Source/Eldara/Eldara.Build.cs", rb.Build.Path)
	assert.Equal(t, []string{"Win64"}, rb.Platforms)
	assert.Len(t, rb.EngineINI.Keys, 1)
	assert.Equal(t, "Eldara.uproject", rb.Descriptor)
	assert.Len(t, rb.Files, 3)
}

func TestLoad_EmptyListClearsRule(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, RulebookFile), []byte("platforms: []\n"), 0644))

	rb, err := Load(tmpDir)

	require.NoError(t, err)
	assert.Empty(t, rb.Platforms)
}

func TestLoad_YMLFallback(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".eldaracheck.yml"), []byte("project: Ludus\n"), 0644))

	rb, err := Load(tmpDir)

	require.NoError(t, err)
	assert.Equal(t, "Ludus", rb.Project)
}

func TestLoad_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, RulebookFile), []byte("build: [unclosed"), 0644))

	_, err := Load(tmpDir)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse rulebook")
}

func TestLoad_InvalidMatchMode(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, RulebookFile), []byte("build:\n  match: fuzzy\n"), 0644))

	_, err := Load(tmpDir)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "build.match")
}

// =============================================================================
// Validation
// =============================================================================

func TestRulebook_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *Rulebook)
		wantErr string
	}{
		{"empty descriptor", func(r *Rulebook) { r.Descriptor = "" }, "descriptor"},
		{"empty module", func(r *Rulebook) { r.Module.Name = "" }, "module.name"},
		{"file without path", func(r *Rulebook) { r.Files[0].Path = "" }, "files[0].path"},
		{"file without label", func(r *Rulebook) { r.Files[1].Label = "" }, "files[1].label"},
		{"empty build path", func(r *Rulebook) { r.Build.Path = "" }, "build.path"},
		{"empty ini path", func(r *Rulebook) { r.EngineINI.Path = "" }, "engine_ini.path"},
		{"empty key", func(r *Rulebook) { r.EngineINI.Keys[0].Key = "" }, "keys[0].key"},
		{"key with equals", func(r *Rulebook) { r.EngineINI.Keys[2].Key = "A=B" }, "keys[2].key"},
		{"absolute descriptor", func(r *Rulebook) { r.Descriptor = "/etc/Eldara.uproject" }, "relative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rb := NewRulebook()
			tt.mutate(rb)

			err := rb.Validate()

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRulebook_WriteYAMLRoundTrip(t *testing.T) {
	// Given: a customized rulebook written to disk
	tmpDir := t.TempDir()
	rb := NewRulebook()
	rb.Project = "Ludus"
	rb.Build.Match = MatchSubstring
	require.NoError(t, rb.WriteYAML(filepath.Join(tmpDir, RulebookFile)))

	// When: loading it back
	loaded, err := Load(tmpDir)

	// Then: the customizations survive
	require.NoError(t, err)
	assert.Equal(t, "Ludus", loaded.Project)
	assert.Equal(t, MatchSubstring, loaded.Build.Match)
}

// =============================================================================
// Project root discovery
// =============================================================================

func TestFindProjectRoot_FindsUProject(t *testing.T) {
	// Given: a project with a descriptor and a nested source dir
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "Eldara.uproject"), []byte("{}"), 0644))
	nested := filepath.Join(tmpDir, "Source", "Eldara")
	require.NoError(t, os.MkdirAll(nested, 0755))

	// When: searching from the nested dir
	root, err := FindProjectRoot(nested)

	// Then: the descriptor's directory is the root
	require.NoError(t, err)
	want, _ := filepath.EvalSymlinks(tmpDir)
	got, _ := filepath.EvalSymlinks(root)
	assert.Equal(t, want, got)
}

func TestFindProjectRoot_FindsRulebook(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, RulebookFile), []byte("version: 1\n"), 0644))
	nested := filepath.Join(tmpDir, "Config")
	require.NoError(t, os.MkdirAll(nested, 0755))

	root, err := FindProjectRoot(nested)

	require.NoError(t, err)
	want, _ := filepath.EvalSymlinks(tmpDir)
	got, _ := filepath.EvalSymlinks(root)
	assert.Equal(t, want, got)
}
