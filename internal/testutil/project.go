// Package testutil builds Unreal project fixtures on disk for tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// ValidDescriptor is an Eldara.uproject that satisfies the default rulebook.
const ValidDescriptor = `{
	"FileVersion": 3,
	"EngineAssociation": "5.3",
	"Category": "",
	"Description": "",
	"Modules": [
		{
			"Name": "Eldara",
			"Type": "Runtime",
			"LoadingPhase": "Default"
		}
	],
	"TargetPlatforms": ["Win64", "Linux"]
}
`

// ValidBuildRules is an Eldara.Build.cs that declares every required dependency.
const ValidBuildRules = `using UnrealBuildTool;

public class Eldara : ModuleRules
{
	public Eldara(ReadOnlyTargetRules Target) : base(Target)
	{
		PCHUsage = PCHUsageMode.UseExplicitOrSharedPCHs;

		PublicDependencyModuleNames.AddRange(new string[] { "Core", "CoreUObject", "Engine", "InputCore", "EnhancedInput", "AIModule", "UMG" });

		PrivateDependencyModuleNames.AddRange(new string[] { "Networking", "Sockets" });
	}
}
`

// ValidEngineINI is a DefaultEngine.ini with every required key set.
const ValidEngineINI = `[/Script/EngineSettings.GameMapsSettings]
GameDefaultMap=/Game/Maps/Eldara_Main.Eldara_Main
GlobalDefaultGameMode=/Script/Eldara.EldaraGameModeBase
GameInstanceClass=/Script/Eldara.EldaraGameInstance

[/Script/Engine.RendererSettings]
r.DefaultFeature.AutoExposure=False
`

// TargetStub is the content written for target files; only presence is checked.
const TargetStub = "using UnrealBuildTool;\n"

// Project is a fixture project rooted at Root.
type Project struct {
	t    testing.TB
	Root string
}

// NewValidProject writes a project that passes every default check.
func NewValidProject(t testing.TB) *Project {
	t.Helper()
	p := &Project{t: t, Root: t.TempDir()}
	p.Write("Eldara.uproject", ValidDescriptor)
	p.Write("Source/Eldara.Target.cs", TargetStub)
	p.Write("Source/EldaraEditor.Target.cs", TargetStub)
	p.Write("Source/Eldara/Eldara.Build.cs", ValidBuildRules)
	p.Write("Config/DefaultEngine.ini", ValidEngineINI)
	return p
}

// Write creates or replaces the file at rel (forward slashes).
func (p *Project) Write(rel, content string) {
	p.t.Helper()
	path := p.Path(rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		p.t.Fatalf("mkdir for %s: %v", rel, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		p.t.Fatalf("write %s: %v", rel, err)
	}
}

// Remove deletes the file at rel.
func (p *Project) Remove(rel string) {
	p.t.Helper()
	if err := os.Remove(p.Path(rel)); err != nil {
		p.t.Fatalf("remove %s: %v", rel, err)
	}
}

// Path returns the absolute path of rel inside the project.
func (p *Project) Path(rel string) string {
	return filepath.Join(p.Root, filepath.FromSlash(rel))
}
