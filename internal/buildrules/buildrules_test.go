package buildrules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const eldaraBuild = `using System.IO;
using UnrealBuildTool;

public class Eldara : ModuleRules
{
    public Eldara(ReadOnlyTargetRules Target) : base(Target)
    {
        PCHUsage = PCHUsageMode.UseExplicitOrSharedPCHs;

        PublicIncludePaths.AddRange(new[]
        {
            ModuleDirectory,
            Path.Combine(ModuleDirectory, "AI")
        });

        PublicDependencyModuleNames.AddRange(new[]
        {
            "Core",
            "CoreUObject",
            "Engine",
            "InputCore",
            "EnhancedInput",
            "AIModule",
            "GameplayTasks",
            "UMG"
        });
    }
}
`

var required = []string{"EnhancedInput", "AIModule", "UMG", "Networking", "Sockets"}

func TestExtract_AddRangeBlock(t *testing.T) {
	// When: scanning the real module build file
	scan := Extract(eldaraBuild)

	// Then: one block with all eight names; include paths are not counted
	assert.Equal(t, 1, scan.Blocks)
	assert.Equal(t, []string{"AIModule", "Core", "CoreUObject", "Engine", "EnhancedInput", "GameplayTasks", "InputCore", "UMG"}, scan.Dependencies.Sorted())
	assert.False(t, scan.Dependencies.Has("AI"))
	assert.Equal(t, []string{"Networking", "Sockets"}, scan.MissingFrom(required))
}

func TestExtract_UnionAcrossBlocks(t *testing.T) {
	// Given: public and private declarations, typed arrays and lists, and a single Add
	text := `
		PublicDependencyModuleNames.AddRange(new string[] { "Core", "UMG" });
		PrivateDependencyModuleNames.AddRange(new List<string> { "Networking" });
		PrivateDependencyModuleNames.Add("Sockets");
		DynamicallyLoadedModuleNames.Add("OnlineSubsystemSteam");
	`

	scan := Extract(text)

	assert.Equal(t, 3, scan.Blocks)
	assert.Equal(t, []string{"Core", "Networking", "Sockets", "UMG"}, scan.Dependencies.Sorted())
}

func TestExtract_IgnoresComments(t *testing.T) {
	text := `
		PublicDependencyModuleNames.AddRange(new[] {
			"Core",
			// "Sockets",
			/* "Networking", */
			"UMG"
		});
		// PrivateDependencyModuleNames.Add("AIModule");
	`

	scan := Extract(text)

	assert.Equal(t, 1, scan.Blocks)
	assert.Equal(t, []string{"Core", "UMG"}, scan.Dependencies.Sorted())
}

func TestExtract_CommentMarkersInsideStrings(t *testing.T) {
	// Given: string literals holding /* and // before a later block comment
	text := `
		PublicIncludePaths.Add("Plugins/*");
		PublicDependencyModuleNames.AddRange(new[] { "Core", "UMG" });
		PrivateIncludePaths.Add("http://example.invalid/x");
		PrivateDependencyModuleNames.Add("Sockets");
		/* "Networking" */
	`

	// When: scanning
	scan := Extract(text)

	// Then: declarations between the markers survive, the real comment does not
	assert.Equal(t, 2, scan.Blocks)
	assert.Equal(t, []string{"Core", "Sockets", "UMG"}, scan.Dependencies.Sorted())
	assert.False(t, scan.Dependencies.Has("Networking"))
}

func TestExtract_NoDeclarations(t *testing.T) {
	scan := Extract(`public class Empty : ModuleRules { }`)

	assert.Zero(t, scan.Blocks)
	assert.Empty(t, scan.Dependencies)
	assert.Equal(t, required, scan.MissingFrom(required))
}

func TestMissingFrom_OrderFollowsRequired(t *testing.T) {
	// Given: a block listing UMG before EnhancedInput
	scan := Extract(`PublicDependencyModuleNames.AddRange(new[] { "UMG", "EnhancedInput" });`)

	// Then: exactly three names are missing, in rulebook order
	assert.Equal(t, []string{"AIModule", "Networking", "Sockets"}, scan.MissingFrom(required))
}

func TestMissingSubstrings_LooseScan(t *testing.T) {
	// A commented-out name still counts in the loose scan
	text := `// "Sockets"
	PublicDependencyModuleNames.AddRange(new[] { "EnhancedInput", "AIModule", "UMG" });
	var n = "NetworkingHelpers";`

	assert.Empty(t, MissingSubstrings(text, required))
	assert.Equal(t, []string{"UMG"}, MissingSubstrings("nothing", []string{"UMG"}))
}
