// Package buildrules extracts module dependencies from Unreal *.Build.cs files.
//
// The extraction is heuristic. It does not parse C#; it finds calls of the
// form
//
//	PublicDependencyModuleNames.AddRange(new string[] { "Core", "UMG" });
//	PrivateDependencyModuleNames.Add("Sockets");
//
// and collects every double-quoted identifier inside the call's argument
// list. Comments are blanked out first so commented-out dependencies do not
// count. Anything more exotic (names built from variables, conditional
// concatenation) is not seen.
package buildrules

import (
	"regexp"
	"sort"
	"strings"
)

var (
	// declarationPattern matches a *DependencyModuleNames.Add/AddRange call
	// up to the closing parenthesis that precedes the statement's semicolon.
	declarationPattern = regexp.MustCompile(`(?s)\b\w*DependencyModuleNames\s*\.\s*Add(?:Range)?\s*\((.*?)\)\s*;`)

	// quotedIdentPattern matches a double-quoted module name.
	quotedIdentPattern = regexp.MustCompile(`"([A-Za-z_][A-Za-z0-9_]*)"`)

	// commentPattern matches // line comments, /* */ block comments and
	// double-quoted string literals. Literals are matched so comment markers
	// inside them ("Plugins/*", "http://") are kept as text.
	commentPattern = regexp.MustCompile(`(?s)"(?:[^"\\\n]|\\.)*"|//[^\n]*|/\*.*?\*/`)
)

// Dependencies is a set of declared module names.
type Dependencies map[string]struct{}

// Has reports whether name was declared.
func (d Dependencies) Has(name string) bool {
	_, ok := d[name]
	return ok
}

// Sorted returns the declared names in lexicographic order.
func (d Dependencies) Sorted() []string {
	names := make([]string, 0, len(d))
	for n := range d {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Scan is the result of scanning a build file.
type Scan struct {
	// Dependencies is the union of names across all declaration blocks.
	Dependencies Dependencies
	// Blocks is the number of declaration blocks matched.
	Blocks int
}

// Extract scans build file text for dependency declaration blocks.
func Extract(text string) Scan {
	stripped := commentPattern.ReplaceAllStringFunc(text, func(m string) string {
		if strings.HasPrefix(m, `"`) {
			return m
		}
		return ""
	})

	scan := Scan{Dependencies: make(Dependencies)}
	for _, block := range declarationPattern.FindAllStringSubmatch(stripped, -1) {
		scan.Blocks++
		for _, m := range quotedIdentPattern.FindAllStringSubmatch(block[1], -1) {
			scan.Dependencies[m[1]] = struct{}{}
		}
	}
	return scan
}

// MissingFrom returns the names in required that scan did not find,
// in the order they appear in required.
func (s Scan) MissingFrom(required []string) []string {
	var missing []string
	for _, name := range required {
		if !s.Dependencies.Has(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

// MissingSubstrings returns the names in required that do not occur
// anywhere in text. This is the loose scan: a name in a comment or an
// unrelated string counts as present.
func MissingSubstrings(text string, required []string) []string {
	var missing []string
	for _, name := range required {
		if !strings.Contains(text, name) {
			missing = append(missing, name)
		}
	}
	return missing
}
