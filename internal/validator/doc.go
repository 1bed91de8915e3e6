// Package validator runs the project configuration checklist against an
// Unreal project root and produces a diagnostic report.
//
// The checks run in a fixed order and never stop at the first failure:
//   - Project descriptor: parse, EngineAssociation, required module and
//     its Type, required target platforms
//   - Required files (game target, editor target, module build file)
//   - Module build dependencies
//   - Engine configuration keys
//
// Use the Checker type to run all checks:
//
//	checker := validator.New(validator.WithRules(rules))
//	report := checker.Run(ctx, "/path/to/project")
//	if !report.Passed() {
//	    // Handle failures
//	}
//
// A run only reads files. The report for an unchanged tree is identical
// across runs.
package validator
