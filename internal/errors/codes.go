// Package errors provides the diagnostic taxonomy for eldaracheck.
//
// Error codes follow the pattern ERR_XXX_DESCRIPTION where:
//   - 1XX: Project descriptor errors
//   - 2XX: Missing files
//   - 3XX: Build dependency errors
//   - 4XX: Engine configuration errors
//   - 5XX: Tool errors (rulebook, internal)
package errors

// Category defines error categories for classification.
type Category string

const (
	// CategoryDescriptor indicates problems in the .uproject descriptor.
	CategoryDescriptor Category = "DESCRIPTOR"
	// CategoryFile indicates a required file is absent.
	CategoryFile Category = "FILE"
	// CategoryBuild indicates module build dependency problems.
	CategoryBuild Category = "BUILD"
	// CategoryConfig indicates engine configuration problems.
	CategoryConfig Category = "CONFIG"
	// CategoryInternal indicates errors in the tool itself.
	CategoryInternal Category = "INTERNAL"
)

// Severity defines diagnostic severity levels.
type Severity string

const (
	// SeverityError fails the check run.
	SeverityError Severity = "ERROR"
	// SeverityWarning is reported but never changes the verdict.
	SeverityWarning Severity = "WARNING"
)

// Kind names the class of a diagnostic as shown to users and tools.
type Kind string

const (
	KindParse             Kind = "ParseError"
	KindMissingField      Kind = "MissingFieldError"
	KindMissingModule     Kind = "MissingModuleError"
	KindWrongValue        Kind = "WrongValueError"
	KindMissingPlatform   Kind = "MissingPlatformError"
	KindMissingFile       Kind = "MissingFileError"
	KindMissingDependency Kind = "MissingDependencyError"
	KindMissingConfig     Kind = "MissingConfigError"
	KindInternal          Kind = "InternalError"
)

// Error codes organized by category.
const (
	// Descriptor errors (100-199)
	ErrCodeDescriptorParse = "ERR_101_DESCRIPTOR_PARSE"
	ErrCodeMissingField    = "ERR_102_MISSING_FIELD"
	ErrCodeMissingModule   = "ERR_103_MISSING_MODULE"
	ErrCodeWrongModuleType = "ERR_104_WRONG_MODULE_TYPE"
	ErrCodeMissingPlatform = "ERR_105_MISSING_PLATFORM"

	// File errors (200-299)
	ErrCodeMissingFile = "ERR_201_MISSING_FILE"

	// Build errors (300-399)
	ErrCodeMissingDependency = "ERR_301_MISSING_DEPENDENCY"

	// Engine config errors (400-499)
	ErrCodeMissingConfig    = "ERR_401_MISSING_CONFIG"
	ErrCodeWrongConfigValue = "ERR_402_WRONG_CONFIG_VALUE"

	// Tool errors (500-599)
	ErrCodeRulebookInvalid = "ERR_501_RULEBOOK_INVALID"
	ErrCodeInternal        = "ERR_502_INTERNAL"
)

// categoryFromCode extracts category from error code.
func categoryFromCode(code string) Category {
	if len(code) < 7 {
		return CategoryInternal
	}

	// Numeric portion, e.g. "101" from "ERR_101_DESCRIPTOR_PARSE"
	switch code[4] {
	case '1':
		return CategoryDescriptor
	case '2':
		return CategoryFile
	case '3':
		return CategoryBuild
	case '4':
		return CategoryConfig
	default:
		return CategoryInternal
	}
}

// kindFromCode maps an error code onto its diagnostic kind.
func kindFromCode(code string) Kind {
	switch code {
	case ErrCodeDescriptorParse:
		return KindParse
	case ErrCodeMissingField:
		return KindMissingField
	case ErrCodeMissingModule:
		return KindMissingModule
	case ErrCodeWrongModuleType, ErrCodeWrongConfigValue:
		return KindWrongValue
	case ErrCodeMissingPlatform:
		return KindMissingPlatform
	case ErrCodeMissingFile:
		return KindMissingFile
	case ErrCodeMissingDependency:
		return KindMissingDependency
	case ErrCodeMissingConfig:
		return KindMissingConfig
	default:
		return KindInternal
	}
}
