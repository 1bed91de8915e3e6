package validator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/worldofeldara/eldaracheck/internal/buildrules"
	"github.com/worldofeldara/eldaracheck/internal/config"
	"github.com/worldofeldara/eldaracheck/internal/descriptor"
	"github.com/worldofeldara/eldaracheck/internal/engineini"
	cerrors "github.com/worldofeldara/eldaracheck/internal/errors"
	"github.com/worldofeldara/eldaracheck/internal/output"
)

const (
	passHeader = "Unreal project check succeeded."
	failHeader = "Unreal project check failed:"
)

// Checker performs project configuration checks.
type Checker struct {
	rules     *config.Rulebook
	logger    *slog.Logger
	output    io.Writer
	errOutput io.Writer
	color     bool
}

// Option configures a Checker.
type Option func(*Checker)

// WithRules sets the rulebook. Defaults to config.NewRulebook().
func WithRules(rules *config.Rulebook) Option {
	return func(c *Checker) {
		if rules != nil {
			c.rules = rules
		}
	}
}

// WithLogger sets the logger used for debug tracing of checks.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Checker) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithOutput sets the writer for success output.
func WithOutput(w io.Writer) Option {
	return func(c *Checker) {
		c.output = w
	}
}

// WithErrOutput sets the writer for failure output.
func WithErrOutput(w io.Writer) Option {
	return func(c *Checker) {
		c.errOutput = w
	}
}

// WithColor enables styled report headers.
func WithColor(color bool) Option {
	return func(c *Checker) {
		c.color = color
	}
}

// New creates a new Checker with the given options.
func New(opts ...Option) *Checker {
	c := &Checker{
		rules:     config.NewRulebook(),
		logger:    slog.Default(),
		output:    os.Stdout,
		errOutput: os.Stderr,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Rules returns the rulebook the checker validates against.
func (c *Checker) Rules() *config.Rulebook {
	return c.rules
}

// Run runs every check against the project at root and returns the report.
// Checks are independent; a failure in one never prevents the others,
// except that descriptor-derived checks are skipped when the descriptor
// cannot be parsed.
func (c *Checker) Run(_ context.Context, root string) *Report {
	report := &Report{Root: root}

	c.logger.Debug("Project check started",
		slog.String("root", root),
		slog.String("descriptor", c.rules.Descriptor))

	report.merge(c.traced("descriptor", c.CheckDescriptor(root)))
	report.merge(c.traced("required_files", c.CheckRequiredFiles(root)))
	report.merge(c.traced("build_dependencies", c.CheckBuildDependencies(root)))
	report.merge(c.traced("engine_config", c.CheckEngineConfig(root)))

	c.logger.Debug("Project check finished",
		slog.String("root", root),
		slog.Bool("passed", report.Passed()),
		slog.Int("diagnostics", len(report.Diagnostics)),
		slog.Int("warnings", len(report.Warnings)))

	return report
}

// traced logs the outcome of a single check and passes its result through.
func (c *Checker) traced(name string, res result) result {
	c.logger.Debug("Check completed",
		slog.String("check", name),
		slog.Int("diagnostics", len(res.diagnostics)),
		slog.Int("warnings", len(res.warnings)))
	for _, d := range res.diagnostics {
		attrs := make([]any, 0, 4)
		for k, v := range cerrors.FormatForLog(d) {
			attrs = append(attrs, slog.Any(k, v))
		}
		c.logger.Debug("Check failed", attrs...)
	}
	return res
}

// CheckDescriptor parses the project descriptor and validates
// EngineAssociation, the required module and the target platforms.
func (c *Checker) CheckDescriptor(root string) result {
	var res result
	name := filepath.Base(filepath.FromSlash(c.rules.Descriptor))
	rel := filepath.ToSlash(c.rules.Descriptor)

	data, err := os.ReadFile(c.resolve(root, c.rules.Descriptor))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			res.fail(cerrors.ParseError(fmt.Sprintf("%s is missing", name), err).WithPath(rel))
		} else {
			res.fail(cerrors.ParseError(fmt.Sprintf("%s could not be read: %v", name, err), err).WithPath(rel))
		}
		return res
	}

	desc, err := descriptor.Parse(data)
	if err != nil {
		if errors.Is(err, descriptor.ErrNotObject) {
			res.fail(cerrors.ParseError(fmt.Sprintf("%s is not a JSON object", name), err).WithPath(rel))
		} else {
			res.fail(cerrors.ParseError(fmt.Sprintf("%s is not valid JSON: %v", name, err), err).WithPath(rel))
		}
		return res
	}

	if desc.EngineAssociation == "" {
		res.fail(cerrors.Newf(cerrors.ErrCodeMissingField,
			"EngineAssociation is not set in %s", name).
			WithPath(rel).
			WithDetail("field", "EngineAssociation"))
	}

	module := c.rules.Module
	if m, ok := desc.Module(module.Name); !ok {
		res.fail(cerrors.Newf(cerrors.ErrCodeMissingModule,
			"%s module is missing from %s", module.Name, name).
			WithPath(rel).
			WithDetail("module", module.Name))
	} else if module.Type != "" && m.Type != module.Type {
		res.fail(cerrors.Newf(cerrors.ErrCodeWrongModuleType,
			"%s module should have Type=%q", module.Name, module.Type).
			WithPath(rel).
			WithDetail("expected", module.Type).
			WithDetail("actual", m.Type))
	}

	if missing := missingPlatforms(c.rules.Platforms, desc); len(missing) > 0 {
		res.fail(cerrors.Newf(cerrors.ErrCodeMissingPlatform,
			"%s missing target platforms: %s", name, strings.Join(missing, ", ")).
			WithPath(rel).
			WithDetail("platforms", strings.Join(missing, ",")))
	}

	return res
}

// missingPlatforms returns required platforms absent from the descriptor,
// de-duplicated and sorted.
func missingPlatforms(required []string, desc *descriptor.Descriptor) []string {
	seen := make(map[string]bool)
	var missing []string
	for _, p := range required {
		if seen[p] || desc.HasPlatform(p) {
			continue
		}
		seen[p] = true
		missing = append(missing, p)
	}
	sort.Strings(missing)
	return missing
}

// CheckRequiredFiles verifies every file rule points at an existing file.
func (c *Checker) CheckRequiredFiles(root string) result {
	var res result
	for _, f := range c.rules.Files {
		if isFile(c.resolve(root, f.Path)) {
			continue
		}
		rel := filepath.ToSlash(f.Path)
		res.fail(cerrors.MissingFileError(
			fmt.Sprintf("%s is missing at %s", f.Label, rel), rel).
			WithDetail("label", f.Label))
	}
	return res
}

// CheckBuildDependencies scans the module build file for the required
// dependencies. A missing build file is reported by CheckRequiredFiles,
// so this check is silent when the file is absent.
func (c *Checker) CheckBuildDependencies(root string) result {
	var res result
	build := c.rules.Build
	path := c.resolve(root, build.Path)
	if !isFile(path) {
		return res
	}

	name := c.rules.BuildFileName()
	rel := filepath.ToSlash(build.Path)

	data, err := os.ReadFile(path)
	if err != nil {
		res.fail(cerrors.New(cerrors.ErrCodeMissingFile,
			fmt.Sprintf("%s could not be read: %v", name, err), err).WithPath(rel))
		return res
	}
	text := string(data)

	var missing []string
	switch build.Match {
	case config.MatchSubstring:
		missing = buildrules.MissingSubstrings(text, build.Dependencies)
	default:
		scan := buildrules.Extract(text)
		if scan.Blocks == 0 {
			res.warn(fmt.Sprintf("no dependency declarations found in %s", name))
		}
		missing = scan.MissingFrom(build.Dependencies)
	}

	for _, dep := range missing {
		res.fail(cerrors.Newf(cerrors.ErrCodeMissingDependency,
			"%s should depend on %s", name, dep).
			WithPath(rel).
			WithDetail("dependency", dep))
	}
	return res
}

// CheckEngineConfig validates the engine ini keys.
func (c *Checker) CheckEngineConfig(root string) result {
	var res result
	ini := c.rules.EngineINI
	rel := filepath.ToSlash(ini.Path)
	path := c.resolve(root, ini.Path)

	if !isFile(path) {
		res.fail(cerrors.MissingFileError(fmt.Sprintf("%s is missing", rel), rel))
		return res
	}

	file, err := engineini.Load(path)
	if err != nil {
		res.fail(cerrors.New(cerrors.ErrCodeMissingFile,
			fmt.Sprintf("%s could not be read: %v", rel, err), err).WithPath(rel))
		return res
	}

	name := c.rules.EngineININame()
	for _, k := range ini.Keys {
		value := file.Get(k.Key)
		if k.Expect == "" {
			if value == "" {
				res.fail(cerrors.Newf(cerrors.ErrCodeMissingConfig,
					"%s is not configured in %s", k.Key, name).
					WithPath(rel).
					WithDetail("key", k.Key))
			}
			continue
		}
		if value != k.Expect {
			res.fail(cerrors.Newf(cerrors.ErrCodeWrongConfigValue,
				"%s should be %s", k.Key, k.Expect).
				WithPath(rel).
				WithDetail("key", k.Key).
				WithDetail("expected", k.Expect).
				WithDetail("actual", value))
		}
	}
	return res
}

// PrintReport writes the human-readable report. A passing report goes to
// the output writer, a failing one to the error writer.
func (c *Checker) PrintReport(r *Report) {
	if r.Passed() {
		w := output.NewStyled(c.output, c.color)
		w.Pass(passHeader)
		for _, warning := range r.Warnings {
			w.Line("Warning: " + warning)
		}
		return
	}

	w := output.NewStyled(c.errOutput, c.color)
	w.Fail(failHeader)
	for _, d := range r.Diagnostics {
		w.Bullet(d.Message)
	}
	if len(r.Warnings) > 0 {
		w.Heading("Warnings:")
		for _, warning := range r.Warnings {
			w.Bullet(warning)
		}
	}
}

// resolve joins a rulebook path (always forward slashes) onto root.
func (c *Checker) resolve(root, rel string) string {
	return filepath.Join(root, filepath.FromSlash(rel))
}

// isFile reports whether path exists and is a regular file.
func isFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
