package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/koskimas/json2code/internal/compile"
	"github.com/koskimas/json2code/internal/config"
	"github.com/koskimas/json2code/internal/gen"
	"github.com/koskimas/json2code/internal/model/swagger"
	"github.com/koskimas/json2code/internal/types"
)

type Settings struct {
	WorkingDir string

	// ConfigFile is read if it exists. It must exist when ConfigRequired is
	// set.
	ConfigFile     string
	ConfigRequired bool

	Flags Flags

	// LogOutput defaults to stderr.
	LogOutput io.Writer
}

// Flags are the command line overrides. Zero values and a nil Debug are not
// applied.
type Flags struct {
	File      string
	InDir     string
	Pattern   string
	OutDir    string
	Output    string
	Package   string
	SQLSchema string
	Combined  string
	Targets   []string
	Debug     *int
	Check     bool
	Validate  bool
}

func (f Flags) apply(c *config.Config) {
	if f.File != "" {
		c.File = f.File
		c.InDir = ""
	}
	if f.InDir != "" {
		c.InDir = f.InDir
		c.File = ""
	}
	if f.Pattern != "" {
		c.Pattern = f.Pattern
	}
	if f.OutDir != "" {
		c.OutDir = f.OutDir
	}
	if f.Output != "" {
		c.Output = f.Output
	}
	if f.Package != "" {
		c.Package = f.Package
	}
	if f.SQLSchema != "" {
		c.SQLSchema = f.SQLSchema
	}
	if f.Combined != "" {
		c.Combined = f.Combined
	}
	if len(f.Targets) > 0 {
		c.Targets = f.Targets
	}
	if f.Debug != nil {
		c.Debug = *f.Debug
	}
	if f.Check {
		c.Check = true
	}
	if f.Validate {
		c.ValidateInput = true
	}
}

func Run(s Settings) error {
	cfg, err := loadConfig(s)
	if err != nil {
		return err
	}

	logger := newLogger(s.LogOutput, cfg.Debug)

	inputs, err := findInputs(s, cfg)
	if err != nil {
		return err
	}

	if len(inputs) == 0 {
		logger.Warn("no input files found", slog.String("dir", cfg.InDir), slog.String("pattern", cfg.Pattern))
	}

	files, err := generate(s, cfg, inputs, logger)
	if err != nil {
		return err
	}

	wrote, err := gen.WriteAll(files, gen.WriteOptions{Check: cfg.Check})
	if err != nil {
		return err
	}

	logger.Info("done", slog.Int("inputs", len(inputs)), slog.Int("files", len(files)), slog.Int("written", wrote))
	return nil
}

func loadConfig(s Settings) (*config.Config, error) {
	configFile := s.ConfigFile
	if configFile == "" {
		configFile = config.DefaultFile
	}

	cfg, err := config.Load(resolvePath(s.WorkingDir, configFile), s.ConfigRequired)
	if err != nil {
		return nil, err
	}

	s.Flags.apply(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// generate compiles every input in order and renders the outputs. Nothing is
// written here so that a failing input leaves the output directory as it was.
func generate(s Settings, cfg *config.Config, inputs []string, logger *slog.Logger) ([]gen.File, error) {
	loader, err := swagger.NewLoader(swagger.Options{Validate: cfg.ValidateInput})
	if err != nil {
		return nil, err
	}

	generator, err := gen.NewGenerator(gen.Options{
		Package:   cfg.Package,
		SQLSchema: cfg.SQLSchema,
		OutDir:    cfg.OutDir,
		Output:    cfg.Output,
		Targets:   targets(cfg.Targets),
	})
	if err != nil {
		return nil, err
	}

	table := types.NewTable()
	files := make([]gen.File, 0)

	var manifest gen.Manifest
	for _, in := range inputs {
		logger.Debug("parsing", slog.String("file", in))

		doc, err := loader.Load(resolvePath(s.WorkingDir, in))
		if err != nil {
			return nil, err
		}

		doc.File = in

		unit, err := compile.File(doc, table, logger)
		if err != nil {
			return nil, err
		}

		out, err := generator.Generate(unit)
		if err != nil {
			return nil, err
		}

		for _, o := range out {
			logger.Debug("creating", slog.String("file", o.Path))
		}

		manifest.Add(unit, out)
		files = append(files, out...)
	}

	logger.Debug("known types", slog.Int("count", table.Len()), slog.Any("types", table.Names()))

	if cfg.Combined != "" {
		data, err := manifest.Render()
		if err != nil {
			return nil, fmt.Errorf(`failed to render manifest: %w`, err)
		}

		files = append(files, gen.File{Path: cfg.Combined, Data: data})
	}

	for i := range files {
		files[i].Path = resolvePath(s.WorkingDir, files[i].Path)
	}

	return files, nil
}

// findInputs returns the input files relative to the working directory. In
// directory mode the matches are in lexical order and model definition
// sidecars are skipped.
func findInputs(s Settings, cfg *config.Config) ([]string, error) {
	if cfg.File != "" {
		return []string{cfg.File}, nil
	}

	dir := resolvePath(s.WorkingDir, cfg.InDir)

	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf(`failed to read input directory "%s": %w`, cfg.InDir, err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf(`input directory "%s" is not a directory`, cfg.InDir)
	}

	matches, err := filepath.Glob(filepath.Join(dir, cfg.Pattern))
	if err != nil {
		return nil, fmt.Errorf(`failed to resolve input files using glob "%s": %w`, cfg.Pattern, err)
	}

	inputs := make([]string, 0, len(matches))
	for _, m := range matches {
		if swagger.IsSidecar(m) {
			continue
		}

		if info, err := os.Stat(m); err != nil || info.IsDir() {
			continue
		}

		inputs = append(inputs, filepath.Join(cfg.InDir, filepath.Base(m)))
	}

	return inputs, nil
}

func targets(names []string) []gen.Target {
	out := make([]gen.Target, len(names))

	for i, n := range names {
		out[i] = gen.Target(n)
	}

	return out
}

func resolvePath(workingDir string, path string) string {
	if filepath.IsAbs(path) || workingDir == "" {
		return path
	}

	return filepath.Join(workingDir, path)
}

// newLogger maps the debug level to a minimum log level: 0 is quiet, 1 shows
// warnings and errors and 2 shows everything.
func newLogger(w io.Writer, debug int) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}

	level := slog.LevelWarn
	switch debug {
	case 0:
		level = slog.LevelError + 4
	case 2:
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
