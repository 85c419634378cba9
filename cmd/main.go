package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/koskimas/json2code/internal/cmd"
)

type CLI struct {
	File     string   `help:"Single API description file." short:"f" xor:"input"`
	InDir    string   `help:"Directory of API description files." name:"indir" xor:"input"`
	Pattern  string   `help:"Glob of input files in directory mode (default *.json)."`
	OutDir   string   `help:"Output directory (default autogen)." name:"outdir"`
	Output   string   `help:"Base name of the output files in single file mode." short:"o"`
	Package  string   `help:"Go package of the generated code (default api)."`
	Schema   string   `help:"Postgres schema of the generated tables." name:"sql-schema"`
	Combined string   `help:"Path of the manifest listing every generated file (default autogen/manifest.yaml)."`
	Targets  []string `help:"Comma separated outputs: go, sql, ir (default go)." sep:","`
	Debug    int      `help:"0 quiet, 1 errors, 2 verbose (default 1)." default:"-1"`
	Check    bool     `help:"Fail if the generated files are not up to date instead of writing them."`
	Validate bool     `help:"Validate input documents against their JSON schema."`
	Config   string   `help:"Config file (default json2code.yaml if it exists)."`
}

func main() {
	cli := &CLI{}
	kong.Parse(cli,
		kong.Name("json2code"),
		kong.Description("Compiles JSON API descriptions into record types and route descriptors."),
		kong.UsageOnError(),
	)

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	wd, err := os.Getwd()
	if err != nil {
		logger.Error("failed to determine working directory", slog.Any("err", err))
		os.Exit(1)
	}

	var debug *int
	if cli.Debug >= 0 {
		debug = &cli.Debug
	}

	err = cmd.Run(cmd.Settings{
		WorkingDir:     wd,
		ConfigFile:     cli.Config,
		ConfigRequired: cli.Config != "",
		Flags: cmd.Flags{
			File:      cli.File,
			InDir:     cli.InDir,
			Pattern:   cli.Pattern,
			OutDir:    cli.OutDir,
			Output:    cli.Output,
			Package:   cli.Package,
			SQLSchema: cli.Schema,
			Combined:  cli.Combined,
			Targets:   cli.Targets,
			Debug:     debug,
			Check:     cli.Check,
			Validate:  cli.Validate,
		},
	})

	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}
