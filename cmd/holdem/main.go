package main

import (
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	LogLevel string           `help:"Log level (debug|info|warn|error), overrides the config file"`

	Play     PlayCmd     `cmd:"" help:"Play hands at a table configured in HCL"`
	Eval     EvalCmd     `cmd:"" help:"Evaluate and rank hole cards against a board"`
	Simulate SimulateCmd `cmd:"" help:"Run many tables of built-in agents concurrently"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("holdem"),
		kong.Description("Texas Hold'em table engine with built-in agents"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli)
	ctx.FatalIfErrorf(err)
}

// newLogger builds the process logger. An empty level means info.
func newLogger(w io.Writer, level string) *log.Logger {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
	})
}

func stderrLogger(level string) *log.Logger {
	return newLogger(os.Stderr, level)
}

// quietLogger discards output; simulated tables would otherwise flood stderr.
func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}
