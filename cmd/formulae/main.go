package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/midbel/cli"

	"github.com/peternovig/formulae/internal/config"
)

var errFail = errors.New("fail")

var (
	summary = "formulae"
	help    = `formulae parses spreadsheet formulas and shows their syntax tree.

A formula is given as the arguments of a command or, when no argument is
given, read from standard input. The leading '=' is optional.

Settings are read from formulae.yaml (or the file given with -config) and
from FORMULAE_* environment variables.`
)

// Env is what commands share: settings, logger and where to write.
type Env struct {
	Config *config.Config
	Logger *slog.Logger
	Stdout io.Writer
	Stdin  io.Reader
}

func main() {
	var (
		set     = cli.NewFlagSet("formulae")
		cfgFile string
	)
	set.StringVar(&cfgFile, "config", "", "read settings from file")
	if err := set.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			root := prepare(nil)
			root.SetSummary(summary)
			root.SetHelp(help)
			root.Help()
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	env := Env{
		Config: cfg,
		Logger: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: cfg.Level(),
		})),
		Stdout: os.Stdout,
		Stdin:  os.Stdin,
	}
	if cfg.File != "" {
		env.Logger.Debug("configuration loaded", "file", cfg.File)
	}

	root := prepare(&env)
	root.SetSummary(summary)
	root.SetHelp(help)

	err = root.Execute(set.Args())
	if err != nil {
		if s, ok := err.(cli.SuggestionError); ok && len(s.Others) > 0 {
			fmt.Fprintln(os.Stderr, "similar command(s)")
			for _, n := range s.Others {
				fmt.Fprintln(os.Stderr, "-", n)
			}
		}
		if !errors.Is(err, errFail) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func prepare(env *Env) *cli.CommandTrie {
	if env == nil {
		env = &Env{
			Config: config.Default(),
			Logger: slog.New(slog.DiscardHandler),
			Stdout: os.Stdout,
			Stdin:  os.Stdin,
		}
	}
	root := cli.New()
	root.Register([]string{"dump"}, dumpCommand(env))
	root.Register([]string{"tokens"}, tokensCommand(env))
	root.Register([]string{"check"}, checkCommand(env))
	root.Register([]string{"fmt"}, fmtCommand(env))
	root.Register([]string{"export"}, exportCommand(env))
	root.Register([]string{"extract"}, extractCommand(env))
	root.Register([]string{"explore"}, exploreCommand(env))
	return root
}

func dumpCommand(env *Env) *cli.Command {
	return &cli.Command{
		Name:    "dump",
		Alias:   []string{"ast", "tree"},
		Summary: "print the syntax tree of a formula",
		Usage:   "dump [-color] [-i <indent>] [formula]",
		Handler: &DumpCommand{Env: env},
	}
}

func tokensCommand(env *Env) *cli.Command {
	return &cli.Command{
		Name:    "tokens",
		Alias:   []string{"scan"},
		Summary: "print the tokens of a formula",
		Usage:   "tokens [formula]",
		Handler: &TokensCommand{Env: env},
	}
}

func checkCommand(env *Env) *cli.Command {
	return &cli.Command{
		Name:    "check",
		Alias:   []string{"lint"},
		Summary: "parse a formula and report misplaced or duplicate named arguments",
		Usage:   "check [formula]",
		Handler: &CheckCommand{Env: env},
	}
}

func fmtCommand(env *Env) *cli.Command {
	return &cli.Command{
		Name:    "fmt",
		Alias:   []string{"format"},
		Summary: "print a formula in canonical form",
		Usage:   "fmt [formula]",
		Handler: &FormatCommand{Env: env},
	}
}

func exportCommand(env *Env) *cli.Command {
	return &cli.Command{
		Name:    "export",
		Summary: "print the syntax tree of a formula as yaml or json",
		Usage:   "export [-f yaml|json] [formula]",
		Handler: &ExportCommand{Env: env},
	}
}

func extractCommand(env *Env) *cli.Command {
	return &cli.Command{
		Name:    "extract",
		Summary: "list the formulas of a spreadsheet",
		Usage:   "extract [-c] [-s <sheet>] <spreadsheet>",
		Handler: &ExtractCommand{Env: env},
	}
}

func exploreCommand(env *Env) *cli.Command {
	return &cli.Command{
		Name:    "explore",
		Alias:   []string{"repl"},
		Summary: "type formulas and see their syntax tree as you type",
		Usage:   "explore [formula]",
		Handler: &ExploreCommand{Env: env},
	}
}
