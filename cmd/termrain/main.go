package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"

	"github.com/lixenwraith/termrain/core"
)

const envPrefix = "TERMRAIN"

func main() {
	// Panic Recovery: restore the terminal even if a frame crashes
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout)
	stop()

	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "termrain: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	return buildCLI(stdout).ParseAndRun(ctx, args)
}

func buildCLI(stdout io.Writer) *ffcli.Command {
	// Rain command
	rainFlagSet := flag.NewFlagSet("termrain rain", flag.ContinueOnError)
	rainCommon := registerCommon(rainFlagSet, defaultRainInterval)
	rainOpts := registerRain(rainFlagSet)

	rainCmd := &ffcli.Command{
		Name:       "rain",
		ShortUsage: "termrain rain [flags]",
		ShortHelp:  "Run the falling character effect",
		FlagSet:    rainFlagSet,
		Options:    []ff.Option{ff.WithEnvVarPrefix(envPrefix)},
		Exec: func(ctx context.Context, _ []string) error {
			if rainOpts.list {
				return listChoices(stdout)
			}
			return execRain(ctx, rainCommon, rainOpts)
		},
	}

	// Explorer command
	explorerFlagSet := flag.NewFlagSet("termrain explorer", flag.ContinueOnError)
	explorerCommon := registerCommon(explorerFlagSet, defaultExplorerInterval)

	explorerCmd := &ffcli.Command{
		Name:       "explorer",
		ShortUsage: "termrain explorer [flags]",
		ShortHelp:  "Run the maze carving random walk",
		FlagSet:    explorerFlagSet,
		Options:    []ff.Option{ff.WithEnvVarPrefix(envPrefix)},
		Exec: func(ctx context.Context, _ []string) error {
			return execExplorer(ctx, explorerCommon)
		},
	}

	// Root command
	return &ffcli.Command{
		ShortUsage:  "termrain [flags] <subcommand>",
		ShortHelp:   "Terminal digital rain and maze explorer effects",
		LongHelp:    "Controls:\n  q, Esc, Ctrl-C  Exit\n\nEvery flag can also be set as " + envPrefix + "_<FLAG>, e.g. " + envPrefix + "_THEME=amber",
		FlagSet:     flag.NewFlagSet("termrain", flag.ContinueOnError),
		Subcommands: []*ffcli.Command{rainCmd, explorerCmd},
		Exec: func(ctx context.Context, args []string) error {
			return rainCmd.ParseAndRun(ctx, args)
		},
	}
}
