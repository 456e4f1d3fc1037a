// HanziQuest is a progression and battle engine for gamified Chinese
// character handwriting practice.
// Usage: hanziquest [--version] [--plain] [--seed N] [--content <dir>] [--config <file>]
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/nathoo/hanziquest/cli"
	"github.com/nathoo/hanziquest/config"
	"github.com/nathoo/hanziquest/engine"
	"github.com/nathoo/hanziquest/engine/state"
	"github.com/nathoo/hanziquest/loader"
	"github.com/nathoo/hanziquest/tui"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	plain := false
	configPath := config.DefaultPath()
	contentDir := ""
	var seed int64

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			fmt.Printf("hanziquest %s (commit %s, built %s)\n", version, commit, date)
			return
		case "--plain":
			plain = true
		case "--config":
			if i+1 >= len(args) {
				fmt.Fprintln(os.Stderr, "--config requires a file path")
				os.Exit(1)
			}
			i++
			configPath = args[i]
		case "--content":
			if i+1 >= len(args) {
				fmt.Fprintln(os.Stderr, "--content requires a directory")
				os.Exit(1)
			}
			i++
			contentDir = args[i]
		case "--seed":
			if i+1 >= len(args) {
				fmt.Fprintln(os.Stderr, "--seed requires a number")
				os.Exit(1)
			}
			i++
			n, err := strconv.ParseInt(args[i], 10, 64)
			if err != nil {
				fmt.Fprintf(os.Stderr, "invalid seed %q\n", args[i])
				os.Exit(1)
			}
			seed = n
		default:
			fmt.Fprintf(os.Stderr, "Usage: hanziquest [--version] [--plain] [--seed N] [--content <dir>] [--config <file>]\n")
			os.Exit(1)
		}
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if contentDir == "" {
		contentDir = cfg.ContentDir
	}
	if seed == 0 {
		seed = cfg.Seed
	}

	var defs *state.Defs
	if contentDir != "" {
		defs, err = loader.Load(contentDir)
	} else {
		defs, err = loader.LoadBuiltin()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading content: %v\n", err)
		os.Exit(1)
	}

	var eng *engine.Engine
	if seed != 0 {
		eng = engine.NewWithSeed(defs, seed)
	} else {
		eng = engine.New(defs)
	}
	eng.Bootstrap()

	if plain || !isTerminal() {
		c := cli.New(eng, cfg.SaveDir)
		c.Run()
		return
	}

	if err := tui.Run(eng, cfg.SaveDir); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
