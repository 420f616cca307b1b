// SPDX-License-Identifier: Unlicense OR MIT

// Command gfxinfo inspects context configurations, the GL dispatch table
// and X11 windows.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"

	"gfx/glue"
	"gfx/internal/gl"
	"gfx/internal/x11"
)

func main() {
	if err := run(os.Stdout, os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "gfxinfo: %v\n", err)
		os.Exit(1)
	}
}

func run(w io.Writer, args []string) error {
	fs := flag.NewFlagSet("gfxinfo", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprint(fs.Output(), mainUsage)
	}
	var (
		configPath = fs.String("config", "", "load a TOML context configuration")
		procs      = fs.Bool("procs", false, "list the GL dispatch table")
		window     = fs.String("x11-window", "", "print the size of an X11 window")
		display    = fs.String("display", "", "X display for -x11-window (default $DISPLAY)")
		verbose    = fs.Bool("v", false, "enable debug logging")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if *verbose {
		glue.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}
	switch {
	case *procs:
		return printProcs(w)
	case *window != "":
		return printGeometry(w, *display, *window)
	default:
		return printConfig(w, *configPath)
	}
}

func printConfig(w io.Writer, path string) error {
	cfg := glue.DefaultConfig()
	if path != "" {
		var err error
		cfg, err = glue.LoadConfig(path)
		if err != nil {
			return err
		}
	}
	return toml.NewEncoder(w).Encode(cfg)
}

func printProcs(w io.Writer) error {
	for _, name := range gl.ProcNames() {
		if gl.Optional(name) {
			if _, err := fmt.Fprintf(w, "%s (optional)\n", name); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintln(w, name); err != nil {
			return err
		}
	}
	return nil
}

func printGeometry(w io.Writer, display, window string) error {
	id, err := strconv.ParseUint(window, 0, 32)
	if err != nil || id == 0 {
		return fmt.Errorf("invalid window id %q", window)
	}
	sz, err := x11.Geometry(display, uint32(id))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%dx%d\n", sz.X, sz.Y)
	return err
}
