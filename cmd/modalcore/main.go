// Package main is the entry point for the modalcore editor.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/dshills/modalcore/internal/app"
	"github.com/dshills/modalcore/internal/config"
	"github.com/dshills/modalcore/internal/logging"
	"github.com/dshills/modalcore/internal/renderer/backend"
	"github.com/dshills/modalcore/internal/vfs"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type flags struct {
	configPath string
	logFile    string
	logLevel   string
	macros     string
	files      []string
}

func main() {
	os.Exit(run())
}

func run() int {
	f := parseFlags()

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: modalcore needs a terminal on stdin and stdout")
		return 1
	}

	cfg, watchPath, err := loadConfig(f.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if err := applyFlags(cfg, f); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	session := app.NewSessionID()
	logger, logCloser, err := app.OpenLog(cfg.Log.File, cfg.LogLevel(), session)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer logCloser.Close()

	terminal, err := backend.NewTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}

	application, err := app.New(terminal, app.Options{
		Config:     cfg,
		ConfigPath: watchPath,
		Files:      f.files,
		FS:         vfs.NewOSFS(),
		Logger:     logger,
		Session:    session,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// loadConfig reads the config named on the command line, or the default
// path when there is one. A missing default file is not an error. The
// returned path is the file to watch for changes.
func loadConfig(path string) (*config.Config, string, error) {
	explicit := path != ""
	if !explicit {
		p, err := config.DefaultPath()
		if err != nil {
			return config.Default(), "", nil
		}
		path = p
	}

	cfg, err := config.Load(vfs.NewOSFS(), path)
	switch {
	case err == nil:
		return cfg, path, nil
	case !explicit && errors.Is(err, config.ErrFileNotFound):
		return config.Default(), "", nil
	default:
		return nil, "", err
	}
}

// applyFlags lets command-line flags override the config file.
func applyFlags(cfg *config.Config, f flags) error {
	if f.logFile != "" {
		cfg.Log.File = f.logFile
	}
	if f.logLevel != "" {
		if _, ok := logging.ParseLogLevel(f.logLevel); !ok {
			return fmt.Errorf("invalid log level %q (must be debug, info, warn, or error)", f.logLevel)
		}
		cfg.Log.Level = f.logLevel
	}
	if f.macros != "" {
		cfg.Macros.PersistPath = f.macros
	}
	return nil
}

func parseFlags() flags {
	var f flags
	var showVersion bool
	var showHelp bool

	flag.StringVar(&f.configPath, "config", "", "Path to configuration file (.toml, .yaml)")
	flag.StringVar(&f.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&f.logFile, "log", "", "Write logs to this file")
	flag.StringVar(&f.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.StringVar(&f.macros, "macros", "", "Load and save macros in this file")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "modalcore - modal text editor\n\n")
		fmt.Fprintf(os.Stderr, "Usage: modalcore [options] [files...]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  modalcore                          Open with empty buffer\n")
		fmt.Fprintf(os.Stderr, "  modalcore notes.txt                Open a file\n")
		fmt.Fprintf(os.Stderr, "  modalcore -log /tmp/mc.log a.go    Log to a file\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("modalcore %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	f.files = flag.Args()
	return f
}
