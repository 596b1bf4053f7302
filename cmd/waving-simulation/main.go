package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/lixenwraith/waving-simulation/config"
	"github.com/lixenwraith/waving-simulation/logging"
)

// Fallback headless size when stdout is not a terminal
const (
	defaultWidth  = 80
	defaultHeight = 24
)

type options struct {
	configPath string
	debug      bool
	snapshot   bool
	frames     int
	digest     bool
	width      int
	height     int
}

func parseFlags(args []string, output io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("waving-simulation", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&opts.configPath, "config", "", "YAML config file (default $"+config.EnvConfig+")")
	fs.BoolVar(&opts.debug, "debug", false, "Write debug logs to "+logging.DefaultDir+"/"+logging.FileName)
	fs.BoolVar(&opts.snapshot, "snapshot", false, "Render frames headless to stdout instead of running interactively")
	fs.IntVar(&opts.frames, "frames", 1, "Number of frames rendered in snapshot mode")
	fs.BoolVar(&opts.digest, "digest", false, "Print one xxhash digest per frame instead of ANSI output")
	fs.IntVar(&opts.width, "width", 0, "Headless width in cells (default: terminal width)")
	fs.IntVar(&opts.height, "height", 0, "Headless height in cells (default: terminal height)")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if opts.frames < 1 {
		return opts, fmt.Errorf("frames must be positive, got %d", opts.frames)
	}
	if opts.width < 0 || opts.height < 0 {
		return opts, fmt.Errorf("width and height must not be negative")
	}
	return opts, nil
}

// headlessSize resolves the snapshot size from flags, then the controlling terminal, then defaults
func headlessSize(opts options) (int, int) {
	w, h := defaultWidth, defaultHeight
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if tw, th, err := term.GetSize(fd); err == nil && tw > 0 && th > 0 {
			w, h = tw, th
		}
	}
	if opts.width > 0 {
		w = opts.width
	}
	if opts.height > 0 {
		h = opts.height
	}
	return w, h
}

// loadConfig layers defaults, .env, the YAML file and WAVING_* variables
func loadConfig(path string) (config.Config, error) {
	if err := config.LoadEnvFile(".env"); err != nil {
		return config.Config{}, err
	}
	if path == "" {
		path = os.Getenv(config.EnvConfig)
	}
	cfg, err := config.Read(path)
	if err != nil {
		return cfg, err
	}
	// ApplyEnv validates the merged result
	if err := cfg.ApplyEnv(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func run(opts options) error {
	logger, closeLog, err := logging.Setup(opts.debug, logging.DefaultDir)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	logger.Info("starting",
		zap.Bool("snapshot", opts.snapshot),
		zap.Int("chains", cfg.Chains),
		zap.Int("length", cfg.Chain.Length),
		zap.Duration("tick", cfg.TickInterval),
		zap.String("anchor", cfg.Anchor),
	)

	if opts.snapshot {
		w, h := headlessSize(opts)
		return runSnapshot(os.Stdout, cfg, logger, snapshotOptions{
			Width:  w,
			Height: h,
			Frames: opts.frames,
			Digest: opts.digest,
		})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return runInteractive(ctx, cfg, logger)
}

func main() {
	// Panic Recovery: the deferred screen teardown has already run by the time this fires
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "\n\x1b[31mWAVING-SIMULATION CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		os.Exit(2)
	}

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "waving-simulation: %v\n", err)
		os.Exit(1)
	}
}
