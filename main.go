package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/solvere/gram/internal/app"
	"github.com/solvere/gram/internal/clipboard"
	"github.com/solvere/gram/internal/config"
	"github.com/solvere/gram/internal/logger"
	"github.com/solvere/gram/internal/terminal"
	"github.com/solvere/gram/internal/tg"
)

// Version information set via ldflags at build time
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// demoChats is how many seeded chats a --demo session starts with.
const demoChats = 24

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `gram - terminal chat client

Usage: gram [options]

Options:
  -v, --version   Print version information and exit
  -h, --help      Show this help message
      --debug     Enable debug logging (verbose output to /tmp/gram-debug.log)
      --demo      Run against an in-memory backend with simulated traffic
      --fps N     Render events per second (default from config)
      --mouse     Enable mouse capture
      --no-paste  Disable bracketed paste capture
      --clear     Remove log files, then exit
`)
	}

	showVersion := flag.Bool("version", false, "Print version information and exit")
	flag.BoolVar(showVersion, "v", false, "Print version information and exit")
	debugMode := flag.Bool("debug", false, "Enable debug logging")
	demoMode := flag.Bool("demo", false, "Run against an in-memory backend")
	fps := flag.Float64("fps", 0, "Render events per second")
	mouse := flag.Bool("mouse", false, "Enable mouse capture")
	noPaste := flag.Bool("no-paste", false, "Disable bracketed paste capture")
	clearLogs := flag.Bool("clear", false, "Remove log files and exit")
	flag.Parse()

	if *debugMode {
		logger.SetDebug(true)
	}

	if *showVersion {
		fmt.Printf("gram %s\n", version)
		if commit != "none" {
			fmt.Printf("  commit: %s\n", commit)
			fmt.Printf("  built:  %s\n", date)
		}
		os.Exit(0)
	}

	if *clearLogs {
		cleared, err := logger.ClearLogs()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: error clearing logs: %v\n", err)
		}
		if cleared > 0 {
			fmt.Printf("Removed %d log file(s).\n", cleared)
		}
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Flags override the config for this session only.
	if *fps > 0 {
		cfg.FrameRate = *fps
	}
	if *mouse {
		cfg.MouseEnabled = true
	}
	if *noPaste {
		cfg.PasteEnabled = false
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	defer logger.Close()

	// A missing clipboard only disables ctrl+v paste.
	if err := clipboard.Init(); err != nil {
		logger.Warn("clipboard unavailable: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// TODO: replace the demo backend with the real client once the
	// transport layer lands; until then --demo is the only backend.
	client := tg.NewDemoMemory(demoChats)
	if *demoMode {
		client.StartTraffic(ctx, 5*time.Second)
	}

	term := terminal.New(
		terminal.WithFrameRate(cfg.FrameRate),
		terminal.WithMouse(cfg.MouseEnabled),
		terminal.WithPaste(cfg.PasteEnabled),
	)

	a := app.New(cfg, version, term, client)
	if err := a.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		os.Exit(1)
	}
}
