package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/vidyasagar/tango/internal/app"
	"github.com/vidyasagar/tango/internal/recent"
	"github.com/vidyasagar/tango/internal/render"
	"github.com/vidyasagar/tango/internal/search"
	"github.com/vidyasagar/tango/internal/storage"
	"github.com/vidyasagar/tango/internal/theme"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	version = "0.1.0"
)

type options struct {
	configPath  string
	dataDir     string
	store       string
	themeName   string
	key         string
	capacity    int
	endpoint    string
	debug       bool
	showVersion bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var opts options

	fs := flag.NewFlagSet("tango", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/tango/config.toml)")
	fs.StringVar(&opts.dataDir, "data", "", "data directory (default: $XDG_DATA_HOME/tango)")
	fs.StringVar(&opts.store, "store", "", "recent list store: sqlite, file or memory")
	fs.StringVar(&opts.themeName, "theme", "", "color theme ("+strings.Join(theme.List(), ", ")+")")
	fs.StringVar(&opts.key, "key", "", "storage key for the recent list")
	fs.IntVar(&opts.capacity, "capacity", 0, "number of recent searches to keep")
	fs.StringVar(&opts.endpoint, "endpoint", "", "dictionary search endpoint URL")
	fs.BoolVar(&opts.debug, "debug", false, "debug logging")
	fs.BoolVar(&opts.showVersion, "version", false, "show version")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "tango - a terminal client for a Japanese dictionary\n\n")
		fmt.Fprintf(stderr, "Usage: tango [flags] [command] [term]\n\n")
		fmt.Fprintf(stderr, "Commands:\n")
		fmt.Fprintf(stderr, "  (none)          start the interactive search screen\n")
		fmt.Fprintf(stderr, "  recent          list recent searches, most recent first\n")
		fmt.Fprintf(stderr, "  add <term>      record a search without running it\n")
		fmt.Fprintf(stderr, "  search <term>   record a search and print its results\n")
		fmt.Fprintf(stderr, "  clear           forget all recent searches\n")
		fmt.Fprintf(stderr, "  html            print recent searches as an HTML list\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	if opts.showVersion {
		fmt.Fprintf(stdout, "tango %s\n", version)
		return 0
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
		return 1
	}

	if !theme.Set(cfg.Theme) {
		fmt.Fprintf(stderr, "Unknown theme: %s\nAvailable: %s\n", cfg.Theme, strings.Join(theme.List(), ", "))
		return 1
	}

	dataDir := opts.dataDir
	if dataDir == "" {
		if dataDir, err = storage.DataDir(); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
	}

	logger, err := newLogger(dataDir, opts.debug)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to set up logging: %v\n", err)
		return 1
	}
	defer logger.Sync()

	store, closer, err := storage.Open(cfg, dataDir)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to open store: %v\n", err)
		return 1
	}
	defer closer.Close()

	recents, err := recent.New(store,
		recent.WithKey(cfg.StorageKey),
		recent.WithCapacity(cfg.Capacity),
		recent.WithLogger(logger.Named("recent")),
	)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	client := search.NewClient(cfg.SearchEndpoint, cfg.QueryParam, cfg.ResultSelector)

	command, term := "", ""
	if fs.NArg() > 0 {
		command = fs.Arg(0)
		term = strings.TrimSpace(strings.Join(fs.Args()[1:], " "))
	}

	switch command {
	case "":
		m := app.New(recents, client, logger.Named("app"))
		p := tea.NewProgram(m,
			tea.WithAltScreen(),
			tea.WithMouseCellMotion(),
		)
		if _, err := p.Run(); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}

	case "recent":
		content, _ := render.Recent(recents.Load(), client)
		fmt.Fprint(stdout, content)

	case "add", "search":
		if term == "" {
			fmt.Fprintf(stderr, "Usage: tango %s <term>\n", command)
			return 2
		}
		terms := recents.Add(term)
		if command == "add" {
			content, _ := render.Recent(terms, client)
			fmt.Fprint(stdout, content)
			return 0
		}
		results, err := client.Search(context.Background(), term)
		if err != nil {
			logger.Warn("search failed", zap.String("term", term), zap.Error(err))
			fmt.Fprintf(stderr, "Search failed: %v\n", err)
			return 1
		}
		fmt.Fprint(stdout, render.Results(results, term, 80))

	case "clear":
		recents.Clear()
		fmt.Fprintln(stdout, "Recent searches cleared.")

	case "html":
		out, err := render.RecentHTML(recents.Load(), client)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Fprintln(stdout, out)

	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", command)
		fs.Usage()
		return 2
	}

	return 0
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig(opts options) (*storage.Config, error) {
	var (
		cfg *storage.Config
		err error
	)
	if opts.configPath != "" {
		cfg, err = storage.LoadConfigFrom(opts.configPath)
	} else {
		cfg, err = storage.LoadConfig()
	}
	if err != nil {
		return nil, err
	}

	if opts.store != "" {
		cfg.Store = opts.store
	}
	if opts.themeName != "" {
		cfg.Theme = opts.themeName
	}
	if opts.key != "" {
		cfg.StorageKey = opts.key
	}
	if opts.capacity != 0 {
		cfg.Capacity = opts.capacity
	}
	if opts.endpoint != "" {
		cfg.SearchEndpoint = opts.endpoint
	}
	return cfg, nil
}

// newLogger writes JSON logs to tango.log in the data directory so they
// never land on the TUI.
func newLogger(dataDir string, debug bool) (*zap.Logger, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	zc := zap.NewProductionConfig()
	if debug {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logPath := filepath.Join(dataDir, "tango.log")
	zc.OutputPaths = []string{logPath}
	zc.ErrorOutputPaths = []string{logPath}

	return zc.Build()
}
