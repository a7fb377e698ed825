// Package main is the fidel CLI entry point.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/metsehaf/fidel/internal/builder"
	"github.com/metsehaf/fidel/internal/cli"
	"github.com/metsehaf/fidel/internal/config"
	"github.com/metsehaf/fidel/internal/index"
	"github.com/metsehaf/fidel/internal/models"
	"github.com/metsehaf/fidel/internal/search"
	"github.com/metsehaf/fidel/internal/server"
	"github.com/metsehaf/fidel/internal/storage"
	"github.com/metsehaf/fidel/internal/translit"
	"github.com/metsehaf/fidel/internal/watcher"
	"github.com/metsehaf/fidel/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/fidel/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks
// for config.yaml in the current directory (for development); if that exists
// it is used, so that "fidel server" from the project dir uses the project's
// config (including debug).
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "search":
		runSearch()
	case "translit":
		runTranslit()
	case "build":
		runBuild()
	case "status":
		runStatus()
	case "version", "--version", "-v":
		fmt.Printf("fidel version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging (queries, reloads, cache activity)")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	components, err := initializeComponents(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer components.Close()

	if err := components.Session.Load(context.Background()); err != nil {
		// The server still starts; queries answer "unavailable" until a
		// reload succeeds.
		logger.Warn("initial load failed", zap.Error(err))
	}

	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	var watchSvc *watcher.Watcher
	if cfg.Watch.Enabled {
		session := components.Session
		watchOpts := []watcher.WatcherOption{
			watcher.WithDebounce(time.Duration(cfg.Search.DebounceMS) * time.Millisecond),
		}
		if debugMode {
			watchOpts = append(watchOpts, watcher.WithLogger(logger))
		}
		watchSvc = watcher.NewWatcher(
			dataFilePaths(cfg),
			func() {
				if err := session.Reload(context.Background()); err != nil {
					logger.Warn("reload after data change failed", zap.Error(err))
				}
			},
			watchOpts...,
		)
		if err := watchSvc.Start(watchCtx); err != nil {
			logger.Fatal("Failed to start watcher", zap.Error(err))
		}
	}

	srv := server.NewServer(components.Engine, components.Session, cfg, logger)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	if watchSvc != nil {
		watchSvc.Stop()
	}
	watchCancel()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

// dataFilePaths returns the local data files worth watching. URL sources are
// skipped; there is nothing to watch for them.
func dataFilePaths(cfg *config.Config) []string {
	var files []string
	for _, src := range []string{cfg.Data.LexiconSource, cfg.Data.VerseIndexSource} {
		if src == "" || strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
			continue
		}
		files = append(files, src)
	}
	return files
}

func printSearchUsage(fs *flag.FlagSet) {
	fmt.Fprintf(fs.Output(), "Usage: fidel search [flags] <query>\n\n")
	fmt.Fprintf(fs.Output(), "Query is all remaining arguments joined by spaces. Multi-word queries work with or without quotes.\n\n")
	fs.PrintDefaults()
	fmt.Fprintf(fs.Output(), `
The query kind decides the passes that run:
  • Ethiopic text matches lexicon headwords and reports their verse locations.
  • Latin text matches definitions, transliterations and roots, plus the verse translations.
  • Digits match words by letter value.

Examples:
  fidel search ሰላም
  fidel search peace
  fidel search "words of the blessing"
  fidel search 135
  fidel search --fuzzy blesing      # typo-tolerant verse search
`)
}

// buildSearchQuery joins all positional args with spaces so multi-word
// queries work the same with or without shell quoting.
func buildSearchQuery(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// searchArgsReorder moves any flags (and their values) that appear after the
// query to the front of the slice so that flag.Parse() sees them. Go's flag
// package stops at the first non-flag argument.
func searchArgsReorder(args []string) []string {
	for i, a := range args {
		if len(a) > 0 && a[0] == '-' {
			if i == 0 {
				return args
			}
			reordered := make([]string, 0, len(args))
			reordered = append(reordered, args[i:]...)
			reordered = append(reordered, args[:i]...)
			return reordered
		}
	}
	return args
}

func runSearch() {
	searchArgs := searchArgsReorder(os.Args[2:])

	fs := flag.NewFlagSet("search", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "", "server URL (empty = load data directly)")
	fuzzyEnabled := fs.Bool("fuzzy", false, "allow a typo-tolerant verse retry when nothing matches exactly")
	outputFormat := fs.String("output", "text", "output format: text (human-readable), compact (one result per line), or json (parseable)")
	fs.Usage = func() { printSearchUsage(fs) }
	_ = fs.Parse(searchArgs)

	if fs.NArg() < 1 {
		printSearchUsage(fs)
		os.Exit(1)
	}
	queryStr := buildSearchQuery(fs.Args())
	if queryStr == "" {
		printSearchUsage(fs)
		os.Exit(1)
	}

	format := cli.OutputText
	switch *outputFormat {
	case "json":
		format = cli.OutputJSON
	case "text":
		format = cli.OutputText
	case "compact":
		format = cli.OutputCompact
	default:
		fmt.Printf("Unknown output format %q; use text, compact, or json\n", *outputFormat)
		os.Exit(1)
	}

	searchQuery := &models.SearchQuery{Query: queryStr, Fuzzy: *fuzzyEnabled}

	if *serverURL != "" {
		cfg, _, err := loadConfig(*configPath)
		if err != nil {
			// Display defaults still apply without a config file.
			cfg = &config.Config{}
			config.ApplyDefaults(cfg)
		}
		response, err := searchViaHTTP(*serverURL, searchQuery)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
			os.Exit(1)
		}
		if err := cli.WriteQueryResult(os.Stdout, response, format, &cfg.Display); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	components, err := initializeComponents(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize", zap.Error(err))
	}
	defer components.Close()

	if err := components.Session.Load(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load search data: %v\n", err)
		os.Exit(1)
	}

	response := components.Engine.Query(context.Background(), searchQuery)
	if err := cli.WriteQueryResult(os.Stdout, response, format, &cfg.Display); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func searchViaHTTP(serverURL string, query *models.SearchQuery) (*models.QueryResult, error) {
	body, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}
	resp, err := http.Post(serverURL+"/api/v1/search", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var response models.QueryResult
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &response, nil
}

func runTranslit() {
	fs := flag.NewFlagSet("translit", flag.ExitOnError)
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: fidel translit <text>")
		os.Exit(1)
	}
	text := buildSearchQuery(fs.Args())

	type out struct {
		Text            string `json:"text"`
		Transliteration string `json:"transliteration"`
		Ethiopic        bool   `json:"ethiopic"`
		Gematria        int    `json:"gematria,omitempty"`
		DigitalRoot     int    `json:"digital_root,omitempty"`
	}
	o := out{
		Text:            text,
		Transliteration: translit.Word(text),
		Ethiopic:        translit.ContainsEthiopic(text),
	}
	if o.Ethiopic {
		o.Gematria = translit.WordValue(text)
		o.DigitalRoot = translit.DigitalRoot(o.Gematria)
	}

	switch *outputFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(o)
	default:
		fmt.Printf("%s -> %s\n", o.Text, o.Transliteration)
		if o.Ethiopic {
			fmt.Printf("letter value: %d (digital root %d)\n", o.Gematria, o.DigitalRoot)
		}
	}
}

func runBuild() {
	fs := flag.NewFlagSet("build", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	chaptersDir := fs.String("chapters", "", "chapters directory (overrides config)")
	output := fs.String("output", "", "output path for the verse index (overrides config)")
	_ = fs.Parse(os.Args[2:])

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	dir := cfg.Data.ChaptersDir
	if *chaptersDir != "" {
		dir = *chaptersDir
	}
	if dir == "" {
		fmt.Println("No chapters directory configured; use --chapters or set data.chapters_dir")
		os.Exit(1)
	}
	outPath := cfg.Data.VerseIndexSource
	if *output != "" {
		outPath = *output
	}
	if strings.HasPrefix(outPath, "http://") || strings.HasPrefix(outPath, "https://") {
		fmt.Println("Verse index source is a URL; use --output to choose a local path")
		os.Exit(1)
	}

	b := builder.New(dir, cfg.Data.ChapterCount, cfg.Data.ChapterExt, logger)
	doc, err := b.BuildAndSave(outPath)
	if err != nil {
		fmt.Printf("Build failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Verse index built: %d verses, %d unique words\n", doc.VerseCount, doc.WordCount)
	fmt.Printf("Saved to %s\n", outPath)
}

// statusResponse is the shape of GET /api/v1/status response.
type statusResponse struct {
	Session        string `json:"session"`
	State          string `json:"state"`
	Generation     uint64 `json:"generation"`
	LexiconWords   int    `json:"lexicon_words,omitempty"`
	Verses         int    `json:"verses,omitempty"`
	ChapterCount   int    `json:"chapter_count,omitempty"`
	CacheDiskBytes *int64 `json:"cache_disk_bytes,omitempty"`
}

func runStatus() {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "http://localhost:8080", "server URL (empty = load data directly)")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	var status statusResponse
	if *serverURL != "" {
		res, err := statusViaHTTP(*serverURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Status failed: %v\n", err)
			os.Exit(1)
		}
		status = *res
	} else {
		cfg, _, err := loadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
		logger, err := utils.NewLogger(cfg.Debug)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		components, err := initializeComponents(cfg, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
			os.Exit(1)
		}
		defer components.Close()
		if err := components.Session.Load(context.Background()); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load search data: %v\n", err)
			os.Exit(1)
		}
		status = statusResponse{
			Session:    components.Session.ID(),
			State:      string(components.Session.State()),
			Generation: components.Session.Generation(),
		}
		if idx, _ := components.Session.Index(); idx != nil {
			status.LexiconWords = len(idx.Words())
			status.Verses = idx.Stats().VerseCount
			status.ChapterCount = idx.Stats().ChapterCount
		}
		if cfg.Data.CachePath != "" {
			if diskBytes, err := storage.DiskUsageBytes(cfg.Data.CachePath); err == nil {
				status.CacheDiskBytes = &diskBytes
			}
		}
	}

	switch *outputFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(status); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
	case "text":
		fmt.Printf("session:        %s\n", status.Session)
		fmt.Printf("state:          %s\n", status.State)
		fmt.Printf("generation:     %d\n", status.Generation)
		if status.LexiconWords > 0 {
			fmt.Printf("lexicon_words:  %d\n", status.LexiconWords)
		}
		if status.Verses > 0 {
			fmt.Printf("verses:         %d\n", status.Verses)
		}
		if status.ChapterCount > 0 {
			fmt.Printf("chapter_count:  %d\n", status.ChapterCount)
		}
		if status.CacheDiskBytes != nil {
			fmt.Printf("cache_bytes:    %d\n", *status.CacheDiskBytes)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown output format %q; use text or json\n", *outputFormat)
		os.Exit(1)
	}
}

func statusViaHTTP(serverURL string) (*statusResponse, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server URL: %w", err)
	}
	resp, err := http.Get(u.String() + "/api/v1/status")
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var s statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &s, nil
}

// Components holds initialized services.
type Components struct {
	Cache   storage.CacheStore
	Session *index.Session
	Engine  *search.Engine
}

func (c *Components) Close() {
	if c.Engine != nil {
		_ = c.Engine.Close()
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
}

func initializeComponents(cfg *config.Config, logger *zap.Logger) (*Components, error) {
	loaderOpts := []index.LoaderOption{index.WithLogger(logger)}

	var cache storage.CacheStore
	if cfg.Data.CachePath != "" {
		sqliteCache, err := storage.NewSQLiteCache(cfg.Data.CachePath)
		if err != nil {
			// A broken cache degrades to fetching fresh every time.
			logger.Warn("cache unavailable", zap.String("path", cfg.Data.CachePath), zap.Error(err))
		} else {
			cache = sqliteCache
			loaderOpts = append(loaderOpts, index.WithCache(cache))
		}
	}

	loader := index.NewLoader(cfg.Data.LexiconSource, cfg.Data.VerseIndexSource, loaderOpts...)
	session := index.NewSession(loader, logger)
	engine := search.NewEngine(session, cfg, logger)

	return &Components{
		Cache:   cache,
		Session: session,
		Engine:  engine,
	}, nil
}

func printUsage() {
	fmt.Println(`fidel - Ge'ez text search and transliteration

Usage:
  fidel server [flags]            Start the HTTP server
  fidel search [flags] <query>    Search the lexicon and verse text
  fidel translit [flags] <text>   Transliterate Ethiopic text
  fidel build [flags]             Build the verse index from chapter pages
  fidel status [flags]            Show session and index status
  fidel version                   Show version
  fidel help                      Show this help

Server Flags:
  --config string    Config file path (default: /usr/local/etc/fidel/config.yaml)
  --debug            Enable debug logging (queries, reloads, cache activity)

Search Flags:
  --config string    Config file path
  --server string    Server URL (empty = load data directly)
  --fuzzy            Allow a typo-tolerant verse retry when nothing matches exactly
  --output string    Output format: text, compact, or json (default: text)

Translit Flags:
  --output string    Output format: text or json (default: text)

Build Flags:
  --config string    Config file path
  --chapters string  Chapters directory (overrides config)
  --output string    Output path for the verse index (overrides config)

Status Flags:
  --config string    Config file path (for direct mode)
  --server string    Server URL (default: http://localhost:8080). Use empty (--server "") for direct mode.
  --output string    Output format: text or json (default: text)

Examples:
  fidel server
  fidel search ሰላም
  fidel search "words of the blessing"
  fidel search --fuzzy blesing
  fidel search --output json peace
  fidel translit ሄኖክ
  fidel build --chapters ./1_enoch --output ./data/search_index.json
  fidel status`)
}
