package main

import (
	_ "embed"
	"flag"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/baitwatch/baitwatch/internal/api"
	"github.com/baitwatch/baitwatch/internal/config"
	"github.com/baitwatch/baitwatch/internal/database"
	"github.com/baitwatch/baitwatch/internal/feed"
	"github.com/baitwatch/baitwatch/internal/logging"
	"github.com/baitwatch/baitwatch/internal/ui"
	"github.com/baitwatch/baitwatch/internal/version"
)

//go:embed sql/schema.sql
var schemaSQL string

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: baitwatch [options] [command]\n\n")
		fmt.Fprintf(os.Stderr, "Commands:\n")
		fmt.Fprintf(os.Stderr, "  sources list                 List configured sources\n")
		fmt.Fprintf(os.Stderr, "  sources add <name> [label]   Add a source to the sources file\n")
		fmt.Fprintf(os.Stderr, "  sources remove <name>        Remove a source from the sources file\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  %s   Backend base URL (overridden by -api)\n", config.EnvAPIBaseURL)
	}

	var seeds seedFlags
	var apiTest = flag.Bool("apiTest", false, "Run API test harness server")
	var count = flag.Int("count", 120, "Number of generated articles for -apiTest when nothing is seeded")
	flag.Var(&seeds, "seed", "Seed -apiTest from an RSS feed, as source=url (repeatable)")
	var showVersion = flag.Bool("version", false, "Show version information")
	var debug = flag.Bool("debug", false, "Enable debug logging")
	var apiURL = flag.String("api", "", "Backend base URL (overrides the stored setting)")
	var sourcesFile = flag.String("s", "", "Path to sources file (overrides default location)")
	flag.StringVar(sourcesFile, "sources", "", "Path to sources file (overrides default location)")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.GetVersion())
		return
	}

	if *apiTest {
		if err := runAPITestHarness(seeds, *count); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	args := flag.Args()
	if len(args) > 0 {
		switch args[0] {
		case "sources":
			if err := runSourcesCommand(*sourcesFile, args[1:]); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			return
		default:
			fmt.Fprintf(os.Stderr, "Error: unknown command '%s'\n", args[0])
			os.Exit(1)
		}
	}

	if err := run(*sourcesFile, *apiURL, *debug); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func sourcesPath(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	return config.GetSourcesFilePath()
}

func runSourcesCommand(sourcesFile string, args []string) error {
	path, err := sourcesPath(sourcesFile)
	if err != nil {
		return fmt.Errorf("failed to get sources file path: %w", err)
	}
	if err := config.CreateDefaultSourcesFile(path); err != nil {
		return fmt.Errorf("failed to create sources file: %w", err)
	}

	if len(args) == 0 {
		args = []string{"list"}
	}

	switch args[0] {
	case "list":
		entries, err := config.ReadSourcesFileFromPath(path)
		if err != nil {
			return fmt.Errorf("failed to read sources file: %w", err)
		}
		for _, entry := range entries {
			if entry.Label != "" {
				fmt.Printf("%-16s %s\n", entry.Name, entry.Label)
			} else {
				fmt.Println(entry.Name)
			}
		}
		return nil

	case "add":
		if len(args) < 2 {
			return fmt.Errorf("'sources add' requires a name\nUsage: baitwatch sources add <name> [label]")
		}
		entry := config.SourceEntry{Name: args[1], Label: strings.Join(args[2:], " ")}
		if err := config.ValidateSourceName(entry.Name); err != nil {
			return err
		}
		added, err := config.AddSourceToPath(path, entry)
		if err != nil {
			return err
		}
		if !added {
			fmt.Printf("Source already present: %s\n", entry.Name)
			return nil
		}
		fmt.Printf("Successfully added source: %s\n", entry.DisplayName())
		return nil

	case "remove":
		if len(args) < 2 {
			return fmt.Errorf("'sources remove' requires a name\nUsage: baitwatch sources remove <name>")
		}
		removed, err := config.RemoveSourceFromPath(path, args[1])
		if err != nil {
			return err
		}
		if !removed {
			return fmt.Errorf("source not found: %s", args[1])
		}
		fmt.Printf("Removed source: %s\n", args[1])
		return nil

	default:
		return fmt.Errorf("unknown sources command '%s'", args[0])
	}
}

func run(sourcesFile, apiURL string, debug bool) error {
	// Initialize database first
	db, queries, err := database.InitDBWithSchema(schemaSQL)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	applied, err := RunMigrations(db)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	cfg, err := config.LoadConfig(queries)
	if err != nil {
		fmt.Printf("Failed to load config, using defaults: %v\n", err)
		cfg = config.GetDefaultConfig()
	}

	// Setup logging after database is initialized
	logger := logging.Setup(queries, debug)
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			logger.Error("Error closing database", "error", closeErr)
		}
	}()
	if len(applied) > 0 {
		logger.Info("Applied migrations", "versions", applied)
	}

	path, err := sourcesPath(sourcesFile)
	if err != nil {
		return fmt.Errorf("failed to get sources file path: %w", err)
	}
	if sourcesFile == "" {
		if err := config.CreateDefaultSourcesFile(path); err != nil {
			logger.Warn("Failed to create default sources file", "error", err)
		}
	}
	sources, err := config.ReadSourcesFileFromPath(path)
	if err != nil {
		return fmt.Errorf("failed to read sources file: %w", err)
	}

	baseURL := cfg.ResolveAPIBaseURL(apiURL)
	client, err := api.NewClient(baseURL)
	if err != nil {
		return fmt.Errorf("invalid API base URL: %w", err)
	}
	logger.Info("Starting", "version", version.GetVersion(), "api", client.BaseURL(), "page_size", cfg.PageSize)

	ctrl := feed.NewController(client,
		feed.WithPageSize(cfg.PageSize),
		feed.WithSource(cfg.DefaultSource),
	)

	model := ui.NewModel(ctrl, client, queries, cfg, sources)
	p := tea.NewProgram(model, tea.WithAltScreen())

	unsubscribe := ctrl.Subscribe(func(s feed.State) {
		p.Send(ui.FeedStateMsg{State: s})
	})
	defer unsubscribe()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	return nil
}
