package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/baitwatch/baitwatch/internal/config"
	"github.com/baitwatch/baitwatch/internal/harness"
	"github.com/baitwatch/baitwatch/internal/logging"
)

const harnessAddr = ":8001"

// seedFlags collects repeated -seed source=url flags.
type seedFlags []string

func (s *seedFlags) String() string { return strings.Join(*s, ",") }

func (s *seedFlags) Set(v string) error {
	if !strings.Contains(v, "=") {
		return fmt.Errorf("expected source=url, got %q", v)
	}
	*s = append(*s, v)
	return nil
}

func runAPITestHarness(seeds []string, count int) error {
	logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	store := harness.NewStore()

	if len(seeds) > 0 {
		targets := make([]harness.SeedTarget, 0, len(seeds))
		for _, seed := range seeds {
			source, pageURL, _ := strings.Cut(seed, "=")
			targets = append(targets, harness.SeedTarget{Source: source, URL: pageURL})
		}

		seeder := harness.NewSeeder(nil)
		pool := harness.NewSeedPool(seeder.Seed, harness.DefaultSeedWorkers, 30*time.Second)
		for _, result := range pool.Run(context.Background(), targets) {
			if result.Err != nil {
				fmt.Printf("❌ %s: %v\n", result.Target.Source, result.Err)
				continue
			}
			store.Add(result.Articles...)
			fmt.Printf("🌱 Seeded %d articles for %s from %s (%s)\n",
				len(result.Articles), result.Target.Source, result.Target.URL, result.Duration.Round(time.Millisecond))
		}
	}

	if store.Len() == 0 {
		sources := make([]string, 0, len(config.DefaultSources))
		for _, s := range config.DefaultSources {
			sources = append(sources, s.Name)
		}
		store.Add(harness.NewGenerator(time.Now().UnixNano()).Articles(count, sources)...)
	}

	server := harness.NewServer(store, os.Stdout)

	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Println("🎣 Baitwatch API Test Harness")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Printf("   Listening on: http://localhost%s\n", harnessAddr)
	fmt.Printf("   Articles:     %d\n", store.Len())
	fmt.Printf("   Sources:      %s\n", strings.Join(store.Sources(), ", "))
	fmt.Println()
	fmt.Println("📖 Endpoints:")
	fmt.Println("   GET /")
	fmt.Println("   GET /api/articles?limit=20&offset=0&source=onet")
	fmt.Println("   GET /api/articles/{id}")
	fmt.Println("   GET /api/sources")
	fmt.Println()
	fmt.Println("🔧 Extra query parameters:")
	fmt.Println("   delay=N      Response delay in seconds")
	fmt.Println("   status=N     Force an HTTP error status")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Println()

	srv := &http.Server{
		Addr:              harnessAddr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}
