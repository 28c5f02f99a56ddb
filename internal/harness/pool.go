package harness

import (
	"context"
	"sync"
	"time"

	"github.com/baitwatch/baitwatch/internal/api"
	"github.com/baitwatch/baitwatch/internal/logging"
)

// DefaultSeedWorkers is how many feeds are fetched at once.
const DefaultSeedWorkers = 4

// SeedTarget names a source and the page or feed its articles come from.
type SeedTarget struct {
	Source string
	URL    string
}

// SeedResult is the outcome of seeding one target.
type SeedResult struct {
	Target   SeedTarget
	Articles []api.Article
	Err      error
	Duration time.Duration
}

// SeedFunc fetches the articles for one target.
type SeedFunc func(ctx context.Context, source, url string) ([]api.Article, error)

// SeedPool runs seed jobs on a fixed number of workers.
type SeedPool struct {
	maxWorkers int
	timeout    time.Duration
	seed       SeedFunc
}

type seedWorker struct {
	id   int
	pool *SeedPool
	ctx  context.Context
}

type seedJob struct {
	index  int
	target SeedTarget
}

func NewSeedPool(seed SeedFunc, maxWorkers int, timeout time.Duration) *SeedPool {
	if maxWorkers < 1 {
		maxWorkers = DefaultSeedWorkers
	}
	if timeout <= 0 {
		timeout = seedTimeout
	}
	return &SeedPool{maxWorkers: maxWorkers, timeout: timeout, seed: seed}
}

// Run seeds every target and returns the results in target order.
// Failures are reported per result; Run itself never fails.
func (p *SeedPool) Run(ctx context.Context, targets []SeedTarget) []SeedResult {
	results := make([]SeedResult, len(targets))
	jobs := make(chan seedJob)

	var wg sync.WaitGroup
	for i := 0; i < min(p.maxWorkers, len(targets)); i++ {
		w := &seedWorker{id: i, pool: p, ctx: ctx}
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.start(jobs, results)
		}()
	}

	for i, target := range targets {
		select {
		case jobs <- seedJob{index: i, target: target}:
		case <-ctx.Done():
			results[i] = SeedResult{Target: target, Err: ctx.Err()}
		}
	}
	close(jobs)
	wg.Wait()

	return results
}

// start drains jobs until the channel closes. Each job writes only its own slot.
func (w *seedWorker) start(jobs <-chan seedJob, results []SeedResult) {
	for job := range jobs {
		results[job.index] = w.execute(job.target)
	}
}

func (w *seedWorker) execute(target SeedTarget) SeedResult {
	ctx, cancel := context.WithTimeout(w.ctx, w.pool.timeout)
	defer cancel()

	started := time.Now()
	articles, err := w.pool.seed(ctx, target.Source, target.URL)
	result := SeedResult{Target: target, Articles: articles, Err: err, Duration: time.Since(started)}

	if err != nil {
		logging.Error("Seed failed", "worker", w.id, "source", target.Source, "url", target.URL, "error", err)
	} else {
		logging.Debug("Seeded", "worker", w.id, "source", target.Source, "articles", len(articles), "duration", result.Duration)
	}
	return result
}
