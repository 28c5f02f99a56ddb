package harness

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/baitwatch/baitwatch/internal/api"
)

func TestSeedPoolKeepsTargetOrder(t *testing.T) {
	targets := []SeedTarget{
		{Source: "onet", URL: "u1"},
		{Source: "rmf24", URL: "u2"},
		{Source: "focuspl", URL: "fail"},
		{Source: "naukawpolsce", URL: "u4"},
	}

	var running, peak int32
	seed := func(ctx context.Context, source, url string) ([]api.Article, error) {
		n := atomic.AddInt32(&running, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		atomic.AddInt32(&running, -1)

		if url == "fail" {
			return nil, errors.New("boom")
		}
		return []api.Article{{ID: url, Source: source}}, nil
	}

	results := NewSeedPool(seed, 2, time.Second).Run(context.Background(), targets)
	if len(results) != len(targets) {
		t.Fatalf("expected %d results, got %d", len(targets), len(results))
	}
	for i, r := range results {
		if r.Target != targets[i] {
			t.Errorf("result %d: target %+v, want %+v", i, r.Target, targets[i])
		}
	}
	if results[2].Err == nil {
		t.Error("expected failure for the third target")
	}
	if len(results[3].Articles) != 1 || results[3].Articles[0].ID != "u4" {
		t.Errorf("unexpected articles %+v", results[3].Articles)
	}
	if peak > 2 {
		t.Errorf("expected at most 2 concurrent seeds, saw %d", peak)
	}
}

func TestSeedPoolAppliesTimeout(t *testing.T) {
	seed := func(ctx context.Context, source, url string) ([]api.Article, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}

	results := NewSeedPool(seed, 1, 20*time.Millisecond).Run(context.Background(), []SeedTarget{{Source: "onet", URL: "slow"}})
	if !errors.Is(results[0].Err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", results[0].Err)
	}
}

func TestSeedPoolNoTargets(t *testing.T) {
	results := NewSeedPool(nil, 0, 0).Run(context.Background(), nil)
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}
