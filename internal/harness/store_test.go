package harness

import (
	"fmt"
	"strings"
	"testing"

	"github.com/baitwatch/baitwatch/internal/api"
)

func article(id, source, published string) api.Article {
	return api.Article{ID: id, Source: source, Title: "t" + id, PublishedAt: &published}
}

func TestStoreListPaging(t *testing.T) {
	store := NewStore()
	for i := 0; i < 45; i++ {
		store.Add(article(fmt.Sprintf("a%02d", i), "onet", fmt.Sprintf("2024-01-01T00:%02d:00Z", i)))
	}

	first := store.List(20, 0, "")
	if len(first) != 20 {
		t.Fatalf("expected 20 articles, got %d", len(first))
	}
	if first[0].ID != "a44" {
		t.Errorf("expected newest first, got %s", first[0].ID)
	}

	last := store.List(20, 40, "")
	if len(last) != 5 {
		t.Errorf("expected 5 articles on the last page, got %d", len(last))
	}

	if got := store.List(20, 100, ""); len(got) != 0 {
		t.Errorf("expected empty page past the end, got %d", len(got))
	}

	if got := store.List(0, 40, ""); len(got) != 5 {
		t.Errorf("limit 0 should return the rest, got %d", len(got))
	}
}

func TestStoreFilterAndSources(t *testing.T) {
	store := NewStore()
	store.Add(
		article("1", "onet", "2024-01-03"),
		article("2", "rmf24", "2024-01-02"),
		article("3", "onet", "2024-01-01"),
	)

	got := store.List(10, 0, "onet")
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "3" {
		t.Errorf("unexpected onet page: %+v", got)
	}

	sources := store.Sources()
	if strings.Join(sources, ",") != "onet,rmf24" {
		t.Errorf("unexpected sources: %v", sources)
	}
}

func TestStoreAddReplacesByID(t *testing.T) {
	store := NewStore()
	store.Add(article("1", "onet", "2024-01-01"))
	updated := article("1", "onet", "2024-01-01")
	updated.Title = "updated"
	store.Add(updated)

	if store.Len() != 1 {
		t.Fatalf("expected 1 article, got %d", store.Len())
	}
	got, ok := store.Get("1")
	if !ok || got.Title != "updated" {
		t.Errorf("expected replaced article, got %+v", got)
	}
}

func TestStoreListTruncatesContent(t *testing.T) {
	store := NewStore()
	a := article("1", "onet", "2024-01-01")
	long := strings.Repeat("ż", ListContentLimit+10)
	a.Content = &long
	store.Add(a)

	listed := store.List(10, 0, "")[0]
	if got := []rune(*listed.Content); len(got) != ListContentLimit+3 {
		t.Errorf("expected %d runes, got %d", ListContentLimit+3, len(got))
	}

	full, _ := store.Get("1")
	if *full.Content != long {
		t.Error("Get should return the untruncated content")
	}
}

func TestGeneratorIsReproducible(t *testing.T) {
	sources := []string{"onet", "rmf24"}
	a := NewGenerator(7).Articles(30, sources)
	b := NewGenerator(7).Articles(30, sources)

	if len(a) != 30 {
		t.Fatalf("expected 30 articles, got %d", len(a))
	}
	analyzed := 0
	for i := range a {
		if a[i].ID != b[i].ID || a[i].Title != b[i].Title {
			t.Fatalf("article %d differs between runs", i)
		}
		if a[i].Source != "onet" && a[i].Source != "rmf24" {
			t.Errorf("unexpected source %q", a[i].Source)
		}
		if a[i].Analysis != nil {
			analyzed++
			score := *a[i].Analysis.ClickbaitScore
			if score < 0 || score > 100 {
				t.Errorf("score out of range: %v", score)
			}
		}
	}
	if analyzed == 0 {
		t.Error("expected some analyzed articles")
	}
}
