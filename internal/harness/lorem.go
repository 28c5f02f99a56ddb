package harness

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/baitwatch/baitwatch/internal/api"
)

var loremWords = []string{
	"lorem", "ipsum", "dolor", "sit", "amet", "consectetur", "adipiscing", "elit",
	"sed", "do", "eiusmod", "tempor", "incididunt", "ut", "labore", "et", "dolore",
	"magna", "aliqua", "enim", "ad", "minim", "veniam", "quis", "nostrud",
	"exercitation", "ullamco", "laboris", "nisi", "aliquip", "ex", "ea", "commodo",
	"consequat", "duis", "aute", "irure", "in", "reprehenderit", "voluptate",
	"velit", "esse", "cillum", "fugiat", "nulla", "pariatur", "excepteur", "sint",
	"occaecat", "cupidatat", "non", "proident", "sunt", "culpa", "qui", "officia",
	"deserunt", "mollit", "anim", "id", "est", "laborum",
}

var baitOpeners = []string{
	"You won't believe", "Shocking:", "Doctors hate", "This one trick",
	"Scientists stunned:", "Nobody expected", "What happened next",
}

var tones = []string{"neutral", "alarming", "sensational", "calm", "outraged"}

var techniques = []string{
	"curiosity gap", "exaggeration", "emotional appeal", "false urgency",
	"vague attribution", "listicle framing",
}

// Generator produces lorem articles. A fixed seed gives a reproducible set.
type Generator struct {
	rng *rand.Rand
	now time.Time
}

func NewGenerator(seed int64) *Generator {
	return &Generator{
		rng: rand.New(rand.NewSource(seed)),
		now: time.Now().UTC(),
	}
}

func (g *Generator) text(wordCount int) string {
	if wordCount <= 0 {
		wordCount = 10 + g.rng.Intn(20)
	}

	words := make([]string, wordCount)
	for i := 0; i < wordCount; i++ {
		words[i] = loremWords[g.rng.Intn(len(loremWords))]
	}

	text := strings.Join(words, " ")
	return strings.ToUpper(text[:1]) + text[1:] + "."
}

// Articles generates count articles spread across sources. Roughly one in five
// is left unanalyzed.
func (g *Generator) Articles(count int, sources []string) []api.Article {
	if len(sources) == 0 {
		sources = []string{"lorem"}
	}

	articles := make([]api.Article, 0, count)
	for i := 0; i < count; i++ {
		source := sources[g.rng.Intn(len(sources))]
		id := uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("%s-%d", source, i))).String()

		title := strings.TrimSuffix(g.text(3+g.rng.Intn(7)), ".")
		bait := g.rng.Intn(3) == 0
		if bait {
			title = baitOpeners[g.rng.Intn(len(baitOpeners))] + " " + strings.ToLower(title)
		}

		published := g.now.Add(-time.Duration(i) * 37 * time.Minute).Format(time.RFC3339)
		body := g.text(80 + g.rng.Intn(150))

		article := api.Article{
			ID:          id,
			URL:         fmt.Sprintf("https://%s.example.com/article/%d", source, i+1),
			Title:       title,
			Source:      source,
			PublishedAt: &published,
			Content:     &body,
		}
		if g.rng.Intn(5) != 0 {
			article.Analysis = g.analysis(bait)
		}
		articles = append(articles, article)
	}
	return articles
}

func (g *Generator) analysis(bait bool) *api.Analysis {
	score := float64(g.rng.Intn(45))
	if bait {
		score = float64(55 + g.rng.Intn(45))
	}
	hasClickbait := score > 50

	reasoning := g.text(25)
	summary := g.text(15)
	tone := tones[g.rng.Intn(len(tones))]
	sensationalism := "low"
	switch {
	case score >= 70:
		sensationalism = "high"
	case score >= 40:
		sensationalism = "medium"
	}
	factual := g.text(8)

	a := &api.Analysis{
		ClickbaitScore: &score,
		HasClickbait:   &hasClickbait,
		Reasoning:      &reasoning,
		Summary:        &summary,
		EmotionalTone:  &tone,
		Sensationalism: &sensationalism,
		FactualBasis:   &factual,
	}
	if bait {
		n := 1 + g.rng.Intn(3)
		for _, idx := range g.rng.Perm(len(techniques))[:n] {
			a.ManipulationTechniques = append(a.ManipulationTechniques, techniques[idx])
		}
		suggested := strings.TrimSuffix(g.text(6), ".")
		a.SuggestedTitle = &suggested
	}
	return a
}
