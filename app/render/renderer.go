package render

import (
	"fmt"
	"log/slog"
	"math/rand"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/erdmkk/football-gossip-bot/app/content"
	"github.com/erdmkk/football-gossip-bot/app/tables"
)

// MaxLength is the hard platform budget in characters.
const MaxLength = 280

// Renderer turns a selected candidate into platform-ready text. The
// random source is injected so tests can pin template and flavor
// choices with a fixed seed.
type Renderer struct {
	tables *tables.Scoring
	rng    *rand.Rand
}

func NewRenderer(t *tables.Scoring, rng *rand.Rand) *Renderer {
	return &Renderer{tables: t, rng: rng}
}

// Render produces the final text for a candidate. Length enforcement
// runs in three stages: the full template, then a short-form template
// for the same category, then a hard truncation. The order matters; a
// premature truncation would cut intentional content.
func (r *Renderer) Render(sc content.ScoredCandidate) string {
	var full, short string

	switch sc.Candidate.Kind {
	case content.KindFollow, content.KindUnfollow:
		full, short = r.renderSocial(sc)
	case content.KindNewsArticle:
		full, short = r.renderNews(sc)
	case content.KindHistoricalEvent:
		full, short = r.renderHistory(sc)
	default:
		return ""
	}

	if utf8.RuneCountInString(full) <= MaxLength {
		return full
	}
	slog.Debug("Full render over budget, using short form", "length", utf8.RuneCountInString(full))

	if utf8.RuneCountInString(short) <= MaxLength {
		return short
	}

	return truncate(short, MaxLength)
}

func (r *Renderer) renderSocial(sc content.ScoredCandidate) (full, short string) {
	c := sc.Candidate

	var pool []string
	if c.Kind == content.KindUnfollow {
		pool = unfollowTemplates
		if sc.Score > 70 {
			pool = unfollowMegaTemplates
		}
	} else {
		pool = followTemplates
		if sc.Score > 60 {
			pool = followHighTemplates
		}
	}

	body := r.fill(r.pick(pool), map[string]string{
		"{athlete}": c.Subject.Name,
		"{target}":  c.Object.Name,
		"{handle}":  c.Object.Handle,
	})

	full = appendHashtags(body, socialHashtags(c.Subject.Name), 2)

	verb := "followed"
	if c.Kind == content.KindUnfollow {
		verb = "unfollowed"
	}
	short = fmt.Sprintf("🚨 %s %s %s 👀", c.Subject.Name, verb, c.Object.Name)

	return full, short
}

func (r *Renderer) renderNews(sc content.ScoredCandidate) (full, short string) {
	c := sc.Candidate
	title := cleanTitle(c.Text)
	category := r.categorize(title, c.Context.Summary)

	var pool []string
	switch category {
	case "transfer":
		pool = transferTemplates
	case "match":
		pool = matchTemplates
	default:
		pool = breakingTemplates
	}

	body := r.fill(r.pick(pool), map[string]string{
		"{title}":    title,
		"{hook}":     r.pick(hooks),
		"{reaction}": r.pick(reactions),
		"{question}": r.pick(questions),
		"{context}":  r.pick(contexts),
		"{detail}":   r.pick(details),
	})

	tags := r.newsHashtags(title, c.Context.Summary, category)
	full = appendHashtags(body, tags, 3)

	// Short form drops the flavor fragments entirely.
	switch category {
	case "transfer":
		short = fmt.Sprintf("🚨 %s\n\n%s", title, r.pick(questions))
	case "match":
		short = fmt.Sprintf("⚽ %s\n\n%s", title, r.pick(reactions))
	default:
		short = fmt.Sprintf("🔥 %s\n\n%s", title, r.pick(hooks))
	}

	return full, short
}

func (r *Renderer) renderHistory(sc content.ScoredCandidate) (full, short string) {
	c := sc.Candidate

	body := r.fill(historyTemplate, map[string]string{
		"{emoji}": historyEmoji(c.Text),
		"{year}":  fmt.Sprintf("%d", c.Context.Year),
		"{text}":  c.Text,
	})

	full = body + "\n\n" + historyHashtags
	short = body

	return full, short
}

// categorize buckets an article by keyword matching over its text.
// Transfer wins over match wins over drama; general is the fallback.
func (r *Renderer) categorize(title, summary string) string {
	text := strings.ToLower(title + " " + summary)

	for _, kw := range r.tables.TransferKeywords {
		if strings.Contains(text, strings.ToLower(kw)) {
			return "transfer"
		}
	}
	for _, kw := range r.tables.MatchKeywords {
		if strings.Contains(text, strings.ToLower(kw)) {
			return "match"
		}
	}
	for _, kw := range r.tables.DramaKeywords {
		if strings.Contains(text, strings.ToLower(kw)) {
			return "drama"
		}
	}
	return "general"
}

func (r *Renderer) pick(pool []string) string {
	return pool[r.rng.Intn(len(pool))]
}

func (r *Renderer) fill(template string, values map[string]string) string {
	pairs := make([]string, 0, len(values)*2)
	for k, v := range values {
		pairs = append(pairs, k, v)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

var bracketRe = regexp.MustCompile(`\[.*?\]|\(.*?\)`)

// cleanTitle strips source names in brackets and common prefixes.
func cleanTitle(title string) string {
	title = bracketRe.ReplaceAllString(title, "")
	for _, prefix := range []string{"LIVE:", "BREAKING:", "UPDATE:", "EXCLUSIVE:"} {
		title = strings.ReplaceAll(title, prefix, "")
	}
	return strings.TrimSpace(title)
}

// historyEmoji picks an emoji by keyword rules; first match wins.
func historyEmoji(text string) string {
	lower := strings.ToLower(text)
	for _, rule := range historyEmojiRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.emoji
			}
		}
	}
	return historyDefaultEmoji
}

// truncate hard-cuts to max runes, reserving room for the ellipsis.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
