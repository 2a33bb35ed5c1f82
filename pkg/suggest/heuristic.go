package suggest

import (
	"context"
	"math/rand"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/rhythm00111/capella-notes/pkg/models"
	"github.com/rhythm00111/capella-notes/pkg/utils"
)

// tagPatterns maps a candidate tag to content markers that hint at it.
var tagPatterns = map[string][]string{
	"productivity": {"task", "todo", "habit", "routine", "workflow", "efficiency", "organize"},
	"meeting":      {"attendees", "agenda", "action items", "standup", "sync"},
	"project":      {"scope", "timeline", "budget", "milestone", "deadline", "phase"},
	"learning":     {"book", "course", "tutorial", "study", "research"},
	"travel":       {"trip", "itinerary", "flight", "hotel", "destination", "vacation"},
	"recipe":       {"ingredients", "cook", "recipe", "food", "meal", "bake"},
	"development":  {"code", "api", "bug", "feature", "deploy", "release"},
	"design":       {"ui", "ux", "color", "typography", "layout", "component"},
	"personal":     {"journal", "reflection", "goals", "ideas", "thoughts"},
}

var taskRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:need to|should|must|have to|todo|to-do)\s+([^.\n]+)`),
	regexp.MustCompile(`(?m)^-\s\[ \]\s*(.+)$`),
	regexp.MustCompile(`(?i)(?:follow up on|remember to|don't forget to)\s+([^.\n]+)`),
}

// HeuristicProvider implements Provider with keyword-frequency tags,
// word-overlap link and duplicate detection, extractive summaries and
// regex task extraction, each behind a uniformly random delay to mimic a
// remote service.
type HeuristicProvider struct {
	minDelay time.Duration
	maxDelay time.Duration
}

// NewHeuristicProvider creates a provider with the default 300-900ms
// per-pass delay.
func NewHeuristicProvider() *HeuristicProvider {
	return NewHeuristicProviderWithDelay(300*time.Millisecond, 900*time.Millisecond)
}

// NewHeuristicProviderWithDelay creates a provider with a custom delay
// range. Zero delays make the provider synchronous, which tests rely on.
func NewHeuristicProviderWithDelay(minDelay, maxDelay time.Duration) *HeuristicProvider {
	if maxDelay < minDelay {
		maxDelay = minDelay
	}
	return &HeuristicProvider{minDelay: minDelay, maxDelay: maxDelay}
}

// delay sleeps for a random duration in the configured range, returning
// early with ctx.Err() on cancellation.
func (p *HeuristicProvider) delay(ctx context.Context) error {
	d := p.minDelay
	if span := p.maxDelay - p.minDelay; span > 0 {
		d += time.Duration(rand.Int63n(int64(span)))
	}
	if d == 0 {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// Analyze runs every suggestion pass and concatenates the results.
func (p *HeuristicProvider) Analyze(ctx context.Context, note *models.Note, all []*models.Note) ([]models.Suggestion, error) {
	tags, err := p.SuggestTags(ctx, note.Content)
	if err != nil {
		return nil, err
	}
	links, err := p.SuggestLinks(ctx, note, all)
	if err != nil {
		return nil, err
	}
	summary, err := p.Summarize(ctx, note.Content)
	if err != nil {
		return nil, err
	}
	duplicates, err := p.FindDuplicates(ctx, note, all)
	if err != nil {
		return nil, err
	}
	tasks, err := p.ExtractTasks(ctx, note.Content)
	if err != nil {
		return nil, err
	}

	var out []models.Suggestion
	out = append(out, tags...)
	out = append(out, links...)
	if summary != nil {
		out = append(out, *summary)
	}
	out = append(out, duplicates...)
	out = append(out, tasks...)
	return out, nil
}

// SuggestTags proposes up to five tags from pattern matches and frequent
// keywords.
func (p *HeuristicProvider) SuggestTags(ctx context.Context, text string) ([]models.Suggestion, error) {
	if err := p.delay(ctx); err != nil {
		return nil, err
	}

	lower := strings.ToLower(text)
	keywords := extractKeywords(text)
	keywordSet := make(map[string]bool, len(keywords))
	for _, k := range keywords {
		keywordSet[k] = true
	}

	var suggestions []models.Suggestion

	// Deterministic pattern order.
	tags := make([]string, 0, len(tagPatterns))
	for tag := range tagPatterns {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	for _, tag := range tags {
		var matches []string
		for _, marker := range tagPatterns[tag] {
			if strings.Contains(lower, marker) || keywordSet[marker] {
				matches = append(matches, marker)
			}
		}
		if len(matches) == 0 {
			continue
		}
		confidence := 0.5 + float64(len(matches))*0.15
		if confidence > 0.95 {
			confidence = 0.95
		}
		reason := "Content contains: " + strings.Join(matches[:min2(2, len(matches))], ", ")
		suggestions = append(suggestions, models.Suggestion{
			ID:         utils.NewID(),
			Type:       models.SuggestionTag,
			Value:      tag,
			Confidence: confidence,
			Reason:     reason,
			CreatedAt:  time.Now(),
		})
	}

	for _, keyword := range keywords[:min2(3, len(keywords))] {
		if hasValue(suggestions, keyword) {
			continue
		}
		suggestions = append(suggestions, models.Suggestion{
			ID:         utils.NewID(),
			Type:       models.SuggestionTag,
			Value:      keyword,
			Confidence: 0.6 + rand.Float64()*0.2,
			Reason:     "Frequently mentioned keyword",
			CreatedAt:  time.Now(),
		})
	}

	sortByConfidence(suggestions)
	return cap5(suggestions), nil
}

// SuggestLinks proposes links to other notes whose title, content or
// tags overlap the note's text. Trashed notes never surface.
func (p *HeuristicProvider) SuggestLinks(ctx context.Context, note *models.Note, all []*models.Note) ([]models.Suggestion, error) {
	if err := p.delay(ctx); err != nil {
		return nil, err
	}

	lower := strings.ToLower(note.Content)
	var suggestions []models.Suggestion
	for _, other := range all {
		if other.ID == note.ID || other.IsDeleted {
			continue
		}

		titleSim := wordOverlap(note.Content, other.Title)
		contentSim := wordOverlap(note.Content, other.Content)
		tagHits := 0
		for _, t := range other.Tags {
			if strings.Contains(lower, strings.ToLower(t.Name)) {
				tagHits++
			}
		}
		tagSim := 0.0
		if len(other.Tags) > 0 {
			tagSim = float64(tagHits) / float64(len(other.Tags))
		}

		relevance := titleSim*0.3 + contentSim*0.5 + tagSim*0.2
		if relevance <= 0.1 {
			continue
		}
		confidence := relevance + 0.3
		if confidence > 0.95 {
			confidence = 0.95
		}
		suggestions = append(suggestions, models.Suggestion{
			ID:         utils.NewID(),
			Type:       models.SuggestionLink,
			Link:       &models.LinkTarget{NoteID: other.ID, NoteTitle: other.Title, Score: relevance},
			Confidence: confidence,
			Reason:     "Similar topics and keywords",
			CreatedAt:  time.Now(),
		})
	}

	sortByConfidence(suggestions)
	return cap5(suggestions), nil
}

// Summarize builds an extractive summary from the sentences that carry
// the most keywords. Returns nil for content with nothing to summarize.
func (p *HeuristicProvider) Summarize(ctx context.Context, text string) (*models.Suggestion, error) {
	if err := p.delay(ctx); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	keywords := extractKeywords(text)
	var sentences []string
	for _, raw := range regexp.MustCompile(`[.!?]+`).Split(text, -1) {
		if s := strings.TrimSpace(raw); len(s) > 20 {
			sentences = append(sentences, s)
		}
	}

	scores := make(map[string]int, len(sentences))
	for _, s := range sentences {
		lower := strings.ToLower(s)
		for _, k := range keywords {
			if strings.Contains(lower, k) {
				scores[s]++
			}
		}
	}
	sort.SliceStable(sentences, func(i, j int) bool {
		return scores[sentences[i]] > scores[sentences[j]]
	})

	summary := "This note covers various topics and requires manual review for summarization."
	if len(sentences) > 0 {
		summary = strings.Join(sentences[:min2(3, len(sentences))], ". ") + "."
	}

	return &models.Suggestion{
		ID:         utils.NewID(),
		Type:       models.SuggestionSummary,
		Value:      summary,
		Confidence: 0.75 + rand.Float64()*0.15,
		CreatedAt:  time.Now(),
	}, nil
}

// FindDuplicates flags other notes whose title and content closely match.
func (p *HeuristicProvider) FindDuplicates(ctx context.Context, note *models.Note, all []*models.Note) ([]models.Suggestion, error) {
	if err := p.delay(ctx); err != nil {
		return nil, err
	}

	var suggestions []models.Suggestion
	for _, other := range all {
		if other.ID == note.ID || other.IsDeleted {
			continue
		}

		similarity := stringSimilarity(note.Title, other.Title)*0.4 +
			wordOverlap(note.Content, other.Content)*0.6
		if similarity <= 0.5 {
			continue
		}
		suggestions = append(suggestions, models.Suggestion{
			ID:         utils.NewID(),
			Type:       models.SuggestionDuplicate,
			Link:       &models.LinkTarget{NoteID: other.ID, NoteTitle: other.Title, Score: similarity},
			Confidence: similarity,
			Reason:     "Very similar title and content",
			CreatedAt:  time.Now(),
		})
	}

	sortByConfidence(suggestions)
	if len(suggestions) > 3 {
		suggestions = suggestions[:3]
	}
	return suggestions, nil
}

// ExtractTasks pulls action items out of the text: imperative phrases
// ("need to", "remember to", ...) and unchecked checkboxes.
func (p *HeuristicProvider) ExtractTasks(ctx context.Context, text string) ([]models.Suggestion, error) {
	if err := p.delay(ctx); err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var suggestions []models.Suggestion
	for _, re := range taskRes {
		for _, match := range re.FindAllStringSubmatch(text, -1) {
			task := strings.TrimSpace(match[1])
			if len(task) <= 5 || len(task) >= 200 || seen[task] {
				continue
			}
			seen[task] = true
			suggestions = append(suggestions, models.Suggestion{
				ID:         utils.NewID(),
				Type:       models.SuggestionTask,
				Value:      task,
				Confidence: 0.8 + rand.Float64()*0.15,
				CreatedAt:  time.Now(),
			})
		}
	}
	return cap5(suggestions), nil
}

func sortByConfidence(suggestions []models.Suggestion) {
	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Confidence > suggestions[j].Confidence
	})
}

func cap5(suggestions []models.Suggestion) []models.Suggestion {
	if len(suggestions) > 5 {
		return suggestions[:5]
	}
	return suggestions
}

func hasValue(suggestions []models.Suggestion, value string) bool {
	for _, s := range suggestions {
		if s.Value == value {
			return true
		}
	}
	return false
}

func min2(a, b int) int {
	if a < b {
		return a
	}
	return b
}
