// Package classifier tags therapy-transcript utterances with emotions,
// themes, and cognitive distortions using keyword lexicons. Matching is
// case-insensitive substring matching, so multi-word cues like "mess up"
// work without tokenization.
package classifier

import (
	"sort"
	"strings"

	"mindverse/internal/domain"
)

// Emotion labels, in canonical order.
var emotionLabels = []string{"sadness", "joy", "love", "anger", "fear", "surprise"}

// EmotionLabels returns the emotion labels in canonical order.
func EmotionLabels() []string {
	return append([]string(nil), emotionLabels...)
}

var defaultEmotionCues = map[string][]string{
	"sadness":  {"sad", "down", "cry", "hopeless", "mess up", "failing", "worthless", "lonely"},
	"joy":      {"happy", "glad", "hope", "hopeful", "better", "good", "enjoy"},
	"love":     {"love", "care", "close", "connected"},
	"anger":    {"angry", "mad", "furious", "hate", "frustrated"},
	"fear":     {"afraid", "scared", "anxious", "worry", "worried", "panic"},
	"surprise": {"surprised", "sudden", "unexpected", "shocked"},
}

var defaultThemeKeywords = map[string][]string{
	"self-esteem": {"worth", "failure", "mess up", "useless"},
	"hope":        {"hope", "better", "progress"},
	"fatigue":     {"tired", "exhausted", "drained"},
}

var defaultDistortionCues = map[string][]string{
	"overgeneralization": {"always", "never"},
	"catastrophizing":    {"everything failing", "nothing works"},
}

// Tagger classifies single utterances against its lexicons.
type Tagger struct {
	emotions    map[string][]string
	themes      map[string][]string
	distortions map[string][]string
}

func NewTagger() *Tagger {
	return &Tagger{
		emotions:    defaultEmotionCues,
		themes:      defaultThemeKeywords,
		distortions: defaultDistortionCues,
	}
}

// Emotions returns up to the two strongest emotions detected in text. Scores
// are each emotion's share of all matched cues, so they sum to at most 1.
// Ties are broken by canonical label order for deterministic output.
func (t *Tagger) Emotions(text string) []domain.EmotionScore {
	lower := strings.ToLower(text)

	matches := make(map[string]int)
	total := 0
	for _, label := range emotionLabels {
		for _, cue := range t.emotions[label] {
			if strings.Contains(lower, cue) {
				matches[label]++
				total++
			}
		}
	}
	if total == 0 {
		return nil
	}

	scores := make([]domain.EmotionScore, 0, len(matches))
	for _, label := range emotionLabels {
		if n := matches[label]; n > 0 {
			scores = append(scores, domain.EmotionScore{
				Label: label,
				Score: float64(n) / float64(total),
			})
		}
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Score > scores[j].Score
	})

	if len(scores) > 2 {
		scores = scores[:2]
	}
	return scores
}

// Themes returns the themes whose keywords appear in text, in a stable order.
func (t *Tagger) Themes(text string) []string {
	return matchCategories(text, t.themes)
}

// Distortions returns the cognitive distortions cued in text, in a stable
// order.
func (t *Tagger) Distortions(text string) []string {
	return matchCategories(text, t.distortions)
}

func matchCategories(text string, lexicon map[string][]string) []string {
	lower := strings.ToLower(text)

	var matched []string
	for category, cues := range lexicon {
		for _, cue := range cues {
			if strings.Contains(lower, cue) {
				matched = append(matched, category)
				break
			}
		}
	}

	sort.Strings(matched)
	return matched
}
