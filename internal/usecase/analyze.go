package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"mindverse/internal/adapter/classifier"
	"mindverse/internal/domain"
	"mindverse/internal/port"
)

const summaryFallback = "Summary could not be generated. Please try again later."

// AnalyzeUseCase tags a session transcript with emotions, themes, and
// cognitive distortions, aggregates them into per-session summaries and a
// patient emotion timeline, and asks the language model for a narrative
// summary.
type AnalyzeUseCase struct {
	tagger *classifier.Tagger
	llm    port.LLM
}

func NewAnalyzeUseCase(tagger *classifier.Tagger, llm port.LLM) *AnalyzeUseCase {
	return &AnalyzeUseCase{tagger: tagger, llm: llm}
}

// Analyze produces the full analysis report for a transcript. Classifier
// tagging is applied to patient utterances only. A summary-generation
// failure degrades to a fallback string rather than failing the analysis.
func (u *AnalyzeUseCase) Analyze(ctx context.Context, transcript []domain.Utterance) (*domain.SessionAnalysis, error) {
	if len(transcript) == 0 {
		return nil, fmt.Errorf("transcript is empty: %w", domain.ErrInvalidConfiguration)
	}

	patientCount := 0
	for _, entry := range transcript {
		if entry.Speaker == domain.SpeakerPatient {
			patientCount++
		}
	}

	analyzed := make([]domain.AnalyzedUtterance, 0, len(transcript))
	timeline := make(map[string][]float64)
	themeSummary := make(map[string]int)
	distortionSummary := make(map[string]int)

	patientIdx := 0
	for i, entry := range transcript {
		out := domain.AnalyzedUtterance{
			Index:       i,
			Speaker:     entry.Speaker,
			Text:        entry.Text,
			Emotions:    []domain.EmotionScore{},
			Themes:      []string{},
			Distortions: []string{},
		}

		if entry.Speaker == domain.SpeakerPatient {
			emotions := u.tagger.Emotions(entry.Text)
			if emotions != nil {
				out.Emotions = emotions
			}
			for _, e := range emotions {
				if _, ok := timeline[e.Label]; !ok {
					timeline[e.Label] = make([]float64, patientCount)
				}
				timeline[e.Label][patientIdx] = e.Score
			}

			if themes := u.tagger.Themes(entry.Text); themes != nil {
				out.Themes = themes
				for _, theme := range themes {
					themeSummary[theme]++
				}
			}
			if distortions := u.tagger.Distortions(entry.Text); distortions != nil {
				out.Distortions = distortions
				for _, d := range distortions {
					distortionSummary[d]++
				}
			}

			patientIdx++
		}

		analyzed = append(analyzed, out)
	}

	timelineSeries := make([]domain.EmotionSeries, 0, len(timeline))
	for _, label := range classifier.EmotionLabels() {
		if data, ok := timeline[label]; ok {
			timelineSeries = append(timelineSeries, domain.EmotionSeries{Label: label, Data: data})
		}
	}

	summary := u.summarize(ctx, transcript)

	return &domain.SessionAnalysis{
		Meta: domain.SessionMeta{
			SessionID: "session-" + shortID(),
			PatientID: "patient-" + shortID(),
			Date:      time.Now().Format("2006-01-02"),
			Summary:   summary,
		},
		Transcript:        analyzed,
		EmotionTimeline:   timelineSeries,
		ThemeSummary:      themeSummary,
		DistortionSummary: distortionSummary,
	}, nil
}

func (u *AnalyzeUseCase) summarize(ctx context.Context, transcript []domain.Utterance) string {
	if u.llm == nil {
		return summaryFallback
	}

	encoded, err := json.MarshalIndent(transcript, "", "  ")
	if err != nil {
		return summaryFallback
	}

	prompt := fmt.Sprintf(`Summarize the patient's emotional and thematic journey based on this dialogue:

%s

Give insights that could help a therapist understand the patient's emotional patterns.
Provide Time Series Insights on the patient's emotional journey.
Provide tips/ways to help the patient improve their emotional state.`, encoded)

	summary, err := u.llm.Generate(ctx, prompt)
	if err != nil || summary == "" {
		return summaryFallback
	}
	return summary
}

// ParseTranscript converts plain text into utterances. Lines prefixed with
// "therapist:" or "patient:" keep their speaker; unlabeled lines alternate
// starting with the therapist.
func ParseTranscript(text string) []domain.Utterance {
	var transcript []domain.Utterance
	isTherapist := true

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		lower := strings.ToLower(line)
		switch {
		case strings.HasPrefix(lower, "therapist:"):
			transcript = append(transcript, domain.Utterance{
				Speaker: domain.SpeakerTherapist,
				Text:    strings.TrimSpace(line[len("therapist:"):]),
			})
			isTherapist = false
		case strings.HasPrefix(lower, "patient:"):
			transcript = append(transcript, domain.Utterance{
				Speaker: domain.SpeakerPatient,
				Text:    strings.TrimSpace(line[len("patient:"):]),
			})
			isTherapist = true
		default:
			speaker := domain.SpeakerPatient
			if isTherapist {
				speaker = domain.SpeakerTherapist
			}
			transcript = append(transcript, domain.Utterance{Speaker: speaker, Text: line})
			isTherapist = !isTherapist
		}
	}

	return transcript
}

func shortID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}
