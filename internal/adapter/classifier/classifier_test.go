package classifier

import (
	"testing"
)

func TestEmotionsTopTwo(t *testing.T) {
	tagger := NewTagger()

	scores := tagger.Emotions("I feel sad and hopeless, and I'm so worried about everything")
	if len(scores) != 2 {
		t.Fatalf("expected top 2 emotions, got %d", len(scores))
	}
	if scores[0].Label != "sadness" {
		t.Errorf("expected sadness first, got %s", scores[0].Label)
	}
	if scores[1].Label != "fear" {
		t.Errorf("expected fear second, got %s", scores[1].Label)
	}

	var sum float64
	for _, s := range scores {
		sum += s.Score
	}
	if sum > 1.0001 {
		t.Errorf("scores sum above 1: %f", sum)
	}
}

func TestEmotionsNoMatch(t *testing.T) {
	tagger := NewTagger()

	if scores := tagger.Emotions("the meeting is at noon"); scores != nil {
		t.Errorf("expected nil for neutral text, got %+v", scores)
	}
}

func TestEmotionsScoresAreShares(t *testing.T) {
	tagger := NewTagger()

	// One sadness cue and one joy cue: each takes half.
	scores := tagger.Emotions("I was sad but now I feel better")
	if len(scores) != 2 {
		t.Fatalf("expected 2 emotions, got %d", len(scores))
	}
	for _, s := range scores {
		if s.Score != 0.5 {
			t.Errorf("%s: expected score 0.5, got %f", s.Label, s.Score)
		}
	}
	// Equal scores keep canonical label order: sadness before joy.
	if scores[0].Label != "sadness" || scores[1].Label != "joy" {
		t.Errorf("tie not broken canonically: %+v", scores)
	}
}

func TestThemes(t *testing.T) {
	tagger := NewTagger()

	themes := tagger.Themes("I keep thinking I'm a failure and I'm so tired all the time")
	want := []string{"fatigue", "self-esteem"}
	if len(themes) != len(want) {
		t.Fatalf("expected %v, got %v", want, themes)
	}
	for i := range want {
		if themes[i] != want[i] {
			t.Errorf("expected %v, got %v", want, themes)
			break
		}
	}

	if themes := tagger.Themes("nothing notable here"); themes != nil {
		t.Errorf("expected no themes, got %v", themes)
	}
}

func TestDistortions(t *testing.T) {
	tagger := NewTagger()

	distortions := tagger.Distortions("I always mess up, everything failing around me")
	want := []string{"catastrophizing", "overgeneralization"}
	if len(distortions) != len(want) {
		t.Fatalf("expected %v, got %v", want, distortions)
	}
	for i := range want {
		if distortions[i] != want[i] {
			t.Errorf("expected %v, got %v", want, distortions)
			break
		}
	}
}

func TestMatchingIsCaseInsensitive(t *testing.T) {
	tagger := NewTagger()

	if scores := tagger.Emotions("I AM SO ANGRY"); len(scores) == 0 || scores[0].Label != "anger" {
		t.Errorf("uppercase text not matched: %+v", scores)
	}
}

func TestEmotionLabelsReturnsCopy(t *testing.T) {
	labels := EmotionLabels()
	if len(labels) != 6 {
		t.Fatalf("expected 6 labels, got %d", len(labels))
	}
	labels[0] = "mutated"
	if EmotionLabels()[0] != "sadness" {
		t.Error("EmotionLabels exposed internal state")
	}
}
