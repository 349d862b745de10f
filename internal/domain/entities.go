package domain

import "time"

// Chunk is the atomic unit of retrieval: a bounded contiguous slice of a
// document's words. Index is the chunk's position in the document's chunk
// sequence and is stable for the document's lifetime.
type Chunk struct {
	Index int
	Text  string
}

// User roles.
const (
	RolePatient   = "patient"
	RoleTherapist = "therapist"
)

type User struct {
	ID             string
	Username       string
	Email          string
	PasswordHash   string
	ProfilePicture string
	Role           string
	CreatedAt      time.Time
}

// TherapySession is a logged therapy activity (journaling, VR, voice, ...).
type TherapySession struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	SessionType string    `json:"session_type"`
	Duration    int       `json:"duration"` // minutes
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
}

// Utterance is one turn of a therapy-session transcript.
type Utterance struct {
	Speaker string `json:"speaker"`
	Text    string `json:"utterance"`
}

// Transcript speakers.
const (
	SpeakerPatient   = "patient"
	SpeakerTherapist = "therapist"
)

type EmotionScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// AnalyzedUtterance is a transcript turn with its classifier tags. Only
// patient turns are tagged; therapist turns keep empty tag slices.
type AnalyzedUtterance struct {
	Index       int            `json:"index"`
	Speaker     string         `json:"speaker"`
	Text        string         `json:"utterance"`
	Emotions    []EmotionScore `json:"emotions"`
	Themes      []string       `json:"themes"`
	Distortions []string       `json:"distortions"`
}

// EmotionSeries is one emotion's confidence over the patient's utterances,
// indexed by patient-utterance position (therapist turns excluded).
type EmotionSeries struct {
	Label string    `json:"label"`
	Data  []float64 `json:"data"`
}

type SessionMeta struct {
	SessionID string `json:"sessionId"`
	PatientID string `json:"patientId"`
	Date      string `json:"date"`
	Summary   string `json:"summary"`
}

// SessionAnalysis is the full analysis report for a session transcript.
type SessionAnalysis struct {
	Meta              SessionMeta         `json:"sessionMeta"`
	Transcript        []AnalyzedUtterance `json:"transcript"`
	EmotionTimeline   []EmotionSeries     `json:"emotionTimeline"`
	ThemeSummary      map[string]int      `json:"themesSummary"`
	DistortionSummary map[string]int      `json:"distortionSummary"`
}
