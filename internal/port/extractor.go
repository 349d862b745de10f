package port

// Extractor produces one concatenated text string from a document file.
type Extractor interface {
	Extract(path string) (string, error)
}
