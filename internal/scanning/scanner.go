// Package scanning turns uploaded receipt images and PDFs into OCR text.
package scanning

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedType is returned for uploads that are neither an image nor a PDF
var ErrUnsupportedType = errors.New("unsupported content type")

// pageSeparator joins the transcripts of consecutive pages
const pageSeparator = "\n\n"

// Transcriber defines the interface for receipt transcription
type Transcriber interface {
	// Transcribe returns the text printed on a receipt image or PDF
	Transcribe(data []byte, contentType string) (string, error)
	// Close closes the transcriber and releases resources
	Close() error
}

// pageReader reads the text of a single PNG page
type pageReader func(png []byte) (string, error)

// transcribe runs the flow shared by every backend. A PDF whose pages all carry
// a text layer is answered without calling the model.
func transcribe(data []byte, contentType string, read pageReader) (string, error) {
	doc, err := prepareDocument(data, contentType)
	if err != nil {
		return "", err
	}
	if doc.text != nil {
		return strings.Join(doc.text, pageSeparator), nil
	}

	texts := make([]string, 0, len(doc.pages))
	for i, page := range doc.pages {
		text, err := read(page)
		if err != nil {
			return "", fmt.Errorf("transcribing page %d: %w", i+1, err)
		}
		texts = append(texts, cleanTranscript(text))
	}
	return strings.Join(texts, pageSeparator), nil
}
