package scanning

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	"image/png"
	"strings"

	"github.com/gen2brain/go-fitz"
	"github.com/gen2brain/heic"
)

// document is an upload ready for transcription. Exactly one of text and pages
// is set: text holds the PDF text layer of every page, pages holds PNG renders.
type document struct {
	text  []string
	pages [][]byte
}

// imageMimeTypes lists the image uploads that can be decoded
var imageMimeTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/jpg":  true,
	"image/gif":  true,
	"image/heic": true,
	"image/heif": true,
}

// prepareDocument normalizes the MIME type and converts the upload into either
// text pages or PNG pages
func prepareDocument(data []byte, contentType string) (*document, error) {
	mimeType := normalizeMimeType(contentType)

	switch {
	case mimeType == "application/pdf":
		return preparePDF(data)
	case imageMimeTypes[mimeType] || isHEICFormat(data):
		page, err := convertToPNG(data, mimeType)
		if err != nil {
			return nil, fmt.Errorf("converting image to PNG: %w", err)
		}
		return &document{pages: [][]byte{page}}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, mimeType)
	}
}

// normalizeMimeType lowercases the type and drops parameters. An empty type is
// treated as JPEG, the most common camera upload.
func normalizeMimeType(contentType string) string {
	mimeType, _, _ := strings.Cut(contentType, ";")
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	return mimeType
}

// preparePDF uses the embedded text layer when every page has one and renders
// all pages otherwise
func preparePDF(pdfData []byte) (*document, error) {
	doc, err := fitz.NewFromMemory(pdfData)
	if err != nil {
		return nil, fmt.Errorf("opening PDF: %w", err)
	}
	defer doc.Close()

	n := doc.NumPage()
	if n == 0 {
		return nil, fmt.Errorf("PDF has no pages")
	}

	if text, ok := pdfText(doc, n); ok {
		return &document{text: text}, nil
	}

	pages := make([][]byte, 0, n)
	for i := 0; i < n; i++ {
		img, err := doc.Image(i)
		if err != nil {
			return nil, fmt.Errorf("rendering PDF page %d: %w", i+1, err)
		}
		page, err := encodePNG(img)
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}
	return &document{pages: pages}, nil
}

// pdfText returns the text layer of every page, or false when any page has none
func pdfText(doc *fitz.Document, n int) ([]string, bool) {
	text := make([]string, 0, n)
	for i := 0; i < n; i++ {
		t, err := doc.Text(i)
		if err != nil {
			return nil, false
		}
		t = strings.TrimSpace(t)
		if t == "" {
			return nil, false
		}
		text = append(text, t)
	}
	return text, true
}

// convertToPNG converts non-PNG images (including HEIC) to PNG. PNG data is
// returned unchanged.
func convertToPNG(imageData []byte, mimeType string) ([]byte, error) {
	if mimeType == "image/png" && !isHEICFormat(imageData) {
		return imageData, nil
	}
	return imageToPNG(imageData, mimeType)
}

// imageToPNG converts any image format to PNG
func imageToPNG(imageData []byte, mimeType string) ([]byte, error) {
	var img image.Image
	var err error

	// Go's standard image package doesn't support HEIC
	if isHEICFormat(imageData) || isHEICMimeType(mimeType) {
		img, err = heic.Decode(bytes.NewReader(imageData))
		if err != nil {
			return nil, fmt.Errorf("decoding HEIC/HEIF image: %w", err)
		}
	} else {
		img, _, err = image.Decode(bytes.NewReader(imageData))
		if err != nil {
			return nil, fmt.Errorf("decoding image: %w", err)
		}
	}

	return encodePNG(img)
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// isHEICFormat checks for an ftyp box with a HEIC-related brand at offset 4
func isHEICFormat(data []byte) bool {
	if len(data) < 12 || string(data[4:8]) != "ftyp" {
		return false
	}
	switch string(data[8:12]) {
	case "heic", "heix", "heif", "mif1", "msf1":
		return true
	}
	return false
}

// isHEICMimeType checks if the MIME type indicates HEIC/HEIF format
func isHEICMimeType(mimeType string) bool {
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	return strings.Contains(mimeType, "heic") || strings.Contains(mimeType, "heif")
}
