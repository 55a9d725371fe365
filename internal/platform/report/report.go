// Package report turns an uploaded medical report (image or PDF) into a
// transportable text representation for the completion service.
package report

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/quickmed/quickmed/internal/platform/apperr"
)

// MaxFileSize is the declared-size ceiling for uploaded reports.
const MaxFileSize = 5 << 20 // 5 MB

// Sentinel rejections so transport code can pick distinct status codes.
var (
	ErrUnsupportedType = apperr.New(apperr.KindValidation,
		"invalid file type; only JPEG, PNG and PDF files are allowed")
	ErrTooLarge = apperr.Newf(apperr.KindValidation,
		"file exceeds the maximum size of %d bytes", MaxFileSize)
)

var allowedMediaTypes = map[string]bool{
	"image/jpeg":      true,
	"image/jpg":       true,
	"image/png":       true,
	"application/pdf": true,
}

// File is one uploaded report file held in memory.
type File struct {
	Name      string
	MediaType string
	Size      int64
	Data      []byte
}

// Validate rejects files that must not reach processing: wrong media type or
// over the size ceiling. Returns a classified validation error.
func Validate(f File) error {
	if !allowedMediaTypes[strings.ToLower(f.MediaType)] {
		return ErrUnsupportedType
	}
	if f.Size > MaxFileSize || int64(len(f.Data)) > MaxFileSize {
		return ErrTooLarge
	}
	return nil
}

// Process converts a validated file into the context string for analysis.
// PDFs yield their concatenated page text; if extraction fails or yields
// nothing, the raw bytes are re-encoded as a base64 data URI so analysis can
// still proceed with degraded quality. Images are always data URIs.
func Process(f File) string {
	if strings.EqualFold(f.MediaType, "application/pdf") {
		if text, err := extractPDFText(f.Data); err == nil && strings.TrimSpace(text) != "" {
			return text
		}
		return dataURI(f)
	}
	return dataURI(f)
}

func dataURI(f File) string {
	return fmt.Sprintf("data:%s;base64,%s", f.MediaType, base64.StdEncoding.EncodeToString(f.Data))
}

// extractPDFText concatenates the plain text of every page.
func extractPDFText(data []byte) (text string, err error) {
	// The parser panics on some malformed files; a panic must resolve to the
	// base64 fallback, not a crashed request.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf parse panic: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}

	var sb strings.Builder
	if _, err := io.Copy(&sb, plain); err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}

	return sb.String(), nil
}
