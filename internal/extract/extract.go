// Package extract turns uploaded resume files into plain text. Extraction is
// best-effort: each format walks a chain of decoders and degrades to an empty
// string rather than failing, so a corrupt file never aborts an analysis. The
// only hard error is an unsupported file format.
package extract

import (
	"errors"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// ErrUnsupportedFormat is returned for file types no decoder handles.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Format identifies a resume file type by extension.
type Format string

const (
	FormatPDF     Format = "pdf"
	FormatDoc     Format = "doc"
	FormatDocx    Format = "docx"
	FormatTxt     Format = "txt"
	FormatUnknown Format = "unknown"
)

// DetectFormat maps a filename to a Format, case-insensitively.
func DetectFormat(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return FormatPDF
	case ".doc":
		return FormatDoc
	case ".docx":
		return FormatDocx
	case ".txt":
		return FormatTxt
	default:
		return FormatUnknown
	}
}

// SupportedExtensions lists the accepted resume file extensions.
func SupportedExtensions() []string {
	return []string{".pdf", ".doc", ".docx", ".txt"}
}

// Extractor converts resume file bytes to text.
type Extractor struct{}

func NewExtractor() *Extractor { return &Extractor{} }

// Text extracts plain text from file data. Decoder failures inside a supported
// format degrade to weaker decoders and ultimately to ""; only an unknown
// format returns an error.
func (e *Extractor) Text(data []byte, format Format) (string, error) {
	switch format {
	case FormatPDF:
		return e.pdfText(data), nil
	case FormatDocx:
		return e.docxText(data), nil
	case FormatDoc:
		// Legacy binary Word files have no maintained Go reader; the heuristic
		// decoder recovers the readable runs.
		return decodeRaw(data), nil
	case FormatTxt:
		return e.plainText(data), nil
	default:
		return "", ErrUnsupportedFormat
	}
}

// TextFromFilename is Text with format detection from the filename.
func (e *Extractor) TextFromFilename(data []byte, filename string) (string, error) {
	return e.Text(data, DetectFormat(filename))
}

func (e *Extractor) plainText(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	return decodeRaw(data)
}

// decodeRaw is the last-resort decoder: UTF-8 when valid, then Latin-1, then a
// printable-ASCII filter.
func decodeRaw(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	if utf8.Valid(data) {
		return string(data)
	}
	if s, ok := decodeLatin1(data); ok {
		return s
	}
	return decodePrintableASCII(data)
}

func decodeLatin1(data []byte) (string, bool) {
	runes := make([]rune, len(data))
	for i, b := range data {
		runes[i] = rune(b)
	}
	return string(runes), true
}

func decodePrintableASCII(data []byte) string {
	var b strings.Builder
	b.Grow(len(data))
	for _, c := range data {
		if (c >= 32 && c <= 126) || c == '\n' || c == '\r' || c == '\t' {
			b.WriteByte(c)
		}
	}
	return b.String()
}
