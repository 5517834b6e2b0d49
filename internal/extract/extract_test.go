package extract

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		filename string
		want     Format
	}{
		{"resume.pdf", FormatPDF},
		{"Resume.PDF", FormatPDF},
		{"cv.docx", FormatDocx},
		{"old.doc", FormatDoc},
		{"notes.txt", FormatTxt},
		{"malware.exe", FormatUnknown},
		{"noextension", FormatUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DetectFormat(tt.filename), tt.filename)
	}
}

func TestTextUnsupportedFormat(t *testing.T) {
	e := NewExtractor()
	_, err := e.Text([]byte("whatever"), FormatUnknown)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = e.TextFromFilename([]byte("whatever"), "payload.exe")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestPlainTextUTF8(t *testing.T) {
	e := NewExtractor()
	text, err := e.Text([]byte("5 years of experience with Python"), FormatTxt)
	require.NoError(t, err)
	assert.Equal(t, "5 years of experience with Python", text)
}

func TestPlainTextInvalidUTF8FallsBackToLatin1(t *testing.T) {
	e := NewExtractor()
	// 0xE9 is 'é' in Latin-1 but invalid as a standalone UTF-8 byte.
	text, err := e.Text([]byte{'r', 0xE9, 's', 'u', 'm', 0xE9}, FormatTxt)
	require.NoError(t, err)
	assert.Equal(t, "résumé", text)
}

func TestDecodePrintableASCII(t *testing.T) {
	got := decodePrintableASCII([]byte{0x00, 'a', 0x01, 'b', '\n', 0xFF, 'c'})
	assert.Equal(t, "ab\nc", got)
}

func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	f, err := w.Create("word/document.xml")
	require.NoError(t, err)
	_, err = f.Write([]byte(documentXML))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestDocxText(t *testing.T) {
	doc := buildDocx(t, `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Senior Python Developer</w:t></w:r></w:p>
    <w:p><w:r><w:t>5 years of </w:t></w:r><w:r><w:t>experience</w:t></w:r></w:p>
  </w:body>
</w:document>`)

	e := NewExtractor()
	text, err := e.Text(doc, FormatDocx)
	require.NoError(t, err)
	assert.Equal(t, "Senior Python Developer\n5 years of experience", text)
}

func TestDocxCorruptFallsBackToRawDecode(t *testing.T) {
	e := NewExtractor()
	text, err := e.Text([]byte("not a zip archive at all"), FormatDocx)
	require.NoError(t, err)
	assert.Equal(t, "not a zip archive at all", text)
}

func TestDocFormatUsesHeuristicDecoder(t *testing.T) {
	e := NewExtractor()
	text, err := e.Text([]byte("legacy word body"), FormatDoc)
	require.NoError(t, err)
	assert.Contains(t, text, "legacy word body")
}

func TestPDFGarbageDegradesToRawDecode(t *testing.T) {
	e := NewExtractor()
	text, err := e.Text([]byte("plain bytes, no pdf header"), FormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "plain bytes, no pdf header", text)
}
