package extract

import (
	"bytes"
	"strings"

	"github.com/dslipak/pdf"
	"github.com/gen2brain/go-fitz"

	"github.com/Ejeanjules/capstone-project/pkg/logx"
)

// pdfText walks the PDF decoder chain: fitz first, the pure-Go reader second,
// the raw heuristic last. Pages that fail to decode are skipped.
func (e *Extractor) pdfText(data []byte) string {
	if text := pdfTextFitz(data); strings.TrimSpace(text) != "" {
		return text
	}
	if text := pdfTextNative(data); strings.TrimSpace(text) != "" {
		return text
	}
	logx.Debugf("pdf decoders produced no text, falling back to raw decode")
	return decodeRaw(data)
}

func pdfTextFitz(data []byte) string {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		logx.Debugf("fitz failed to open pdf: %v", err)
		return ""
	}
	defer doc.Close()

	var pages []string
	for i := 0; i < doc.NumPage(); i++ {
		text, err := doc.Text(i)
		if err != nil {
			logx.Debugf("fitz failed on page %d: %v", i, err)
			continue
		}
		pages = append(pages, text)
	}
	return strings.Join(pages, "\n")
}

// pdfTextNative uses the pure-Go reader. It panics on some malformed files,
// so every page is decoded behind a recover.
func pdfTextNative(data []byte) (text string) {
	defer func() {
		if r := recover(); r != nil {
			logx.Debugf("pdf reader panicked: %v", r)
			text = ""
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		logx.Debugf("pdf reader failed to open: %v", err)
		return ""
	}

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		if pageText := nativePageText(reader, i); pageText != "" {
			pages = append(pages, pageText)
		}
	}
	return strings.Join(pages, "\n")
}

func nativePageText(reader *pdf.Reader, num int) (text string) {
	defer func() {
		if r := recover(); r != nil {
			logx.Debugf("pdf reader panicked on page %d: %v", num, r)
			text = ""
		}
	}()

	page := reader.Page(num)
	if page.V.IsNull() {
		return ""
	}
	pageText, err := page.GetPlainText(nil)
	if err != nil {
		logx.Debugf("pdf reader failed on page %d: %v", num, err)
		return ""
	}
	return pageText
}
