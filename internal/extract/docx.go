package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"strings"

	"github.com/Ejeanjules/capstone-project/pkg/logx"
)

// docxText reads word/document.xml out of the DOCX zip container, collecting
// text runs and joining paragraphs with newlines. Any failure falls back to
// the raw heuristic decoder.
func (e *Extractor) docxText(data []byte) string {
	text, err := docxDocumentText(data)
	if err != nil {
		logx.Debugf("docx decode failed: %v", err)
		return decodeRaw(data)
	}
	return text
}

func docxDocumentText(data []byte) (string, error) {
	archive, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	for _, file := range archive.File {
		if file.Name != "word/document.xml" {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return "", err
		}
		defer rc.Close()
		return wordXMLText(rc)
	}
	return "", io.ErrUnexpectedEOF
}

// wordXMLText pulls the character data of <w:t> runs, breaking paragraphs at
// </w:p> and explicit <w:br/> elements.
func wordXMLText(r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)
	var (
		paragraphs []string
		current    strings.Builder
		inRun      bool
	)

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inRun = true
			case "br", "tab":
				current.WriteByte(' ')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inRun = false
			case "p":
				if s := strings.TrimSpace(current.String()); s != "" {
					paragraphs = append(paragraphs, s)
				}
				current.Reset()
			}
		case xml.CharData:
			if inRun {
				current.Write(t)
			}
		}
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		paragraphs = append(paragraphs, s)
	}
	return strings.Join(paragraphs, "\n"), nil
}
