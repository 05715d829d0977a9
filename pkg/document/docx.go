// Package document extracts title and body text from uploaded Word
// documents. A .docx file is a zip archive; the text lives in
// word/document.xml as w:p paragraph elements containing w:t runs.
package document

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"strings"

	apperrors "github.com/shirleylv/article-seo-tool/pkg/errors"
)

const (
	// DefaultTitle is used when a document has no extractable paragraphs.
	DefaultTitle = "未命名文档"
	// DefaultContent is used when a document has a title but no body.
	DefaultContent = "文档内容为空"
)

// Doc holds the extracted article text. The first non-empty paragraph is
// treated as the title; the rest become the content.
type Doc struct {
	Title   string
	Content string
}

// Extract parses .docx bytes into title and content.
func Extract(data []byte) (Doc, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Doc{}, apperrors.Wrap(err, apperrors.ErrCodeInvalidInput, "file is not a valid .docx archive")
	}

	var docXML []byte
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			rc, err := f.Open()
			if err != nil {
				return Doc{}, apperrors.Wrap(err, apperrors.ErrCodeInvalidInput, "opening word/document.xml")
			}
			docXML, err = io.ReadAll(rc)
			rc.Close()
			if err != nil {
				return Doc{}, apperrors.Wrap(err, apperrors.ErrCodeInvalidInput, "reading word/document.xml")
			}
			break
		}
	}
	if docXML == nil {
		return Doc{}, apperrors.New(apperrors.ErrCodeInvalidInput, "archive does not contain word/document.xml")
	}

	paragraphs, err := extractParagraphs(docXML)
	if err != nil {
		return Doc{}, err
	}

	doc := Doc{Title: DefaultTitle, Content: DefaultContent}
	if len(paragraphs) > 0 {
		doc.Title = paragraphs[0]
	}
	if len(paragraphs) > 1 {
		doc.Content = strings.Join(paragraphs[1:], "\n")
	}
	return doc, nil
}

// extractParagraphs walks the XML token stream collecting the text of each
// w:p element. Empty paragraphs are dropped. Element names are matched by
// local name so namespace prefixes do not matter.
func extractParagraphs(docXML []byte) ([]string, error) {
	decoder := xml.NewDecoder(bytes.NewReader(docXML))

	var paragraphs []string
	var current strings.Builder
	inParagraph := false
	inText := false

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeInvalidInput, "parsing word/document.xml")
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				inParagraph = true
				current.Reset()
			case "t":
				inText = inParagraph
			case "tab":
				if inParagraph {
					current.WriteByte(' ')
				}
			case "br":
				if inParagraph {
					current.WriteByte('\n')
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "p":
				if text := strings.TrimSpace(current.String()); text != "" {
					paragraphs = append(paragraphs, text)
				}
				inParagraph = false
			case "t":
				inText = false
			}
		case xml.CharData:
			if inText {
				current.Write(t)
			}
		}
	}
	return paragraphs, nil
}
