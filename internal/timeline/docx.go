// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package timeline

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// docxDocumentPath is the OOXML part holding the document body.
const docxDocumentPath = "word/document.xml"

// DocxParagraphs extracts the plain-text paragraphs of a .docx file in
// document order. A .docx is a zip archive; the text lives in w:t runs
// inside w:p paragraph elements of word/document.xml. Empty paragraphs
// are dropped.
func DocxParagraphs(path string) ([]string, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("opening docx %s: %w", path, err)
	}
	defer r.Close()

	var doc *zip.File
	for _, f := range r.File {
		if f.Name == docxDocumentPath {
			doc = f
			break
		}
	}
	if doc == nil {
		return nil, fmt.Errorf("docx %s: missing %s", path, docxDocumentPath)
	}

	rc, err := doc.Open()
	if err != nil {
		return nil, fmt.Errorf("opening %s in %s: %w", docxDocumentPath, path, err)
	}
	defer rc.Close()

	return parseDocumentXML(rc)
}

func parseDocumentXML(r io.Reader) ([]string, error) {
	decoder := xml.NewDecoder(r)

	var (
		paragraphs []string
		current    strings.Builder
		inPara     bool
		inText     bool
	)

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing document XML: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				inPara = true
				current.Reset()
			case "t":
				inText = inPara
			case "tab":
				if inPara {
					current.WriteByte(' ')
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "p":
				if text := strings.TrimSpace(current.String()); text != "" {
					paragraphs = append(paragraphs, text)
				}
				inPara = false
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
