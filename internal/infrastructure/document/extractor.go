package document

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"next-hire/internal/usecase/resume"

	"github.com/ledongthuc/pdf"
)

var ErrUnsupportedType = errors.New("unsupported document type")

// Extractor pulls plain text out of the resume formats accepted for upload.
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

func (e *Extractor) ExtractText(ctx context.Context, doc resume.Document) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	switch doc.MIMEType {
	case resume.MIMEPDF:
		return extractPDF(doc.Data)
	case resume.MIMEDOCX:
		return extractDOCX(doc.Data)
	case resume.MIMEDOC:
		return extractDOC(doc.Data), nil
	case resume.MIMETXT:
		if !utf8.Valid(doc.Data) {
			return strings.ToValidUTF8(string(doc.Data), ""), nil
		}
		return string(doc.Data), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, doc.MIMEType)
	}
}

func extractPDF(data []byte) (text string, err error) {
	// the pdf reader panics on some malformed inputs
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("pdf: %w", err)
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("pdf: %w", err)
	}
	b, err := io.ReadAll(plain)
	if err != nil {
		return "", fmt.Errorf("pdf: %w", err)
	}
	return string(b), nil
}

// extractDOCX reads word/document.xml and emits one line per paragraph.
func extractDOCX(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("docx: %w", err)
	}

	var body *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			body = f
			break
		}
	}
	if body == nil {
		return "", errors.New("docx: missing word/document.xml")
	}

	rc, err := body.Open()
	if err != nil {
		return "", fmt.Errorf("docx: %w", err)
	}
	defer rc.Close()

	var (
		out    strings.Builder
		dec    = xml.NewDecoder(io.LimitReader(rc, resume.MaxFileSize*4))
		inText bool
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("docx: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				out.WriteByte('\t')
			case "br", "cr":
				out.WriteByte('\n')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				out.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				out.Write(t)
			}
		}
	}
	return out.String(), nil
}

// extractDOC recovers printable ASCII runs from a legacy binary .doc file.
// Formatting is lost but the body text survives.
func extractDOC(data []byte) string {
	const minRun = 4
	var (
		out strings.Builder
		run []byte
	)
	flush := func() {
		if len(run) >= minRun {
			out.Write(run)
			out.WriteByte('\n')
		}
		run = run[:0]
	}
	for _, b := range data {
		if (b >= 0x20 && b <= 0x7E) || b == '\t' {
			run = append(run, b)
			continue
		}
		if b == '\r' || b == '\n' {
			flush()
			continue
		}
		flush()
	}
	flush()
	return out.String()
}
