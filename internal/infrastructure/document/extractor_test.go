package document

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"

	"next-hire/internal/usecase/resume"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildDOCX(t *testing.T, body string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` + body + `</w:body></w:document>`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestExtract_DOCX(t *testing.T) {
	data := buildDOCX(t,
		`<w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>`+
			`<w:p><w:r><w:t xml:space="preserve">Skills: </w:t></w:r><w:r><w:t>Go</w:t></w:r></w:p>`)

	text, err := NewExtractor().ExtractText(context.Background(), resume.Document{MIMEType: resume.MIMEDOCX, Data: data})
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nSkills: Go\n", text)
}

func TestExtract_DOCXMissingBody(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	_, err := zw.Create("other.xml")
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, err = NewExtractor().ExtractText(context.Background(), resume.Document{MIMEType: resume.MIMEDOCX, Data: buf.Bytes()})
	assert.Error(t, err)
}

func TestExtract_TXT(t *testing.T) {
	text, err := NewExtractor().ExtractText(context.Background(), resume.Document{MIMEType: resume.MIMETXT, Data: []byte("hello\xffworld")})
	require.NoError(t, err)
	assert.Equal(t, "helloworld", text)
}

func TestExtract_DOC(t *testing.T) {
	data := append([]byte{0xD0, 0xCF, 0x11, 0xE0, 0x00}, []byte("Experienced engineer\x00\x01ab\x02Go and SQL")...)
	text, err := NewExtractor().ExtractText(context.Background(), resume.Document{MIMEType: resume.MIMEDOC, Data: data})
	require.NoError(t, err)
	assert.Equal(t, "Experienced engineer\nGo and SQL\n", text)
}

func TestExtract_PDFGarbage(t *testing.T) {
	_, err := NewExtractor().ExtractText(context.Background(), resume.Document{MIMEType: resume.MIMEPDF, Data: []byte("not a pdf")})
	assert.Error(t, err)
}

func TestExtract_Unsupported(t *testing.T) {
	_, err := NewExtractor().ExtractText(context.Background(), resume.Document{MIMEType: "image/png"})
	assert.ErrorIs(t, err, ErrUnsupportedType)
}
