package resume

import (
	"context"
	"errors"
	"strings"
	"testing"

	"next-hire/internal/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubExtractor struct {
	text string
	err  error
	got  Document
}

func (s *stubExtractor) ExtractText(_ context.Context, d Document) (string, error) {
	s.got = d
	return s.text, s.err
}

type stubLLM struct {
	out    string
	err    error
	prompt string
}

func (s *stubLLM) Complete(_ context.Context, prompt string) (string, error) {
	s.prompt = prompt
	return s.out, s.err
}

const twoSuggestions = `[
 {"id":"1","type":"critical","title":"Add email","description":"No contact email.","priority":"high","category":"Contact","icon":"Mail"},
 {"id":"2","type":"improvement","title":"Quantify","description":"Add numbers.","priority":"medium","impact":"Stronger bullets","category":"Content","icon":"BarChart"}
]`

func pdfDoc() Document {
	return Document{Filename: "cv.pdf", MIMEType: "application/pdf", Size: 3, Data: []byte("pdf")}
}

func TestAnalyze_HappyPath(t *testing.T) {
	ex := &stubExtractor{text: "Jane Doe\nSkills:Go,SQL\n\n\n\nGauhatiUniversityJULY 2020"}
	llm := &stubLLM{out: twoSuggestions}
	a := NewAnalyzer(ex, llm, nil)

	got, err := a.Analyze(context.Background(), pdfDoc())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "critical", got[0].Type)
	assert.Equal(t, "Stronger bullets", got[1].Impact)

	assert.True(t, strings.HasSuffix(llm.prompt, "Jane Doe\nSkills: Go,SQL\nGauhati University JULY 2020"))
}

func TestAnalyze_RejectsMIMEType(t *testing.T) {
	a := NewAnalyzer(&stubExtractor{}, &stubLLM{}, nil)
	doc := pdfDoc()
	doc.MIMEType = "image/png"

	_, err := a.Analyze(context.Background(), doc)
	require.Equal(t, apperror.KindBadRequest, apperror.KindOf(err))
}

func TestAnalyze_AcceptsMIMEParams(t *testing.T) {
	a := NewAnalyzer(&stubExtractor{text: "resume"}, &stubLLM{out: twoSuggestions}, nil)
	doc := Document{MIMEType: "text/plain; charset=utf-8", Data: []byte("resume")}

	_, err := a.Analyze(context.Background(), doc)
	require.NoError(t, err)
}

func TestAnalyze_RejectsOversize(t *testing.T) {
	a := NewAnalyzer(&stubExtractor{}, &stubLLM{}, nil)
	doc := pdfDoc()
	doc.Size = MaxFileSize + 1

	_, err := a.Analyze(context.Background(), doc)
	e, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.KindBadRequest, e.Kind)
	assert.Contains(t, e.Fields["resume"], "10MB")
}

func TestAnalyze_EmptyText(t *testing.T) {
	a := NewAnalyzer(&stubExtractor{text: " \n\x00\n "}, &stubLLM{}, nil)
	_, err := a.Analyze(context.Background(), pdfDoc())
	assert.Equal(t, apperror.KindBadRequest, apperror.KindOf(err))
}

func TestAnalyze_ExtractionFailure(t *testing.T) {
	a := NewAnalyzer(&stubExtractor{err: errors.New("corrupt xref")}, &stubLLM{}, nil)
	_, err := a.Analyze(context.Background(), pdfDoc())
	assert.Equal(t, apperror.KindBadRequest, apperror.KindOf(err))
}

func TestAnalyze_LLMFailureIsInternal(t *testing.T) {
	a := NewAnalyzer(&stubExtractor{text: "resume"}, &stubLLM{err: errors.New("quota")}, nil)
	_, err := a.Analyze(context.Background(), pdfDoc())
	assert.Equal(t, apperror.KindInternal, apperror.KindOf(err))
}

func TestParseSuggestions(t *testing.T) {
	fenced := "```json\n" + twoSuggestions + "\n```"
	got, err := ParseSuggestions(fenced)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = ParseSuggestions(`[{"type":"success","title":"Excellent Resume"}]`)
	require.NoError(t, err)
	assert.Equal(t, "1", got[0].ID)

	_, err = ParseSuggestions("I cannot help with that.")
	assert.ErrorIs(t, err, ErrMalformedResponse)

	_, err = ParseSuggestions(`[{"id": }]`)
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestFormatText(t *testing.T) {
	cases := map[string]string{
		"Languages:HTML":              "Languages: HTML",
		"Languages:   HTML":           "Languages: HTML",
		"GauhatiUniversityJULY":       "Gauhati University JULY",
		"a\n\n\n\nb":                  "a\nb",
		"  lots   of \tspace  ":       "lots of space",
		"café résumé":                 "caf rsum",
		"line one\n   \n\tline two  ": "line one\nline two",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatText(in), in)
	}
}
