package resume

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"strings"

	"next-hire/internal/pkg/apperror"
	"next-hire/internal/pkg/logger"

	"go.uber.org/zap"
)

const MaxFileSize = 10 * 1024 * 1024

const (
	MIMEPDF  = "application/pdf"
	MIMEDOC  = "application/msword"
	MIMEDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MIMETXT  = "text/plain"
)

var allowedMIMETypes = map[string]bool{
	MIMEPDF:  true,
	MIMEDOC:  true,
	MIMEDOCX: true,
	MIMETXT:  true,
}

var ErrMalformedResponse = errors.New("malformed llm response")

type Document struct {
	Filename string
	MIMEType string
	Size     int64
	Data     []byte
}

type TextExtractor interface {
	ExtractText(ctx context.Context, doc Document) (string, error)
}

type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type Suggestion struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Impact      string `json:"impact,omitempty"`
	Category    string `json:"category"`
	Icon        string `json:"icon"`
}

type Analyzer struct {
	extractor TextExtractor
	llm       Completer
	logger    *zap.Logger
}

func NewAnalyzer(extractor TextExtractor, llm Completer, l *zap.Logger) *Analyzer {
	return &Analyzer{extractor: extractor, llm: llm, logger: logger.OrNop(l)}
}

func (a *Analyzer) Analyze(ctx context.Context, doc Document) ([]Suggestion, error) {
	mt, err := NormalizeMIMEType(doc.MIMEType)
	if err != nil || !allowedMIMETypes[mt] {
		return nil, apperror.BadRequest("invalid file type", map[string]string{
			"resume": "file type must be PDF, DOC, DOCX, or TXT",
		})
	}
	doc.MIMEType = mt

	size := doc.Size
	if size <= 0 {
		size = int64(len(doc.Data))
	}
	if size > MaxFileSize || int64(len(doc.Data)) > MaxFileSize {
		return nil, apperror.BadRequest("file too large", map[string]string{
			"resume": "file size must be less than 10MB",
		})
	}
	if len(doc.Data) == 0 {
		return nil, apperror.BadRequest("empty file", map[string]string{"resume": "file is empty"})
	}

	raw, err := a.extractor.ExtractText(ctx, doc)
	if err != nil {
		a.logger.Warn("resume text extraction failed", zap.String("mime", mt), zap.Error(err))
		return nil, apperror.BadRequest("could not read file", map[string]string{"resume": "file could not be read"})
	}
	text := FormatText(raw)
	if text == "" {
		return nil, apperror.BadRequest("no text found", map[string]string{"resume": "file contains no readable text"})
	}

	out, err := a.llm.Complete(ctx, BuildPrompt(text))
	if err != nil {
		return nil, apperror.Internalf(err, "resume analysis")
	}

	suggestions, err := ParseSuggestions(out)
	if err != nil {
		a.logger.Warn("unparseable llm response", zap.Int("length", len(out)), zap.Error(err))
		return nil, apperror.Internalf(err, "resume analysis")
	}
	return suggestions, nil
}

func NormalizeMIMEType(raw string) (string, error) {
	mt, _, err := mime.ParseMediaType(strings.TrimSpace(raw))
	if err != nil {
		return "", err
	}
	return strings.ToLower(mt), nil
}

// ParseSuggestions accepts a bare JSON array, optionally wrapped in a
// markdown code fence or surrounded by prose.
func ParseSuggestions(out string) ([]Suggestion, error) {
	s := strings.TrimSpace(out)
	start := strings.IndexByte(s, '[')
	end := strings.LastIndexByte(s, ']')
	if start < 0 || end < start {
		return nil, ErrMalformedResponse
	}

	var suggestions []Suggestion
	if err := json.Unmarshal([]byte(s[start:end+1]), &suggestions); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	for i := range suggestions {
		if suggestions[i].ID == "" {
			suggestions[i].ID = fmt.Sprint(i + 1)
		}
	}
	return suggestions, nil
}
