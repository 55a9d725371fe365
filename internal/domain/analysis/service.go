package analysis

import (
	"context"
	"sync"

	"github.com/quickmed/quickmed/internal/platform/report"
)

// CompletionClient is the slice of the genai client this service needs.
type CompletionClient interface {
	Complete(ctx context.Context, prompt, contextText string) (string, error)
}

type Service struct {
	client CompletionClient
}

func NewService(client CompletionClient) *Service {
	return &Service{client: client}
}

// AnalyzeSection runs a single section completion.
func (s *Service) AnalyzeSection(ctx context.Context, section Section, symptoms []string, demo *Demographics) (string, error) {
	prompt, err := BuildPrompt(section, symptoms)
	if err != nil {
		return "", err
	}
	contextText, err := BuildContext(symptoms, demo)
	if err != nil {
		return "", err
	}
	return s.client.Complete(ctx, prompt, contextText)
}

// SectionResult is one section's outcome in an aggregate analysis. Exactly
// one of ResponseText or Error is set.
type SectionResult struct {
	ResponseText string `json:"responseText,omitempty"`
	Error        string `json:"error,omitempty"`
}

// Analyze runs all four section completions concurrently. A failed section
// carries an error marker while the others keep their results; input
// validation failures still fail the whole call before any dispatch.
func (s *Service) Analyze(ctx context.Context, symptoms []string, demo *Demographics) (map[string]SectionResult, error) {
	if _, err := BuildContext(symptoms, demo); err != nil {
		return nil, err
	}

	results := make([]SectionResult, len(Sections))
	var wg sync.WaitGroup
	for i, section := range Sections {
		wg.Add(1)
		go func(i int, section Section) {
			defer wg.Done()
			text, err := s.AnalyzeSection(ctx, section, symptoms, demo)
			if err != nil {
				results[i] = SectionResult{Error: "analysis failed for this section"}
				return
			}
			results[i] = SectionResult{ResponseText: text}
		}(i, section)
	}
	wg.Wait()

	out := make(map[string]SectionResult, len(Sections))
	for i, section := range Sections {
		out[section.String()] = results[i]
	}
	return out, nil
}

// AnalyzeReport validates an uploaded file, derives its text representation
// and runs the diagnostic completion. The completion client is never invoked
// for a rejected file.
func (s *Service) AnalyzeReport(ctx context.Context, f report.File) (string, error) {
	if err := report.Validate(f); err != nil {
		return "", err
	}
	return s.client.Complete(ctx, diagnosticPrompt, report.Process(f))
}
