package intelligence

import (
	"context"
	"encoding/json"

	"github.com/alexanderramin/studyplanner/internal/llm"
)

// RunExplainer produces faithful narrative explanations of plan runs.
// Model failures never surface as errors: every method falls back to the
// deterministic rendering of the trace.
type RunExplainer interface {
	ExplainRun(ctx context.Context, trace RunTrace) (*Explanation, error)
	SuggestFixes(ctx context.Context, trace RunTrace) ([]string, error)
}

type runExplainer struct {
	client llm.Client
}

// NewRunExplainer returns a RunExplainer. A nil client always uses the
// deterministic fallback.
func NewRunExplainer(client llm.Client) RunExplainer {
	return &runExplainer{client: client}
}

func (s *runExplainer) ExplainRun(ctx context.Context, trace RunTrace) (*Explanation, error) {
	if s.client == nil {
		return DeterministicExplainRun(trace), nil
	}
	traceJSON, err := json.MarshalIndent(trace, "", "  ")
	if err != nil {
		return DeterministicExplainRun(trace), nil
	}

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskExplain,
		SystemPrompt: explainRunSystemPrompt,
		UserPrompt:   "Here is the plan run trace:\n\n" + string(traceJSON),
		JSON:         true,
	})
	if err != nil {
		return DeterministicExplainRun(trace), nil
	}

	explanation, err := llm.ExtractJSON[Explanation](resp.Text, requireSummary)
	if err != nil {
		return DeterministicExplainRun(trace), nil
	}
	if err := ValidateEvidenceBindings(explanation.Factors, trace.TraceKeys()); err != nil {
		return DeterministicExplainRun(trace), nil
	}

	if len(explanation.Suggestions) == 0 && len(trace.Errors()) > 0 {
		explanation.Suggestions, _ = s.SuggestFixes(ctx, trace)
	}
	return &explanation, nil
}

func (s *runExplainer) SuggestFixes(ctx context.Context, trace RunTrace) ([]string, error) {
	if len(trace.Errors()) == 0 {
		return nil, nil
	}
	if s.client == nil {
		return DeterministicSuggestions(trace), nil
	}
	traceJSON, err := json.Marshal(trace)
	if err != nil {
		return DeterministicSuggestions(trace), nil
	}

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskAdvise,
		SystemPrompt: adviseSystemPrompt,
		UserPrompt:   string(traceJSON),
		JSON:         true,
	})
	if err != nil {
		return DeterministicSuggestions(trace), nil
	}
	advice, err := llm.ExtractJSON[adviceResponse](resp.Text, nil)
	if err != nil || len(advice.Suggestions) == 0 {
		return DeterministicSuggestions(trace), nil
	}
	if len(advice.Suggestions) > 5 {
		advice.Suggestions = advice.Suggestions[:5]
	}
	return advice.Suggestions, nil
}
