package intelligence

// Impact and direction vocabulary shared by model output and the
// deterministic fallback.
const (
	ImpactHigh   = "high"
	ImpactMedium = "medium"
	ImpactLow    = "low"

	DirectionFor     = "push_for"
	DirectionAgainst = "push_against"
)

// Explanation is a narrative account of a plan run grounded in its trace.
type Explanation struct {
	SummaryShort    string              `json:"summary_short"`
	SummaryDetailed string              `json:"summary_detailed"`
	Factors         []ExplanationFactor `json:"factors"`
	Suggestions     []string            `json:"suggestions,omitempty"`
	// Confidence is 1 for deterministic explanations.
	Confidence float64 `json:"confidence"`
}

// ExplanationFactor is one cited reason. EvidenceRefKey must be a key of
// RunTrace.TraceKeys.
type ExplanationFactor struct {
	Name           string `json:"name"`
	Impact         string `json:"impact"`
	Direction      string `json:"direction"`
	EvidenceRefKey string `json:"evidence_ref_key"`
	Summary        string `json:"summary"`
}

type adviceResponse struct {
	Suggestions []string `json:"suggestions"`
}
