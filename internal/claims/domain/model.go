package domain

// Outcome is the terminal classification of a claim.
type Outcome string

const (
	OutcomeApproved Outcome = "approved"
	OutcomeRejected Outcome = "rejected"
)

// ParsedQuery holds the structured fields of a raw claim query
type ParsedQuery struct {
	Age            int    `json:"age"`
	Gender         string `json:"gender"`
	Procedure      string `json:"procedure"`
	Location       string `json:"location"`
	PolicyDuration string `json:"policy_duration"`
}

// RetrievalResult is one answer obtained from the policy documents.
// Confidence is a lexical heuristic in [0,1], not a calibrated probability.
type RetrievalResult struct {
	Answer     string  `json:"answer"`
	Confidence float64 `json:"confidence"`
}

// Decision is the outcome of evaluating a single query
type Decision struct {
	Outcome       Outcome
	Amount        string
	Justification []string
}

// Response is the transport shape of a Decision.
type Response struct {
	Decision      Outcome  `json:"Decision"`
	Amount        string   `json:"Amount"`
	Justification []string `json:"Justification"`
}

// FormatResponse maps a decision to its transport record.
func FormatResponse(d Decision) Response {
	justification := make([]string, len(d.Justification))
	copy(justification, d.Justification)
	return Response{
		Decision:      d.Outcome,
		Amount:        d.Amount,
		Justification: justification,
	}
}
