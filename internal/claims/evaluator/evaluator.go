// Package evaluator turns a retrieval result into an approve/reject decision.
package evaluator

import (
	"fmt"
	"strings"

	"github.com/GoSim-25-26J-441/policy-claims-backend/internal/claims/domain"
)

const (
	// ConfidenceThreshold is the lowest confidence that can lead to approval.
	ConfidenceThreshold = 0.5

	// MockAmount is displayed for approved claims. No payout is computed.
	MockAmount = "500,000 INR (Mock Amount)"

	rejectedAmount       = "0"
	lowConfidenceMessage = "Insufficient information or low confidence score to approve the claim."
	coveredTemplate      = "The procedure '%s' is covered under the policy."
)

type Evaluator struct {
	classifier Classifier
}

// New creates an evaluator. A nil classifier uses the default keywords.
func New(c Classifier) *Evaluator {
	if c == nil {
		c = NewKeywordClassifier(DefaultKeywords())
	}
	return &Evaluator{classifier: c}
}

// Evaluate decides on the top result. Rules, first match wins:
//  1. no result or confidence below the threshold: reject
//  2. approval keyword and the procedure named in the answer: approve
//  3. rejection keyword: reject with the answer as justification
//  4. anything else: reject as in rule 1
func (e *Evaluator) Evaluate(results []domain.RetrievalResult, q domain.ParsedQuery) domain.Decision {
	if len(results) == 0 || results[0].Confidence < ConfidenceThreshold {
		return lowConfidence()
	}

	answer := results[0].Answer
	normalized := strings.ToLower(answer)
	signals := e.classifier.Classify(normalized)

	if signals.Approval && strings.Contains(normalized, strings.ToLower(q.Procedure)) {
		return domain.Decision{
			Outcome:       domain.OutcomeApproved,
			Amount:        MockAmount,
			Justification: []string{fmt.Sprintf(coveredTemplate, q.Procedure)},
		}
	}

	if signals.Rejection {
		return domain.Decision{
			Outcome:       domain.OutcomeRejected,
			Amount:        rejectedAmount,
			Justification: []string{answer},
		}
	}

	// Ambiguous answers are rejected rather than sent for review.
	return lowConfidence()
}

func lowConfidence() domain.Decision {
	return domain.Decision{
		Outcome:       domain.OutcomeRejected,
		Amount:        rejectedAmount,
		Justification: []string{lowConfidenceMessage},
	}
}
