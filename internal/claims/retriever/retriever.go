// Package retriever asks the generation model what the policy documents say
// about a procedure and scores the reply.
package retriever

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/GoSim-25-26J-441/policy-claims-backend/internal/claims/corpus"
	"github.com/GoSim-25-26J-441/policy-claims-backend/internal/claims/domain"
	"github.com/GoSim-25-26J-441/policy-claims-backend/internal/claims/genai"
	"github.com/GoSim-25-26J-441/policy-claims-backend/internal/claims/retry"
	"github.com/GoSim-25-26J-441/policy-claims-backend/internal/logger"
)

const (
	documentSeparator = "\n\n"

	noDocumentsAnswer   = "No documents available for search."
	badFormatAnswer     = "API returned an unexpected response format."
	failedConnectFormat = "Failed to connect to API after %d attempts: %v"

	lowConfidence  = 0.1
	highConfidence = 0.95
)

// negativeCues lower the confidence of a reply.
var negativeCues = []string{"not found", "not covered", "excluded"}

// Generator produces a reply for a single prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type Retriever struct {
	gen    Generator
	policy retry.Policy
}

// New creates a retriever. When policy.Retryable is nil only transport
// failures are retried.
func New(gen Generator, policy retry.Policy) *Retriever {
	if policy.Retryable == nil {
		policy.Retryable = genai.IsTransient
	}
	return &Retriever{gen: gen, policy: policy}
}

// Retrieve returns a single result describing the policy position on
// procedure. It never fails: remote errors become zero-confidence results.
func (r *Retriever) Retrieve(ctx context.Context, procedure string, docs *corpus.Corpus) []domain.RetrievalResult {
	log := logger.New(ctx)
	if docs.Empty() {
		log.LogWarnf("retrieve", "no documents loaded, skipping model call")
		return []domain.RetrievalResult{{Answer: noDocumentsAnswer, Confidence: 0}}
	}

	prompt := BuildPrompt(procedure, docs.Join(documentSeparator))

	policy := r.policy
	if policy.OnRetry == nil {
		policy.OnRetry = func(attempt int, err error, wait time.Duration) {
			log.LogWarnf("retrieve", "attempt %d/%d failed: %v, retrying in %s", attempt, policy.Attempts, err, wait)
		}
	}

	res := retry.Do(ctx, policy, func(ctx context.Context, attempt int) (string, error) {
		log.LogInfof("retrieve", "sending request (attempt %d/%d)", attempt, policy.Attempts)
		return r.gen.Generate(ctx, prompt)
	})

	if !res.OK() {
		if genai.IsFormat(res.Err) {
			log.LogError("retrieve", res.Err)
			return []domain.RetrievalResult{{Answer: badFormatAnswer, Confidence: 0}}
		}
		log.LogErrorf("retrieve", "giving up after %d attempts: %v", res.Attempts, res.Err)
		return []domain.RetrievalResult{{
			Answer:     fmt.Sprintf(failedConnectFormat, res.Attempts, res.Err),
			Confidence: 0,
		}}
	}

	return []domain.RetrievalResult{{Answer: res.Value, Confidence: Confidence(res.Value)}}
}

// BuildPrompt embeds the policy text and the procedure into the fixed instruction.
func BuildPrompt(procedure, policyText string) string {
	var b strings.Builder
	b.WriteString("You are a helpful assistant that analyzes insurance policy documents. ")
	b.WriteString("Using only the following policy documents, answer the user's query about a medical procedure. ")
	b.WriteString("Specifically, state if the procedure is covered, if it has a waiting period, or if it is excluded. ")
	b.WriteString("Do not invent information. Do not mention that you are using a model.\n\n")
	b.WriteString("Policy Documents:\n")
	b.WriteString(policyText)
	b.WriteString("\n\nUser Query: ")
	b.WriteString(procedure)
	b.WriteString("\n\nAnswer:")
	return b.String()
}

// Confidence scores a reply from surface cues only.
func Confidence(answer string) float64 {
	lower := strings.ToLower(answer)
	for _, cue := range negativeCues {
		if strings.Contains(lower, cue) {
			return lowConfidence
		}
	}
	return highConfidence
}
