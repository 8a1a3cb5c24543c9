package service

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/GoSim-25-26J-441/policy-claims-backend/internal/claims/corpus"
	"github.com/GoSim-25-26J-441/policy-claims-backend/internal/claims/domain"
	"github.com/GoSim-25-26J-441/policy-claims-backend/internal/claims/parser"
	"github.com/GoSim-25-26J-441/policy-claims-backend/internal/logger"
)

// Retriever finds what the documents say about a procedure.
type Retriever interface {
	Retrieve(ctx context.Context, procedure string, docs *corpus.Corpus) []domain.RetrievalResult
}

// Evaluator decides on a claim from retrieval results.
type Evaluator interface {
	Evaluate(results []domain.RetrievalResult, q domain.ParsedQuery) domain.Decision
}

// Pipeline runs parse, retrieve, evaluate and format for one query.
type Pipeline struct {
	retriever Retriever
	evaluator Evaluator
}

func NewPipeline(r Retriever, e Evaluator) *Pipeline {
	return &Pipeline{retriever: r, evaluator: e}
}

// Run evaluates raw against docs. Only *domain.FormatError is returned for
// bad input; a panic in a later stage is converted to an error.
func (p *Pipeline) Run(ctx context.Context, raw string, docs *corpus.Corpus) (resp domain.Response, err error) {
	log := logger.New(ctx)
	defer func() {
		if r := recover(); r != nil {
			log.LogErrorf("evaluate_query", "panic: %v\n%s", r, debug.Stack())
			err = fmt.Errorf("pipeline panic: %v", r)
		}
	}()

	q, err := parser.Parse(raw)
	if err != nil {
		log.LogWarnf("evaluate_query", "invalid query %q: %v", raw, err)
		return domain.Response{}, err
	}
	log.LogInfof("evaluate_query", "parsed age=%d gender=%s procedure=%q location=%q duration=%q",
		q.Age, q.Gender, q.Procedure, q.Location, q.PolicyDuration)

	results := p.retriever.Retrieve(ctx, q.Procedure, docs)
	decision := p.evaluator.Evaluate(results, q)
	log.LogInfof("evaluate_query", "decision=%s amount=%q", decision.Outcome, decision.Amount)

	return domain.FormatResponse(decision), nil
}
