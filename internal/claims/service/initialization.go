package service

import (
	"github.com/GoSim-25-26J-441/policy-claims-backend/internal/claims/corpus"
)

// Initialization is the outcome of loading the corpus at startup.
// It is either Ready or Failed.
type Initialization interface {
	initialization()
}

// Ready carries a loaded corpus, which may be empty.
type Ready struct {
	Corpus *corpus.Corpus
}

// Failed records why the corpus could not be loaded.
type Failed struct {
	Err error
}

func (Ready) initialization()  {}
func (Failed) initialization() {}

// Initialize wraps the result of a corpus load.
func Initialize(c *corpus.Corpus, err error) Initialization {
	if err != nil {
		return Failed{Err: err}
	}
	return Ready{Corpus: c}
}
