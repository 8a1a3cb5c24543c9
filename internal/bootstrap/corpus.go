package bootstrap

import (
	"log"

	"github.com/GoSim-25-26J-441/policy-claims-backend/internal/claims/corpus"
	"github.com/GoSim-25-26J-441/policy-claims-backend/internal/claims/service"
)

// LoadCorpus reads the policy documents once. A failure is kept in the
// returned state so the server can still start and report it per request.
func LoadCorpus(dir string) service.Initialization {
	log.Printf("Loading documents from %s...", dir)
	docs, err := corpus.NewLoader().Load(dir)
	if err != nil {
		log.Printf("FATAL LOADING ERROR: failed to load resources: %v", err)
	} else {
		log.Printf("Loaded %d documents", docs.Len())
	}
	return service.Initialize(docs, err)
}
