package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/GoSim-25-26J-441/policy-claims-backend/internal/claims/corpus"
	"github.com/GoSim-25-26J-441/policy-claims-backend/internal/claims/domain"
	"github.com/GoSim-25-26J-441/policy-claims-backend/internal/claims/evaluator"
	"github.com/GoSim-25-26J-441/policy-claims-backend/internal/claims/genai"
	"github.com/GoSim-25-26J-441/policy-claims-backend/internal/claims/retriever"
	"github.com/GoSim-25-26J-441/policy-claims-backend/internal/claims/retry"
	"github.com/GoSim-25-26J-441/policy-claims-backend/internal/claims/service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// geminiStub answers every generateContent call with reply, or with status
// when it is not 200.
func geminiStub(t *testing.T, status int, reply string) (*httptest.Server, *int32) {
	t.Helper()
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		body, _ := json.Marshal(genai.GenerateResponse{
			Candidates: []genai.Candidate{{Content: &genai.Content{Role: "model", Parts: []genai.Part{{Text: reply}}}}},
		})
		w.Header().Set("Content-Type", "application/json")
		w.Write(body)
	}))
	t.Cleanup(server.Close)
	return server, &calls
}

func newRouter(t *testing.T, state service.Initialization, geminiURL string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	policy := retry.DefaultPolicy()
	policy.Sleep = func(context.Context, time.Duration) error { return nil }

	client := genai.New(genai.Config{URL: geminiURL, APIKey: "test-key"})
	pipeline := service.NewPipeline(retriever.New(client, policy), evaluator.New(nil))

	router := gin.New()
	New(state, pipeline).Register(router)
	return router
}

func postQuery(t *testing.T, router *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, "/evaluate_query", strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func queryBody(t *testing.T, q string) string {
	t.Helper()
	b, err := json.Marshal(EvaluateQueryRequest{Query: q})
	require.NoError(t, err)
	return string(b)
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) domain.Response {
	t.Helper()
	var resp domain.Response
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func errorMessage(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body["error"]
}

func TestEvaluateQuery_CataractApproved(t *testing.T) {
	gemini, _ := geminiStub(t, http.StatusOK,
		"Cataract surgery is covered under the policy for all treatment methods listed under Annexure B.")
	docs := corpus.New(corpus.Document{
		Name: "policy.pdf",
		Text: "Cataract surgery is covered under the policy for all treatment methods listed under Annexure B",
	})
	router := newRouter(t, service.Ready{Corpus: docs}, gemini.URL)

	rr := postQuery(t, router, queryBody(t, "45 female, cataract surgery, Mumbai, 2 years"))

	require.Equal(t, http.StatusOK, rr.Code)
	resp := decode(t, rr)
	assert.Equal(t, domain.OutcomeApproved, resp.Decision)
	assert.Equal(t, evaluator.MockAmount, resp.Amount)
	require.Len(t, resp.Justification, 1)
	assert.Contains(t, resp.Justification[0], "cataract surgery")
}

func TestEvaluateQuery_CosmeticRejected(t *testing.T) {
	gemini, _ := geminiStub(t, http.StatusOK, "Cosmetic surgery is excluded unless medically necessary.")
	docs := corpus.New(corpus.Document{Name: "policy.docx", Text: "Cosmetic surgery is excluded unless medically necessary"})
	router := newRouter(t, service.Ready{Corpus: docs}, gemini.URL)

	rr := postQuery(t, router, queryBody(t, "30 male, cosmetic surgery, Delhi, 6 months"))

	require.Equal(t, http.StatusOK, rr.Code)
	resp := decode(t, rr)
	assert.Equal(t, domain.OutcomeRejected, resp.Decision)
	assert.Equal(t, "0", resp.Amount)
	require.NotEmpty(t, resp.Justification)
	assert.Contains(t, strings.Join(resp.Justification, " "), "low confidence")
}

func TestEvaluateQuery_RejectionKeywordJustification(t *testing.T) {
	answer := "Hip replacement is subject to a waiting period of 24 months."
	gemini, _ := geminiStub(t, http.StatusOK, answer)
	docs := corpus.New(corpus.Document{Name: "policy.txt", Text: "Joint replacement: 24 month waiting period."})
	router := newRouter(t, service.Ready{Corpus: docs}, gemini.URL)

	rr := postQuery(t, router, queryBody(t, "60 male, knee replacement, Pune, 1 year"))

	require.Equal(t, http.StatusOK, rr.Code)
	resp := decode(t, rr)
	assert.Equal(t, domain.OutcomeRejected, resp.Decision)
	assert.Equal(t, []string{answer}, resp.Justification)
}

func TestEvaluateQuery_RemoteFailureDegradesToRejection(t *testing.T) {
	gemini, calls := geminiStub(t, http.StatusInternalServerError, "")
	docs := corpus.New(corpus.Document{Name: "policy.txt", Text: "Dialysis is covered."})
	router := newRouter(t, service.Ready{Corpus: docs}, gemini.URL)

	rr := postQuery(t, router, queryBody(t, "50 female, dialysis, Kolkata, 4 years"))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, int32(3), atomic.LoadInt32(calls))
	resp := decode(t, rr)
	assert.Equal(t, domain.OutcomeRejected, resp.Decision)
	assert.Equal(t, "0", resp.Amount)
}

func TestEvaluateQuery_FormatError(t *testing.T) {
	gemini, calls := geminiStub(t, http.StatusOK, "unused")
	docs := corpus.New(corpus.Document{Name: "policy.txt", Text: "x"})
	router := newRouter(t, service.Ready{Corpus: docs}, gemini.URL)

	for _, q := range []string{"45 female, cataract surgery", "abc female, cataract surgery, Mumbai, 2 years"} {
		rr := postQuery(t, router, queryBody(t, q))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.True(t, strings.HasPrefix(errorMessage(t, rr), "Invalid query format."))
	}
	assert.Equal(t, int32(0), atomic.LoadInt32(calls))
}

func TestEvaluateQuery_MissingQuery(t *testing.T) {
	docs := corpus.New(corpus.Document{Name: "policy.txt", Text: "x"})
	router := newRouter(t, service.Ready{Corpus: docs}, "http://unused.invalid")

	for _, body := range []string{`{}`, `{"query": "   "}`, `not json`} {
		rr := postQuery(t, router, body)
		assert.Equal(t, http.StatusBadRequest, rr.Code, body)
		assert.Equal(t, msgNoQuery, errorMessage(t, rr))
	}
}

func TestEvaluateQuery_InitializationFailed(t *testing.T) {
	loadErr := &corpus.MissingExtractorError{Ext: ".pdf", File: "policy.pdf"}
	router := newRouter(t, service.Failed{Err: loadErr}, "http://unused.invalid")

	rr := postQuery(t, router, queryBody(t, "45 female, cataract surgery, Mumbai, 2 years"))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	msg := errorMessage(t, rr)
	assert.True(t, strings.HasPrefix(msg, "Server failed to initialize resources."))
	assert.Contains(t, msg, ".pdf")
}

func TestEvaluateQuery_EmptyCorpus(t *testing.T) {
	router := newRouter(t, service.Ready{Corpus: corpus.New()}, "http://unused.invalid")

	rr := postQuery(t, router, queryBody(t, "45 female, cataract surgery, Mumbai, 2 years"))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, msgNoDocuments, errorMessage(t, rr))
}

func TestEvaluateQuery_NilInitialization(t *testing.T) {
	router := newRouter(t, nil, "http://unused.invalid")

	rr := postQuery(t, router, queryBody(t, "45 female, cataract surgery, Mumbai, 2 years"))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

type panickingEvaluator struct{}

func (panickingEvaluator) Evaluate([]domain.RetrievalResult, domain.ParsedQuery) domain.Decision {
	panic(errors.New("classifier exploded"))
}

func TestEvaluateQuery_UnhandledErrorIsOpaque(t *testing.T) {
	gin.SetMode(gin.TestMode)
	gemini, _ := geminiStub(t, http.StatusOK, "Covered.")
	docs := corpus.New(corpus.Document{Name: "policy.txt", Text: "x"})

	client := genai.New(genai.Config{URL: gemini.URL})
	pipeline := service.NewPipeline(retriever.New(client, retry.DefaultPolicy()), panickingEvaluator{})
	router := gin.New()
	New(service.Ready{Corpus: docs}, pipeline).Register(router)

	rr := postQuery(t, router, queryBody(t, "45 female, cataract surgery, Mumbai, 2 years"))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, msgInternalError, errorMessage(t, rr))
	assert.NotContains(t, rr.Body.String(), "exploded")
}

func TestIndex(t *testing.T) {
	router := newRouter(t, service.Ready{Corpus: corpus.New()}, "http://unused.invalid")

	req, err := http.NewRequest(http.MethodGet, "/", bytes.NewReader(nil))
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "running")
}
