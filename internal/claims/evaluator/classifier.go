package evaluator

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Signals is what a classifier found in an answer.
type Signals struct {
	Approval         bool
	ApprovalKeyword  string
	Rejection        bool
	RejectionKeyword string
}

// Classifier inspects lower-cased answer text.
type Classifier interface {
	Classify(normalized string) Signals
}

// Keywords configures a KeywordClassifier.
type Keywords struct {
	Approval  []string `yaml:"approval"`
	Rejection []string `yaml:"rejection"`
}

// DefaultKeywords returns the built-in keyword lists.
func DefaultKeywords() Keywords {
	return Keywords{
		Approval: []string{"covered", "listed under", "reimburse", "treatment methods"},
		Rejection: []string{
			"pre-existing",
			"excluded",
			"waiting period",
			"not covered",
			"not listed",
			"unless",
			"limited to",
		},
	}
}

// LoadKeywords reads keyword lists from a YAML file. A list that is absent
// or empty keeps its default.
func LoadKeywords(path string) (Keywords, error) {
	kw := DefaultKeywords()
	if path == "" {
		return kw, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Keywords{}, fmt.Errorf("read keywords file: %w", err)
	}
	var file Keywords
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Keywords{}, fmt.Errorf("parse keywords file: %w", err)
	}
	if len(file.Approval) > 0 {
		kw.Approval = file.Approval
	}
	if len(file.Rejection) > 0 {
		kw.Rejection = file.Rejection
	}
	if err := kw.validate(); err != nil {
		return Keywords{}, fmt.Errorf("keywords file %s: %w", path, err)
	}
	return kw, nil
}

func (k Keywords) validate() error {
	for _, w := range append(append([]string{}, k.Approval...), k.Rejection...) {
		if strings.TrimSpace(w) == "" {
			return errors.New("blank keyword")
		}
	}
	return nil
}

// KeywordClassifier matches fixed substrings.
type KeywordClassifier struct {
	approval  []string
	rejection []string
}

func NewKeywordClassifier(k Keywords) *KeywordClassifier {
	return &KeywordClassifier{
		approval:  lowerAll(k.Approval),
		rejection: lowerAll(k.Rejection),
	}
}

func (c *KeywordClassifier) Classify(normalized string) Signals {
	var s Signals
	s.ApprovalKeyword, s.Approval = firstMatch(normalized, c.approval)
	s.RejectionKeyword, s.Rejection = firstMatch(normalized, c.rejection)
	return s
}

func firstMatch(text string, keywords []string) (string, bool) {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return k, true
		}
	}
	return "", false
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}
