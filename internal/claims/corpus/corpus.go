// Package corpus holds the policy documents the retriever reasons over.
// A Corpus is built once at startup and has no mutating methods, so it can be
// shared by concurrent requests without locking.
package corpus

import "strings"

// Document is the extracted text of one policy file.
type Document struct {
	Name string
	Text string
}

// Corpus is an ordered, read-only collection of documents.
type Corpus struct {
	docs []Document
}

// New copies docs into a new Corpus.
func New(docs ...Document) *Corpus {
	cp := make([]Document, len(docs))
	copy(cp, docs)
	return &Corpus{docs: cp}
}

func (c *Corpus) Len() int {
	if c == nil {
		return 0
	}
	return len(c.docs)
}

func (c *Corpus) Empty() bool { return c.Len() == 0 }

// Texts returns the document bodies in load order.
func (c *Corpus) Texts() []string {
	out := make([]string, c.Len())
	for i := range out {
		out[i] = c.docs[i].Text
	}
	return out
}

// Names returns the source file names in load order.
func (c *Corpus) Names() []string {
	out := make([]string, c.Len())
	for i := range out {
		out[i] = c.docs[i].Name
	}
	return out
}

// Join concatenates every document body with sep.
func (c *Corpus) Join(sep string) string {
	return strings.Join(c.Texts(), sep)
}
