package corpus

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Extractor converts one file into plain text.
type Extractor func(path string) (string, error)

// MissingExtractorError means a recognized document type has no extractor
// registered. Loading stops, because the corpus would silently lack that type.
type MissingExtractorError struct {
	Ext  string
	File string
}

func (e *MissingExtractorError) Error() string {
	return fmt.Sprintf("no text extractor available for %s files (file %s)", e.Ext, e.File)
}

// Loader scans a directory and extracts the text of every recognized file.
type Loader struct {
	recognized map[string]bool
	extractors map[string]Extractor
}

// NewLoader returns a loader that understands .pdf, .docx, .txt and .md files.
func NewLoader() *Loader {
	l := &Loader{
		recognized: map[string]bool{},
		extractors: map[string]Extractor{},
	}
	l.Register(".pdf", ExtractPDF)
	l.Register(".docx", ExtractDOCX)
	l.Register(".txt", ExtractPlain)
	l.Register(".md", ExtractPlain)
	return l
}

// Register marks ext as a document type and sets its extractor.
func (l *Loader) Register(ext string, fn Extractor) {
	ext = strings.ToLower(ext)
	l.recognized[ext] = true
	if fn == nil {
		delete(l.extractors, ext)
		return
	}
	l.extractors[ext] = fn
}

// Load reads the top level of dir. A missing directory is created and yields
// an empty corpus. Files that fail to extract are logged and left out.
func (l *Loader) Load(dir string) (*Corpus, error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create documents dir: %w", err)
		}
		log.Printf("[info] operation=load_documents created %s, add policy documents to it", dir)
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("stat documents dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("documents path %s is not a directory", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read documents dir: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	docs := make([]Document, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if !l.recognized[ext] {
			log.Printf("[warn] operation=load_documents skipping %s: unsupported document type", name)
			continue
		}
		extract, ok := l.extractors[ext]
		if !ok {
			return nil, &MissingExtractorError{Ext: ext, File: name}
		}

		text, err := extract(filepath.Join(dir, name))
		if err != nil {
			log.Printf("[warn] operation=load_documents could not process %s: %v", name, err)
			continue
		}
		docs = append(docs, Document{Name: name, Text: text})
		log.Printf("[info] operation=load_documents loaded %s", name)
	}

	if len(docs) == 0 {
		log.Printf("[warn] operation=load_documents no documents found in %s, every claim will be rejected", dir)
	}
	return New(docs...), nil
}
