package lsp

import "sync"

type document struct {
	content string
	version int32
	result  *AnalysisResult
}

// DocumentStore holds open theme documents keyed by URI, together with the
// analysis of their latest content.
type DocumentStore struct {
	mu   sync.RWMutex
	docs map[string]*document
}

func NewDocumentStore() *DocumentStore {
	return &DocumentStore{docs: make(map[string]*document)}
}

// Open records a newly opened document. The analysis is computed lazily.
func (s *DocumentStore) Open(uri, content string, version int32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[uri] = &document{content: content, version: version}
}

// Update replaces the content of an open document and drops its analysis.
// Stale versions are ignored; unknown URIs are opened.
func (s *DocumentStore) Update(uri, content string, version int32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if doc, ok := s.docs[uri]; ok && version < doc.version {
		return
	}
	s.docs[uri] = &document{content: content, version: version}
}

func (s *DocumentStore) Close(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, uri)
}

func (s *DocumentStore) Get(uri string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[uri]
	if !ok {
		return "", false
	}
	return doc.content, true
}

// Result returns the cached analysis of a document, running analyze on a
// miss. The analysis is stored only if the content did not change meanwhile.
func (s *DocumentStore) Result(uri string, analyze func(content string) *AnalysisResult) *AnalysisResult {
	s.mu.RLock()
	doc, ok := s.docs[uri]
	var cached *AnalysisResult
	if ok {
		cached = doc.result
	}
	s.mu.RUnlock()
	if !ok {
		return nil
	}
	if cached != nil {
		return cached
	}

	result := analyze(doc.content)

	s.mu.Lock()
	defer s.mu.Unlock()
	if current, ok := s.docs[uri]; ok && current == doc {
		current.result = result
	}
	return result
}
