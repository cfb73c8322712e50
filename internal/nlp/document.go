// internal/nlp/document.go
package nlp

import (
	"fmt"
	"strings"

	"github.com/jdkato/prose/v2"
)

// Document is a segmented and POS-tagged text.
type Document struct {
	sentences []string
	tokens    []prose.Token
}

// Parse runs sentence segmentation and part-of-speech tagging over text.
// Named-entity extraction is disabled; only sentences and tags are used.
func Parse(text string) (*Document, error) {
	doc, err := prose.NewDocument(text, prose.WithExtraction(false))
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	sents := doc.Sentences()
	sentences := make([]string, 0, len(sents))
	for _, s := range sents {
		if t := strings.TrimSpace(s.Text); t != "" {
			sentences = append(sentences, t)
		}
	}
	return &Document{sentences: sentences, tokens: doc.Tokens()}, nil
}

// Sentences returns the sentences in document order.
func (d *Document) Sentences() []string {
	return d.sentences
}

// NounChunks returns the noun phrases of the document in order of
// appearance, duplicates included.
func (d *Document) NounChunks() []string {
	return NounChunks(d.tokens)
}
