// internal/nlp/chunks.go
package nlp

import (
	"strings"

	"github.com/jdkato/prose/v2"
)

// modifier tags may open or extend a chunk but never end one
var modifierTags = map[string]bool{
	"DT":   true,
	"PDT":  true,
	"PRP$": true,
	"JJ":   true,
	"JJR":  true,
	"JJS":  true,
	"CD":   true,
}

func isNoun(tag string) bool {
	return strings.HasPrefix(tag, "NN")
}

// NounChunks groups tagged tokens into base noun phrases: a run of
// determiners, possessives, adjectives and numbers followed by nouns. A
// chunk always ends at a noun; runs without a noun are dropped.
func NounChunks(tokens []prose.Token) []string {
	var (
		chunks  []string
		current []prose.Token
		seenNN  bool
	)

	flush := func() {
		end := len(current)
		for end > 0 && !isNoun(current[end-1].Tag) {
			end--
		}
		if end > 0 {
			chunks = append(chunks, joinTokens(current[:end]))
		}
		current = current[:0]
		seenNN = false
	}

	for _, tok := range tokens {
		switch {
		case isNoun(tok.Tag):
			current = append(current, tok)
			seenNN = true
		case tok.Tag == "POS":
			// "the speaker's point": the owner becomes a modifier
			current = append(current, tok)
			seenNN = false
		case modifierTags[tok.Tag]:
			if seenNN {
				flush()
			}
			current = append(current, tok)
		default:
			flush()
		}
	}
	flush()
	return chunks
}

func joinTokens(tokens []prose.Token) string {
	var sb strings.Builder
	for i, tok := range tokens {
		if i > 0 && tok.Tag != "POS" {
			sb.WriteByte(' ')
		}
		sb.WriteString(tok.Text)
	}
	return sb.String()
}
