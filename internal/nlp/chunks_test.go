package nlp

import (
	"testing"

	"github.com/jdkato/prose/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tagged(pairs ...string) []prose.Token {
	tokens := make([]prose.Token, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		tokens = append(tokens, prose.Token{Text: pairs[i], Tag: pairs[i+1]})
	}
	return tokens
}

func TestNounChunks(t *testing.T) {
	tests := []struct {
		name   string
		tokens []prose.Token
		want   []string
	}{
		{
			name: "determiner and compound noun",
			tokens: tagged("This", "DT", "is", "VBZ", "a", "DT", "test", "NN", "sentence", "NN",
				"for", "IN", "extraction", "NN", ".", "."),
			want: []string{"a test sentence", "extraction"},
		},
		{
			name:   "adjectives and numbers",
			tokens: tagged("the", "DT", "two", "CD", "big", "JJ", "dogs", "NNS", "ran", "VBD"),
			want:   []string{"the two big dogs"},
		},
		{
			name:   "determiner after noun opens a new chunk",
			tokens: tagged("Bob", "NNP", "the", "DT", "builder", "NN"),
			want:   []string{"Bob", "the builder"},
		},
		{
			name:   "possessive stays in the phrase",
			tokens: tagged("the", "DT", "speaker", "NN", "'s", "POS", "main", "JJ", "point", "NN"),
			want:   []string{"the speaker's main point"},
		},
		{
			name:   "trailing modifiers are dropped",
			tokens: tagged("cats", "NNS", "are", "VBP", "very", "RB", "the", "DT", "best", "JJS"),
			want:   []string{"cats"},
		},
		{
			name:   "no nouns",
			tokens: tagged("run", "VB", "quickly", "RB"),
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NounChunks(tt.tokens))
		})
	}
}

func TestParse(t *testing.T) {
	doc, err := Parse("Hello world. This is a test sentence for extraction.")
	require.NoError(t, err)

	sentences := doc.Sentences()
	require.Len(t, sentences, 2)
	assert.Equal(t, "This is a test sentence for extraction.", sentences[1])
	assert.Contains(t, doc.NounChunks(), "extraction")
}

func TestParseEmpty(t *testing.T) {
	doc, err := Parse("")
	require.NoError(t, err)
	assert.Empty(t, doc.Sentences())
	assert.Empty(t, doc.NounChunks())
}
