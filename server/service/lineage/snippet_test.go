package lineage

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPlainTextExcerpt(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		maxRunes int
		want     string
	}{
		{
			name:     "plain text passes through",
			content:  "just a sentence",
			maxRunes: 120,
			want:     "just a sentence",
		},
		{
			name:     "markdown emphasis stripped",
			content:  "some **bold** and _italic_ words",
			maxRunes: 120,
			want:     "some bold and italic words",
		},
		{
			name:     "heading and paragraph join with a space",
			content:  "# Title\n\nBody text here.",
			maxRunes: 120,
			want:     "Title Body text here.",
		},
		{
			name:     "list items join",
			content:  "- first\n- second\n- third",
			maxRunes: 120,
			want:     "first second third",
		},
		{
			name:     "link text kept without url",
			content:  "see [the docs](https://example.com) for more",
			maxRunes: 120,
			want:     "see the docs for more",
		},
		{
			name:     "soft line breaks collapse to spaces",
			content:  "line one\nline two",
			maxRunes: 120,
			want:     "line one line two",
		},
		{
			name:     "truncated with ellipsis",
			content:  "abcdefghij klmnop",
			maxRunes: 10,
			want:     "abcdefghij...",
		},
		{
			name:     "truncation is rune safe",
			content:  "héllo wörld with accénts",
			maxRunes: 11,
			want:     "héllo wörld...",
		},
		{
			name:     "no limit when zero",
			content:  "anything goes here",
			maxRunes: 0,
			want:     "anything goes here",
		},
		{
			name:     "empty content",
			content:  "",
			maxRunes: 120,
			want:     "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, PlainTextExcerpt(tt.content, tt.maxRunes))
		})
	}
}
