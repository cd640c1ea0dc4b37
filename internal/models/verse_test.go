package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReference(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  VerseReference
	}{
		{
			name:  "simple",
			input: "John 3:16",
			want:  VerseReference{Book: "John", Chapter: 3, Verse: 16},
		},
		{
			name:  "range",
			input: "Proverbs 3:5-6",
			want:  VerseReference{Book: "Proverbs", Chapter: 3, Verse: 5, EndVerse: 6},
		},
		{
			name:  "ordinal book",
			input: "1 Corinthians 13:4-7",
			want:  VerseReference{Book: "1 Corinthians", Chapter: 13, Verse: 4, EndVerse: 7},
		},
		{
			name:  "surrounded by prose",
			input: "I would suggest Jeremiah 29:11 for this situation.",
			want:  VerseReference{Book: "Jeremiah", Chapter: 29, Verse: 11},
		},
		{
			name:  "first match wins",
			input: "Either Psalm 23:1 or Romans 8:28 fits.",
			want:  VerseReference{Book: "Psalm", Chapter: 23, Verse: 1},
		},
		{
			name:  "quoted model reply",
			input: `"Matthew 6:19-21"`,
			want:  VerseReference{Book: "Matthew", Chapter: 6, Verse: 19, EndVerse: 21},
		},
		{
			name:  "descending range dropped",
			input: "John 3:16-14",
			want:  VerseReference{Book: "John", Chapter: 3, Verse: 16},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseReference(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseReferenceRejectsJunk(t *testing.T) {
	for _, input := range []string{
		"",
		"   ",
		"no verse here",
		"hallelujah",
		"3:16",
	} {
		_, err := ParseReference(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestVerseReferenceString(t *testing.T) {
	assert.Equal(t, "John 3:16", VerseReference{Book: "John", Chapter: 3, Verse: 16}.String())
	assert.Equal(t, "Romans 5:3-4", VerseReference{Book: "Romans", Chapter: 5, Verse: 3, EndVerse: 4}.String())
}

func TestVerseReferenceRoundTrip(t *testing.T) {
	ref := VerseReference{Book: "1 Thessalonians", Chapter: 5, Verse: 18}
	parsed, err := ParseReference(ref.String())
	require.NoError(t, err)
	assert.Equal(t, ref, parsed)
}
