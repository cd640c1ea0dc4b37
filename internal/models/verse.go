// Package models defines the core data types for versebot.
package models

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// VerseReference identifies a Bible passage. Immutable once constructed.
type VerseReference struct {
	Book     string `bson:"book" json:"book"`
	Chapter  int    `bson:"chapter" json:"chapter"`
	Verse    int    `bson:"verse" json:"verse"`
	EndVerse int    `bson:"end_verse,omitempty" json:"end_verse,omitempty"` // 0 for single-verse references
}

// String renders the reference in the canonical "Book Chapter:Verse" form.
func (r VerseReference) String() string {
	if r.EndVerse > 0 {
		return fmt.Sprintf("%s %d:%d-%d", r.Book, r.Chapter, r.Verse, r.EndVerse)
	}
	return fmt.Sprintf("%s %d:%d", r.Book, r.Chapter, r.Verse)
}

// IsZero reports whether the reference is unset.
func (r VerseReference) IsZero() bool {
	return r.Book == "" || r.Chapter == 0 || r.Verse == 0
}

// refPattern matches "Book C:V" and "Book C:V-V2", with an optional
// leading ordinal for books like "1 Corinthians".
var refPattern = regexp.MustCompile(`(?:^|\b)([1-3]? ?[A-Z][a-z]+(?: of [A-Z][a-z]+)?) (\d{1,3}):(\d{1,3})(?:-(\d{1,3}))?`)

// ParseReference extracts a verse reference from free text. It is the
// heuristic applied to language-model replies, so it tolerates surrounding
// prose and punctuation and takes the first well-formed match.
func ParseReference(s string) (VerseReference, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return VerseReference{}, fmt.Errorf("empty reference")
	}

	m := refPattern.FindStringSubmatch(s)
	if m == nil {
		return VerseReference{}, fmt.Errorf("no verse reference in %q", s)
	}

	chapter, err := strconv.Atoi(m[2])
	if err != nil || chapter == 0 {
		return VerseReference{}, fmt.Errorf("invalid chapter in %q", s)
	}
	verse, err := strconv.Atoi(m[3])
	if err != nil || verse == 0 {
		return VerseReference{}, fmt.Errorf("invalid verse in %q", s)
	}

	ref := VerseReference{
		Book:    strings.Join(strings.Fields(m[1]), " "),
		Chapter: chapter,
		Verse:   verse,
	}
	if m[4] != "" {
		end, err := strconv.Atoi(m[4])
		if err == nil && end > verse {
			ref.EndVerse = end
		}
	}
	return ref, nil
}

// MustParseReference parses a reference known at compile time.
// It panics on malformed input and is only for static tables.
func MustParseReference(s string) VerseReference {
	ref, err := ParseReference(s)
	if err != nil {
		panic(err)
	}
	return ref
}

// VerseText is the resolved content of a reference in one language.
type VerseText struct {
	Ref          VerseReference `bson:"ref" json:"ref"`
	LanguageCode string         `bson:"language_code" json:"language_code"`
	Text         string         `bson:"text" json:"text"`
	Reference    string         `bson:"reference" json:"reference"` // display form, localized for zh
}
