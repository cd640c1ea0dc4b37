package verses

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/gracechain/versebot/internal/models"
)

// Suggestion is a model-proposed verse reference. OK is false when no
// usable suggestion was produced, in which case Ref is meaningless.
type Suggestion struct {
	Ref models.VerseReference
	OK  bool
}

// Suggester proposes a verse reference for a market signal. Implementations
// must not return an error; a failed suggestion is Suggestion{OK: false}.
type Suggester interface {
	SuggestVerse(ctx context.Context, signal string) Suggestion
}

// Selector picks verse references for market signals. Without a suggester
// it is a pure function of its table.
type Selector struct {
	table      []Entry
	defaultRef models.VerseReference
	suggester  Suggester
}

type SelectorOption func(*Selector)

// WithTable replaces the default selection table.
func WithTable(table []Entry) SelectorOption {
	return func(s *Selector) { s.table = table }
}

// WithDefault replaces the fallthrough reference.
func WithDefault(ref models.VerseReference) SelectorOption {
	return func(s *Selector) { s.defaultRef = ref }
}

// WithSuggester enables model-assisted selection. Suggestions are
// preferred over the table scan when they resolve to a usable reference.
func WithSuggester(sg Suggester) SelectorOption {
	return func(s *Selector) { s.suggester = sg }
}

func NewSelector(opts ...SelectorOption) *Selector {
	s := &Selector{
		table:      DefaultTable,
		defaultRef: DefaultReference,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SelectVerse returns the reference for the signal. A configured suggester
// is consulted first; any failure there falls through silently to the
// table scan, so a dead model never breaks selection.
func (s *Selector) SelectVerse(ctx context.Context, signal string) models.VerseReference {
	if s.suggester != nil {
		if sug := s.suggester.SuggestVerse(ctx, signal); sug.OK {
			log.Debug().Str("ref", sug.Ref.String()).Msg("using suggested verse")
			return sug.Ref
		}
	}
	return s.scan(signal)
}

// scan walks the table in order and returns the reference of the first
// entry with any keyword present in the signal. Matching is
// case-insensitive substring containment.
func (s *Selector) scan(signal string) models.VerseReference {
	lowered := strings.ToLower(signal)
	for _, e := range s.table {
		for _, kw := range e.Keywords {
			if strings.Contains(lowered, strings.ToLower(kw)) {
				return e.Ref
			}
		}
	}
	return s.defaultRef
}

// themeKeywords drives ThemeForSignal. Ordered so that market-specific
// vocabulary takes precedence over general spiritual vocabulary.
var themeKeywords = []struct {
	theme    string
	keywords []string
}{
	{"market_crash", []string{"crash", "drop", "fall", "bear", "recession"}},
	{"crypto", []string{"bitcoin", "crypto", "blockchain", "ethereum", "bnb"}},
	{"finance", []string{"market", "trading", "investment", "finance"}},
	{"hope", []string{"hope", "optimistic", "bullish", "recovery"}},
	{"perseverance", []string{"persevere", "patience", "endure", "difficult"}},
	{"faith", []string{"faith", "believe", "trust", "confidence"}},
	{"love", []string{"love", "care", "compassion", "kindness"}},
	{"peace", []string{"peace", "calm", "serene", "tranquil"}},
	{"gratitude", []string{"thank", "grateful", "blessed", "appreciate"}},
}

// ThemeForSignal maps free text to a theme by keyword scan, defaulting
// to wisdom.
func ThemeForSignal(signal string) string {
	lowered := strings.ToLower(signal)
	for _, tk := range themeKeywords {
		for _, kw := range tk.keywords {
			if strings.Contains(lowered, kw) {
				return tk.theme
			}
		}
	}
	return "wisdom"
}

// ThemeForMarket maps the 24h change to a theme band.
func ThemeForMarket(snap *models.MarketSnapshot) string {
	if snap == nil {
		return "wisdom"
	}
	switch chg := snap.Change24hPct; {
	case chg > 10:
		return "gratitude"
	case chg > 5:
		return "joy"
	case chg > 0:
		return "hope"
	case chg > -5:
		return "patience"
	case chg > -10:
		return "perseverance"
	default:
		return "strength"
	}
}

// VerseForTheme returns the canonical reference for a theme, the first
// of its curated list. Unknown themes fall back to DefaultReference.
func VerseForTheme(theme string) models.VerseReference {
	list, ok := ThemeVerses[theme]
	if !ok || len(list) == 0 {
		return DefaultReference
	}
	return list[0]
}

// VerseForThemeAt returns the n-th reference of the theme's list, modulo
// its length. Callers pass a day ordinal to rotate through the list
// without repeating within a week.
func VerseForThemeAt(theme string, n int) models.VerseReference {
	list, ok := ThemeVerses[theme]
	if !ok || len(list) == 0 {
		return DefaultReference
	}
	if n < 0 {
		n = -n
	}
	return list[n%len(list)]
}
