package verses

import "github.com/gracechain/versebot/internal/models"

// DefaultReference is returned when nothing in a table matches.
var DefaultReference = models.VerseReference{Book: "Psalm", Chapter: 23, Verse: 1}

// Entry pairs a keyword set with the reference selected when any keyword
// appears in the signal.
type Entry struct {
	Keywords []string
	Ref      models.VerseReference
}

// DefaultTable is the ordered selection table scanned by SelectVerse.
// Order is the tie-break: the first matching entry wins, so the more
// specific market entries sit above the general spiritual ones.
var DefaultTable = []Entry{
	{Keywords: []string{"crash", "drop", "fall", "bear", "recession"}, Ref: models.MustParseReference("Matthew 6:19-21")},
	{Keywords: []string{"bitcoin", "crypto", "blockchain", "ethereum"}, Ref: models.MustParseReference("Proverbs 13:11")},
	{Keywords: []string{"market", "trading", "investment", "finance"}, Ref: models.MustParseReference("Proverbs 22:7")},
	{Keywords: []string{"hope", "optimistic", "bullish", "recovery"}, Ref: models.MustParseReference("Romans 15:13")},
	{Keywords: []string{"wisdom", "learn", "insight", "knowledge"}, Ref: models.MustParseReference("Proverbs 3:5-6")},
	{Keywords: []string{"persevere", "patience", "endure", "difficult"}, Ref: models.MustParseReference("Romans 5:3-4")},
	{Keywords: []string{"faith", "believe", "trust", "confidence"}, Ref: models.MustParseReference("Hebrews 11:1")},
	{Keywords: []string{"love", "care", "compassion", "kindness"}, Ref: models.MustParseReference("1 Corinthians 13:4-7")},
	{Keywords: []string{"peace", "calm", "serene", "tranquil"}, Ref: models.MustParseReference("Philippians 4:7")},
	{Keywords: []string{"thank", "grateful", "blessed", "appreciate"}, Ref: models.MustParseReference("1 Thessalonians 5:18")},
}

// ThemeVerses maps each theme to its curated references, in preference
// order. The first entry is the deterministic pick for the theme.
var ThemeVerses = map[string][]models.VerseReference{
	"hope": refs(
		"Romans 15:13", "Jeremiah 29:11", "Psalm 27:14", "Isaiah 40:31",
		"Romans 8:28", "Psalm 31:24", "Isaiah 41:10", "Hebrews 6:19",
	),
	"wisdom": refs(
		"Proverbs 3:5-6", "James 1:5", "Proverbs 16:16", "Proverbs 9:10",
		"Psalm 111:10", "Proverbs 2:6", "Proverbs 4:7", "James 3:17",
	),
	"perseverance": refs(
		"Romans 5:3-4", "Hebrews 12:1", "Galatians 6:9", "James 1:12",
		"2 Timothy 4:7-8", "Philippians 3:14", "Hebrews 10:36", "Luke 21:19",
	),
	"faith": refs(
		"Hebrews 11:1", "Mark 11:22", "2 Corinthians 5:7", "Romans 10:17",
		"Galatians 2:20", "Ephesians 2:8", "John 3:16", "Matthew 17:20",
	),
	"love": refs(
		"1 Corinthians 13:4-7", "John 3:16", "Romans 8:38-39", "1 John 4:19",
		"1 Peter 4:8", "Romans 13:10", "Colossians 3:14", "John 13:34-35",
	),
	"peace": refs(
		"Philippians 4:7", "John 14:27", "Isaiah 26:3", "Romans 5:1",
		"Colossians 3:15", "Psalm 29:11", "Matthew 5:9", "John 16:33",
	),
	"gratitude": refs(
		"1 Thessalonians 5:18", "Psalm 100:4", "Colossians 3:17", "Ephesians 5:20",
		"Psalm 107:1", "Psalm 118:1", "Psalm 136:1", "Psalm 95:2",
	),
	"strength": refs(
		"Philippians 4:13", "Isaiah 40:31", "Psalm 18:2", "2 Corinthians 12:9",
		"Ephesians 6:10", "Psalm 27:1", "Joshua 1:9", "Psalm 46:1",
	),
	"joy": refs(
		"Nehemiah 8:10", "Psalm 16:11", "Galatians 5:22", "Philippians 4:4",
		"1 Thessalonians 5:16", "Psalm 30:5", "John 15:11", "Psalm 126:3",
	),
	"grace": refs(
		"Ephesians 2:8-9", "Romans 3:23-24", "2 Corinthians 12:9", "Titus 2:11",
		"Romans 5:20", "Hebrews 4:16", "James 4:6", "1 Peter 5:10",
	),
	"patience": refs(
		"Romans 8:25", "James 5:7-8", "Psalm 37:7", "Lamentations 3:25",
		"Galatians 6:9", "Psalm 27:14", "Ecclesiastes 7:8", "Colossians 1:11",
	),
	"market_crash": refs(
		"Matthew 6:19-21", "Proverbs 23:4-5", "Luke 12:15", "Ecclesiastes 5:10",
		"1 Timothy 6:9-10", "Proverbs 11:28", "Matthew 6:24", "Proverbs 15:16",
	),
	"crypto": refs(
		"Proverbs 13:11", "Luke 16:11", "Matthew 25:14-30", "Proverbs 21:5",
		"Ecclesiastes 11:2", "Proverbs 27:23-24", "Proverbs 21:20", "Matthew 6:33",
	),
	"finance": refs(
		"Proverbs 22:7", "1 Timothy 6:10", "Proverbs 3:9-10", "Proverbs 11:24-25",
		"2 Corinthians 9:6-7", "Luke 6:38", "Proverbs 13:22", "Ecclesiastes 11:1",
	),
}

func refs(ss ...string) []models.VerseReference {
	out := make([]models.VerseReference, len(ss))
	for i, s := range ss {
		out[i] = models.MustParseReference(s)
	}
	return out
}

// ValidTheme reports whether the theme has a curated verse list.
func ValidTheme(theme string) bool {
	_, ok := ThemeVerses[theme]
	return ok
}
