// Package compose turns verses, market data, and catalog content into
// post drafts that fit the platform length limit.
package compose

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gracechain/versebot/internal/models"
)

// MaxPostLen is the platform limit per post, in characters not bytes.
const MaxPostLen = 280

// continuation marker appended to truncated segments.
const marker = "…"

const unavailableSuffix = "temporarily unavailable. 🙏"

// Truncate fits s into MaxPostLen characters. Text already within the
// limit passes through untouched. Otherwise it is cut at the last word
// boundary that leaves room for the continuation marker.
func Truncate(s string) string {
	if utf8.RuneCountInString(s) <= MaxPostLen {
		return s
	}
	runes := []rune(s)
	cut := MaxPostLen - utf8.RuneCountInString(marker)
	head := runes[:cut]
	if i := lastSpace(head); i > 0 {
		head = head[:i]
	}
	return strings.TrimRight(string(head), " \n\t") + marker
}

func lastSpace(rs []rune) int {
	for i := len(rs) - 1; i >= 0; i-- {
		switch rs[i] {
		case ' ', '\n', '\t':
			return i
		}
	}
	return -1
}

func draft(kind models.PostKind, lang string, segments ...string) (models.PostDraft, error) {
	kept := make([]string, 0, len(segments))
	for _, s := range segments {
		if strings.TrimSpace(s) == "" {
			continue
		}
		kept = append(kept, Truncate(s))
	}
	if len(kept) == 0 {
		return models.PostDraft{}, models.ErrEmptyDraft
	}
	return models.PostDraft{Kind: kind, Language: lang, Segments: kept}, nil
}

// formatVerse renders one verse segment as text plus an em-dashed
// reference line.
func formatVerse(v models.VerseText) string {
	if v.Text == "" {
		return ""
	}
	return fmt.Sprintf("%s\n\n— %s", v.Text, v.Reference)
}

// VerseThread builds the two-segment scripture thread, English first,
// Chinese reply. Either segment may be missing; both missing is an
// empty draft.
func VerseThread(en, zh models.VerseText) (models.PostDraft, error) {
	return draft(models.PostScripture, "en+zh", formatVerse(en), formatVerse(zh))
}

// MarketVerse builds the market-relevant verse thread. The English
// segment carries a one-line market context when a snapshot is
// available; without one the verse posts alone.
func MarketVerse(en, zh models.VerseText, snap *models.MarketSnapshot) (models.PostDraft, error) {
	english := formatVerse(en)
	if english != "" && snap != nil {
		english += fmt.Sprintf("\n\n%s $%s (%s 24h) #BNB #Crypto",
			strings.ToUpper(snap.Symbol), usd(snap.PriceUSD), pct(snap.Change24hPct))
	}
	return draft(models.PostMarketVerse, "en+zh", english, formatVerse(zh))
}

// MarketAnalysis builds the daily stats post. A missing snapshot
// degrades to the unavailable notice rather than failing the run.
func MarketAnalysis(snap *models.MarketSnapshot) (models.PostDraft, error) {
	if snap == nil {
		return draft(models.PostAnalysis, "en", "BNB data "+unavailableSuffix)
	}

	text := fmt.Sprintf(`BNB Market Analysis (24h)

%s Price: $%s (%s)
📊 Volume: $%s
💎 Market Cap: $%s
📈 24h High: $%s
📉 24h Low: $%s

#BNB #Binance #Crypto`,
		trendEmoji(snap.Change24hPct),
		usd(snap.PriceUSD),
		pct(snap.Change24hPct),
		compact(snap.Volume24hUSD),
		compact(snap.MarketCapUSD),
		usd(snap.High24hUSD),
		usd(snap.Low24hUSD))

	return draft(models.PostAnalysis, "en", text)
}

// TrendingCoins builds the trending list post from at most the first
// five tokens.
func TrendingCoins(tokens []models.TrendingToken) (models.PostDraft, error) {
	if len(tokens) == 0 {
		return draft(models.PostTrending, "en", "BSC trending data "+unavailableSuffix)
	}

	var b strings.Builder
	b.WriteString("🔥 BSC Ecosystem Trending Coins (24h)\n\n")
	for i, t := range tokens {
		if i >= 5 {
			break
		}
		fmt.Fprintf(&b, "%d. %s (%s)\n", i+1, t.Name, strings.ToUpper(t.Symbol))
		fmt.Fprintf(&b, "   $%s %s %s\n\n", usd(t.PriceUSD), trendEmoji(t.Change24hPct), pct(t.Change24hPct))
	}
	b.WriteString("#BSC #BNB #DeFi #Trending")

	return draft(models.PostTrending, "en", b.String())
}

// EcosystemNews builds the news digest from at most the first two items.
func EcosystemNews(items []models.NewsItem) (models.PostDraft, error) {
	if len(items) == 0 {
		return draft(models.PostNews, "en", "BNB ecosystem news "+unavailableSuffix)
	}

	var b strings.Builder
	b.WriteString("BNB Ecosystem News (24h)\n\n")
	for i, item := range items {
		if i >= 2 {
			break
		}
		title := item.Title
		if utf8.RuneCountInString(title) > 40 {
			title = string([]rune(title)[:37]) + "..."
		}
		fmt.Fprintf(&b, "%d. %s\n", i+1, title)
	}
	b.WriteString("\n#BNB #BSC #Ecosystem #News")

	return draft(models.PostNews, "en", b.String())
}

// UpcomingProjects builds the investments post, grouped by backer.
func UpcomingProjects(projects []models.Project) (models.PostDraft, error) {
	if len(projects) == 0 {
		return draft(models.PostProjects, "en", "BNB upcoming projects data "+unavailableSuffix)
	}

	var yzi, binance []models.Project
	for _, p := range projects {
		switch p.Backer {
		case "YZi Labs":
			yzi = append(yzi, p)
		case "Binance":
			binance = append(binance, p)
		}
	}

	var b strings.Builder
	b.WriteString("Upcoming BNB Projects & Investments\n\n")
	if len(yzi) > 0 {
		b.WriteString("YZi Labs Backed:\n")
		for i, p := range yzi {
			if i >= 2 {
				break
			}
			fmt.Fprintf(&b, "• %s (%s)\n", p.Name, p.Category)
		}
	}
	if len(binance) > 0 {
		b.WriteString("\nBinance Supported:\n")
		for i, p := range binance {
			if i >= 1 {
				break
			}
			fmt.Fprintf(&b, "• %s (%s)\n", p.Name, p.Category)
		}
	}
	b.WriteString("\n#BNB #BSC #Investments #Innovation")

	return draft(models.PostProjects, "en", b.String())
}

// Insight builds a fundamentals one-liner post. n indexes the catalog
// modulo its length, so callers rotate by day ordinal.
func Insight(n int) (models.PostDraft, error) {
	insight := pick(Insights, n)
	text := fmt.Sprintf(`BNB Insight 💡

%s

Understanding the fundamentals helps build long-term confidence in your investments.

#BNB #Binance #CryptoEducation #DeFi`, insight)
	return draft(models.PostInsight, "en", text)
}

// SecurityTip builds a security one-liner post.
func SecurityTip(n int) (models.PostDraft, error) {
	tip := pick(SecurityTips, n)
	text := fmt.Sprintf(`BNB Security Tip 🔒

%s

Protecting your investments is as important as making them.

#BNB #Security #Crypto #Binance`, tip)
	return draft(models.PostSecurity, "en", text)
}

// Educational builds an educational topic post.
func Educational(n int) (models.PostDraft, error) {
	topic := Topics[mod(n, len(Topics))]
	text := fmt.Sprintf("BNB Education 📚\n\n%s\n\n%s\n\n%s",
		topic.Title, topic.Content, topic.Hashtags)
	return draft(models.PostEducation, "en", text)
}

// Reply renders a verse for a reply to someone else's post.
func Reply(v models.VerseText) string {
	return Truncate(formatVerse(v))
}

func pick(list []string, n int) string {
	return list[mod(n, len(list))]
}

func mod(n, m int) int {
	n %= m
	if n < 0 {
		n += m
	}
	return n
}

// pct renders a sign-carrying percentage, "+5.32%" or "-1.20%".
func pct(v float64) string {
	return fmt.Sprintf("%+.2f%%", v)
}

func trendEmoji(change float64) string {
	switch {
	case change > 0:
		return "📈"
	case change < 0:
		return "📉"
	default:
		return "➡️"
	}
}

// usd renders a dollar amount, comma-grouped with two decimals at one
// dollar and above, six decimals below for small-cap token prices.
func usd(v float64) string {
	if v < 1 {
		return fmt.Sprintf("%.6f", v)
	}
	s := fmt.Sprintf("%.2f", v)
	dot := strings.IndexByte(s, '.')
	return group(s[:dot]) + s[dot:]
}

func group(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	var b strings.Builder
	rem := n % 3
	if rem > 0 {
		b.WriteString(digits[:rem])
	}
	for i := rem; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// compact renders large dollar magnitudes as K/M/B.
func compact(v float64) string {
	switch {
	case v >= 1_000_000_000:
		return fmt.Sprintf("%.1fB", v/1_000_000_000)
	case v >= 1_000_000:
		return fmt.Sprintf("%.1fM", v/1_000_000)
	case v >= 1_000:
		return fmt.Sprintf("%.1fK", v/1_000)
	default:
		return fmt.Sprintf("%.0f", v)
	}
}
