package bible

// ChineseBooks maps normalized English book names to Chinese Union Version
// book names, used to localize reference lines.
var ChineseBooks = map[string]string{
	"genesis":         "创世记",
	"exodus":          "出埃及记",
	"leviticus":       "利未记",
	"numbers":         "民数记",
	"deuteronomy":     "申命记",
	"joshua":          "约书亚记",
	"judges":          "士师记",
	"ruth":            "路得记",
	"1samuel":         "撒母耳记上",
	"2samuel":         "撒母耳记下",
	"1kings":          "列王纪上",
	"2kings":          "列王纪下",
	"1chronicles":     "历代志上",
	"2chronicles":     "历代志下",
	"ezra":            "以斯拉记",
	"nehemiah":        "尼希米记",
	"esther":          "以斯帖记",
	"job":             "约伯记",
	"psalms":          "诗篇",
	"psalm":           "诗篇",
	"proverbs":        "箴言",
	"ecclesiastes":    "传道书",
	"songofsolomon":   "雅歌",
	"isaiah":          "以赛亚书",
	"jeremiah":        "耶利米书",
	"lamentations":    "耶利米哀歌",
	"ezekiel":         "以西结书",
	"daniel":          "但以理书",
	"hosea":           "何西阿书",
	"joel":            "约珥书",
	"amos":            "阿摩司书",
	"obadiah":         "俄巴底亚书",
	"jonah":           "约拿书",
	"micah":           "弥迦书",
	"nahum":           "那鸿书",
	"habakkuk":        "哈巴谷书",
	"zephaniah":       "西番雅书",
	"haggai":          "哈该书",
	"zechariah":       "撒迦利亚书",
	"malachi":         "玛拉基书",
	"matthew":         "马太福音",
	"mark":            "马可福音",
	"luke":            "路加福音",
	"john":            "约翰福音",
	"acts":            "使徒行传",
	"romans":          "罗马书",
	"1corinthians":    "哥林多前书",
	"2corinthians":    "哥林多后书",
	"galatians":       "加拉太书",
	"ephesians":       "以弗所书",
	"philippians":     "腓立比书",
	"colossians":      "歌罗西书",
	"1thessalonians":  "帖撒罗尼迦前书",
	"2thessalonians":  "帖撒罗尼迦后书",
	"1timothy":        "提摩太前书",
	"2timothy":        "提摩太后书",
	"titus":           "提多书",
	"philemon":        "腓利门书",
	"hebrews":         "希伯来书",
	"james":           "雅各书",
	"1peter":          "彼得前书",
	"2peter":          "彼得后书",
	"1john":           "约翰一书",
	"2john":           "约翰二书",
	"3john":           "约翰三书",
	"jude":            "犹大书",
	"revelation":      "启示录",
}

// chineseVerses is the curated local translation corpus, keyed by the
// canonical English reference. Used when the remote translation is
// unavailable.
var chineseVerses = map[string]string{
	"Mark 11:22":        "耶稣回答说：你们当信服神。",
	"Hebrews 11:1":      "信就是所望之事的实底，是未见之事的确据。",
	"John 3:16":         "神爱世人，甚至将他的独生子赐给他们，叫一切信他的，不至灭亡，反得永生。",
	"Psalm 23:1":        "耶和华是我的牧者，我必不致缺乏。",
	"Romans 8:28":       "我们晓得万事都互相效力，叫爱神的人得益处。",
	"Philippians 4:13":  "我靠着那加给我力量的，凡事都能做。",
	"Jeremiah 29:11":    "耶和华说：我知道我向你们所怀的意念是赐平安的意念，不是降灾祸的意念。",
	"Proverbs 3:5":      "你要专心仰赖耶和华，不可倚靠自己的聪明。",
	"Matthew 11:28":     "凡劳苦担重担的人可以到我这里来，我就使你们得安息。",
	"Isaiah 40:31":      "但那等候耶和华的必从新得力。他们必如鹰展翅上腾。",
	"2 Corinthians 5:7": "因我们行事为人是凭着信心，不是凭着眼见。",
	"Matthew 28:20":     "凡我所吩咐你们的，都教训他们遵守，我就常与你们同在，直到世界的末了。",
	"Romans 10:17":      "可见信道是从听道来的，听道是从基督的话来的。",
	"Galatians 2:20":    "我已经与基督同钉十字架，现在活着的不再是我，乃是基督在我里面活着。",
	"Ephesians 2:8":     "你们得救是本乎恩，也因着信。这并不是出于自己，乃是神所赐的。",
}
