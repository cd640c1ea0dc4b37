package compose

import "github.com/gracechain/versebot/internal/models"

// Topic is one educational content entry.
type Topic struct {
	Title    string
	Content  string
	Hashtags string
}

// Insights are the rotating fundamentals one-liners for insight posts.
var Insights = []string{
	"BNB powers the Binance Smart Chain ecosystem",
	"Used for trading fee discounts on Binance",
	"Governance token for BSC network decisions",
	"Burning mechanism reduces supply over time",
	"Multi-chain utility across BSC and other networks",
	"Staking rewards available for holders",
	"Integration with DeFi protocols",
	"NFT marketplace and gaming applications",
}

// SecurityTips are the rotating security one-liners.
var SecurityTips = []string{
	"Always use official Binance channels for support",
	"Enable 2FA on your Binance account",
	"Store BNB in hardware wallets for long-term holding",
	"Never share your private keys or seed phrases",
	"Verify transaction addresses before sending",
	"Use official BSC network for BNB transactions",
	"Keep your software wallets updated",
	"Be cautious of phishing websites and fake apps",
}

// Topics is the educational content rotation.
var Topics = []Topic{
	{
		Title:    "What is BNB?",
		Content:  "BNB (Binance Coin) is the native cryptocurrency of the Binance ecosystem, used for trading fees, staking, and governance.",
		Hashtags: "#BNB #Binance #CryptoEducation",
	},
	{
		Title:    "BNB Burning Mechanism",
		Content:  "Binance burns BNB tokens quarterly, reducing supply and potentially increasing value over time.",
		Hashtags: "#BNB #Tokenomics #Deflationary",
	},
	{
		Title:    "BSC vs Ethereum",
		Content:  "Binance Smart Chain offers lower fees and faster transactions compared to Ethereum, while maintaining compatibility.",
		Hashtags: "#BSC #Ethereum #DeFi #BNB",
	},
	{
		Title:    "BNB Staking Rewards",
		Content:  "Stake BNB to earn rewards while supporting network security and governance.",
		Hashtags: "#BNB #Staking #Rewards #Governance",
	},
}

// NewsItems is the curated ecosystem news feed, used until a real news
// source is wired in.
var NewsItems = []models.NewsItem{
	{
		Title:    "YZi Labs Launches $1B Builder Fund",
		Summary:  "Binance's venture arm announces massive funding for BNB ecosystem projects",
		Category: "funding",
		Impact:   "high",
	},
	{
		Title:    "BSC Network Upgrades",
		Summary:  "Latest BSC network improvements enhance transaction speed and reduce fees",
		Category: "technology",
		Impact:   "medium",
	},
	{
		Title:    "New DeFi Protocols Launch",
		Summary:  "Several innovative DeFi projects launch on BSC this week",
		Category: "defi",
		Impact:   "medium",
	},
	{
		Title:    "BNB Token Burn",
		Summary:  "Latest quarterly BNB burn reduces circulating supply",
		Category: "tokenomics",
		Impact:   "high",
	},
	{
		Title:    "Cross-Chain Bridge Updates",
		Summary:  "Enhanced cross-chain capabilities for BSC ecosystem",
		Category: "infrastructure",
		Impact:   "medium",
	},
}

// Projects is the curated upcoming-projects list.
var Projects = []models.Project{
	{Name: "Aster", Description: "Multichain DEX enhancing cross-chain trading capabilities", Category: "DeFi", Backer: "YZi Labs", Status: "funded"},
	{Name: "Blum", Description: "AI-integrated DeFi platform optimizing trading strategies", Category: "AI/DeFi", Backer: "YZi Labs", Status: "funded"},
	{Name: "Sahara AI", Description: "AI-driven analytics tool for market insights", Category: "AI", Backer: "YZi Labs", Status: "funded"},
	{Name: "Perena", Description: "Real-world asset tokenization platform", Category: "RWA", Backer: "YZi Labs", Status: "funded"},
	{Name: "Sophon", Description: "Decentralized science initiative for open research", Category: "DeSci", Backer: "YZi Labs", Status: "funded"},
	{Name: "BSC Gaming Hub", Description: "Gaming infrastructure and NFT marketplace", Category: "Gaming", Backer: "Binance", Status: "development"},
	{Name: "Green BSC", Description: "Carbon-neutral blockchain initiatives", Category: "Sustainability", Backer: "Binance", Status: "development"},
}
