package spamfilter

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Rules is the static, versioned heuristic configuration. One instance is
// built at startup and shared read-only across all classifications.
type Rules struct {
	// Naming bounds.
	MinNameLen   int
	MaxNameLen   int
	MaxSymbolLen int

	// Case-insensitive substrings that mark a name/symbol as promotional.
	SuspiciousKeywords []string
	// Compiled patterns: URLs, domain-like strings, telegram links, digit
	// runs, punctuation runs, caps runs, "500x"-style multipliers,
	// chain-name-as-marketing.
	SuspiciousPatterns []*regexp.Regexp

	// Value thresholds.
	LowValueUSD        float64
	NearZeroQuoteUSD   float64
	SuspiciousDecimals map[int]bool

	// Airdrop amounts.
	MemeAmounts    map[int64]bool
	RoundAmountMin float64
	RoundStep      int64
	RoundTolerance float64

	// High-risk indicators.
	BlacklistedAddresses map[string]bool
	RecentCreationWindow time.Duration
	MinSuspicionFactors  int

	// Allow-list: "chainid:address" (address lower-cased) plus bare symbol
	// aliases. Whitelisted tokens are never spam, full stop.
	Whitelist     map[string]bool
	SymbolAliases map[string]bool
}

// whitelistKey builds the chain-scoped allow-list key.
func whitelistKey(chainID int64, address string) string {
	return fmt.Sprintf("%d:%s", chainID, strings.ToLower(strings.TrimSpace(address)))
}

var defaultPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)https?://|www\.`),
	regexp.MustCompile(`(?i)[a-z0-9-]+\.(com|net|org|io|xyz|fi|app|site|top|vip|club|lol)\b`),
	regexp.MustCompile(`(?i)t\.me/`),
	regexp.MustCompile(`\d{5,}`),
	regexp.MustCompile(`[!$*#@%]{2,}`),
	regexp.MustCompile(`[A-Z]{10,}`),
	regexp.MustCompile(`(?i)\b\d+x\b`),
	regexp.MustCompile(`(?i)\b(base|eth|ethereum|arbitrum|optimism)[ _-]?(airdrop|reward|rewards|gift|bonus|claim|drop)\b`),
}

var defaultKeywords = []string{
	"claim", "airdrop", "reward", "visit", "redeem", "voucher",
	"free", "bonus", "gift", "prize", "winner", "promo", "giveaway",
	"whitelist spot", "mystery box",
}

// Base mainnet blue chips. Keyed by whitelistKey.
var defaultWhitelist = map[string]bool{
	whitelistKey(8453, "0x833589fcd6edb6e08f4c7c32d4f71b54bda02913"): true, // USDC
	whitelistKey(8453, "0x4200000000000000000000000000000000000006"): true, // WETH
	whitelistKey(8453, "0x50c5725949a6f0c72e6c4a641f24049a917db0cb"): true, // DAI
	whitelistKey(8453, "0x2ae3f1ec7f1f5012cfeab0185bfc7aa3cf0dec22"): true, // cbETH
	whitelistKey(8453, "0xc1cba3fcea344f92d9239c08c0568f6f2f0ee452"): true, // wstETH
	whitelistKey(8453, "0xd9aaec86b65d86f6a7b5b1b0c42ffa531710b6ca"): true, // USDbC
}

// DefaultRules returns the shipped heuristic set.
func DefaultRules() *Rules {
	return &Rules{
		MinNameLen:   2,
		MaxNameLen:   20,
		MaxSymbolLen: 8,

		SuspiciousKeywords: defaultKeywords,
		SuspiciousPatterns: defaultPatterns,

		LowValueUSD:        1.0,
		NearZeroQuoteUSD:   1e-8,
		SuspiciousDecimals: map[int]bool{0: true, 1: true, 2: true},

		MemeAmounts: map[int64]bool{
			69: true, 420: true, 666: true, 777: true, 1337: true,
			4200: true, 8008: true, 42069: true, 69420: true, 80085: true,
		},
		RoundAmountMin: 10_000,
		RoundStep:      10_000,
		RoundTolerance: 0.5,

		BlacklistedAddresses: map[string]bool{},
		RecentCreationWindow: 30 * 24 * time.Hour,
		MinSuspicionFactors:  2,

		Whitelist: defaultWhitelist,
		SymbolAliases: map[string]bool{
			"eth": true, "weth": true, "usdc": true, "usdbc": true,
			"dai": true, "cbeth": true, "wsteth": true, "usdt": true,
		},
	}
}
