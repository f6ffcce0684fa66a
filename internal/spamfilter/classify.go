package spamfilter

import (
	"math"
	"strings"
	"time"

	"github.com/baseclean/baseclean/internal/assets"
)

// Result carries the verdict plus the per-category breakdown the UI shows as
// diagnostics. All enabled categories are evaluated even after one fires.
type Result struct {
	Spam        bool
	Whitelisted bool

	Naming   bool
	Value    bool
	Airdrop  bool
	HighRisk bool
}

// Categories lists the signal categories that fired, for display.
func (r Result) Categories() []string {
	var out []string
	if r.Naming {
		out = append(out, "naming")
	}
	if r.Value {
		out = append(out, "value")
	}
	if r.Airdrop {
		out = append(out, "airdrop")
	}
	if r.HighRisk {
		out = append(out, "high-risk")
	}
	return out
}

// Classify evaluates the heuristic categories enabled by filters against one
// token snapshot. Pure and deterministic: no I/O, never errors; malformed
// numeric inputs degrade to zero. The allow-list check is absolute and
// precedes everything else.
func Classify(chainID int64, t assets.Token, filters assets.SpamFilters, rules *Rules) Result {
	if rules.Whitelist[whitelistKey(chainID, t.Address)] || rules.SymbolAliases[strings.ToLower(strings.TrimSpace(t.Symbol))] {
		return Result{Whitelisted: true}
	}

	var res Result
	if filters.NamingIssues {
		res.Naming = namingIssues(t, rules)
	}
	if filters.ValueIssues {
		res.Value = valueIssues(t, rules)
	}
	if filters.AirdropSignals {
		res.Airdrop = airdropSignals(t, rules)
	}
	if filters.HighRiskIndicators {
		res.HighRisk = highRiskIndicators(t, rules, res)
	}
	res.Spam = res.Naming || res.Value || res.Airdrop || res.HighRisk
	return res
}

func namingIssues(t assets.Token, rules *Rules) bool {
	name := strings.TrimSpace(t.Name)
	symbol := strings.TrimSpace(t.Symbol)

	if len(name) < rules.MinNameLen || len(name) > rules.MaxNameLen {
		return true
	}
	if len(symbol) < rules.MinNameLen || len(symbol) > rules.MaxSymbolLen {
		return true
	}
	lowerBoth := strings.ToLower(name + " " + symbol)
	for _, kw := range rules.SuspiciousKeywords {
		if strings.Contains(lowerBoth, kw) {
			return true
		}
	}
	both := name + " " + symbol
	for _, p := range rules.SuspiciousPatterns {
		if p.MatchString(both) {
			return true
		}
	}
	return false
}

func valueIssues(t assets.Token, rules *Rules) bool {
	if t.ValueUSD() < rules.LowValueUSD {
		return true
	}
	if t.QuoteUSD < rules.NearZeroQuoteUSD {
		return true
	}
	return rules.SuspiciousDecimals[t.Decimals]
}

func airdropSignals(t assets.Token, rules *Rules) bool {
	amount := t.Amount()
	if amount <= 0 {
		return false
	}
	whole := math.Round(amount)
	if whole >= math.MaxInt64 {
		// Beyond int64 the conversion below is undefined; amounts this large
		// carry no meme or round-number meaning anyway.
		return false
	}
	if math.Abs(amount-whole) <= rules.RoundTolerance {
		n := int64(whole)
		if rules.MemeAmounts[n] {
			return true
		}
		if rules.RoundStep > 0 && whole >= rules.RoundAmountMin && n%rules.RoundStep == 0 {
			return true
		}
	}
	return false
}

// highRiskIndicators needs the other categories' outcomes: a freshly created
// contract is only damning when enough other factors already point at it.
func highRiskIndicators(t assets.Token, rules *Rules, sofar Result) bool {
	if rules.BlacklistedAddresses[t.Key()] {
		return true
	}
	if t.CreatedAt.IsZero() {
		return false
	}
	if time.Since(t.CreatedAt) > rules.RecentCreationWindow {
		return false
	}
	factors := 0
	if sofar.Naming {
		factors++
	}
	if sofar.Value {
		factors++
	}
	if sofar.Airdrop {
		factors++
	}
	return factors >= rules.MinSuspicionFactors
}
