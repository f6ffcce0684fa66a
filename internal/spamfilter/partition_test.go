package spamfilter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baseclean/baseclean/internal/assets"
)

func TestPartitionSpamFromLegit(t *testing.T) {
	rules := DefaultRules()

	tokenA := assets.Token{
		Address:  "0x9999999999999999999999999999999999999999",
		Symbol:   "FREEAIRDROP",
		Name:     "Free Airdrop",
		Balance:  "500000000000000000", // 0.5 tokens
		Decimals: 18,
		QuoteUSD: 0.01, // $0.005
	}
	tokenB := assets.Token{
		Address:  "0x833589fcd6edb6e08f4c7c32d4f71b54bda02913", // USDC on Base, whitelisted
		Symbol:   "USDC",
		Name:     "USD Coin",
		Balance:  "50000000",
		Decimals: 6,
		QuoteUSD: 1,
	}

	spam, legit := Partition(8453, []assets.Token{tokenA, tokenB}, assets.DefaultFilters(), rules)
	require.Len(t, spam, 1)
	require.Len(t, legit, 1)
	assert.Equal(t, "FREEAIRDROP", spam[0].Symbol)
	assert.Equal(t, "USDC", legit[0].Symbol)

	// TokenA fires both naming and value signals.
	res := Classify(8453, tokenA, assets.DefaultFilters(), rules)
	assert.True(t, res.Naming)
	assert.True(t, res.Value)
}

func TestPartitionPreservesOrder(t *testing.T) {
	rules := DefaultRules()
	mk := func(addr, sym string, quote float64) assets.Token {
		return assets.Token{
			Address: addr, Symbol: sym, Name: sym + " Token",
			Balance: "100000000000000000000", Decimals: 18, QuoteUSD: quote,
		}
	}
	tokens := []assets.Token{
		mk("0x0000000000000000000000000000000000000001", "AAA", 0),
		mk("0x0000000000000000000000000000000000000002", "BBB", 2),
		mk("0x0000000000000000000000000000000000000003", "CCC", 0),
	}
	spam, legit := Partition(8453, tokens, assets.DefaultFilters(), rules)
	require.Len(t, spam, 2)
	assert.Equal(t, "AAA", spam[0].Symbol)
	assert.Equal(t, "CCC", spam[1].Symbol)
	require.Len(t, legit, 1)
	assert.Equal(t, "BBB", legit[0].Symbol)
}
