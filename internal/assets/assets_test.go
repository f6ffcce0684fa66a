package assets

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenAmount(t *testing.T) {
	tok := Token{Balance: "1500000000000000000", Decimals: 18}
	assert.InDelta(t, 1.5, tok.Amount(), 1e-9)

	tok = Token{Balance: "250", Decimals: 2}
	assert.InDelta(t, 2.5, tok.Amount(), 1e-9)
}

func TestTokenAmountDegradesToZero(t *testing.T) {
	for _, bal := range []string{"", "not-a-number", "-5", "0", "1e18"} {
		tok := Token{Balance: bal, Decimals: 18}
		assert.Zero(t, tok.Amount(), "balance %q", bal)
	}
}

func TestTokenValueUSD(t *testing.T) {
	tok := Token{Balance: "2000000000000000000", Decimals: 18, QuoteUSD: 3.25}
	assert.InDelta(t, 6.5, tok.ValueUSD(), 1e-9)

	tok.QuoteUSD = 0
	assert.Zero(t, tok.ValueUSD())
}

func TestKeysAreCaseInsensitive(t *testing.T) {
	a := Token{Address: "0xAbCdEf0000000000000000000000000000000001"}
	b := Token{Address: "0xabcdef0000000000000000000000000000000001"}
	assert.Equal(t, a.Key(), b.Key())

	n1 := NFT{Collection: "0xC0FFEE0000000000000000000000000000000000", TokenID: "7"}
	n2 := NFT{Collection: "0xc0ffee0000000000000000000000000000000000", TokenID: "7"}
	assert.Equal(t, n1.Key(), n2.Key())
	n3 := NFT{Collection: "0xc0ffee0000000000000000000000000000000000", TokenID: "8"}
	assert.NotEqual(t, n1.Key(), n3.Key())
}

func TestNFTQuantity(t *testing.T) {
	n := NFT{Standard: ERC721, Balance: "5"}
	assert.Equal(t, big.NewInt(1), n.Quantity())

	n = NFT{Standard: ERC1155, Balance: "12"}
	assert.Equal(t, big.NewInt(12), n.Quantity())

	n = NFT{Standard: ERC1155, Balance: "junk"}
	assert.Equal(t, big.NewInt(1), n.Quantity())
}

func TestBurnableItemUnion(t *testing.T) {
	tok := Token{Address: "0xAA", Symbol: "SPAM", Balance: "10", Decimals: 0, QuoteUSD: 0.01}
	item := TokenItem(tok)
	require.Equal(t, KindToken, item.Kind)
	assert.Equal(t, "0xaa", item.Key())
	assert.Equal(t, "SPAM", item.DisplayName())
	assert.InDelta(t, 0.1, item.ValueUSD(), 1e-9)

	nft := NFT{Collection: "0xBB", TokenID: "7", Standard: ERC721, FloorUSD: 2}
	item = NFTItem(nft)
	require.Equal(t, KindNFT, item.Kind)
	assert.Equal(t, "0xbb:7", item.Key())
	assert.Equal(t, "#7", item.DisplayName())
	assert.InDelta(t, 2.0, item.ValueUSD(), 1e-9)
}

func TestDefaultFilters(t *testing.T) {
	f := DefaultFilters()
	assert.True(t, f.Any())
	assert.True(t, f.NamingIssues && f.ValueIssues && f.AirdropSignals && f.HighRiskIndicators)
	assert.False(t, SpamFilters{}.Any())
}
