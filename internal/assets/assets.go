package assets

import (
	"math/big"
	"strings"
	"time"
)

// TokenStandard tags an NFT as ERC-721 or ERC-1155. Exactly one applies.
type TokenStandard string

const (
	ERC721  TokenStandard = "ERC721"
	ERC1155 TokenStandard = "ERC1155"
)

// Token is an immutable snapshot of a fungible holding. Balance is the raw
// integer amount in the smallest denomination, kept as a string so oversized
// balances survive the trip from the provider untruncated.
type Token struct {
	Address  string
	Symbol   string
	Name     string
	Balance  string
	Decimals int
	QuoteUSD float64 // per-token USD rate, 0 when unknown
	LogoURL  string
	Flagged  bool // community blacklist advisory, not part of the spam verdict

	// CreatedAt is the contract creation time when the provider reports it;
	// zero means unknown and disables recency-based heuristics.
	CreatedAt time.Time
}

// Key returns the case-insensitive unique key for the token.
func (t Token) Key() string { return strings.ToLower(strings.TrimSpace(t.Address)) }

// Amount converts the raw balance to whole-token units. Malformed or empty
// balances degrade to 0 rather than erroring.
func (t Token) Amount() float64 {
	raw, ok := new(big.Int).SetString(strings.TrimSpace(t.Balance), 10)
	if !ok || raw.Sign() <= 0 {
		return 0
	}
	dec := t.Decimals
	if dec < 0 {
		dec = 0
	}
	div := new(big.Float).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(dec)), nil))
	out, _ := new(big.Float).Quo(new(big.Float).SetInt(raw), div).Float64()
	return out
}

// ValueUSD is the holding's quoted value. 0 when the rate is unknown.
func (t Token) ValueUSD() float64 { return t.Amount() * t.QuoteUSD }

// RawBalance returns the balance as a big.Int, nil if unparsable.
func (t Token) RawBalance() *big.Int {
	raw, ok := new(big.Int).SetString(strings.TrimSpace(t.Balance), 10)
	if !ok {
		return nil
	}
	return raw
}

// NFT is an immutable snapshot of a non-fungible holding. Balance is "1" for
// ERC-721; for ERC-1155 it is the owned quantity as a decimal string.
type NFT struct {
	Collection  string
	TokenID     string
	Standard    TokenStandard
	Name        string
	Description string
	ImageURL    string
	Balance     string
	FloorUSD    float64
}

// Key combines collection address and token id, case-insensitive on the address.
func (n NFT) Key() string {
	return strings.ToLower(strings.TrimSpace(n.Collection)) + ":" + strings.TrimSpace(n.TokenID)
}

// Quantity returns the owned amount, defaulting to 1 for ERC-721 and for
// malformed balances.
func (n NFT) Quantity() *big.Int {
	if n.Standard != ERC1155 {
		return big.NewInt(1)
	}
	q, ok := new(big.Int).SetString(strings.TrimSpace(n.Balance), 10)
	if !ok || q.Sign() <= 0 {
		return big.NewInt(1)
	}
	return q
}

// SpamFilters toggles the independent heuristic categories. Categories compose
// by OR; there is no ordering dependency between them.
type SpamFilters struct {
	NamingIssues       bool
	ValueIssues        bool
	AirdropSignals     bool
	HighRiskIndicators bool
}

// DefaultFilters enables every category.
func DefaultFilters() SpamFilters {
	return SpamFilters{
		NamingIssues:       true,
		ValueIssues:        true,
		AirdropSignals:     true,
		HighRiskIndicators: true,
	}
}

// Any reports whether at least one category is enabled.
func (f SpamFilters) Any() bool {
	return f.NamingIssues || f.ValueIssues || f.AirdropSignals || f.HighRiskIndicators
}

// ItemKind discriminates the BurnableItem union.
type ItemKind string

const (
	KindToken ItemKind = "token"
	KindNFT   ItemKind = "nft"
)

// BurnableItem is the tagged union consumed by the burn orchestrator. Exactly
// one of Token/NFT is set, matching Kind. Quantity optionally narrows an
// ERC-1155 burn to fewer than the full holding; empty means burn everything.
type BurnableItem struct {
	Kind     ItemKind
	Token    *Token
	NFT      *NFT
	Quantity string
}

func TokenItem(t Token) BurnableItem { return BurnableItem{Kind: KindToken, Token: &t} }
func NFTItem(n NFT) BurnableItem     { return BurnableItem{Kind: KindNFT, NFT: &n} }

// Key returns the union member's unique key.
func (b BurnableItem) Key() string {
	switch b.Kind {
	case KindToken:
		if b.Token != nil {
			return b.Token.Key()
		}
	case KindNFT:
		if b.NFT != nil {
			return b.NFT.Key()
		}
	}
	return ""
}

// DisplayName is a short human label for progress reporting.
func (b BurnableItem) DisplayName() string {
	switch b.Kind {
	case KindToken:
		if b.Token != nil {
			if b.Token.Symbol != "" {
				return b.Token.Symbol
			}
			return b.Token.Name
		}
	case KindNFT:
		if b.NFT != nil {
			if b.NFT.Name != "" {
				return b.NFT.Name
			}
			return "#" + b.NFT.TokenID
		}
	}
	return ""
}

// ValueUSD is the quoted value of the selected amount. NFTs use floor price.
func (b BurnableItem) ValueUSD() float64 {
	switch b.Kind {
	case KindToken:
		if b.Token != nil {
			return b.Token.ValueUSD()
		}
	case KindNFT:
		if b.NFT != nil {
			return b.NFT.FloorUSD
		}
	}
	return 0
}
