package burnflow

import (
	"strings"

	"github.com/baseclean/baseclean/internal/assets"
)

// MaxBatchSize mirrors MAX_BATCH_SIZE on the BaseClean deployer contract and
// is authoritative: larger selections are rejected before any external call.
const MaxBatchSize = 100

// HighValueThresholdUSD marks a selection as worth a louder confirmation.
const HighValueThresholdUSD = 0.10

// BurnType classifies the composition of a selection.
type BurnType string

const (
	BurnTokensOnly BurnType = "tokens-only"
	BurnNFTsOnly   BurnType = "nfts-only"
	BurnMixed      BurnType = "mixed"
)

// Context is the pre-flight aggregate computed once per confirmation. It is
// derived and read-only; callers rebuild it if the selection changes.
type Context struct {
	Items  []assets.BurnableItem
	Tokens []assets.Token
	NFTs   []assets.NFT

	TotalUniqueItems   int
	TotalTokenValueUSD float64
	HasHighValue       bool
	HasNativeToken     bool
	NFTsByCollection   map[string][]assets.NFT
	BurnType           BurnType

	// EstimatedTxCount is at least TotalUniqueItems; direct transfers are one
	// transaction per item but multi-step items may raise it.
	EstimatedTxCount int

	Warnings []string
}

// nativeAliases are symbols treated as the chain's native asset for the
// HasNativeToken warning flag.
var nativeAliases = map[string]bool{"eth": true, "weth": true}

// BuildContext aggregates a selection into a Context. Duplicate keys are
// collapsed, keeping the first occurrence; order is otherwise preserved.
func BuildContext(selection []assets.BurnableItem) (*Context, error) {
	if len(selection) == 0 {
		return nil, ErrEmptySelection
	}

	seen := make(map[string]bool, len(selection))
	items := make([]assets.BurnableItem, 0, len(selection))
	for _, it := range selection {
		k := it.Key()
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		items = append(items, it)
	}
	if len(items) == 0 {
		return nil, ErrEmptySelection
	}
	if len(items) > MaxBatchSize {
		return nil, ErrBatchTooLarge
	}

	ctx := &Context{
		Items:            items,
		TotalUniqueItems: len(items),
		NFTsByCollection: make(map[string][]assets.NFT),
	}
	for _, it := range items {
		switch it.Kind {
		case assets.KindToken:
			tok := *it.Token
			ctx.Tokens = append(ctx.Tokens, tok)
			ctx.TotalTokenValueUSD += tok.ValueUSD()
			if nativeAliases[strings.ToLower(strings.TrimSpace(tok.Symbol))] {
				ctx.HasNativeToken = true
			}
		case assets.KindNFT:
			nft := *it.NFT
			ctx.NFTs = append(ctx.NFTs, nft)
			coll := strings.ToLower(strings.TrimSpace(nft.Collection))
			ctx.NFTsByCollection[coll] = append(ctx.NFTsByCollection[coll], nft)
		}
	}

	switch {
	case len(ctx.NFTs) == 0:
		ctx.BurnType = BurnTokensOnly
	case len(ctx.Tokens) == 0:
		ctx.BurnType = BurnNFTsOnly
	default:
		ctx.BurnType = BurnMixed
	}

	ctx.HasHighValue = ctx.TotalTokenValueUSD > HighValueThresholdUSD
	// Direct transfer to the dead address: one transaction per item.
	ctx.EstimatedTxCount = len(items)

	if ctx.HasHighValue {
		ctx.Warnings = append(ctx.Warnings, "selection contains assets with non-trivial value")
	}
	if ctx.HasNativeToken {
		ctx.Warnings = append(ctx.Warnings, "selection contains a native-asset token")
	}
	return ctx, nil
}
