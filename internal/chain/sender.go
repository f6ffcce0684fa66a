package chain

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/holiman/uint256"

	"github.com/baseclean/baseclean/internal/assets"
)

// DeadAddress is the fixed, unspendable destination for every burn,
// identical across asset types.
var DeadAddress = common.HexToAddress("0x000000000000000000000000000000000000dEaD")

// BaseChainID is the Base mainnet chain id.
const BaseChainID int64 = 8453

const (
	fallbackTransferGas = uint64(90_000)
	receiptPollInterval = 2 * time.Second
)

// Options tunes the sender.
type Options struct {
	Logger         *slog.Logger
	Destination    common.Address // zero value means DeadAddress
	GasBufferPct   int64
	ReceiptTimeout time.Duration
}

// Sender signs and submits one burn transfer at a time against a connected
// node and waits for the receipt before returning. It implements the
// transaction capability the burn orchestrator depends on.
type Sender struct {
	ec      *ethclient.Client
	chainID *big.Int
	priv    *ecdsa.PrivateKey
	from    common.Address
	dest    common.Address
	logger  *slog.Logger

	gasBufferPct   int64
	receiptTimeout time.Duration
}

func NewSender(ec *ethclient.Client, chainID *big.Int, privHex string, opts Options) (*Sender, error) {
	if ec == nil {
		return nil, errors.New("chain: nil ethclient")
	}
	if chainID == nil {
		chainID = big.NewInt(BaseChainID)
	}
	h := strings.TrimPrefix(strings.TrimSpace(privHex), "0x")
	if h == "" {
		return nil, errors.New("chain: burner private key is empty")
	}
	priv, err := crypto.HexToECDSA(h)
	if err != nil {
		return nil, fmt.Errorf("chain: parse private key: %w", err)
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	dest := opts.Destination
	if dest == (common.Address{}) {
		dest = DeadAddress
	}
	if opts.GasBufferPct <= 0 {
		opts.GasBufferPct = 10
	}
	if opts.ReceiptTimeout <= 0 {
		opts.ReceiptTimeout = 90 * time.Second
	}
	return &Sender{
		ec:             ec,
		chainID:        chainID,
		priv:           priv,
		from:           crypto.PubkeyToAddress(priv.PublicKey),
		dest:           dest,
		logger:         opts.Logger.With("component", "chain"),
		gasBufferPct:   opts.GasBufferPct,
		receiptTimeout: opts.ReceiptTimeout,
	}, nil
}

// From returns the burner wallet address.
func (s *Sender) From() common.Address { return s.from }

// Send submits one transfer of the item to the burn destination and waits
// for the receipt. The amount for fungible tokens is clamped to the live
// on-chain balance so a stale snapshot never causes a revert.
func (s *Sender) Send(ctx context.Context, item assets.BurnableItem) (string, *big.Int, error) {
	target, data, err := s.buildCall(ctx, item)
	if err != nil {
		return "", nil, err
	}

	gas, err := estimateGasWithRetry(ctx, s.ec, ethereum.CallMsg{From: s.from, To: &target, Data: data})
	if err != nil {
		// Let the transaction carry a generous fixed limit; a true revert
		// still surfaces via the receipt.
		s.logger.Warn("gas estimate failed, using fallback", "error", err, "gas", fallbackTransferGas)
		gas = fallbackTransferGas
	}
	gas = gas * uint64(100+s.gasBufferPct) / 100

	nonce, err := s.ec.PendingNonceAt(ctx, s.from)
	if err != nil {
		return "", nil, fmt.Errorf("nonce: %w", err)
	}
	head, err := s.ec.HeaderByNumber(ctx, nil)
	if err != nil {
		return "", nil, fmt.Errorf("head: %w", err)
	}
	baseFee := head.BaseFee
	if baseFee == nil {
		baseFee = big.NewInt(0)
	}
	tip, err := s.ec.SuggestGasTipCap(ctx)
	if err != nil {
		tip = big.NewInt(1_000_000) // 0.001 gwei floor, plenty on Base
	}
	feeCap := new(big.Int).Add(new(big.Int).Mul(baseFee, big.NewInt(2)), tip)

	tx := &types.DynamicFeeTx{
		ChainID:   s.chainID,
		Nonce:     nonce,
		GasTipCap: tip,
		GasFeeCap: feeCap,
		Gas:       gas,
		To:        &target,
		Value:     big.NewInt(0),
		Data:      data,
	}
	signed, err := types.SignNewTx(s.priv, types.LatestSignerForChainID(s.chainID), tx)
	if err != nil {
		return "", nil, fmt.Errorf("sign: %w", err)
	}
	if err := s.ec.SendTransaction(ctx, signed); err != nil {
		return "", nil, err
	}
	hash := signed.Hash()
	s.logger.Info("burn tx submitted", "tx", hash.Hex(), "to", target.Hex(), "gas", gas)

	receipt, err := s.waitMined(ctx, hash)
	if err != nil {
		return hash.Hex(), nil, err
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return hash.Hex(), nil, fmt.Errorf("execution reverted: tx %s failed on-chain", hash.Hex())
	}
	gasCost := new(big.Int).Mul(new(big.Int).SetUint64(receipt.GasUsed), receipt.EffectiveGasPrice)
	return hash.Hex(), gasCost, nil
}

// buildCall resolves the target contract and calldata for one item.
func (s *Sender) buildCall(ctx context.Context, item assets.BurnableItem) (common.Address, []byte, error) {
	switch item.Kind {
	case assets.KindToken:
		if item.Token == nil {
			return common.Address{}, nil, errors.New("chain: token item without token")
		}
		token := common.HexToAddress(item.Token.Address)
		amount := item.Token.RawBalance()
		if amount == nil || amount.Sign() <= 0 {
			return common.Address{}, nil, errors.New("chain: token has no balance to burn")
		}
		if live, err := s.liveBalance(ctx, token); err == nil && live.Cmp(amount) < 0 {
			s.logger.Warn("snapshot exceeds live balance, clamping",
				"token", item.Token.Symbol, "snapshot", amount.String(), "live", live.String())
			amount = live
		}
		if amount.Sign() <= 0 {
			return common.Address{}, nil, errors.New("chain: token has no balance to burn")
		}
		a, overflow := uint256.FromBig(amount)
		if overflow {
			return common.Address{}, nil, errors.New("chain: balance exceeds uint256")
		}
		return token, EncodeERC20Transfer(s.dest, a), nil

	case assets.KindNFT:
		if item.NFT == nil {
			return common.Address{}, nil, errors.New("chain: nft item without nft")
		}
		coll := common.HexToAddress(item.NFT.Collection)
		id, ok := new(big.Int).SetString(strings.TrimSpace(item.NFT.TokenID), 10)
		if !ok {
			return common.Address{}, nil, fmt.Errorf("chain: bad token id %q", item.NFT.TokenID)
		}
		tokenID, overflow := uint256.FromBig(id)
		if overflow {
			return common.Address{}, nil, errors.New("chain: token id exceeds uint256")
		}
		if item.NFT.Standard == assets.ERC1155 {
			qty := item.NFT.Quantity()
			if q, ok := new(big.Int).SetString(strings.TrimSpace(item.Quantity), 10); ok && q.Sign() > 0 && q.Cmp(qty) < 0 {
				qty = q
			}
			amount, overflow := uint256.FromBig(qty)
			if overflow {
				return common.Address{}, nil, errors.New("chain: quantity exceeds uint256")
			}
			return coll, EncodeERC1155Transfer(s.from, s.dest, tokenID, amount), nil
		}
		return coll, EncodeERC721Transfer(s.from, s.dest, tokenID), nil
	}
	return common.Address{}, nil, fmt.Errorf("chain: unknown item kind %q", item.Kind)
}

func (s *Sender) liveBalance(ctx context.Context, token common.Address) (*big.Int, error) {
	res, err := callWithRetry(ctx, s.ec, ethereum.CallMsg{To: &token, Data: EncodeBalanceOf(s.from)})
	if err != nil {
		return nil, err
	}
	if len(res) < 32 {
		return big.NewInt(0), nil
	}
	return new(big.Int).SetBytes(res[len(res)-32:]), nil
}

// waitMined polls for the receipt until it appears or the timeout lapses.
// An explicit receipt wait replaces the flat settle delay the original web
// client used between submissions.
func (s *Sender) waitMined(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	deadline := time.Now().Add(s.receiptTimeout)
	ticker := time.NewTicker(receiptPollInterval)
	defer ticker.Stop()
	for {
		receipt, err := s.ec.TransactionReceipt(ctx, hash)
		if err == nil && receipt != nil {
			return receipt, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("timed out waiting for receipt of %s", hash.Hex())
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

// Preflight statically calls the token's transfer to predict whether a burn
// would be blocked. Spam contracts often revert or return false on purpose;
// the caller surfaces this as a warning and still lets the user try.
func (s *Sender) Preflight(ctx context.Context, item assets.BurnableItem) (ok bool, reason string) {
	if item.Kind != assets.KindToken || item.Token == nil {
		return true, ""
	}
	token := common.HexToAddress(item.Token.Address)
	amount := item.Token.RawBalance()
	if amount == nil || amount.Sign() <= 0 {
		return false, "no balance"
	}
	a, overflow := uint256.FromBig(amount)
	if overflow {
		return false, "balance exceeds uint256"
	}
	msg := ethereum.CallMsg{From: s.from, To: &token, Data: EncodeERC20Transfer(s.dest, a), Value: big.NewInt(0)}

	ret, err := callWithRetry(ctx, s.ec, msg)
	if err != nil {
		return false, revertReason(err)
	}
	// Pre-ERC20 tokens return no data; fall back to a gas estimate probe.
	if len(ret) == 0 {
		if _, err := estimateGasWithRetry(ctx, s.ec, msg); err != nil {
			return false, "transfer would revert"
		}
		return true, ""
	}
	if ret[len(ret)-1] == 1 {
		return true, ""
	}
	return false, "transfer() returned false"
}

func revertReason(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, "execution reverted"); i >= 0 {
		return msg[i:]
	}
	return msg
}
