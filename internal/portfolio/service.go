package portfolio

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/baseclean/baseclean/internal/assets"
	"github.com/baseclean/baseclean/internal/blacklist"
)

// Service holds the latest wallet snapshot and refreshes it wholesale after
// a burn batch with at least one success. It satisfies the orchestrator's
// Refresher dependency.
type Service struct {
	client    *Client
	blacklist *blacklist.Cache // optional advisory annotation
	logger    *slog.Logger

	mu     sync.RWMutex
	tokens []assets.Token
	nfts   []assets.NFT
}

func NewService(client *Client, bl *blacklist.Cache, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{client: client, blacklist: bl, logger: logger.With("component", "portfolio")}
}

// Load fetches tokens and NFTs for the wallet and annotates tokens with the
// community-blacklist advisory flag.
func (s *Service) Load(ctx context.Context, wallet string) error {
	tokens, err := s.client.FetchTokens(ctx, wallet)
	if err != nil {
		return fmt.Errorf("fetch tokens: %w", err)
	}
	nfts, err := s.client.FetchNFTs(ctx, wallet)
	if err != nil {
		return fmt.Errorf("fetch nfts: %w", err)
	}
	if s.blacklist != nil {
		tokens = s.blacklist.Annotate(ctx, tokens)
	}
	s.mu.Lock()
	s.tokens, s.nfts = tokens, nfts
	s.mu.Unlock()
	s.logger.Info("wallet snapshot loaded", "wallet", wallet, "tokens", len(tokens), "nfts", len(nfts))
	return nil
}

// RefreshBalances re-fetches the snapshot. Called by the burn session after
// a successful batch.
func (s *Service) RefreshBalances(ctx context.Context, wallet string) error {
	return s.Load(ctx, wallet)
}

// Tokens returns a copy of the current token snapshot.
func (s *Service) Tokens() []assets.Token {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]assets.Token, len(s.tokens))
	copy(out, s.tokens)
	return out
}

// NFTs returns a copy of the current NFT snapshot.
func (s *Service) NFTs() []assets.NFT {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]assets.NFT, len(s.nfts))
	copy(out, s.nfts)
	return out
}
