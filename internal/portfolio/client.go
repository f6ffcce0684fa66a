package portfolio

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/baseclean/baseclean/internal/assets"
)

// Client reads wallet holdings from the balance/metadata provider.
type Client struct {
	base   string
	client *http.Client
}

func NewClient(base string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{base: strings.TrimRight(base, "/"), client: httpClient}
}

type tokenEntry struct {
	Address   string  `json:"address"`
	Symbol    string  `json:"symbol"`
	Name      string  `json:"name"`
	Balance   string  `json:"balance"`
	Decimals  int     `json:"decimals"`
	QuoteUSD  float64 `json:"quoteUsd"`
	LogoURL   string  `json:"logoUrl"`
	CreatedAt string  `json:"createdAt"` // RFC3339, optional
}

type nftEntry struct {
	Collection  string  `json:"collection"`
	TokenID     string  `json:"tokenId"`
	Standard    string  `json:"standard"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	ImageURL    string  `json:"imageUrl"`
	Balance     string  `json:"balance"`
	FloorUSD    float64 `json:"floorUsd"`
}

// FetchTokens returns the wallet's fungible holdings.
func (c *Client) FetchTokens(ctx context.Context, wallet string) ([]assets.Token, error) {
	var out struct {
		Tokens []tokenEntry `json:"tokens"`
	}
	if err := c.getJSON(ctx, "/v1/wallets/"+url.PathEscape(wallet)+"/tokens", &out); err != nil {
		return nil, err
	}
	tokens := make([]assets.Token, 0, len(out.Tokens))
	for _, e := range out.Tokens {
		tok := assets.Token{
			Address:  e.Address,
			Symbol:   e.Symbol,
			Name:     e.Name,
			Balance:  e.Balance,
			Decimals: e.Decimals,
			QuoteUSD: e.QuoteUSD,
			LogoURL:  e.LogoURL,
		}
		if e.CreatedAt != "" {
			if ts, err := time.Parse(time.RFC3339, e.CreatedAt); err == nil {
				tok.CreatedAt = ts
			}
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}

// FetchNFTs returns the wallet's non-fungible holdings.
func (c *Client) FetchNFTs(ctx context.Context, wallet string) ([]assets.NFT, error) {
	var out struct {
		NFTs []nftEntry `json:"nfts"`
	}
	if err := c.getJSON(ctx, "/v1/wallets/"+url.PathEscape(wallet)+"/nfts", &out); err != nil {
		return nil, err
	}
	nfts := make([]assets.NFT, 0, len(out.NFTs))
	for _, e := range out.NFTs {
		std := assets.TokenStandard(strings.ToUpper(strings.TrimSpace(e.Standard)))
		if std != assets.ERC1155 {
			std = assets.ERC721
		}
		balance := e.Balance
		if balance == "" {
			balance = "1"
		}
		nfts = append(nfts, assets.NFT{
			Collection:  e.Collection,
			TokenID:     e.TokenID,
			Standard:    std,
			Name:        e.Name,
			Description: e.Description,
			ImageURL:    e.ImageURL,
			Balance:     balance,
			FloorUSD:    e.FloorUSD,
		})
	}
	return nfts, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("portfolio: http %d: %s", resp.StatusCode, string(b))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
