package portfolio

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceLoadAndRefresh(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/v1/wallets/0xwallet/tokens" {
			w.Write([]byte(`{"tokens":[{"address":"0xAAA","symbol":"TOK","balance":"1","decimals":0}]}`))
			return
		}
		w.Write([]byte(`{"nfts":[]}`))
	}))
	defer srv.Close()

	svc := NewService(NewClient(srv.URL, nil), nil, nil)
	require.NoError(t, svc.Load(context.Background(), "0xwallet"))
	require.Len(t, svc.Tokens(), 1)
	assert.Empty(t, svc.NFTs())

	// Refresh is a wholesale re-fetch.
	require.NoError(t, svc.RefreshBalances(context.Background(), "0xwallet"))
	assert.EqualValues(t, 4, hits.Load())

	// Snapshots are copies; mutating one must not leak back.
	tokens := svc.Tokens()
	tokens[0].Symbol = "MUTATED"
	assert.Equal(t, "TOK", svc.Tokens()[0].Symbol)
}
