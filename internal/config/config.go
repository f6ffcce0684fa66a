package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Settings keeps all configuration options.
type Settings struct {
	RPCURL           string
	ChainID          int64
	PortfolioBaseURL string
	BlacklistURL     string
	BlacklistTTL     time.Duration
	BurnerPKHex      string
	Wallet           string

	GasBufferPct   int64
	ReceiptTimeout time.Duration
	SettleDelay    time.Duration

	LowValueUSD float64
	LogLevel    string
	MetricsAddr string // empty disables the scrape listener
}

// Load reads settings from environment supporting both UPPER_CASE and lower_case keys.
func Load() Settings {
	get := func(keys []string, def string) string {
		for _, k := range keys {
			if v := strings.TrimSpace(os.Getenv(k)); v != "" {
				return v
			}
		}
		return def
	}
	getInt64 := func(keys []string, def int64) int64 {
		s := get(keys, "")
		if s == "" {
			return def
		}
		if n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err == nil {
			return n
		}
		return def
	}
	getFloat := func(keys []string, def float64) float64 {
		s := get(keys, "")
		if s == "" {
			return def
		}
		if n, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return n
		}
		return def
	}
	getDuration := func(keys []string, def time.Duration) time.Duration {
		s := get(keys, "")
		if s == "" {
			return def
		}
		if d, err := time.ParseDuration(strings.TrimSpace(s)); err == nil {
			return d
		}
		return def
	}

	st := Settings{}
	st.RPCURL = get([]string{"rpc_url", "RPC_URL"}, "https://mainnet.base.org")
	st.ChainID = getInt64([]string{"chain_id", "CHAIN_ID"}, 8453)
	st.PortfolioBaseURL = get([]string{"portfolio_url", "PORTFOLIO_URL"}, "")
	st.BlacklistURL = get([]string{"blacklist_url", "BLACKLIST_URL"}, "")
	st.BlacklistTTL = getDuration([]string{"blacklist_ttl", "BLACKLIST_TTL"}, 24*time.Hour)
	st.BurnerPKHex = get([]string{"burner_private_key", "BURNER_PRIVATE_KEY"}, "")
	st.Wallet = get([]string{"wallet", "WALLET"}, "")

	st.GasBufferPct = getInt64([]string{"gas_buffer_pct", "GAS_BUFFER_PCT"}, 10)
	st.ReceiptTimeout = getDuration([]string{"receipt_timeout", "RECEIPT_TIMEOUT"}, 90*time.Second)
	st.SettleDelay = getDuration([]string{"settle_delay", "SETTLE_DELAY"}, 2*time.Second)

	st.LowValueUSD = getFloat([]string{"low_value_usd", "LOW_VALUE_USD"}, 1.0)
	st.LogLevel = get([]string{"log_level", "LOG_LEVEL"}, "info")
	st.MetricsAddr = get([]string{"metrics_addr", "METRICS_ADDR"}, "127.0.0.1:9464")

	return st
}
