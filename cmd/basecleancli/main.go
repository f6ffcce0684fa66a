package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/baseclean/baseclean/internal/assets"
	"github.com/baseclean/baseclean/internal/blacklist"
	"github.com/baseclean/baseclean/internal/burnflow"
	"github.com/baseclean/baseclean/internal/chain"
	"github.com/baseclean/baseclean/internal/config"
	"github.com/baseclean/baseclean/internal/metrics"
	"github.com/baseclean/baseclean/internal/portfolio"
	"github.com/baseclean/baseclean/internal/spamfilter"
)

func main() {
	_ = godotenv.Load()
	_ = godotenv.Overload(".env.local")

	ctx := context.Background()
	cfg := config.Load()
	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	if cfg.MetricsAddr != "" {
		metrics.Serve(cfg.MetricsAddr, reg, logger)
	}

	ec, err := ethclient.Dial(cfg.RPCURL)
	must(err, "dial RPC")
	chainID := big.NewInt(cfg.ChainID)

	if strings.TrimSpace(cfg.BurnerPKHex) == "" {
		die("BURNER_PRIVATE_KEY is empty in env")
	}
	sender, err := chain.NewSender(ec, chainID, cfg.BurnerPKHex, chain.Options{
		Logger:         logger,
		GasBufferPct:   cfg.GasBufferPct,
		ReceiptTimeout: cfg.ReceiptTimeout,
	})
	must(err, "init sender")

	wallet := cfg.Wallet
	if wallet == "" {
		wallet = sender.From().Hex()
	}

	var bl *blacklist.Cache
	if cfg.BlacklistURL != "" {
		bl = blacklist.New(blacklist.NewHTTPProvider(cfg.BlacklistURL, nil), cfg.BlacklistTTL, logger)
	}

	if cfg.PortfolioBaseURL == "" {
		die("PORTFOLIO_URL is empty in env")
	}
	svc := portfolio.NewService(portfolio.NewClient(cfg.PortfolioBaseURL, &http.Client{}), bl, logger)

	fmt.Println("=== CONFIG (.env) ===")
	fmt.Println("RPC_URL            :", cfg.RPCURL)
	fmt.Println("CHAIN_ID           :", chainID.String())
	fmt.Println("PORTFOLIO_URL      :", cfg.PortfolioBaseURL)
	fmt.Println("BLACKLIST_URL      :", cfg.BlacklistURL)
	fmt.Println("BURNER_PRIVATE_KEY :", maskHex(cfg.BurnerPKHex))
	fmt.Println("  -> Wallet        :", wallet)
	fmt.Println("Burn destination   :", chain.DeadAddress.Hex())
	fmt.Println("=====================")

	must(svc.Load(ctx, wallet), "load wallet snapshot")
	if bl != nil {
		m.ObserveBlacklist(bl.Stats())
	}

	rules := spamfilter.DefaultRules()
	rules.LowValueUSD = cfg.LowValueUSD
	filters := assets.DefaultFilters()

	spam, legit := spamfilter.Partition(cfg.ChainID, svc.Tokens(), filters, rules)
	nfts := svc.NFTs()

	fmt.Printf("\n%d tokens look legitimate, %d look like spam, %d NFTs held\n",
		len(legit), len(spam), len(nfts))
	if len(spam) == 0 && len(nfts) == 0 {
		fmt.Println("Nothing to clean up.")
		return
	}

	printSpamTable(cfg.ChainID, spam, filters, rules)
	printNFTs(nfts, len(spam))

	reader := bufio.NewReader(os.Stdin)
	selection := readSelection(reader, spam, nfts)
	if len(selection) == 0 {
		fmt.Println("Nothing selected.")
		return
	}

	flowCtx, err := burnflow.BuildContext(selection)
	must(err, "build burn context")

	printPreflight(ctx, sender, flowCtx)

	fmt.Printf("Burn %d item(s) (%s, ~%d transaction(s))? [y/N] ",
		flowCtx.TotalUniqueItems, flowCtx.BurnType, flowCtx.EstimatedTxCount)
	answer, _ := reader.ReadString('\n')

	session := burnflow.NewSession(burnflow.Options{
		Logger:      logger,
		Wallet:      wallet,
		Refresher:   svc,
		SettleDelay: cfg.SettleDelay,
	})
	must(session.Confirm(flowCtx), "confirm burn")

	if strings.ToLower(strings.TrimSpace(answer)) != "y" {
		session.Cancel()
		fmt.Println("Cancelled.")
		return
	}

	results, err := session.Execute(ctx, sender)
	must(err, "execute burn")

	fmt.Println()
	for _, r := range results {
		switch {
		case r.Success:
			fmt.Printf("  [ok]   %-12s tx=%s\n", r.Item.DisplayName(), r.TxHash)
		case r.IsUserRejection:
			fmt.Printf("  [skip] %-12s cancelled\n", r.Item.DisplayName())
		default:
			fmt.Printf("  [fail] %-12s %s\n", r.Item.DisplayName(), r.ErrorType.Message())
		}
	}

	sum := burnflow.Summarize(results)
	m.ObserveBatch(sum)
	if bl != nil {
		m.ObserveBlacklist(bl.Stats())
	}
	fmt.Printf("\nDone: %d burned, %d failed (%d cancelled) of %d\n",
		sum.Succeeded, sum.Failed, sum.Rejected, sum.Total)
}

func printSpamTable(chainID int64, spam []assets.Token, filters assets.SpamFilters, rules *spamfilter.Rules) {
	if len(spam) == 0 {
		return
	}
	fmt.Println("\n--- Likely spam tokens ---")
	for i, tok := range spam {
		res := spamfilter.Classify(chainID, tok, filters, rules)
		flag := ""
		if tok.Flagged {
			flag = " [community-flagged]"
		}
		fmt.Printf("  %3d. %-10s %-24s $%.4f  signals: %s%s\n",
			i+1, tok.Symbol, truncate(tok.Name, 24), tok.ValueUSD(),
			strings.Join(res.Categories(), ","), flag)
	}
}

func printNFTs(nfts []assets.NFT, offset int) {
	if len(nfts) == 0 {
		return
	}
	fmt.Println("\n--- NFTs ---")
	for i, n := range nfts {
		name := n.Name
		if name == "" {
			name = "#" + n.TokenID
		}
		fmt.Printf("  %3d. %-24s %s x%s\n", offset+i+1, truncate(name, 24), n.Standard, n.Balance)
	}
}

// readSelection accepts "all", "none" or a comma list of indices spanning the
// spam-token and NFT tables.
func readSelection(reader *bufio.Reader, spam []assets.Token, nfts []assets.NFT) []assets.BurnableItem {
	fmt.Print("\nSelect items to burn (all / none / 1,2,5): ")
	line, _ := reader.ReadString('\n')
	line = strings.ToLower(strings.TrimSpace(line))

	var out []assets.BurnableItem
	pick := func(idx int) {
		switch {
		case idx >= 1 && idx <= len(spam):
			out = append(out, assets.TokenItem(spam[idx-1]))
		case idx > len(spam) && idx <= len(spam)+len(nfts):
			out = append(out, assets.NFTItem(nfts[idx-len(spam)-1]))
		}
	}
	switch line {
	case "", "none":
		return nil
	case "all":
		for i := 1; i <= len(spam)+len(nfts); i++ {
			pick(i)
		}
	default:
		for _, part := range strings.Split(line, ",") {
			if idx, err := strconv.Atoi(strings.TrimSpace(part)); err == nil {
				pick(idx)
			}
		}
	}
	return out
}

func printPreflight(ctx context.Context, sender *chain.Sender, flowCtx *burnflow.Context) {
	fmt.Println("\n--- Pre-flight ---")
	fmt.Printf("  items: %d  token value: $%.4f  type: %s\n",
		flowCtx.TotalUniqueItems, flowCtx.TotalTokenValueUSD, flowCtx.BurnType)
	for _, w := range flowCtx.Warnings {
		fmt.Println("  [!]", w)
	}
	for _, item := range flowCtx.Items {
		if ok, reason := sender.Preflight(ctx, item); !ok {
			fmt.Printf("  [!] %s: transfer may be blocked (%s) — burn will still be attempted\n",
				item.DisplayName(), reason)
		}
	}
}
