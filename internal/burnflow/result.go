package burnflow

import (
	"math/big"
	"time"

	"github.com/baseclean/baseclean/internal/assets"
)

// Result is the immutable per-item outcome record. Exactly one is created per
// attempted item; results accumulate in submission order.
type Result struct {
	Item            assets.BurnableItem
	Success         bool
	TxHash          string
	Err             error
	ErrorType       ErrorType
	IsUserRejection bool
	GasCostWei      *big.Int
	Timestamp       time.Time
}

// Summary aggregates a completed batch.
type Summary struct {
	Total     int
	Succeeded int
	Failed    int
	Rejected  int
}

func Summarize(results []Result) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		switch {
		case r.Success:
			s.Succeeded++
		case r.IsUserRejection:
			s.Rejected++
			s.Failed++
		default:
			s.Failed++
		}
	}
	return s
}
