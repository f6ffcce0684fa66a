package burnflow

import (
	"context"
	"log/slog"
	"math/big"
	"sync"
	"time"

	"github.com/baseclean/baseclean/internal/assets"
)

// Sender is the external transaction capability. Send submits exactly one
// transfer of the item to the burn destination, using the standard transfer
// method for the item's token standard, and waits until the transaction is
// mined or fails. It returns the transaction hash and the gas cost in wei.
type Sender interface {
	Send(ctx context.Context, item assets.BurnableItem) (txHash string, gasCostWei *big.Int, err error)
}

// Refresher re-fetches wallet balances after a batch with at least one
// successful burn.
type Refresher interface {
	RefreshBalances(ctx context.Context, wallet string) error
}

// Options configures a Session.
type Options struct {
	Logger      *slog.Logger
	Wallet      string
	Refresher   Refresher
	SettleDelay time.Duration // residual pause between items; receipts are awaited by the Sender
}

// Session drives one burn from confirmation to completion:
//
//	idle -> confirming -> burning -> complete
//
// with error reachable on a fatal (non-item-level) failure and idle reachable
// again via Cancel or Reset. At most one transaction is outstanding at any
// time; item i's result is recorded before item i+1 begins. The session owns
// its status exclusively while burning; observers read value snapshots only.
type Session struct {
	logger      *slog.Logger
	wallet      string
	refresher   Refresher
	settleDelay time.Duration

	mu        sync.Mutex
	state     State
	status    Status
	flowCtx   *Context
	results   []Result
	remaining map[string]bool

	nowFn   func() time.Time
	sleepFn func(time.Duration)
}

func NewSession(opts Options) *Session {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Session{
		logger:      opts.Logger.With("component", "burnflow"),
		wallet:      opts.Wallet,
		refresher:   opts.Refresher,
		settleDelay: opts.SettleDelay,
		state:       StateIdle,
		status:      Status{State: StateIdle},
		nowFn:       time.Now,
		sleepFn:     time.Sleep,
	}
}

// Confirm moves the session into the confirming state with the given
// pre-flight context. No on-chain side effects.
func (s *Session) Confirm(flowCtx *Context) error {
	if flowCtx == nil || len(flowCtx.Items) == 0 {
		return ErrEmptySelection
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.state {
	case StateBurning:
		return ErrBurnInProgress
	case StateComplete, StateError:
		return ErrSessionFinished
	}
	s.state = StateConfirming
	s.flowCtx = flowCtx
	s.results = nil
	s.remaining = make(map[string]bool, len(flowCtx.Items))
	for _, it := range flowCtx.Items {
		s.remaining[it.Key()] = true
	}
	s.status = Status{State: StateConfirming, TotalItems: flowCtx.TotalUniqueItems}
	return nil
}

// Cancel discards a pending confirmation and returns to idle. Meaningless
// once burning: the loop runs to completion by design.
func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateConfirming {
		return
	}
	s.state = StateIdle
	s.flowCtx = nil
	s.remaining = nil
	s.status = Status{State: StateIdle}
}

// Reset returns a finished or failed session to idle.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateComplete && s.state != StateError {
		return
	}
	s.state = StateIdle
	s.flowCtx = nil
	s.results = nil
	s.remaining = nil
	s.status = Status{State: StateIdle}
}

// Status returns a snapshot of the session's progress.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Results returns a copy of the per-item outcomes recorded so far.
func (s *Session) Results() []Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Result, len(s.results))
	copy(out, s.results)
	return out
}

// Remaining reports the selection keys not yet successfully burned.
func (s *Session) Remaining() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.remaining))
	for k := range s.remaining {
		out = append(out, k)
	}
	return out
}

// Execute runs the confirmed burn sequentially, one transaction at a time, in
// selection order. Per-item failures are recorded and the loop continues;
// only a missing sender or a wrong-state call fail the whole batch. After the
// loop, if at least one burn succeeded, balances are refreshed and burned
// keys leave the active selection.
func (s *Session) Execute(ctx context.Context, sender Sender) ([]Result, error) {
	s.mu.Lock()
	switch s.state {
	case StateBurning:
		s.mu.Unlock()
		return nil, ErrBurnInProgress
	case StateConfirming:
	default:
		s.mu.Unlock()
		return nil, ErrNotConfirmed
	}
	if sender == nil {
		s.state = StateError
		s.status.State = StateError
		s.status.LastError = ErrNoSender.Error()
		s.mu.Unlock()
		return nil, ErrNoSender
	}
	flowCtx := s.flowCtx
	s.state = StateBurning
	s.status = Status{State: StateBurning, TotalItems: len(flowCtx.Items)}
	s.mu.Unlock()

	s.logger.Info("burn started", "items", len(flowCtx.Items), "type", string(flowCtx.BurnType))

	results := make([]Result, 0, len(flowCtx.Items))
	for i, item := range flowCtx.Items {
		s.mu.Lock()
		s.status.CurrentItem = item.DisplayName()
		s.status.CurrentTxHash = ""
		s.mu.Unlock()

		txHash, gasCost, err := sender.Send(ctx, item)

		res := Result{Item: item, Timestamp: s.nowFn()}
		if err != nil {
			kind := ClassifyError(err)
			res.Err = err
			res.ErrorType = kind
			res.IsUserRejection = kind == ErrorUserRejection
			s.logger.Warn("burn item failed",
				"item", item.DisplayName(), "kind", string(kind), "error", err)
		} else {
			res.Success = true
			res.TxHash = txHash
			res.GasCostWei = gasCost
			s.logger.Info("burn item confirmed", "item", item.DisplayName(), "tx", txHash)
		}
		results = append(results, res)

		s.mu.Lock()
		s.results = append(s.results, res)
		s.status.ProcessedItems++
		if res.Success {
			s.status.BurnedCount++
			s.status.CurrentTxHash = txHash
		} else {
			s.status.FailedCount++
			if res.IsUserRejection {
				s.status.RejectedCount++
			}
			s.status.LastError = res.ErrorType.Message()
		}
		s.mu.Unlock()

		if s.settleDelay > 0 && i < len(flowCtx.Items)-1 {
			s.sleepFn(s.settleDelay)
		}
	}

	sum := Summarize(results)
	s.mu.Lock()
	s.state = StateComplete
	s.status.State = StateComplete
	s.status.Success = sum.Failed == 0
	s.status.CurrentItem = ""
	for _, r := range results {
		if r.Success {
			delete(s.remaining, r.Item.Key())
		}
	}
	refresher, wallet := s.refresher, s.wallet
	s.mu.Unlock()

	s.logger.Info("burn complete",
		"succeeded", sum.Succeeded, "failed", sum.Failed, "rejected", sum.Rejected)

	if sum.Succeeded > 0 && refresher != nil {
		if err := refresher.RefreshBalances(ctx, wallet); err != nil {
			s.logger.Warn("post-burn balance refresh failed", "error", err)
		}
	}
	return results, nil
}
