package burnflow

import (
	"errors"
	"strings"
)

// Entry-point failures. Everything else is captured per item and never
// escapes Execute.
var (
	ErrEmptySelection  = errors.New("burnflow: selection is empty")
	ErrBatchTooLarge   = errors.New("burnflow: selection exceeds the maximum batch size")
	ErrNoSender        = errors.New("burnflow: no transaction sender available")
	ErrNotConfirmed    = errors.New("burnflow: burn has not been confirmed")
	ErrBurnInProgress  = errors.New("burnflow: a burn is already in progress")
	ErrSessionFinished = errors.New("burnflow: session finished, reset before confirming again")
)

// ErrorType is the closed classification of per-item burn failures.
type ErrorType string

const (
	ErrorNone                ErrorType = ""
	ErrorUserRejection       ErrorType = "user_rejection"
	ErrorInsufficientFunds   ErrorType = "insufficient_funds"
	ErrorContractRestriction ErrorType = "contract_restriction"
	ErrorNetwork             ErrorType = "network_error"
	ErrorUnknown             ErrorType = "unknown_error"
)

// Message returns the user-facing copy for a failure class. Rejections read
// as a neutral cancellation; restricted transfers get an explanation since
// spam contracts are often deliberately non-transferable.
func (t ErrorType) Message() string {
	switch t {
	case ErrorUserRejection:
		return "Transaction cancelled"
	case ErrorInsufficientFunds:
		return "Not enough ETH to cover gas for this transaction"
	case ErrorContractRestriction:
		return "This token's contract blocked the transfer. Some spam tokens are deliberately made non-transferable; this is expected, not a tool defect."
	case ErrorNetwork:
		return "Network error while submitting the transaction. It may succeed if retried."
	case ErrorUnknown:
		return "The transaction failed. It may succeed if retried."
	}
	return ""
}

// Matchers are checked in priority order; vendor wallets phrase the same
// failure many different ways, so this is best-effort string inspection with
// unknown as the safe default.
var errorMatchers = []struct {
	kind       ErrorType
	substrings []string
}{
	{ErrorUserRejection, []string{
		"user rejected", "user denied", "rejected the request",
		"action_rejected", "user cancelled", "user canceled",
		"request rejected", "signature denied", "code: 4001",
	}},
	{ErrorInsufficientFunds, []string{
		"insufficient funds", "insufficient balance for transfer",
		"insufficient eth", "gas required exceeds allowance",
		"not enough funds",
	}},
	{ErrorContractRestriction, []string{
		"execution reverted", "transfer amount exceeds", "transfer is paused",
		"transfers paused", "transfer disabled", "not transferable",
		"blacklisted", "transfer from the zero address",
		"always failing transaction", "transfer_from_failed",
		"caller is not owner nor approved",
	}},
	{ErrorNetwork, []string{
		"timeout", "timed out", "deadline exceeded", "connection refused",
		"connection reset", "dial tcp", "lookup ", "no such host",
		"too many requests", "-32005", "429", "network error",
		"bad gateway", "service unavailable",
	}},
}

// ClassifyError maps a raw submission error to the closed ErrorType set.
func ClassifyError(err error) ErrorType {
	if err == nil {
		return ErrorNone
	}
	msg := strings.ToLower(err.Error())
	for _, m := range errorMatchers {
		for _, s := range m.substrings {
			if strings.Contains(msg, s) {
				return m.kind
			}
		}
	}
	return ErrorUnknown
}
