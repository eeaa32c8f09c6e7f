package payment

import "fmt"

// Provider result codes reported in STK push callbacks and status queries.
const (
	ResultCodeSuccess             = 0
	ResultCodeInsufficientBalance = 1
	ResultCodeCancelledByUser     = 1032
	ResultCodeTimeout             = 1037
	ResultCodeWrongPIN            = 2001
)

// Outcome is the reconciliation decision derived from a provider result code.
type Outcome struct {
	Status         Status
	Reason         string
	ReviewRequired bool
}

// ClassifyResultCode maps a provider result code to the terminal status it
// implies. Codes the mapping does not know about are treated as failures and
// flagged for manual review rather than guessed at.
func ClassifyResultCode(code int) Outcome {
	switch code {
	case ResultCodeSuccess:
		return Outcome{Status: Paid}
	case ResultCodeInsufficientBalance:
		return Outcome{Status: Failed, Reason: "insufficient balance"}
	case ResultCodeCancelledByUser:
		return Outcome{Status: Cancelled, Reason: "cancelled by user"}
	case ResultCodeTimeout:
		return Outcome{Status: Timeout, Reason: "timeout waiting for user"}
	case ResultCodeWrongPIN:
		return Outcome{Status: Failed, Reason: "wrong PIN entered"}
	default:
		return Outcome{
			Status:         Failed,
			Reason:         fmt.Sprintf("unrecognized result code %d", code),
			ReviewRequired: true,
		}
	}
}
