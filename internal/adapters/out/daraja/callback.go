package daraja

import (
	"encoding/json"
	"fmt"
	"time"

	"swiftparcel/internal/pkg/errs"
)

// CallbackResult is the decoded content of an asynchronous STK push callback.
// Receipt, amount, paid-at and phone are only present on successful results.
type CallbackResult struct {
	CheckoutRequestID string
	MerchantRequestID string
	ResultCode        int
	ResultDescription string
	ReceiptNumber     string
	AmountShillings   float64
	PaidAt            time.Time
	PhoneNumber       string
}

type callbackEnvelope struct {
	Body struct {
		StkCallback struct {
			MerchantRequestID string `json:"MerchantRequestID"`
			CheckoutRequestID string `json:"CheckoutRequestID"`
			ResultCode        int    `json:"ResultCode"`
			ResultDesc        string `json:"ResultDesc"`
			CallbackMetadata  struct {
				Item []callbackItem `json:"Item"`
			} `json:"CallbackMetadata"`
		} `json:"stkCallback"`
	} `json:"Body"`
}

// callbackItem values arrive untyped: receipt numbers as strings, amounts
// and dates as JSON numbers.
type callbackItem struct {
	Name  string      `json:"Name"`
	Value interface{} `json:"Value"`
}

// ParseCallback decodes a raw callback payload. A payload without a checkout
// request id cannot be correlated with any payment and is rejected.
func ParseCallback(payload []byte) (CallbackResult, error) {
	var envelope callbackEnvelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return CallbackResult{}, errs.NewValueIsInvalidErrorWithCause("callback payload", err)
	}

	stk := envelope.Body.StkCallback
	if stk.CheckoutRequestID == "" {
		return CallbackResult{}, errs.NewValueIsRequiredError("CheckoutRequestID")
	}

	result := CallbackResult{
		CheckoutRequestID: stk.CheckoutRequestID,
		MerchantRequestID: stk.MerchantRequestID,
		ResultCode:        stk.ResultCode,
		ResultDescription: stk.ResultDesc,
	}

	for _, item := range stk.CallbackMetadata.Item {
		switch item.Name {
		case "Amount":
			if amount, ok := item.Value.(float64); ok {
				result.AmountShillings = amount
			}
		case "MpesaReceiptNumber":
			if receipt, ok := item.Value.(string); ok {
				result.ReceiptNumber = receipt
			}
		case "TransactionDate":
			result.PaidAt = parseTransactionDate(item.Value)
		case "PhoneNumber":
			result.PhoneNumber = stringifyMetadataValue(item.Value)
		}
	}

	return result, nil
}

// parseTransactionDate decodes the provider's numeric YYYYMMDDHHMMSS stamp.
// An absent or malformed stamp falls back to the arrival time.
func parseTransactionDate(value interface{}) time.Time {
	stamp := stringifyMetadataValue(value)

	parsed, err := time.Parse(requestFormat, stamp)
	if err != nil {
		return time.Now().UTC()
	}

	return parsed
}

func stringifyMetadataValue(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return fmt.Sprintf("%.0f", v)
	default:
		return ""
	}
}
