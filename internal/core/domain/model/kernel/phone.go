package kernel

import (
	"errors"
	"regexp"
	"strings"

	"swiftparcel/internal/pkg/errs"
)

// normalizedPhonePattern matches a Kenyan MSISDN in canonical form:
// "254" followed by a 7xx or 1xx mobile prefix and the subscriber digits.
var normalizedPhonePattern = regexp.MustCompile(`^254[17]\d{8}$`)

// ErrPhoneIsNotConstructed is returned when using an improperly initialized Phone.
var ErrPhoneIsNotConstructed = errs.NewValueIsRequiredError(
	"phone must be created via NewPhone constructor")

// Phone is a value object holding a Kenyan mobile number normalized to the
// "2547XXXXXXXX" form expected by SMS and mobile-money providers.
type Phone struct {
	value string
}

// NewPhone normalizes and validates a Kenyan mobile number. Accepted inputs:
// "+254712345678", "254712345678", "0712345678" and "712345678" (also the
// "1xx" Safaricom ranges). Spaces and dashes are ignored.
func NewPhone(raw string) (Phone, error) {
	normalized := strings.NewReplacer(" ", "", "-", "", "+", "").Replace(strings.TrimSpace(raw))

	switch {
	case normalized == "":
		return Phone{}, errs.NewValueIsRequiredError("phone")
	case strings.HasPrefix(normalized, "0") && len(normalized) == 10:
		normalized = "254" + normalized[1:]
	case len(normalized) == 9:
		normalized = "254" + normalized
	}

	if !normalizedPhonePattern.MatchString(normalized) {
		return Phone{}, errs.NewValueIsInvalidErrorWithCause("phone",
			errors.New("expected a Kenyan mobile number like +254712345678 or 0712345678"))
	}

	return Phone{value: normalized}, nil
}

// Validate returns an error for the zero value.
func (p Phone) Validate() error {
	if p.value == "" {
		return ErrPhoneIsNotConstructed
	}
	return nil
}

// String returns the canonical "2547XXXXXXXX" form.
func (p Phone) String() string {
	return p.value
}

// E164 returns the number with a leading plus, e.g. "+254712345678".
func (p Phone) E164() string {
	return "+" + p.value
}

// IsEqual reports whether two phones hold the same number.
func (p Phone) IsEqual(other Phone) bool {
	return p.value == other.value
}
