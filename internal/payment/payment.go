// Package payment accepts donations to campaigns. The only Provider is a
// Simulator: no money moves, but requests are validated exactly as a real
// checkout would validate them and every success gets a receipt.
package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Method is a payment method code.
type Method string

const (
	MethodCreditCard   Method = "credit_card"
	MethodDebitCard    Method = "debit_card"
	MethodBankTransfer Method = "bank_transfer"
	MethodUPI          Method = "upi"
	MethodPayPal       Method = "paypal"
)

// Methods returns the supported methods in display order.
func Methods() []Method {
	return []Method{MethodCreditCard, MethodDebitCard, MethodBankTransfer, MethodUPI, MethodPayPal}
}

// Label returns the display name, e.g. "Credit Card".
func (m Method) Label() string {
	switch m {
	case MethodCreditCard:
		return "Credit Card"
	case MethodDebitCard:
		return "Debit Card"
	case MethodBankTransfer:
		return "Bank Transfer"
	case MethodUPI:
		return "UPI"
	case MethodPayPal:
		return "PayPal"
	default:
		return string(m)
	}
}

// IsCard reports whether m is paid with card details.
func (m Method) IsCard() bool {
	return m == MethodCreditCard || m == MethodDebitCard
}

// ParseMethod accepts a code ("bank_transfer") or a label ("Bank Transfer").
func ParseMethod(s string) (Method, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer(" ", "_", "-", "_").Replace(norm)
	for _, m := range Methods() {
		if norm == string(m) {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMethod, s)
}

// Errors returned by providers.
var (
	ErrUnknownMethod       = errors.New("unknown payment method")
	ErrInvalidDonation     = errors.New("invalid donation")
	ErrInvalidAmount       = errors.New("invalid donation amount")
	ErrIdempotencyConflict = errors.New("idempotency key reused with a different donation")
)

// Account types accepted for bank transfers.
const (
	AccountSavings = "Savings"
	AccountCurrent = "Current"
)

// CardDetails is required for credit and debit cards.
type CardDetails struct {
	Name   string `json:"name"   validate:"required"`
	Number string `json:"number" validate:"required,credit_card"`
	// Expiry is MM/YY.
	Expiry string `json:"expiry" validate:"required,card_expiry"`
	CVV    string `json:"cvv"    validate:"required,numeric,min=3,max=4"`
}

// BankDetails is required for bank transfers. IFSC and SWIFT are optional.
type BankDetails struct {
	HolderName    string `json:"holder_name"    validate:"required"`
	AccountNumber string `json:"account_number" validate:"required,numeric,min=6,max=18"`
	AccountType   string `json:"account_type"   validate:"required,oneof=Savings Current"`
	BankName      string `json:"bank_name"      validate:"required"`
	IFSC          string `json:"ifsc,omitempty"  validate:"omitempty,len=11,alphanum"`
	SWIFT         string `json:"swift,omitempty" validate:"omitempty,min=8,max=11,alphanum"`
}

// Donation is one donation request. Exactly the details matching Method are
// required; details for other methods are ignored.
type Donation struct {
	Campaign string `json:"campaign" validate:"required,campaign"`
	Method   Method `json:"method"   validate:"required,payment_method"`

	// AmountMinor is in the currency's minor unit (cents).
	AmountMinor int64  `json:"amount_minor" validate:"gt=0"`
	Currency    string `json:"currency"     validate:"len=3,uppercase"`

	Card        *CardDetails `json:"card,omitempty"`
	Bank        *BankDetails `json:"bank,omitempty"`
	UPIID       string       `json:"upi_id,omitempty"       validate:"omitempty,upi_id"`
	PayPalEmail string       `json:"paypal_email,omitempty" validate:"omitempty,email"`

	// IdempotencyKey, when set, makes retries return the original receipt.
	IdempotencyKey string `json:"idempotency_key,omitempty"`
}

// Status of a processed donation.
type Status string

const StatusSucceeded Status = "succeeded"

// Receipt confirms a processed donation.
type Receipt struct {
	ID          string    `json:"id"`
	Campaign    string    `json:"campaign"`
	Method      Method    `json:"method"`
	AmountMinor int64     `json:"amount_minor"`
	Currency    string    `json:"currency"`
	Status      Status    `json:"status"`
	Account     string    `json:"account"`
	CreatedAt   time.Time `json:"created_at"`

	// Replayed is set when an idempotency key matched an earlier donation.
	Replayed bool `json:"replayed,omitempty"`
}

// Message is the confirmation shown to the donor.
func (r Receipt) Message() string {
	return fmt.Sprintf("Your donation to %s was successful.", r.Campaign)
}

// Amount renders the amount as "USD 50.00".
func (r Receipt) Amount() string {
	return FormatAmount(r.AmountMinor, r.Currency)
}

// Provider processes donations.
type Provider interface {
	Donate(ctx context.Context, d Donation) (Receipt, error)
}
