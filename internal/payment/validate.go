package payment

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	validator "github.com/go-playground/validator/v10"

	"github.com/rshade/footprint/internal/campaign"
)

//nolint:gochecknoglobals // Compiled once.
var (
	expiryPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/([0-9]{2})$`)
	upiPattern    = regexp.MustCompile(`^[a-zA-Z0-9.\-_]{2,256}@[a-zA-Z]{2,64}$`)
)

// newValidator registers the donation rules. now supplies the clock used for
// card expiry checks.
func newValidator(now func() time.Time) *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("campaign", func(fl validator.FieldLevel) bool {
		_, ok := campaign.Find(fl.Field().String())
		return ok
	})
	_ = v.RegisterValidation("payment_method", func(fl validator.FieldLevel) bool {
		_, err := ParseMethod(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("upi_id", func(fl validator.FieldLevel) bool {
		return upiPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("card_expiry", func(fl validator.FieldLevel) bool {
		return !cardExpired(fl.Field().String(), now())
	})

	v.RegisterStructValidation(requireMethodDetails, Donation{})
	return v
}

// cardExpired treats unparseable expiries as expired. Cards are valid
// through the last day of the expiry month.
func cardExpired(expiry string, now time.Time) bool {
	m := expiryPattern.FindStringSubmatch(strings.TrimSpace(expiry))
	if m == nil {
		return true
	}
	var month, year int
	if _, err := fmt.Sscanf(m[1]+" "+m[2], "%d %d", &month, &year); err != nil {
		return true
	}
	firstOfNext := time.Date(2000+year, time.Month(month)+1, 1, 0, 0, 0, 0, time.UTC)
	return !now.UTC().Before(firstOfNext)
}

// requireMethodDetails reports the details the chosen method needs.
func requireMethodDetails(sl validator.StructLevel) {
	d, ok := sl.Current().Interface().(Donation)
	if !ok {
		return
	}
	switch {
	case d.Method.IsCard():
		if d.Card == nil {
			sl.ReportError(d.Card, "card", "Card", "required_for_method", string(d.Method))
		}
	case d.Method == MethodBankTransfer:
		if d.Bank == nil {
			sl.ReportError(d.Bank, "bank", "Bank", "required_for_method", string(d.Method))
		}
	case d.Method == MethodUPI:
		if d.UPIID == "" {
			sl.ReportError(d.UPIID, "upi_id", "UPIID", "required_for_method", string(d.Method))
		}
	case d.Method == MethodPayPal:
		if d.PayPalEmail == "" {
			sl.ReportError(d.PayPalEmail, "paypal_email", "PayPalEmail", "required_for_method", string(d.Method))
		}
	}
}

// FieldError names one invalid donation field.
type FieldError struct {
	Field string
	Rule  string
}

// ValidationError lists every invalid field of a donation.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + " (" + f.Rule + ")"
	}
	return fmt.Sprintf("%s: %s", ErrInvalidDonation, strings.Join(parts, ", "))
}

func (e *ValidationError) Unwrap() error { return ErrInvalidDonation }

// toValidationError flattens validator output into field paths such as
// "card.number". Other errors pass through.
func toValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &ValidationError{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		field := fe.Namespace()
		if _, rest, ok := strings.Cut(field, "."); ok {
			field = rest
		}
		out.Fields = append(out.Fields, FieldError{Field: field, Rule: fe.Tag()})
	}
	return out
}
