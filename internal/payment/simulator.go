package payment

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"sync"
	"time"

	validator "github.com/go-playground/validator/v10"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/rshade/footprint/internal/campaign"
)

var _ Provider = (*Simulator)(nil)

// DefaultDelay matches the pause a hosted checkout page typically shows.
const DefaultDelay = 2 * time.Second

// Simulator is a Provider that always succeeds after a delay. It is safe
// for concurrent use.
type Simulator struct {
	delay    time.Duration
	now      func() time.Time
	validate *validator.Validate

	mu       sync.Mutex
	receipts map[string]storedReceipt
}

type storedReceipt struct {
	fingerprint string
	receipt     Receipt
}

// SimulatorOption customises a Simulator.
type SimulatorOption func(*Simulator)

// WithDelay sets the processing delay; zero or negative means none.
func WithDelay(d time.Duration) SimulatorOption {
	return func(s *Simulator) { s.delay = max(d, 0) }
}

// WithClock overrides time.Now, for receipts and card expiry checks.
func WithClock(now func() time.Time) SimulatorOption {
	return func(s *Simulator) { s.now = now }
}

// NewSimulator returns a Simulator with DefaultDelay unless overridden.
func NewSimulator(opts ...SimulatorOption) *Simulator {
	s := &Simulator{
		delay:    DefaultDelay,
		now:      time.Now,
		receipts: make(map[string]storedReceipt),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.validate = newValidator(func() time.Time { return s.now() })
	return s
}

// Validate checks d without processing it. Method labels are accepted.
func (s *Simulator) Validate(d Donation) error {
	d = normalize(d)
	if err := s.validate.Struct(d); err != nil {
		return toValidationError(err)
	}
	return nil
}

// Donate validates d, waits for the processing delay and returns a receipt.
// A reused idempotency key returns the first receipt without waiting, or
// ErrIdempotencyConflict when the donation differs. Cancelling ctx during
// the delay abandons the donation.
func (s *Simulator) Donate(ctx context.Context, d Donation) (Receipt, error) {
	log := zerolog.Ctx(ctx)

	d = normalize(d)
	if err := s.validate.Struct(d); err != nil {
		return Receipt{}, toValidationError(err)
	}

	fp := fingerprint(d)
	if d.IdempotencyKey != "" {
		if prev, ok := s.lookup(d.IdempotencyKey); ok {
			if prev.fingerprint != fp {
				return Receipt{}, ErrIdempotencyConflict
			}
			log.Debug().Str("receipt_id", prev.receipt.ID).Msg("donation replayed")
			r := prev.receipt
			r.Replayed = true
			return r, nil
		}
	}

	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return Receipt{}, ctx.Err()
		case <-timer.C:
		}
	}

	now := s.now()
	receipt := Receipt{
		ID:          ulid.MustNew(ulid.Timestamp(now), ulid.DefaultEntropy()).String(),
		Campaign:    d.Campaign,
		Method:      d.Method,
		AmountMinor: d.AmountMinor,
		Currency:    d.Currency,
		Status:      StatusSucceeded,
		Account:     maskedAccount(d),
		CreatedAt:   now,
	}

	if d.IdempotencyKey != "" {
		s.mu.Lock()
		// A concurrent retry may have finished first; keep its receipt.
		if prev, ok := s.receipts[d.IdempotencyKey]; ok {
			s.mu.Unlock()
			if prev.fingerprint != fp {
				return Receipt{}, ErrIdempotencyConflict
			}
			r := prev.receipt
			r.Replayed = true
			return r, nil
		}
		s.receipts[d.IdempotencyKey] = storedReceipt{fingerprint: fp, receipt: receipt}
		s.mu.Unlock()
	}

	log.Info().
		Str("receipt_id", receipt.ID).
		Str("campaign", receipt.Campaign).
		Str("method", string(receipt.Method)).
		Int64("amount_minor", receipt.AmountMinor).
		Str("currency", receipt.Currency).
		Msg("donation accepted")
	return receipt, nil
}

func (s *Simulator) lookup(key string) (storedReceipt, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.receipts[key]
	return r, ok
}

// normalize canonicalises the method and drops details for other methods.
func normalize(d Donation) Donation {
	if m, err := ParseMethod(string(d.Method)); err == nil {
		d.Method = m
	}
	d.Currency = strings.ToUpper(strings.TrimSpace(d.Currency))
	d.Campaign = strings.TrimSpace(d.Campaign)
	if c, ok := campaign.Find(d.Campaign); ok {
		d.Campaign = c.Title
	}

	if !d.Method.IsCard() {
		d.Card = nil
	}
	if d.Method != MethodBankTransfer {
		d.Bank = nil
	}
	if d.Method != MethodUPI {
		d.UPIID = ""
	}
	if d.Method != MethodPayPal {
		d.PayPalEmail = ""
	}
	return d
}

// fingerprint hashes the donation without its idempotency key.
func fingerprint(d Donation) string {
	d.IdempotencyKey = ""
	raw, _ := json.Marshal(d)
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

// maskedAccount shows only the last four characters of the paying account.
func maskedAccount(d Donation) string {
	last4 := func(s string) string {
		s = strings.ReplaceAll(s, " ", "")
		if len(s) <= 4 {
			return s
		}
		return "•••• " + s[len(s)-4:]
	}
	switch {
	case d.Card != nil:
		return last4(d.Card.Number)
	case d.Bank != nil:
		return last4(d.Bank.AccountNumber)
	case d.UPIID != "":
		return d.UPIID
	default:
		return d.PayPalEmail
	}
}
