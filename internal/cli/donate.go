package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/spf13/cobra"

	"github.com/rshade/footprint/internal/campaign"
	"github.com/rshade/footprint/internal/config"
	"github.com/rshade/footprint/internal/logging"
	"github.com/rshade/footprint/internal/payment"
)

// ErrDonationNotConfirmed is returned when the confirmation prompt is
// declined or cannot be shown.
var ErrDonationNotConfirmed = errors.New("donation not confirmed")

// donateFlags holds the raw donate flag values.
type donateFlags struct {
	campaign       string
	amount         string
	method         string
	idempotencyKey string
	yes            bool

	card   payment.CardDetails
	bank   payment.BankDetails
	upiID  string
	paypal string
}

// NewDonateCmd creates the donate command.
func NewDonateCmd() *cobra.Command {
	var flags donateFlags

	cmd := &cobra.Command{
		Use:   "donate",
		Short: "Donate to an offset campaign",
		Long: `Sends a donation to one of the offset campaigns through the payment
simulator. No money moves, but the request is validated like a real checkout
and a receipt is printed.

Only the details of the chosen --method are required:
  credit_card, debit_card  --card-name --card-number --card-expiry --card-cvv
  bank_transfer            --bank-holder --bank-account --bank-name [--bank-account-type --ifsc --swift]
  upi                      --upi-id
  paypal                   --paypal-email`,
		Example: `  footprint donate --campaign "Reforestation in the Amazon" --amount 50 \
    --method paypal --paypal-email jo@example.com --yes`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDonate(cmd, flags)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.campaign, "campaign", "", "campaign title (see \"footprint campaigns list\")")
	f.StringVar(&flags.amount, "amount", "", "amount in major units, e.g. 50 or 12.50")
	f.StringVar(&flags.method, "method", string(payment.MethodCreditCard),
		"credit_card, debit_card, bank_transfer, upi or paypal")
	f.StringVar(&flags.idempotencyKey, "idempotency-key", "",
		"idempotency key sent to the payment provider (default: a new ULID)")
	f.BoolVarP(&flags.yes, "yes", "y", false, "skip the confirmation prompt")

	f.StringVar(&flags.card.Name, "card-name", "", "name on the card")
	f.StringVar(&flags.card.Number, "card-number", "", "card number")
	f.StringVar(&flags.card.Expiry, "card-expiry", "", "card expiry (MM/YY)")
	f.StringVar(&flags.card.CVV, "card-cvv", "", "card security code")

	f.StringVar(&flags.bank.HolderName, "bank-holder", "", "account holder name")
	f.StringVar(&flags.bank.AccountNumber, "bank-account", "", "account number")
	f.StringVar(&flags.bank.AccountType, "bank-account-type", payment.AccountSavings, "Savings or Current")
	f.StringVar(&flags.bank.BankName, "bank-name", "", "bank name")
	f.StringVar(&flags.bank.IFSC, "ifsc", "", "IFSC code")
	f.StringVar(&flags.bank.SWIFT, "swift", "", "SWIFT code")

	f.StringVar(&flags.upiID, "upi-id", "", "UPI ID, e.g. name@bank")
	f.StringVar(&flags.paypal, "paypal-email", "", "PayPal account email")

	_ = cmd.MarkFlagRequired("campaign")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

// buildDonation turns flags into a Donation, attaching only the details of
// the chosen method.
func buildDonation(flags donateFlags, currency string) (payment.Donation, error) {
	c, ok := campaign.Find(flags.campaign)
	if !ok {
		return payment.Donation{}, campaignNotFound(flags.campaign)
	}
	method, err := payment.ParseMethod(flags.method)
	if err != nil {
		return payment.Donation{}, err
	}
	amount, err := payment.ParseAmount(flags.amount)
	if err != nil {
		return payment.Donation{}, err
	}

	d := payment.Donation{
		Campaign:       c.Title,
		Method:         method,
		AmountMinor:    amount,
		Currency:       currency,
		IdempotencyKey: flags.idempotencyKey,
	}
	if d.IdempotencyKey == "" {
		d.IdempotencyKey = ulid.Make().String()
	}

	switch {
	case method.IsCard():
		card := flags.card
		d.Card = &card
	case method == payment.MethodBankTransfer:
		bank := flags.bank
		d.Bank = &bank
	case method == payment.MethodUPI:
		d.UPIID = flags.upiID
	case method == payment.MethodPayPal:
		d.PayPalEmail = flags.paypal
	}
	return d, nil
}

func runDonate(cmd *cobra.Command, flags donateFlags) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)
	cfg := config.GetGlobalConfig()

	d, err := buildDonation(flags, cfg.Payment.Currency)
	if err != nil {
		return err
	}

	sim := payment.NewSimulator(payment.WithDelay(time.Duration(cfg.Payment.DelayMS) * time.Millisecond))
	// Fail on bad details before asking for confirmation.
	if err = sim.Validate(d); err != nil {
		return err
	}

	if !flags.yes {
		summary := fmt.Sprintf("Donate %s to %s with %s?",
			payment.FormatAmount(d.AmountMinor, d.Currency), d.Campaign, d.Method.Label())
		if !ConfirmDonation(cmd.ErrOrStderr(), cmd.InOrStdin(), summary).Accepted {
			return fmt.Errorf("%w (use --yes in non-interactive shells)", ErrDonationNotConfirmed)
		}
	}

	if cfg.Payment.DelayMS > 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "Processing donation...")
	}
	receipt, err := sim.Donate(ctx, d)
	if err != nil {
		return err
	}
	log.Info().Ctx(ctx).
		Str("receipt", receipt.ID).
		Str("campaign", receipt.Campaign).
		Str("method", string(receipt.Method)).
		Msg("donation completed")

	if outputFormat(cmd) == outputFormatJSON {
		return writeJSON(cmd.OutOrStdout(), receipt)
	}
	w := cmd.OutOrStdout()
	fmt.Fprintln(w, receipt.Message())
	fmt.Fprintf(w, "Receipt:  %s\n", receipt.ID)
	fmt.Fprintf(w, "Amount:   %s\n", receipt.Amount())
	fmt.Fprintf(w, "Method:   %s (%s)\n", receipt.Method.Label(), receipt.Account)
	return nil
}
