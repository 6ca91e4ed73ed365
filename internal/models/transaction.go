package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Bank identifies one of the supported statement sources.
type Bank string

const (
	BankCSOB    Bank = "csob"
	BankCS      Bank = "cs"
	BankRevolut Bank = "revolut"
)

// Kind identifies one transaction variant. The value doubles as the "type"
// discriminant in the JSON export, so the names are stable.
type Kind string

const (
	KindIncomingPayment           Kind = "IncomingPayment"
	KindOutgoingPayment           Kind = "OutgoingPayment"
	KindOutgoingPaymentPeriodic   Kind = "OutgoingPaymentPeriodic"
	KindCardPaymentDebit          Kind = "CardPaymentDebit"
	KindCardPaymentIncoming       Kind = "CardPaymentIncoming"
	KindCardAtmCashOut            Kind = "CardAtmCashOut"
	KindCardAtmDeposit            Kind = "CardAtmDeposit"
	KindBankPayedService          Kind = "BankPayedService"
	KindInterestPositive          Kind = "InterestPositive"
	KindTaxInterest               Kind = "TaxInterest"
	KindElectronicBankingTransfer Kind = "ElectronicBankingTransfer"
	KindDirectDebit               Kind = "DirectDebit"
)

// knownKinds is the set of kinds the JSON reload dispatch accepts.
var knownKinds = map[Kind]bool{
	KindIncomingPayment:           true,
	KindOutgoingPayment:           true,
	KindOutgoingPaymentPeriodic:   true,
	KindCardPaymentDebit:          true,
	KindCardPaymentIncoming:       true,
	KindCardAtmCashOut:            true,
	KindCardAtmDeposit:            true,
	KindBankPayedService:          true,
	KindInterestPositive:          true,
	KindTaxInterest:               true,
	KindElectronicBankingTransfer: true,
	KindDirectDebit:               true,
}

// Known reports whether k is a kind this program can reconstruct.
func (k Kind) Known() bool {
	return knownKinds[k]
}

// ExpectedSign returns the amount sign this kind normally carries:
// -1 for outgoing kinds, +1 for incoming kinds, 0 when either is valid
// (electronic banking transfers decide polarity at parse time).
// A mismatch is a data-quality signal, not a structural error.
func (k Kind) ExpectedSign() int {
	switch k {
	case KindIncomingPayment, KindCardPaymentIncoming, KindCardAtmDeposit, KindInterestPositive:
		return 1
	case KindOutgoingPayment, KindOutgoingPaymentPeriodic, KindCardPaymentDebit,
		KindCardAtmCashOut, KindBankPayedService, KindTaxInterest, KindDirectDebit:
		return -1
	default:
		return 0
	}
}

// Transaction is one unified ledger entry. The Kind field discriminates the
// variant; the fields past UserCategory are populated only by the kinds that
// own them.
type Transaction struct {
	Kind             Kind            `json:"type"`
	StatementAccount string          `json:"statement_account"`
	ParentStatement  string          `json:"parent_statement"`
	ID               int             `json:"transaction_id"`
	Year             int             `json:"year"`
	AccountFrom      string          `json:"account_from"`
	Amount           decimal.Decimal `json:"amount"`
	DateBooked       string          `json:"date_booked"`
	AccountTo        string          `json:"account_to"`
	Currency         string          `json:"currency"`
	AccountFromName  string          `json:"account_from_name"`
	SenderNote       string          `json:"sender_note"`
	VariableSymbol   int64           `json:"variable_symbol"`
	ConstantSymbol   int64           `json:"constant_symbol"`
	SpecificSymbol   int64           `json:"specific_symbol"`
	RawText          string          `json:"all_transaction_lines_text"`
	UserDescription  string          `json:"user_description"`
	UserCategory     string          `json:"user_category"`

	// Card payment variants.
	PaymentDate    string `json:"payment_date,omitempty"`
	CardIdentifier string `json:"card_identifier,omitempty"`
	VendorText     string `json:"vendor_text,omitempty"`
	CardOwner      string `json:"card_owner,omitempty"`

	// ATM variants.
	OurBankATM  bool   `json:"our_bank_atm,omitempty"`
	CashOutDate string `json:"cash_out_date,omitempty"`
	DepositDate string `json:"deposit_date,omitempty"`

	// Bank service variant.
	ServiceType string `json:"service_type,omitempty"`
}

// DefaultCurrency is assumed when the source document does not state one.
const DefaultCurrency = "CZK"

// NewTransaction returns a transaction of the given kind with the default
// currency set. The id is assigned when the transaction enters a Registry.
func NewTransaction(kind Kind) *Transaction {
	return &Transaction{Kind: kind, Currency: DefaultCurrency}
}

// AppendRawLine adds one statement body line to the accumulated raw text,
// trimmed and newline-terminated.
func (t *Transaction) AppendRawLine(line string) {
	t.RawText += strings.TrimSpace(line) + "\n"
}

func (t *Transaction) String() string {
	return fmt.Sprintf("%s #%d %s %s %s -> %s",
		t.Kind, t.ID, t.DateBooked, t.Amount.StringFixed(2), t.AccountFrom, t.AccountTo)
}

// DefaultCardOwners maps the last four digits of a card number to the owner
// label shown in exports. The table can be overridden from configuration.
func DefaultCardOwners() map[string]string {
	return map[string]string{
		"7148": "Ondra, ČS, VISA",
		"5567": "Ondra, ČSOB, MC",
		"1563": "Ondra, ČSOB, MC",
		"9448": "Ondra, REVOLUT, MC",
		"0119": "Mája, ČS, VISA",
	}
}

// CardOwnerLabel resolves a card identifier against the owner table.
func CardOwnerLabel(owners map[string]string, cardID string) string {
	if owner, ok := owners[cardID]; ok {
		return owner
	}
	return "Unknown card"
}
