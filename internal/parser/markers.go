package parser

import (
	"strings"

	"github.com/ledgerline/statement-extractor/internal/models"
)

// markerPrecedence fixes the order marker sets are tried against a line.
// Some markers are substrings of others ("Příchozí úhrada" is contained in
// "Příchozí úhrada kartou"), so the card variant must be checked first.
var markerPrecedence = []models.Kind{
	models.KindCardPaymentIncoming,
	models.KindIncomingPayment,
	models.KindOutgoingPayment,
	models.KindCardPaymentDebit,
	models.KindCardAtmCashOut,
	models.KindBankPayedService,
	models.KindOutgoingPaymentPeriodic,
	models.KindInterestPositive,
	models.KindTaxInterest,
	models.KindElectronicBankingTransfer,
	models.KindDirectDebit,
	models.KindCardAtmDeposit,
}

// markers lists, per kind and bank, the section identifier texts that start
// a transaction block. Matching is substring containment.
var markers = map[models.Kind]map[models.Bank][]string{
	models.KindIncomingPayment: {
		models.BankCS:   {"Příchozí úhrada", "Zahraniční příchozí úhrada"},
		models.BankCSOB: {"Příchozí úhrada"},
	},
	models.KindOutgoingPayment: {
		models.BankCS:   {"Tuzemská odchozí úhrada"},
		models.BankCSOB: {"Odchozí úhrada"},
	},
	models.KindOutgoingPaymentPeriodic: {
		models.BankCS:   {"Trvalý příkaz"},
		models.BankCSOB: {"Trvalý příkaz"},
	},
	models.KindCardPaymentDebit: {
		models.BankCS:   {"Platba kartou"},
		models.BankCSOB: {"Transakce platební kartou"},
	},
	models.KindCardPaymentIncoming: {
		models.BankCS:   {"Vratka platby kartou"},
		models.BankCSOB: {"Příchozí úhrada kartou"},
	},
	models.KindCardAtmCashOut: {
		models.BankCS: {"Výběr hotovosti z bankomatu"},
	},
	models.KindCardAtmDeposit: {
		models.BankCS: {"Vklad hotovosti přes bankomat"},
	},
	models.KindBankPayedService: {
		models.BankCS:   {"Ceny za služby"},
		models.BankCSOB: {"Poplatek-platební karta"},
	},
	models.KindInterestPositive: {
		models.BankCS:   {"Kreditní úrok"},
		models.BankCSOB: {"Zúčtování kladných úroků"},
	},
	models.KindTaxInterest: {
		models.BankCS: {"Daň z úroku"},
	},
	models.KindElectronicBankingTransfer: {
		models.BankCSOB: {"Bezhotovostní převod EB"},
	},
	models.KindDirectDebit: {
		models.BankCS:   {"Inkaso"},
		models.BankCSOB: {"Inkaso"},
	},
}

// sectionEndSentinels closes an open transaction block. Matching is exact
// equality against the raw line, not trimmed.
var sectionEndSentinels = []string{
	"Konečný zůstatek:",
	"Pokračování na další straně",
	"Výpis z účtu",
	"Datum",
	"Strana:",
	"Prosíme Vás o včasné překontrolování uvedených údajů. V případě nesouhlasu kontaktujte prosím svoje obchodní místo nebo volejte na telefon",
	"Vážená klientko, vážený kliente,",
}

// markerKind returns the transaction kind whose marker matches the line for
// the given bank, trying kinds in precedence order. Returns ("", false) when
// the line starts no transaction.
func markerKind(line string, bank models.Bank) (models.Kind, bool) {
	for _, kind := range markerPrecedence {
		for _, marker := range markers[kind][bank] {
			if strings.Contains(line, marker) {
				return kind, true
			}
		}
	}
	return "", false
}

// isSectionEnd reports whether the line terminates an open transaction block.
func isSectionEnd(line string) bool {
	for _, sentinel := range sectionEndSentinels {
		if line == sentinel {
			return true
		}
	}
	return false
}
