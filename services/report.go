package services

import (
	"math"
	"sort"

	"github.com/Govind-619/quickcart-payments/models"
)

// CurrencyTotal is the paid amount collected in one currency
type CurrencyTotal struct {
	Currency string  `json:"currency"`
	Amount   float64 `json:"amount"`
}

// PaymentSummary aggregates a set of sessions for the admin ledger
type PaymentSummary struct {
	TotalSessions   int             `json:"totalSessions"`
	PaidSessions    int             `json:"paidSessions"`
	PendingSessions int             `json:"pendingSessions"`
	ByGateway       map[string]int  `json:"byGateway"`
	PaidByCurrency  []CurrencyTotal `json:"paidByCurrency"`
}

func SummarizeSessions(sessions []models.PaymentSession) PaymentSummary {
	summary := PaymentSummary{
		TotalSessions: len(sessions),
		ByGateway:     map[string]int{},
	}

	paid := map[string]float64{}
	for _, s := range sessions {
		summary.ByGateway[string(s.Gateway)]++
		if s.IsPaid() {
			summary.PaidSessions++
			paid[s.Currency] += s.Amount
		} else {
			summary.PendingSessions++
		}
	}

	for currency, amount := range paid {
		summary.PaidByCurrency = append(summary.PaidByCurrency, CurrencyTotal{
			Currency: currency,
			Amount:   math.Round(amount*100) / 100,
		})
	}
	sort.Slice(summary.PaidByCurrency, func(i, j int) bool {
		return summary.PaidByCurrency[i].Currency < summary.PaidByCurrency[j].Currency
	})

	return summary
}
