package parser

import (
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/wallact/wallact/pkg/models"
)

// Parser turns raw Wallos export records into normalized subscriptions.
type Parser struct {
	logger *log.Logger
}

func New(logger *log.Logger) *Parser {
	return &Parser{
		logger: logger,
	}
}

// Normalize maps one raw record into its canonical form. The ID is a fresh
// UUID on every call, so re-running an import never reuses identifiers.
func (p *Parser) Normalize(raw models.RawSubscription) models.Subscription {
	frequency, interval := p.ParseCycle(raw.PaymentCycle)

	return models.Subscription{
		ID:            uuid.NewString(),
		Name:          raw.Name,
		Amount:        -ParsePrice(raw.Price),
		NextPayment:   raw.NextPayment,
		Frequency:     frequency,
		Interval:      interval,
		Category:      raw.Category,
		PaymentMethod: raw.PaymentMethod,
		Notes:         raw.Notes,
		URL:           raw.URL,
		Active:        raw.State == "Enabled" && raw.Active == "Yes",
		RawPrice:      raw.Price,
	}
}

// NormalizeAll maps a whole export in input order.
func (p *Parser) NormalizeAll(raws []models.RawSubscription) []models.Subscription {
	subs := make([]models.Subscription, 0, len(raws))
	for _, raw := range raws {
		subs = append(subs, p.Normalize(raw))
	}
	return subs
}
