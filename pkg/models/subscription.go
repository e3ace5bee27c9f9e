package models

// Frequency is the recurrence unit accepted by Actual's schedule rules.
type Frequency string

const (
	Daily   Frequency = "daily"
	Weekly  Frequency = "weekly"
	Monthly Frequency = "monthly"
	Yearly  Frequency = "yearly"
)

// RawSubscription mirrors one record of a Wallos export. All fields come in as
// strings, including the price and the yes/no active flag.
type RawSubscription struct {
	Name             string `json:"name"`
	PaymentCycle     string `json:"payment_cycle"`
	NextPayment      string `json:"next_payment"`
	RenewalDate      string `json:"renewal_date"`
	Category         string `json:"category"`
	PaymentMethod    string `json:"payment_method"`
	Payer            string `json:"payer"`
	Price            string `json:"price"`
	Notes            string `json:"notes"`
	URL              string `json:"url"`
	State            string `json:"state"`
	Notifications    string `json:"notifications"`
	CancellationDate string `json:"cancellation_date"`
	Active           string `json:"active"`
}

// Subscription is the normalized form the importer operates on. Amount is in
// minor currency units and is never positive; subscriptions are outflows.
type Subscription struct {
	ID            string
	Name          string
	Amount        int64
	NextPayment   string
	Frequency     Frequency
	Interval      int
	Category      string
	PaymentMethod string
	Notes         string
	URL           string
	Active        bool
	RawPrice      string
}

// RecurrenceSpec is the shape Actual expects for a schedule rule. EndMode is
// always "never"; bounded recurrences are not supported.
type RecurrenceSpec struct {
	Frequency Frequency `json:"frequency"`
	Interval  int       `json:"interval"`
	Start     string    `json:"start"`
	EndMode   string    `json:"endMode"`
}

// Recurrence derives the schedule rule for this subscription.
func (s Subscription) Recurrence() RecurrenceSpec {
	return RecurrenceSpec{
		Frequency: s.Frequency,
		Interval:  s.Interval,
		Start:     s.NextPayment,
		EndMode:   "never",
	}
}

// Account is a budget account as reported by Actual.
type Account struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Closed bool   `json:"closed"`
}

// Outcome tallies one import run.
type Outcome struct {
	Created int
	Skipped int
	Failed  int
}
