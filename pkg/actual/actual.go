package actual

import "github.com/wallact/wallact/pkg/models"

// Budget is one budget file known to the Actual server.
type Budget struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Payee is a named counterparty inside the open budget.
type Payee struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Schedule is the payload for a new recurring-transaction template. AmountOp
// is always "is"; the importer never creates approximate-amount schedules.
type Schedule struct {
	Name       string                `json:"name"`
	PayeeID    string                `json:"payee"`
	AccountID  string                `json:"account"`
	Amount     int64                 `json:"amount"`
	AmountOp   string                `json:"amountOp"`
	Recurrence models.RecurrenceSpec `json:"recurrence"`
}

// Client is the destination API surface the importer depends on. The HTTP
// implementation below talks to an Actual REST bridge; tests substitute a
// fake.
type Client interface {
	Connect() error
	Budgets() ([]Budget, error)
	OpenBudget(id string) error
	Payees() ([]Payee, error)
	Accounts() ([]models.Account, error)
	CreatePayee(name string) (string, error)
	CreateSchedule(s Schedule) (string, error)
	Sync() error
	Shutdown() error
}
