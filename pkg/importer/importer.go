package importer

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/wallact/wallact/pkg/actual"
	"github.com/wallact/wallact/pkg/config"
	"github.com/wallact/wallact/pkg/models"
	"github.com/wallact/wallact/pkg/resolver"
)

var (
	createdStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // green
	skippedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))  // gray
	failedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))  // red
)

// Importer drives one end-to-end run: open budget, load payees and accounts,
// then create one schedule per active subscription. Everything is strictly
// sequential; the payee and account caches are only touched from this loop.
type Importer struct {
	cfg      *config.Config
	logger   *log.Logger
	client   actual.Client
	resolver *resolver.Resolver
	in       *bufio.Reader
	out      io.Writer
}

func New(cfg *config.Config, logger *log.Logger, client actual.Client, res *resolver.Resolver, in *bufio.Reader, out io.Writer) *Importer {
	return &Importer{
		cfg:      cfg,
		logger:   logger,
		client:   client,
		resolver: res,
		in:       in,
		out:      out,
	}
}

// Run imports the given normalized subscriptions and returns the tally.
// Per-subscription failures are logged and counted, never fatal; errors
// returned from Run itself abort the whole run.
func (i *Importer) Run(subs []models.Subscription) (models.Outcome, error) {
	var outcome models.Outcome

	if err := i.client.Connect(); err != nil {
		return outcome, err
	}
	defer func() {
		if err := i.client.Shutdown(); err != nil {
			i.logger.Warn("shutdown failed", "error", err)
		}
	}()

	budgetID := i.cfg.BudgetID
	if budgetID == "" {
		budgets, err := i.client.Budgets()
		if err != nil {
			return outcome, err
		}
		if len(budgets) == 0 {
			return outcome, fmt.Errorf("no budgets available on the actual server")
		}
		budgetID = budgets[0].ID
		i.logger.Info("no budget configured, opening first available", "budget", budgets[0].Name)
	}
	if err := i.client.OpenBudget(budgetID); err != nil {
		return outcome, err
	}

	payees, err := i.client.Payees()
	if err != nil {
		return outcome, err
	}
	accounts, err := i.client.Accounts()
	if err != nil {
		return outcome, err
	}

	payeeIDs := make(map[string]string, len(payees))
	for _, p := range payees {
		payeeIDs[nameKey(p.Name)] = p.ID
	}

	defaultID := i.resolver.ResolveDefault(accounts, i.cfg.DefaultAccount)

	active := make([]models.Subscription, 0, len(subs))
	for _, sub := range subs {
		if sub.Active {
			active = append(active, sub)
		}
	}
	i.logger.Info("importing subscriptions", "total", len(subs), "active", len(active))

	for _, sub := range active {
		skipped, err := i.importOne(sub, accounts, defaultID, payeeIDs)
		switch {
		case err != nil:
			outcome.Failed++
			i.logger.Error("failed to import subscription", "subscription", sub.Name, "error", err)
			fmt.Fprintln(i.out, failedStyle.Render(fmt.Sprintf("✗ %s: %v", sub.Name, err)))
		case skipped:
			outcome.Skipped++
			fmt.Fprintln(i.out, skippedStyle.Render(fmt.Sprintf("- %s skipped", sub.Name)))
		default:
			outcome.Created++
			fmt.Fprintln(i.out, createdStyle.Render(fmt.Sprintf("✓ %s %s (every %d %s)", sub.Name, sub.RawPrice, sub.Interval, sub.Frequency)))
		}
	}

	fmt.Fprintf(i.out, "\nDone: %d created, %d skipped, %d failed\n", outcome.Created, outcome.Skipped, outcome.Failed)

	if i.cfg.SyncConfigured() && i.confirmSync() {
		if err := i.client.Sync(); err != nil {
			return outcome, err
		}
		i.logger.Info("synced changes to server")
	}

	return outcome, nil
}

func (i *Importer) importOne(sub models.Subscription, accounts []models.Account, defaultID string, payeeIDs map[string]string) (skipped bool, err error) {
	payeeID, err := i.payeeFor(sub.Name, payeeIDs)
	if err != nil {
		return false, err
	}

	accountID, skip, err := i.resolver.Resolve(sub, accounts, defaultID)
	if err != nil {
		return false, err
	}
	if skip {
		return true, nil
	}

	_, err = i.client.CreateSchedule(actual.Schedule{
		Name:       sub.Name,
		PayeeID:    payeeID,
		AccountID:  accountID,
		Amount:     sub.Amount,
		AmountOp:   "is",
		Recurrence: sub.Recurrence(),
	})
	return false, err
}

// payeeFor looks the payee up in the run cache and creates it remotely on a
// miss. The cache is updated immediately so duplicate subscription names
// within one run never create two payees.
func (i *Importer) payeeFor(name string, payeeIDs map[string]string) (string, error) {
	key := nameKey(name)
	if id, ok := payeeIDs[key]; ok {
		return id, nil
	}

	id, err := i.client.CreatePayee(name)
	if err != nil {
		return "", err
	}
	fmt.Fprintf(i.out, "created payee %q\n", name)
	payeeIDs[key] = id
	return id, nil
}

// confirmSync asks whether to push changes; plain enter means yes. A failed
// read is not an answer, so nothing gets pushed.
func (i *Importer) confirmSync() bool {
	fmt.Fprint(i.out, "\nSync changes to the Actual server? [Y/n] ")
	line, err := i.in.ReadString('\n')
	answer := strings.ToLower(strings.TrimSpace(line))
	if err != nil && answer == "" {
		i.logger.Warn("could not read sync answer, not syncing", "error", err)
		return false
	}
	return answer == "" || strings.HasPrefix(answer, "y")
}

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
