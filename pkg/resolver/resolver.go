package resolver

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/wallact/wallact/pkg/mapping"
	"github.com/wallact/wallact/pkg/models"
)

// Resolver decides which account a subscription's schedule lands on. Matching
// order: alias mapping, payment method, notes, run default, interactive
// prompt. The prompt is the only blocking step in the whole program.
type Resolver struct {
	logger  *log.Logger
	in      *bufio.Reader
	out     io.Writer
	aliases *mapping.Mapping
}

// New builds a resolver. The reader is shared with the importer's own
// prompts, so both read from the same buffer.
func New(logger *log.Logger, in *bufio.Reader, out io.Writer, aliases *mapping.Mapping) *Resolver {
	if aliases == nil {
		aliases = &mapping.Mapping{}
	}
	return &Resolver{
		logger:  logger,
		in:      in,
		out:     out,
		aliases: aliases,
	}
}

// ResolveDefault turns the caller-supplied default account name into an id,
// once per run. An unknown name downgrades to "no default" with a warning
// instead of failing the run.
func (r *Resolver) ResolveDefault(accounts []models.Account, name string) string {
	if name == "" {
		return ""
	}
	if acc, ok := findByName(accounts, name); ok {
		return acc.ID
	}
	r.logger.Warn("default account not found, falling back to per-subscription resolution", "account", name)
	return ""
}

// Resolve returns the chosen account id, or skip=true when the operator
// declined at the prompt. An error is only possible from terminal I/O.
func (r *Resolver) Resolve(sub models.Subscription, accounts []models.Account, defaultID string) (id string, skip bool, err error) {
	for _, candidate := range []string{sub.PaymentMethod, sub.Notes} {
		if name, ok := r.aliases.Resolve(candidate); ok {
			if acc, ok := findByName(accounts, name); ok {
				return acc.ID, false, nil
			}
		}
		if acc, ok := findByName(accounts, candidate); ok {
			return acc.ID, false, nil
		}
	}

	if defaultID != "" {
		return defaultID, false, nil
	}

	return r.prompt(sub, accounts)
}

func (r *Resolver) prompt(sub models.Subscription, accounts []models.Account) (string, bool, error) {
	open := make([]models.Account, 0, len(accounts))
	for _, acc := range accounts {
		if !acc.Closed {
			open = append(open, acc)
		}
	}

	fmt.Fprintf(r.out, "\nNo account matched for %q (%s, paid via %q)\n", sub.Name, sub.RawPrice, sub.PaymentMethod)
	fmt.Fprintln(r.out, "  0) skip this subscription")
	for i, acc := range open {
		fmt.Fprintf(r.out, "  %d) %s\n", i+1, acc.Name)
	}

	for {
		fmt.Fprint(r.out, "Select account: ")
		line, readErr := r.in.ReadString('\n')
		answer := strings.TrimSpace(line)

		choice, convErr := strconv.Atoi(answer)
		if convErr != nil || choice < 0 || choice > len(open) {
			if readErr != nil {
				return "", false, fmt.Errorf("failed to read account selection: %w", readErr)
			}
			fmt.Fprintf(r.out, "invalid choice %q, enter a number between 0 and %d\n", answer, len(open))
			continue
		}

		if choice == 0 {
			return "", true, nil
		}
		return open[choice-1].ID, false, nil
	}
}

func findByName(accounts []models.Account, name string) (models.Account, bool) {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return models.Account{}, false
	}
	for _, acc := range accounts {
		if strings.ToLower(strings.TrimSpace(acc.Name)) == needle {
			return acc, true
		}
	}
	return models.Account{}, false
}
