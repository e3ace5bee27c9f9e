package resolver

import (
	"bufio"
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wallact/wallact/pkg/mapping"
	"github.com/wallact/wallact/pkg/models"
)

var accounts = []models.Account{
	{ID: "acc-1", Name: "Checking"},
	{ID: "acc-2", Name: "Savings"},
	{ID: "acc-3", Name: "Old Card", Closed: true},
}

func newResolver(input string, aliases *mapping.Mapping) (*Resolver, *bytes.Buffer) {
	out := &bytes.Buffer{}
	r := New(log.New(io.Discard), bufio.NewReader(strings.NewReader(input)), out, aliases)
	return r, out
}

func TestPaymentMethodBeatsNotes(t *testing.T) {
	r, _ := newResolver("", nil)

	sub := models.Subscription{Name: "Netflix", PaymentMethod: "Checking", Notes: "Savings"}
	id, skip, err := r.Resolve(sub, accounts, "")

	require.NoError(t, err)
	assert.False(t, skip)
	assert.Equal(t, "acc-1", id)
}

func TestNotesTier(t *testing.T) {
	r, _ := newResolver("", nil)

	sub := models.Subscription{Name: "Netflix", PaymentMethod: "PayPal", Notes: " savings "}
	id, _, err := r.Resolve(sub, accounts, "")

	require.NoError(t, err)
	assert.Equal(t, "acc-2", id)
}

func TestDefaultAccountTier(t *testing.T) {
	r, _ := newResolver("", nil)

	sub := models.Subscription{Name: "Netflix", PaymentMethod: "PayPal"}
	id, skip, err := r.Resolve(sub, accounts, "acc-2")

	require.NoError(t, err)
	assert.False(t, skip)
	assert.Equal(t, "acc-2", id)
}

func TestResolveDefault(t *testing.T) {
	r, _ := newResolver("", nil)

	assert.Equal(t, "acc-1", r.ResolveDefault(accounts, "checking"))
	// unknown names downgrade to no default instead of failing
	assert.Equal(t, "", r.ResolveDefault(accounts, "Brokerage"))
	assert.Equal(t, "", r.ResolveDefault(accounts, ""))
}

func TestAliasMapping(t *testing.T) {
	aliases := &mapping.Mapping{Aliases: map[string]string{"Visa ending 4242": "Checking"}}
	r, _ := newResolver("", aliases)

	sub := models.Subscription{Name: "Netflix", PaymentMethod: "visa ending 4242"}
	id, _, err := r.Resolve(sub, accounts, "")

	require.NoError(t, err)
	assert.Equal(t, "acc-1", id)
}

func TestPromptSelectsAccount(t *testing.T) {
	// Garbage and out-of-range input re-prompts until a valid choice.
	r, out := newResolver("abc\n9\n2\n", nil)

	sub := models.Subscription{Name: "Netflix", PaymentMethod: "PayPal", RawPrice: "$15.99"}
	id, skip, err := r.Resolve(sub, accounts, "")

	require.NoError(t, err)
	assert.False(t, skip)
	assert.Equal(t, "acc-2", id)

	prompt := out.String()
	assert.Contains(t, prompt, "0) skip")
	assert.Contains(t, prompt, "1) Checking")
	assert.Contains(t, prompt, "2) Savings")
	// closed accounts are never offered
	assert.NotContains(t, prompt, "Old Card")
	assert.Contains(t, prompt, "invalid choice")
}

func TestPromptSkip(t *testing.T) {
	r, _ := newResolver("0\n", nil)

	sub := models.Subscription{Name: "Netflix", PaymentMethod: "PayPal"}
	id, skip, err := r.Resolve(sub, accounts, "")

	require.NoError(t, err)
	assert.True(t, skip)
	assert.Equal(t, "", id)
}

func TestPromptReadFailure(t *testing.T) {
	// Input ends before a valid choice was made.
	r, _ := newResolver("not a number\n", nil)

	sub := models.Subscription{Name: "Netflix", PaymentMethod: "PayPal"}
	_, _, err := r.Resolve(sub, accounts, "")
	require.Error(t, err)
}
