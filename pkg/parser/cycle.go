package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/wallact/wallact/pkg/models"
)

// Matches "every N day/week/month/year" with an optional plural s.
var everyPattern = regexp.MustCompile(`every\s+(\d+)\s+(day|week|month|year)s?`)

var exactCycles = map[string]models.Frequency{
	"daily":    models.Daily,
	"weekly":   models.Weekly,
	"monthly":  models.Monthly,
	"yearly":   models.Yearly,
	"annually": models.Yearly,
}

var unitFrequencies = map[string]models.Frequency{
	"day":   models.Daily,
	"week":  models.Weekly,
	"month": models.Monthly,
	"year":  models.Yearly,
}

// ParseCycle normalizes a free-text payment cycle description into a
// frequency and interval. It never fails: rules are tried in order, first
// match wins, and anything unrecognized degrades to monthly/1 with a warning.
func (p *Parser) ParseCycle(text string) (models.Frequency, int) {
	cycle := strings.ToLower(strings.TrimSpace(text))

	if freq, ok := exactCycles[cycle]; ok {
		return freq, 1
	}

	// "every N <unit>" must run before the substring rules so that inputs
	// like "every 1 quarter" are never shadowed by "quarterly".
	if m := everyPattern.FindStringSubmatch(cycle); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			return unitFrequencies[m[2]], n
		}
	}

	switch {
	case strings.Contains(cycle, "bi-weekly"), strings.Contains(cycle, "biweekly"):
		return models.Weekly, 2
	case strings.Contains(cycle, "bi-monthly"), strings.Contains(cycle, "bimonthly"):
		return models.Monthly, 2
	case strings.Contains(cycle, "quarterly"):
		return models.Monthly, 3
	case strings.Contains(cycle, "semi-annual"), strings.Contains(cycle, "semiannual"):
		return models.Monthly, 6
	}

	p.logger.Warn("unrecognized payment cycle, defaulting to monthly", "cycle", text)
	return models.Monthly, 1
}
