package marketdata

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rxtech-lab/argo-dataset/pkg/errors"
)

// DefaultLivePeriod is the trailing window downloaded in live mode when no period is given.
const DefaultLivePeriod = "1d"

// PeriodUnit is the calendar unit of a Period.
type PeriodUnit string

const (
	PeriodDay   PeriodUnit = "d"
	PeriodWeek  PeriodUnit = "wk"
	PeriodMonth PeriodUnit = "mo"
	PeriodYear  PeriodUnit = "y"
)

// Period is a trailing calendar window such as 5d, 2wk, 6mo or 1y.
type Period struct {
	Count int
	Unit  PeriodUnit
}

// ParsePeriod parses a period string. Units are matched longest first so that
// "2wk" and "3mo" are not read as days.
func ParsePeriod(s string) (Period, error) {
	s = strings.ToLower(strings.TrimSpace(s))

	for _, unit := range []PeriodUnit{PeriodWeek, PeriodMonth, PeriodDay, PeriodYear} {
		digits, ok := strings.CutSuffix(s, string(unit))
		if !ok {
			continue
		}

		count, err := strconv.Atoi(digits)
		if err != nil || count < 1 {
			break
		}

		return Period{Count: count, Unit: unit}, nil
	}

	return Period{}, errors.Newf(errors.ErrCodeInvalidPeriod, "invalid period %q, expected <n>d, <n>wk, <n>mo or <n>y", s)
}

// Start returns the beginning of the period that ends at end.
func (p Period) Start(end time.Time) time.Time {
	switch p.Unit {
	case PeriodWeek:
		return end.AddDate(0, 0, -7*p.Count)
	case PeriodMonth:
		return end.AddDate(0, -p.Count, 0)
	case PeriodYear:
		return end.AddDate(-p.Count, 0, 0)
	default:
		return end.AddDate(0, 0, -p.Count)
	}
}

func (p Period) String() string {
	return fmt.Sprintf("%d%s", p.Count, p.Unit)
}
