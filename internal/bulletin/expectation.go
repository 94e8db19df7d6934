package bulletin

import (
	"fmt"
	"strings"
	"time"

	"github.com/shanehull/bultentakip/internal/types"
)

const (
	TitlePrefix = "Aylık Ekonomi Bülteni"

	// ExpectationWindowDays is the last day of the month on which the
	// current month's bulletin is checked for.
	ExpectationWindowDays = 5
)

// ExpectedTitle is the title the bulletin for t's month is published under.
func ExpectedTitle(t time.Time) string {
	return fmt.Sprintf("%s - %s %d", TitlePrefix, MonthName(t.Month()), t.Year())
}

// InExpectationWindow reports whether today is early enough in the month for
// the expectation check to run.
func InExpectationWindow(today time.Time) bool {
	return today.Day() <= ExpectationWindowDays
}

// ExpectedPublished reports whether the bulletin for today's month is in current.
// Outside the expectation window it returns false without looking.
func ExpectedPublished(today time.Time, current types.Snapshot) bool {
	if !InExpectationWindow(today) {
		return false
	}

	expected := ExpectedTitle(today)
	for _, b := range current {
		if strings.Contains(b.Title, expected) {
			return true
		}
	}
	return false
}
