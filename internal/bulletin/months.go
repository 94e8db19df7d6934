/*
Package bulletin holds the change detection and publication expectation logic
for ING's monthly economic bulletins.
*/
package bulletin

import (
	"strconv"
	"strings"
	"time"
)

var turkishMonths = [12]string{
	"Ocak",
	"Şubat",
	"Mart",
	"Nisan",
	"Mayıs",
	"Haziran",
	"Temmuz",
	"Ağustos",
	"Eylül",
	"Ekim",
	"Kasım",
	"Aralık",
}

var monthsByName = func() map[string]time.Month {
	m := make(map[string]time.Month, len(turkishMonths))
	for i, name := range turkishMonths {
		m[name] = time.Month(i + 1)
	}
	return m
}()

// MonthName returns the Turkish name for m, or "" if m is out of range.
func MonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return turkishMonths[m-1]
}

// MonthFromName is the inverse of MonthName. Matching is exact.
func MonthFromName(name string) (time.Month, bool) {
	m, ok := monthsByName[name]
	return m, ok
}

// ParsePeriod finds the first "<Turkish month> <year>" pair in a bulletin title.
func ParsePeriod(title string) (time.Month, int, bool) {
	fields := strings.Fields(title)
	for i := 0; i+1 < len(fields); i++ {
		m, ok := MonthFromName(fields[i])
		if !ok {
			continue
		}
		year, err := strconv.Atoi(strings.TrimRight(fields[i+1], ".,;:"))
		if err != nil || year < 1000 {
			continue
		}
		return m, year, true
	}
	return 0, 0, false
}
