package format

import (
	"fmt"
	"time"
)

var dutchMonths = [12]string{
	"jan", "feb", "mrt", "apr", "mei", "jun",
	"jul", "aug", "sep", "okt", "nov", "dec",
}

// FormDate renders a date the way form fields show it: zero-padded day and
// month with a 4-digit year ("01-02-2024").
func FormDate(t time.Time) string {
	return t.Format("02-01-2006")
}

// DocumentDate renders the slightly longer form used inside rendered
// documents ("1 feb 2024").
func DocumentDate(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), dutchMonths[t.Month()-1], t.Year())
}
