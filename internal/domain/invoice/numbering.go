package invoice

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var digitRun = regexp.MustCompile(`\d+`)

// NextInvoiceNumber derives the next sequential invoice number from the
// existing set. For every invoice the last contiguous run of digits in its
// number is taken; the invoice with the numerically largest run wins and its
// prefix and zero padding are preserved. Ties keep the first winner in
// iteration order. Without any numeric run the suggestion falls back to
// "<year>-001".
//
// Human-edited numbers in arbitrary mixed formats must never make this
// throw; unparseable runs are simply skipped.
func NextInvoiceNumber(existing []*Invoice) string {
	var (
		found  bool
		best   int64
		prefix string
		width  int
	)

	for _, inv := range existing {
		if inv == nil {
			continue
		}
		locs := digitRun.FindAllStringIndex(inv.InvoiceNumber, -1)
		if len(locs) == 0 {
			continue
		}
		last := locs[len(locs)-1]
		run := inv.InvoiceNumber[last[0]:last[1]]
		value, err := strconv.ParseInt(run, 10, 64)
		if err != nil {
			// run longer than an int64, treat as non-numeric
			continue
		}
		if !found || value > best {
			found = true
			best = value
			prefix = inv.InvoiceNumber[:last[0]]
			width = len(run)
		}
	}

	if !found {
		return fmt.Sprintf("%d-001", time.Now().Year())
	}

	return fmt.Sprintf("%s%0*d", prefix, width, best+1)
}
