package format

// Length-to-scale tables keep long formatted strings inside their
// fixed-width regions. Each region has its own boundaries because the
// regions differ in width, but all tables are monotonic: a longer string
// never gets a larger factor than a shorter one.

type scaleBucket struct {
	minLen int
	factor float64
}

var amountBuckets = []scaleBucket{
	{23, 0.55},
	{19, 0.65},
	{15, 0.8},
	{12, 0.9},
}

var partyBuckets = []scaleBucket{
	{33, 0.6},
	{27, 0.7},
	{21, 0.85},
}

var dateBuckets = []scaleBucket{
	{25, 0.7},
	{20, 0.85},
}

func scaleFor(s string, buckets []scaleBucket) float64 {
	n := len([]rune(s))
	for _, b := range buckets {
		if n >= b.minLen {
			return b.factor
		}
	}
	return 1.0
}

// AmountScale returns the font-size factor for a formatted amount so very
// large totals do not overflow the totals table cells.
func AmountScale(formatted string) float64 {
	return scaleFor(formatted, amountBuckets)
}

// PartyScale returns the factor for the from/to party block, keyed on its
// longest rendered field (usually the email address).
func PartyScale(formatted string) float64 {
	return scaleFor(formatted, partyBuckets)
}

// DateScale returns the factor for the combined dates region in the
// document header.
func DateScale(formatted string) float64 {
	return scaleFor(formatted, dateBuckets)
}
