package projects

// SizeCategory is an ordinal bucket of project financing size.
type SizeCategory int

const (
	SizeNoFinancing SizeCategory = iota
	SizeSmall
	SizeMedium
	SizeLarge
	SizeVeryLarge
	SizeMega
)

var sizeLabels = map[SizeCategory]string{
	SizeNoFinancing: "No financing",
	SizeSmall:       "Small (< $10M)",
	SizeMedium:      "Medium ($10-50M)",
	SizeLarge:       "Large ($50-200M)",
	SizeVeryLarge:   "Very Large ($200-500M)",
	SizeMega:        "Mega (> $500M)",
}

func (c SizeCategory) String() string {
	return sizeLabels[c]
}

// ClassifySize buckets a commitment amount, given in millions of
// dollars. Exactly zero is its own bucket; every other boundary is
// closed below and open above, the top bucket is unbounded.
//
//	0          -> No financing
//	(0, 10)    -> Small
//	[10, 50)   -> Medium
//	[50, 200)  -> Large
//	[200, 500) -> Very Large
//	[500, inf) -> Mega
//
// Negative input is a caller error, no sanitizing happens here.
func ClassifySize(amountMillions float64) SizeCategory {
	switch {
	case amountMillions == 0:
		return SizeNoFinancing
	case amountMillions < 10:
		return SizeSmall
	case amountMillions < 50:
		return SizeMedium
	case amountMillions < 200:
		return SizeLarge
	case amountMillions < 500:
		return SizeVeryLarge
	default:
		return SizeMega
	}
}
