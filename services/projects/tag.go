package projects

import (
	"strconv"
	"strings"
)

// Tagged is a raw record augmented with the derived fields the
// downstream store and reports work off of.
type Tagged struct {
	Project

	CommitmentMillions float64      `json:"tagged_commitment"`
	IbrdMillions       float64      `json:"tagged_ibrd_commitment"`
	IdaMillions        float64      `json:"tagged_ida_commitment"`
	Size               SizeCategory `json:"-"`
	SizeLabel          string       `json:"tagged_size"`
	TaggedCountryCode  string       `json:"tagged_country_code"`
	TaggedCountry      string       `json:"tagged_country"`
	TaggedRegion       string       `json:"tagged_region"`
}

// Tag derives the classification fields for one raw record. It never
// fails: a missing or unparseable amount counts as zero, a missing
// country code becomes the empty string.
func Tag(raw Project) Tagged {
	commitment := parseAmountMillions(string(raw.TotalCommAmt))
	size := ClassifySize(commitment)

	return Tagged{
		Project:            raw,
		CommitmentMillions: commitment,
		IbrdMillions:       parseAmountMillions(string(raw.IbrdCommAmt)),
		IdaMillions:        parseAmountMillions(string(raw.IdaCommAmt)),
		Size:               size,
		SizeLabel:          size.String(),
		TaggedCountryCode:  raw.CountryCode.First(),
		TaggedCountry:      raw.CountryShortName,
		TaggedRegion:       raw.RegionName,
	}
}

// TagAll tags every record in place of a fresh slice.
func TagAll(raw []Project) []Tagged {
	tagged := make([]Tagged, len(raw))
	for i, r := range raw {
		tagged[i] = Tag(r)
	}
	return tagged
}

// parseAmountMillions parses a raw dollar amount that may carry
// thousands separators, scaling it to millions. Missing or malformed
// input counts as zero; upstream never reports negative amounts so
// junk that parses negative is clamped to zero as well.
func parseAmountMillions(raw string) float64 {
	if raw == "" {
		raw = "0"
	}
	cleaned := strings.ReplaceAll(raw, ",", "")
	amount, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || amount < 0 {
		return 0
	}
	return amount / 1_000_000
}
