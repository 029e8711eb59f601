package documents

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Extractor turns raw pdf bytes into plain text. Actual pdf parsing
// lives behind this boundary and is supplied by the caller.
type Extractor interface {
	Extract(pdf []byte) (string, error)
}

// PlainTextExtractor handles documents whose bytes already are text
// (the document api serves text renditions alongside pdfs). It rejects
// content that is mostly binary.
type PlainTextExtractor struct{}

func (PlainTextExtractor) Extract(pdf []byte) (string, error) {
	if !utf8.Valid(pdf) {
		return "", fmt.Errorf("content is not valid utf-8")
	}
	text := string(pdf)

	printable := 0
	total := 0
	for _, r := range text {
		total++
		if unicode.IsPrint(r) || unicode.IsSpace(r) {
			printable++
		}
	}
	if total == 0 || float64(printable)/float64(total) < 0.9 {
		return "", fmt.Errorf("content is mostly binary")
	}
	return text, nil
}

var (
	multiNewlines = regexp.MustCompile(`\n{3,}`)
	multiSpaces   = regexp.MustCompile(` {2,}`)
	bareNumbers   = regexp.MustCompile(`\n\d+\n`)
)

// CleanText normalizes extracted text: collapses blank runs, squeezes
// repeated spaces and drops lines that are bare page numbers.
func CleanText(text string) string {
	if text == "" {
		return ""
	}
	text = multiNewlines.ReplaceAllString(text, "\n\n")
	text = multiSpaces.ReplaceAllString(text, " ")
	text = bareNumbers.ReplaceAllString(text, "\n")
	return strings.TrimSpace(text)
}

const summaryMaxLength = 500

// Summarize takes the leading sentences of the text up to the length
// cap. Short texts are returned unchanged.
func Summarize(text string) string {
	if len(text) < 200 {
		return text
	}

	sentences := strings.Split(text, ". ")
	var summary strings.Builder
	for _, sentence := range sentences {
		if summary.Len()+len(sentence) >= summaryMaxLength {
			break
		}
		summary.WriteString(sentence)
		summary.WriteString(". ")
	}
	return strings.TrimSpace(summary.String())
}

var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true,
	"but": true, "in": true, "on": true, "at": true, "to": true,
	"for": true, "of": true, "with": true, "is": true, "was": true,
	"are": true, "were": true, "been": true, "be": true, "have": true,
	"has": true, "this": true, "that": true, "these": true,
	"those": true, "by": true, "from": true, "as": true, "it": true,
	"its": true,
}

const maxKeywords = 10

// Keywords picks the most frequent non-stopword terms from the text.
// Ties break alphabetically so the output is deterministic.
func Keywords(text string) []string {
	if text == "" {
		return nil
	}

	freq := map[string]int{}
	for _, word := range strings.Fields(strings.ToLower(text)) {
		var cleaned strings.Builder
		for _, r := range word {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				cleaned.WriteRune(r)
			}
		}
		w := cleaned.String()
		if len(w) > 3 && !stopWords[w] {
			freq[w]++
		}
	}

	words := make([]string, 0, len(freq))
	for w := range freq {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool {
		if freq[words[i]] != freq[words[j]] {
			return freq[words[i]] > freq[words[j]]
		}
		return words[i] < words[j]
	})

	if len(words) > maxKeywords {
		words = words[:maxKeywords]
	}
	return words
}

// ReadingTime estimates minutes to read at 200 words per minute,
// never reporting less than one minute.
func ReadingTime(text string) int {
	minutes := len(strings.Fields(text)) / 200
	if minutes < 1 {
		return 1
	}
	return minutes
}
