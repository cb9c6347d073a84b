// Package extract derives statement metadata from untrusted converter output.
//
// The converter prints advisory marker lines on stdout ("Wykryty bank: ...",
// "Miesiąc wyciągu: ...") but older variants only print dates, and some print
// nothing useful at all, so every extractor is a layered list of patterns
// evaluated until the first match. A miss degrades to a sentinel value and
// never fails a request.
package extract

import (
	"bufio"
	"os"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/insightdelivered/mt940-gateway/internal/models"
)

// Unknown is the sentinel reported whenever detection finds nothing usable.
// The converter localizes to Polish, and so do we.
const Unknown = "Nieznany"

// monthNames is the Polish month table, indexed by month number minus one.
var monthNames = [12]string{
	"Styczeń", "Luty", "Marzec", "Kwiecień", "Maj", "Czerwiec",
	"Lipiec", "Sierpień", "Wrzesień", "Październik", "Listopad", "Grudzień",
}

// MonthName returns the localized name for month 1..12, or "" out of range.
func MonthName(m int) string {
	if m < 1 || m > 12 {
		return ""
	}
	return monthNames[m-1]
}

// Statement text markers and date shapes, in detection priority order.
var (
	monthMarkerPattern = regexp.MustCompile(`(?i)Miesiąc wyciągu:\s*(.+)`)
	periodPattern      = regexp.MustCompile(`(?i)Za okres od\s+(\d{1,2})/(\d{1,2})/(\d{4})`)
	dottedDatePattern  = regexp.MustCompile(`\b(\d{1,2})\.(\d{1,2})\.(\d{4})\b`)
	isoDatePattern     = regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})\b`)
	monthYearPattern   = regexp.MustCompile(`\b(\d{1,2})/(\d{4})\b`)
	namePrefixPattern  = regexp.MustCompile(`^(\d{4})(\d{2})`)

	bankMarkerPattern = regexp.MustCompile(`(?i)Wykryty bank:\s*(.+)`)

	// MT940 tags one transaction record per :61: line.
	transactionTagPattern = regexp.MustCompile(`^\s*:61:`)
)

// Extractor derives month, bank and transaction count for one conversion.
type Extractor struct {
	banks []Bank
}

// New builds an Extractor; a nil or empty bank table selects DefaultBanks.
func New(banks []Bank) *Extractor {
	if len(banks) == 0 {
		banks = DefaultBanks()
	}
	return &Extractor{banks: banks}
}

// Metadata combines all three detections. storedName is the sanitized name
// the upload was stored under; it backs the filename-derived fallbacks.
func (e *Extractor) Metadata(stdoutText, outputPath, storedName string) models.Metadata {
	return models.Metadata{
		Month:        DetectMonth(stdoutText, storedName),
		Bank:         e.DetectBank(stdoutText, storedName),
		Transactions: CountTransactions(outputPath),
	}
}

// monthRule pairs a pattern with its extractor; rules run in order and the
// first one yielding a plausible label (3+ characters) wins.
type monthRule struct {
	name  string
	apply func(text, storedName string) string
}

var monthRules = []monthRule{
	{"marker", func(text, _ string) string {
		if m := monthMarkerPattern.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1])
		}
		return ""
	}},
	{"period", func(text, _ string) string {
		if m := periodPattern.FindStringSubmatch(text); m != nil {
			return monthLabel(m[2], m[3])
		}
		return ""
	}},
	{"dotted-date", func(text, _ string) string {
		if m := dottedDatePattern.FindStringSubmatch(text); m != nil {
			return monthLabel(m[2], m[3])
		}
		return ""
	}},
	{"iso-date", func(text, _ string) string {
		if m := isoDatePattern.FindStringSubmatch(text); m != nil {
			return monthLabel(m[2], m[1])
		}
		return ""
	}},
	{"month-year", func(text, _ string) string {
		if m := monthYearPattern.FindStringSubmatch(text); m != nil {
			return monthLabel(m[1], m[2])
		}
		return ""
	}},
	{"filename-prefix", func(_, storedName string) string {
		if m := namePrefixPattern.FindStringSubmatch(storedName); m != nil {
			return monthLabel(m[2], m[1])
		}
		return ""
	}},
}

// DetectMonth reports the statement month as a localized "<Month> <year>"
// label, or Unknown when no pattern yields one.
func DetectMonth(stdoutText, storedName string) string {
	for _, rule := range monthRules {
		if label := rule.apply(stdoutText, storedName); len([]rune(label)) >= 3 {
			return label
		}
	}
	return Unknown
}

// monthLabel formats "<Month> <year>" from numeric strings. An out-of-range
// month yields "" so the caller falls through to the next rule instead of
// indexing the month table out of bounds.
func monthLabel(monthStr, yearStr string) string {
	month, err := strconv.Atoi(monthStr)
	if err != nil {
		return ""
	}
	name := MonthName(month)
	if name == "" {
		return ""
	}
	return name + " " + yearStr
}

// DetectBank reports the canonical bank name. Checks run in order: known
// identifiers anywhere in the text, the converter's explicit marker line,
// then the second underscore-separated token of the stored filename.
func (e *Extractor) DetectBank(stdoutText, storedName string) string {
	lower := strings.ToLower(stdoutText)
	for _, bank := range e.banks {
		for _, id := range bank.Identifiers {
			if strings.Contains(lower, id) {
				return bank.Name
			}
		}
	}

	if m := bankMarkerPattern.FindStringSubmatch(stdoutText); m != nil {
		if label := titleCase(strings.TrimSpace(m[1])); len([]rune(label)) >= 2 {
			return label
		}
	}

	if tokens := strings.Split(storedName, "_"); len(tokens) >= 2 {
		if label := titleCase(tokens[1]); len([]rune(label)) >= 2 {
			return label
		}
	}

	return Unknown
}

// titleCase uppercases the first letter and lowercases the rest.
func titleCase(s string) string {
	r := []rune(strings.ToLower(s))
	if len(r) == 0 {
		return ""
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// CountTransactions counts :61: records in the stored MT940 file. The
// converter writes Windows-1250, so the file is decoded before scanning.
// Any read failure degrades to zero; the count is enrichment, not a gate.
func CountTransactions(outputPath string) int {
	f, err := os.Open(outputPath)
	if err != nil {
		return 0
	}
	defer f.Close()

	count := 0
	sc := bufio.NewScanner(transform.NewReader(f, charmap.Windows1250.NewDecoder()))
	for sc.Scan() {
		if transactionTagPattern.MatchString(sc.Text()) {
			count++
		}
	}
	return count
}
