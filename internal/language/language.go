package language

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Profile holds the parsing tables for one supported language.
type Profile struct {
	Code string
	Name string

	months map[string]int

	// mwbDatePattern captures the first day range of an MWB week heading.
	mwbDatePattern *regexp.Regexp
	// wStudyDatePattern captures the dated range of a Watchtower study line.
	wStudyDatePattern *regexp.Regexp
	// minutesPattern anchors on the language's minutes marker.
	minutesPattern *regexp.Regexp

	// Capture-group indices. Day/month/year sit at different positions per
	// language, so the bindings are pinned explicitly rather than derived.
	mwbMonthGroup, mwbDayGroup         int
	wDayGroup, wMonthGroup, wYearGroup int
}

// MaxSongNumber is the highest number in the current songbook.
const MaxSongNumber = 162

var profiles = map[string]*Profile{}

func register(p *Profile, aliases ...string) {
	profiles[p.Code] = p
	for _, alias := range aliases {
		profiles[alias] = p
	}
}

func init() {
	register(&Profile{
		Code: "E",
		Name: "English",
		months: map[string]int{
			"january": 1, "february": 2, "march": 3, "april": 4,
			"may": 5, "june": 6, "july": 7, "august": 8,
			"september": 9, "october": 10, "november": 11, "december": 12,
		},
		mwbDatePattern: regexp.MustCompile(
			`(?i)(january|february|march|april|may|june|july|august|september|october|november|december)\s+(\d{1,2})(?:-(\d{1,2}))?`),
		wStudyDatePattern: regexp.MustCompile(
			`(?i)Study Article\s+(\d+):\s*(\w+)\s+(\d{1,2})(?:-(\d{1,2}))?,?\s*(\d{4})`),
		minutesPattern: regexp.MustCompile(`(\d+)\s*min\.?`),
		mwbMonthGroup:  1, mwbDayGroup: 2,
		wMonthGroup: 2, wDayGroup: 3, wYearGroup: 5,
	})

	register(&Profile{
		Code: "K",
		Name: "Ukrainian",
		months: map[string]int{
			"січня": 1, "січень": 1, "лютого": 2, "лютий": 2,
			"березня": 3, "березень": 3, "квітня": 4, "квітень": 4,
			"травня": 5, "травень": 5, "червня": 6, "червень": 6,
			"липня": 7, "липень": 7, "серпня": 8, "серпень": 8,
			"вересня": 9, "вересень": 9, "жовтня": 10, "жовтень": 10,
			"листопада": 11, "листопад": 11, "грудня": 12, "грудень": 12,
		},
		mwbDatePattern: regexp.MustCompile(
			`(?i)(\d{1,2})(?:[-–—](\d{1,2}))?\s+(січня|лютого|березня|квітня|травня|червня|липня|серпня|вересня|жовтня|листопада|грудня)`),
		wStudyDatePattern: regexp.MustCompile(
			`(?i)Стаття(?:\s+для\s+вивчення)?\s+(\d+).*?(\d{1,2})(?:[-–—](\d{1,2}))?\s+(січня|лютого|березня|квітня|травня|червня|липня|серпня|вересня|жовтня|листопада|грудня)\s+(\d{4})`),
		minutesPattern: regexp.MustCompile(`(\d+)\s*хв\.?`),
		mwbDayGroup:    1, mwbMonthGroup: 3,
		wDayGroup: 2, wMonthGroup: 4, wYearGroup: 5,
	}, "U")

	register(&Profile{
		Code: "P",
		Name: "Polish",
		months: map[string]int{
			"stycznia": 1, "styczeń": 1, "lutego": 2, "luty": 2,
			"marca": 3, "marzec": 3, "kwietnia": 4, "kwiecień": 4,
			"maja": 5, "maj": 5, "czerwca": 6, "czerwiec": 6,
			"lipca": 7, "lipiec": 7, "sierpnia": 8, "sierpień": 8,
			"września": 9, "wrzesień": 9, "października": 10, "październik": 10,
			"listopada": 11, "listopad": 11, "grudnia": 12, "grudzień": 12,
		},
		mwbDatePattern: regexp.MustCompile(
			`(?i)(\d{1,2})(?:-(\d{1,2}))?\s+(stycznia|lutego|marca|kwietnia|maja|czerwca|lipca|sierpnia|września|października|listopada|grudnia)`),
		wStudyDatePattern: regexp.MustCompile(
			`(?i)Artykuł\s+do\s+studium\s+(\d+).*?(\d{1,2})(?:-(\d{1,2}))?\s+(\p{L}+)\s+(\d{4})`),
		minutesPattern: regexp.MustCompile(`(\d+)\s*min\.?`),
		mwbDayGroup:    1, mwbMonthGroup: 3,
		wDayGroup: 2, wMonthGroup: 4, wYearGroup: 5,
	})
}

// Get returns the profile for a language code, or nil when the language has
// no enhanced support. Lookup is case-insensitive.
func Get(code string) *Profile {
	if code == "" {
		return nil
	}
	return profiles[strings.ToUpper(strings.TrimSpace(code))]
}

// Enhanced reports whether enhanced parsing is available for code.
func Enhanced(code string) bool { return Get(code) != nil }

// Supported lists the primary profile codes, sorted. Aliases fold into
// their primary code.
func Supported() []string {
	seen := map[string]struct{}{}
	var codes []string
	for _, p := range profiles {
		if _, ok := seen[p.Code]; ok {
			continue
		}
		seen[p.Code] = struct{}{}
		codes = append(codes, p.Code)
	}
	for i := 1; i < len(codes); i++ {
		for j := i; j > 0 && codes[j] < codes[j-1]; j-- {
			codes[j], codes[j-1] = codes[j-1], codes[j]
		}
	}
	return codes
}

var (
	firstInteger   = regexp.MustCompile(`\d+`)
	defaultMinutes = regexp.MustCompile(`(\d+)\s*min`)
)

// ExtractSongNumber scans text for its first integer and applies the
// songbook range check. The bool reports whether a valid song number was
// found; callers keep the original text otherwise.
func ExtractSongNumber(text string) (int, bool) {
	m := firstInteger.FindString(text)
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil || n < 1 || n > MaxSongNumber {
		return 0, false
	}
	return n, true
}

// ExtractTime pulls a duration in minutes out of part text using the
// language's minutes marker. Unsupported languages fall back to the English
// marker. Returns nil when no duration is present.
func ExtractTime(text, code string) *int {
	if text == "" {
		return nil
	}
	pattern := defaultMinutes
	if p := Get(code); p != nil {
		pattern = p.minutesPattern
	}
	m := pattern.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	return &n
}

// MonthNumber resolves a month name to 1..12 for the given language, or 0
// when unknown. Input is NFC-folded before lookup so decomposed text from
// EPUB tool chains still matches.
func MonthNumber(name, code string) int {
	p := Get(code)
	if p == nil || name == "" {
		return 0
	}
	return p.months[strings.ToLower(norm.NFC.String(name))]
}

// MWBDate normalizes an MWB week heading to "YYYY/MM/DD" using the issue
// year. The bool is false when the heading does not match the profile; the
// caller keeps the locale text in that case.
func (p *Profile) MWBDate(text string, year int) (string, bool) {
	if p == nil || text == "" {
		return "", false
	}
	m := p.mwbDatePattern.FindStringSubmatch(norm.NFC.String(text))
	if m == nil {
		return "", false
	}
	day, err := strconv.Atoi(m[p.mwbDayGroup])
	if err != nil {
		return "", false
	}
	month := p.months[strings.ToLower(m[p.mwbMonthGroup])]
	if month == 0 {
		return "", false
	}
	return fmt.Sprintf("%d/%02d/%02d", year, month, day), true
}

// WStudyDate normalizes a Watchtower study heading to "YYYY/MM/DD". The
// year comes from the heading itself.
func (p *Profile) WStudyDate(text string) (string, bool) {
	if p == nil || text == "" {
		return "", false
	}
	m := p.wStudyDatePattern.FindStringSubmatch(norm.NFC.String(text))
	if m == nil {
		return "", false
	}
	day, dayErr := strconv.Atoi(m[p.wDayGroup])
	year, yearErr := strconv.Atoi(m[p.wYearGroup])
	if dayErr != nil || yearErr != nil {
		return "", false
	}
	month := p.months[strings.ToLower(m[p.wMonthGroup])]
	if month == 0 {
		return "", false
	}
	return fmt.Sprintf("%d/%02d/%02d", year, month, day), true
}
