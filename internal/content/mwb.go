package content

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"jwsched/internal/language"
	"jwsched/internal/schedule"
)

// IsValidMWB reports whether doc has the structure of a Meeting Workbook
// week document: the week heading, the bible-reading heading, and at least
// one part container.
func IsValidMWB(doc *goquery.Document) bool {
	if doc == nil {
		return false
	}
	if doc.Find("h1").Length() == 0 || doc.Find("h2").Length() == 0 {
		return false
	}
	return doc.Find(".pGroup").Length() > 0 || doc.Find("h3").Length() > 0
}

// IsValidW reports whether doc has the structure of a Watchtower table of
// contents.
func IsValidW(doc *goquery.Document) bool {
	return doc != nil && doc.Find("h3").Length() > 0
}

// ayfCount counts the student parts in the ministry section. The sectioned
// layout lists them directly; older layouts are counted via the section's
// heading color class, whose matches include the section title itself.
func ayfCount(doc *goquery.Document) int {
	if section := doc.Find("#section3").First(); section.Length() > 0 {
		return section.Find("li").Length()
	}
	n := doc.Find(".du-color--gold-700").Length()
	return max(1, n-1)
}

// lcCount counts the Living as Christians parts, excluding the fixed
// congregation-study and review entries.
func lcCount(doc *goquery.Document) int {
	if section := doc.Find("#section4").First(); section.Length() > 0 {
		if section.Find("li").Length() == 6 {
			return 2
		}
		return 1
	}
	n := doc.Find(".du-color--maroon-600.du-margin-top--8.du-margin-bottom--0").Length()
	return max(1, n-1)
}

// ParseMWBWeeks extracts one schedule per week document, in input order.
func ParseMWBWeeks(docs []*goquery.Document, year int, lang string, enhanced bool) []schedule.MWBWeek {
	weeks := make([]schedule.MWBWeek, 0, len(docs))
	for _, doc := range docs {
		weeks = append(weeks, ParseMWBWeek(doc, year, lang, enhanced))
	}
	return weeks
}

// ParseMWBWeek extracts a single week schedule from a valid week document.
// enhanced requests language-aware extraction; it only takes effect when
// the language has a profile.
func ParseMWBWeek(doc *goquery.Document, year int, lang string, enhanced bool) schedule.MWBWeek {
	profile := language.Get(lang)
	enhanced = enhanced && profile != nil

	var week schedule.MWBWeek

	if weekDate, ok := firstText(doc.Selection, "h1"); ok {
		if enhanced {
			if normalized, ok := profile.MWBDate(weekDate, year); ok {
				week.WeekDate = schedule.Ptr(normalized)
			} else {
				week.WeekDate = schedule.Ptr(weekDate)
			}
			week.WeekDateLocale = schedule.Ptr(weekDate)
		} else {
			week.WeekDate = schedule.Ptr(weekDate)
		}
	}

	if reading, ok := firstText(doc.Selection, "h2"); ok {
		week.WeeklyBibleReading = schedule.Ptr(reading)
	}

	splits := strings.Split(mwbSources(doc), "@")

	if len(splits) > 1 {
		week.SongFirst = songRef(splits[1])
	}

	if len(splits) > 3 {
		seg := strings.TrimSpace(splits[3])
		if enhanced {
			es := decomposeSource(seg, lang)
			week.TGWTalk = optional(es.typeName)
			week.TGWTalkTitle = schedule.Ptr(es.fullTitle)
		} else {
			week.TGWTalk = schedule.Ptr(seg)
		}
	}

	if len(splits) > 4 {
		seg := strings.TrimSpace(splits[4])
		if enhanced {
			week.TGWGemsTitle = schedule.Ptr(decomposeSource(seg, lang).fullTitle)
		} else {
			week.TGWGemsTitle = schedule.Ptr(seg)
		}
	}

	if len(splits) > 7 {
		seg := strings.TrimSpace(splits[7])
		if enhanced {
			es := decomposeSource(seg, lang)
			week.TGWBread = schedule.Ptr(es.src)
			week.TGWBreadTitle = schedule.Ptr(es.fullTitle)
		} else {
			week.TGWBread = schedule.Ptr(seg)
		}
	}

	count := ayfCount(doc)
	week.AYFCount = count

	type ayfSlot struct {
		part  **string
		time  **int
		kind  **string
		title **string
	}
	slots := []ayfSlot{
		{&week.AYFPart1, &week.AYFPart1Time, &week.AYFPart1Type, &week.AYFPart1Title},
		{&week.AYFPart2, &week.AYFPart2Time, &week.AYFPart2Type, &week.AYFPart2Title},
		{&week.AYFPart3, &week.AYFPart3Time, &week.AYFPart3Type, &week.AYFPart3Title},
		{&week.AYFPart4, &week.AYFPart4Time, &week.AYFPart4Type, &week.AYFPart4Title},
	}
	for i, slot := range slots {
		idx := 8 + i
		if i > 0 && count <= i {
			break
		}
		if len(splits) <= idx {
			break
		}
		seg := strings.TrimSpace(splits[idx])
		if enhanced {
			es := decomposeSource(seg, lang)
			*slot.part = schedule.Ptr(es.src)
			*slot.time = es.time
			*slot.kind = optional(es.typeName)
			*slot.title = schedule.Ptr(es.fullTitle)
		} else {
			*slot.part = schedule.Ptr(seg)
		}
	}

	// Segment positions after the student parts shift by how many parts
	// this week carries.
	next := 8 + count
	if len(splits) > next {
		week.SongMiddle = songRef(splits[next])
	}

	lc := lcCount(doc)
	week.LCCount = lc

	next++
	if len(splits) > next {
		seg := strings.TrimSpace(splits[next])
		if enhanced {
			es := decomposeSource(seg, lang)
			week.LCPart1 = optional(es.typeName)
			week.LCPart1Time = es.time
			week.LCPart1Title = schedule.Ptr(es.fullTitle)
			if es.src != "" {
				week.LCPart1Content = schedule.Ptr(es.src)
			}
		} else {
			week.LCPart1 = schedule.Ptr(seg)
		}
	}

	if lc == 2 {
		next++
		if len(splits) > next {
			seg := strings.TrimSpace(splits[next])
			if enhanced {
				es := decomposeSource(seg, lang)
				week.LCPart2 = optional(es.typeName)
				week.LCPart2Time = es.time
				week.LCPart2Title = schedule.Ptr(es.fullTitle)
				if es.src != "" {
					week.LCPart2Content = schedule.Ptr(es.src)
				}
			} else {
				week.LCPart2 = schedule.Ptr(seg)
			}
		}
	}

	next++
	if len(splits) > next {
		seg := strings.TrimSpace(splits[next])
		if enhanced {
			es := decomposeSource(seg, lang)
			week.LCCbs = schedule.Ptr(es.src)
			week.LCCbsTitle = schedule.Ptr(es.fullTitle)
		} else {
			week.LCCbs = schedule.Ptr(seg)
		}
	}

	next += 2
	if len(splits) > next {
		week.SongConclude = songRef(strings.TrimSpace(splits[next]))
	}

	return week
}

// songRef applies the song-number rule: a valid number becomes numeric, any
// other non-empty text is kept verbatim, empty input yields no field.
func songRef(text string) *schedule.SongRef {
	if text == "" {
		return nil
	}
	if n, ok := language.ExtractSongNumber(text); ok {
		return schedule.SongNumber(n)
	}
	return schedule.SongText(text)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return schedule.Ptr(s)
}
