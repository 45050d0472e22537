package content

import (
	"regexp"
	"strconv"

	"github.com/PuerkitoBio/goquery"

	"jwsched/internal/archive"
	"jwsched/internal/language"
	"jwsched/internal/pubfile"
	"jwsched/internal/schedule"
)

// Article pairs a study article body with its document identifier.
type Article struct {
	ID  int
	Doc *goquery.Document
}

// hrefDocID captures the numeric document id at the tail of a TOC link,
// e.g. "jwpub://b/NWTR:1102023401/".
var hrefDocID = regexp.MustCompile(`.+:(\w+)/$`)

// ParseWatchtowerJWPUB walks the TOC entries and resolves each study's
// article body by document id. Entries whose link or body cannot be
// resolved are skipped; a nil TOC yields an empty list.
func ParseWatchtowerJWPUB(toc *goquery.Document, articles []Article, lang string, enhanced bool) []schedule.WStudy {
	if toc == nil {
		return []schedule.WStudy{}
	}
	byID := make(map[int]*goquery.Document, len(articles))
	for _, a := range articles {
		byID[a.ID] = a.Doc
	}

	return parseWatchtower(toc, lang, enhanced, func(href string) *goquery.Document {
		m := hrefDocID.FindStringSubmatch(href)
		if m == nil {
			return nil
		}
		id, err := strconv.Atoi(m[1])
		if err != nil {
			return nil
		}
		return byID[id]
	})
}

// ParseWatchtowerEPUB walks the TOC entries and resolves each study's
// article body by locating the archive entry with the href's basename.
func ParseWatchtowerEPUB(toc *goquery.Document, arch *archive.Archive, lang string, enhanced bool) []schedule.WStudy {
	if toc == nil {
		return []schedule.WStudy{}
	}
	return parseWatchtower(toc, lang, enhanced, func(href string) *goquery.Document {
		data, ok := arch.FindBasename(pubfile.Basename(href))
		if !ok {
			return nil
		}
		doc, err := ParseDocument(data)
		if err != nil {
			return nil
		}
		return doc
	})
}

// parseWatchtower iterates the TOC h3 entries; resolve maps a link href to
// the study's article body. Rows that fail to resolve are dropped without
// failing the issue.
func parseWatchtower(toc *goquery.Document, lang string, enhanced bool, resolve func(href string) *goquery.Document) []schedule.WStudy {
	studies := []schedule.WStudy{}

	toc.Find("h3").Each(func(_ int, entry *goquery.Selection) {
		next := entry.Next()
		if next.Length() == 0 {
			return
		}
		link := next.Find("a").First()
		if link.Length() == 0 {
			return
		}
		href := link.AttrOr("href", "")
		if href == "" {
			return
		}
		body := resolve(href)
		if body == nil {
			return
		}
		studies = append(studies, parseWStudy(entry, body, lang, enhanced))
	})

	return studies
}

// parseWStudy builds one study record from its TOC entry and article body.
func parseWStudy(entry *goquery.Selection, body *goquery.Document, lang string, enhanced bool) schedule.WStudy {
	profile := language.Get(lang)
	enhanced = enhanced && profile != nil

	var study schedule.WStudy

	studyDate := wStudyDate(entry)
	if studyDate != "" {
		if enhanced {
			if normalized, ok := profile.WStudyDate(studyDate); ok {
				study.StudyDate = schedule.Ptr(normalized)
			} else {
				study.StudyDate = schedule.Ptr(studyDate)
			}
			study.StudyDateLocale = schedule.Ptr(studyDate)
		} else {
			study.StudyDate = schedule.Ptr(studyDate)
		}
	}

	if title := wStudyTitle(entry, body); title != "" {
		study.StudyTitle = schedule.Ptr(title)
	}

	study.OpeningSong, study.ConcludingSong = wStudySongs(body)

	return study
}

// wStudyDate prefers the description line inside the TOC entry, falling
// back to the entry's own heading text.
func wStudyDate(entry *goquery.Selection) string {
	if desc, ok := firstText(entry, ".desc"); ok {
		return desc
	}
	return text(entry)
}

// wStudyTitle reads the article body's leading h2, falling back to the TOC
// link text when the article carries no heading.
func wStudyTitle(entry *goquery.Selection, body *goquery.Document) string {
	if title, ok := firstText(body.Selection, "h2"); ok {
		return title
	}
	if next := entry.Next(); next.Length() > 0 {
		if title, ok := firstText(next, "a"); ok {
			return title
		}
	}
	return ""
}

// wStudySongs reads the opening and concluding songs from the article's
// publication-reference blocks. The concluding song sits after the teach
// block when the article has exactly two reference blocks with one; in
// every other shape the last reference block carries it.
func wStudySongs(body *goquery.Document) (opening, concluding *int) {
	refs := body.Find(".pubRefs")
	if refs.Length() == 0 {
		return nil, nil
	}

	opening = songNumber(text(refs.First()))

	if refs.Length() == 2 {
		if blockTeach := body.Find(".blockTeach").First(); blockTeach.Length() > 0 {
			if next := blockTeach.Next(); next.Length() > 0 {
				concluding = songNumber(text(next))
			}
			return opening, concluding
		}
	}
	concluding = songNumber(text(refs.Last()))
	return opening, concluding
}

// songNumber applies the song-number rule but keeps only numeric results;
// Watchtower song fields never carry free-form text.
func songNumber(text string) *int {
	if n, ok := language.ExtractSongNumber(text); ok {
		return &n
	}
	return nil
}
