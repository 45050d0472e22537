package content

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// mwbSources flattens a week document into the @-separated token sequence
// the field mapping indexes into. The paragraph-group layout is preferred;
// documents without it fall back to walking the h3 headings.
func mwbSources(doc *goquery.Document) string {
	var buf strings.Builder

	doc.Find(".pGroup").Each(func(_ int, group *goquery.Selection) {
		group.Find("li").Each(func(_ int, li *goquery.Selection) {
			p := li.Find("p").First()
			if p.Length() > 0 {
				buf.WriteString("@")
				buf.WriteString(text(p))
			}
		})
	})

	if buf.Len() == 0 {
		return strings.TrimSpace(mwbSourcesFromHeadings(doc))
	}
	return strings.TrimSpace(buf.String())
}

// mwbSourcesFromHeadings reconstructs the token sequence for layouts that
// carry no paragraph groups. Songs and parts are detected per heading; the
// second song may pull trailing prayer/comment paragraphs that the heading
// layout places outside any group.
func mwbSourcesFromHeadings(doc *goquery.Document) string {
	var buf strings.Builder
	songIndex := 0

	doc.Find("h3").Each(func(_ int, h3 *goquery.Selection) {
		isSong := h3.HasClass("dc-icon--music") || h3.Find(".dc-icon--music").Length() > 0

		parent := h3.Parent()
		isPart := parent.Length() == 0 || !parent.HasClass("boxContent")

		if isSong {
			songIndex++
		}
		if !isSong && !isPart {
			return
		}

		data := text(h3)
		if isSong {
			data = strings.ReplaceAll(data, "|", "@")
		}
		if isPart {
			if next := h3.Next(); next.Length() > 0 {
				if p := next.Find("p").First(); p.Length() > 0 {
					data += " " + text(p)
				}
			}
		}

		buf.WriteString("@")
		buf.WriteString(data)

		next := h3.Next()
		if isSong && songIndex == 2 && next.Length() > 0 && nodeNameIs(next, "div") {
			after := next.Next()
			if after.Length() == 0 || !nodeNameIs(after, "h3") {
				if p := next.Find("p").First(); p.Length() > 0 {
					buf.WriteString("@")
					buf.WriteString(text(p))
					if after.Length() > 0 {
						if tmpP := after.Find("p").First(); tmpP.Length() > 0 {
							buf.WriteString(" ")
							buf.WriteString(text(tmpP))
						}
					}
				}
			}
		}
	})

	src := buf.String()

	// The heading layout never emits the two segments that sit between the
	// opening-comments slot and the bible-reading slot in the paragraph
	// layout. Padding them keeps the positional field mapping identical for
	// both layouts. Layout heuristic: revisit whenever the publication HTML
	// changes shape.
	if pos := nthIndexOf(src, "@", 5); pos > 0 {
		src = src[:pos] + "@junk@junk" + src[pos:]
	}

	return src
}

func nodeNameIs(sel *goquery.Selection, name string) bool {
	return strings.EqualFold(goquery.NodeName(sel), name)
}

// nthIndexOf returns the byte index of the nth occurrence of substr (1-based),
// or -1.
func nthIndexOf(s, substr string, n int) int {
	pos := -1
	for i := 0; i < n; i++ {
		next := strings.Index(s[pos+1:], substr)
		if next == -1 {
			return -1
		}
		pos = pos + 1 + next
	}
	return pos
}
