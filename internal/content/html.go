package content

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"jwsched/internal/puberr"
)

// ParseDocument parses HTML bytes and strips ruby annotation text, which
// otherwise pollutes extracted headings in furigana-bearing editions.
func ParseDocument(data []byte) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, puberr.Wrap(puberr.CodeMalformedContent, "parse HTML document", err)
	}
	doc.Find("rt").Remove()
	return doc, nil
}

// text extracts the combined text of a selection with runs of whitespace
// (non-breaking spaces included) collapsed to single spaces and the result
// trimmed.
func text(sel *goquery.Selection) string {
	return collapse(sel.Text())
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// firstText returns the collapsed text of the first node matching selector
// under sel, and whether one exists.
func firstText(sel *goquery.Selection, selector string) (string, bool) {
	found := sel.Find(selector).First()
	if found.Length() == 0 {
		return "", false
	}
	return text(found), true
}
