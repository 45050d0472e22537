package epub_test

import (
	"archive/zip"
	"bytes"
	"testing"

	"jwsched/internal/archive"
	"jwsched/internal/epub"
	"jwsched/internal/logging"
	"jwsched/internal/puberr"
	"jwsched/internal/pubfile"
)

var testLimits = archive.Limits{MaxTotalBytes: 1 << 20, MaxEntries: 100}

func buildEpub(t *testing.T, files map[string]string, order []string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range order {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create entry %q: %v", name, err)
		}
		if _, err := w.Write([]byte(files[name])); err != nil {
			t.Fatalf("write entry %q: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func classify(t *testing.T, name string) pubfile.Info {
	t.Helper()
	info, err := pubfile.Classify(name)
	if err != nil {
		t.Fatalf("Classify(%q) returned error: %v", name, err)
	}
	return info
}

const mwbWeekHTML = `<html><body>
<h1>January 1-7</h1>
<h2>Genesis 1-3</h2>
<div class="pGroup"><ul>
<li><p>SONG 1</p></li>
<li><p>Opening Comments (1 min.)</p></li>
<li><p>1. Hidden Treasures (10 min.)</p></li>
<li><p>2. Spiritual Gems (10 min.)</p></li>
</ul></div>
</body></html>`

func TestExtractMWBWeeks(t *testing.T) {
	data := buildEpub(t, map[string]string{
		"OEBPS/mimetype.txt": "ignored",
		"OEBPS/week1.xhtml":  mwbWeekHTML,
		"OEBPS/cover.xhtml":  `<html><body><p>cover art</p></body></html>`,
	}, []string{"OEBPS/mimetype.txt", "OEBPS/week1.xhtml", "OEBPS/cover.xhtml"})

	weeks, studies, err := epub.Extract(data, classify(t, "mwb_E_202401.epub"), testLimits, true, logging.Nop())
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	if studies != nil {
		t.Fatal("studies must be nil for an MWB publication")
	}
	if len(weeks) != 1 {
		t.Fatalf("week count: got %d want 1", len(weeks))
	}

	week := weeks[0]
	if week.WeekDate == nil || *week.WeekDate != "2024/01/01" {
		t.Fatalf("WeekDate: got %v want 2024/01/01", week.WeekDate)
	}
	if week.SongFirst == nil || week.SongFirst.Number != 1 {
		t.Fatalf("SongFirst: got %v want 1", week.SongFirst)
	}
	if week.TGWTalkTitle == nil || *week.TGWTalkTitle != "1. Hidden Treasures" {
		t.Fatalf("TGWTalkTitle: got %v", week.TGWTalkTitle)
	}
}

func TestExtractRejectsEpubWithoutValidDocuments(t *testing.T) {
	data := buildEpub(t, map[string]string{
		"OEBPS/cover.xhtml": `<html><body><p>nothing here</p></body></html>`,
	}, []string{"OEBPS/cover.xhtml"})

	_, _, err := epub.Extract(data, classify(t, "mwb_E_202401.epub"), testLimits, true, logging.Nop())
	if !puberr.IsCode(err, puberr.CodeMalformedContent) {
		t.Fatalf("got %v, want MALFORMED_CONTENT", err)
	}
}

const wTocHTML = `<html><body>
<h3>First entry without a link</h3>
<p>filler</p>
<h3><p class="desc">Study Article 1: March 4-10, 2024</p></h3>
<div><a href="xhtml/article042.xhtml">A Study Title</a></div>
</body></html>`

const wArticleHTML = `<html><body>
<h2>Serve Jehovah With Joy</h2>
<div class="pubRefs">SONG 45</div>
<div class="pubRefs">SONG 120</div>
</body></html>`

func TestExtractWatchtowerStudies(t *testing.T) {
	data := buildEpub(t, map[string]string{
		"OEBPS/toc.xhtml":              wTocHTML,
		"OEBPS/xhtml/article042.xhtml": wArticleHTML,
		"OEBPS/styles/stylesheet.css":  "body {}",
	}, []string{"OEBPS/toc.xhtml", "OEBPS/xhtml/article042.xhtml", "OEBPS/styles/stylesheet.css"})

	weeks, studies, err := epub.Extract(data, classify(t, "w_E_202403.epub"), testLimits, true, logging.Nop())
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	if weeks != nil {
		t.Fatal("weeks must be nil for a Watchtower publication")
	}
	if len(studies) != 1 {
		t.Fatalf("study count: got %d want 1", len(studies))
	}

	s := studies[0]
	if s.OpeningSong == nil || *s.OpeningSong != 45 {
		t.Fatalf("OpeningSong: got %v want 45", s.OpeningSong)
	}
	if s.ConcludingSong == nil || *s.ConcludingSong != 120 {
		t.Fatalf("ConcludingSong: got %v want 120", s.ConcludingSong)
	}
	if s.StudyTitle == nil || *s.StudyTitle != "Serve Jehovah With Joy" {
		t.Fatalf("StudyTitle: got %v", s.StudyTitle)
	}
}

func TestExtractRejectsDuplicateWatchtowerTOC(t *testing.T) {
	toc := `<html><body><h3>entry</h3></body></html>`
	data := buildEpub(t, map[string]string{
		"OEBPS/toc1.xhtml": toc,
		"OEBPS/toc2.xhtml": toc,
	}, []string{"OEBPS/toc1.xhtml", "OEBPS/toc2.xhtml"})

	_, _, err := epub.Extract(data, classify(t, "w_E_202403.epub"), testLimits, true, logging.Nop())
	if !puberr.IsCode(err, puberr.CodeMalformedContent) {
		t.Fatalf("got %v, want MALFORMED_CONTENT", err)
	}
}
