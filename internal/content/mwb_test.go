package content_test

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"jwsched/internal/content"
)

func parseDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := content.ParseDocument([]byte(html))
	if err != nil {
		t.Fatalf("ParseDocument returned error: %v", err)
	}
	return doc
}

// pGroupWeekHTML is a week document in the paragraph-group layout with
// three student parts and two Living as Christians parts.
const pGroupWeekHTML = `<html><body>
<h1>January&nbsp;1-7</h1>
<h2>Genesis 1-3</h2>
<div class="pGroup"><ul>
<li><p>SONG 1</p></li>
<li><p>Opening Comments (1 min.)</p></li>
<li><p>1. Hidden Treasures (10 min.)</p></li>
<li><p>2. Spiritual Gems (10 min.)</p></li>
<li><p>section header</p></li>
<li><p>section note</p></li>
<li><p>3. Bible Reading (Gen. 1:1-25)</p></li>
<li><p>4. Starting a Conversation (3 min.)</p></li>
<li><p>5. Following Up (4 min.)</p></li>
<li><p>6. Student Talk (5 min.)</p></li>
<li><p>SONG 50</p></li>
<li><p>7. Local Needs (15 min.)</p></li>
<li><p>8. Second Part (5 min.)</p></li>
<li><p>9. Congregation Bible Study (bt chap. 1)</p></li>
<li><p>Concluding Comments (3 min.)</p></li>
<li><p>SONG 150 and Prayer</p></li>
</ul></div>
<div id="section3"><ul><li>a</li><li>b</li><li>c</li></ul></div>
<div id="section4"><ul><li>a</li><li>b</li><li>c</li><li>d</li><li>e</li><li>f</li></ul></div>
</body></html>`

func TestParseMWBWeekEnhanced(t *testing.T) {
	doc := parseDoc(t, pGroupWeekHTML)

	if !content.IsValidMWB(doc) {
		t.Fatal("expected a valid MWB document")
	}

	week := content.ParseMWBWeek(doc, 2024, "E", true)

	assertStr(t, "WeekDate", week.WeekDate, "2024/01/01")
	assertStr(t, "WeekDateLocale", week.WeekDateLocale, "January 1-7")
	assertStr(t, "WeeklyBibleReading", week.WeeklyBibleReading, "Genesis 1-3")

	if week.SongFirst == nil || week.SongFirst.Number != 1 {
		t.Fatalf("SongFirst: got %v want 1", week.SongFirst)
	}

	assertStr(t, "TGWTalk", week.TGWTalk, "Hidden Treasures")
	assertStr(t, "TGWTalkTitle", week.TGWTalkTitle, "1. Hidden Treasures")
	assertStr(t, "TGWGemsTitle", week.TGWGemsTitle, "2. Spiritual Gems")
	assertStr(t, "TGWBread", week.TGWBread, "Gen. 1:1-25")
	assertStr(t, "TGWBreadTitle", week.TGWBreadTitle, "3. Bible Reading")

	if week.AYFCount != 3 {
		t.Fatalf("AYFCount: got %d want 3", week.AYFCount)
	}
	assertStr(t, "AYFPart1", week.AYFPart1, "3 min.")
	assertInt(t, "AYFPart1Time", week.AYFPart1Time, 3)
	assertStr(t, "AYFPart1Type", week.AYFPart1Type, "Starting a Conversation")
	assertStr(t, "AYFPart1Title", week.AYFPart1Title, "4. Starting a Conversation")
	assertStr(t, "AYFPart2Type", week.AYFPart2Type, "Following Up")
	assertInt(t, "AYFPart2Time", week.AYFPart2Time, 4)
	assertStr(t, "AYFPart3Type", week.AYFPart3Type, "Student Talk")
	if week.AYFPart4 != nil {
		t.Fatalf("AYFPart4: got %q want nil", *week.AYFPart4)
	}

	if week.SongMiddle == nil || week.SongMiddle.Number != 50 {
		t.Fatalf("SongMiddle: got %v want 50", week.SongMiddle)
	}

	if week.LCCount != 2 {
		t.Fatalf("LCCount: got %d want 2", week.LCCount)
	}
	assertStr(t, "LCPart1", week.LCPart1, "Local Needs")
	assertInt(t, "LCPart1Time", week.LCPart1Time, 15)
	assertStr(t, "LCPart1Title", week.LCPart1Title, "7. Local Needs")
	assertStr(t, "LCPart1Content", week.LCPart1Content, "15 min.")
	assertStr(t, "LCPart2", week.LCPart2, "Second Part")
	assertStr(t, "LCCbs", week.LCCbs, "bt chap. 1")
	assertStr(t, "LCCbsTitle", week.LCCbsTitle, "9. Congregation Bible Study")

	if week.SongConclude == nil || week.SongConclude.Number != 150 {
		t.Fatalf("SongConclude: got %v want 150", week.SongConclude)
	}
}

func TestParseMWBWeekRawForUnsupportedLanguage(t *testing.T) {
	doc := parseDoc(t, pGroupWeekHTML)

	week := content.ParseMWBWeek(doc, 2024, "X", true)

	assertStr(t, "WeekDate", week.WeekDate, "January 1-7")
	if week.WeekDateLocale != nil {
		t.Fatalf("WeekDateLocale: got %q want nil", *week.WeekDateLocale)
	}
	assertStr(t, "TGWTalk", week.TGWTalk, "1. Hidden Treasures (10 min.)")
	assertStr(t, "AYFPart1", week.AYFPart1, "4. Starting a Conversation (3 min.)")
	if week.AYFPart1Time != nil {
		t.Fatal("AYFPart1Time must stay unset without a language profile")
	}
}

func TestParseMWBWeekEnhancedParsingDisabled(t *testing.T) {
	doc := parseDoc(t, pGroupWeekHTML)

	week := content.ParseMWBWeek(doc, 2024, "E", false)

	assertStr(t, "WeekDate", week.WeekDate, "January 1-7")
	assertStr(t, "TGWTalk", week.TGWTalk, "1. Hidden Treasures (10 min.)")
}

// headingWeekHTML is the same week in the heading layout: no paragraph
// groups, songs marked by the music icon class, part counts derived from
// color classes.
const headingWeekHTML = `<html><body>
<h1>January 1-7</h1>
<h2>Genesis 1-3</h2>
<span class="du-color--gold-700">s</span>
<span class="du-color--gold-700">a</span>
<span class="du-color--gold-700">b</span>
<span class="du-color--gold-700">c</span>
<span class="du-color--maroon-600 du-margin-top--8 du-margin-bottom--0">s</span>
<span class="du-color--maroon-600 du-margin-top--8 du-margin-bottom--0">a</span>
<span class="du-color--maroon-600 du-margin-top--8 du-margin-bottom--0">b</span>
<div class="boxContent"><h3 class="dc-icon--music">SONG 1</h3></div>
<h3>Opening Comments</h3><div><p>(1 min.)</p></div>
<h3>1. Hidden Treasures</h3><div><p>(10 min.)</p></div>
<h3>2. Spiritual Gems</h3><div><p>(10 min.)</p></div>
<h3>3. Bible Reading</h3><div><p>(Gen. 1:1-25)</p></div>
<h3>4. Starting a Conversation</h3><div><p>(3 min.)</p></div>
<h3>5. Following Up</h3><div><p>(4 min.)</p></div>
<h3>6. Student Talk</h3><div><p>(5 min.)</p></div>
<div class="boxContent"><h3 class="dc-icon--music">SONG 50</h3><div><p>7. Local Needs (15 min.)</p></div><div><p>Extra</p></div></div>
<h3>8. Second Part</h3><div><p>(5 min.)</p></div>
<h3>9. Congregation Bible Study</h3><div><p>(bt chap. 1)</p></div>
<h3>Concluding Comments</h3><div><p>(3 min.)</p></div>
<div class="boxContent"><h3 class="dc-icon--music">SONG 150 and Prayer</h3></div>
</body></html>`

func TestParseMWBWeekHeadingFallback(t *testing.T) {
	doc := parseDoc(t, headingWeekHTML)

	week := content.ParseMWBWeek(doc, 2024, "E", true)

	if week.SongFirst == nil || week.SongFirst.Number != 1 {
		t.Fatalf("SongFirst: got %v want 1", week.SongFirst)
	}
	// The reserved segments inserted before the fifth separator keep the
	// bible reading at the paragraph-layout position.
	assertStr(t, "TGWBreadTitle", week.TGWBreadTitle, "3. Bible Reading")
	assertStr(t, "TGWBread", week.TGWBread, "Gen. 1:1-25")

	if week.AYFCount != 3 {
		t.Fatalf("AYFCount: got %d want 3", week.AYFCount)
	}
	assertStr(t, "AYFPart1Type", week.AYFPart1Type, "Starting a Conversation")
	assertInt(t, "AYFPart1Time", week.AYFPart1Time, 3)

	if week.SongMiddle == nil || week.SongMiddle.Number != 50 {
		t.Fatalf("SongMiddle: got %v want 50", week.SongMiddle)
	}

	if week.LCCount != 2 {
		t.Fatalf("LCCount: got %d want 2", week.LCCount)
	}
	// The second song pulls the following paragraph pair into the first
	// Living as Christians slot.
	assertStr(t, "LCPart1Title", week.LCPart1Title, "7. Local Needs")
	assertInt(t, "LCPart1Time", week.LCPart1Time, 15)
	assertStr(t, "LCPart2", week.LCPart2, "Second Part")
	assertStr(t, "LCCbs", week.LCCbs, "bt chap. 1")

	if week.SongConclude == nil || week.SongConclude.Number != 150 {
		t.Fatalf("SongConclude: got %v want 150", week.SongConclude)
	}
}

func TestIsValidMWB(t *testing.T) {
	valid := parseDoc(t, `<html><body><h1>a</h1><h2>b</h2><h3>c</h3></body></html>`)
	if !content.IsValidMWB(valid) {
		t.Fatal("h1+h2+h3 document must be valid")
	}
	noHeading := parseDoc(t, `<html><body><h2>b</h2><div class="pGroup"></div></body></html>`)
	if content.IsValidMWB(noHeading) {
		t.Fatal("document without h1 must be invalid")
	}
	noParts := parseDoc(t, `<html><body><h1>a</h1><h2>b</h2><p>text</p></body></html>`)
	if content.IsValidMWB(noParts) {
		t.Fatal("document without parts must be invalid")
	}
}

func TestRubyTextIsStripped(t *testing.T) {
	doc := parseDoc(t, `<html><body><h1>January <ruby>1<rt>first</rt></ruby>-7</h1><h2>b</h2><h3>c</h3></body></html>`)
	week := content.ParseMWBWeek(doc, 2024, "E", true)
	assertStr(t, "WeekDateLocale", week.WeekDateLocale, "January 1-7")
}

func TestSongNumberRuleKeepsFreeFormText(t *testing.T) {
	html := strings.Replace(pGroupWeekHTML, "<li><p>SONG 1</p></li>", "<li><p>Song 200</p></li>", 1)
	doc := parseDoc(t, html)
	week := content.ParseMWBWeek(doc, 2024, "E", true)
	if week.SongFirst == nil || week.SongFirst.Number != 0 || week.SongFirst.Text != "Song 200" {
		t.Fatalf("SongFirst: got %+v want text %q", week.SongFirst, "Song 200")
	}
}

func assertStr(t *testing.T, field string, got *string, want string) {
	t.Helper()
	if got == nil {
		t.Fatalf("%s: got nil want %q", field, want)
	}
	if *got != want {
		t.Fatalf("%s: got %q want %q", field, *got, want)
	}
}

func assertInt(t *testing.T, field string, got *int, want int) {
	t.Helper()
	if got == nil {
		t.Fatalf("%s: got nil want %d", field, want)
	}
	if *got != want {
		t.Fatalf("%s: got %d want %d", field, *got, want)
	}
}

