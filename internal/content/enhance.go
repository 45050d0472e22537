package content

import (
	"regexp"
	"strings"

	"jwsched/internal/language"
)

// enhancedSource is a part segment decomposed into its typed pieces.
type enhancedSource struct {
	// typeName is the part name with its ordinal stripped ("Apply Yourself").
	typeName string
	// time is the duration in minutes, when the segment states one.
	time *int
	// src is the parenthesized source reference, or the whole segment when
	// no parentheses are present.
	src string
	// fullTitle is the "N. name" form, or the whole segment when the
	// segment carries no ordinal.
	fullTitle string
}

var partTypePattern = regexp.MustCompile(`^(\d+)\.\s*(.+?)(?:\s*\(|$)`)

// decomposeSource splits a raw AYF/LC/TGW segment into duration, part type,
// full title, and parenthetical source reference.
func decomposeSource(src, lang string) enhancedSource {
	if src == "" {
		return enhancedSource{src: src, fullTitle: src}
	}

	out := enhancedSource{
		time:      language.ExtractTime(src, lang),
		src:       src,
		fullTitle: src,
	}

	if m := partTypePattern.FindStringSubmatch(src); m != nil {
		title := strings.TrimSpace(m[2])
		out.fullTitle = m[1] + ". " + title
		out.typeName = title
	}

	if start := strings.IndexByte(src, '('); start > 0 {
		inner := src[start+1:]
		if end := strings.LastIndexByte(inner, ')'); end > 0 {
			inner = inner[:end]
		}
		out.src = inner
	}
	out.src = strings.TrimSpace(out.src)

	return out
}
