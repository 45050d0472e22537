// Package epub extracts schedules from EPUB containers.
//
// An EPUB here is a DRM-free ZIP of HTML documents. Week documents and the
// Watchtower table of contents are recognized by structure, not by entry
// name, since the content tooling renames files between issues.
package epub

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"jwsched/internal/archive"
	"jwsched/internal/content"
	"jwsched/internal/puberr"
	"jwsched/internal/pubfile"
	"jwsched/internal/schedule"
)

// Extract parses an EPUB byte buffer into schedule records for the issue
// identified by info. Exactly one returned list is non-nil, matching the
// publication type.
func Extract(data []byte, info pubfile.Info, limits archive.Limits, enhanced bool, log *slog.Logger) ([]schedule.MWBWeek, []schedule.WStudy, error) {
	arch, err := archive.Read(data, limits)
	if err != nil {
		return nil, nil, err
	}

	docs := htmlDocuments(arch, info.Type, log)
	if len(docs) == 0 {
		return nil, nil, puberr.New(puberr.CodeMalformedContent,
			fmt.Sprintf("not a valid %s EPUB publication", publicationName(info.Type)))
	}

	switch info.Type {
	case schedule.PublicationMWB:
		return content.ParseMWBWeeks(docs, info.Year, info.Language, enhanced), nil, nil
	case schedule.PublicationWatchtower:
		if len(docs) > 1 {
			return nil, nil, puberr.New(puberr.CodeMalformedContent,
				"Watchtower EPUB contains more than one table of contents")
		}
		return nil, content.ParseWatchtowerEPUB(docs[0], arch, info.Language, enhanced), nil
	default:
		return nil, nil, puberr.New(puberr.CodeUnsupportedFormat,
			fmt.Sprintf("unknown publication type %q", info.Type))
	}
}

// htmlDocuments parses every HTML entry and keeps those shaped like the
// publication's documents, in archive order. Unreadable entries are
// skipped: stray assets with an .html extension must not sink the issue.
func htmlDocuments(arch *archive.Archive, pubType schedule.PublicationType, log *slog.Logger) []*goquery.Document {
	var docs []*goquery.Document
	for _, entry := range arch.Entries() {
		if !isHTMLName(entry.Name) {
			continue
		}
		doc, err := content.ParseDocument(entry.Data)
		if err != nil {
			log.Debug("skipping unparseable entry", "entry", entry.Name, "error", err)
			continue
		}

		valid := false
		switch pubType {
		case schedule.PublicationMWB:
			valid = content.IsValidMWB(doc)
		case schedule.PublicationWatchtower:
			valid = content.IsValidW(doc)
		}
		if valid {
			docs = append(docs, doc)
		}
	}
	return docs
}

func isHTMLName(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, ".html") ||
		strings.HasSuffix(lower, ".xhtml") ||
		strings.HasSuffix(lower, ".htm")
}

func publicationName(pubType schedule.PublicationType) string {
	if pubType == schedule.PublicationMWB {
		return "Meeting Workbook"
	}
	return "Watchtower Study"
}
