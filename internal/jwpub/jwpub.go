package jwpub

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/PuerkitoBio/goquery"

	"jwsched/internal/archive"
	"jwsched/internal/content"
	"jwsched/internal/puberr"
	"jwsched/internal/pubfile"
	"jwsched/internal/schedule"
)

// contentsMember is the outer-archive member holding the per-document
// archive.
const contentsMember = "contents"

// Extract parses a JWPUB byte buffer into schedule records for the issue
// identified by info. Exactly one returned list is non-nil, matching the
// publication type.
func Extract(ctx context.Context, data []byte, info pubfile.Info, limits archive.Limits, enhanced bool, log *slog.Logger) ([]schedule.MWBWeek, []schedule.WStudy, error) {
	outer, err := archive.Read(data, limits)
	if err != nil {
		return nil, nil, err
	}

	contents, ok := outer.Get(contentsMember)
	if !ok {
		return nil, nil, puberr.New(puberr.CodeInvalidArchive, "publication is missing its contents archive")
	}

	inner, err := archive.Read(contents, limits)
	if err != nil {
		return nil, nil, err
	}

	dbBytes, ok := inner.FindSuffix(".db")
	if !ok {
		return nil, nil, puberr.New(puberr.CodeInvalidDatabase, "no database found in publication")
	}

	st, err := openStore(dbBytes)
	if err != nil {
		return nil, nil, err
	}
	defer st.Close()

	tag, err := st.publicationTag(ctx)
	if err != nil {
		return nil, nil, err
	}
	km, err := deriveKeyMaterial(tag)
	if err != nil {
		return nil, nil, err
	}
	log.Debug("derived publication key", "tag", tag)

	switch info.Type {
	case schedule.PublicationMWB:
		weeks, err := extractMWB(ctx, st, km, info, enhanced, log)
		return weeks, nil, err
	case schedule.PublicationWatchtower:
		studies, err := extractWatchtower(ctx, st, km, info, enhanced, log)
		return nil, studies, err
	default:
		return nil, nil, puberr.New(puberr.CodeUnsupportedFormat,
			fmt.Sprintf("unknown publication type %q", info.Type))
	}
}

func extractMWB(ctx context.Context, st *store, km keyMaterial, info pubfile.Info, enhanced bool, log *slog.Logger) ([]schedule.MWBWeek, error) {
	blobs, err := st.weekDocuments(ctx)
	if err != nil {
		return nil, err
	}

	docs := make([]*goquery.Document, 0, len(blobs))
	for i, blob := range blobs {
		html, err := km.decode(blob)
		if err != nil {
			return nil, err
		}
		doc, err := content.ParseDocument(html)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
		log.Debug("decoded week document", "index", i, "bytes", len(html))
	}

	return content.ParseMWBWeeks(docs, info.Year, info.Language, enhanced), nil
}

func extractWatchtower(ctx context.Context, st *store, km keyMaterial, info pubfile.Info, enhanced bool, log *slog.Logger) ([]schedule.WStudy, error) {
	tocBlob, err := st.tocDocument(ctx)
	if err != nil {
		return nil, err
	}
	if tocBlob == nil {
		return []schedule.WStudy{}, nil
	}

	tocHTML, err := km.decode(tocBlob)
	if err != nil {
		return nil, err
	}
	toc, err := content.ParseDocument(tocHTML)
	if err != nil {
		return nil, err
	}

	rows, err := st.studyArticles(ctx)
	if err != nil {
		return nil, err
	}
	articles := make([]content.Article, 0, len(rows))
	for _, row := range rows {
		html, err := km.decode(row.content)
		if err != nil {
			return nil, err
		}
		doc, err := content.ParseDocument(html)
		if err != nil {
			return nil, err
		}
		articles = append(articles, content.Article{ID: row.id, Doc: doc})
	}
	log.Debug("decoded study articles", "count", len(articles))

	return content.ParseWatchtowerJWPUB(toc, articles, info.Language, enhanced), nil
}
