package jwpub

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"jwsched/internal/puberr"
)

// Document classes used by the publications this module reads.
const (
	classMWBWeek  = 106
	classWTOC     = 68
	classWArticle = 40
)

// store opens the embedded publication database for read-only querying.
// The driver needs a file, so the database bytes are spilled to a
// uuid-named temp file that is removed on Close regardless of outcome.
type store struct {
	db   *sql.DB
	path string
}

func openStore(dbBytes []byte) (*store, error) {
	path := filepath.Join(os.TempDir(), "jwpub_"+uuid.NewString()+".db")
	if err := os.WriteFile(path, dbBytes, 0o600); err != nil {
		return nil, puberr.Wrap(puberr.CodeIOError, "write temporary database", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		_ = os.Remove(path)
		return nil, puberr.Wrap(puberr.CodeInvalidDatabase, "open publication database", err)
	}
	if _, err := db.Exec("PRAGMA query_only = ON"); err != nil {
		_ = db.Close()
		_ = os.Remove(path)
		return nil, puberr.Wrap(puberr.CodeInvalidDatabase, "open publication database", err)
	}

	return &store{db: db, path: path}, nil
}

func (s *store) Close() error {
	if s == nil {
		return nil
	}
	closeErr := s.db.Close()
	removeErr := os.Remove(s.path)
	if closeErr != nil {
		return closeErr
	}
	return removeErr
}

// publicationTag composes the key-derivation tag from the Publication row.
func (s *store) publicationTag(ctx context.Context) (string, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT MepsLanguageIndex, Symbol, Year, IssueTagNumber FROM Publication LIMIT 1")

	var mepsLanguageIndex, symbol, year, issueTag string
	if err := row.Scan(&mepsLanguageIndex, &symbol, &year, &issueTag); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", puberr.New(puberr.CodeInvalidDatabase, "Publication table is empty")
		}
		return "", puberr.Wrap(puberr.CodeInvalidDatabase, "read Publication row", err)
	}

	return strings.Join([]string{mepsLanguageIndex, symbol, year, issueTag}, "_"), nil
}

// weekDocuments returns the content blobs of all MWB week documents in row
// order.
func (s *store) weekDocuments(ctx context.Context) ([][]byte, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT Content FROM Document WHERE Class = ?", classMWBWeek)
	if err != nil {
		return nil, puberr.Wrap(puberr.CodeInvalidDatabase, "query week documents", err)
	}
	defer rows.Close()

	var blobs [][]byte
	for rows.Next() {
		var content []byte
		if err := rows.Scan(&content); err != nil {
			return nil, puberr.Wrap(puberr.CodeInvalidDatabase, "scan week document", err)
		}
		blobs = append(blobs, content)
	}
	if err := rows.Err(); err != nil {
		return nil, puberr.Wrap(puberr.CodeInvalidDatabase, "iterate week documents", err)
	}
	return blobs, nil
}

// tocDocument returns the Watchtower table-of-contents blob, or nil when
// the issue has none.
func (s *store) tocDocument(ctx context.Context) ([]byte, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT Content FROM Document WHERE Class = ? LIMIT 1", classWTOC)

	var content []byte
	if err := row.Scan(&content); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, puberr.Wrap(puberr.CodeInvalidDatabase, "read table of contents", err)
	}
	return content, nil
}

// studyArticle pairs a document id with its content blob.
type studyArticle struct {
	id      int
	content []byte
}

// studyArticles returns every Watchtower study article blob with its
// document id.
func (s *store) studyArticles(ctx context.Context) ([]studyArticle, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT MepsDocumentId, Content FROM Document WHERE Class = ?", classWArticle)
	if err != nil {
		return nil, puberr.Wrap(puberr.CodeInvalidDatabase, "query study articles", err)
	}
	defer rows.Close()

	var articles []studyArticle
	for rows.Next() {
		var a studyArticle
		if err := rows.Scan(&a.id, &a.content); err != nil {
			return nil, puberr.Wrap(puberr.CodeInvalidDatabase, "scan study article", err)
		}
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, puberr.Wrap(puberr.CodeInvalidDatabase, "iterate study articles", err)
	}
	return articles, nil
}

