package parser

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"jwsched/internal/archive"
	"jwsched/internal/epub"
	"jwsched/internal/jwpub"
	"jwsched/internal/logging"
	"jwsched/internal/puberr"
	"jwsched/internal/pubfile"
	"jwsched/internal/schedule"
)

// Defaults applied for zero-valued Options fields.
const (
	DefaultMaxTotalBytes = 100 << 20
	DefaultMaxEntries    = 10_000
)

// Options configures a Parser. The zero value plus DefaultOptions()
// adjustments is the supported production configuration.
type Options struct {
	// Strict is reserved; it has no behavior today.
	Strict bool
	// EnableEnhancedParsing turns on language-aware date, duration, and
	// part-type extraction for languages with a profile.
	EnableEnhancedParsing bool
	// MaxTotalBytes caps the input size and each archive's decompressed
	// size.
	MaxTotalBytes int64
	// MaxEntries caps entries per archive.
	MaxEntries int
	// Logger receives debug/trace output. Nil disables logging.
	Logger *slog.Logger
}

// DefaultOptions returns the production defaults.
func DefaultOptions() Options {
	return Options{
		EnableEnhancedParsing: true,
		MaxTotalBytes:         DefaultMaxTotalBytes,
		MaxEntries:            DefaultMaxEntries,
	}
}

// Parser extracts meeting schedules from publication files.
type Parser struct {
	opts Options
	log  *slog.Logger
}

// New builds a Parser. Zero-valued limits fall back to the defaults; a nil
// logger is replaced with a no-op one.
func New(opts Options) *Parser {
	if opts.MaxTotalBytes <= 0 {
		opts.MaxTotalBytes = DefaultMaxTotalBytes
	}
	if opts.MaxEntries <= 0 {
		opts.MaxEntries = DefaultMaxEntries
	}
	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}
	return &Parser{opts: opts, log: log}
}

// ParseFile reads and parses the publication at path. The basename carries
// the issue metadata.
func (p *Parser) ParseFile(path string) (*schedule.Result, error) {
	info, err := pubfile.Classify(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, puberr.Wrap(puberr.CodeIOError, fmt.Sprintf("read %s", path), err)
	}
	return p.parse(data, info)
}

// ParseReader buffers r fully and parses it as filename's publication.
func (p *Parser) ParseReader(r io.Reader, filename string) (*schedule.Result, error) {
	info, err := pubfile.Classify(filename)
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, puberr.Wrap(puberr.CodeIOError, "read input", err)
	}
	return p.parse(data, info)
}

// Parse parses a fully buffered publication. filename (or any path-like
// string ending in it) carries the issue metadata.
func (p *Parser) Parse(data []byte, filename string) (*schedule.Result, error) {
	info, err := pubfile.Classify(filename)
	if err != nil {
		return nil, err
	}
	return p.parse(data, info)
}

func (p *Parser) parse(data []byte, info pubfile.Info) (*schedule.Result, error) {
	if len(data) == 0 {
		return nil, errors.New("publication data must not be empty")
	}
	// Checked before any container work so oversized inputs never reach
	// decompression or decryption.
	if int64(len(data)) > p.opts.MaxTotalBytes {
		return nil, puberr.New(puberr.CodeFileTooLarge,
			fmt.Sprintf("input is %d bytes, limit is %d", len(data), p.opts.MaxTotalBytes))
	}

	limits := archive.Limits{
		MaxTotalBytes: p.opts.MaxTotalBytes,
		MaxEntries:    p.opts.MaxEntries,
	}

	started := time.Now()
	log := p.log.With(
		"publication", string(info.Type),
		"language", info.Language,
		"issue", fmt.Sprintf("%04d%02d", info.Year, info.Month),
		"container", string(info.Container),
	)

	var (
		weeks   []schedule.MWBWeek
		studies []schedule.WStudy
		err     error
	)
	switch info.Container {
	case pubfile.ContainerJWPUB:
		weeks, studies, err = jwpub.Extract(context.Background(), data, info, limits, p.opts.EnableEnhancedParsing, log)
	case pubfile.ContainerEPUB:
		weeks, studies, err = epub.Extract(data, info, limits, p.opts.EnableEnhancedParsing, log)
	default:
		err = puberr.New(puberr.CodeUnsupportedFormat,
			fmt.Sprintf("unsupported container %q", info.Container))
	}
	if err != nil {
		log.Debug("parse failed", "error", err, "elapsed", time.Since(started))
		return nil, err
	}

	result := &schedule.Result{
		SchemaVersion:   schedule.SchemaVersion,
		PublicationType: info.Type,
		Language:        info.Language,
		Year:            info.Year,
		Month:           info.Month,
	}
	switch info.Type {
	case schedule.PublicationMWB:
		if weeks == nil {
			weeks = []schedule.MWBWeek{}
		}
		result.MWBSchedules = weeks
		log.Debug("parsed publication", "weeks", len(weeks), "elapsed", time.Since(started))
	case schedule.PublicationWatchtower:
		if studies == nil {
			studies = []schedule.WStudy{}
		}
		result.WSchedules = studies
		log.Debug("parsed publication", "studies", len(studies), "elapsed", time.Since(started))
	}

	return result, nil
}
