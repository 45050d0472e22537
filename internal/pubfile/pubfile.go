// Package pubfile classifies publication filenames and recovers issue
// metadata.
//
// Filenames follow {mwb|w}_LANG_YYYYMM.{jwpub|epub} with LANG being 1-3
// ASCII letters. The language tag keeps its original case; it is the
// canonical tag reported in results.
package pubfile

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"jwsched/internal/puberr"
	"jwsched/internal/schedule"
)

// Container identifies the archive wrapping of a publication.
type Container string

const (
	ContainerJWPUB Container = "JWPUB"
	ContainerEPUB  Container = "EPUB"
)

// Info is the metadata recovered from a recognized filename.
type Info struct {
	Type      schedule.PublicationType
	Language  string
	Year      int
	Month     int
	Container Container
}

// Issue returns the issue ordinal (year*100 + month).
func (i Info) Issue() int { return i.Year*100 + i.Month }

var (
	mwbPattern = regexp.MustCompile(`(?i)^mwb_([A-Za-z]{1,3})_(20[2-9]\d)(0[1-9]|1[0-2])\.(jwpub|epub)$`)
	wPattern   = regexp.MustCompile(`(?i)^w_([A-Za-z]{1,3})_(20[2-9]\d)(0[1-9]|1[0-2])\.(jwpub|epub)$`)
)

// Earliest supported issues. Older layouts are structurally different and
// not recognized by the interpreter.
const (
	minMWBIssue = 202207
	minWIssue   = 202304
)

// Basename reduces a path or URL to its trailing file name, splitting on
// both separator styles.
func Basename(path string) string {
	if idx := strings.LastIndexAny(path, `/\`); idx >= 0 {
		return path[idx+1:]
	}
	return path
}

// Classify validates a filename and extracts issue metadata. The input may
// be a bare name or any path-like string; only the basename is considered.
func Classify(name string) (Info, error) {
	base := Basename(name)

	var (
		pubType schedule.PublicationType
		groups  []string
		minimum int
	)
	switch {
	case mwbPattern.MatchString(base):
		pubType = schedule.PublicationMWB
		groups = mwbPattern.FindStringSubmatch(base)
		minimum = minMWBIssue
	case wPattern.MatchString(base):
		pubType = schedule.PublicationWatchtower
		groups = wPattern.FindStringSubmatch(base)
		minimum = minWIssue
	default:
		return Info{}, puberr.New(puberr.CodeInvalidFilename,
			fmt.Sprintf("invalid filename %q, expected mwb_LANG_YYYYMM.jwpub/epub or w_LANG_YYYYMM.jwpub/epub", base))
	}

	year, _ := strconv.Atoi(groups[2])
	month, _ := strconv.Atoi(groups[3])

	info := Info{
		Type:     pubType,
		Language: groups[1],
		Year:     year,
		Month:    month,
	}
	switch strings.ToLower(groups[4]) {
	case "jwpub":
		info.Container = ContainerJWPUB
	case "epub":
		info.Container = ContainerEPUB
	}

	if info.Issue() < minimum {
		return Info{}, puberr.New(puberr.CodeUnsupportedIssue,
			fmt.Sprintf("issue %04d%02d of %s is older than the supported minimum %d", year, month, pubType, minimum))
	}

	return info, nil
}
