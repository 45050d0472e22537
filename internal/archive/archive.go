// Package archive reads ZIP containers from memory with safety limits.
//
// Entries are returned in archive order so callers see documents in the
// same sequence the publication tooling wrote them. Limits bound the total
// decompressed size and the entry count; entry names are checked against
// path traversal before any bytes are inflated.
package archive

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"path"
	"strings"

	"jwsched/internal/puberr"
)

// Limits bounds archive expansion.
type Limits struct {
	// MaxTotalBytes caps the sum of decompressed entry sizes.
	MaxTotalBytes int64
	// MaxEntries caps the number of entries, directories included.
	MaxEntries int
}

// Entry is one file stored in the archive, name as written.
type Entry struct {
	Name string
	Data []byte
}

// Archive holds the decompressed entries of one ZIP in archive order.
type Archive struct {
	entries []Entry
	byName  map[string]int
}

// Entries returns all file entries in archive order.
func (a *Archive) Entries() []Entry { return a.entries }

// Get returns the bytes of the entry stored under exactly name.
func (a *Archive) Get(name string) ([]byte, bool) {
	idx, ok := a.byName[name]
	if !ok {
		return nil, false
	}
	return a.entries[idx].Data, true
}

// FindBasename returns the first entry whose trailing path component equals
// base.
func (a *Archive) FindBasename(base string) ([]byte, bool) {
	for _, e := range a.entries {
		if basename(e.Name) == base {
			return e.Data, true
		}
	}
	return nil, false
}

// FindSuffix returns the first entry whose name ends with suffix.
func (a *Archive) FindSuffix(suffix string) ([]byte, bool) {
	for _, e := range a.entries {
		if strings.HasSuffix(e.Name, suffix) {
			return e.Data, true
		}
	}
	return nil, false
}

// Read decompresses a ZIP held fully in data, enforcing limits. Directory
// entries are skipped; any entry name escaping the archive root rejects the
// whole archive.
func Read(data []byte, limits Limits) (*Archive, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, puberr.Wrap(puberr.CodeInvalidArchive, "not a readable ZIP archive", err)
	}

	arch := &Archive{byName: make(map[string]int)}
	var total int64
	for i, f := range r.File {
		if limits.MaxEntries > 0 && i+1 > limits.MaxEntries {
			return nil, puberr.New(puberr.CodeTooManyFiles,
				fmt.Sprintf("archive exceeds entry limit %d", limits.MaxEntries))
		}
		if slipsOut(f.Name) {
			return nil, puberr.New(puberr.CodeSuspiciousContent,
				fmt.Sprintf("entry %q escapes the archive root", f.Name))
		}
		if f.FileInfo().IsDir() {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return nil, puberr.Wrap(puberr.CodeInvalidArchive,
				fmt.Sprintf("open entry %q", f.Name), err)
		}
		content, readErr := readLimited(rc, limits.MaxTotalBytes, &total)
		closeErr := rc.Close()
		if readErr != nil {
			return nil, readErr
		}
		if closeErr != nil {
			return nil, puberr.Wrap(puberr.CodeInvalidArchive,
				fmt.Sprintf("entry %q is corrupt", f.Name), closeErr)
		}

		if _, dup := arch.byName[f.Name]; !dup {
			arch.byName[f.Name] = len(arch.entries)
		}
		arch.entries = append(arch.entries, Entry{Name: f.Name, Data: content})
	}

	return arch, nil
}

// readLimited reads rc while charging bytes against the shared total, so a
// crafted archive cannot inflate past the cap no matter what its headers
// declare.
func readLimited(rc io.Reader, maxTotal int64, total *int64) ([]byte, error) {
	if maxTotal <= 0 {
		data, err := io.ReadAll(rc)
		if err != nil {
			return nil, puberr.Wrap(puberr.CodeInvalidArchive, "read entry", err)
		}
		return data, nil
	}

	remaining := maxTotal - *total
	data, err := io.ReadAll(io.LimitReader(rc, remaining+1))
	if err != nil {
		return nil, puberr.Wrap(puberr.CodeInvalidArchive, "read entry", err)
	}
	*total += int64(len(data))
	if *total > maxTotal {
		return nil, puberr.New(puberr.CodeFileTooLarge,
			fmt.Sprintf("archive exceeds decompressed size limit %d bytes", maxTotal))
	}
	return data, nil
}

// slipsOut reports whether an entry name resolves outside the archive root
// (zip-slip).
func slipsOut(name string) bool {
	if name == "" {
		return true
	}
	normalized := strings.ReplaceAll(name, `\`, "/")
	if strings.HasPrefix(normalized, "/") || strings.HasPrefix(normalized, "..") || strings.Contains(normalized, "/../") {
		return true
	}
	cleaned := path.Clean(normalized)
	return cleaned == ".." || strings.HasPrefix(cleaned, "../")
}

func basename(name string) string {
	if idx := strings.LastIndexAny(name, `/\`); idx >= 0 {
		return name[idx+1:]
	}
	return name
}
