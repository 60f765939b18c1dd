package timezones

import (
	"archive/zip"
	"bufio"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

// DefaultSource returns the first zoneinfo database found on this host:
// $ZONEINFO, the usual system directories, then Go's own zoneinfo.zip.
func DefaultSource() string {
	candidates := []string{
		os.Getenv("ZONEINFO"),
		"/usr/share/zoneinfo",
		"/usr/lib/zoneinfo",
		"/usr/share/lib/zoneinfo",
		filepath.Join(runtime.GOROOT(), "lib", "time", "zoneinfo.zip"),
	}
	for _, c := range candidates {
		if c == "" {
			continue
		}
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return ""
}

// Available lists the timezone identifiers found in source, which is
// either a zoneinfo directory or a zoneinfo.zip archive.
func Available(source string) ([]string, error) {
	if source == "" {
		return nil, errors.New("no zoneinfo database found")
	}

	info, err := os.Stat(source)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open zoneinfo database")
	}

	var names []string
	if info.IsDir() {
		names, err = listDir(source)
	} else {
		names, err = listZip(source)
	}
	if err != nil {
		return nil, err
	}

	ids := names[:0]
	for _, name := range names {
		if isZoneName(name) {
			ids = append(ids, name)
		}
	}
	return ids, nil
}

func listDir(root string) ([]string, error) {
	var names []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != root && skipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		names = append(names, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to walk %s", root)
	}
	return names, nil
}

func listZip(file string) ([]string, error) {
	r, err := zip.OpenReader(file)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", file)
	}
	defer r.Close()

	names := make([]string, 0, len(r.File))
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if dir, _, ok := strings.Cut(f.Name, "/"); ok && skipDir(dir) {
			continue
		}
		names = append(names, f.Name)
	}
	return names, nil
}

// Zone tables listing the canonical identifier of each region, newest
// format first.
var zoneTables = []string{"zone1970.tab", "zone.tab"}

// Canonical lists the identifiers that the zone table in source names as
// canonical. Sources without a table, like Go's own zoneinfo.zip, return
// an error.
func Canonical(source string) ([]string, error) {
	if source == "" {
		return nil, errors.New("no zoneinfo database found")
	}

	info, err := os.Stat(source)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open zoneinfo database")
	}

	var fsys fs.FS
	if info.IsDir() {
		fsys = os.DirFS(source)
	} else {
		r, err := zip.OpenReader(source)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to open %s", source)
		}
		defer r.Close()
		fsys = r
	}

	for _, name := range zoneTables {
		f, err := fsys.Open(name)
		if err != nil {
			continue
		}
		ids, err := readZoneTable(f)
		f.Close()
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read %s", name)
		}
		return ids, nil
	}
	return nil, errors.Errorf("no zone table in %s", source)
}

// readZoneTable returns the third column of a zone.tab style file.
func readZoneTable(r io.Reader) ([]string, error) {
	var ids []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 3 {
			continue
		}
		ids = append(ids, fields[2])
	}
	return ids, scanner.Err()
}

func skipDir(name string) bool {
	return name == "posix" || name == "right"
}

// isZoneName filters out the data files that live next to the zones,
// like zone.tab, leapseconds or posixrules.
func isZoneName(name string) bool {
	if name == "" || strings.Contains(name, ".") {
		return false
	}
	switch name {
	case "Factory", "SECURITY", "VERSION":
		return false
	}
	for _, part := range strings.Split(name, "/") {
		if !hasUpperStart(part) {
			return false
		}
	}
	return true
}

func hasUpperStart(s string) bool {
	for _, r := range s {
		return unicode.IsUpper(r)
	}
	return false
}
