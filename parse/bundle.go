package parse

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	"github.com/spkg/bom"

	"vicrail.dev/vicrail/network"
	"vicrail.dev/vicrail/schedule"
)

// ParseBundle reads a complete timetable bundle from a zip archive. The
// archive holds stops.json and lines.json at its root, plus one .ttbl file
// per timetable under timetables/. The hash identifies this bundle's
// contents to clients and is carried on the resulting network.
func ParseBundle(buf []byte, hash string) (*network.Network, *schedule.Timetables, error) {
	r, err := zip.NewReader(bytes.NewReader(buf), int64(len(buf)))
	if err != nil {
		return nil, nil, fmt.Errorf("unzipping: %w", err)
	}

	var stopsFile, linesFile *zip.File
	var ttblFiles []*zip.File

	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		switch {
		case f.Name == "stops.json":
			stopsFile = f
		case f.Name == "lines.json":
			linesFile = f
		case strings.HasPrefix(f.Name, "timetables/") && path.Ext(f.Name) == ".ttbl":
			ttblFiles = append(ttblFiles, f)
		}
	}

	if stopsFile == nil {
		return nil, nil, fmt.Errorf("missing stops.json")
	}
	if linesFile == nil {
		return nil, nil, fmt.Errorf("missing lines.json")
	}

	stops, err := readZipFile(stopsFile, ParseStops)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing stops.json: %w", err)
	}

	lines, err := readZipFile(linesFile, ParseLines)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing lines.json: %w", err)
	}

	builder := network.NewBuilder(hash)
	for _, s := range stops {
		builder.AddStop(s)
	}
	for _, l := range lines {
		builder.AddLine(l)
	}
	net, err := builder.Build()
	if err != nil {
		return nil, nil, fmt.Errorf("building network: %w", err)
	}

	// Deterministic timetable order regardless of zip layout.
	sort.Slice(ttblFiles, func(i, j int) bool {
		return ttblFiles[i].Name < ttblFiles[j].Name
	})

	var timetables []*schedule.Timetable
	for _, f := range ttblFiles {
		t, err := readZipFile(f, func(data io.Reader) (*schedule.Timetable, error) {
			return ParseTtbl(data, net)
		})
		if err != nil {
			return nil, nil, fmt.Errorf("parsing %s: %w", f.Name, err)
		}
		timetables = append(timetables, t)
	}

	return net, schedule.NewTimetables(timetables), nil
}

// readZipFile opens a zip entry and runs a parser over its contents. The BOM
// reader strips unicode BOMs if present.
func readZipFile[T any](f *zip.File, parser func(io.Reader) (T, error)) (T, error) {
	var zero T

	rc, err := f.Open()
	if err != nil {
		return zero, fmt.Errorf("opening: %w", err)
	}
	defer rc.Close()

	return parser(bom.NewReader(rc))
}
