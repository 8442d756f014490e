package parse

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"vicrail.dev/vicrail/model"
	"vicrail.dev/vicrail/network"
	"vicrail.dev/vicrail/schedule"
)

const ttblVersion = "2"

// fileSection is one bracketed section of a .ttbl file: the header text
// without its brackets, and the non-empty lines below it.
type fileSection struct {
	header  string
	content []string
}

// ParseTtbl reads a single .ttbl timetable file. The first section must be
// the [timetable] metadata; every further section holds a grid of entries
// for one direction and set of weekdays. Entry indices run across sections,
// advancing by one per entry per weekday, so an entry's index identifies it
// within the whole file.
func ParseTtbl(data io.Reader, net *network.Network) (*schedule.Timetable, error) {
	sections, err := splitSections(data)
	if err != nil {
		return nil, err
	}
	if len(sections) < 2 {
		return nil, fmt.Errorf("expected metadata and at least one content section")
	}

	meta, err := parseTtblMetadata(sections[0])
	if err != nil {
		return nil, err
	}

	line := net.Line(meta.line)
	if line == nil {
		return nil, fmt.Errorf("unknown line %d", meta.line)
	}

	// The index keeps running across sections. Entries carry one index per
	// weekday they occur on, hence the weekday count in the stride.
	nextIndex := 0
	var parsed []schedule.Section
	for _, s := range sections[1:] {
		section, err := parseTtblSection(s, line, nextIndex)
		if err != nil {
			return nil, err
		}
		nextIndex += section.IndexSpan()
		parsed = append(parsed, *section)
	}

	return schedule.NewTimetable(
		meta.id, meta.line, meta.created, meta.kind, meta.begins, meta.ends, parsed)
}

// splitSections cuts the file at each "[...]" header line, dropping blank
// lines and surrounding whitespace. The file must open with the [timetable]
// header and the supported version line.
func splitSections(data io.Reader) ([]fileSection, error) {
	var lines []string
	scanner := bufio.NewScanner(data)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading: %w", err)
	}

	if len(lines) < 2 || lines[0] != "[timetable]" || lines[1] != "version: "+ttblVersion {
		return nil, fmt.Errorf("unrecognized timetable file format")
	}

	var sections []fileSection
	start := -1
	for i := 0; i <= len(lines); i++ {
		atHeader := i < len(lines) &&
			strings.HasPrefix(lines[i], "[") && strings.HasSuffix(lines[i], "]")
		if i == len(lines) || atHeader {
			if start >= 0 {
				sections = append(sections, fileSection{
					header:  strings.Trim(lines[start], "[]"),
					content: lines[start+1 : i],
				})
			}
			start = i
		}
	}

	return sections, nil
}

type ttblMetadata struct {
	created model.LocalDate
	id      schedule.TimetableID
	line    network.LineID
	kind    schedule.TimetableKind
	begins  *model.LocalDate
	ends    *model.LocalDate
}

func parseTtblMetadata(section fileSection) (*ttblMetadata, error) {
	if section.header != "timetable" {
		return nil, fmt.Errorf("expected [timetable] section first, got [%s]", section.header)
	}

	params := map[string]string{}
	for _, line := range section.content {
		key, value, found := strings.Cut(line, ": ")
		if !found {
			return nil, fmt.Errorf("malformed metadata line %q", line)
		}
		if _, dup := params[key]; dup {
			return nil, fmt.Errorf("duplicate metadata param %q", key)
		}
		params[key] = value
	}

	get := func(key string) (string, error) {
		value, ok := params[key]
		if !ok {
			return "", fmt.Errorf("metadata missing %q param", key)
		}
		return value, nil
	}

	var meta ttblMetadata
	var raw string
	var err error

	if raw, err = get("created"); err != nil {
		return nil, err
	}
	if meta.created, err = model.ParseLocalDate(raw); err != nil {
		return nil, errors.Wrap(err, "parsing created")
	}

	if raw, err = get("id"); err != nil {
		return nil, err
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return nil, errors.Wrap(err, "parsing id")
	}
	meta.id = schedule.TimetableID(id)

	if raw, err = get("line"); err != nil {
		return nil, err
	}
	lineID, err := strconv.Atoi(raw)
	if err != nil {
		return nil, errors.Wrap(err, "parsing line")
	}
	meta.line = network.LineID(lineID)

	if raw, err = get("type"); err != nil {
		return nil, err
	}
	if meta.kind, err = schedule.ParseTimetableKind(raw); err != nil {
		return nil, err
	}

	if raw, err = get("begins"); err != nil {
		return nil, err
	}
	if meta.begins, err = parseWildcardDate(raw); err != nil {
		return nil, errors.Wrap(err, "parsing begins")
	}

	if raw, err = get("ends"); err != nil {
		return nil, err
	}
	if meta.ends, err = parseWildcardDate(raw); err != nil {
		return nil, errors.Wrap(err, "parsing ends")
	}

	return &meta, nil
}

// parseWildcardDate reads an ISO date, with "*" meaning unbounded.
func parseWildcardDate(value string) (*model.LocalDate, error) {
	if value == "*" {
		return nil, nil
	}
	date, err := model.ParseLocalDate(value)
	if err != nil {
		return nil, err
	}
	return &date, nil
}

func parseTtblSection(section fileSection, line *network.Line,
	startIndex int) (*schedule.Section, error) {

	directionID, mask, found := strings.Cut(section.header, ", ")
	if !found {
		return nil, fmt.Errorf(
			"section header [%s] must hold a direction and weekday range", section.header)
	}

	direction := line.Direction(network.DirectionID(directionID))
	if direction == nil {
		return nil, fmt.Errorf("direction %q is invalid for line %d", directionID, line.ID)
	}

	weekdays, err := model.ParseWeekdaySet(mask)
	if err != nil {
		return nil, errors.Wrapf(err, "section [%s]", section.header)
	}

	entries, err := parseTtblGrid(section.content, direction, startIndex)
	if err != nil {
		return nil, errors.Wrapf(err, "section [%s]", section.header)
	}

	return &schedule.Section{
		Direction:  direction.ID,
		Weekdays:   weekdays,
		StartIndex: startIndex,
		Entries:    entries,
	}, nil
}

// parseTtblGrid reads a section's timetable grid. Each row holds a stop ID,
// the stop's name (ignored), and one time per entry; "-" marks a stop the
// entry skips, and a ">" prefix marks a time on the following day. The rows
// must list the direction's stops in their exact order, and every row must
// hold the same number of times.
func parseTtblGrid(content []string, direction *network.Direction,
	startIndex int) ([]schedule.Entry, error) {

	if len(content) == 0 {
		return nil, fmt.Errorf("timetable grid is missing")
	}
	if len(content) != len(direction.Stops) {
		return nil, fmt.Errorf(
			"grid has %d rows, direction %q has %d stops",
			len(content), direction.ID, len(direction.Stops))
	}

	type gridRow struct {
		stop  network.StopID
		times []*model.LocalTime
	}

	rows := make([]gridRow, 0, len(content))
	for i, line := range content {
		cells := strings.Fields(line)
		if len(cells) < 3 {
			return nil, fmt.Errorf("grid row %d has no times", i+1)
		}

		stopID, err := strconv.Atoi(cells[0])
		if err != nil {
			return nil, errors.Wrapf(err, "parsing stop ID (row %d)", i+1)
		}
		if network.StopID(stopID) != direction.Stops[i] {
			return nil, fmt.Errorf(
				"grid row %d has stop %d, direction %q expects %d",
				i+1, stopID, direction.ID, direction.Stops[i])
		}

		times := make([]*model.LocalTime, 0, len(cells)-2)
		for _, cell := range cells[2:] {
			if cell == "-" {
				times = append(times, nil)
				continue
			}
			nextDay := strings.HasPrefix(cell, ">")
			t, err := model.ParseLocalTime(strings.TrimPrefix(cell, ">"), nextDay)
			if err != nil {
				return nil, errors.Wrapf(err, "parsing time %q (row %d)", cell, i+1)
			}
			times = append(times, &t)
		}

		rows = append(rows, gridRow{stop: network.StopID(stopID), times: times})

		if len(times) != len(rows[0].times) {
			return nil, fmt.Errorf("grid is not rectangular (row %d)", i+1)
		}
	}

	entries := make([]schedule.Entry, 0, len(rows[0].times))
	for col := range rows[0].times {
		var times []schedule.StopTime
		for _, row := range rows {
			if row.times[col] == nil {
				continue
			}
			times = append(times, schedule.StopTime{Stop: row.stop, Time: *row.times[col]})
		}
		entry, err := schedule.NewEntry(startIndex+col, times)
		if err != nil {
			return nil, errors.Wrapf(err, "building entry %d", col+1)
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
