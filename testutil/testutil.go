package testutil

// Helpers and fixture data for tests.

import (
	"archive/zip"
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	vicrail "vicrail.dev/vicrail"
	"vicrail.dev/vicrail/parse"
)

// Fixture stop IDs. The five city loop stations and the Richmond portal use
// their fixed IDs; the rest are arbitrary.
const (
	StopFlindersStreet   = 1071
	StopSouthernCross    = 1181
	StopFlagstaff        = 1068
	StopMelbourneCentral = 1120
	StopParliament       = 1155
	StopRichmond         = 1162
	StopCaulfield        = 1030
	StopDandenong        = 1049
	StopPakenham         = 1153
	StopTraralgon        = 1194
	StopBendigo          = 2002
	StopEchuca           = 2001
	StopSwanHill         = 2003
)

// Fixture line IDs.
const (
	LinePakenham  = 1
	LineGippsland = 2
	LineBendigo   = 3
)

// DefaultStopsJSON is a stops.json covering a suburban city loop line, a
// regional line sharing part of its track, and a regional branch line.
// Caulfield and Richmond have multiple platforms with rules, so platform
// guessing has something to chew on.
func DefaultStopsJSON() []string {
	return []string{`{
		"stops": [
			{"id": 1071, "name": "Flinders Street", "urlName": "flinders-street", "adjacent": [1162, 1181], "ptvID": 1071,
				"platforms": [{"id": "1", "name": "Platform 1", "rules": []}]},
			{"id": 1181, "name": "Southern Cross", "urlName": "southern-cross", "adjacent": [1071, 1068], "ptvID": 1181,
				"platforms": [
					{"id": "12", "name": "Platform 12", "rules": ["suburban"]},
					{"id": "15", "name": "Platform 15", "rules": ["regional"]}]},
			{"id": 1068, "name": "Flagstaff", "urlName": "flagstaff", "adjacent": [1181, 1120], "ptvID": 1068,
				"platforms": [{"id": "1", "name": "Platform 1", "rules": []}]},
			{"id": 1120, "name": "Melbourne Central", "urlName": "melbourne-central", "adjacent": [1068, 1155], "ptvID": 1120,
				"platforms": [{"id": "1", "name": "Platform 1", "rules": []}]},
			{"id": 1155, "name": "Parliament", "urlName": "parliament", "adjacent": [1120, 1162], "ptvID": 1155,
				"platforms": [{"id": "1", "name": "Platform 1", "rules": []}]},
			{"id": 1162, "name": "Richmond", "urlName": "richmond", "adjacent": [1071, 1155, 1030], "ptvID": 1162,
				"platforms": [
					{"id": "1", "name": "Platform 1", "rules": ["up"]},
					{"id": "2", "name": "Platform 2", "rules": ["down"]}]},
			{"id": 1030, "name": "Caulfield", "urlName": "caulfield", "adjacent": [1162, 1049], "ptvID": 1030,
				"platforms": [
					{"id": "1", "name": "Platform 1", "rules": ["up suburban"]},
					{"id": "2", "name": "Platform 2", "rules": ["down suburban"]},
					{"id": "3", "name": "Platform 3", "rules": ["regional"]}]},
			{"id": 1049, "name": "Dandenong", "urlName": "dandenong", "adjacent": [1030, 1153], "ptvID": 1049,
				"platforms": [{"id": "1", "name": "Platform 1", "rules": []}]},
			{"id": 1153, "name": "Pakenham", "urlName": "pakenham", "adjacent": [1049], "ptvID": 1153,
				"platforms": [{"id": "1", "name": "Platform 1", "rules": []}]},
			{"id": 1194, "name": "Traralgon", "urlName": "traralgon", "adjacent": [1153], "ptvID": 1194,
				"platforms": [{"id": "1", "name": "Platform 1", "rules": []}]},
			{"id": 2002, "name": "Bendigo", "urlName": "bendigo", "adjacent": [1181, 2001, 2003], "ptvID": 2002,
				"platforms": [{"id": "1", "name": "Platform 1", "rules": []}]},
			{"id": 2001, "name": "Echuca", "urlName": "echuca", "adjacent": [2002], "ptvID": 2001,
				"platforms": [{"id": "1", "name": "Platform 1", "rules": []}]},
			{"id": 2003, "name": "Swan Hill", "urlName": "swan-hill", "adjacent": [2002], "ptvID": 2003,
				"platforms": [{"id": "1", "name": "Platform 1", "rules": []}]}
		]
	}`}
}

// DefaultLinesJSON pairs with DefaultStopsJSON: line 1 is a suburban city
// loop line through the Richmond portal, line 2 a regional linear line
// overlapping it between Caulfield and Pakenham, and line 3 a regional
// branch line.
func DefaultLinesJSON() []string {
	return []string{`{
		"lines": [
			{"id": 1, "name": "Pakenham", "color": "cyan", "service": "suburban", "ptvRoutes": [11],
				"route": {"type": "city-loop", "portal": "richmond",
					"stops": [1153, 1049, 1030, 1162]}},
			{"id": 2, "name": "Gippsland", "color": "purple", "service": "regional", "ptvRoutes": [21],
				"route": {"type": "linear", "upTerminus": "Southern Cross", "downTerminus": "Traralgon",
					"stops": [1194, 1153, 1030, 1181]}},
			{"id": 3, "name": "Bendigo", "color": "purple", "service": "regional", "ptvRoutes": [31, 32],
				"route": {"type": "branch", "branches": [
					{"id": "echuca", "upTerminus": "Southern Cross", "downTerminus": "Echuca",
						"stops": [2001, 2002, 1181]},
					{"id": "swan-hill", "upTerminus": "Southern Cross", "downTerminus": "Swan Hill",
						"stops": [2003, 2002, 1181]}]}}
		]
	}`}
}

// BuildZip zips the given files, each a list of lines.
func BuildZip(t testing.TB, files map[string][]string) []byte {
	buf := &bytes.Buffer{}
	w := zip.NewWriter(buf)
	for filename, content := range files {
		f, err := w.Create(filename)
		require.NoError(t, err)
		_, err = f.Write([]byte(strings.Join(content, "\n")))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	return buf.Bytes()
}

// BuildSnapshot builds a snapshot from bundle files. Missing stops.json and
// lines.json fall back to the fixture network.
func BuildSnapshot(t testing.TB, files map[string][]string) *vicrail.Snapshot {
	if files["stops.json"] == nil {
		files["stops.json"] = DefaultStopsJSON()
	}
	if files["lines.json"] == nil {
		files["lines.json"] = DefaultLinesJSON()
	}

	buf := BuildZip(t, files)

	net, timetables, err := parse.ParseBundle(buf, "test-hash")
	require.NoError(t, err)

	location, err := time.LoadLocation("Australia/Melbourne")
	require.NoError(t, err)

	return &vicrail.Snapshot{
		Network:    net,
		Timetables: timetables,
		Location:   location,
	}
}
