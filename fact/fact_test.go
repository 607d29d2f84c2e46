// SPDX-FileCopyrightText: 2026 Mikołaj Kuranowski
// SPDX-License-Identifier: MIT

package fact

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"github.com/kmtabor/KMTimetable/calendar"
	"github.com/kmtabor/KMTimetable/dateexpr"
	"github.com/kmtabor/KMTimetable/lookup"
	"github.com/kmtabor/KMTimetable/schedule"
	"github.com/kmtabor/KMTimetable/util/file2"
	"github.com/kmtabor/KMTimetable/util/time2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
)

var serviceDate = time2.Date{Y: 2026, M: 6, D: 15}

func testContainer(t *testing.T) *Container {
	t.Helper()

	rows := []schedule.ScheduleRow{
		{
			TrainNumbers:     []string{"19311"},
			DepartureStation: "Warszawa Wschodnia",
			DepartureTime:    "5:03",
			ArrivalStation:   "Radom",
			ArrivalTime:      "6:59",
			Models:           []string{"EN57", "EN71"},
			CarCounts:        []int{1, 1},
			Dates:            "01.06 - 30.06 (A)",
		},
		{
			TrainNumbers: []string{"19320"},
			Models:       []string{"EN57"},
			CarCounts:    []int{1},
			Dates:        "01.07",
		},
	}

	m := dateexpr.NewMatcher(dateexpr.NewParser(nil, dateexpr.InheritFromRight), calendar.Default(), time2.Fixed(serviceDate))
	ix := lookup.NewIndex(rows, m, lookup.DefaultFleet())
	return Build(ix, serviceDate, time.Date(2026, 6, 15, 3, 0, 0, 0, time.UTC))
}

func TestBuild(t *testing.T) {
	c := testContainer(t)
	require.Equal(t, 1, c.TotalFacts())

	a := c.Assignments[0]
	assert.Equal(t, "20260615_19311", a.ID)
	assert.Equal(t, "EN57 + EN71", a.RollingStock)
	assert.Equal(t, "Radom", a.ArrivalStation)
}

func TestAsGTFS(t *testing.T) {
	g := testContainer(t).AsGTFS()

	assert.Equal(t, "2.0", g.GetHeader().GetGtfsRealtimeVersion())
	assert.Equal(t, uint64(1781492400), g.GetHeader().GetTimestamp())
	require.Len(t, g.Entity, 1)

	v := g.Entity[0].GetVehicle()
	assert.Equal(t, "19311", v.GetTrip().GetTripId())
	assert.Equal(t, "20260615", v.GetTrip().GetStartDate())
	assert.Equal(t, "05:03:00", v.GetTrip().GetStartTime())
	assert.Equal(t, gtfs.TripDescriptor_SCHEDULED, v.GetTrip().GetScheduleRelationship())
	assert.Equal(t, "EN57 + EN71", v.GetVehicle().GetLabel())
}

func TestDumpGTFSFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "km.pb")
	require.NoError(t, testContainer(t).DumpGTFSFile(path, Binary))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var g gtfs.FeedMessage
	require.NoError(t, proto.Unmarshal(data, &g))
	assert.Len(t, g.Entity, 1)

	_, err = os.Stat(file2.TempPath(path))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDumpGTFSReadable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, testContainer(t).DumpGTFS(&buf, HumanReadable))
	assert.Contains(t, buf.String(), `label:`)
	assert.Contains(t, buf.String(), `EN57 + EN71`)
}

func TestDumpJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, testContainer(t).DumpJSON(&buf, HumanReadable))

	var decoded struct {
		ServiceDate string `json:"service_date"`
		Assignments []struct {
			TrainNumber string `json:"train_number"`
			Units       []struct {
				Model string `json:"model"`
				Cars  int    `json:"cars"`
			} `json:"units"`
		} `json:"assignments"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "2026-06-15", decoded.ServiceDate)
	require.Len(t, decoded.Assignments, 1)
	assert.Equal(t, "19311", decoded.Assignments[0].TrainNumber)
	assert.Len(t, decoded.Assignments[0].Units, 2)
}
