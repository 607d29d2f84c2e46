// SPDX-FileCopyrightText: 2026 Mikołaj Kuranowski
// SPDX-License-Identifier: MIT

// Package fact publishes rolling stock assignments of a service day
// as a GTFS-Realtime feed and as JSON.
package fact

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"github.com/kmtabor/KMTimetable/lookup"
	"github.com/kmtabor/KMTimetable/util/file2"
	"github.com/kmtabor/KMTimetable/util/time2"
	"google.golang.org/protobuf/encoding/prototext"
	"google.golang.org/protobuf/proto"
)

const (
	Binary        = false
	HumanReadable = true
)

type Container struct {
	Schema      string        `json:"$schema,omitempty"`
	Timestamp   time.Time     `json:"timestamp"`
	ServiceDate time2.Date    `json:"service_date"`
	Assignments []*Assignment `json:"assignments"`
}

// Build collects assignments of all trains active on the given date.
func Build(ix *lookup.Index, date time2.Date, now time.Time) *Container {
	c := &Container{Timestamp: now, ServiceDate: date}
	for _, res := range ix.Active(date) {
		c.Assignments = append(c.Assignments, NewAssignment(res, date))
	}
	return c
}

func (c *Container) AsGTFS() *gtfs.FeedMessage {
	g := &gtfs.FeedMessage{
		Header: &gtfs.FeedHeader{
			GtfsRealtimeVersion: ptr("2.0"),
			Incrementality:      ptr(gtfs.FeedHeader_FULL_DATASET),
			Timestamp:           ptr(uint64(c.Timestamp.Unix())),
		},
	}

	g.Entity = make([]*gtfs.FeedEntity, 0, len(c.Assignments))
	for _, a := range c.Assignments {
		g.Entity = append(g.Entity, a.AsGTFS())
	}

	return g
}

func (c *Container) DumpJSON(w io.Writer, humanReadable bool) error {
	e := json.NewEncoder(w)
	if humanReadable {
		e.SetIndent("", "\t")
	}
	return e.Encode(c)
}

func (c *Container) DumpJSONFile(path string, humanReadable bool) error {
	return file2.Replace(path, func(w io.Writer) error { return c.DumpJSON(w, humanReadable) })
}

func (c *Container) DumpGTFS(w io.Writer, humanReadable bool) error {
	var data []byte
	var err error

	if humanReadable {
		data, err = prototext.Marshal(c.AsGTFS())
	} else {
		data, err = proto.Marshal(c.AsGTFS())
	}

	if err != nil {
		return err
	}

	_, err = io.Copy(w, bytes.NewReader(data))
	return err
}

func (c *Container) DumpGTFSFile(path string, humanReadable bool) error {
	return file2.Replace(path, func(w io.Writer) error { return c.DumpGTFS(w, humanReadable) })
}

func (c *Container) TotalFacts() int {
	return len(c.Assignments)
}

// Assignment tells which rolling stock serves a train on a service day.
type Assignment struct {
	ID               string        `json:"id"`
	TrainNumber      string        `json:"train_number"`
	ServiceDate      time2.Date    `json:"service_date"`
	DepartureStation string        `json:"departure_station"`
	DepartureTime    string        `json:"departure_time"`
	ArrivalStation   string        `json:"arrival_station"`
	ArrivalTime      string        `json:"arrival_time"`
	RollingStock     string        `json:"rolling_stock"`
	Units            []lookup.Unit `json:"units"`
}

func NewAssignment(res lookup.Result, date time2.Date) *Assignment {
	return &Assignment{
		ID:               fmt.Sprintf("%s_%s", date.StringSeparator(""), res.TrainNumber),
		TrainNumber:      res.TrainNumber,
		ServiceDate:      date,
		DepartureStation: res.Row.DepartureStation,
		DepartureTime:    res.Row.DepartureTime,
		ArrivalStation:   res.Row.ArrivalStation,
		ArrivalTime:      res.Row.ArrivalTime,
		RollingStock:     res.RollingStock,
		Units:            res.Units,
	}
}

// AsGTFS returns a vehicle entity without a position,
// only describing the train and its rolling stock.
func (a *Assignment) AsGTFS() *gtfs.FeedEntity {
	trip := &gtfs.TripDescriptor{
		TripId:               ptr(a.TrainNumber),
		StartDate:            ptr(a.ServiceDate.StringSeparator("")),
		ScheduleRelationship: ptr(gtfs.TripDescriptor_SCHEDULED),
	}
	if t, ok := lookup.NormalizeTime(a.DepartureTime); ok {
		trip.StartTime = ptr(t + ":00")
	}

	return &gtfs.FeedEntity{
		Id: ptr(a.ID),
		Vehicle: &gtfs.VehiclePosition{
			Trip: trip,
			Vehicle: &gtfs.VehicleDescriptor{
				Id:    ptr(a.ID),
				Label: ptr(a.RollingStock),
			},
		},
	}
}

func ptr[T any](thing T) *T {
	return &thing
}
