package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	vicrail "vicrail.dev/vicrail"
	"vicrail.dev/vicrail/network"
)

type departurePayload struct {
	Stop        int                    `json:"stop"`
	TimeUTC     string                 `json:"timeUTC"`
	Line        int                    `json:"line"`
	Service     string                 `json:"service"`
	Direction   string                 `json:"direction"`
	Platform    *string                `json:"platform"`
	SetDownOnly bool                   `json:"setDownOnly"`
	Stops       []departureStopPayload `json:"stops"`
}

type departureStopPayload struct {
	Stop    int    `json:"stop"`
	TimeUTC string `json:"timeUTC"`
}

type departuresResponse struct {
	Departures []departurePayload `json:"departures"`
	Network    *networkPayload    `json:"network"`
}

func (s *Server) handleDeparturesV1(w http.ResponseWriter, r *http.Request) {
	snapshot := s.snapshot(w)
	if snapshot == nil {
		return
	}

	stopString, ok := requiredParam(w, r, "stop")
	if !ok {
		return
	}
	timeString, ok := requiredParam(w, r, "time")
	if !ok {
		return
	}
	countString, ok := requiredParam(w, r, "count")
	if !ok {
		return
	}
	reverseString, ok := requiredParam(w, r, "reverse")
	if !ok {
		return
	}
	hash, ok := requiredParam(w, r, "hash")
	if !ok {
		return
	}
	filter := r.URL.Query().Get("filter")

	stopID, err := strconv.Atoi(stopString)
	if err != nil {
		badRequest(w, "%q is not a valid stop ID.", stopString)
		return
	}

	when, err := time.Parse(time.RFC3339, timeString)
	if err != nil {
		badRequest(w, "%q is not a valid ISO8601 time.", timeString)
		return
	}

	// Week numbers repeat on a 36 week cycle, so queries too far from the
	// present would resolve services into the wrong cycle.
	daysAway := time.Until(when).Hours() / 24
	if daysAway < -float64(s.MaxQueryDays) || daysAway > float64(s.MaxQueryDays) {
		badRequest(w, "Cannot get departures over %d days in the past/future.", s.MaxQueryDays)
		return
	}

	count, err := strconv.Atoi(countString)
	if err != nil || count < 1 {
		badRequest(w, "%q is not a positive integer.", countString)
		return
	}
	if count > s.MaxDepartures {
		badRequest(w, "%d is the limit for count, so %d is not allowed.", s.MaxDepartures, count)
		return
	}

	if reverseString != "true" && reverseString != "false" {
		badRequest(w, "%q is not a boolean value.", reverseString)
		return
	}
	reverse := reverseString == "true"

	departures, err := snapshot.Departures(
		network.StopID(stopID), when, count, reverse, filter)
	if errors.Is(err, vicrail.ErrStopNotFound) {
		badRequest(w, "No stop with ID %d found.", stopID)
		return
	}
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	payload := make([]departurePayload, 0, len(departures))
	for i := range departures {
		payload = append(payload, buildDeparturePayload(&departures[i]))
	}

	writeJSON(w, departuresResponse{
		Departures: payload,
		Network:    networkIfStale(snapshot, hash),
	})
}

func buildDeparturePayload(d *vicrail.Departure) departurePayload {
	stops := make([]departureStopPayload, 0, len(d.Service.Stops))
	for _, stop := range d.Service.Stops {
		stops = append(stops, departureStopPayload{
			Stop:    int(stop.Stop),
			TimeUTC: stop.Time.Format(time.RFC3339),
		})
	}
	return departurePayload{
		Stop:        int(d.Stop),
		TimeUTC:     d.Time.Format(time.RFC3339),
		Line:        int(d.Service.Line),
		Service:     d.Service.ID.String(),
		Direction:   string(d.Service.Direction),
		Platform:    nullablePlatform(d.Platform),
		SetDownOnly: d.SetDownOnly,
		Stops:       stops,
	}
}
