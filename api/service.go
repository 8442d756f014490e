package api

import (
	"errors"
	"net/http"
	"time"

	vicrail "vicrail.dev/vicrail"
	"vicrail.dev/vicrail/model"
	"vicrail.dev/vicrail/network"
)

type servicePayload struct {
	ID        string               `json:"id"`
	Line      int                  `json:"line"`
	Direction string               `json:"direction"`
	Stops     []serviceStopPayload `json:"stops"`
}

type serviceStopPayload struct {
	Stop     int     `json:"stop"`
	TimeUTC  string  `json:"timeUTC"`
	Platform *string `json:"platform"`
}

type serviceResponse struct {
	Service servicePayload  `json:"service"`
	Network *networkPayload `json:"network"`
}

func buildServicePayload(service *vicrail.Service) servicePayload {
	stops := make([]serviceStopPayload, 0, len(service.Stops))
	for _, stop := range service.Stops {
		stops = append(stops, serviceStopPayload{
			Stop:     int(stop.Stop),
			TimeUTC:  stop.Time.Format(time.RFC3339),
			Platform: nullablePlatform(stop.Platform),
		})
	}
	return servicePayload{
		ID:        service.ID.String(),
		Line:      int(service.Line),
		Direction: string(service.Direction),
		Stops:     stops,
	}
}

// nullablePlatform maps an unknown platform to JSON null rather than "".
func nullablePlatform(platform network.PlatformID) *string {
	if platform == "" {
		return nil
	}
	p := string(platform)
	return &p
}

func (s *Server) handleServiceV1(w http.ResponseWriter, r *http.Request) {
	snapshot := s.snapshot(w)
	if snapshot == nil {
		return
	}

	idString, ok := requiredParam(w, r, "id")
	if !ok {
		return
	}
	hash, ok := requiredParam(w, r, "hash")
	if !ok {
		return
	}

	id, err := model.ParseServiceID(idString)
	if err != nil {
		badRequest(w, "%q is not a valid service ID.", idString)
		return
	}

	service, err := snapshot.ResolveService(id, time.Now())
	if errors.Is(err, vicrail.ErrServiceNotFound) {
		badRequest(w, "No service with ID %q found.", idString)
		return
	}
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	writeJSON(w, serviceResponse{
		Service: buildServicePayload(service),
		Network: networkIfStale(snapshot, hash),
	})
}
