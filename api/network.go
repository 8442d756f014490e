package api

import (
	"net/http"

	vicrail "vicrail.dev/vicrail"
)

// networkPayload is the stable v1 shape of the network data. Fields may be
// added, but existing ones must keep their meaning; breaking changes get a
// new API version instead.
type networkPayload struct {
	Hash  string        `json:"hash"`
	Stops []stopPayload `json:"stops"`
}

type stopPayload struct {
	ID        int               `json:"id"`
	Name      string            `json:"name"`
	Platforms []platformPayload `json:"platforms"`
	URLName   string            `json:"urlName"`
}

type platformPayload struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func buildNetworkPayload(s *vicrail.Snapshot) *networkPayload {
	stops := s.Network.Stops()
	payload := &networkPayload{
		Hash:  s.Network.Hash(),
		Stops: make([]stopPayload, 0, len(stops)),
	}
	for _, stop := range stops {
		platforms := make([]platformPayload, 0, len(stop.Platforms))
		for _, p := range stop.Platforms {
			platforms = append(platforms, platformPayload{ID: string(p.ID), Name: p.Name})
		}
		payload.Stops = append(payload.Stops, stopPayload{
			ID:        int(stop.ID),
			Name:      stop.Name,
			Platforms: platforms,
			URLName:   stop.URLName,
		})
	}
	return payload
}

// networkIfStale returns the network payload only when the client's cached
// hash no longer matches, so unchanged data stays off the wire.
func networkIfStale(s *vicrail.Snapshot, clientHash string) *networkPayload {
	if clientHash == s.Network.Hash() {
		return nil
	}
	return buildNetworkPayload(s)
}

func (s *Server) handleNetworkV1(w http.ResponseWriter, r *http.Request) {
	snapshot := s.snapshot(w)
	if snapshot == nil {
		return
	}
	writeJSON(w, buildNetworkPayload(snapshot))
}
