package web

import (
	"fmt"
	"net/http"

	"github.com/roomboard/roomboard/internal/domain"
)

func (s *Server) handleCreateRoom(w http.ResponseWriter, r *http.Request) {
	var body domain.RoomPatch
	if err := decodeJSON(r, &body); err != nil {
		s.writeError(w, err)
		return
	}

	room, err := s.service.Create(r.Context(), s.identity(r), &body)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": room.ID})
}

func (s *Server) handleGetRooms(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	if len(query) > 0 {
		// Query parameters other than id are not a listing filter; the only
		// recognized lookup is by id.
		if !query.Has("id") {
			writeJSON(w, http.StatusBadRequest, "Id required!")
			return
		}

		room, err := s.service.Get(r.Context(), query.Get("id"))
		if err != nil {
			s.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, room)
		return
	}

	rooms, err := s.service.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rooms)
}

func (s *Server) handleUpdateRoom(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, "Please provide right args!!")
		return
	}

	var patch domain.RoomPatch
	if err := decodeJSON(r, &patch); err != nil {
		s.writeError(w, err)
		return
	}

	room, err := s.service.Update(r.Context(), s.identity(r), id, &patch)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, room)
}

func (s *Server) handleDeleteRoom(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, "Please provide right args!!")
		return
	}

	if err := s.service.Delete(r.Context(), s.identity(r), id); err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, fmt.Sprintf("Deleted room with id %s", id))
}
