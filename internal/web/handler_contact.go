package web

import "net/http"

type contactRequest struct {
	RoomID    string `json:"roomId"`
	Message   string `json:"message"`
	FromEmail string `json:"fromEmail"`
}

func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	var body contactRequest
	if err := decodeJSON(r, &body); err != nil {
		s.writeError(w, err)
		return
	}

	if err := s.service.Contact(r.Context(), body.RoomID, body.Message, body.FromEmail); err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, "Message sent to owner")
}
