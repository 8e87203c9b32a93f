package web

import "net/http"

type subscribeRequest struct {
	RoomID   string `json:"roomId"`
	Protocol string `json:"protocol"`
	Endpoint string `json:"endpoint"`
}

type subscribeResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

func (s *Server) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	var body subscribeRequest
	if err := decodeJSON(r, &body); err != nil {
		s.writeError(w, err)
		return
	}

	sub, err := s.service.Subscribe(r.Context(), body.RoomID, body.Protocol, body.Endpoint)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, subscribeResponse{
		Message: "Subscription requested. Please confirm if required.",
		Status:  sub.Status,
	})
}
