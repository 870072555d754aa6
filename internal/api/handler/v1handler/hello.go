package v1handler

import "net/http"

type messageResponse struct {
	Message string `json:"message"`
}

// Root answers the root liveness greeting.
func (h *Handler) Root(writer http.ResponseWriter, _ *http.Request) {
	writeJSON(writer, http.StatusOK, messageResponse{Message: "Hello from the resolver backend!"})
}

// Hello answers the API liveness greeting.
func (h *Handler) Hello(writer http.ResponseWriter, _ *http.Request) {
	writeJSON(writer, http.StatusOK, messageResponse{Message: "Hello from the backend API!"})
}
