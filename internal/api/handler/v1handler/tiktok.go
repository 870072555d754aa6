package v1handler

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
)

// TikTokMetadata resolves a TikTok video URL into normalized metadata.
func (h *Handler) TikTokMetadata(writer http.ResponseWriter, request *http.Request) {
	URL, err := decodeRequestURL(request)
	if err != nil {
		writeError(writer, request, err)

		return
	}

	timer := prometheus.NewTimer(upstreamLatency.WithLabelValues("tikwm"))
	media, err := h.deps.TikTok.Resolve(request.Context(), URL)
	timer.ObserveDuration()

	if err != nil {
		writeError(writer, request, err)

		return
	}

	writeJSON(writer, http.StatusOK, media)
}
