package v1handler

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
)

// Resolve resolves any yt-dlp-supported video URL into normalized metadata.
func (h *Handler) Resolve(writer http.ResponseWriter, request *http.Request) {
	URL, err := decodeRequestURL(request)
	if err != nil {
		writeError(writer, request, err)

		return
	}

	timer := prometheus.NewTimer(upstreamLatency.WithLabelValues("ytdlp"))
	media, err := h.deps.Media.Resolve(request.Context(), URL)
	timer.ObserveDuration()

	if err != nil {
		writeError(writer, request, err)

		return
	}

	writeJSON(writer, http.StatusOK, media)
}
