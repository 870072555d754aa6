package v1handler

import (
	"errors"
	"net/http"

	"resolver/pkg/logger"
	"resolver/pkg/storage"

	"go.uber.org/zap"
)

// collectionsLimit caps how many table names the diagnostics report lists.
const collectionsLimit = 10

// errDetailLimit caps how much of an error message leaks into the report.
const errDetailLimit = 50

type diagnosticsResponse struct {
	Backend          string   `json:"backend"`
	Database         string   `json:"database"`
	DatabaseURL      string   `json:"database_url"`
	DatabaseName     string   `json:"database_name"`
	ConnectionStatus string   `json:"connection_status"`
	Collections      []string `json:"collections,omitempty"`
}

func presence(set bool) string {
	if set {
		return "✅ Set"
	}

	return "❌ Not Set"
}

func truncateError(err error) string {
	msg := err.Error()
	if len(msg) > errDetailLimit {
		msg = msg[:errDetailLimit]
	}

	return msg
}

// Diagnostics reports service and database health. It never fails the
// request: every probe error degrades to a descriptive status string.
func (h *Handler) Diagnostics(writer http.ResponseWriter, request *http.Request) {
	ctx := request.Context()

	response := diagnosticsResponse{
		Backend:          "✅ Running",
		Database:         "❌ Not Available",
		DatabaseURL:      presence(h.deps.DatabaseURLSet),
		DatabaseName:     presence(h.deps.DatabaseNameSet),
		ConnectionStatus: "Not Connected",
	}

	switch err := h.deps.Store.Ping(ctx); {
	case errors.Is(err, storage.ErrNotConfigured):
		// no database configured, report defaults

	case err != nil:
		logger.Warn(ctx, "database ping failed", zap.Error(err))
		response.Database = "❌ Error: " + truncateError(err)

	default:
		response.Database = "✅ Available"
		response.ConnectionStatus = "Connected"

		names, err := h.deps.Store.Collections(ctx, collectionsLimit)
		if err != nil {
			logger.Warn(ctx, "could not list collections", zap.Error(err))
			response.Database = "⚠️  Connected but Error: " + truncateError(err)
		} else {
			response.Database = "✅ Connected & Working"
			response.Collections = names
		}
	}

	writeJSON(writer, http.StatusOK, response)
}
