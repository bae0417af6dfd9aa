package httphandler

import (
	"encoding/json"
	"net/http"

	"github.com/ericfisherdev/weeklycommits/internal/domain/model"
)

// writeJSON marshals v to JSON and writes it to the response with the given
// status code. If marshaling fails, a plain-text 500 is written instead.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		writeText(w, http.StatusInternalServerError, "error processing request")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeText writes an opaque plain-text response. Error responses never carry
// internal detail.
func writeText(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(message))
}

// DailyCountResponse is the JSON representation of one day of commit activity.
type DailyCountResponse struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// HealthResponse is the JSON body of the health endpoint.
type HealthResponse struct {
	Status string `json:"status"`
}

func toDailyCountResponse(d model.DailyCount) DailyCountResponse {
	return DailyCountResponse{
		Date:  d.Date,
		Count: d.Count,
	}
}
