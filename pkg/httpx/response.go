package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/aussiebroadwan/pairlink/pkg/pairsdk"
)

// WriteJSON writes v as JSON with the given status. Responses are never
// cacheable.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes the pairsdk error shape with ok=false.
func WriteError(w http.ResponseWriter, code int, errCode, description string) {
	WriteJSON(w, code, pairsdk.ErrorResponse{
		OK:               false,
		Error:            errCode,
		ErrorDescription: description,
	})
}

// NoCache sets the headers that stop clients and proxies caching a response.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}
