package profiles

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// API is the thin read/trigger surface over the service. All real
// logic lives in Service, handlers only translate query parameters.
type API struct {
	service Service
}

func RegisterRoutes(r *mux.Router, service Service) {
	api := API{service: service}
	r.HandleFunc("/api/profiles", api.ListProfiles).Methods("GET")
	r.HandleFunc("/api/refresh", api.Refresh).Methods("GET")
	r.HandleFunc("/api/refresh/status", api.RefreshStatus).Methods("GET")
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func intQuery(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func (api API) ListProfiles(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	result, err := api.service.ListProfiles(r.Context(), ListRequest{
		Limit:    intQuery(r, "limit", 100),
		Page:     intQuery(r, "page", 1),
		Name:     query.Get("name"),
		Location: query.Get("location"),
		Funding:  query.Get("funding"),
	})
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (api API) Refresh(w http.ResponseWriter, r *http.Request) {
	report, err := api.service.Refresh(r.Context(), RefreshRequest{
		BatchSize: intQuery(r, "batchSize", defaultBatchSize),
		UserId:    r.URL.Query().Get("userId"),
	})
	if errors.Is(err, ErrMissingCredentials) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (api API) RefreshStatus(w http.ResponseWriter, r *http.Request) {
	report, err := api.service.RefreshStatus(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, report)
}
