package postcards

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gorilla/mux"
	"github.com/zjoart/mapcard/pkg/logger"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError emits the {"detail": ...} envelope every error response uses.
func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

// RegisterRoutes mounts postcard endpoints onto router
func RegisterRoutes(r *mux.Router, svc *Service) {
	r.HandleFunc("/api/themes", func(w http.ResponseWriter, req *http.Request) {
		themes, err := svc.ListThemes()
		if err != nil {
			logger.Error("handler: ListThemes failed", logger.WithError(err))
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"themes": themes})
	}).Methods("GET")

	r.HandleFunc("/api/generate", func(w http.ResponseWriter, req *http.Request) {
		// absent optional fields keep these defaults
		body := PostcardRequest{
			Theme:    "warm_beige",
			Distance: 8000,
			Fast:     true,
		}
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if body.City == "" || body.Country == "" {
			writeError(w, http.StatusBadRequest, "city and country are required")
			return
		}

		filename, err := svc.Generate(req.Context(), body)
		if err != nil {
			if err == ErrNotFound {
				writeError(w, http.StatusBadRequest, fmt.Sprintf("Theme '%s' not found", body.Theme))
				return
			}
			if nf, ok := err.(NotFoundError); ok {
				writeError(w, http.StatusBadRequest, nf.Error())
				return
			}
			logger.Error("handler: Generate failed", logger.WithError(err))
			writeError(w, http.StatusInternalServerError, "Failed to generate postcard: "+err.Error())
			return
		}

		writeJSON(w, http.StatusOK, GenerateResponse{
			Success:  true,
			Filename: filename,
			URL:      "/static/postcards/" + filename,
		})
	}).Methods("POST")

	r.HandleFunc("/postcards/{filename}", func(w http.ResponseWriter, req *http.Request) {
		filename := filepath.Base(mux.Vars(req)["filename"])
		path := filepath.Join(svc.PostcardsDir, filename)
		if _, err := os.Stat(path); err != nil {
			writeError(w, http.StatusNotFound, "Postcard not found")
			return
		}
		http.ServeFile(w, req, path)
	}).Methods("GET")
}
