package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"flexisync/internal/adapters/sheet"
	"flexisync/internal/app"
	"flexisync/internal/domain"
	"flexisync/internal/shared"
)

type Handlers struct {
	Q    *app.QueryService
	Sync *app.SyncService
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/reservations", h.listReservations)
	s.mux.Post("/v1/sync/pms", h.syncPMS)
	s.mux.Post("/v1/sync/file", h.syncFile)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func parseDateParam(s string) (*time.Time, bool) {
	if s == "" {
		return nil, true
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, false
	}
	return &t, true
}

func (h *Handlers) listReservations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	from, ok := parseDateParam(q.Get("from"))
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid date", "from must be YYYY-MM-DD")
		return
	}
	to, ok := parseDateParam(q.Get("to"))
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid date", "to must be YYYY-MM-DD")
		return
	}

	f := domain.ListFilter{From: from, To: to, Status: q.Get("status"), Property: q.Get("property")}
	out, err := h.Q.ListReservations(r.Context(), f)
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "List failed", err.Error())
		return
	}

	body, err := json.Marshal(out)
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "List failed", err.Error())
		return
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write reservations body")
	}
}

type pmsSyncRequest struct {
	HotelIDs []string `json:"hotelIds"`
	From     string   `json:"from"`
	To       string   `json:"to"`
}

func (h *Handlers) syncPMS(w http.ResponseWriter, r *http.Request) {
	var req pmsSyncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", "expected JSON {hotelIds, from, to}")
		return
	}
	from, err := time.Parse("2006-01-02", req.From)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid date", "from must be YYYY-MM-DD")
		return
	}
	to, err := time.Parse("2006-01-02", req.To)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid date", "to must be YYYY-MM-DD")
		return
	}
	ids := req.HotelIDs
	if len(ids) == 0 {
		ids = shared.PropertyIDs()
	}

	out, err := h.Sync.SyncProperties(r.Context(), ids, from, to)
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Sync failed", err.Error())
		return
	}
	if out.AuthErr != nil {
		writeProblem(w, http.StatusUnauthorized, "PMS authentication failed",
			"the PMS rejected the configured credentials; re-enter FLEXI_EMAIL / FLEXI_PASSWORD and retry")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) syncFile(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Missing file", "multipart field 'file' is required")
		return
	}
	defer file.Close()

	rows, err := sheet.ReadRows(file)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Unreadable file", err.Error())
		return
	}

	out, err := h.Sync.SyncRows(r.Context(), rows, header.Filename)
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Sync failed", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, out)
}
