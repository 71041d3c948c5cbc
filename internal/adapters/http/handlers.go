package httpadapter

import (
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	"svw.info/pairing/internal/assets"
	"svw.info/pairing/internal/domain"
	"svw.info/pairing/internal/usecase"
)

type Handler struct {
	UC *usecase.Service
	// ImageRoot is the directory target and pair images are served from.
	ImageRoot string
}

func New(uc *usecase.Service, imageRoot string) *Handler {
	return &Handler{UC: uc, ImageRoot: imageRoot}
}

func (h *Handler) Register(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Post("/sessions", h.handleStart)
		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Get("/", h.handleView)
			r.Delete("/", h.handleEnd)
			r.Post("/place", h.handlePlace)
			r.Post("/confirm", h.handleConfirm)
			r.Post("/cancel", h.handleCancel)
			r.Post("/remove", h.handleRemove)
			r.Post("/advance", h.handleAdvance)
			r.Post("/save", h.handleSave)
		})
		r.Get("/reports", h.handleReports)
		r.Get("/reports/{name}", h.handleReport)
	})
	r.Get("/images/{name}", h.handleImage)
}

type sessionResp struct {
	Session    *domain.SessionView      `json:"session,omitempty"`
	Outcome    *domain.PlacementOutcome `json:"outcome,omitempty"`
	Freed      domain.Item              `json:"freed,omitempty"`
	Transition string                   `json:"transition,omitempty"`
	Report     *domain.ReportMeta       `json:"report,omitempty"`
	Error      string                   `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusFor maps the error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidSlotIndex),
		errors.Is(err, domain.ErrUnknownItem),
		errors.Is(err, domain.ErrEmptySessionCode):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotComplete),
		errors.Is(err, domain.ErrNoPendingPlacement),
		errors.Is(err, domain.ErrFinalized),
		errors.Is(err, domain.ErrNotStarted),
		errors.Is(err, domain.ErrAlreadyStarted):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeErr(w http.ResponseWriter, err error, v *domain.SessionView) {
	resp := sessionResp{Error: err.Error()}
	if v != nil && v.ID != "" {
		resp.Session = v
	}
	writeJSON(w, statusFor(err), resp)
}

func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// ---- Session lifecycle ----

type startReq struct {
	Code string `json:"code"`
}

func (h *Handler) handleStart(w http.ResponseWriter, r *http.Request) {
	var req startReq
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, sessionResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	v, err := h.UC.Start(r.Context(), req.Code)
	if err != nil {
		writeErr(w, err, nil)
		return
	}
	writeJSON(w, http.StatusCreated, sessionResp{Session: &v})
}

func (h *Handler) handleView(w http.ResponseWriter, r *http.Request) {
	v, err := h.UC.View(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, sessionResp{Session: &v})
}

func (h *Handler) handleEnd(w http.ResponseWriter, r *http.Request) {
	if err := h.UC.End(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeErr(w, err, nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- Placement ----

type placeReq struct {
	Item string `json:"item"`
	Slot *int   `json:"slot"`
}

func (h *Handler) handlePlace(w http.ResponseWriter, r *http.Request) {
	var req placeReq
	if err := decode(r, &req); err != nil || req.Slot == nil {
		writeJSON(w, http.StatusBadRequest, sessionResp{Error: "invalid JSON or missing slot"})
		return
	}
	item := assets.ExtractName(req.Item)
	out, v, err := h.UC.Place(r.Context(), chi.URLParam(r, "id"), item, *req.Slot)
	if err != nil {
		writeErr(w, err, &v)
		return
	}
	writeJSON(w, http.StatusOK, sessionResp{Session: &v, Outcome: &out})
}

func (h *Handler) handleConfirm(w http.ResponseWriter, r *http.Request) {
	out, v, err := h.UC.Confirm(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, err, &v)
		return
	}
	writeJSON(w, http.StatusOK, sessionResp{Session: &v, Outcome: &out})
}

func (h *Handler) handleCancel(w http.ResponseWriter, r *http.Request) {
	v, err := h.UC.Cancel(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, err, &v)
		return
	}
	writeJSON(w, http.StatusOK, sessionResp{Session: &v})
}

type removeReq struct {
	Slot *int `json:"slot"`
}

func (h *Handler) handleRemove(w http.ResponseWriter, r *http.Request) {
	var req removeReq
	if err := decode(r, &req); err != nil || req.Slot == nil {
		writeJSON(w, http.StatusBadRequest, sessionResp{Error: "invalid JSON or missing slot"})
		return
	}
	freed, v, err := h.UC.Remove(r.Context(), chi.URLParam(r, "id"), *req.Slot)
	if err != nil {
		writeErr(w, err, &v)
		return
	}
	writeJSON(w, http.StatusOK, sessionResp{Session: &v, Freed: freed})
}

// ---- Advance / Save ----

func (h *Handler) handleAdvance(w http.ResponseWriter, r *http.Request) {
	tr, v, err := h.UC.Advance(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, err, &v)
		return
	}
	writeJSON(w, http.StatusOK, sessionResp{Session: &v, Transition: tr.String()})
}

func (h *Handler) handleSave(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	meta, err := h.UC.Save(r.Context(), id)
	if err != nil {
		v, _ := h.UC.View(r.Context(), id)
		writeErr(w, err, &v)
		return
	}
	writeJSON(w, http.StatusOK, sessionResp{Report: &meta})
}

// ---- Reports ----

type reportsResp struct {
	Reports []domain.ReportMeta `json:"reports"`
	Error   string              `json:"error,omitempty"`
}

func (h *Handler) handleReports(w http.ResponseWriter, r *http.Request) {
	list, err := h.UC.Reports(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, reportsResp{Error: err.Error()})
		return
	}
	if list == nil {
		list = []domain.ReportMeta{}
	}
	writeJSON(w, http.StatusOK, reportsResp{Reports: list})
}

func (h *Handler) handleReport(w http.ResponseWriter, r *http.Request) {
	body, err := h.UC.Report(r.Context(), chi.URLParam(r, "name"))
	switch {
	case errors.Is(err, fs.ErrInvalid):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, fs.ErrNotExist):
		http.Error(w, "report not found", http.StatusNotFound)
		return
	case err != nil:
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write(body)
}

// ---- Images ----

func (h *Handler) handleImage(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if h.ImageRoot == "" || !assets.Contains(h.UC.Sets, name) {
		http.NotFound(w, r)
		return
	}
	p := filepath.Join(h.ImageRoot, name)
	if _, err := os.Stat(p); err != nil {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, p)
}
