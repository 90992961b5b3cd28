package order

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Traasa/SistemDekor-sub004/pkg/platform/sentinel"
	"github.com/Traasa/SistemDekor-sub004/pkg/requestcontext"
)

// maxProofSize bounds uploaded payment proofs.
const maxProofSize = 8 << 20

// Handler is the thin HTTP layer over the order store. It delegates to the
// store without embedding business logic so transport concerns stay isolated.
type Handler struct {
	store  *InMemoryStore
	logger *slog.Logger
}

func NewHandler(store *InMemoryStore, logger *slog.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// Register mounts order endpoints. Parameter names matter: the activity
// subject resolver keys off {order} and {payment}.
func (h *Handler) Register(r chi.Router) {
	r.Get("/orders", h.handleList)
	r.Post("/orders", h.handleCreate)
	r.Get("/orders/{order}", h.handleGet)
	r.Put("/orders/{order}", h.handleUpdate)
	r.Delete("/orders/{order}", h.handleDelete)
	r.Post("/orders/{order}/verify", h.handleVerify)
	r.Post("/orders/{order}/reject", h.handleReject)
	r.Post("/orders/{order}/payments/{payment}/upload", h.handleUploadProof)
	r.Get("/orders/{order}/payments/{payment}/download", h.handleDownloadProof)
}

type orderRequest struct {
	ClientName  string    `json:"client_name"`
	EventDate   time.Time `json:"event_date"`
	PackageName string    `json:"package_name"`
	Venue       string    `json:"venue"`
	TotalAmount int64     `json:"total_amount"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	orders, err := h.store.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"orders": orders})
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req orderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ClientName == "" {
		writeJSONError(w, http.StatusBadRequest, "client_name is required")
		return
	}

	created, err := h.store.Create(r.Context(), Order{
		ClientName:  req.ClientName,
		EventDate:   req.EventDate,
		PackageName: req.PackageName,
		Venue:       req.Venue,
		TotalAmount: req.TotalAmount,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "order")
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "invalid order id")
		return
	}
	o, err := h.store.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "order")
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	var req orderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	existing, err := h.store.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	existing.ClientName = req.ClientName
	existing.EventDate = req.EventDate
	existing.PackageName = req.PackageName
	existing.Venue = req.Venue
	existing.TotalAmount = req.TotalAmount

	updated, err := h.store.Update(r.Context(), existing)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "order")
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "invalid order id")
		return
	}
	if err := h.store.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleVerify(w http.ResponseWriter, r *http.Request) {
	h.handleStatus(w, r, StatusVerified)
}

func (h *Handler) handleReject(w http.ResponseWriter, r *http.Request) {
	h.handleStatus(w, r, StatusRejected)
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request, status Status) {
	id, ok := pathID(r, "order")
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "invalid order id")
		return
	}
	o, err := h.store.SetStatus(r.Context(), id, status)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *Handler) handleUploadProof(w http.ResponseWriter, r *http.Request) {
	orderID, ok := pathID(r, "order")
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, maxProofSize+1))
	if err != nil || len(data) == 0 {
		writeJSONError(w, http.StatusBadRequest, "empty upload")
		return
	}
	if len(data) > maxProofSize {
		writeJSONError(w, http.StatusRequestEntityTooLarge, "proof too large")
		return
	}

	proof, err := h.store.SaveProof(r.Context(), PaymentProof{
		OrderID:     orderID,
		Filename:    r.Header.Get("X-Filename"),
		ContentType: r.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, proof)
}

func (h *Handler) handleDownloadProof(w http.ResponseWriter, r *http.Request) {
	orderID, okOrder := pathID(r, "order")
	proofID, okProof := pathID(r, "payment")
	if !okOrder || !okProof {
		writeJSONError(w, http.StatusBadRequest, "invalid id")
		return
	}

	proof, err := h.store.GetProof(r.Context(), orderID, proofID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if proof.ContentType != "" {
		w.Header().Set("Content-Type", proof.ContentType)
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(proof.Data)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, sentinel.ErrNotFound) {
		writeJSONError(w, http.StatusNotFound, "not found")
		return
	}
	h.logger.ErrorContext(r.Context(), "order operation failed",
		"request_id", requestcontext.RequestID(r.Context()),
		"error", err,
	)
	writeJSONError(w, http.StatusInternalServerError, "internal error")
}

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
