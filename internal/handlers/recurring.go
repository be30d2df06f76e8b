package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/programmableapple/financialAdvisor/internal/dto"
	"github.com/programmableapple/financialAdvisor/internal/middleware"
	"github.com/programmableapple/financialAdvisor/internal/models"
	"github.com/programmableapple/financialAdvisor/internal/response"
)

type recurringService interface {
	List(ctx context.Context, uid string) ([]*models.Recurring, error)
	Add(ctx context.Context, uid string, req dto.CreateRecurringRequest) (*models.Recurring, error)
	Delete(ctx context.Context, uid, recurringID string) error
	Detect(ctx context.Context, uid string) (dto.DetectResult, error)
}

type recurringHandlers struct {
	ResponseHandler response.ResponseHandler
	RecurringSvc    recurringService
}

func NewRecurringHandlers(deps *Deps) *recurringHandlers {
	return &recurringHandlers{
		ResponseHandler: deps.ResponseHandler,
		RecurringSvc:    deps.RecurringSvc,
	}
}

func (h *recurringHandlers) RecurringRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListRecurring)
	r.Post("/", h.AddRecurring)
	r.Get("/detect", h.DetectRecurring) // must be before /{recurringId}
	r.Delete("/{recurringId}", h.DeleteRecurring)
	return r
}

func (h *recurringHandlers) ListRecurring(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	recs, err := h.RecurringSvc.List(r.Context(), uid)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, recs)
}

func (h *recurringHandlers) AddRecurring(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateRecurringRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	rec, err := h.RecurringSvc.Add(r.Context(), uid, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, rec)
}

func (h *recurringHandlers) DeleteRecurring(w http.ResponseWriter, r *http.Request) {
	recurringID := chi.URLParam(r, "recurringId")
	uid := middleware.UID(r.Context())
	if err := h.RecurringSvc.Delete(r.Context(), uid, recurringID); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}

func (h *recurringHandlers) DetectRecurring(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	result, err := h.RecurringSvc.Detect(r.Context(), uid)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, result)
}
