package http

import (
	"encoding/json"
	"net/http"

	"github.com/chronohr/attendance-backend-go/internal/domain/holiday"
	"github.com/chronohr/attendance-backend-go/internal/domain/rules"
	"github.com/chronohr/attendance-backend-go/internal/handler/http/response"
	"github.com/chronohr/attendance-backend-go/internal/service/master"
	"github.com/go-chi/chi/v5"
)

type MasterHandler interface {
	CreateLatenessRule(w http.ResponseWriter, r *http.Request)
	GetLatenessRule(w http.ResponseWriter, r *http.Request)
	ListLatenessRules(w http.ResponseWriter, r *http.Request)
	DeleteLatenessRule(w http.ResponseWriter, r *http.Request)

	CreateOvertimeRule(w http.ResponseWriter, r *http.Request)
	GetOvertimeRule(w http.ResponseWriter, r *http.Request)
	ListOvertimeRules(w http.ResponseWriter, r *http.Request)
	DeleteOvertimeRule(w http.ResponseWriter, r *http.Request)

	CreateHoliday(w http.ResponseWriter, r *http.Request)
	GetHoliday(w http.ResponseWriter, r *http.Request)
	ListHolidays(w http.ResponseWriter, r *http.Request)
	DeleteHoliday(w http.ResponseWriter, r *http.Request)
}

type masterHandlerImpl struct {
	masterService master.MasterService
}

func NewMasterHandler(masterService master.MasterService) MasterHandler {
	return &masterHandlerImpl{
		masterService: masterService,
	}
}

// ==================== LATENESS RULES ====================

func (h *masterHandlerImpl) CreateLatenessRule(w http.ResponseWriter, r *http.Request) {
	var req rules.CreateLatenessRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.masterService.CreateLatenessRule(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Lateness rule created", result)
}

func (h *masterHandlerImpl) GetLatenessRule(w http.ResponseWriter, r *http.Request) {
	result, err := h.masterService.GetLatenessRule(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *masterHandlerImpl) ListLatenessRules(w http.ResponseWriter, r *http.Request) {
	result, err := h.masterService.ListLatenessRules(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *masterHandlerImpl) DeleteLatenessRule(w http.ResponseWriter, r *http.Request) {
	if err := h.masterService.DeleteLatenessRule(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Lateness rule deleted", nil)
}

// ==================== OVERTIME RULES ====================

func (h *masterHandlerImpl) CreateOvertimeRule(w http.ResponseWriter, r *http.Request) {
	var req rules.CreateOvertimeRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.masterService.CreateOvertimeRule(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Overtime rule created", result)
}

func (h *masterHandlerImpl) GetOvertimeRule(w http.ResponseWriter, r *http.Request) {
	result, err := h.masterService.GetOvertimeRule(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *masterHandlerImpl) ListOvertimeRules(w http.ResponseWriter, r *http.Request) {
	result, err := h.masterService.ListOvertimeRules(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *masterHandlerImpl) DeleteOvertimeRule(w http.ResponseWriter, r *http.Request) {
	if err := h.masterService.DeleteOvertimeRule(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Overtime rule deleted", nil)
}

// ==================== HOLIDAYS ====================

func (h *masterHandlerImpl) CreateHoliday(w http.ResponseWriter, r *http.Request) {
	var req holiday.CreateHolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.masterService.CreateHoliday(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Holiday created", result)
}

func (h *masterHandlerImpl) GetHoliday(w http.ResponseWriter, r *http.Request) {
	result, err := h.masterService.GetHoliday(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *masterHandlerImpl) ListHolidays(w http.ResponseWriter, r *http.Request) {
	result, err := h.masterService.ListHolidays(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *masterHandlerImpl) DeleteHoliday(w http.ResponseWriter, r *http.Request) {
	if err := h.masterService.DeleteHoliday(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Holiday deleted", nil)
}
