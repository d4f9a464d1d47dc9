package http

import (
	"encoding/json"
	"net/http"

	"github.com/chronohr/attendance-backend-go/internal/domain/exception"
	"github.com/chronohr/attendance-backend-go/internal/handler/http/middleware"
	"github.com/chronohr/attendance-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ExceptionHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type exceptionHandlerImpl struct {
	exceptionService exception.ExceptionService
}

func NewExceptionHandler(exceptionService exception.ExceptionService) ExceptionHandler {
	return &exceptionHandlerImpl{
		exceptionService: exceptionService,
	}
}

// Create implements ExceptionHandler.
func (h *exceptionHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req exception.CreateExceptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if req.EmployeeID == "" {
		req.EmployeeID = middleware.EmployeeID(r)
	}

	result, err := h.exceptionService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Time exception submitted", result)
}

// Get implements ExceptionHandler.
func (h *exceptionHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.exceptionService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements ExceptionHandler.
func (h *exceptionHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var employeeID *string
	if v := r.URL.Query().Get("employeeId"); v != "" {
		employeeID = &v
	}

	result, err := h.exceptionService.List(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Approve implements ExceptionHandler.
func (h *exceptionHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	result, err := h.exceptionService.Approve(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Time exception approved", result)
}

// Reject implements ExceptionHandler.
func (h *exceptionHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	result, err := h.exceptionService.Reject(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Time exception rejected", result)
}

// Delete implements ExceptionHandler.
func (h *exceptionHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.exceptionService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Time exception deleted", nil)
}
