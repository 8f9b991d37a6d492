package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/cmlabs-hris/hris-analytic-go/internal/domain/analytic"
	"github.com/cmlabs-hris/hris-analytic-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AnalyticHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Recalculate(w http.ResponseWriter, r *http.Request)
	CheckExceptions(w http.ResponseWriter, r *http.Request)
}

type analyticHandlerImpl struct {
	analyticService analytic.AnalyticService
}

func NewAnalyticHandler(analyticService analytic.AnalyticService) AnalyticHandler {
	return &analyticHandlerImpl{
		analyticService: analyticService,
	}
}

// List implements AnalyticHandler.
func (h *analyticHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var filter analytic.LineFilter

	if timesheetID := r.URL.Query().Get("timesheet_id"); timesheetID != "" {
		filter.TimesheetID = &timesheetID
	}
	if employeeID := r.URL.Query().Get("employee_id"); employeeID != "" {
		filter.EmployeeID = &employeeID
	}
	if startDate := r.URL.Query().Get("start_date"); startDate != "" {
		filter.StartDate = &startDate
	}
	if endDate := r.URL.Query().Get("end_date"); endDate != "" {
		filter.EndDate = &endDate
	}
	if checked := r.URL.Query().Get("day_checked"); checked != "" {
		if b, err := strconv.ParseBool(checked); err == nil {
			filter.DayChecked = &b
		}
	}

	// Pagination
	if p := r.URL.Query().Get("page"); p != "" {
		if pageNum, err := strconv.Atoi(p); err == nil && pageNum > 0 {
			filter.Page = pageNum
		}
	}
	if l := r.URL.Query().Get("limit"); l != "" {
		if limitNum, err := strconv.Atoi(l); err == nil && limitNum > 0 {
			filter.Limit = limitNum
		}
	}

	result, err := h.analyticService.ListLines(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Lines, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}

// Get implements AnalyticHandler.
func (h *analyticHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.analyticService.GetLine(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Recalculate implements AnalyticHandler.
func (h *analyticHandlerImpl) Recalculate(w http.ResponseWriter, r *http.Request) {
	var req analytic.RecalculateLineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	// Validate guarantees the date parses
	date, _ := time.Parse("2006-01-02", req.Date)

	lines, err := h.analyticService.RecalculateLine(r.Context(), date, req.EmployeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result := make([]analytic.LineResponse, 0, len(lines))
	for _, l := range lines {
		result = append(result, analytic.NewLineResponse(l))
	}

	response.SuccessWithMessage(w, "Analytic lines recalculated", result)
}

// CheckExceptions implements AnalyticHandler.
func (h *analyticHandlerImpl) CheckExceptions(w http.ResponseWriter, r *http.Request) {
	result, err := h.analyticService.CheckExceptions(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, analytic.ExceptionScanResponse{
		Scanned:  result.Scanned,
		Notified: result.Notified,
		Skipped:  result.Skipped,
	})
}
