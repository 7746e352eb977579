package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/kenocia/payroll-backend-go/internal/domain/payroll"
	"github.com/kenocia/payroll-backend-go/internal/handler/http/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type PayrollHandler interface {
	ListBatches(w http.ResponseWriter, r *http.Request)
	WorkedDayLines(w http.ResponseWriter, r *http.Request)
	AttendanceReport(w http.ResponseWriter, r *http.Request)
	PayrollSheet(w http.ResponseWriter, r *http.Request)
	ImportPayslipInputs(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{
		payrollService: payrollService,
	}
}

// ListBatches implements PayrollHandler.
func (h *payrollHandlerImpl) ListBatches(w http.ResponseWriter, r *http.Request) {
	batches, err := h.payrollService.ListBatches(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, batches)
}

// WorkedDayLines implements PayrollHandler.
func (h *payrollHandlerImpl) WorkedDayLines(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	from, to, err := parsePeriod(r)
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	lines, err := h.payrollService.WorkedDayLines(r.Context(), employeeID, from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, lines)
}

// AttendanceReport implements PayrollHandler.
func (h *payrollHandlerImpl) AttendanceReport(w http.ResponseWriter, r *http.Request) {
	from, to, err := parsePeriod(r)
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	data, err := h.payrollService.AttendanceReport(r.Context(), from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filename := fmt.Sprintf("reporte_asistencias_%s_%s.xlsx", from.Format("20060102"), to.Format("20060102"))
	serveWorkbook(w, filename, data)
}

// PayrollSheet implements PayrollHandler.
func (h *payrollHandlerImpl) PayrollSheet(w http.ResponseWriter, r *http.Request) {
	batchID := chi.URLParam(r, "batchID")

	data, err := h.payrollService.PayrollSheet(r.Context(), batchID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	serveWorkbook(w, "Planilla.xlsx", data)
}

// ImportPayslipInputs implements PayrollHandler.
func (h *payrollHandlerImpl) ImportPayslipInputs(w http.ResponseWriter, r *http.Request) {
	batchID := chi.URLParam(r, "batchID")

	// Parse multipart form (max 10MB)
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		if err == http.ErrMissingFile {
			response.BadRequest(w, "Field 'file' is required", nil)
			return
		}
		slog.Error("Failed to get file from form", "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return
	}
	defer file.Close()

	summary, err := h.payrollService.ImportPayslipInputs(r.Context(), batchID, file)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Payslip inputs processed", summary)
}

func parsePeriod(r *http.Request) (time.Time, time.Time, error) {
	query := r.URL.Query()
	from, err := time.Parse("2006-01-02", query.Get("date_from"))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("date_from must be in YYYY-MM-DD format")
	}
	to, err := time.Parse("2006-01-02", query.Get("date_to"))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("date_to must be in YYYY-MM-DD format")
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("date_to cannot precede date_from")
	}
	// Make the period inclusive of the last day.
	return from, to.AddDate(0, 0, 1).Add(-time.Second), nil
}

func serveWorkbook(w http.ResponseWriter, filename string, data []byte) {
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if _, err := w.Write(data); err != nil {
		slog.Error("Failed to write workbook response", "error", err)
	}
}
