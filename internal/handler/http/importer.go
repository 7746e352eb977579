package http

import (
	"log/slog"
	"net/http"

	"github.com/kenocia/payroll-backend-go/internal/domain/importer"
	"github.com/kenocia/payroll-backend-go/internal/handler/http/response"
)

type ImportHandler interface {
	ImportAttendance(w http.ResponseWriter, r *http.Request)
}

type importHandlerImpl struct {
	importService importer.ImportService
}

func NewImportHandler(importService importer.ImportService) ImportHandler {
	return &importHandlerImpl{
		importService: importService,
	}
}

// ImportAttendance implements ImportHandler.
func (h *importHandlerImpl) ImportAttendance(w http.ResponseWriter, r *http.Request) {
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

	summary, err := h.importService.ImportWorkbook(r.Context(), file)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Workbook processed", summary)
}
