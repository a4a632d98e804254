package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/easybookevent/artistcal/internal/services"
	"github.com/easybookevent/artistcal/pkg/response"
)

// ExportHandler serves the admin CSV export.
type ExportHandler struct {
	export *services.ExportService
}

func NewExportHandler(export *services.ExportService) *ExportHandler {
	return &ExportHandler{export: export}
}

// CSV renders the calendar as CSV text inside the standard JSON envelope, so
// the frontend can trigger the download itself.
func (h *ExportHandler) CSV(c *gin.Context) {
	content, err := h.export.ExportCSV(requestContext(c), c.Query("start"), c.Query("end"), c.Query("artist_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"csv_content": content})
}
