package handler

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"recibos/internal/export"
	"recibos/internal/middleware"
	"recibos/internal/service"
	"recibos/internal/spreadsheet"
	"recibos/pkg/response"

	"github.com/gin-gonic/gin"
)

const maxUploadSize = 10 << 20

type ImportHandler struct {
	importService service.ImportService
	template      spreadsheet.Template
	guard         middleware.Guard
}

func NewImportHandler(importService service.ImportService, template spreadsheet.Template, guard middleware.Guard) *ImportHandler {
	return &ImportHandler{importService: importService, template: template, guard: guard}
}

func (h *ImportHandler) RegisterRoutes(router *gin.RouterGroup) {
	imports := router.Group("/api/receipts/import")
	imports.Use(h.guard(middleware.RoleAdmin, middleware.RoleOperator))
	{
		imports.POST("", h.ImportReceipts)
		imports.GET("/template", h.DownloadTemplate)
	}
}

// ImportReceipts loads a spreadsheet upload as one all-or-nothing batch
// @Summary      Import receipts from Excel
// @Description  Every row is validated before anything is written. Any failure rejects the whole file.
// @Tags         import
// @Security     BearerAuth
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Workbook (.xlsx)"
// @Success      200   {object}  response.Response{data=service.ImportResult}
// @Failure      409   {object}  response.Response{data=service.ImportResult}
// @Failure      422   {object}  response.Response{data=service.ImportResult}
// @Router       /api/receipts/import [post]
func (h *ImportHandler) ImportReceipts(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "A spreadsheet must be uploaded in the 'file' field"))
		return
	}
	if header.Size > maxUploadSize {
		c.JSON(http.StatusRequestEntityTooLarge, response.Error(http.StatusRequestEntityTooLarge, "File exceeds the 10 MB limit"))
		return
	}

	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Failed to read upload: "+err.Error()))
		return
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, maxUploadSize))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Failed to read upload: "+err.Error()))
		return
	}

	result, err := h.importService.Import(c.Request.Context(), content, middleware.Actor(c))
	if err != nil {
		code := http.StatusInternalServerError
		var importErr *service.ImportError
		if errors.As(err, &importErr) {
			code = importStatusFor(importErr.Kind)
		}
		resp := response.Error(code, result.Message)
		resp.Data = result
		c.JSON(code, resp)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, result).WithMessage(result.Message))
}

// DownloadTemplate returns an empty workbook with the expected sheet and headers
// @Summary      Import template
// @Tags         import
// @Security     BearerAuth
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}  file
// @Router       /api/receipts/import/template [get]
func (h *ImportHandler) DownloadTemplate(c *gin.Context) {
	var buf bytes.Buffer
	if err := spreadsheet.WriteTemplate(&buf, h.template); err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to build template: "+err.Error()))
		return
	}

	attachment(c, "plantilla_recibos.xlsx", export.ContentTypeXLSX, buf.Bytes())
}
