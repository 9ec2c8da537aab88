package handler

import (
	"bytes"
	"fmt"
	"net/http"

	"recibos/internal/export"
	"recibos/internal/middleware"
	"recibos/internal/service"
	"recibos/pkg/pagination"
	"recibos/pkg/response"

	"github.com/gin-gonic/gin"
)

type ReceiptHandler struct {
	receiptService service.ReceiptService
	pdf            *export.PDFWriter
	guard          middleware.Guard
}

func NewReceiptHandler(receiptService service.ReceiptService, pdf *export.PDFWriter, guard middleware.Guard) *ReceiptHandler {
	return &ReceiptHandler{receiptService: receiptService, pdf: pdf, guard: guard}
}

func (h *ReceiptHandler) RegisterRoutes(router *gin.RouterGroup) {
	receipts := router.Group("/api/receipts")
	receipts.Use(h.guard(middleware.RoleAdmin, middleware.RoleOperator))
	{
		receipts.GET("", h.ListReceipts)
		receipts.POST("", h.CreateReceipt)
		receipts.GET("/:id", h.GetReceipt)
		receipts.PUT("/:id", h.UpdateReceipt)
		receipts.GET("/:id/pdf", h.DownloadReceipt)
		receipts.POST("/:id/annul", h.AnnulReceipt)
		receipts.POST("/:id/reverse", h.guard(middleware.RoleAdmin), h.ReverseAnnulment)
	}
}

// receiptListMeta is the pagination block plus totals over the whole filtered set.
type receiptListMeta struct {
	pagination.Meta
	Summary service.SummaryResponse `json:"summary"`
}

// ListReceipts returns one page of receipts matching the filter
// @Summary      List receipts
// @Description  Filters by search term, date range, status and categories. Summary covers every matching receipt.
// @Tags         receipts
// @Security     BearerAuth
// @Produce      json
// @Param        q           query     string  false  "Search term"
// @Param        field       query     string  false  "Restrict search to name, tax_id, transfer_reference, receipt_number or region"
// @Param        from        query     string  false  "From date (YYYY-MM-DD or DD/MM/YYYY)"
// @Param        to          query     string  false  "To date, inclusive"
// @Param        status      query     string  false  "all, active, annulled or a stored status"
// @Param        categories  query     string  false  "Comma separated category indexes, e.g. 1,3"
// @Param        page        query     int     false  "Page number (default 1)"
// @Param        limit       query     int     false  "Items per page (default 20)"
// @Success      200  {object}  response.Response{data=[]service.ReceiptResponse}
// @Failure      400  {object}  response.Response
// @Router       /api/receipts [get]
func (h *ReceiptHandler) ListReceipts(c *gin.Context) {
	var params service.CriteriaParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid query: "+err.Error()))
		return
	}
	criteria, err := service.ParseCriteria(params)
	if err != nil {
		writeError(c, err)
		return
	}

	p := pagination.Parse(c)
	list, err := h.receiptService.ListReceipts(c.Request.Context(), criteria, p.Page, p.Limit)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Page(http.StatusOK, list.Items, receiptListMeta{
		Meta:    p.NewMeta(list.Total),
		Summary: list.Summary,
	}))
}

// CreateReceipt registers a single receipt with the next consecutive number
// @Summary      Create receipt
// @Tags         receipts
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body      service.CreateReceiptRequest  true  "Receipt"
// @Success      201   {object}  response.Response{data=service.ReceiptResponse}
// @Failure      400   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Router       /api/receipts [post]
func (h *ReceiptHandler) CreateReceipt(c *gin.Context) {
	var req service.CreateReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	receipt, err := h.receiptService.CreateReceipt(c.Request.Context(), req, middleware.Actor(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, receipt))
}

// GetReceipt
// @Summary      Get receipt
// @Tags         receipts
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Receipt ID"
// @Success      200  {object}  response.Response{data=service.ReceiptResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/receipts/{id} [get]
func (h *ReceiptHandler) GetReceipt(c *gin.Context) {
	receipt, err := h.receiptService.GetReceipt(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, receipt))
}

// UpdateReceipt edits an active receipt; annulled receipts are rejected
// @Summary      Update receipt
// @Tags         receipts
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id    path      string                        true  "Receipt ID"
// @Param        body  body      service.UpdateReceiptRequest  true  "Fields to change"
// @Success      200   {object}  response.Response{data=service.ReceiptResponse}
// @Failure      409   {object}  response.Response
// @Router       /api/receipts/{id} [put]
func (h *ReceiptHandler) UpdateReceipt(c *gin.Context) {
	var req service.UpdateReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	receipt, err := h.receiptService.UpdateReceipt(c.Request.Context(), c.Param("id"), req, middleware.Actor(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, receipt))
}

// AnnulReceipt
// @Summary      Annul receipt
// @Tags         receipts
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Receipt ID"
// @Success      200  {object}  response.Response{data=service.ReceiptResponse}
// @Failure      409  {object}  response.Response
// @Router       /api/receipts/{id}/annul [post]
func (h *ReceiptHandler) AnnulReceipt(c *gin.Context) {
	receipt, err := h.receiptService.AnnulReceipt(c.Request.Context(), c.Param("id"), middleware.Actor(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, receipt).WithMessage("Receipt "+receipt.DisplayNumber+" annulled"))
}

// ReverseAnnulment restores an annulled receipt to PAID (admin only)
// @Summary      Reverse annulment
// @Tags         receipts
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Receipt ID"
// @Success      200  {object}  response.Response{data=service.ReceiptResponse}
// @Failure      403  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /api/receipts/{id}/reverse [post]
func (h *ReceiptHandler) ReverseAnnulment(c *gin.Context) {
	receipt, err := h.receiptService.ReverseAnnulment(c.Request.Context(), c.Param("id"), middleware.Actor(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, receipt).WithMessage("Receipt "+receipt.DisplayNumber+" restored"))
}

// DownloadReceipt renders the printable receipt document
// @Summary      Receipt PDF
// @Tags         receipts
// @Security     BearerAuth
// @Produce      application/pdf
// @Param        id   path  string  true  "Receipt ID"
// @Success      200  {file}  file
// @Failure      404  {object}  response.Response
// @Router       /api/receipts/{id}/pdf [get]
func (h *ReceiptHandler) DownloadReceipt(c *gin.Context) {
	receipt, err := h.receiptService.FindReceipt(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := h.pdf.WriteReceipt(&buf, *receipt); err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to render receipt: "+err.Error()))
		return
	}

	attachment(c, fmt.Sprintf("recibo_%s.pdf", receipt.DisplayNumber()), export.ContentTypePDF, buf.Bytes())
}

func attachment(c *gin.Context, filename, contentType string, body []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, body)
}
