package handlers

import (
	"errors"
	"net/http"

	"github.com/Dhoini/invoice-dashboard/internal/domain"
	"github.com/Dhoini/invoice-dashboard/internal/export"
	"github.com/Dhoini/invoice-dashboard/internal/service"
	"github.com/Dhoini/invoice-dashboard/pkg/logger"
	"github.com/Dhoini/invoice-dashboard/pkg/req"
	"github.com/Dhoini/invoice-dashboard/pkg/res"
	"github.com/gin-gonic/gin"
)

// InvoiceHandler обработчик форм счетов
type InvoiceHandler struct {
	service service.InvoiceService
	log     *logger.Logger
}

// NewInvoiceHandler создает новый обработчик счетов
func NewInvoiceHandler(svc service.InvoiceService, log *logger.Logger) *InvoiceHandler {
	return &InvoiceHandler{
		service: svc,
		log:     log,
	}
}

// ListInvoices возвращает список счетов
func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	invoices, err := h.service.ListInvoices(c.Request.Context())
	if err != nil {
		h.log.Error("Failed to list invoices: %v", err)
		res.Error(c.Writer, http.StatusInternalServerError, "Failed to fetch invoices", h.log)
		return
	}

	h.log.Debug("Returned %d invoices", len(invoices))
	c.JSON(http.StatusOK, invoices)
}

// ExportInvoices выгружает список счетов в Excel
func (h *InvoiceHandler) ExportInvoices(c *gin.Context) {
	invoices, err := h.service.ListInvoices(c.Request.Context())
	if err == nil {
		var data []byte
		if data, err = export.InvoicesXLSX(invoices); err == nil {
			c.Header("Content-Disposition", `attachment; filename="invoices.xlsx"`)
			c.Data(http.StatusOK, export.ContentTypeXLSX, data)
			return
		}
	}

	h.log.Error("Failed to export invoices: %v", err)
	res.Error(c.Writer, http.StatusInternalServerError, "Failed to export invoices", h.log)
}

// GetInvoice возвращает счет по ID
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	id := c.Param("id")

	invoice, err := h.service.GetInvoice(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			res.Error(c.Writer, http.StatusNotFound, "Invoice not found", h.log)
			return
		}

		h.log.Error("Failed to get invoice %s: %v", id, err)
		res.Error(c.Writer, http.StatusInternalServerError, "Failed to fetch invoice", h.log)
		return
	}

	c.JSON(http.StatusOK, invoice)
}

// CreateInvoice принимает форму нового счета
func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	form, ok := h.form(c)
	if !ok {
		return
	}
	h.respond(c, h.service.CreateInvoice(c.Request.Context(), form))
}

// UpdateInvoice принимает форму изменения счета
func (h *InvoiceHandler) UpdateInvoice(c *gin.Context) {
	form, ok := h.form(c)
	if !ok {
		return
	}
	h.respond(c, h.service.UpdateInvoice(c.Request.Context(), c.Param("id"), form))
}

// DeleteInvoice удаляет счет
func (h *InvoiceHandler) DeleteInvoice(c *gin.Context) {
	h.respond(c, h.service.DeleteInvoice(c.Request.Context(), c.Param("id")))
}

func (h *InvoiceHandler) form(c *gin.Context) (map[string]string, bool) {
	form, err := req.Form(c.Request, domain.InvoiceFormFields...)
	if err != nil {
		h.log.Warn("Invalid form body: %v", err)
		res.Error(c.Writer, http.StatusBadRequest, "Invalid form body", h.log)
		return nil, false
	}
	return form, true
}

// respond переводит итог мутации в HTTP ответ
func (h *InvoiceHandler) respond(c *gin.Context, out domain.Outcome) {
	switch out.Kind {
	case domain.OutcomeRedirect:
		c.Redirect(http.StatusSeeOther, out.Path)
	case domain.OutcomeError:
		status := http.StatusInternalServerError
		if out.IsValidationFailure() {
			status = http.StatusUnprocessableEntity
		}
		c.JSON(status, out.State)
	default:
		c.Status(http.StatusNoContent)
	}
}
