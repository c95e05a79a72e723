package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	invoicedomain "github.com/sufillxman/New-Mobile-Point-ERP/internal/invoice/domain"
)

func (s *Server) CreateInvoice(c *gin.Context) {
	var req invoicedomain.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.invoiceSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if s.auditSvc != nil {
		targetID := resp.ID.String()
		_ = s.auditSvc.Record(c.Request.Context(), "invoice.create", "invoice", &targetID, map[string]any{
			"invoice_id":  resp.ID.String(),
			"customer_id": resp.CustomerID.String(),
			"product_id":  resp.ProductID.String(),
			"status":      resp.Status(),
		})
	}

	c.JSON(http.StatusOK, gin.H{"data": resp, "status": resp.Status()})
}

func (s *Server) ListInvoices(c *gin.Context) {
	pendingOnly := strings.EqualFold(strings.TrimSpace(c.Query("pending")), "true")

	resp, err := s.invoiceSvc.List(c.Request.Context(), invoicedomain.ListInvoiceRequest{
		CustomerID:  strings.TrimSpace(c.Query("customer_id")),
		PendingOnly: pendingOnly,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetInvoiceByID(c *gin.Context) {
	resp, err := s.invoiceSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp, "status": resp.Status()})
}
