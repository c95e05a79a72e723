package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	paymentdomain "github.com/sufillxman/New-Mobile-Point-ERP/internal/payment/domain"
	"github.com/sufillxman/New-Mobile-Point-ERP/pkg/money"
)

type applyPaymentRequest struct {
	Amount string `json:"amount"`
}

func (s *Server) ApplyPayment(c *gin.Context) {
	var req applyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.paymentSvc.Apply(c.Request.Context(), paymentdomain.ApplyPaymentRequest{
		InvoiceID: strings.TrimSpace(c.Param("id")),
		Amount:    strings.TrimSpace(req.Amount),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if s.auditSvc != nil {
		targetID := resp.Invoice.ID.String()
		_ = s.auditSvc.Record(c.Request.Context(), "payment.apply", "invoice", &targetID, map[string]any{
			"invoice_id": resp.Invoice.ID.String(),
			"applied":    money.Format(resp.Applied),
			"settled":    resp.Settled,
		})
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
