package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sjperalta/frontdesk-api/internal/services"
)

type SettlementHandler struct {
	billService       *services.BillService
	settlementService *services.SettlementService
}

func NewSettlementHandler(billService *services.BillService, settlementService *services.SettlementService) *SettlementHandler {
	return &SettlementHandler{billService: billService, settlementService: settlementService}
}

// SettleBillRequest is one payment against a bill.
// Accepts {"settlement": {...}} or a flat body.
type SettleBillRequest struct {
	Amount          decimal.Decimal `json:"amount" swaggertype:"string" example:"150.00"`
	PaymentModeID   uint            `json:"payment_mode_id"`
	CardNumberLast4 string          `json:"card_number_last4"`
	CardHolder      string          `json:"card_holder"`
	OnlineReference string          `json:"online_reference"`
	Notes           string          `json:"notes"`
}

// @Summary Settle Bill
// @Description Record a payment against a bill
// @Tags Settlements
// @Accept json
// @Produce json
// @Param bill_no path string true "Bill number"
// @Param request body SettleBillRequest true "Payment"
// @Success 201 {object} models.BillSettlementView
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /bills/{bill_no}/settlements [post]
func (h *SettlementHandler) Settle(c *gin.Context) {
	var req SettleBillRequest
	if err := BindNestedOrFlat(c, "settlement", &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	view, err := h.settlementService.Settle(c.Request.Context(), services.SettleRequest{
		BillNo:        c.Param("bill_no"),
		Amount:        req.Amount,
		PaymentModeID: req.PaymentModeID,
		Metadata: services.PaymentMetadata{
			CardNumber:      req.CardNumberLast4,
			CardHolder:      req.CardHolder,
			OnlineReference: req.OnlineReference,
			Notes:           req.Notes,
		},
	}, actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"settlement": view, "message": "Payment recorded"})
}

// @Summary Settlement Status
// @Description Cashier view of a bill's settlement
// @Tags Settlements
// @Produce json
// @Param bill_no path string true "Bill number"
// @Success 200 {object} models.BillSettlementView
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /bills/{bill_no}/settlement [get]
func (h *SettlementHandler) Status(c *gin.Context) {
	view, err := h.billService.GetSettlementStatus(c.Request.Context(), c.Param("bill_no"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"settlement": view})
}

// @Summary Payment History
// @Description Payment notes, settlement receipts and absorbed advances of a bill
// @Tags Settlements
// @Produce json
// @Param bill_no path string true "Bill number"
// @Success 200 {object} services.PaymentHistory
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /bills/{bill_no}/payments [get]
func (h *SettlementHandler) Payments(c *gin.Context) {
	history, err := h.settlementService.PaymentHistory(c.Request.Context(), c.Param("bill_no"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}

// @Summary Pending Settlements
// @Description PENDING and PARTIAL bills, oldest first
// @Tags Settlements
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param status query string false "PENDING or PARTIAL"
// @Param folio_no query string false "Folio number"
// @Param search query string false "Guest name or bill number"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /settlements/pending [get]
func (h *SettlementHandler) Pending(c *gin.Context) {
	query := listQueryFrom(c, 20)
	query.Filters["status"] = c.Query("status")
	query.Filters["folio_no"] = c.Query("folio_no")

	views, total, err := h.billService.ListPendingSettlements(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"settlements": views,
		"pagination":  pagination(query, total),
	})
}
