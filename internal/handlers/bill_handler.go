package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/frontdesk-api/internal/models"
	"github.com/sjperalta/frontdesk-api/internal/services"
)

type BillHandler struct {
	billService    *services.BillService
	splitService   *services.SplitService
	lineageService *services.LineageService
}

func NewBillHandler(billService *services.BillService, splitService *services.SplitService, lineageService *services.LineageService) *BillHandler {
	return &BillHandler{
		billService:    billService,
		splitService:   splitService,
		lineageService: lineageService,
	}
}

// SplitBillRequest selects the charges to move to a new split bill.
// Accepts {"split": {...}} or a flat body.
type SplitBillRequest struct {
	TransactionIDs []uint  `json:"transaction_ids"`
	Narration      *string `json:"narration"`
}

// @Summary Generate Bill
// @Description Bill everything posted to an active folio
// @Tags Bills
// @Produce json
// @Param folio_no path string true "Folio number"
// @Success 201 {object} models.BillResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /folios/{folio_no}/bills [post]
func (h *BillHandler) Generate(c *gin.Context) {
	bill, err := h.billService.GenerateBill(c.Request.Context(), c.Param("folio_no"), actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"bill": bill.ToResponse(), "message": "Bill generated"})
}

// @Summary List Folio Bills
// @Description Bills generated for a folio, splits included
// @Tags Bills
// @Produce json
// @Param folio_no path string true "Folio number"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /folios/{folio_no}/bills [get]
func (h *BillHandler) ListByFolio(c *gin.Context) {
	bills, err := h.billService.ListByFolio(c.Request.Context(), c.Param("folio_no"))
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.BillResponse, len(bills))
	for i := range bills {
		responses[i] = bills[i].ToResponse()
	}
	c.JSON(http.StatusOK, gin.H{"bills": responses})
}

// @Summary Get Bill
// @Description Bill with its charges and advances
// @Tags Bills
// @Produce json
// @Param bill_no path string true "Bill number"
// @Success 200 {object} services.BillDetail
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /bills/{bill_no} [get]
func (h *BillHandler) Show(c *gin.Context) {
	detail, err := h.billService.GetBill(c.Request.Context(), c.Param("bill_no"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bill": detail})
}

// @Summary Split Bill
// @Description Move selected charges into a new split bill under the same root
// @Tags Bills
// @Accept json
// @Produce json
// @Param bill_no path string true "Bill number"
// @Param request body SplitBillRequest true "Charges to move"
// @Success 201 {object} services.SplitResult
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /bills/{bill_no}/split [post]
func (h *BillHandler) Split(c *gin.Context) {
	var req SplitBillRequest
	if err := BindNestedOrFlat(c, "split", &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	result, err := h.splitService.Split(c.Request.Context(), services.SplitRequest{
		BillNo:    c.Param("bill_no"),
		ChargeIDs: req.TransactionIDs,
		Narration: req.Narration,
	}, actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// @Summary Related Bills
// @Description Root bill and all of its splits, balances recomputed
// @Tags Bills
// @Produce json
// @Param bill_no path string true "Bill number"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /bills/{bill_no}/related [get]
func (h *BillHandler) Related(c *gin.Context) {
	lineage, err := h.lineageService.GetRelatedBills(c.Request.Context(), c.Param("bill_no"))
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.BillResponse, len(lineage.Bills))
	for i := range lineage.Bills {
		responses[i] = lineage.Bills[i].ToResponse()
	}
	c.JSON(http.StatusOK, gin.H{
		"root_bill_no":   lineage.RootBillNo,
		"bills":          responses,
		"total_amount":   lineage.TotalAmount(),
		"balance_amount": lineage.BalanceAmount(),
	})
}
