package handlers

import (
	"net/http"

	"github.com/SscSPs/loot_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/loot_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/loot_ledger_app/internal/dto"
	"github.com/gin-gonic/gin"
)

type saleHandler struct {
	saleService portssvc.SaleSvcFacade
}

func newSaleHandler(ss portssvc.SaleSvcFacade) *saleHandler {
	return &saleHandler{saleService: ss}
}

func registerSaleRoutes(rg *gin.RouterGroup, saleService portssvc.SaleSvcFacade) {
	h := newSaleHandler(saleService)

	sales := rg.Group("/sales")
	{
		sales.GET("/pending", h.pendingSummary)
		sales.GET("/history", h.saleHistory)
		sales.POST("/all", h.sellAll)
		sales.POST("/up-to", h.sellUpTo)
		sales.POST("/selected", h.sellSelected)
		sales.POST("/all-except", h.sellAllExcept)
	}
}

// pendingSummary godoc
// @Summary Pending sale summary
// @Description Lists items pending sale with their sale values and the total of the valid ones.
// @Tags sales
// @Produce  json
// @Success 200 {object} domain.PendingSaleSummary
// @Security BearerAuth
// @Router /sales/pending [get]
func (h *saleHandler) pendingSummary(c *gin.Context) {
	summary, err := h.saleService.PendingSaleSummary(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to summarise pending sales")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// saleHistory godoc
// @Summary Sale history
// @Tags sales
// @Produce  json
// @Param   limit query int false "Max records (default 50)"
// @Param   offset query int false "Offset"
// @Success 200 {array} domain.SoldRecord
// @Security BearerAuth
// @Router /sales/history [get]
func (h *saleHandler) saleHistory(c *gin.Context) {
	var q dto.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}
	records, err := h.saleService.SaleHistory(c.Request.Context(), q.Limit, q.Offset)
	if err != nil {
		respondError(c, err, "Failed to list sale history")
		return
	}
	c.JSON(http.StatusOK, records)
}

// sellAll godoc
// @Summary Sell every valid pending item
// @Tags sales
// @Produce  json
// @Success 200 {object} domain.SaleResult
// @Failure 404 {object} map[string]string "Nothing to sell"
// @Failure 409 {object} map[string]string "Concurrent change"
// @Security BearerAuth
// @Router /sales/all [post]
func (h *saleHandler) sellAll(c *gin.Context) {
	h.respondSale(c, func(actor domain.Actor) (*domain.SaleResult, error) {
		return h.saleService.SellAll(c.Request.Context(), actor)
	})
}

// sellUpTo godoc
// @Summary Sell pending items up to a value cap
// @Description Sells valid pending items in id order until the next one would exceed the cap.
// @Tags sales
// @Accept  json
// @Produce  json
// @Param   cap body dto.SellUpToRequest true "Value cap"
// @Success 200 {object} domain.SaleResult
// @Failure 400 {object} map[string]string "Invalid cap"
// @Failure 404 {object} map[string]string "Nothing to sell"
// @Security BearerAuth
// @Router /sales/up-to [post]
func (h *saleHandler) sellUpTo(c *gin.Context) {
	var req dto.SellUpToRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	h.respondSale(c, func(actor domain.Actor) (*domain.SaleResult, error) {
		return h.saleService.SellUpTo(c.Request.Context(), req.Amount, actor)
	})
}

// sellSelected godoc
// @Summary Sell selected items
// @Tags sales
// @Accept  json
// @Produce  json
// @Param   items body dto.SellSelectedRequest true "Item ids"
// @Success 200 {object} domain.SaleResult
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Nothing to sell"
// @Security BearerAuth
// @Router /sales/selected [post]
func (h *saleHandler) sellSelected(c *gin.Context) {
	var req dto.SellSelectedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	h.respondSale(c, func(actor domain.Actor) (*domain.SaleResult, error) {
		return h.saleService.SellSelected(c.Request.Context(), req.ItemIDs, actor)
	})
}

// sellAllExcept godoc
// @Summary Sell pending items except some
// @Tags sales
// @Accept  json
// @Produce  json
// @Param   keep body dto.SellAllExceptRequest true "Item ids to keep"
// @Success 200 {object} domain.SaleResult
// @Failure 404 {object} map[string]string "Nothing to sell"
// @Security BearerAuth
// @Router /sales/all-except [post]
func (h *saleHandler) sellAllExcept(c *gin.Context) {
	var req dto.SellAllExceptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	h.respondSale(c, func(actor domain.Actor) (*domain.SaleResult, error) {
		return h.saleService.SellAllExcept(c.Request.Context(), req.KeepIDs, actor)
	})
}

func (h *saleHandler) respondSale(c *gin.Context, sell func(actor domain.Actor) (*domain.SaleResult, error)) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	result, err := sell(actor)
	if err != nil {
		respondError(c, err, "Failed to sell loot")
		return
	}
	c.JSON(http.StatusOK, result)
}
