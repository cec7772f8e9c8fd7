package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/loot_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/loot_ledger_app/internal/dto"
	"github.com/gin-gonic/gin"
)

type consumableHandler struct {
	consumableService portssvc.ConsumableSvcFacade
}

func newConsumableHandler(cs portssvc.ConsumableSvcFacade) *consumableHandler {
	return &consumableHandler{consumableService: cs}
}

func registerConsumableRoutes(rg *gin.RouterGroup, consumableService portssvc.ConsumableSvcFacade) {
	h := newConsumableHandler(consumableService)

	consumables := rg.Group("/consumables")
	{
		consumables.GET("", h.listConsumables)
		consumables.POST("/use", h.useConsumable)
		consumables.PUT("/:id/charges", h.setCharges)
		consumables.GET("/history", h.useHistory)
	}
}

// listConsumables godoc
// @Summary List party consumables
// @Description Lists party-kept wands with charges and potion/scroll pools.
// @Tags consumables
// @Produce  json
// @Success 200 {object} domain.ConsumableSummary
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /consumables [get]
func (h *consumableHandler) listConsumables(c *gin.Context) {
	summary, err := h.consumableService.ListConsumables(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list consumables")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// useConsumable godoc
// @Summary Use a consumable
// @Description Spends one wand charge or one potion/scroll unit and logs the use.
// @Tags consumables
// @Accept  json
// @Produce  json
// @Param   use body dto.UseConsumableRequest true "What to use"
// @Success 200 {object} domain.LootItem
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "No uses left"
// @Failure 409 {object} map[string]string "Concurrent change"
// @Security BearerAuth
// @Router /consumables/use [post]
func (h *consumableHandler) useConsumable(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.UseConsumableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	item, err := h.consumableService.UseConsumable(c.Request.Context(), req.ToDomain(), actor)
	if err != nil {
		respondError(c, err, "Failed to use consumable")
		return
	}
	c.JSON(http.StatusOK, item)
}

// setCharges godoc
// @Summary Set wand charges
// @Tags consumables
// @Accept  json
// @Produce  json
// @Param   id path int true "Loot item id"
// @Param   charges body dto.SetChargesRequest true "Charges (1-50)"
// @Success 200 {object} domain.LootItem
// @Failure 400 {object} map[string]string "Charges out of range"
// @Failure 404 {object} map[string]string "Item not found"
// @Security BearerAuth
// @Router /consumables/{id}/charges [put]
func (h *consumableHandler) setCharges(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.SetChargesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	item, err := h.consumableService.SetCharges(c.Request.Context(), id, req.Charges, actor)
	if err != nil {
		respondError(c, err, "Failed to set charges")
		return
	}
	c.JSON(http.StatusOK, item)
}

// useHistory godoc
// @Summary Consumable use history
// @Tags consumables
// @Produce  json
// @Param   limit query int false "Max records (default 50)"
// @Success 200 {array} domain.ConsumableUseRecord
// @Security BearerAuth
// @Router /consumables/history [get]
func (h *consumableHandler) useHistory(c *gin.Context) {
	var q dto.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}
	records, err := h.consumableService.UseHistory(c.Request.Context(), q.Limit)
	if err != nil {
		respondError(c, err, "Failed to list consumable history")
		return
	}
	c.JSON(http.StatusOK, records)
}
