package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/loot_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/loot_ledger_app/internal/dto"
	"github.com/gin-gonic/gin"
)

type identifyHandler struct {
	identificationService portssvc.IdentificationSvcFacade
}

func newIdentifyHandler(is portssvc.IdentificationSvcFacade) *identifyHandler {
	return &identifyHandler{identificationService: is}
}

func registerIdentifyRoutes(rg *gin.RouterGroup, identificationService portssvc.IdentificationSvcFacade) {
	h := newIdentifyHandler(identificationService)

	identify := rg.Group("/identify")
	{
		identify.POST("/batch", h.identifyBatch)
		identify.POST("/:id", h.identify)
	}
}

// identify godoc
// @Summary Identify an item
// @Description Resolves a spellcraft roll. A character may try each item once per game day; the DM always succeeds.
// @Tags identify
// @Accept  json
// @Produce  json
// @Param   id path int true "Loot item id"
// @Param   roll body dto.IdentifyRequest true "Roll"
// @Success 200 {object} domain.IdentifyResult
// @Failure 400 {object} map[string]string "Already attempted today or already identified"
// @Failure 404 {object} map[string]string "Loot item not found"
// @Security BearerAuth
// @Router /identify/{id} [post]
func (h *identifyHandler) identify(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.IdentifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.identificationService.Identify(c.Request.Context(), id, req.Roll, actor)
	if err != nil {
		respondError(c, err, "Failed to identify item")
		return
	}
	c.JSON(http.StatusOK, result)
}

// identifyBatch godoc
// @Summary Identify several items
// @Description Resolves several rolls in one transaction. Items already attempted today are reported, not failed.
// @Tags identify
// @Accept  json
// @Produce  json
// @Param   attempts body dto.IdentifyBatchRequest true "Rolls"
// @Success 200 {array} domain.IdentifyResult
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Loot item not found"
// @Security BearerAuth
// @Router /identify/batch [post]
func (h *identifyHandler) identifyBatch(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.IdentifyBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	results, err := h.identificationService.IdentifyMany(c.Request.Context(), req.ToDomain(), actor)
	if err != nil {
		respondError(c, err, "Failed to identify items")
		return
	}
	c.JSON(http.StatusOK, results)
}
