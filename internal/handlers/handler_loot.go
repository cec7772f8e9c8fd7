package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/loot_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/loot_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/loot_ledger_app/internal/dto"
	"github.com/SscSPs/loot_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// lootHandler handles HTTP requests related to loot items.
type lootHandler struct {
	lootService portssvc.LootSvcFacade
}

func newLootHandler(ls portssvc.LootSvcFacade) *lootHandler {
	return &lootHandler{lootService: ls}
}

// registerLootRoutes registers routes related to loot.
func registerLootRoutes(rg *gin.RouterGroup, lootService portssvc.LootSvcFacade) {
	h := newLootHandler(lootService)

	loot := rg.Group("/loot")
	{
		loot.POST("", h.createLoot)
		loot.GET("", h.listLoot)
		loot.GET("/:id", h.getLoot)
		loot.POST("/transition", h.transitionLoot)
		loot.POST("/:id/split", h.splitLoot)
	}
}

// createLoot godoc
// @Summary Record new loot
// @Description Records items found in a session. New items start as Unprocessed.
// @Tags loot
// @Accept  json
// @Produce  json
// @Param   loot body dto.CreateLootRequest true "Items found"
// @Success 201 {array} domain.LootItem
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to record loot"
// @Security BearerAuth
// @Router /loot [post]
func (h *lootHandler) createLoot(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.CreateLootRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	items, err := h.lootService.CreateLoot(c.Request.Context(), req.ToDomain(), actor)
	if err != nil {
		respondError(c, err, "Failed to record loot")
		return
	}
	c.JSON(http.StatusCreated, items)
}

// listLoot godoc
// @Summary List loot
// @Description Lists loot, optionally filtered by status and holder, flat or grouped into stacks.
// @Tags loot
// @Produce  json
// @Param   status query []string false "Statuses to include" collectionFormat(multi)
// @Param   whoHas query int false "Holding character id"
// @Param   grouped query bool false "Group into stacks"
// @Success 200 {object} dto.ListLootResponse
// @Failure 400 {object} map[string]string "Invalid query"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list loot"
// @Security BearerAuth
// @Router /loot [get]
func (h *lootHandler) listLoot(c *gin.Context) {
	var q dto.ListLootQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}
	filter := domain.LootFilter{WhoHas: q.WhoHas}
	for _, s := range q.Status {
		status, err := domain.ParseLootStatus(s)
		if err != nil {
			respondError(c, err, "Invalid status filter")
			return
		}
		filter.Statuses = append(filter.Statuses, status)
	}

	items, err := h.lootService.ListLoot(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err, "Failed to list loot")
		return
	}
	if q.Grouped {
		c.JSON(http.StatusOK, dto.ListLootResponse{Stacks: domain.GroupStacks(items)})
		return
	}
	c.JSON(http.StatusOK, dto.ListLootResponse{Items: items})
}

// getLoot godoc
// @Summary Get a loot item
// @Tags loot
// @Produce  json
// @Param   id path int true "Loot item id"
// @Success 200 {object} domain.LootItem
// @Failure 400 {object} map[string]string "Invalid id"
// @Failure 404 {object} map[string]string "Loot item not found"
// @Security BearerAuth
// @Router /loot/{id} [get]
func (h *lootHandler) getLoot(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	item, err := h.lootService.GetLoot(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to retrieve loot item")
		return
	}
	c.JSON(http.StatusOK, item)
}

// transitionLoot godoc
// @Summary Change loot status
// @Description Moves every listed item to the target status, or none of them.
// @Tags loot
// @Accept  json
// @Produce  json
// @Param   transition body dto.TransitionLootRequest true "Items and target status"
// @Success 200 {array} domain.LootItem
// @Failure 400 {object} map[string]string "Transition not allowed or invalid input"
// @Failure 403 {object} map[string]string "Override requires the DM"
// @Failure 404 {object} map[string]string "Loot item not found"
// @Failure 409 {object} map[string]string "Concurrent change"
// @Security BearerAuth
// @Router /loot/transition [post]
func (h *lootHandler) transitionLoot(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.TransitionLootRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	status, err := domain.ParseLootStatus(req.Status)
	if err != nil {
		respondError(c, err, "Invalid target status")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Received request to transition loot",
		slog.Int("count", len(req.ItemIDs)), slog.String("status", req.Status))

	items, err := h.lootService.Transition(c.Request.Context(), domain.TransitionRequest{
		ItemIDs:  req.ItemIDs,
		Status:   status,
		WhoHas:   req.WhoHas,
		Override: req.Override,
	}, actor)
	if err != nil {
		respondError(c, err, "Failed to transition loot")
		return
	}
	c.JSON(http.StatusOK, items)
}

// splitLoot godoc
// @Summary Split a loot stack
// @Description Partitions an item's quantity into several records. The source item is returned first.
// @Tags loot
// @Accept  json
// @Produce  json
// @Param   id path int true "Loot item id"
// @Param   split body dto.SplitLootRequest true "Quantities summing to the item's quantity"
// @Success 200 {array} domain.LootItem
// @Failure 400 {object} map[string]string "Invalid partition"
// @Failure 404 {object} map[string]string "Loot item not found"
// @Security BearerAuth
// @Router /loot/{id}/split [post]
func (h *lootHandler) splitLoot(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.SplitLootRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	items, err := h.lootService.Split(c.Request.Context(), id, req.Quantities, actor)
	if err != nil {
		respondError(c, err, "Failed to split loot")
		return
	}
	c.JSON(http.StatusOK, items)
}
