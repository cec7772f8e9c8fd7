package handlers

import (
	"net/http"
	"time"

	"github.com/SscSPs/loot_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/loot_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/loot_ledger_app/internal/dto"
	"github.com/SscSPs/loot_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

const dayLayout = "2006-01-02"

// ledgerHandler serves the party's currency ledger and distributions.
type ledgerHandler struct {
	ledgerService       portssvc.LedgerSvcFacade
	distributionService portssvc.DistributionSvcFacade
}

func newLedgerHandler(ls portssvc.LedgerSvcFacade, ds portssvc.DistributionSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerService: ls, distributionService: ds}
}

func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade, distributionService portssvc.DistributionSvcFacade) {
	h := newLedgerHandler(ledgerService, distributionService)

	gold := rg.Group("/gold")
	{
		gold.GET("/entries", h.listEntries)
		gold.POST("/entries", h.recordEntry)
		gold.GET("/totals", h.totals)
		gold.POST("/balance", h.balance)

		distribute := gold.Group("/distribute")
		distribute.POST("/all", h.distributeAll)
		distribute.POST("/plus-party-loot", h.distributePlusPartyLoot)
		distribute.POST("/define-party-loot", middleware.RequireDM(), h.definePartyLoot)
		distribute.POST("/define-character", middleware.RequireDM(), h.defineCharacter)
	}
}

// listEntries godoc
// @Summary List ledger entries
// @Description Lists entries newest first, filtered by inclusive session-date range, with token pagination.
// @Tags gold
// @Produce  json
// @Param   from query string false "First session day (YYYY-MM-DD)"
// @Param   to query string false "Last session day (YYYY-MM-DD)"
// @Param   limit query int false "Page size (default 50)"
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListLedgerResponse
// @Failure 400 {object} map[string]string "Invalid query"
// @Security BearerAuth
// @Router /gold/entries [get]
func (h *ledgerHandler) listEntries(c *gin.Context) {
	var q dto.ListLedgerQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}
	filter := domain.LedgerFilter{Limit: q.Limit}
	if q.From != "" {
		from, _ := time.Parse(dayLayout, q.From)
		filter.From = &from
	}
	if q.To != "" {
		to, _ := time.Parse(dayLayout, q.To)
		filter.To = &to
	}
	if q.NextToken != "" {
		filter.NextToken = &q.NextToken
	}

	entries, next, err := h.ledgerService.ListEntries(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err, "Failed to list ledger entries")
		return
	}
	c.JSON(http.StatusOK, dto.ListLedgerResponse{Entries: entries, NextToken: next})
}

// recordEntry godoc
// @Summary Record a ledger entry
// @Description Appends a deposit, withdrawal, purchase, sale or party-loot purchase. The sign follows the type.
// @Tags gold
// @Accept  json
// @Produce  json
// @Param   entry body dto.CreateLedgerEntryRequest true "Entry"
// @Success 201 {object} domain.LedgerEntry
// @Failure 400 {object} map[string]string "Invalid entry"
// @Security BearerAuth
// @Router /gold/entries [post]
func (h *ledgerHandler) recordEntry(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.CreateLedgerEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	txType, err := domain.ParseTransactionType(req.TransactionType)
	if err != nil {
		respondError(c, err, "Invalid transaction type")
		return
	}

	entry, err := h.ledgerService.RecordEntry(c.Request.Context(), req.ToDomain(txType), actor)
	if err != nil {
		respondError(c, err, "Failed to record ledger entry")
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// totals godoc
// @Summary Ledger totals
// @Tags gold
// @Produce  json
// @Success 200 {object} domain.Coins
// @Security BearerAuth
// @Router /gold/totals [get]
func (h *ledgerHandler) totals(c *gin.Context) {
	totals, err := h.ledgerService.Totals(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to compute ledger totals")
		return
	}
	c.JSON(http.StatusOK, totals)
}

// balance godoc
// @Summary Balance loose change
// @Description Replaces every entry holding silver or copper with one normalised Balance entry.
// @Tags gold
// @Produce  json
// @Success 200 {object} dto.BalanceResponse
// @Failure 409 {object} map[string]string "Concurrent change"
// @Security BearerAuth
// @Router /gold/balance [post]
func (h *ledgerHandler) balance(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	entry, err := h.ledgerService.Balance(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err, "Failed to balance ledger")
		return
	}
	c.JSON(http.StatusOK, dto.BalanceResponse{Balanced: entry != nil, Entry: entry})
}

// distributeAll godoc
// @Summary Distribute all funds equally
// @Tags gold
// @Produce  json
// @Success 200 {object} domain.DistributionResult
// @Failure 400 {object} map[string]string "Nothing to distribute or no active characters"
// @Security BearerAuth
// @Router /gold/distribute/all [post]
func (h *ledgerHandler) distributeAll(c *gin.Context) {
	h.respondDistribution(c, func(actor domain.Actor) (*domain.DistributionResult, error) {
		return h.distributionService.DistributeAll(c.Request.Context(), actor)
	})
}

// distributePlusPartyLoot godoc
// @Summary Distribute with a party share
// @Description Splits funds among active characters plus one share kept as party loot.
// @Tags gold
// @Produce  json
// @Success 200 {object} domain.DistributionResult
// @Failure 400 {object} map[string]string "Nothing to distribute or no active characters"
// @Security BearerAuth
// @Router /gold/distribute/plus-party-loot [post]
func (h *ledgerHandler) distributePlusPartyLoot(c *gin.Context) {
	h.respondDistribution(c, func(actor domain.Actor) (*domain.DistributionResult, error) {
		return h.distributionService.DistributePlusPartyLoot(c.Request.Context(), actor)
	})
}

// definePartyLoot godoc
// @Summary Distribute after reserving party loot
// @Description DM reserves a gold amount for the party and splits the rest.
// @Tags gold
// @Accept  json
// @Produce  json
// @Param   amount body dto.DistributeAmountRequest true "Gold reserved for the party"
// @Success 200 {object} domain.DistributionResult
// @Failure 400 {object} map[string]string "Amount exceeds total gold"
// @Failure 403 {object} map[string]string "DM role required"
// @Security BearerAuth
// @Router /gold/distribute/define-party-loot [post]
func (h *ledgerHandler) definePartyLoot(c *gin.Context) {
	var req dto.DistributeAmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	h.respondDistribution(c, func(actor domain.Actor) (*domain.DistributionResult, error) {
		return h.distributionService.DefinePartyLootDistribute(c.Request.Context(), req.Amount, actor)
	})
}

// defineCharacter godoc
// @Summary Distribute a fixed amount per character
// @Tags gold
// @Accept  json
// @Produce  json
// @Param   amount body dto.DistributeAmountRequest true "Gold per character"
// @Success 200 {object} domain.DistributionResult
// @Failure 400 {object} map[string]string "Amount exceeds total gold"
// @Failure 403 {object} map[string]string "DM role required"
// @Security BearerAuth
// @Router /gold/distribute/define-character [post]
func (h *ledgerHandler) defineCharacter(c *gin.Context) {
	var req dto.DistributeAmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	h.respondDistribution(c, func(actor domain.Actor) (*domain.DistributionResult, error) {
		return h.distributionService.DefineCharacterDistribute(c.Request.Context(), req.Amount, actor)
	})
}

func (h *ledgerHandler) respondDistribution(c *gin.Context, distribute func(actor domain.Actor) (*domain.DistributionResult, error)) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	result, err := distribute(actor)
	if err != nil {
		respondError(c, err, "Failed to distribute funds")
		return
	}
	c.JSON(http.StatusOK, result)
}
