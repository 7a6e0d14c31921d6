package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/card_inventory_app/internal/core/ports/services"
	"github.com/SscSPs/card_inventory_app/internal/dto"
	"github.com/SscSPs/card_inventory_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// cardHandler handles HTTP requests related to inventory cards.
type cardHandler struct {
	ledger portssvc.LedgerSvcFacade
	cache  *SnapshotCache
}

// RegisterCardRoutes registers routes related to cards and the snapshot.
func RegisterCardRoutes(rg *gin.RouterGroup, ledger portssvc.LedgerSvcFacade, cache *SnapshotCache) {
	h := &cardHandler{ledger: ledger, cache: cache}

	cards := rg.Group("/cards")
	{
		cards.GET("", h.listCards)
		cards.GET("/next-lot", h.nextLot)
		cards.GET("/:position", h.getCard)
		cards.POST("", h.createCard)
		cards.PATCH("/:position", h.updateCard)
		cards.PUT("/:position/sale", h.recordSale)
	}
	rg.POST("/snapshot/refresh", h.refresh)
}

// listCards godoc
// @Summary List all cards
// @Description Returns every card with its selection label, plus the next free lot number
// @Tags cards
// @Produce  json
// @Success 200 {object} dto.ListCardsResponse
// @Failure 503 {object} map[string]string "Record store unavailable"
// @Security BearerAuth
// @Router /cards [get]
func (h *cardHandler) listCards(c *gin.Context) {
	snapshot, err := h.cache.Get(c.Request.Context(), false)
	if err != nil {
		respondError(c, "list cards", err)
		return
	}

	selections := h.ledger.Selections(snapshot)
	records := snapshot.Records()
	cards := make([]dto.CardResponse, len(records))
	for i, rec := range records {
		cards[i] = dto.ToCardResponse(rec, selections[i].Label)
	}

	c.JSON(http.StatusOK, dto.ListCardsResponse{
		Cards:         cards,
		Selections:    selections,
		NextLotNumber: h.ledger.NextLotNumber(snapshot),
		LoadedAt:      snapshot.LoadedAt(),
	})
}

// nextLot godoc
// @Summary Suggest the next lot number
// @Tags cards
// @Produce  json
// @Success 200 {object} dto.NextLotResponse
// @Failure 503 {object} map[string]string "Record store unavailable"
// @Security BearerAuth
// @Router /cards/next-lot [get]
func (h *cardHandler) nextLot(c *gin.Context) {
	snapshot, err := h.cache.Get(c.Request.Context(), false)
	if err != nil {
		respondError(c, "next lot", err)
		return
	}
	c.JSON(http.StatusOK, dto.NextLotResponse{NextLotNumber: h.ledger.NextLotNumber(snapshot)})
}

// getCard godoc
// @Summary Get a card by position
// @Description Retrieves the card at a store row, e.g. to pre-fill a sale form
// @Tags cards
// @Produce  json
// @Param   position path int true "Row number of the card"
// @Success 200 {object} dto.CardResponse
// @Failure 400 {object} map[string]string "Invalid position"
// @Failure 404 {object} map[string]string "No card at position"
// @Security BearerAuth
// @Router /cards/{position} [get]
func (h *cardHandler) getCard(c *gin.Context) {
	pos, ok := positionParam(c)
	if !ok {
		return
	}

	snapshot, err := h.cache.Get(c.Request.Context(), false)
	if err != nil {
		respondError(c, "get card", err)
		return
	}
	rec, err := h.ledger.RecordAt(snapshot, pos)
	if err != nil {
		respondError(c, "get card", err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCardResponse(rec, h.ledger.BuildDisplayLabel(rec, pos)))
}

// createCard godoc
// @Summary Add a card
// @Description Appends a new card. Omitted lot number and purchase date default to the next lot and today.
// @Tags cards
// @Accept  json
// @Produce  json
// @Param   card body dto.CreateCardRequest true "Card details"
// @Success 201 {object} dto.CreateCardResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 422 {object} map[string]string "Store header is missing a field"
// @Failure 502 {object} map[string]string "Write failed or store locked"
// @Security BearerAuth
// @Router /cards [post]
func (h *cardHandler) createCard(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateCard", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	nextLot := 0
	if req.LotNumber == nil {
		snapshot, err := h.cache.Get(c.Request.Context(), true)
		if err != nil {
			respondError(c, "add card", err)
			return
		}
		nextLot = h.ledger.NextLotNumber(snapshot)
	}

	in, err := req.ToCardInput(nextLot)
	if err != nil {
		respondError(c, "add card", err)
		return
	}

	pos, err := h.ledger.AddRecord(c.Request.Context(), in)
	if err != nil {
		respondError(c, "add card", err)
		return
	}
	h.cache.Invalidate()

	c.JSON(http.StatusCreated, dto.CreateCardResponse{Position: int(pos), LotNumber: in.LotNumber})
}

// updateCard godoc
// @Summary Update card fields
// @Description Writes a partial update keyed by header field name. Unknown field names fail the whole update.
// @Tags cards
// @Accept  json
// @Produce  json
// @Param   position path int true "Row number of the card"
// @Param   update body dto.UpdateCardRequest true "Field updates"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 422 {object} map[string]string "Unknown field name"
// @Failure 502 {object} map[string]string "Write failed or store locked"
// @Security BearerAuth
// @Router /cards/{position} [patch]
func (h *cardHandler) updateCard(c *gin.Context) {
	pos, ok := positionParam(c)
	if !ok {
		return
	}

	var req dto.UpdateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind JSON for UpdateCard", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	if err := h.ledger.UpdateRecord(c.Request.Context(), pos, req.Fields); err != nil {
		respondError(c, "update card", err)
		return
	}
	h.cache.Invalidate()
	c.Status(http.StatusNoContent)
}

// recordSale godoc
// @Summary Record a sale
// @Description Writes the sold date, sold price and takeaway of a card
// @Tags cards
// @Accept  json
// @Produce  json
// @Param   position path int true "Row number of the card"
// @Param   sale body dto.RecordSaleRequest true "Sale details"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 422 {object} map[string]string "Store header lacks sale columns"
// @Failure 502 {object} map[string]string "Write failed or store locked"
// @Security BearerAuth
// @Router /cards/{position}/sale [put]
func (h *cardHandler) recordSale(c *gin.Context) {
	pos, ok := positionParam(c)
	if !ok {
		return
	}

	var req dto.RecordSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind JSON for RecordSale", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	sale, err := req.ToSaleInput()
	if err != nil {
		respondError(c, "record sale", err)
		return
	}
	if err := h.ledger.RecordSale(c.Request.Context(), pos, sale); err != nil {
		respondError(c, "record sale", err)
		return
	}
	h.cache.Invalidate()
	c.Status(http.StatusNoContent)
}

// refresh godoc
// @Summary Reload the inventory
// @Description Discards the cached snapshot and reads the store again
// @Tags cards
// @Produce  json
// @Success 200 {object} dto.ListCardsResponse
// @Failure 503 {object} map[string]string "Record store unavailable"
// @Security BearerAuth
// @Router /snapshot/refresh [post]
func (h *cardHandler) refresh(c *gin.Context) {
	h.cache.Invalidate()
	h.listCards(c)
}
