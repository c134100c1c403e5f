package httpserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"shipmart-be/internal/draft"
)

func orderIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("orderID"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return 0, false
	}
	return id, true
}

func itemIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("itemID"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return 0, false
	}
	return id, true
}

func openCorrection(m *Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, ok := orderIDParam(c)
		if !ok {
			return
		}

		session, err := m.Open(c.Request.Context(), orderID)
		if err != nil {
			writeError(c, err)
			return
		}

		c.JSON(http.StatusCreated, toViewResponse(session))
	}
}

func getCorrection(m *Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, ok := orderIDParam(c)
		if !ok {
			return
		}

		session, ok := m.Get(orderID)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "no open correction session"})
			return
		}

		c.JSON(http.StatusOK, toViewResponse(session))
	}
}

type editItemRequest struct {
	Color      *string `json:"color"`
	Size       *string `json:"size"`
	Quantity   *int    `json:"quantity"`
	FinalPrice *string `json:"finalPrice"`
}

func (r editItemRequest) toPatch() (draft.ItemPatch, error) {
	patch := draft.ItemPatch{
		Color:    r.Color,
		Size:     r.Size,
		Quantity: r.Quantity,
	}
	if r.FinalPrice != nil {
		price, err := decimal.NewFromString(*r.FinalPrice)
		if err != nil {
			return draft.ItemPatch{}, err
		}
		patch.FinalPrice = &price
	}
	return patch, nil
}

func editItem(m *Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, ok := orderIDParam(c)
		if !ok {
			return
		}
		itemID, ok := itemIDParam(c)
		if !ok {
			return
		}

		session, ok := m.Get(orderID)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "no open correction session"})
			return
		}

		var req editItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		patch, err := req.toPatch()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid final price"})
			return
		}

		if err := session.EditField(c.Request.Context(), itemID, patch); err != nil {
			writeError(c, err)
			return
		}

		c.JSON(http.StatusOK, toViewResponse(session))
	}
}

func removeItem(m *Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, ok := orderIDParam(c)
		if !ok {
			return
		}
		itemID, ok := itemIDParam(c)
		if !ok {
			return
		}

		session, ok := m.Get(orderID)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "no open correction session"})
			return
		}

		confirmed := c.Query("confirm") == "true"
		if err := session.RemoveItem(c.Request.Context(), itemID, confirmed); err != nil {
			writeError(c, err)
			return
		}

		c.JSON(http.StatusOK, toViewResponse(session))
	}
}

func confirmCorrection(m *Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, ok := orderIDParam(c)
		if !ok {
			return
		}

		session, ok := m.Get(orderID)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "no open correction session"})
			return
		}

		out, err := session.Confirm(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}

		// Terminal either way; the session has done its job.
		m.Drop(orderID)

		c.JSON(http.StatusOK, toConfirmResponse(out))
	}
}

type leaveRequest struct {
	ViaBack   bool `json:"viaBack"`
	Confirmed bool `json:"confirmed"`
}

func leaveCorrection(m *Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, ok := orderIDParam(c)
		if !ok {
			return
		}

		var req leaveRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		left, err := m.Leave(c.Request.Context(), orderID, req.ViaBack, req.Confirmed)
		if err != nil {
			writeError(c, err)
			return
		}

		if !left {
			// Unconfirmed changes exist and the discard wasn't confirmed;
			// the client stays on the page and may prompt.
			c.JSON(http.StatusConflict, gin.H{"left": false, "requiresConfirmation": true})
			return
		}

		c.JSON(http.StatusOK, gin.H{"left": true})
	}
}
