package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"pos-api/services"
)

type CashSessionController struct {
	sessions *services.CashSessionService
}

func NewCashSessionController(sessions *services.CashSessionService) *CashSessionController {
	return &CashSessionController{sessions: sessions}
}

func (ctl *CashSessionController) OpenCashSession(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)

	var input struct {
		OpeningCashCents int64 `json:"opening_cash_cents" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := ctl.sessions.Open(c.Request.Context(), userID, input.OpeningCashCents)
	if err != nil {
		if errors.Is(err, services.ErrCashSessionOpen) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, session)
}

func (ctl *CashSessionController) GetCurrentCashSession(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)

	session, err := ctl.sessions.Current(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, session)
}

func (ctl *CashSessionController) CloseCashSession(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)

	var input struct {
		ClosingCashCents int64 `json:"closing_cash_cents" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := ctl.sessions.Close(c.Request.Context(), userID, input.ClosingCashCents)
	if err != nil {
		if errors.Is(err, services.ErrNoCashSession) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, session)
}
