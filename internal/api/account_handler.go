package api

import (
	"errors"
	"net/http"

	"github.com/backup-toolkit/internal/models"
	"github.com/backup-toolkit/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// AccountHandler handles account endpoints
type AccountHandler struct {
	accounts service.AccountService
	log      zerolog.Logger
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(accounts service.AccountService, log zerolog.Logger) *AccountHandler {
	return &AccountHandler{
		accounts: accounts,
		log:      log.With().Str("handler", "account").Logger(),
	}
}

// CreateAccount handles POST /api/v1/create-account
func (h *AccountHandler) CreateAccount(c *gin.Context) {
	var req models.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body."})
		return
	}

	account, err := h.accounts.CreateAccount(c.Request.Context(), &req)
	switch {
	case errors.Is(err, service.ErrMissingCredentials):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing email or password."})
		return
	case errors.Is(err, service.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"message": "Email already exists."})
		return
	case err != nil:
		h.log.Error().Err(err).Str("email", req.Email).Msg("Failed to create account")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error while creating user."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User created successfully.",
		"data":    account,
	})
}
