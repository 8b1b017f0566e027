package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fittrack/gym_backoffice/internal/apperrors"
	portssvc "github.com/fittrack/gym_backoffice/internal/core/ports/services"
	"github.com/fittrack/gym_backoffice/internal/dto"
	"github.com/fittrack/gym_backoffice/internal/middleware"
)

// ledgerHandler handles HTTP requests related to running accounts.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newLedgerHandler(ls portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerService: ls}
}

// RegisterLedgerRoutes registers routes related to running accounts.
func RegisterLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.openAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:accountID", h.getAccount)
		accounts.POST("/:accountID/movements", h.registerMovement)
		accounts.POST("/:accountID/close", h.closeAccount)
	}
	rg.GET("/members/:memberID/account", h.getAccountByMember)
}

// openAccount godoc
// @Summary Open a running account
// @Description Opens a cuenta corriente for a member. A member can have at most one, ever.
// @Tags accounts
// @Accept json
// @Produce json
// @Param account body dto.OpenAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Member not found"
// @Failure 409 {object} map[string]string "Member already has an account"
// @Security BearerAuth
// @Router /accounts [post]
func (h *ledgerHandler) openAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.OpenAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for openAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	account, err := h.ledgerService.OpenAccount(c.Request.Context(), req)
	if err != nil {
		respondLedgerError(c, err, "Failed to open account")
		return
	}

	logger.Info("Account opened", slog.String("account_id", account.AccountID))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// listAccounts godoc
// @Summary List running accounts
// @Description Lists all running accounts ordered by member name, each with its most recent movements.
// @Tags accounts
// @Produce json
// @Success 200 {array} dto.AccountResponse
// @Security BearerAuth
// @Router /accounts [get]
func (h *ledgerHandler) listAccounts(c *gin.Context) {
	accounts, err := h.ledgerService.ListAccounts(c.Request.Context())
	if err != nil {
		respondLedgerError(c, err, "Failed to list accounts")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponseSlice(accounts))
}

// getAccount godoc
// @Summary Get a running account
// @Description Retrieves an account with its full movement history, newest first.
// @Tags accounts
// @Produce json
// @Param accountID path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /accounts/{accountID} [get]
func (h *ledgerHandler) getAccount(c *gin.Context) {
	account, err := h.ledgerService.GetAccountByID(c.Request.Context(), c.Param("accountID"))
	if err != nil {
		respondLedgerError(c, err, "Failed to retrieve account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// getAccountByMember godoc
// @Summary Get a member's running account
// @Produce json
// @Param memberID path string true "Member ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} map[string]string "No account for member"
// @Security BearerAuth
// @Router /members/{memberID}/account [get]
func (h *ledgerHandler) getAccountByMember(c *gin.Context) {
	account, err := h.ledgerService.GetAccountByMember(c.Request.Context(), c.Param("memberID"))
	if err != nil {
		respondLedgerError(c, err, "Failed to retrieve account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// registerMovement godoc
// @Summary Register a movement
// @Description Applies a DEUDA/CREDITO/PAGO/AJUSTE movement and updates balances atomically.
// @Tags accounts
// @Accept json
// @Produce json
// @Param accountID path string true "Account ID"
// @Param movement body dto.RegisterMovementRequest true "Movement details"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid amount or description"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 409 {object} map[string]string "Account not active"
// @Security BearerAuth
// @Router /accounts/{accountID}/movements [post]
func (h *ledgerHandler) registerMovement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RegisterMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for registerMovement", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	account, err := h.ledgerService.ApplyMovement(c.Request.Context(), c.Param("accountID"), req)
	if err != nil {
		respondLedgerError(c, err, "Failed to register movement")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// closeAccount godoc
// @Summary Close a running account
// @Description Closes a settled account. Only accounts with both balances at zero can close.
// @Tags accounts
// @Produce json
// @Param accountID path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 409 {object} map[string]string "Balances not zero"
// @Security BearerAuth
// @Router /accounts/{accountID}/close [post]
func (h *ledgerHandler) closeAccount(c *gin.Context) {
	account, err := h.ledgerService.CloseAccount(c.Request.Context(), c.Param("accountID"))
	if err != nil {
		respondLedgerError(c, err, "Failed to close account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// respondLedgerError maps service errors onto HTTP responses. Storage
// failures stay generic; the cause was already logged server-side.
func respondLedgerError(c *gin.Context, err error, genericMsg string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate), errors.Is(err, apperrors.ErrConflict):
		logger.Warn("Conflict", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error(genericMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": genericMsg})
	}
}
