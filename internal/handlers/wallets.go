package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"example.com/smartsave-campus/backend/internal/repository"
)

type WalletHandler struct {
	Wallets repository.WalletStore
}

// NewWalletHandler создает обработчик кошельков.
func NewWalletHandler(wallets repository.WalletStore) *WalletHandler {
	return &WalletHandler{Wallets: wallets}
}

// Get возвращает баланс и накопления пользователя.
func (h *WalletHandler) Get(c echo.Context) error {
	wallet, err := h.Wallets.GetWallet(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, wallet)
}
