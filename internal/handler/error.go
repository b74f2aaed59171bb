package handler

import (
	"errors"
	"net/http"

	"github.com/shlankd/developEcommerce/internal/middleware"
	repo "github.com/shlankd/developEcommerce/internal/repository"
	"github.com/shlankd/developEcommerce/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// usecaseの条件をHTTPステータスへ変換する。
func writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, usecase.ErrProductNotFound),
		errors.Is(err, usecase.ErrCartItemNotFound),
		errors.Is(err, usecase.ErrAddressNotFound),
		errors.Is(err, usecase.ErrOrderNotFound),
		errors.Is(err, repo.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})

	case errors.Is(err, usecase.ErrUserNotMatched),
		errors.Is(err, usecase.ErrAddressNotMatchToUser):
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})

	case errors.Is(err, usecase.ErrProductOutOfStock),
		errors.Is(err, usecase.ErrQuantityNotAvailable),
		errors.Is(err, usecase.ErrProductNameTaken),
		errors.Is(err, usecase.ErrEmailTaken):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})

	case errors.Is(err, usecase.ErrCartItemIDMismatch),
		errors.Is(err, usecase.ErrEmptyCartCheckout),
		errors.Is(err, usecase.ErrValidation):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})

	case errors.Is(err, usecase.ErrUnauthorized):
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})

	default:
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}

func getUserIDFromContext(c echo.Context) (int64, bool) {
	v, ok := c.Get(middleware.CtxUserIDKey).(int64)
	if !ok || v <= 0 {
		return 0, false
	}
	return v, true
}
