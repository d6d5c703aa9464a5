package shop

import (
	"errors"
	"net/http"

	"github.com/noah-isme/toko-sim/internal/cart"
	"github.com/noah-isme/toko-sim/internal/catalog"
	"github.com/noah-isme/toko-sim/internal/common"
	"github.com/noah-isme/toko-sim/internal/pricing"
)

var (
	// ErrSessionNotFound is returned for an unknown or closed session id.
	ErrSessionNotFound = errors.New("session not found")
	// ErrProductReserved is returned when a catalog change would orphan a
	// product held in an open shopping list.
	ErrProductReserved = errors.New("product is reserved in an open session")
	// ErrUnknownField is returned when an edit names an attribute that does not exist.
	ErrUnknownField = errors.New("unknown product field")
)

type errorKind struct {
	target error
	code   string
	status int
}

var errorKinds = []errorKind{
	{ErrSessionNotFound, "SESSION_NOT_FOUND", http.StatusNotFound},
	{ErrProductReserved, "PRODUCT_RESERVED", http.StatusConflict},
	{ErrUnknownField, "UNKNOWN_FIELD", http.StatusUnprocessableEntity},
	{catalog.ErrNameRejected, "NAME_REJECTED", http.StatusUnprocessableEntity},
	{catalog.ErrGroupNotFound, "GROUP_NOT_FOUND", http.StatusNotFound},
	{catalog.ErrGroupExists, "GROUP_EXISTS", http.StatusConflict},
	{catalog.ErrProductNotFound, "PRODUCT_NOT_FOUND", http.StatusNotFound},
	{catalog.ErrProductExists, "PRODUCT_EXISTS", http.StatusConflict},
	{catalog.ErrNotANumber, "NOT_A_NUMBER", http.StatusUnprocessableEntity},
	{catalog.ErrDiscountOutOfRange, "DISCOUNT_OUT_OF_RANGE", http.StatusUnprocessableEntity},
	{cart.ErrInsufficientStock, "INSUFFICIENT_STOCK", http.StatusConflict},
	{cart.ErrExceedsReserved, "EXCEEDS_RESERVED", http.StatusConflict},
	{cart.ErrInvalidQuantity, "INVALID_QUANTITY", http.StatusUnprocessableEntity},
	{pricing.ErrAmountOverflow, "AMOUNT_OVERFLOW", http.StatusUnprocessableEntity},
}

// ClassifyError maps a domain error to the AppError rendered by the API.
// Unrecognised errors become INTERNAL with a generic message.
func ClassifyError(err error) *common.AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := common.AsAppError(err); ok {
		return appErr
	}
	for _, kind := range errorKinds {
		if errors.Is(err, kind.target) {
			return common.NewAppError(kind.code, err.Error(), kind.status, err)
		}
	}
	return common.NewAppError("INTERNAL", "internal error, please contact the administrator", http.StatusInternalServerError, err)
}
