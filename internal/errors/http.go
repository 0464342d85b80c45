package errors

import "net/http"

// HTTPStatus maps a domain error to a transport status and stable error code.
// Unknown errors fall through to 500 INTERNAL_ERROR.
func HTTPStatus(err error) (int, string) {
	switch err.(type) {
	case *ValidationError:
		return http.StatusBadRequest, "VALIDATION_ERROR"
	case *InvalidAmountError:
		return http.StatusBadRequest, "INVALID_AMOUNT"
	case *ForbiddenError:
		return http.StatusForbidden, "FORBIDDEN"
	case *NotFoundError:
		return http.StatusNotFound, "NOT_FOUND"
	case *InsufficientStockError:
		return http.StatusConflict, "INSUFFICIENT_STOCK"
	case *InvalidTransitionError:
		return http.StatusConflict, "INVALID_TRANSITION"
	case *ConflictError:
		return http.StatusConflict, "CONFLICT"
	case *DeadlockError:
		return http.StatusServiceUnavailable, "BUSY"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}
