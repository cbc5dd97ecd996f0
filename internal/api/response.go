package api

import (
	"net/http"

	"stockmentor/pkg/stockmentor"
)

// writeCoreError translates a business error into the right HTTP status.
// Unclassified errors become a 500.
func writeCoreError(w http.ResponseWriter, err error) {
	writeError(w, mapErrorCodeToHTTPStatus(stockmentor.CodeOf(err)), err.Error())
}

// writeSymbolError reports a failure scoped to one ticker symbol. The body
// names the symbol and carries the underlying cause alongside a stable
// summary so clients can render per-symbol failures.
func writeSymbolError(w http.ResponseWriter, symbol, summary string, err error) {
	writeJSON(w, mapErrorCodeToHTTPStatus(stockmentor.CodeOf(err)), map[string]string{
		"error":   summary,
		"symbol":  symbol,
		"message": err.Error(),
	})
}

// mapErrorCodeToHTTPStatus maps business error codes to HTTP status codes.
func mapErrorCodeToHTTPStatus(code stockmentor.ErrorCode) int {
	switch code {
	case stockmentor.ErrCodeInvalidInput:
		return http.StatusBadRequest
	case stockmentor.ErrCodeNotFound:
		return http.StatusNotFound
	case stockmentor.ErrCodeDuplicate:
		return http.StatusConflict
	case stockmentor.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
