package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-ledger-sync/internal/app"
	"github.com/MKhiriev/go-ledger-sync/internal/logger"
	"github.com/MKhiriev/go-ledger-sync/internal/service"
	"github.com/MKhiriev/go-ledger-sync/internal/store"
	"github.com/MKhiriev/go-ledger-sync/internal/utils"
	"github.com/MKhiriev/go-ledger-sync/internal/validators"
)

type errorResponse struct {
	status  int
	message string
}

// errorResponses is checked in order, so wrapped errors match their most
// specific entry first.
var errorResponses = []struct {
	err error
	errorResponse
}{
	{ErrInvalidSince, errorResponse{http.StatusBadRequest, app.MsgInvalidSince}},
	{ErrAddressMismatch, errorResponse{http.StatusBadRequest, app.MsgRecordAddressMismatch}},
	{service.ErrUnknownTable, errorResponse{http.StatusBadRequest, app.MsgUnknownTable}},
	{validators.ErrInvalidTable, errorResponse{http.StatusBadRequest, app.MsgUnknownTable}},
	{service.ErrInvalidDataProvided, errorResponse{http.StatusBadRequest, app.MsgInvalidDataProvided}},
	{validators.ErrInvalidLocalID, errorResponse{http.StatusBadRequest, app.MsgInvalidDataProvided}},
	{validators.ErrMissingUpdatedAt, errorResponse{http.StatusBadRequest, app.MsgInvalidDataProvided}},
	{validators.ErrUpdatedInFuture, errorResponse{http.StatusBadRequest, app.MsgInvalidDataProvided}},
	{validators.ErrInvalidDeletedAt, errorResponse{http.StatusBadRequest, app.MsgInvalidDataProvided}},
	{validators.ErrPayloadTooLarge, errorResponse{http.StatusBadRequest, app.MsgInvalidDataProvided}},
	{validators.ErrEmptyLogin, errorResponse{http.StatusBadRequest, app.MsgInvalidDataProvided}},
	{validators.ErrEmptyPassword, errorResponse{http.StatusBadRequest, app.MsgInvalidDataProvided}},

	{service.ErrWrongPassword, errorResponse{http.StatusUnauthorized, app.MsgInvalidLoginPassword}},
	{store.ErrNoUserWasFound, errorResponse{http.StatusUnauthorized, app.MsgInvalidLoginPassword}},
	{service.ErrTokenIsExpired, errorResponse{http.StatusUnauthorized, app.MsgTokenIsExpired}},
	{service.ErrTokenIsExpiredOrInvalid, errorResponse{http.StatusUnauthorized, app.MsgTokenIsExpiredOrInvalid}},

	{store.ErrRecordNotFound, errorResponse{http.StatusNotFound, app.MsgRecordNotFound}},
	{store.ErrLoginAlreadyExists, errorResponse{http.StatusConflict, app.MsgLoginAlreadyExists}},
	{store.ErrRecordAlreadyExists, errorResponse{http.StatusConflict, app.MsgRecordAlreadyExists}},
}

func responseFromError(err error) errorResponse {
	for _, candidate := range errorResponses {
		if errors.Is(err, candidate.err) {
			return candidate.errorResponse
		}
	}
	return errorResponse{http.StatusInternalServerError, app.MsgInternalServerError}
}

// writeError logs err and answers with the mapped status and message.
// Internal details never reach the response body.
func writeError(w http.ResponseWriter, log *logger.Logger, funcName string, err error) {
	resp := responseFromError(err)

	event := log.Warn()
	if resp.status >= http.StatusInternalServerError {
		event = log.Error()
	}
	event.Err(err).Str("func", funcName).Int("status", resp.status).Send()

	utils.WriteError(w, resp.message, resp.status)
}

func notFound(w http.ResponseWriter, r *http.Request) {
	utils.WriteError(w, app.MsgNotFound, http.StatusNotFound)
}
