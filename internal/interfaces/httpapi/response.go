package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/fulbito-league/internal/usecase"
	"github.com/valyala/bytebufferpool"
)

const (
	googleAPIVersion = "2.0"
	errorDomain      = "fulbito-league"
	internalErrorMsg = "internal server error"
)

// Responses follow the Google JSON style guide: exactly one of data or error.
type googleResponseEnvelope struct {
	APIVersion string           `json:"apiVersion"`
	Data       any              `json:"data,omitempty"`
	Error      *googleErrorBody `json:"error,omitempty"`
}

type googleErrorBody struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Status  string            `json:"status"`
	Errors  []googleErrorItem `json:"errors,omitempty"`
}

type googleErrorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type mappedError struct {
	HTTPStatus int
	Reason     string
	Status     string
}

var internalError = mappedError{http.StatusInternalServerError, "internalError", "INTERNAL"}

// errorTable is checked in order; the first sentinel found in the chain wins.
var errorTable = []struct {
	sentinel error
	mapped   mappedError
}{
	{usecase.ErrInvalidInput, mappedError{http.StatusBadRequest, "invalidInput", "INVALID_ARGUMENT"}},
	{usecase.ErrNotFound, mappedError{http.StatusNotFound, "notFound", "NOT_FOUND"}},
	{usecase.ErrConflict, mappedError{http.StatusConflict, "conflict", "ALREADY_EXISTS"}},
	{usecase.ErrUnauthorized, mappedError{http.StatusUnauthorized, "unauthorized", "UNAUTHENTICATED"}},
	{usecase.ErrForbidden, mappedError{http.StatusForbidden, "forbidden", "PERMISSION_DENIED"}},
	{usecase.ErrDependencyUnavailable, mappedError{http.StatusServiceUnavailable, "dependencyUnavailable", "UNAVAILABLE"}},
	{usecase.ErrIntegrity, mappedError{http.StatusInternalServerError, "dataIntegrity", "DATA_LOSS"}},
}

func mapError(err error) mappedError {
	for _, row := range errorTable {
		if errors.Is(err, row.sentinel) {
			return row.mapped
		}
	}
	return internalError
}

func writeSuccess(_ context.Context, w http.ResponseWriter, status int, data any) {
	writeEnvelope(w, status, googleResponseEnvelope{APIVersion: googleAPIVersion, Data: data})
}

// writeError replaces the message of a 500 with a generic one.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	mapped := mapError(err)
	markSpanFailed(ctx, mapped.HTTPStatus, err)

	msg := err.Error()
	if mapped.HTTPStatus == http.StatusInternalServerError {
		msg = internalErrorMsg
	}
	writeEnvelope(w, mapped.HTTPStatus, errorEnvelope(mapped, msg))
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	markSpanFailed(ctx, http.StatusInternalServerError, errors.New(internalErrorMsg))
	writeEnvelope(w, http.StatusInternalServerError, errorEnvelope(internalError, internalErrorMsg))
}

func errorEnvelope(mapped mappedError, msg string) googleResponseEnvelope {
	return googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    mapped.HTTPStatus,
			Message: msg,
			Status:  mapped.Status,
			Errors:  []googleErrorItem{{Domain: errorDomain, Reason: mapped.Reason, Message: msg}},
		},
	}
}

func writeEnvelope(w http.ResponseWriter, status int, payload googleResponseEnvelope) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(payload); err != nil {
		buf.Reset()
		status = http.StatusInternalServerError
		_ = sonic.ConfigDefault.NewEncoder(buf).Encode(errorEnvelope(internalError, internalErrorMsg))
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(status)
	_, _ = w.Write(buf.B)
}
