package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/draft-assistant-api/internal/usecase"
)

type errorEnvelope struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	Error   errorBody `json:"error"`
}

type errorBody struct {
	Code    int    `json:"code"`
	Status  string `json:"status"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type mappedError struct {
	HTTPStatus int
	Reason     string
	Status     string
	Message    string
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	ctx, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	ctx, span := startSpan(ctx, "httpapi.writeError")
	defer span.End()

	mapped := mapError(ctx, err)
	writeMappedError(ctx, w, mapped, err.Error())
}

// writeConnectError reports connect failures with a user-facing message keyed
// by the upstream status.
func writeConnectError(ctx context.Context, w http.ResponseWriter, err error) {
	ctx, span := startSpan(ctx, "httpapi.writeConnectError")
	defer span.End()

	mapped := mapError(ctx, err)
	if !errors.Is(err, usecase.ErrInvalidInput) {
		mapped.Message = usecase.ConnectFailureMessage(err)
		if mapped.HTTPStatus != http.StatusNotFound && mapped.HTTPStatus != http.StatusUnauthorized {
			mapped.HTTPStatus = http.StatusBadGateway
			mapped.Status = "BAD_GATEWAY"
		}
	}
	writeMappedError(ctx, w, mapped, err.Error())
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	ctx, span := startSpan(ctx, "httpapi.writeInternalError")
	defer span.End()

	const msg = "internal server error"
	writeMappedError(ctx, w, mappedError{
		HTTPStatus: http.StatusInternalServerError,
		Reason:     "internalError",
		Status:     "INTERNAL",
		Message:    "Internal server error.",
	}, msg)
}

func writeMappedError(ctx context.Context, w http.ResponseWriter, mapped mappedError, detail string) {
	writeJSON(ctx, w, mapped.HTTPStatus, errorEnvelope{
		Success: false,
		Message: mapped.Message,
		Error: errorBody{
			Code:    mapped.HTTPStatus,
			Status:  mapped.Status,
			Reason:  mapped.Reason,
			Message: detail,
		},
	})
}

func mapError(ctx context.Context, err error) mappedError {
	ctx, span := startSpan(ctx, "httpapi.mapError")
	defer span.End()

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return mappedError{
			HTTPStatus: http.StatusBadRequest,
			Reason:     "invalidInput",
			Status:     "INVALID_ARGUMENT",
			Message:    "Invalid request.",
		}
	case errors.Is(err, usecase.ErrNotConnected):
		return mappedError{
			HTTPStatus: http.StatusBadRequest,
			Reason:     "notConnected",
			Status:     "FAILED_PRECONDITION",
			Message:    "Not connected to a league. Connect first.",
		}
	case errors.Is(err, usecase.ErrNoData):
		return mappedError{
			HTTPStatus: http.StatusInternalServerError,
			Reason:     "noData",
			Status:     "INTERNAL",
			Message:    "Failed to fetch player data.",
		}
	case errors.Is(err, usecase.ErrNotFound):
		return mappedError{
			HTTPStatus: http.StatusNotFound,
			Reason:     "leagueNotFound",
			Status:     "NOT_FOUND",
			Message:    usecase.MessageLeagueNotFound,
		}
	case errors.Is(err, usecase.ErrUnauthorized):
		return mappedError{
			HTTPStatus: http.StatusUnauthorized,
			Reason:     "unauthorized",
			Status:     "UNAUTHENTICATED",
			Message:    usecase.MessageAccessDenied,
		}
	case errors.Is(err, usecase.ErrDependencyUnavailable), errors.As(err, new(*usecase.UpstreamError)):
		return mappedError{
			HTTPStatus: http.StatusBadGateway,
			Reason:     "upstreamUnavailable",
			Status:     "UNAVAILABLE",
			Message:    usecase.MessageUpstreamTrouble,
		}
	default:
		return mappedError{
			HTTPStatus: http.StatusInternalServerError,
			Reason:     "internalError",
			Status:     "INTERNAL",
			Message:    "Internal server error.",
		}
	}
}
