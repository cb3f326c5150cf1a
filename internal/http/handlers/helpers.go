package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"service-pickup/internal/apperr"
	"service-pickup/internal/logx"
)

const bodyLimit = 1 << 20

func reqID(ctx context.Context) string {
	if id := chimw.GetReqID(ctx); id != "" {
		return id
	}
	return "-"
}

func writeJSON(logger logx.Logger, w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		logger.Error("json encode failed",
			logx.String("req_id", reqID(r.Context())),
			logx.Err(err),
		)
	}
}

// errorBody is the envelope of every error response.
type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func statusOf(k apperr.Kind) int {
	switch k {
	case apperr.KindBadRequest:
		return http.StatusBadRequest
	case apperr.KindUnauthenticated:
		return http.StatusUnauthorized
	case apperr.KindForbidden:
		return http.StatusForbidden
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError maps err to the error envelope. Internal errors are logged with
// the request id and answered with a generic message.
func writeError(logger logx.Logger, w http.ResponseWriter, r *http.Request, err error) {
	kind := apperr.KindOf(err)
	body := errorBody{Code: kind.String()}

	if kind == apperr.KindInternal {
		logger.Error("request failed",
			logx.String("req_id", reqID(r.Context())),
			logx.String("method", r.Method),
			logx.String("path", r.URL.Path),
			logx.Err(err),
		)
		body.Message = "internal error"
		writeJSON(logger, w, r, http.StatusInternalServerError, body)
		return
	}

	if e, ok := apperr.As(err); ok {
		body.Message = e.Message
		if e.Field != "" && !strings.Contains(e.Message, e.Field) {
			body.Message = e.Field + ": " + e.Message
		}
		body.Details = e.Details
	} else {
		body.Message = err.Error()
	}
	writeJSON(logger, w, r, statusOf(kind), body)
}

// decodeBody decodes a single JSON object into dst, rejecting unknown
// fields and trailing data.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, bodyLimit)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperr.BadRequest("body", "is required")
		}
		return apperr.BadRequest("body", "invalid json: "+err.Error())
	}
	if err := dec.Decode(new(struct{})); !errors.Is(err, io.EOF) {
		return apperr.BadRequest("body", "invalid json: trailing data")
	}
	return nil
}

func pathParam(r *http.Request, name string) (string, error) {
	v := strings.TrimSpace(chi.URLParam(r, name))
	if v == "" {
		return "", apperr.BadRequest(name, "is required")
	}
	return v, nil
}
