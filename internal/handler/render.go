package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Dan9191/calc-service/internal/models"
	"github.com/Dan9191/calc-service/internal/service"
	"github.com/Dan9191/calc-service/internal/session"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	contentTypeJSON    = "application/json"
	contentTypeMsgpack = "application/msgpack"

	maxBodyBytes = 1 << 16
)

var errBadBody = errors.New("invalid request body")

// decode reads a JSON request body into v. An empty body leaves v as is.
func decode(r *http.Request, v interface{}) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		return fmt.Errorf("%w: %v", errBadBody, err)
	}
	if len(body) > maxBodyBytes {
		return fmt.Errorf("%w: too large", errBadBody)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%w: %v", errBadBody, err)
	}
	return nil
}

// respond writes v as JSON, or msgpack when the client asks for it
func (h *Handler) respond(w http.ResponseWriter, r *http.Request, status int, v interface{}) {
	var (
		body        []byte
		contentType string
		err         error
	)
	if strings.Contains(r.Header.Get("Accept"), contentTypeMsgpack) {
		contentType = contentTypeMsgpack
		body, err = msgpack.Marshal(v)
	} else {
		contentType = contentTypeJSON
		body, err = json.Marshal(v)
	}
	if err != nil {
		h.log.Errorf("Failed to encode response: %v", err)
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		h.log.Warnf("Failed to write response: %v", err)
	}
}

// fail answers 400 for errors caused by the request and 500 otherwise
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case service.IsInputError(err), errors.Is(err, errBadBody), errors.Is(err, session.ErrInvalidToken):
		status = http.StatusBadRequest
	default:
		h.log.Errorf("Request %s %s failed: %v", r.Method, r.URL.Path, err)
	}
	h.respond(w, r, status, models.ErrorResponse{Error: err.Error()})
}
