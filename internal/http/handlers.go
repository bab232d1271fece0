package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"pagos/internal/core"
	applog "pagos/internal/log"
	"pagos/internal/payments"
)

// Request bodies larger than this are rejected outright.
const maxBodyBytes = 64 << 10

// handlePayments dispatches the collection routes by method. Identity comes
// from the Authorization header; an unauthenticated call never reaches the
// service layer.
func (s *Server) handlePayments(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.authenticate(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.handleList(w, r, userID)
	case http.MethodPost:
		s.handleCreate(w, r, userID)
	case http.MethodPut:
		s.handleUpdate(w, r, userID)
	case http.MethodDelete:
		s.handleDelete(w, r, userID)
	default:
		w.Header().Set("Allow", "GET, POST, PUT, DELETE")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request, userID string) {
	q := r.URL.Query()
	filter := core.Filter{
		Status:   strings.TrimSpace(q.Get("status")),
		Type:     strings.TrimSpace(q.Get("type")),
		Method:   strings.TrimSpace(q.Get("method")),
		Category: strings.TrimSpace(q.Get("category")),
		Search:   strings.TrimSpace(q.Get("search")),
	}

	list, err := s.svc.List(r.Context(), userID, filter)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "List payments failed",
			applog.FieldUserID, userID, applog.FieldError, err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if list == nil {
		list = []core.Payment{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request, userID string) {
	var in payments.CreateInput
	if !s.decodeBody(w, r, &in) {
		return
	}
	in.Description = sanitizeInput(in.Description)
	in.Notes = sanitizeInput(in.Notes)

	p, err := s.svc.Create(r.Context(), userID, in)
	if err != nil {
		if core.IsValidationError(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.ErrorContext(r.Context(), "Create payment failed",
			applog.FieldUserID, userID, applog.FieldError, err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	s.logger.InfoContext(r.Context(), "Payment created",
		applog.FieldUserID, userID,
		applog.FieldPaymentID, p.ID,
		applog.FieldAmount, p.Amount,
		applog.FieldCategory, string(p.Category))
	writeJSON(w, http.StatusCreated, p)
}

// updateRequest carries the target id plus the partial changes.
type updateRequest struct {
	ID string `json:"id"`
	payments.Changes
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request, userID string) {
	var req updateRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	if req.ID == "" {
		writeError(w, http.StatusBadRequest, "missing id field")
		return
	}
	if req.Description != nil {
		clean := sanitizeInput(*req.Description)
		req.Description = &clean
	}
	if req.Notes != nil {
		clean := sanitizeInput(*req.Notes)
		req.Notes = &clean
	}

	p, err := s.svc.Update(r.Context(), userID, req.ID, req.Changes)
	if err != nil {
		switch {
		case errors.Is(err, payments.ErrNotFound):
			writeError(w, http.StatusNotFound, "payment not found")
		case core.IsValidationError(err):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			s.logger.ErrorContext(r.Context(), "Update payment failed",
				applog.FieldUserID, userID,
				applog.FieldPaymentID, req.ID,
				applog.FieldError, err)
			writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request, userID string) {
	id := strings.TrimSpace(r.URL.Query().Get("id"))
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing id parameter")
		return
	}

	if err := s.svc.Delete(r.Context(), userID, id); err != nil {
		s.logger.ErrorContext(r.Context(), "Delete payment failed",
			applog.FieldUserID, userID,
			applog.FieldPaymentID, id,
			applog.FieldError, err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.authenticate(w, r)
	if !ok {
		return
	}
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	stats, err := s.svc.Stats(r.Context(), userID)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Compute stats failed",
			applog.FieldUserID, userID, applog.FieldError, err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) authenticate(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, err := s.authn.UserID(r)
	if err != nil {
		s.logger.WarnContext(r.Context(), "Unauthenticated request",
			applog.FieldMethod, r.Method,
			applog.FieldPath, r.URL.Path,
			applog.FieldClientIP, clientIP(r))
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return "", false
	}
	return userID, true
}

func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	defer func() { _, _ = io.Copy(io.Discard, r.Body) }()

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// sanitizeInput trims whitespace and strips control characters except tab,
// newline and carriage return.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}
