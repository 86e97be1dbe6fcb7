package handler

import (
	"encoding/json"
	"net/http"

	"github.com/osse101/SpinHall_Go/internal/domain"
	"github.com/osse101/SpinHall_Go/internal/logger"
	"github.com/osse101/SpinHall_Go/internal/session"
)

// ValidationErrorResponse is returned when a request body fails validation
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// DecodeAndValidateRequest decodes a JSON request body into req and validates it.
// On failure the response has already been written and the handler should return.
//
//	var req WithdrawRequest
//	if err := DecodeAndValidateRequest(r, w, &req, "Withdraw"); err != nil {
//	    return
//	}
func DecodeAndValidateRequest(r *http.Request, w http.ResponseWriter, req interface{}, actionName string) error {
	log := logger.FromContext(r.Context())

	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(req); err != nil {
		log.Warn(LogMsgDecodeFailed, "action", actionName, "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return err
	}

	log.Debug(LogMsgRequestDecoded, "action", actionName)

	if err := GetValidator().ValidateStruct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Fields: FormatValidationError(err),
		})
		return err
	}

	return nil
}

// requireSession returns the request's authenticated session or writes a 401
func requireSession(w http.ResponseWriter, r *http.Request) (*domain.Session, bool) {
	sess := session.FromContext(r.Context())
	if !sess.Authenticated() {
		logger.FromContext(r.Context()).Debug(LogMsgUnauthenticated, "path", r.URL.Path)
		respondError(w, http.StatusUnauthorized, ErrMsgNotLoggedIn)
		return nil, false
	}
	return sess, true
}

// requireAdmin is requireSession plus an admin role check
func requireAdmin(w http.ResponseWriter, r *http.Request) (*domain.Session, bool) {
	sess, ok := requireSession(w, r)
	if !ok {
		return nil, false
	}
	if !sess.IsAdmin() {
		logger.FromContext(r.Context()).Warn(LogMsgForbiddenNonAdmin, "user_id", sess.UserID)
		respondError(w, http.StatusForbidden, ErrMsgAdminRequired)
		return nil, false
	}
	return sess, true
}
