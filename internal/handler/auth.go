package handler

import (
	"net/http"

	"github.com/osse101/SpinHall_Go/internal/auth"
	"github.com/osse101/SpinHall_Go/internal/domain"
	"github.com/osse101/SpinHall_Go/internal/logger"
	"github.com/osse101/SpinHall_Go/internal/ratelimit"
	"github.com/osse101/SpinHall_Go/internal/session"
	"github.com/osse101/SpinHall_Go/internal/utils"
)

// LoginRequest is the body of POST /api/admin/login
type LoginRequest struct {
	Username string `json:"username" validate:"required,max=64,excludesall=\x00\n\r\t"`
	Password string `json:"password" validate:"required,max=72"`
}

// UserResponse is the public view of an account
type UserResponse struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Role     string   `json:"role"`
	Balance  *float64 `json:"balance,omitempty"`
}

// LoginResponse carries the session token and the logged in user
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// HandleLogin checks credentials, opens a session and clears the
// caller's login strikes. Throttling happens in ratelimit.LoginMiddleware.
// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} LoginResponse
// @Failure 401 {object} ErrorResponse
// @Failure 429 {object} ratelimit.LimitResponse
// @Router /api/admin/login [post]
func HandleLogin(svc auth.Service, sessions *session.Manager, limiter *ratelimit.ProgressiveLimiter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Login"); err != nil {
			return
		}

		log := logger.FromContext(r.Context())
		user, err := svc.Login(r.Context(), req.Username, req.Password)
		if err != nil {
			log.Warn(LogMsgLoginFailed, "username", req.Username, "error", err)
			respondServiceError(w, err)
			return
		}

		// Key is taken from the anonymous session before Begin replaces it
		key := ratelimit.SessionKey(r)

		sess, err := sessions.Begin(w, r, user)
		if err != nil {
			log.Error(LogMsgSessionBeginFailed, "user_id", user.ID, "error", err)
			respondError(w, http.StatusInternalServerError, ErrMsgLoginFailed)
			return
		}

		if limiter != nil {
			limiter.Reset(key)
		}

		log.Info(LogMsgLoginSucceeded, "user_id", user.ID, "role", user.Role)
		respondJSON(w, http.StatusOK, LoginResponse{
			Token: sess.ID,
			User:  toUserResponse(user),
		})
	}
}

// HandleLogout ends the caller's session and clears the cookie
// @Summary Log out
// @Tags auth
// @Produce json
// @Success 200 {object} SuccessResponse
// @Router /api/admin/logout [post]
func HandleLogout(sessions *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := session.FromContext(r.Context())
		if err := sessions.End(w, r, sess); err != nil {
			logger.FromContext(r.Context()).Error(LogMsgLogoutFailed, "error", err)
			respondError(w, http.StatusInternalServerError, ErrMsgLogoutFailed)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgLoggedOut})
	}
}

// HandleMe returns the admin behind the current session
// @Summary Current admin
// @Tags auth
// @Produce json
// @Success 200 {object} UserResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /api/admin/me [get]
func HandleMe(svc auth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := requireAdmin(w, r)
		if !ok {
			return
		}

		user, err := svc.GetUser(r.Context(), sess.UserID)
		if err != nil {
			logger.FromContext(r.Context()).Error(LogMsgMeFailed, "user_id", sess.UserID, "error", err)
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, toUserResponse(user))
	}
}

func toUserResponse(u *domain.User) UserResponse {
	balance := utils.ToWire(u.Balance)
	return UserResponse{
		ID:       u.ID,
		Username: u.Username,
		Role:     u.Role,
		Balance:  &balance,
	}
}
