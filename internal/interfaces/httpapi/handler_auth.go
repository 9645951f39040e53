package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/bolzplatz/tippspiel/internal/usecase"
)

type registerRequest struct {
	Username   string `json:"username" validate:"required,max=32"`
	Password   string `json:"password" validate:"required,min=8"`
	AccessCode string `json:"access_code" validate:"required"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

type changeUsernameRequest struct {
	Password string `json:"password" validate:"required"`
	Username string `json:"username" validate:"required,max=32"`
}

type deleteAccountRequest struct {
	Password string `json:"password" validate:"required"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Register")
	defer span.End()

	var req registerRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	defer func() { _ = r.Body.Close() }()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	session, err := h.authService.Register(ctx, req.Username, req.Password, req.AccessCode)
	if err != nil {
		h.logger.WarnContext(ctx, "register failed", "username", req.Username, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, session)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Login")
	defer span.End()

	var req loginRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	defer func() { _ = r.Body.Close() }()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	session, err := h.authService.Login(ctx, req.Username, req.Password)
	if err != nil {
		h.logger.WarnContext(ctx, "login failed", "username", req.Username, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, session)
}

func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ChangePassword")
	defer span.End()

	userID, err := requireUserID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req changePasswordRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	defer func() { _ = r.Body.Close() }()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.authService.ChangePassword(ctx, userID, req.CurrentPassword, req.NewPassword); err != nil {
		h.logger.WarnContext(ctx, "change password failed", "user_id", userID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *Handler) ChangeUsername(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ChangeUsername")
	defer span.End()

	userID, err := requireUserID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req changeUsernameRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	defer func() { _ = r.Body.Close() }()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.authService.ChangeUsername(ctx, userID, req.Password, req.Username); err != nil {
		h.logger.WarnContext(ctx, "change username failed", "user_id", userID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *Handler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteAccount")
	defer span.End()

	userID, err := requireUserID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req deleteAccountRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	defer func() { _ = r.Body.Close() }()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.authService.DeleteAccount(ctx, userID, req.Password); err != nil {
		h.logger.WarnContext(ctx, "delete account failed", "user_id", userID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "deleted"})
}
