package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"undangan/internal/delivery/http/middleware"
	"undangan/internal/delivery/http/views"
	"undangan/internal/domain"
)

// authView is the data context for the auth page (login + register forms).
type authView struct {
	Error   string
	Notice  string
	Section string
}

type AuthController struct {
	Logger     *slog.Logger
	Service    domain.AuthService
	Renderer   *views.Renderer
	SessionTTL time.Duration
}

func NewAuthController(logger *slog.Logger, svc domain.AuthService, renderer *views.Renderer, sessionTTL time.Duration) *AuthController {
	return &AuthController{
		Logger:     logger,
		Service:    svc,
		Renderer:   renderer,
		SessionTTL: sessionTTL,
	}
}

// Login handles POST /login. Business rejections re-render the auth page with
// a message and 200; only the session cookie distinguishes success.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		c.Renderer.Render(w, http.StatusOK, "auth.html", authView{Error: "Invalid form submission."})
		return
	}
	token, _, err := c.Service.Login(r.Context(), r.PostFormValue("email"), r.PostFormValue("password"))
	if err != nil {
		// Unverified accounts get the same generic message as a bad
		// password so the page leaks nothing about which it was.
		if errors.Is(err, domain.ErrInvalidCredentials) || errors.Is(err, domain.ErrNotVerified) {
			c.Renderer.Render(w, http.StatusOK, "auth.html", authView{Error: "Invalid email or password."})
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		c.Renderer.Render(w, http.StatusOK, "auth.html", authView{Error: "Something went wrong. Please try again."})
		return
	}

	c.setSessionCookie(w, token)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Register handles POST /register. New accounts await admin verification, so
// success renders the auth page with a notice instead of logging in.
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		c.Renderer.Render(w, http.StatusOK, "auth.html", authView{Error: "Invalid form submission.", Section: "register"})
		return
	}
	_, err := c.Service.Register(r.Context(), r.PostFormValue("email"), r.PostFormValue("password"), r.PostFormValue("name"))
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			c.Renderer.Render(w, http.StatusOK, "auth.html", authView{Error: "Email already registered.", Section: "register"})
			return
		}
		if isValidationError(err) {
			c.Renderer.Render(w, http.StatusOK, "auth.html", authView{Error: err.Error(), Section: "register"})
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		c.Renderer.Render(w, http.StatusOK, "auth.html", authView{Error: "Something went wrong. Please try again.", Section: "register"})
		return
	}

	c.Renderer.Render(w, http.StatusOK, "auth.html", authView{
		Notice: "Account created. You can sign in once an administrator verifies it.",
	})
}

// Logout handles GET /logout.
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookie); err == nil && cookie.Value != "" {
		if err := c.Service.Logout(r.Context(), cookie.Value); err != nil {
			c.Logger.ErrorContext(r.Context(), "logout failed", "err", err)
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func isValidationError(err error) bool {
	return domain.IsValidation(err)
}

func (c *AuthController) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(c.SessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
