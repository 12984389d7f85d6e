package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/acmedash/backend/internal/config"
	"github.com/acmedash/backend/internal/middleware"
	"github.com/acmedash/backend/internal/services"
)

type AuthHandler struct {
	service  *services.AuthService
	sessions *middleware.SessionAuth
	config   *config.DashboardConfig
}

func NewAuthHandler(service *services.AuthService, sessions *middleware.SessionAuth, cfg *config.DashboardConfig) *AuthHandler {
	return &AuthHandler{
		service:  service,
		sessions: sessions,
		config:   cfg,
	}
}

// Login handles the login form
// @Summary Login
// @Description Signs in with email and password, sets the session cookie and redirects
// @Tags auth
// @Accept x-www-form-urlencoded
// @Produce json
// @Param email formData string true "Email"
// @Param password formData string true "Password"
// @Param redirectTo formData string false "Path to open after sign-in"
// @Success 303 "Redirect to the dashboard"
// @Failure 401 {object} services.ErrorResponse "Invalid credentials. / Something went wrong."
// @Failure 500 {object} services.ErrorResponse
// @Router /login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	log.Printf("[AUTH] Login attempt from IP: %s", r.RemoteAddr)

	form, err := parseForm(w, r)
	if err != nil {
		services.SendErrorResponse(w, "Invalid form submission", http.StatusBadRequest, nil)
		return
	}

	session, message, err := h.service.Authenticate(r.Context(), form)
	if err != nil {
		log.Printf("[AUTH] Login failed with unexpected error: %v", err)
		services.SendErrorResponse(w, "Something went wrong", http.StatusInternalServerError, nil)
		return
	}
	if message != "" {
		services.SendErrorResponse(w, message, http.StatusUnauthorized, nil)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.config.SessionCookie,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   h.config.SecureCookies || r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, h.redirectTarget(form.Get("redirectTo")), http.StatusSeeOther)
}

// Logout ends the session
// @Summary Logout
// @Description Blacklists the session token and clears the cookie
// @Tags auth
// @Success 303 "Redirect to the login page"
// @Router /logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Logout(r.Context(), h.sessions.TokenFromRequest(r)); err != nil {
		log.Printf("[AUTH] Logout could not revoke token: %v", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.config.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.config.SecureCookies || r.TLS != nil,
	})
	http.Redirect(w, r, h.config.LoginPath, http.StatusSeeOther)
}

// redirectTarget only follows local paths
func (h *AuthHandler) redirectTarget(raw string) string {
	if strings.HasPrefix(raw, "/") && !strings.HasPrefix(raw, "//") && !strings.HasPrefix(raw, "/\\") {
		return raw
	}
	return h.config.HomePath
}
