package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/slopengine/slopengine/internal/dto"
	"github.com/slopengine/slopengine/internal/oauth"
	"github.com/slopengine/slopengine/internal/service"
)

// OAuthHandler handles provider-based login requests
type OAuthHandler struct {
	oauthService service.OAuthService
	frontendURL  string
}

// NewOAuthHandler creates a new OAuth handler
func NewOAuthHandler(oauthService service.OAuthService, frontendURL string) *OAuthHandler {
	return &OAuthHandler{
		oauthService: oauthService,
		frontendURL:  frontendURL,
	}
}

// Redirect sends the browser to the provider's consent screen
// @Summary Start an OAuth login
// @Description Redirect to the identity provider's authorization page
// @Tags oauth
// @Param provider path string true "Provider name" Enums(google, github)
// @Success 302
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /oauth/{provider} [get]
func (h *OAuthHandler) Redirect(c *gin.Context) {
	authURL, err := h.oauthService.AuthorizationURL(c.Request.Context(), c.Param("provider"))
	if err != nil {
		if errors.Is(err, oauth.ErrUnknownProvider) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{
				Error:   "Not found",
				Message: err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "Internal server error",
			Message: "Failed to start OAuth login",
		})
		return
	}

	c.Redirect(http.StatusFound, authURL)
}

// Callback completes an OAuth login and redirects to the frontend with a
// session token
// @Summary Complete an OAuth login
// @Description Exchange the provider code for a session and redirect to the frontend
// @Tags oauth
// @Param provider path string true "Provider name" Enums(google, github)
// @Param code query string true "Authorization code"
// @Param state query string true "State value from the redirect"
// @Success 302
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /oauth/{provider}/callback [get]
func (h *OAuthHandler) Callback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Bad request",
			Message: "Missing authorization code",
		})
		return
	}

	token, err := h.oauthService.HandleCallback(c.Request.Context(), c.Param("provider"), code, c.Query("state"))
	if err != nil {
		switch {
		case errors.Is(err, oauth.ErrUnknownProvider):
			c.JSON(http.StatusNotFound, dto.ErrorResponse{
				Error:   "Not found",
				Message: err.Error(),
			})
		case errors.Is(err, oauth.ErrMissingEmail):
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error:   "Bad request",
				Message: "Provider did not supply a usable email address",
			})
		case errors.Is(err, service.ErrProviderError):
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error:   "Bad request",
				Message: "OAuth login failed",
			})
		default:
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
				Error:   "Internal server error",
				Message: "Failed to complete OAuth login",
			})
		}
		return
	}

	c.Redirect(http.StatusFound, h.frontendURL+"/auth/callback?token="+url.QueryEscape(token))
}
