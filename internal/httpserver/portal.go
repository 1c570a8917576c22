package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"homesteadhub/internal/domain"
	"homesteadhub/internal/service/portal"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	User        *domain.User `json:"user"`
	AccessToken string       `json:"accessToken"`
}

func loginHandler(svc *portal.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "username and password required"})
			return
		}
		u, token, err := svc.Login(c.Request.Context(), req.Username, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrUserNotFound):
				c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			case errors.Is(err, domain.ErrInvalidCredentials):
				c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
			}
			return
		}
		c.JSON(http.StatusOK, loginResponse{User: u, AccessToken: token})
	}
}

func logoutHandler(svc *portal.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if err := svc.Logout(c.Request.Context(), token); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "logout failed"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}
