package handler

import (
	"net/http"

	"github.com/younger1612/Rd-storev1/internal/apierror"
	"github.com/younger1612/Rd-storev1/internal/dto"
	"github.com/younger1612/Rd-storev1/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct{ auth service.AuthService }

func NewAuthHandler(auth service.AuthService) *AuthHandler { return &AuthHandler{auth: auth} }

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.auth.Login(req)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.Envelope(err))
		return
	}
	respond(c, http.StatusOK, resp)
}
