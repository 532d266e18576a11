package handler

import (
	"io"
	"net/http"

	"github.com/BloggingApp/blog-service/internal/dto"
	"github.com/gin-gonic/gin"
)

func (h *Handler) authSignUp(c *gin.Context) {
	var input dto.SignUpRequest
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	var avatar io.Reader
	var avatarContentType string
	file, fileHeader, err := c.Request.FormFile("avatar")
	if err == nil {
		defer file.Close()
		avatar = file
		avatarContentType = fileHeader.Header.Get("Content-Type")
	}

	user, err := h.services.Auth.SignUp(c.Request.Context(), input, avatar, avatarContentType)
	if err != nil {
		c.JSON(errStatus(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, *user)
}

func (h *Handler) authSignIn(c *gin.Context) {
	var input dto.SignInRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	resp, err := h.services.Auth.SignIn(c.Request.Context(), input)
	if err != nil {
		c.JSON(errStatus(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, *resp)
}

func (h *Handler) authSignOut(c *gin.Context) {
	h.services.Auth.SignOut(c.Request.Context())

	c.JSON(http.StatusOK, dto.NewBasicResponse(true, "signed out"))
}

func (h *Handler) authRefresh(c *gin.Context) {
	var input dto.RefreshRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	resp, err := h.services.Auth.Refresh(c.Request.Context(), input.RefreshToken)
	if err != nil {
		c.JSON(errStatus(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, *resp)
}
