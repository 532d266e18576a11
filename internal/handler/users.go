package handler

import (
	"net/http"
	"strings"

	"github.com/BloggingApp/blog-service/internal/dto"
	"github.com/BloggingApp/blog-service/internal/session"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (h *Handler) usersGetMe(c *gin.Context) {
	user := h.getUserFromRequest(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, dto.NewBasicResponse(false, errNotAuthorized.Error()))
		return
	}

	c.JSON(http.StatusOK, *user)
}

func (h *Handler) usersGetByID(c *gin.Context) {
	userIDString := strings.TrimSpace(c.Param("userID"))
	userID, err := uuid.Parse(userIDString)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidID.Error()))
		return
	}

	user, err := h.services.User.FindProfile(c.Request.Context(), userID)
	if err != nil {
		c.JSON(errStatus(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, *user)
}

// usersUpdateMe is the profile "Save" action. The whole form is
// optional; the workflow itself decides which remote calls the
// submitted deltas imply.
func (h *Handler) usersUpdateMe(c *gin.Context) {
	user := h.getUserFromRequest(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, dto.NewBasicResponse(false, errNotAuthorized.Error()))
		return
	}

	var input dto.UpdateProfileRequest
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	file, fileHeader, err := c.Request.FormFile("avatar")
	if err == nil {
		defer file.Close()
		input.Avatar = file
		input.AvatarContentType = fileHeader.Header.Get("Content-Type")
	}

	identity := session.Identity{UID: user.UID, Email: user.Email}
	result, err := h.services.User.SubmitProfileUpdate(c.Request.Context(), identity, &input)
	if err != nil {
		c.JSON(errStatus(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, *result)
}
