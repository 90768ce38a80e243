package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/finance_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker_app/internal/dto"
	"github.com/SscSPs/finance_tracker_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

type userHandler struct {
	userService portssvc.UserSvcFacade
}

func registerUserRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade) {
	h := &userHandler{userService: userService}
	users := rg.Group("/users")
	{
		users.GET("/me", h.getMe)
	}
}

// getMe godoc
// @Summary Current user
// @Description Returns the profile of the authenticated user.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /users/me [get]
func (h *userHandler) getMe(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to get user")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// requireUserID reads the authenticated user or aborts with 401.
func requireUserID(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok || userID == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return "", false
	}
	return userID, true
}
