package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/finance_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker_app/internal/dto"
	"github.com/SscSPs/finance_tracker_app/internal/middleware"
	"github.com/SscSPs/finance_tracker_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	limitergin "github.com/ulule/limiter/v3/drivers/middleware/gin"
)

// AuthHandler handles registration and login.
type AuthHandler struct {
	userService  portssvc.UserSvcFacade
	tokenService portssvc.TokenSvcFacade
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(us portssvc.UserSvcFacade, ts portssvc.TokenSvcFacade) *AuthHandler {
	return &AuthHandler{userService: us, tokenService: ts}
}

// registerAuthRoutes sets up the public authentication routes behind their own rate limit.
func registerAuthRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) error {
	h := NewAuthHandler(services.User, services.TokenService)

	ipLimiter, err := middleware.NewMemoryRateLimiter(cfg.AuthRateLimit)
	if err != nil {
		return err
	}
	limitMiddleware := limitergin.NewMiddleware(ipLimiter)

	auth := r.Group("/auth", limitMiddleware)
	{
		auth.POST("/login", h.Login)
		auth.POST("/register", h.Register)
	}
	return nil
}

// Login godoc
// @Summary User login
// @Description Authenticates a user and returns a JWT token.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	user, err := h.userService.AuthenticateUser(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondWithError(c, logger, err, "Failed to authenticate user")
		return
	}

	token, expiresAt, err := h.tokenService.GenerateAccessToken(c.Request.Context(), user)
	if err != nil {
		logger.Error("Failed to sign JWT token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{Token: token, ExpiresAt: expiresAt})
}

// Register godoc
// @Summary Register new user
// @Description Creates a new user account.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.CreateUserRequest true "User Registration Info"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Conflict (e.g., username exists)"
// @Failure 500 {object} ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	newUser, err := h.userService.CreateUser(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, logger, err, "Failed to register user")
		return
	}

	logger.Info("User registered", slog.String("user_id", newUser.UserID))
	c.JSON(http.StatusCreated, dto.ToUserResponse(newUser))
}
