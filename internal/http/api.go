package http

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"cadastro/internal/domain"
	"cadastro/internal/service"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users           service.UserService
	admin           service.AdminService
	bootstrapSecret string
	logger          *logrus.Logger
}

func NewHandler(users service.UserService, admin service.AdminService, bootstrapSecret string, logger *logrus.Logger) *Handler {
	return &Handler{
		users:           users,
		admin:           admin,
		bootstrapSecret: strings.TrimSpace(bootstrapSecret),
		logger:          logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())

	api := router.Group("/api")
	{
		api.GET("/health", func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
		})
		api.POST("/admin/token", h.issueToken)

		users := api.Group("/users", h.adminAuth())
		{
			users.POST("", h.createUser)
			users.PUT("", h.updateUser)
			users.GET("/:document", h.getUser)
			users.DELETE("/:document", h.deleteUser)
		}
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// adminAuth guards a route group with the admin bearer token. A missing or
// unreadable header and a blank bearer value get distinct error codes, the
// same split the error registry defines.
func (h *Handler) adminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortWithError(c, domain.NewBusiness(domain.CodeMissingAuthToken))
			return
		}

		parts := strings.Split(header, " ")
		token := strings.TrimSpace(parts[len(parts)-1])
		if token == "" {
			abortWithError(c, domain.NewBusiness(domain.CodeInvalidToken))
			return
		}

		if err := h.admin.ValidateToken(token); err != nil {
			abortWithError(c, err)
			return
		}

		c.Next()
	}
}

type issueTokenRequest struct {
	BootstrapSecret string `json:"bootstrap_secret" binding:"required"`
}

// issueToken hands out an admin token when the caller proves possession of
// the bootstrap secret.
func (h *Handler) issueToken(c *gin.Context) {
	var req issueTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if h.bootstrapSecret == "" ||
		subtle.ConstantTimeCompare([]byte(req.BootstrapSecret), []byte(h.bootstrapSecret)) != 1 {
		respondError(c, domain.NewBusiness(domain.CodeInvalidToken))
		return
	}

	token, err := h.admin.IssueToken()
	if err != nil {
		h.logger.Warnf("issue token: %v", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

type createUserRequest struct {
	Name      string `json:"name" binding:"required"`
	Document  string `json:"document" binding:"required"`
	BirthDate string `json:"birth_date" binding:"required"`
	Password  string `json:"password" binding:"required"`
}

type updateUserRequest struct {
	ID        string `json:"id" binding:"required"`
	Name      string `json:"name" binding:"required"`
	Document  string `json:"document" binding:"required"`
	BirthDate string `json:"birth_date" binding:"required"`
}

// UserResponse is the public-safe projection of a user record.
type UserResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Document  string `json:"document"`
	Status    string `json:"status"`
	BirthDate string `json:"birth_date"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func (h *Handler) createUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	birthDate, err := time.Parse("2006-01-02", req.BirthDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "birth_date must be YYYY-MM-DD"})
		return
	}

	user, err := h.users.Create(c.Request.Context(), service.CreateUserRequest{
		Name:      req.Name,
		Document:  req.Document,
		BirthDate: birthDate,
		Password:  req.Password,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, userToResponse(user))
}

func (h *Handler) updateUser(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	birthDate, err := time.Parse("2006-01-02", req.BirthDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "birth_date must be YYYY-MM-DD"})
		return
	}

	if err := h.users.Update(c.Request.Context(), service.UpdateUserRequest{
		ID:        req.ID,
		Name:      req.Name,
		Document:  req.Document,
		BirthDate: birthDate,
	}); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) getUser(c *gin.Context) {
	user, err := h.users.Get(c.Request.Context(), c.Param("document"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, userToResponse(user))
}

func (h *Handler) deleteUser(c *gin.Context) {
	if err := h.users.Delete(c.Request.Context(), c.Param("document")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func userToResponse(user domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Document:  user.Document.String(),
		Status:    user.Status.String(),
		BirthDate: user.BirthDate.Time().Format("2006-01-02"),
		CreatedAt: user.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: user.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// errorBody is the wire form of a domain error: {code, msg}.
type errorBody struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

func respondError(c *gin.Context, err error) {
	c.JSON(statusAndBody(err))
}

func abortWithError(c *gin.Context, err error) {
	status, body := statusAndBody(err)
	c.AbortWithStatusJSON(status, body)
}

func statusAndBody(err error) (int, errorBody) {
	var domainErr *domain.Error
	if !errors.As(err, &domainErr) {
		return http.StatusInternalServerError, errorBody{Code: 0, Msg: err.Error()}
	}

	status := http.StatusInternalServerError
	switch domainErr.Kind {
	case domain.KindBusiness:
		status = http.StatusBadRequest
	case domain.KindNotFound:
		status = http.StatusNotFound
	case domain.KindAlreadyExists:
		status = http.StatusConflict
	}
	return status, errorBody{Code: domainErr.Code, Msg: domainErr.Message}
}
