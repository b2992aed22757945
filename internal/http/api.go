package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"ethics-game/internal/auth"
	"ethics-game/internal/domain"
	"ethics-game/internal/service"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users   service.UserService
	choices service.ChoiceService
	tokens  *auth.TokenManager
	logger  *logrus.Logger
}

func NewHandler(users service.UserService, choices service.ChoiceService, tokens *auth.TokenManager, logger *logrus.Logger) *Handler {
	return &Handler{
		users:   users,
		choices: choices,
		tokens:  tokens,
		logger:  logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(requestIDMiddleware())
	router.Use(accessLogMiddleware(h.logger))
	router.Use(corsMiddleware())

	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"ok": "ok"})
	})
	router.POST("/signup", h.signup)
	router.POST("/login", h.login)

	api := router.Group("/api")
	api.Use(h.requireUser())
	{
		api.GET("/me", h.me)
		api.POST("/submit", h.submitChoice)
		api.GET("/history", h.history)
	}
}

type signupRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username, email and password are required"})
		return
	}

	if _, err := h.users.Register(c.Request.Context(), req.Username, req.Email, req.Password); err != nil {
		if errors.Is(err, service.ErrUserAlreadyExists) {
			c.JSON(http.StatusConflict, gin.H{"error": "username or email already exists"})
			return
		}
		if errors.Is(err, service.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.serviceError(c, "signup", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "user created successfully"})
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// login accepts form-encoded credentials, OAuth2 password-flow style.
func (h *Handler) login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	user, err := h.users.Authenticate(c.Request.Context(), username, password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		h.serviceError(c, "login", err)
		return
	}

	token, err := h.tokens.Issue(user.Username)
	if err != nil {
		h.serviceError(c, "issue token", err)
		return
	}

	c.JSON(http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

func (h *Handler) me(c *gin.Context) {
	user := currentUser(c)
	c.JSON(http.StatusOK, gin.H{"username": user.Username})
}

type submitChoiceRequest struct {
	Period         string  `json:"period" binding:"required"`
	Question       string  `json:"question" binding:"required"`
	SelectedAnswer string  `json:"selected_answer" binding:"required"`
	Score          float64 `json:"score"`
}

func (h *Handler) submitChoice(c *gin.Context) {
	var req submitChoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "period, question and selected_answer are required"})
		return
	}

	user := currentUser(c)
	choice := &domain.Choice{
		UserID:         user.ID,
		Period:         req.Period,
		Question:       req.Question,
		SelectedAnswer: req.SelectedAnswer,
		Score:          req.Score,
	}

	stored, err := h.choices.Submit(c.Request.Context(), choice)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.serviceError(c, "submit choice", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "choice submitted",
		"choice":  choiceToResponse(*stored),
	})
}

func (h *Handler) history(c *gin.Context) {
	user := currentUser(c)

	choices, err := h.choices.ListByUser(c.Request.Context(), user.ID)
	if err != nil {
		h.serviceError(c, "list history", err)
		return
	}

	resp := make([]ChoiceResponse, len(choices))
	for i := range choices {
		resp[i] = choiceToResponse(choices[i])
	}
	c.JSON(http.StatusOK, gin.H{
		"username": user.Username,
		"choices":  resp,
	})
}

// serviceError logs the cause and answers with a generic failure. Internal
// detail stays out of response bodies.
func (h *Handler) serviceError(c *gin.Context, op string, err error) {
	h.logger.WithField("request_id", requestID(c)).Errorf("%s: %v", op, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

type ChoiceResponse struct {
	ID             int64   `json:"id"`
	Period         string  `json:"period"`
	Question       string  `json:"question"`
	SelectedAnswer string  `json:"selected_answer"`
	Score          float64 `json:"score"`
	Timestamp      string  `json:"timestamp"`
}

func choiceToResponse(choice domain.Choice) ChoiceResponse {
	return ChoiceResponse{
		ID:             choice.ID,
		Period:         choice.Period,
		Question:       choice.Question,
		SelectedAnswer: choice.SelectedAnswer,
		Score:          choice.Score,
		Timestamp:      choice.CreatedAt.Format(time.RFC3339),
	}
}
