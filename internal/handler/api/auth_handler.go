package api

import (
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"invoicehub/internal/auth"
	"invoicehub/internal/middleware"
	"invoicehub/internal/models"
	"invoicehub/internal/repository"
)

// AuthHandler serves the /auth endpoints: signup, login and the current
// identity. Token issuance is delegated to the TokenManager.
type AuthHandler struct {
	users    *repository.UserRepository
	tokens   *auth.TokenManager
	validate *validator.Validate
	logger   *zap.Logger
}

func NewAuthHandler(users *repository.UserRepository, tokens *auth.TokenManager, logger *zap.Logger) *AuthHandler {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{users: users, tokens: tokens, validate: v, logger: logger}
}

// Signup handles POST /auth/signup.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req models.SignupRequest
	if err := c.Bind(&req); err != nil {
		return detailJSON(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(&req); err != nil {
		return detailJSON(c, http.StatusBadRequest, validationDetail(err))
	}

	existing, err := h.users.FindByEmail(req.Email)
	if err != nil {
		h.logger.Error("Failed to look up user", zap.Error(err))
		return detailJSON(c, http.StatusInternalServerError, "Internal server error")
	}
	if existing != nil {
		return detailJSON(c, http.StatusBadRequest, "Email already registered")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.logger.Error("Failed to hash password", zap.Error(err))
		return detailJSON(c, http.StatusInternalServerError, "Internal server error")
	}

	user := &models.User{
		Email:        req.Email,
		FullName:     req.FullName,
		PasswordHash: hash,
	}
	if err := h.users.Create(user); err != nil {
		h.logger.Error("Failed to create user", zap.Error(err))
		return detailJSON(c, http.StatusInternalServerError, "Internal server error")
	}

	return h.tokenResponse(c, http.StatusCreated, user)
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return detailJSON(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(&req); err != nil {
		return detailJSON(c, http.StatusBadRequest, validationDetail(err))
	}

	user, err := h.users.FindByEmail(req.Email)
	if err != nil {
		h.logger.Error("Failed to look up user", zap.Error(err))
		return detailJSON(c, http.StatusInternalServerError, "Internal server error")
	}
	if user == nil || auth.ComparePassword(user.PasswordHash, req.Password) != nil {
		return detailJSON(c, http.StatusUnauthorized, "Incorrect email or password")
	}

	return h.tokenResponse(c, http.StatusOK, user)
}

// Me handles GET /auth/me.
func (h *AuthHandler) Me(c echo.Context) error {
	identity := middleware.IdentityFrom(c)
	if identity == nil {
		return detailJSON(c, http.StatusUnauthorized, "Not authenticated")
	}
	user, err := h.users.FindByID(identity.ID)
	if err != nil {
		h.logger.Error("Failed to look up user", zap.Error(err))
		return detailJSON(c, http.StatusInternalServerError, "Internal server error")
	}
	if user == nil {
		return detailJSON(c, http.StatusUnauthorized, "Could not validate credentials")
	}
	return c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) tokenResponse(c echo.Context, status int, user *models.User) error {
	token, err := h.tokens.Issue(user)
	if err != nil {
		h.logger.Error("Failed to issue token", zap.Error(err))
		return detailJSON(c, http.StatusInternalServerError, "Internal server error")
	}
	return c.JSON(status, models.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        user,
		ExpiresIn:   int64(h.tokens.Expiry().Seconds()),
	})
}

func validationDetail(err error) string {
	invalid, ok := err.(validator.ValidationErrors)
	if !ok || len(invalid) == 0 {
		return "Invalid request payload"
	}
	msgs := make([]string, 0, len(invalid))
	for _, fe := range invalid {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fe.Field()+" is required")
		case "email":
			msgs = append(msgs, fe.Field()+" must be a valid email address")
		case "min":
			msgs = append(msgs, fe.Field()+" is too short")
		default:
			msgs = append(msgs, fe.Field()+" is invalid")
		}
	}
	return strings.Join(msgs, "; ")
}
