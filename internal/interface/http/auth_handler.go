package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/zagroshq/cmms-api/config"
	"github.com/zagroshq/cmms-api/internal/application/user"
	"github.com/zagroshq/cmms-api/internal/domain/entity"
	"github.com/zagroshq/cmms-api/internal/interface/middleware"
	"github.com/zagroshq/cmms-api/pkg/helpers"
	"github.com/zagroshq/cmms-api/pkg/response"
	"github.com/zagroshq/cmms-api/pkg/validation"
)

func sessionKey(userID string) string { return "user:session:" + userID }

// AuthHandler owns the cookie-session based login flow. A login issues a JWT
// pair bound to a session id and records the session hash in Redis; the auth
// middleware rejects tokens whose sid no longer matches the hash.
type AuthHandler struct {
	Register     *user.RegisterUserHandler
	Authenticate *user.AuthenticateHandler
	GetByID      *user.GetByIDHandler
	RDB          *redis.Client
	JWT          *helpers.JWTManager
	Cookies      *helpers.Manager
	Logger       *logrus.Logger
	Cfg          *config.Config
}

func NewAuthHandler(register *user.RegisterUserHandler, authenticate *user.AuthenticateHandler, getByID *user.GetByIDHandler, rdb *redis.Client, jwt *helpers.JWTManager, cookies *helpers.Manager, logger *logrus.Logger, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		Register:     register,
		Authenticate: authenticate,
		GetByID:      getByID,
		RDB:          rdb,
		JWT:          jwt,
		Cookies:      cookies,
		Logger:       logger,
		Cfg:          cfg,
	}
}

type registerRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,pwd"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Phone     string `json:"phone"`
}

// RegisterUser POST /api/auth/register
func (h *AuthHandler) RegisterUser(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", validation.ToDetails(err))
		return
	}
	id, err := h.Register.Handle(c.Request.Context(), user.RegisterUserCommand{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"id": id}, "user registered", nil)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", validation.ToDetails(err))
		return
	}
	u, err := h.Authenticate.Handle(c.Request.Context(), user.AuthenticateQuery{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "invalid credentials", nil)
		return
	}
	if err := h.issueSession(c, u); err != nil {
		response.Error(c, http.StatusInternalServerError, "could not start session", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"user_id": u.ID,
		"email":   u.Email.String(),
		"name":    u.FullName(),
		"roles":   u.Roles(),
	}, "login successful", nil)
}

// issueSession generates the token pair, stores the session hash and sets
// both cookies. Storing a fresh session id invalidates any previous session
// for the same user.
func (h *AuthHandler) issueSession(c *gin.Context, u *entity.User) error {
	sid := uuid.NewString()
	roles := u.Roles()

	access, aexp, err := h.JWT.GenerateAccessToken(u.ID, sid, roles)
	if err != nil {
		h.Logger.WithError(err).WithField("user_id", u.ID).Error("generate access token failed")
		return err
	}
	refresh, rexp, err := h.JWT.GenerateRefreshToken(u.ID, sid)
	if err != nil {
		h.Logger.WithError(err).WithField("user_id", u.ID).Error("generate refresh token failed")
		return err
	}

	if h.RDB != nil {
		rolesJSON, _ := json.Marshal(roles)
		key := sessionKey(u.ID)
		fields := map[string]any{
			"session_id": sid,
			"user_id":    u.ID,
			"email":      u.Email.String(),
			"name":       u.FullName(),
			"roles":      string(rolesJSON),
			"created_at": time.Now().UTC().Format(time.RFC3339Nano),
		}
		pipe := h.RDB.Pipeline()
		pipe.HSet(c.Request.Context(), key, fields)
		pipe.Expire(c.Request.Context(), key, h.JWT.RefreshTTL)
		if _, err := pipe.Exec(c.Request.Context()); err != nil {
			h.Logger.WithError(err).WithField("key", key).Warn("session write failed")
		}
	}

	h.Cookies.SetPair(c, access, aexp, refresh, rexp)
	return nil
}

// RefreshToken POST /api/auth/refresh
// Rotates the token pair from the refresh cookie. The session hash must still
// exist and carry the same sid; roles are re-read from storage so a role
// change takes effect at the next refresh.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	tokenStr, err := c.Cookie("refresh_token")
	if err != nil || tokenStr == "" {
		response.Error(c, http.StatusUnauthorized, "missing refresh token", nil)
		return
	}
	claims, err := h.JWT.ParseRefreshToken(tokenStr)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "invalid refresh token", nil)
		return
	}

	if h.RDB != nil {
		data, err := h.RDB.HGetAll(c.Request.Context(), sessionKey(claims.UserID)).Result()
		if err != nil || len(data) == 0 || data["session_id"] != claims.SessionID {
			h.Cookies.Clear(c)
			response.Error(c, http.StatusUnauthorized, "session expired", nil)
			return
		}
	}

	dto, err := h.GetByID.Handle(c.Request.Context(), user.GetByIDQuery{UserID: claims.UserID})
	if err != nil {
		h.Cookies.Clear(c)
		response.Error(c, http.StatusUnauthorized, "session expired", nil)
		return
	}

	access, aexp, err := h.JWT.GenerateAccessToken(claims.UserID, claims.SessionID, dto.Roles)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "could not refresh session", nil)
		return
	}
	refresh, rexp, err := h.JWT.GenerateRefreshToken(claims.UserID, claims.SessionID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "could not refresh session", nil)
		return
	}

	if h.RDB != nil {
		if err := h.RDB.Expire(c.Request.Context(), sessionKey(claims.UserID), h.JWT.RefreshTTL).Err(); err != nil {
			h.Logger.WithError(err).Warn("session ttl extend failed")
		}
	}

	h.Cookies.SetPair(c, access, aexp, refresh, rexp)
	response.Success(c, http.StatusOK, gin.H{"user_id": claims.UserID}, "token refreshed", nil)
}

// Logout POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	if uid != "" && h.RDB != nil {
		if err := h.RDB.Del(c.Request.Context(), sessionKey(uid)).Err(); err != nil {
			h.Logger.WithError(err).WithField("user_id", uid).Warn("session delete failed")
		}
	}
	h.Cookies.Clear(c)
	response.Success(c, http.StatusOK, gin.H{}, "logged out", nil)
}

// Me GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	dto, err := h.GetByID.Handle(c.Request.Context(), user.GetByIDQuery{UserID: uid})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, dto, "profile", nil)
}
