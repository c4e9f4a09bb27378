package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/fretops/fretops-api/internal/store"
	"github.com/fretops/fretops-api/pkg/helpers"
	"github.com/fretops/fretops-api/pkg/response"
	"github.com/fretops/fretops-api/pkg/validation"
)

// AuthHandler manages accounts through the utilisateurs store and issues JWT
// pairs carried in cookies.
type AuthHandler struct {
	Users   *store.Store
	JWT     *helpers.JWTManager
	Redis   *redis.Client
	Logger  *logrus.Logger
	Cookies *helpers.CookieManager
}

func NewAuthHandler(users *store.Store, jwt *helpers.JWTManager, rdb *redis.Client, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		Users:   users,
		JWT:     jwt,
		Redis:   rdb,
		Logger:  logger,
		Cookies: helpers.NewCookie(cookieDomain, cookieSecure),
	}
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
	Nom      string `json:"nom"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// stripPassword removes the hash from records before they leave the API.
func stripPassword(data interface{}) interface{} {
	rec, isRec := data.(store.Record)
	if !isRec {
		return data
	}
	out := rec.Clone()
	delete(out, "password")
	return out
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "payload invalide", validation.ToDetails(err))
		return
	}

	res := h.Users.Create(c.Request.Context(), store.Record{
		"email":    req.Email,
		"password": req.Password,
		"nom":      req.Nom,
	})
	if !res.Success {
		var details interface{} = string(res.Code)
		if res.Code == store.CodeValidationFailed {
			details = res.Reasons
		}
		response.Error[any](c, statusFor(res, 0), res.Message, details)
		return
	}
	response.Success(c, http.StatusCreated, stripPassword(res.Data), "compte créé avec succès", nil)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "payload invalide", validation.ToDetails(err))
		return
	}

	user, err := h.Users.Collection().FindOne(c.Request.Context(), bson.M{"email": req.Email})
	if err != nil {
		response.Error[any](c, http.StatusUnauthorized, "identifiants invalides", nil)
		return
	}
	hash, _ := user["password"].(string)
	if !helpers.CompareHashAndPassword(hash, req.Password) {
		response.Error[any](c, http.StatusUnauthorized, "identifiants invalides", nil)
		return
	}

	uid := ""
	if oid, isOID := user["_id"].(primitive.ObjectID); isOID {
		uid = oid.Hex()
	}

	access, aexp, err := h.JWT.GenerateAccessToken(uid)
	if err != nil {
		h.Logger.WithError(err).Error("generate access token failed")
		response.Error[any](c, http.StatusInternalServerError, "erreur interne du serveur", nil)
		return
	}
	refresh, rexp, err := h.JWT.GenerateRefreshToken(uid)
	if err != nil {
		h.Logger.WithError(err).Error("generate refresh token failed")
		response.Error[any](c, http.StatusInternalServerError, "erreur interne du serveur", nil)
		return
	}

	if h.Redis != nil {
		key := "user:session:" + uid
		fields := map[string]any{
			"user_id":   uid,
			"email":     req.Email,
			"logged_in": true,
		}
		pipe := h.Redis.Pipeline()
		pipe.HSet(c.Request.Context(), key, fields)
		pipe.Expire(c.Request.Context(), key, 24*time.Hour)
		if _, rErr := pipe.Exec(c.Request.Context()); rErr != nil {
			h.Logger.WithError(rErr).Warn("redis session write failed")
		}
	}

	h.Cookies.SetPair(c, access, aexp, refresh, rexp)
	response.Success(c, http.StatusOK, stripPassword(user), "connexion réussie", map[string]any{
		"access_expires_at":  aexp,
		"refresh_expires_at": rexp,
	})
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	refresh, err := c.Cookie("refresh_token")
	if err != nil || refresh == "" {
		response.Error[any](c, http.StatusUnauthorized, "jeton de rafraîchissement manquant", nil)
		return
	}
	claims, err := h.JWT.ParseRefreshToken(refresh)
	if err != nil {
		response.Error[any](c, http.StatusUnauthorized, "jeton de rafraîchissement invalide", nil)
		return
	}

	access, aexp, err := h.JWT.GenerateAccessToken(claims.UserID)
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "erreur interne du serveur", nil)
		return
	}
	newRefresh, rexp, err := h.JWT.GenerateRefreshToken(claims.UserID)
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "erreur interne du serveur", nil)
		return
	}

	h.Cookies.SetPair(c, access, aexp, newRefresh, rexp)
	response.Success[any](c, http.StatusOK, map[string]any{"refreshed": true}, "jeton renouvelé", map[string]any{
		"access_expires_at":  aexp,
		"refresh_expires_at": rexp,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if h.Redis != nil {
		if uid := c.GetString("userID"); uid != "" {
			_ = h.Redis.Del(c.Request.Context(), "user:session:"+uid).Err()
		}
	}
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, map[string]any{"logged_out": true}, "déconnexion réussie", nil)
}

func (h *AuthHandler) Profile(c *gin.Context) {
	uid := c.GetString("userID")
	res := h.Users.FindByID(c.Request.Context(), uid)
	if !res.Success {
		response.Error[any](c, statusFor(res, 0), res.Message, string(res.Code))
		return
	}
	response.Success(c, http.StatusOK, stripPassword(res.Data), "profil", nil)
}
