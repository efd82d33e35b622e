// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"brokerage_backend/internal/api"
	"brokerage_backend/internal/feature/auth/domain"
	"brokerage_backend/internal/feature/auth/domain/entity"
	"brokerage_backend/internal/feature/auth/transport/http/dto"
	"brokerage_backend/internal/feature/auth/usecase"
	jwtmw "brokerage_backend/internal/platform/jwt"
)

// tokenTypeBearer is the token_type returned by /token.
const tokenTypeBearer = "bearer"

// AuthUsecase は認証・プロフィール操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Register は新規ユーザーを登録します。
	Register(ctx context.Context, in usecase.RegisterInput) (*entity.User, error)
	// Login はユーザーを認証し、成功時にJWTトークンを返します。
	Login(ctx context.Context, email, password string) (string, error)
	// Resolve はトークンのユーザーIDからアクティブなユーザーを取得します。
	Resolve(ctx context.Context, userID uint) (*entity.User, error)
	UpdateProfile(ctx context.Context, userID uint, upd usecase.ProfileUpdate) (*entity.User, error)
	AddFunds(ctx context.Context, userID uint, amount float64) (*entity.User, error)
}

// AuthHandler は認証とユーザープロフィールのHTTPリクエストを処理します。
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register はユーザー登録APIエンドポイントを処理します。
// - バリデーションエラー時は400を返却
// - メール重複時は400 DUPLICATE_EMAILを返却
// - 成功時はユーザー情報付きで201を返却
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("register validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.NewError(api.CodeValidation, err.Error()))
		return
	}
	user, err := h.auth.Register(c.Request.Context(), usecase.RegisterInput{
		Name:      req.Name,
		Email:     req.Email,
		Password:  req.Password,
		PANNumber: req.PANNumber,
		Phone:     req.Phone,
	})
	if err != nil {
		slog.Warn("register failed", "error", err, "remote_addr", c.ClientIP())
		writeError(c, err)
		return
	}
	slog.Info("user registered", "user_id", user.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, dto.NewUserRes(user))
}

// Token はログインAPIエンドポイントを処理します。
// フォーム送信（username/password）とJSON（email/password）のどちらも受け付けます。
func (h *AuthHandler) Token(c *gin.Context) {
	var req dto.TokenReq
	if err := c.ShouldBind(&req); err != nil || req.Login() == "" {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.NewError(api.CodeValidation, "username and password are required"))
		return
	}
	token, err := h.auth.Login(c.Request.Context(), req.Login(), req.Password)
	if err != nil {
		// ユーザー列挙攻撃を防止するため、未登録とパスワード誤りを区別しない
		slog.Warn("login failed", "error", err, "remote_addr", c.ClientIP())
		writeError(c, err)
		return
	}
	slog.Info("user login successful", "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.TokenResponse{AccessToken: token, TokenType: tokenTypeBearer})
}

// ActiveUser はトークンのユーザーが存在し、かつ有効であることを確認するミドルウェアです。
// jwtmw.AuthRequired の後ろに置きます。
func (h *AuthHandler) ActiveUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := jwtmw.UserIDFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.NewError(api.CodeUnauthenticated, "not authenticated"))
			return
		}
		if _, err := h.auth.Resolve(c.Request.Context(), userID); err != nil {
			slog.Warn("token user rejected", "error", err, "user_id", userID, "remote_addr", c.ClientIP())
			writeError(c, err)
			c.Abort()
			return
		}
		c.Next()
	}
}

// Me は認証済みユーザーの情報を返します。
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := jwtmw.UserIDFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.NewError(api.CodeUnauthenticated, "not authenticated"))
		return
	}
	user, err := h.auth.Resolve(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserRes(user))
}

// UpdateMe はプロフィールの部分更新を行います。
func (h *AuthHandler) UpdateMe(c *gin.Context) {
	userID, ok := jwtmw.UserIDFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.NewError(api.CodeUnauthenticated, "not authenticated"))
		return
	}
	var req dto.UpdateProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("profile validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.NewError(api.CodeValidation, err.Error()))
		return
	}
	user, err := h.auth.UpdateProfile(c.Request.Context(), userID, usecase.ProfileUpdate{
		Name:      req.Name,
		Email:     req.Email,
		PANNumber: req.PANNumber,
		Phone:     req.Phone,
	})
	if err != nil {
		slog.Warn("profile update failed", "error", err, "user_id", userID, "remote_addr", c.ClientIP())
		writeError(c, err)
		return
	}
	slog.Info("profile updated", "user_id", userID)
	c.JSON(http.StatusOK, dto.NewUserRes(user))
}

// AddFunds は残高への入金を処理します。
func (h *AuthHandler) AddFunds(c *gin.Context) {
	userID, ok := jwtmw.UserIDFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.NewError(api.CodeUnauthenticated, "not authenticated"))
		return
	}
	var req dto.FundsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("funds validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.NewError(api.CodeValidation, err.Error()))
		return
	}
	user, err := h.auth.AddFunds(c.Request.Context(), userID, *req.Amount)
	if err != nil {
		slog.Warn("add funds failed", "error", err, "user_id", userID, "remote_addr", c.ClientIP())
		writeError(c, err)
		return
	}
	slog.Info("funds added", "user_id", userID, "amount", *req.Amount)
	c.JSON(http.StatusOK, dto.NewUserRes(user))
}

// writeError はドメインエラーをHTTPステータスとエラーコードに変換します。
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusBadRequest, api.NewError(api.CodeValidation, err.Error()))
	case errors.Is(err, domain.ErrInvalidAmount):
		c.JSON(http.StatusBadRequest, api.NewError(api.CodeInvalidAmount, err.Error()))
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		c.JSON(http.StatusBadRequest, api.NewError(api.CodeDuplicateEmail, err.Error()))
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, api.NewError(api.CodeInvalidCredentials, err.Error()))
	case errors.Is(err, domain.ErrUserNotFound):
		// トークンは正しいがユーザーが消えている
		c.JSON(http.StatusUnauthorized, api.NewError(api.CodeUnauthenticated, "could not validate credentials"))
	case errors.Is(err, domain.ErrInactiveUser):
		c.JSON(http.StatusBadRequest, api.NewError(api.CodeInactiveUser, err.Error()))
	default:
		slog.Error("unexpected auth failure", "error", err, "path", c.FullPath())
		c.JSON(http.StatusInternalServerError, api.Internal())
	}
}
