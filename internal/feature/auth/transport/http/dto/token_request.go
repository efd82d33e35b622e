package dto

import "strings"

// TokenReq は/tokenエンドポイントのリクエストです。
// OAuth2パスワードフローのフォーム（username/password）とJSON（email/password）の両方を受け付けます。
type TokenReq struct {
	Username string `form:"username" json:"username"`
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password" binding:"required"`
}

// Login returns the email to authenticate with; username wins when both are sent.
func (r TokenReq) Login() string {
	if s := strings.TrimSpace(r.Username); s != "" {
		return s
	}
	return strings.TrimSpace(r.Email)
}
