// Package dto はauthフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

// RegisterReq は/registerエンドポイントのリクエストボディを表します。
// 必須フィールド、メール形式、パスワード長のバリデーションを含みます。
type RegisterReq struct {
	Name      string  `json:"name" binding:"required"`
	Email     string  `json:"email" binding:"required,email"`
	Password  string  `json:"password" binding:"required,min=8"`
	PANNumber *string `json:"pan_number"`
	Phone     *string `json:"phone"`
}
