// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"brokerage_backend/internal/feature/auth/domain"
	"brokerage_backend/internal/feature/auth/domain/entity"
)

const (
	// minPasswordLength はパスワードの最低文字数を定義します。
	minPasswordLength = 8
)

// dummyHash は存在しないユーザーでもbcrypt比較を行うためのハッシュです。
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーをストレージに永続化します。
	// 同じメールアドレスのユーザーが既に存在する場合、domain.ErrEmailAlreadyExistsを返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail は指定されたメールアドレスに一致するユーザーを取得します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID は指定されたIDに一致するユーザーを取得します。
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// UpdateFields は指定されたカラムのみを更新します。
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error

	// IncrementBalance は残高に amount を加算します（単一のUPDATE文で実行）。
	IncrementBalance(ctx context.Context, id uint, amount float64) error
}

// JWTGenerator はJWTトークン生成のインターフェースを定義します。
type JWTGenerator interface {
	// GenerateToken は指定されたユーザーの署名済みJWTトークンを生成します。
	GenerateToken(userID uint, email string) (string, error)
}

// RegisterInput は新規登録の入力です。
type RegisterInput struct {
	Name      string
	Email     string
	Password  string
	PANNumber *string
	Phone     *string
}

// ProfileUpdate は部分更新の入力です。nilのフィールドは変更しません。
type ProfileUpdate struct {
	Name      *string
	Email     *string
	PANNumber *string
	Phone     *string
}

// AuthUsecase は認証・プロフィール・入金のビジネスロジックを実装します。
type AuthUsecase struct {
	users        UserRepository
	jwtGenerator JWTGenerator
}

// NewAuthUsecase はAuthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(users UserRepository, jwtGenerator JWTGenerator) *AuthUsecase {
	return &AuthUsecase{
		users:        users,
		jwtGenerator: jwtGenerator,
	}
}

// validatePassword はパスワードがセキュリティ要件を満たしているかチェックします。
func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters long", domain.ErrValidation, minPasswordLength)
	}
	return nil
}

// Register はハッシュ化されたパスワードで新規ユーザーを登録します。
func (u *AuthUsecase) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if err := validatePassword(in.Password); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user := &entity.User{
		Name:      name,
		Email:     strings.TrimSpace(in.Email),
		Password:  string(hashed),
		PANNumber: in.PANNumber,
		Phone:     in.Phone,
		IsActive:  true,
	}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate はメールアドレスとパスワードを検証し、ユーザーを返します。
// タイミング攻撃を防止するため、ユーザーが存在しない場合でもbcrypt比較を実行します。
func (u *AuthUsecase) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	user, err := u.users.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	passwordHash := dummyHash
	if err == nil {
		passwordHash = user.Password
	}
	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))

	if err != nil || compareErr != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, domain.ErrInactiveUser
	}
	return user, nil
}

// Login はユーザーを認証し、成功時にJWTトークンを返します。
func (u *AuthUsecase) Login(ctx context.Context, email, password string) (string, error) {
	user, err := u.Authenticate(ctx, email, password)
	if err != nil {
		return "", err
	}

	token, err := u.jwtGenerator.GenerateToken(user.ID, user.Email)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}

// Resolve は検証済みトークンのユーザーIDからアクティブなユーザーを取得します。
func (u *AuthUsecase) Resolve(ctx context.Context, userID uint) (*entity.User, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, domain.ErrInactiveUser
	}
	return user, nil
}

// UpdateProfile は指定されたフィールドのみ更新し、更新後のユーザーを返します。
func (u *AuthUsecase) UpdateProfile(ctx context.Context, userID uint, upd ProfileUpdate) (*entity.User, error) {
	fields := map[string]interface{}{}
	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name must not be empty", domain.ErrValidation)
		}
		fields["name"] = name
	}
	if upd.Email != nil {
		email := strings.TrimSpace(*upd.Email)
		if email == "" {
			return nil, fmt.Errorf("%w: email must not be empty", domain.ErrValidation)
		}
		fields["email"] = email
	}
	if upd.PANNumber != nil {
		fields["pan_number"] = *upd.PANNumber
	}
	if upd.Phone != nil {
		fields["phone"] = *upd.Phone
	}

	if len(fields) > 0 {
		if err := u.users.UpdateFields(ctx, userID, fields); err != nil {
			return nil, err
		}
	}
	return u.users.FindByID(ctx, userID)
}

// AddFunds は残高に入金額を加算し、更新後のユーザーを返します。
func (u *AuthUsecase) AddFunds(ctx context.Context, userID uint, amount float64) (*entity.User, error) {
	if !(amount > 0) || math.IsInf(amount, 0) {
		return nil, domain.ErrInvalidAmount
	}
	if err := u.users.IncrementBalance(ctx, userID, amount); err != nil {
		return nil, err
	}
	return u.users.FindByID(ctx, userID)
}
