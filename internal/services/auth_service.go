package services

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/panditashushukl/ESamaaj/internal/models"
	"github.com/panditashushukl/ESamaaj/internal/repository"
	"github.com/panditashushukl/ESamaaj/internal/storage"
	"github.com/panditashushukl/ESamaaj/internal/utils"
)

type RegisterInput struct {
	Username   string
	Email      string
	Password   string
	FullName   string
	Avatar     *FileUpload
	CoverImage *FileUpload
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type LoginResult struct {
	User   *models.User `json:"user"`
	Tokens TokenPair    `json:"tokens"`
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*models.User, error)
	Login(ctx context.Context, identifier, password string) (*LoginResult, error)
	Logout(ctx context.Context, caller models.Caller) error
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	Profile(ctx context.Context, caller models.Caller) (*models.User, error)
}

type authService struct {
	users repository.UserRepository
	store storage.Store
	jwt   *utils.JWTManager
}

func NewAuthService(users repository.UserRepository, store storage.Store, jwt *utils.JWTManager) AuthService {
	return &authService{users: users, store: store, jwt: jwt}
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.Username = strings.ToLower(strings.TrimSpace(in.Username))
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.FullName = strings.TrimSpace(in.FullName)

	if in.Username == "" || in.Email == "" || in.FullName == "" || in.Password == "" {
		return nil, utils.BadRequest("all fields are required")
	}
	if !utils.ValidEmail(in.Email) {
		return nil, utils.BadRequest("invalid email address")
	}
	if !utils.ValidPassword(in.Password) {
		return nil, utils.BadRequest("password must be 8+ characters with upper, lower, digit and special characters")
	}
	if in.Avatar == nil {
		return nil, utils.BadRequest("avatar file is required")
	}

	if _, err := s.users.FindByEmailOrUsername(ctx, in.Email, in.Username); err == nil {
		return nil, utils.Conflict("user with email or username already exists")
	}

	avatarKey := storage.NewKey(in.Username, in.Avatar.Name)
	avatar, err := s.store.Upload(ctx, avatarKey, in.Avatar.ContentType, in.Avatar.Data, nil)
	if err != nil {
		return nil, utils.Upstream("avatar upload failed")
	}

	coverURL := ""
	coverKey := ""
	if in.CoverImage != nil {
		coverKey = storage.NewKey(in.Username, in.CoverImage.Name)
		cover, err := s.store.Upload(ctx, coverKey, in.CoverImage.ContentType, in.CoverImage.Data, nil)
		if err != nil {
			_ = s.store.Delete(ctx, avatarKey)
			return nil, utils.Upstream("cover image upload failed")
		}
		coverURL = cover.URL
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, utils.Internal("internal server error")
	}

	user, err := s.users.Create(ctx, &models.User{
		Username:   in.Username,
		Email:      in.Email,
		Password:   string(hashed),
		FullName:   in.FullName,
		Avatar:     avatar.URL,
		CoverImage: coverURL,
	})
	if err != nil {
		// uploaded media would otherwise be orphaned
		_ = s.store.Delete(ctx, avatarKey)
		if coverKey != "" {
			_ = s.store.Delete(ctx, coverKey)
		}
		return nil, storeErr(err, "user not found")
	}
	return user, nil
}

func (s *authService) Login(ctx context.Context, identifier, password string) (*LoginResult, error) {
	identifier = strings.ToLower(strings.TrimSpace(identifier))
	if identifier == "" || password == "" {
		return nil, utils.BadRequest("username or email and password are required")
	}

	user, err := s.users.FindByEmailOrUsername(ctx, identifier, identifier)
	if err != nil {
		return nil, utils.Unauthorized("invalid credentials")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, utils.Unauthorized("invalid credentials")
	}

	access, _, err := s.jwt.GenerateAccessToken(user.ID.Hex(), user.Username, user.FullName, user.Avatar)
	if err != nil {
		return nil, utils.Internal("internal server error")
	}
	refresh, _, err := s.jwt.GenerateRefreshToken(user.ID.Hex())
	if err != nil {
		return nil, utils.Internal("internal server error")
	}
	if err := s.users.SetRefreshToken(ctx, user.ID, hashToken(refresh)); err != nil {
		return nil, storeErr(err, "user not found")
	}

	return &LoginResult{
		User:   user,
		Tokens: TokenPair{AccessToken: access, RefreshToken: refresh},
	}, nil
}

func (s *authService) Logout(ctx context.Context, caller models.Caller) error {
	if err := s.users.SetRefreshToken(ctx, caller.ID, ""); err != nil {
		return storeErr(err, "user not found")
	}
	return nil
}

// Refresh rotates the refresh token; the stored hash must match the
// presented token or the session is rejected.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	userIDHex, err := s.jwt.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, utils.Unauthorized("invalid refresh token")
	}
	userID, err := repository.ParseObjectID(userIDHex)
	if err != nil {
		return nil, utils.Unauthorized("invalid refresh token")
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, utils.Unauthorized("invalid refresh token")
	}
	if user.RefreshToken == "" || user.RefreshToken != hashToken(refreshToken) {
		return nil, utils.Unauthorized("refresh token revoked")
	}

	access, _, err := s.jwt.GenerateAccessToken(user.ID.Hex(), user.Username, user.FullName, user.Avatar)
	if err != nil {
		return nil, utils.Internal("internal server error")
	}
	newRefresh, _, err := s.jwt.GenerateRefreshToken(user.ID.Hex())
	if err != nil {
		return nil, utils.Internal("internal server error")
	}
	if err := s.users.SetRefreshToken(ctx, user.ID, hashToken(newRefresh)); err != nil {
		return nil, storeErr(err, "user not found")
	}
	return &TokenPair{AccessToken: access, RefreshToken: newRefresh}, nil
}

func (s *authService) Profile(ctx context.Context, caller models.Caller) (*models.User, error) {
	user, err := s.users.FindByID(ctx, caller.ID)
	if err != nil {
		return nil, storeErr(err, "user not found")
	}
	return user, nil
}
