package service

import (
	"errors"

	"viewtube/internal/api/dto"
	"viewtube/internal/model"
	"viewtube/pkg/utils"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameExists     = errors.New("username already taken")
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidCredential  = errors.New("invalid username or password")
	ErrInvalidRefresh     = errors.New("invalid refresh token")
	ErrWrongPassword      = errors.New("old password is incorrect")
	ErrMissingCredentials = errors.New("username or email is required")
)

type AuthService struct {
	userRepo UserRepo
}

func NewAuthService(userRepo UserRepo) *AuthService {
	return &AuthService{userRepo: userRepo}
}

// Register creates an account. Username and email must both be unused.
func (s *AuthService) Register(req *dto.RegisterRequest) (*dto.UserInfo, error) {
	exists, err := s.userRepo.ExistsByUsername(req.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUsernameExists
	}

	exists, err = s.userRepo.ExistsByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailExists
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		UserName: req.Username,
		Email:    req.Email,
		FullName: req.FullName,
		Password: hashedPassword,
		Avatar:   req.Avatar,
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUsernameExists
		}
		return nil, err
	}

	return toUserInfo(user), nil
}

// Login verifies credentials and issues an access/refresh token pair.
// Only the refresh token's hash is persisted.
func (s *AuthService) Login(req *dto.LoginRequest) (*dto.LoginData, error) {
	var (
		user *model.User
		err  error
	)
	switch {
	case req.Username != "":
		user, err = s.userRepo.GetByUsername(req.Username)
	case req.Email != "":
		user, err = s.userRepo.GetByEmail(req.Email)
	default:
		return nil, ErrMissingCredentials
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredential
		}
		return nil, err
	}

	if !utils.VerifyPassword(req.Password, user.Password) {
		return nil, ErrInvalidCredential
	}

	return s.issueTokens(user)
}

// Refresh rotates the refresh token and issues a new access token. The
// caller is identified by the token itself; no access token is required.
func (s *AuthService) Refresh(refreshToken string) (*dto.TokenData, error) {
	user, err := s.userRepo.GetByRefreshTokenHash(utils.HashToken(refreshToken))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidRefresh
		}
		return nil, err
	}

	data, err := s.issueTokens(user)
	if err != nil {
		return nil, err
	}
	return &dto.TokenData{AccessToken: data.AccessToken, RefreshToken: data.RefreshToken}, nil
}

// Logout invalidates the stored refresh token.
func (s *AuthService) Logout(userID int64) error {
	return s.userRepo.SetRefreshTokenHash(userID, "")
}

// ChangePassword verifies the old password before storing the new hash.
func (s *AuthService) ChangePassword(userID int64, req *dto.ChangePasswordRequest) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if !utils.VerifyPassword(req.OldPassword, user.Password) {
		return ErrWrongPassword
	}

	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	if _, err := s.userRepo.Update(userID, map[string]interface{}{"password": hashed}); err != nil {
		return err
	}
	// Force re-login on other sessions.
	return s.userRepo.SetRefreshTokenHash(userID, "")
}

// GetCurrentUser returns the authenticated user's own profile.
func (s *AuthService) GetCurrentUser(userID int64) (*dto.UserInfo, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return toUserInfo(user), nil
}

func (s *AuthService) issueTokens(user *model.User) (*dto.LoginData, error) {
	accessToken, err := utils.GenerateToken(user.ID)
	if err != nil {
		return nil, err
	}

	refreshToken, err := utils.GenerateRefreshToken()
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.SetRefreshTokenHash(user.ID, utils.HashToken(refreshToken)); err != nil {
		return nil, err
	}

	return &dto.LoginData{
		User:         toUserInfo(user),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
