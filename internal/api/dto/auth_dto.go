package dto

// RegisterRequest is the account creation payload.
type RegisterRequest struct {
	Username string  `json:"username" binding:"required,min=1,max=255"`
	Email    string  `json:"email" binding:"required,email,max=255"`
	FullName string  `json:"full_name" binding:"required,min=1,max=255"`
	Password string  `json:"password" binding:"required,min=6,max=72"`
	Avatar   *string `json:"avatar" binding:"omitempty,max=500"`
}

// LoginRequest accepts either username or email.
type LoginRequest struct {
	Username string `json:"username" binding:"omitempty,max=255"`
	Email    string `json:"email" binding:"omitempty,email,max=255"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6,max=72"`
}

// LoginData is returned on successful login.
type LoginData struct {
	User         *UserInfo `json:"user"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
}

// TokenData is returned on token refresh.
type TokenData struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
