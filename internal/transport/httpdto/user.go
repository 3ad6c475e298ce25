package httpdto

import "chatboard/internal/domain/user"

// UserCreateRequest is used for POST /users/
type UserCreateRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Nickname string `json:"nickname" binding:"required,notblank,max=255"`
	Password string `json:"password" binding:"required,maxbytes=72"`
}

// UserResponse is the public profile returned for a user. It has no
// password field.
type UserResponse struct {
	ID        uint    `json:"id"`
	Email     string  `json:"email"`
	Nickname  string  `json:"nickname"`
	AvatarURL *string `json:"avatar_url"`
}

func NewUserResponse(p user.Profile) UserResponse {
	return UserResponse{
		ID:        p.ID,
		Email:     p.Email,
		Nickname:  p.Nickname,
		AvatarURL: p.AvatarURL,
	}
}
