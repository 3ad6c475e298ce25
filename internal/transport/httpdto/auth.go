package httpdto

// TokenRequest is the OAuth2 password-grant form posted to /token.
// username carries the email.
type TokenRequest struct {
	GrantType string `form:"grant_type" binding:"omitempty,eq=password"`
	Username  string `form:"username" binding:"required"`
	Password  string `form:"password" binding:"required"`
	Scope     string `form:"scope"`
}

// TokenResponse is returned after a successful login
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
