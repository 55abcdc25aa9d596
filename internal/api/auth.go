package api

// RegisterRequest carries identity and consent fields for sign-up.
type RegisterRequest struct {
	Firstname            string `json:"firstname"`
	Lastname             string `json:"lastname"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	ConfirmPassword      string `json:"confirmPassword,omitempty"`
	RGPDAccepted         bool   `json:"rgpdAccepted"`
	CommercialUseConsent bool   `json:"commercialUseConsent"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type LogoutRequest struct {
	AccessToken  string `json:"accessToken,omitempty"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

// TokenResponse is what register, login and refresh-token return.
// Token is the legacy spelling of AccessToken.
type TokenResponse struct {
	AccessToken  string `json:"accessToken,omitempty"`
	Token        string `json:"token,omitempty"`
	RefreshToken string `json:"refreshToken,omitempty"`
	TokenType    string `json:"tokenType,omitempty"`
	// ExpiresIn is the access token lifetime in milliseconds.
	ExpiresIn int64  `json:"expiresIn,omitempty"`
	Message   string `json:"message,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
}

// ErrorResponse is the error envelope of every non-2xx answer.
type ErrorResponse struct {
	Message   string `json:"message"`
	Code      int    `json:"code"`
	Timestamp int64  `json:"timestamp"`
}

type Profile struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Role      string `json:"role"`
}
