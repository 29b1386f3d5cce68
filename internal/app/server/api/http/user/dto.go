package user

import "time"

type loginInput struct {
	Body LoginRequest
}

type LoginRequest struct {
	Email    string `json:"email" format:"email" minLength:"3" maxLength:"254" example:"sindico@condo.com"`
	Password string `json:"password" minLength:"1"`
}

type loginOutput struct {
	Body LoginResponse
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      Profile   `json:"user"`
}

type Profile struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	ProfileID string `json:"profileId,omitempty"`
}
