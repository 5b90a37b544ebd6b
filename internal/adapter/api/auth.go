package api

import (
	"context"
	"net/http"

	"sfa-bank-client/internal/core/ports"
)

// AuthClient implements ports.AuthAPI against the /auth resource.
type AuthClient struct {
	c *Client
}

func NewAuthClient(c *Client) *AuthClient {
	return &AuthClient{c: c}
}

// The register/login bodies are snake_case on the wire.
type registerBody struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	FullName    string `json:"full_name"`
	PhoneNumber string `json:"phone_number"`
}

type loginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type messageBody struct {
	Message string `json:"message"`
}

func (a *AuthClient) Register(ctx context.Context, req ports.RegisterRequest) (*ports.AuthResult, error) {
	body := registerBody{
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
	}
	var w wireAuthResult
	if err := a.c.do(ctx, http.MethodPost, "/auth/register", body, &w, "Registration failed. Please try again."); err != nil {
		return nil, err
	}
	return &ports.AuthResult{User: w.User.toDomain(), Token: w.Token}, nil
}

func (a *AuthClient) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	var w wireAuthResult
	if err := a.c.do(ctx, http.MethodPost, "/auth/login", loginBody{Email: email, Password: password}, &w, "Login failed. Please try again."); err != nil {
		return nil, err
	}
	return &ports.AuthResult{User: w.User.toDomain(), Token: w.Token}, nil
}

func (a *AuthClient) ForgotPassword(ctx context.Context, email string) (string, error) {
	body := map[string]string{"email": email}
	var resp messageBody
	if err := a.c.do(ctx, http.MethodPost, "/auth/forgot-password", body, &resp, "Could not send the reset email. Please try again."); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (a *AuthClient) ResetPassword(ctx context.Context, token, newPassword string) (string, error) {
	body := map[string]string{"token": token, "new_password": newPassword}
	var resp messageBody
	if err := a.c.do(ctx, http.MethodPost, "/auth/reset-password", body, &resp, "Password reset failed. Please try again."); err != nil {
		return "", err
	}
	return resp.Message, nil
}
