package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/iaejotape/overflow-client/internal/model"
)

// Login exchanges credentials for a session payload. No auth header: the
// call itself establishes the session.
func (c *Client) Login(ctx context.Context, username, password string) (model.LoginResponse, error) {
	var out model.LoginResponse
	req := model.LoginRequest{Username: username, Password: password}
	if err := c.do(ctx, http.MethodPost, "/auth/login/", req, &out, false); err != nil {
		return model.LoginResponse{}, err
	}
	return out, nil
}

// Signup registers a new account and returns the created user.
func (c *Client) Signup(ctx context.Context, req model.SignupRequest) (model.User, error) {
	var out model.User
	if err := c.do(ctx, http.MethodPost, "/auth/cadastro/", req, &out, false); err != nil {
		return model.User{}, err
	}
	return out, nil
}

// ListQuestions returns the public question list.
func (c *Client) ListQuestions(ctx context.Context) ([]model.Question, error) {
	var out []model.Question
	if err := c.do(ctx, http.MethodGet, "/questoes/listar/", nil, &out, false); err != nil {
		return nil, err
	}
	return out, nil
}

// GetQuestion returns one question by id.
func (c *Client) GetQuestion(ctx context.Context, id int64) (model.Question, error) {
	var out model.Question
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/questoes/%d/", id), nil, &out, false); err != nil {
		return model.Question{}, err
	}
	return out, nil
}

// CreateQuestion creates a question. Requires auth.
func (c *Client) CreateQuestion(ctx context.Context, in model.QuestionInput) (model.Question, error) {
	var out model.Question
	if err := c.do(ctx, http.MethodPost, "/questoes/criar/", in, &out, true); err != nil {
		return model.Question{}, err
	}
	return out, nil
}

// UpdateQuestion patches an existing question. Requires auth.
func (c *Client) UpdateQuestion(ctx context.Context, id int64, in model.QuestionInput) (model.Question, error) {
	var out model.Question
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/questoes/%d/atualizar/", id), in, &out, true); err != nil {
		return model.Question{}, err
	}
	return out, nil
}

// DeleteQuestion removes a question. Requires auth.
func (c *Client) DeleteQuestion(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/questoes/%d/deletar/", id), nil, nil, true)
}
