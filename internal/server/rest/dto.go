package rest

import (
	"time"

	"github.com/dmitrijs2005/gophauth/internal/server/models"
)

type signupRequest struct {
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
	Password string `json:"password"`
}

type loginRequest struct {
	NickOrEmail string `json:"nick_or_email"`
	Password    string `json:"password"`
}

type tokenRequest struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
}

type okMsg struct {
	Detail string `json:"detail"`
	Msg    string `json:"msg"`
}

var okResponse = okMsg{Detail: "This msg means, that all is OK", Msg: "OK"}

type errorResponse struct {
	Detail string `json:"detail"`
}

type userSettings struct {
	Nickname string `json:"nickname"`
	Email    string `json:"email"`
}

// Password hashes never leave the server.
type accountResponse struct {
	ID        string    `json:"id"`
	Nickname  string    `json:"nickname"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func toAccountResponses(list []*models.Account) []accountResponse {
	out := make([]accountResponse, 0, len(list))
	for _, a := range list {
		out = append(out, accountResponse{ID: a.ID, Nickname: a.Nickname, Email: a.Email, CreatedAt: a.CreatedAt})
	}
	return out
}

func toPendingResponses(list []*models.PendingAccount) []accountResponse {
	out := make([]accountResponse, 0, len(list))
	for _, p := range list {
		out = append(out, accountResponse{ID: p.ID, Nickname: p.Nickname, Email: p.Email, CreatedAt: p.CreatedAt})
	}
	return out
}
