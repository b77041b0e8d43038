package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/gorilla/mux"
)

// Service is the registration workflow as seen by the HTTP layer.
type Service interface {
	Signup(ctx context.Context, email, nickname, password string) (*models.PendingAccount, error)
	Confirm(ctx context.Context, pendingID string) (*models.Token, error)
	Login(ctx context.Context, nicknameOrEmail, password string) (*models.Token, error)
	RefreshToken(ctx context.Context, token string) (*models.Token, error)
	Me(ctx context.Context, token string) (*models.Account, error)
	ListAccounts(ctx context.Context, offset, limit int) ([]*models.Account, error)
	ListPending(ctx context.Context, offset, limit int) ([]*models.PendingAccount, error)
	DeleteAccountByNickname(ctx context.Context, nickname string) error
}

// DefaultLimit is used when a listing request has no limit parameter.
const DefaultLimit = 100

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.StrictSlash(true)

	r.HandleFunc("/", s.root).Methods(http.MethodGet)

	admin := r.NewRoute().Subrouter()
	admin.Use(s.adminOnly)
	admin.HandleFunc("/users/", s.listAccounts).Methods(http.MethodGet)
	admin.HandleFunc("/users/unconfirmed/", s.listPending).Methods(http.MethodGet)
	admin.HandleFunc("/users/delete/", s.deleteAccountQuery).Methods(http.MethodGet)
	admin.HandleFunc("/users/{nickname}", s.deleteAccount).Methods(http.MethodDelete)

	r.HandleFunc("/users/create/", s.signup).Methods(http.MethodPost)
	r.HandleFunc("/users/login/", s.login).Methods(http.MethodPost)
	r.HandleFunc("/users/token_update/", s.refreshToken).Methods(http.MethodPost)
	r.HandleFunc("/email/registration/{id}", s.confirm).Methods(http.MethodGet)
	r.HandleFunc("/me/", s.meBearer).Methods(http.MethodGet)
	r.HandleFunc("/me/", s.meBody).Methods(http.MethodPost)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{Detail: "Not Found"})
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Detail: "Method Not Allowed"})
	})

	return r
}

func (s *Server) root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}

func (s *Server) signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if !decode(w, r, &req) {
		return
	}

	if _, err := s.svc.Signup(r.Context(), req.Email, req.Nickname, req.Password); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, okResponse)
}

func (s *Server) confirm(w http.ResponseWriter, r *http.Request) {
	tok, err := s.svc.Confirm(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tok)
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decode(w, r, &req) {
		return
	}

	tok, err := s.svc.Login(r.Context(), req.NickOrEmail, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tok)
}

func (s *Server) refreshToken(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if !decode(w, r, &req) {
		return
	}

	tok, err := s.svc.RefreshToken(r.Context(), req.AccessToken)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tok)
}

func (s *Server) meBearer(w http.ResponseWriter, r *http.Request) {
	token, ok := bearerToken(r)
	if !ok {
		writeError(w, common.ErrMalformedToken)
		return
	}
	s.writeMe(w, r, token)
}

func (s *Server) meBody(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if !decode(w, r, &req) {
		return
	}
	s.writeMe(w, r, req.AccessToken)
}

func (s *Server) writeMe(w http.ResponseWriter, r *http.Request, token string) {
	a, err := s.svc.Me(r.Context(), token)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, userSettings{Nickname: a.Nickname, Email: a.Email})
}

func (s *Server) listAccounts(w http.ResponseWriter, r *http.Request) {
	offset, limit, ok := pageParams(w, r)
	if !ok {
		return
	}

	list, err := s.svc.ListAccounts(r.Context(), offset, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toAccountResponses(list))
}

func (s *Server) listPending(w http.ResponseWriter, r *http.Request) {
	offset, limit, ok := pageParams(w, r)
	if !ok {
		return
	}

	list, err := s.svc.ListPending(r.Context(), offset, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPendingResponses(list))
}

func (s *Server) deleteAccount(w http.ResponseWriter, r *http.Request) {
	s.writeDelete(w, r, mux.Vars(r)["nickname"])
}

func (s *Server) deleteAccountQuery(w http.ResponseWriter, r *http.Request) {
	s.writeDelete(w, r, r.URL.Query().Get("nickname"))
}

func (s *Server) writeDelete(w http.ResponseWriter, r *http.Request, nickname string) {
	if err := s.svc.DeleteAccountByNickname(r.Context(), nickname); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, okResponse)
}

// --- helpers below ---

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Detail: "request body is not valid JSON"})
		return false
	}
	return true
}

// pageParams reads skip and limit, defaulting to 0 and DefaultLimit.
func pageParams(w http.ResponseWriter, r *http.Request) (int, int, bool) {
	q := r.URL.Query()

	offset, err := intParam(q.Get("skip"), 0)
	if err != nil {
		writeError(w, common.ErrInvalidPagination)
		return 0, 0, false
	}
	limit, err := intParam(q.Get("limit"), DefaultLimit)
	if err != nil {
		writeError(w, common.ErrInvalidPagination)
		return 0, 0, false
	}
	return offset, limit, true
}

func intParam(v string, def int) (int, error) {
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}
