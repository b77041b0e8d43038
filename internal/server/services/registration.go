// Package services contains server-side business logic. This file implements
// RegistrationService: the signup, confirmation and login workflow plus the
// administrative listings.
package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/dbx"
	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/auth"
	"github.com/dmitrijs2005/gophauth/internal/server/config"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/dmitrijs2005/gophauth/internal/server/notify"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophauth/internal/server/validate"
)

const (
	DefaultPageLimit = 100
	MaxPageLimit     = 100
)

// RegistrationService moves users from signup through email confirmation to
// a confirmed account, and authenticates confirmed accounts.
type RegistrationService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	tokens      *auth.TokenService
	hasher      *auth.PasswordHasher
	sender      notify.Sender
	logger      logging.Logger

	appName      string
	frontendBase string
}

func NewRegistrationService(
	db *sql.DB,
	m repomanager.RepositoryManager,
	cfg *config.Config,
	tokens *auth.TokenService,
	hasher *auth.PasswordHasher,
	sender notify.Sender,
	logger logging.Logger,
) *RegistrationService {
	return &RegistrationService{
		db:           db,
		repomanager:  m,
		tokens:       tokens,
		hasher:       hasher,
		sender:       sender,
		logger:       logger.With("module", "registration"),
		appName:      cfg.AppName,
		frontendBase: strings.TrimRight(cfg.FrontendBaseURL, "/"),
	}
}

// Signup validates the input, stores a pending account and mails the
// confirmation link. Only confirmed accounts are checked for duplicates, so
// several pending signups may share an email or nickname until one of them is
// confirmed.
//
// When the email cannot be sent, common.ErrNotificationFailed is returned and
// the pending account is kept.
func (s *RegistrationService) Signup(ctx context.Context, email, nickname, password string) (*models.PendingAccount, error) {
	email, err := validate.CheckEmail(email)
	if err != nil {
		return nil, err
	}

	accounts := s.repomanager.Accounts(s.db)

	if err := s.ensureFree(ctx, func() error {
		_, err := accounts.FindByEmail(ctx, email)
		return err
	}, common.ErrEmailTaken); err != nil {
		return nil, err
	}

	if err := validate.CheckNickname(nickname); err != nil {
		return nil, err
	}
	if err := validate.CheckPassword(password); err != nil {
		return nil, err
	}

	if err := s.ensureFree(ctx, func() error {
		_, err := accounts.FindByNickname(ctx, nickname)
		return err
	}, common.ErrNicknameTaken); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.Error(ctx, "hash password", "error", err)
		return nil, common.ErrorInternal
	}

	p, err := s.repomanager.Pending(s.db).Create(ctx, &models.PendingAccount{
		Email:        email,
		Nickname:     nickname,
		PasswordHash: hash,
	})
	if err != nil {
		s.logger.Error(ctx, "create pending account", "error", err)
		return nil, common.ErrorInternal
	}

	msg := notify.RegistrationEmail{
		AppName:   s.appName,
		Recipient: p.Email,
		Link:      s.confirmationLink(p.ID),
	}
	if err := s.sender.Send(ctx, msg); err != nil {
		s.logger.Warn(ctx, "registration email not sent", "pending_id", p.ID, "error", err)
		return p, common.ErrNotificationFailed
	}

	s.logger.Info(ctx, "pending account created", "pending_id", p.ID)
	return p, nil
}

// Confirm promotes the pending account with the given id and returns a token
// for the new account. If a confirmed account already holds the email or
// nickname, the pending account is deleted and common.ErrConflictOnConfirm
// returned.
func (s *RegistrationService) Confirm(ctx context.Context, pendingID string) (*models.Token, error) {
	id, err := validate.ParseID(pendingID)
	if err != nil {
		return nil, err
	}

	var (
		account  *models.Account
		rejected bool
	)

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		pendingRepo := s.repomanager.Pending(tx)
		accounts := s.repomanager.Accounts(tx)

		p, err := pendingRepo.FindByIDForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrPendingNotFound
			}
			return err
		}

		_, err = accounts.FindByEmailOrNickname(ctx, p.Email, p.Nickname)
		switch {
		case err == nil:
			rejected = true
			return pendingRepo.Delete(ctx, p.ID)
		case !errors.Is(err, common.ErrorNotFound):
			return err
		}

		a, err := accounts.Create(ctx, &models.Account{
			Email:        p.Email,
			Nickname:     p.Nickname,
			PasswordHash: p.PasswordHash,
		})
		if err != nil {
			if errors.Is(err, common.ErrorAlreadyExists) {
				return common.ErrConflictOnConfirm
			}
			return err
		}

		if err := pendingRepo.Delete(ctx, p.ID); err != nil {
			return err
		}

		account = a
		return nil
	})

	switch {
	case err == nil && rejected:
		s.logger.Info(ctx, "pending account rejected on confirm", "pending_id", id)
		return nil, common.ErrConflictOnConfirm
	case errors.Is(err, common.ErrConflictOnConfirm):
		// Lost a race with a concurrent promotion; the failed transaction
		// rolled back, so the pending row is removed separately.
		if delErr := s.repomanager.Pending(s.db).Delete(ctx, id); delErr != nil {
			s.logger.Error(ctx, "delete rejected pending account", "pending_id", id, "error", delErr)
		}
		return nil, common.ErrConflictOnConfirm
	case errors.Is(err, common.ErrPendingNotFound):
		return nil, err
	case err != nil:
		s.logger.Error(ctx, "confirm pending account", "pending_id", id, "error", err)
		return nil, common.ErrorInternal
	}

	s.logger.Info(ctx, "account confirmed", "account_id", account.ID)
	return s.issueToken(ctx, account.ID)
}

// Login authenticates by email or nickname. Unknown identifiers and wrong
// passwords both yield common.ErrInvalidCredentials.
func (s *RegistrationService) Login(ctx context.Context, nicknameOrEmail, password string) (*models.Token, error) {
	if err := validate.CheckPassword(password); err != nil {
		return nil, err
	}

	accounts := s.repomanager.Accounts(s.db)

	var (
		account *models.Account
		err     error
	)
	if email, emailErr := validate.CheckEmail(nicknameOrEmail); emailErr == nil {
		account, err = accounts.FindByEmail(ctx, email)
	} else if validate.CheckNickname(nicknameOrEmail) == nil {
		account, err = accounts.FindByNickname(ctx, nicknameOrEmail)
	} else {
		err = common.ErrorNotFound
	}

	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			s.logger.Error(ctx, "login lookup", "error", err)
			return nil, common.ErrorInternal
		}
		// Burn the same time as a real check.
		s.hasher.Verify(s.hasher.DummyHash(), password)
		return nil, common.ErrInvalidCredentials
	}

	if !s.hasher.Verify(account.PasswordHash, password) {
		return nil, common.ErrInvalidCredentials
	}

	return s.issueToken(ctx, account.ID)
}

// RefreshToken exchanges a still valid token for a fresh one.
func (s *RegistrationService) RefreshToken(ctx context.Context, token string) (*models.Token, error) {
	account, err := s.accountFromToken(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.issueToken(ctx, account.ID)
}

// Me returns the account the token was issued for.
func (s *RegistrationService) Me(ctx context.Context, token string) (*models.Account, error) {
	return s.accountFromToken(ctx, token)
}

func (s *RegistrationService) ListAccounts(ctx context.Context, offset, limit int) ([]*models.Account, error) {
	offset, limit, err := page(offset, limit)
	if err != nil {
		return nil, err
	}

	list, err := s.repomanager.Accounts(s.db).List(ctx, offset, limit)
	if err != nil {
		s.logger.Error(ctx, "list accounts", "error", err)
		return nil, common.ErrorInternal
	}
	return list, nil
}

func (s *RegistrationService) ListPending(ctx context.Context, offset, limit int) ([]*models.PendingAccount, error) {
	offset, limit, err := page(offset, limit)
	if err != nil {
		return nil, err
	}

	list, err := s.repomanager.Pending(s.db).List(ctx, offset, limit)
	if err != nil {
		s.logger.Error(ctx, "list pending accounts", "error", err)
		return nil, common.ErrorInternal
	}
	return list, nil
}

func (s *RegistrationService) DeleteAccountByNickname(ctx context.Context, nickname string) error {
	if err := validate.CheckNickname(nickname); err != nil {
		return err
	}

	deleted, err := s.repomanager.Accounts(s.db).DeleteByNickname(ctx, nickname)
	if err != nil {
		s.logger.Error(ctx, "delete account", "error", err)
		return common.ErrorInternal
	}
	if !deleted {
		return common.ErrNicknameNotFound
	}

	s.logger.Info(ctx, "account deleted", "nickname", nickname)
	return nil
}

// --- helpers below ---

// ensureFree runs lookup and maps a hit to taken.
func (s *RegistrationService) ensureFree(ctx context.Context, lookup func() error, taken error) error {
	err := lookup()
	switch {
	case err == nil:
		return taken
	case errors.Is(err, common.ErrorNotFound):
		return nil
	default:
		s.logger.Error(ctx, "account lookup", "error", err)
		return common.ErrorInternal
	}
}

func (s *RegistrationService) confirmationLink(pendingID string) string {
	return s.frontendBase + "/user/" + pendingID + "/"
}

func (s *RegistrationService) accountFromToken(ctx context.Context, token string) (*models.Account, error) {
	sub, err := s.tokens.Validate(token)
	if err != nil {
		return nil, err
	}

	account, err := s.repomanager.Accounts(s.db).FindByID(ctx, sub)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrAccountNotFound
		}
		s.logger.Error(ctx, "token subject lookup", "error", err)
		return nil, common.ErrorInternal
	}
	return account, nil
}

func (s *RegistrationService) issueToken(ctx context.Context, accountID string) (*models.Token, error) {
	tok, err := s.tokens.Issue(accountID)
	if err != nil {
		s.logger.Error(ctx, "issue token", "error", err)
		return nil, common.ErrorInternal
	}
	return &models.Token{AccessToken: tok, TokenType: common.TokenTypeBearer}, nil
}

// page checks pagination arguments and caps limit at MaxPageLimit.
func page(offset, limit int) (int, int, error) {
	if offset < 0 || limit < 0 {
		return 0, 0, common.ErrInvalidPagination
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return offset, limit, nil
}
