package auth

import (
	"context"
	"errors"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/taskhive/task-service/internal/adapters/transport/http/dto"
	"github.com/taskhive/task-service/internal/app/token"
	"github.com/taskhive/task-service/internal/app/verification"
	customErrors "github.com/taskhive/task-service/internal/domain/errors"
	"github.com/taskhive/task-service/internal/domain/mail"
	"github.com/taskhive/task-service/internal/domain/model"
	"github.com/taskhive/task-service/internal/domain/repo"
)

var argonParams = &argon2id.Params{
	Memory:      64 * 1024, // 64 MiB
	Iterations:  2,
	Parallelism: 4,
	SaltLength:  16,
	KeyLength:   32,
}

type authService struct {
	userRepo repo.UserRepo
	tokens   *token.Service
	links    *verification.Service
	mailer   mail.Mailer
	log      *zap.Logger
	v        *validator.Validate
}

type Service interface {
	Register(context.Context, dto.RegisterDTO) (model.TokenPair, error)
	Login(context.Context, dto.LoginDTO) (model.TokenPair, error)
	RequestVerification(context.Context, dto.RequestVerificationDTO) error
	VerifyEmail(context.Context, dto.VerifyEmailDTO) error
}

func New(
	ur repo.UserRepo,
	ts *token.Service,
	ls *verification.Service,
	m mail.Mailer,
	log *zap.Logger,
	v *validator.Validate,
) Service {
	return &authService{
		userRepo: ur, tokens: ts, links: ls, mailer: m, log: log, v: v,
	}
}

// Register creates the user and hands back a fresh token pair. Email
// uniqueness rests entirely on the store's unique index: a duplicate insert
// comes back as ErrAlreadyExists, with no pre-check racing against it.
func (a *authService) Register(ctx context.Context, dto dto.RegisterDTO) (model.TokenPair, error) {
	if err := a.v.Struct(dto); err != nil {
		return model.TokenPair{}, customErrors.NewInvalidArgument(err.Error())
	}

	passwordHash, err := argon2id.CreateHash(dto.Password, argonParams)
	if err != nil {
		return model.TokenPair{}, customErrors.WrapInternal(err, "Register")
	}

	user := model.User{
		FirstName:    dto.FirstName,
		LastName:     dto.LastName,
		Email:        dto.Email,
		PasswordHash: passwordHash,
	}
	created, err := a.userRepo.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, customErrors.ErrAlreadyExists) {
			return model.TokenPair{}, customErrors.ErrAlreadyExists
		}
		return model.TokenPair{}, customErrors.WrapInternal(err, "Register")
	}

	return a.issueTokens(ctx, created)
}

func (a *authService) Login(ctx context.Context, dto dto.LoginDTO) (model.TokenPair, error) {
	if err := a.v.Struct(dto); err != nil {
		return model.TokenPair{}, customErrors.NewInvalidArgument(err.Error())
	}

	user, err := a.userRepo.GetUserByEmail(ctx, dto.Email)
	switch {
	case errors.Is(err, customErrors.ErrNotFound):
		// Unknown email and wrong password are indistinguishable.
		return model.TokenPair{}, customErrors.ErrInvalidCredentials
	case err != nil:
		return model.TokenPair{}, customErrors.WrapInternal(err, "Login")
	}

	ok, err := argon2id.ComparePasswordAndHash(dto.Password, user.PasswordHash)
	if err != nil {
		return model.TokenPair{}, customErrors.WrapInternal(err, "Login")
	}
	if !ok {
		return model.TokenPair{}, customErrors.ErrInvalidCredentials
	}

	return a.issueTokens(ctx, user)
}

// RequestVerification mails a signed link to an unverified user. An
// already-verified user is reported exactly like a missing one. The send is
// fire-and-forget: a mail failure is logged and never fails the request.
func (a *authService) RequestVerification(ctx context.Context, dto dto.RequestVerificationDTO) error {
	if err := a.v.Struct(dto); err != nil {
		return customErrors.NewInvalidArgument(err.Error())
	}

	user, err := a.userRepo.GetUnverifiedUserByEmail(ctx, dto.Email)
	switch {
	case errors.Is(err, customErrors.ErrNotFound):
		return customErrors.ErrNotFound
	case err != nil:
		return customErrors.WrapInternal(err, "RequestVerification")
	}

	link := a.links.BuildLink(user.Email)

	go func() {
		if err := a.mailer.SendVerificationLink(context.Background(), user.Email, link); err != nil {
			a.log.Error("send verification mail", zap.Error(err))
		}
	}()

	return nil
}

func (a *authService) VerifyEmail(ctx context.Context, dto dto.VerifyEmailDTO) error {
	if err := a.v.Struct(dto); err != nil {
		return customErrors.NewInvalidArgument(err.Error())
	}

	if err := a.links.Validate(dto.Email, dto.RequestAt, dto.Signature); err != nil {
		return err
	}

	user, err := a.userRepo.GetUserByEmail(ctx, dto.Email)
	switch {
	case errors.Is(err, customErrors.ErrNotFound):
		return customErrors.ErrNotFound
	case err != nil:
		return customErrors.WrapInternal(err, "VerifyEmail")
	}

	// Re-running a still-valid link re-stamps the timestamp; the state is
	// the same either way (verified).
	if err := a.userRepo.MarkEmailVerified(ctx, user.ID, time.Now()); err != nil {
		return customErrors.WrapInternal(err, "VerifyEmail")
	}
	return nil
}

func (a *authService) issueTokens(ctx context.Context, user model.User) (model.TokenPair, error) {
	at, err := a.tokens.IssueSessionToken(user)
	if err != nil {
		return model.TokenPair{}, err
	}
	rt, err := a.tokens.IssueRefreshToken(ctx, user)
	if err != nil {
		return model.TokenPair{}, err
	}
	return model.TokenPair{Token: at, RefreshToken: rt.Token}, nil
}
