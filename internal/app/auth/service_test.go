package auth_test

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/taskhive/task-service/internal/adapters/transport/http/dto"
	appauth "github.com/taskhive/task-service/internal/app/auth"
	"github.com/taskhive/task-service/internal/app/token"
	"github.com/taskhive/task-service/internal/app/verification"
	authErrors "github.com/taskhive/task-service/internal/domain/errors"
	"github.com/taskhive/task-service/internal/domain/model"
)

/* ──────────────────────────────── stubs ──────────────────────────────── */

type userRepoStub struct {
	users  map[string]model.User
	nextID int64
}

func newUserRepoStub() *userRepoStub {
	return &userRepoStub{users: make(map[string]model.User)}
}

func (u *userRepoStub) CreateUser(_ context.Context, m model.User) (model.User, error) {
	if _, ok := u.users[m.Email]; ok {
		return model.User{}, authErrors.ErrAlreadyExists
	}
	u.nextID++
	m.ID = u.nextID
	u.users[m.Email] = m
	return m, nil
}

func (u *userRepoStub) GetUserByEmail(_ context.Context, email string) (model.User, error) {
	v, ok := u.users[email]
	if !ok {
		return model.User{}, authErrors.ErrNotFound
	}
	return v, nil
}

func (u *userRepoStub) GetUserByID(_ context.Context, id int64) (model.User, error) {
	for _, v := range u.users {
		if v.ID == id {
			return v, nil
		}
	}
	return model.User{}, authErrors.ErrNotFound
}

func (u *userRepoStub) GetUnverifiedUserByEmail(_ context.Context, email string) (model.User, error) {
	v, ok := u.users[email]
	if !ok || v.EmailVerifiedAt != nil {
		return model.User{}, authErrors.ErrNotFound
	}
	return v, nil
}

func (u *userRepoStub) MarkEmailVerified(_ context.Context, id int64, at time.Time) error {
	for email, v := range u.users {
		if v.ID == id {
			v.EmailVerifiedAt = &at
			u.users[email] = v
			return nil
		}
	}
	return authErrors.ErrNotFound
}

type refreshRepoStub struct{ stored []model.RefreshToken }

func (r *refreshRepoStub) StoreRefreshToken(_ context.Context, t model.RefreshToken) (model.RefreshToken, error) {
	t.ID = int64(len(r.stored) + 1)
	r.stored = append(r.stored, t)
	return t, nil
}

type sentMail struct{ to, link string }

type mailerStub struct{ sent chan sentMail }

func newMailerStub() *mailerStub {
	return &mailerStub{sent: make(chan sentMail, 8)}
}

func (m *mailerStub) SendVerificationLink(_ context.Context, to, link string) error {
	m.sent <- sentMail{to: to, link: link}
	return nil
}

/* ───────────────────────────── helpers ───────────────────────────── */

const testSecret = "test-secret"

func newSvc() (appauth.Service, *userRepoStub, *refreshRepoStub, *mailerStub) {
	ur := newUserRepoStub()
	rr := &refreshRepoStub{}
	mailer := newMailerStub()

	tokens := token.New(testSecret, time.Hour, 24*time.Hour, rr)
	links := verification.New(testSecret, "https://tasks.example.com", 10*time.Minute)

	svc := appauth.New(ur, tokens, links, mailer, zap.NewNop(), validator.New())
	return svc, ur, rr, mailer
}

func register(t *testing.T, svc appauth.Service, email string) model.TokenPair {
	t.Helper()
	pair, err := svc.Register(context.Background(), dto.RegisterDTO{
		FirstName: "Ada", LastName: "Lovelace", Email: email, Password: "s3cret1",
	})
	require.NoError(t, err)
	return pair
}

func receiveMail(t *testing.T, m *mailerStub) sentMail {
	t.Helper()
	select {
	case got := <-m.sent:
		return got
	case <-time.After(2 * time.Second):
		t.Fatal("no mail dispatched")
		return sentMail{}
	}
}

/* ───────────────────────────── tests ───────────────────────────── */

func TestAuthService_RegisterLogin(t *testing.T) {
	svc, _, rr, _ := newSvc()
	ctx := context.Background()

	pair := register(t, svc, "e@example.com")
	require.NotEmpty(t, pair.Token)
	require.NotEmpty(t, pair.RefreshToken)

	pair2, err := svc.Login(ctx, dto.LoginDTO{Email: "e@example.com", Password: "s3cret1"})
	require.NoError(t, err)
	require.NotEmpty(t, pair2.RefreshToken)
	require.NotEqual(t, pair.RefreshToken, pair2.RefreshToken)

	// One refresh row per successful registration or login.
	require.Len(t, rr.stored, 2)
}

func TestAuthService_RegisterInvalid(t *testing.T) {
	svc, _, _, _ := newSvc()

	_, err := svc.Register(context.Background(), dto.RegisterDTO{})
	require.Error(t, err)
	require.True(t, authErrors.IsInvalidArgument(err))
}

func TestAuthService_RegisterShortPassword(t *testing.T) {
	svc, _, _, _ := newSvc()

	_, err := svc.Register(context.Background(), dto.RegisterDTO{
		FirstName: "Ada", LastName: "Lovelace", Email: "e@example.com", Password: "12345",
	})
	require.Error(t, err)
	require.True(t, authErrors.IsInvalidArgument(err))
}

func TestAuthService_RegisterDuplicate(t *testing.T) {
	svc, _, _, _ := newSvc()

	register(t, svc, "e@example.com")

	_, err := svc.Register(context.Background(), dto.RegisterDTO{
		FirstName: "Grace", LastName: "Hopper", Email: "e@example.com", Password: "another1",
	})
	require.Error(t, err)
	require.True(t, authErrors.IsAlreadyExists(err))
}

func TestAuthService_LoginUniformFailure(t *testing.T) {
	svc, _, _, _ := newSvc()
	ctx := context.Background()

	register(t, svc, "u@example.com")

	_, errWrongPwd := svc.Login(ctx, dto.LoginDTO{Email: "u@example.com", Password: "wrong-1"})
	_, errNoUser := svc.Login(ctx, dto.LoginDTO{Email: "none@example.com", Password: "wrong-1"})

	// Wrong password and unknown email must be indistinguishable.
	require.ErrorIs(t, errWrongPwd, authErrors.ErrInvalidCredentials)
	require.ErrorIs(t, errNoUser, authErrors.ErrInvalidCredentials)
	require.Equal(t, errWrongPwd.Error(), errNoUser.Error())
}

func TestAuthService_RequestVerification(t *testing.T) {
	svc, _, _, mailer := newSvc()
	ctx := context.Background()

	register(t, svc, "v@example.com")

	err := svc.RequestVerification(ctx, dto.RequestVerificationDTO{Email: "v@example.com"})
	require.NoError(t, err)

	got := receiveMail(t, mailer)
	require.Equal(t, "v@example.com", got.to)
	require.Contains(t, got.link, "/auth/verify?")
}

func TestAuthService_RequestVerificationUnknownUser(t *testing.T) {
	svc, _, _, _ := newSvc()

	err := svc.RequestVerification(context.Background(), dto.RequestVerificationDTO{Email: "none@example.com"})
	require.Error(t, err)
	require.True(t, authErrors.IsNotFound(err))
}

func TestAuthService_RequestVerificationAlreadyVerified(t *testing.T) {
	svc, ur, _, _ := newSvc()
	ctx := context.Background()

	register(t, svc, "v@example.com")
	now := time.Now()
	require.NoError(t, ur.MarkEmailVerified(ctx, ur.users["v@example.com"].ID, now))

	// A verified user is reported exactly like a missing one.
	err := svc.RequestVerification(ctx, dto.RequestVerificationDTO{Email: "v@example.com"})
	require.Error(t, err)
	require.True(t, authErrors.IsNotFound(err))
}

func TestAuthService_VerifyEmailFlow(t *testing.T) {
	svc, ur, _, mailer := newSvc()
	ctx := context.Background()

	register(t, svc, "v@example.com")
	require.NoError(t, svc.RequestVerification(ctx, dto.RequestVerificationDTO{Email: "v@example.com"}))

	link := receiveMail(t, mailer).link
	u, err := url.Parse(link)
	require.NoError(t, err)
	q := u.Query()

	err = svc.VerifyEmail(ctx, dto.VerifyEmailDTO{
		Email:     q.Get("email"),
		RequestAt: q.Get("request_at"),
		Signature: q.Get("signature"),
	})
	require.NoError(t, err)
	require.NotNil(t, ur.users["v@example.com"].EmailVerifiedAt)

	// Re-running a still-valid link succeeds and leaves the user verified.
	err = svc.VerifyEmail(ctx, dto.VerifyEmailDTO{
		Email:     q.Get("email"),
		RequestAt: q.Get("request_at"),
		Signature: q.Get("signature"),
	})
	require.NoError(t, err)
	require.NotNil(t, ur.users["v@example.com"].EmailVerifiedAt)
}

func TestAuthService_VerifyEmailBadSignature(t *testing.T) {
	svc, ur, _, mailer := newSvc()
	ctx := context.Background()

	register(t, svc, "v@example.com")
	require.NoError(t, svc.RequestVerification(ctx, dto.RequestVerificationDTO{Email: "v@example.com"}))

	link := receiveMail(t, mailer).link
	u, err := url.Parse(link)
	require.NoError(t, err)
	q := u.Query()

	err = svc.VerifyEmail(ctx, dto.VerifyEmailDTO{
		Email:     q.Get("email"),
		RequestAt: q.Get("request_at"),
		Signature: "deadbeef",
	})
	require.Error(t, err)
	require.True(t, authErrors.IsInvalidSignature(err))
	require.Nil(t, ur.users["v@example.com"].EmailVerifiedAt)
}

func TestAuthService_VerifyEmailUnknownUser(t *testing.T) {
	svc, _, _, _ := newSvc()

	// Forge a formally valid link for an email that has no account.
	links := verification.New(testSecret, "https://tasks.example.com", 10*time.Minute)
	u, err := url.Parse(links.BuildLink("ghost@example.com"))
	require.NoError(t, err)
	q := u.Query()

	err = svc.VerifyEmail(context.Background(), dto.VerifyEmailDTO{
		Email:     q.Get("email"),
		RequestAt: q.Get("request_at"),
		Signature: q.Get("signature"),
	})
	require.Error(t, err)
	require.True(t, authErrors.IsNotFound(err))
}
