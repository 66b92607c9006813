// Copyright (c) 2026 Critica. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"log/slog"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/critica/internal/platform/apperr"
	"github.com/taibuivan/critica/internal/platform/mail"
	"github.com/taibuivan/critica/internal/users/auth"
)

// # Test Doubles

// fakeUserRepository is an in-memory UserRepository keyed by user ID.
type fakeUserRepository struct {
	users map[string]*auth.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[string]*auth.User)}
}

func (r *fakeUserRepository) Create(_ context.Context, user *auth.User) error {
	for _, existing := range r.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return apperr.Conflict("Resource already exists")
		}
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepository) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (r *fakeUserRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (r *fakeUserRepository) SetConfirmationCode(_ context.Context, userID, code string) error {
	user, ok := r.users[userID]
	if !ok {
		return apperr.NotFound("User")
	}
	user.ConfirmationCode = code
	return nil
}

func (r *fakeUserRepository) ClearConfirmationCode(_ context.Context, userID string) error {
	user, ok := r.users[userID]
	if !ok {
		return apperr.NotFound("User")
	}
	user.ConfirmationCode = ""
	return nil
}

func (r *fakeUserRepository) byUsername(username string) *auth.User {
	for _, user := range r.users {
		if user.Username == username {
			return user
		}
	}
	return nil
}

// fakeMailer records every message handed to it.
type fakeMailer struct {
	sent []mail.Message
	fail bool
}

func (m *fakeMailer) Send(_ context.Context, msg mail.Message) bool {
	m.sent = append(m.sent, msg)
	return !m.fail
}

// fakeTokenProvider returns a deterministic token encoding its inputs.
type fakeTokenProvider struct{}

func (fakeTokenProvider) GenerateAccessToken(userID, username, role string, staff bool, _ time.Duration) (string, error) {
	token := "token:" + userID + ":" + username + ":" + role
	if staff {
		token += ":staff"
	}
	return token, nil
}

func newTestService(repo *fakeUserRepository, mailer *fakeMailer) *auth.Service {
	return auth.NewService(repo, fakeTokenProvider{}, mailer, slog.Default())
}

// # Signup

func TestService_Signup_CreatesUserAndSendsCode(t *testing.T) {
	repo := newFakeUserRepository()
	mailer := &fakeMailer{}
	service := newTestService(repo, mailer)

	result, err := service.Signup(context.Background(), auth.SignupInput{
		Username: "alice",
		Email:    "alice@example.com",
	})

	require.NoError(t, err)
	assert.Equal(t, "alice", result.Username)
	assert.Equal(t, "alice@example.com", result.Email)

	user := repo.byUsername("alice")
	require.NotNil(t, user)
	assert.Regexp(t, regexp.MustCompile(`^[A-Z0-9]{10}$`), user.ConfirmationCode)

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "alice@example.com", mailer.sent[0].To)
	assert.Contains(t, mailer.sent[0].Body, user.ConfirmationCode)
}

func TestService_Signup_RepeatPairRotatesCode(t *testing.T) {
	repo := newFakeUserRepository()
	mailer := &fakeMailer{}
	service := newTestService(repo, mailer)

	_, err := service.Signup(context.Background(), auth.SignupInput{
		Username: "alice", Email: "alice@example.com",
	})
	require.NoError(t, err)
	firstCode := repo.byUsername("alice").ConfirmationCode

	_, err = service.Signup(context.Background(), auth.SignupInput{
		Username: "alice", Email: "alice@example.com",
	})
	require.NoError(t, err)

	assert.Len(t, repo.users, 1, "re-signup must not create a second account")
	assert.NotEqual(t, firstCode, repo.byUsername("alice").ConfirmationCode)
	assert.Len(t, mailer.sent, 2)
}

func TestService_Signup_UsernameTakenByDifferentEmail(t *testing.T) {
	repo := newFakeUserRepository()
	service := newTestService(repo, &fakeMailer{})

	_, err := service.Signup(context.Background(), auth.SignupInput{
		Username: "alice", Email: "alice@example.com",
	})
	require.NoError(t, err)

	_, err = service.Signup(context.Background(), auth.SignupInput{
		Username: "alice", Email: "other@example.com",
	})

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "CONFLICT", ae.Code)
	assert.Equal(t, 400, ae.HTTPStatus)
	require.Len(t, ae.Details, 1)
	assert.Equal(t, auth.FieldUsername, ae.Details[0].Field)
}

func TestService_Signup_EmailTakenByDifferentUsername(t *testing.T) {
	repo := newFakeUserRepository()
	service := newTestService(repo, &fakeMailer{})

	_, err := service.Signup(context.Background(), auth.SignupInput{
		Username: "alice", Email: "alice@example.com",
	})
	require.NoError(t, err)

	_, err = service.Signup(context.Background(), auth.SignupInput{
		Username: "bob", Email: "alice@example.com",
	})

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "CONFLICT", ae.Code)
	require.Len(t, ae.Details, 1)
	assert.Equal(t, auth.FieldEmail, ae.Details[0].Field)
}

func TestService_Signup_MailFailureDoesNotFailSignup(t *testing.T) {
	repo := newFakeUserRepository()
	mailer := &fakeMailer{fail: true}
	service := newTestService(repo, mailer)

	_, err := service.Signup(context.Background(), auth.SignupInput{
		Username: "alice", Email: "alice@example.com",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, repo.byUsername("alice").ConfirmationCode,
		"code must be stored even when delivery fails, so a re-signup can retry")
}

// # Token Exchange

func signedUpUser(t *testing.T, service *auth.Service, repo *fakeUserRepository, username, email string) string {
	t.Helper()
	_, err := service.Signup(context.Background(), auth.SignupInput{Username: username, Email: email})
	require.NoError(t, err)
	return repo.byUsername(username).ConfirmationCode
}

func TestService_ExchangeToken_Success(t *testing.T) {
	repo := newFakeUserRepository()
	service := newTestService(repo, &fakeMailer{})
	code := signedUpUser(t, service, repo, "alice", "alice@example.com")

	result, err := service.ExchangeToken(context.Background(), auth.TokenInput{
		Username:         "alice",
		ConfirmationCode: code,
	})

	require.NoError(t, err)
	assert.Contains(t, result.Token, ":alice:user")
	assert.Empty(t, repo.byUsername("alice").ConfirmationCode, "code must be consumed on success")
}

func TestService_ExchangeToken_UnknownUsername(t *testing.T) {
	repo := newFakeUserRepository()
	service := newTestService(repo, &fakeMailer{})

	_, err := service.ExchangeToken(context.Background(), auth.TokenInput{
		Username:         "ghost",
		ConfirmationCode: "ABCDEFGH12",
	})

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
	assert.Equal(t, 404, ae.HTTPStatus)
}

func TestService_ExchangeToken_WrongCodeIsRetryable(t *testing.T) {
	repo := newFakeUserRepository()
	service := newTestService(repo, &fakeMailer{})
	code := signedUpUser(t, service, repo, "alice", "alice@example.com")

	wrong := "AAAAAAAAAA"
	if wrong == code {
		wrong = "BBBBBBBBBB"
	}

	_, err := service.ExchangeToken(context.Background(), auth.TokenInput{
		Username:         "alice",
		ConfirmationCode: wrong,
	})
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "INVALID_CONFIRMATION_CODE", ae.Code)
	assert.Equal(t, 400, ae.HTTPStatus)

	// The stored code survives the failed attempt.
	result, err := service.ExchangeToken(context.Background(), auth.TokenInput{
		Username:         "alice",
		ConfirmationCode: code,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
}

func TestService_ExchangeToken_CodeConsumedAfterUse(t *testing.T) {
	repo := newFakeUserRepository()
	service := newTestService(repo, &fakeMailer{})
	code := signedUpUser(t, service, repo, "alice", "alice@example.com")

	_, err := service.ExchangeToken(context.Background(), auth.TokenInput{
		Username: "alice", ConfirmationCode: code,
	})
	require.NoError(t, err)

	_, err = service.ExchangeToken(context.Background(), auth.TokenInput{
		Username: "alice", ConfirmationCode: code,
	})
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "INVALID_CONFIRMATION_CODE", ae.Code)
}

func TestService_ExchangeToken_ReissueInvalidatesOldCode(t *testing.T) {
	repo := newFakeUserRepository()
	service := newTestService(repo, &fakeMailer{})
	oldCode := signedUpUser(t, service, repo, "alice", "alice@example.com")

	// Signing up again rotates the code.
	newCode := signedUpUser(t, service, repo, "alice", "alice@example.com")
	require.NotEqual(t, oldCode, newCode)

	_, err := service.ExchangeToken(context.Background(), auth.TokenInput{
		Username: "alice", ConfirmationCode: oldCode,
	})
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "INVALID_CONFIRMATION_CODE", ae.Code)

	result, err := service.ExchangeToken(context.Background(), auth.TokenInput{
		Username: "alice", ConfirmationCode: newCode,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
}
