package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domainauth "github.com/target/serverboard/internal/domain/auth"
	"github.com/target/serverboard/internal/mocks"
	"github.com/target/serverboard/internal/ports"
	"go.uber.org/mock/gomock"
)

var authNow = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

type authMocks struct {
	provider *mocks.MockLoginProvider
	sessions *mocks.MockSessionStore
	roles    *mocks.MockRoleMapper
}

func newAuthService(t *testing.T) (*authMocks, *AuthService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := &authMocks{
		provider: mocks.NewMockLoginProvider(ctrl),
		sessions: mocks.NewMockSessionStore(ctrl),
		roles:    mocks.NewMockRoleMapper(ctrl),
	}
	svc := NewAuthService(AuthServiceOptions{
		Provider:   m.provider,
		Sessions:   m.sessions,
		Roles:      m.roles,
		SessionTTL: time.Hour,
		Now:        func() time.Time { return authNow },
	})
	return m, svc
}

var validCallback = ports.LoginCallback{Code: "code", State: "state", Nonce: "nonce"}

func TestAuthService_BeginLogin(t *testing.T) {
	m, svc := newAuthService(t)
	want := ports.LoginRequest{URL: "https://idp.example/authorize", State: "s", Nonce: "n"}
	m.provider.EXPECT().Begin(gomock.Any()).Return(want, nil)

	got, err := svc.BeginLogin(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestAuthService_BeginLogin_ProviderError(t *testing.T) {
	m, svc := newAuthService(t)
	boom := errors.New("discovery failed")
	m.provider.EXPECT().Begin(gomock.Any()).Return(ports.LoginRequest{}, boom)

	_, err := svc.BeginLogin(context.Background())
	require.ErrorIs(t, err, boom)
}

func TestAuthService_CompleteLogin_SavesSession(t *testing.T) {
	m, svc := newAuthService(t)
	id := domainauth.Identity{
		UserID: "alice", FirstName: "Alice", LastName: "Kim", Email: "alice@example.com",
		Groups: []string{"ops"}, ExpiresAt: authNow.Add(3 * time.Hour),
	}
	m.provider.EXPECT().Exchange(gomock.Any(), validCallback).Return(id, nil)
	m.roles.EXPECT().Map([]string{"ops"}).Return(domainauth.RoleAdmin)
	var saved domainauth.Session
	m.sessions.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, s domainauth.Session) error { saved = s; return nil })

	sess, err := svc.CompleteLogin(context.Background(), validCallback)
	require.NoError(t, err)
	assert.NotEmpty(t, sess.ID)
	assert.Equal(t, saved, sess)
	assert.Equal(t, "Alice Kim", sess.DisplayName())
	assert.Equal(t, domainauth.RoleAdmin, sess.Role)
	// capped by SessionTTL, not the token's three hours
	assert.Equal(t, authNow.Add(time.Hour), sess.ExpiresAt)
}

func TestAuthService_CompleteLogin_TokenExpiryWins(t *testing.T) {
	m, svc := newAuthService(t)
	id := domainauth.Identity{UserID: "bob", ExpiresAt: authNow.Add(10 * time.Minute)}
	m.provider.EXPECT().Exchange(gomock.Any(), validCallback).Return(id, nil)
	m.roles.EXPECT().Map(gomock.Any()).Return(domainauth.RoleUser)
	m.sessions.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

	sess, err := svc.CompleteLogin(context.Background(), validCallback)
	require.NoError(t, err)
	assert.Equal(t, authNow.Add(10*time.Minute), sess.ExpiresAt)
}

func TestAuthService_CompleteLogin_Rejects(t *testing.T) {
	tests := []struct {
		name     string
		cb       ports.LoginCallback
		identity *domainauth.Identity
		exchErr  error
	}{
		{name: "missing code", cb: ports.LoginCallback{State: "s", Nonce: "n"}},
		{name: "missing state", cb: ports.LoginCallback{Code: "c", Nonce: "n"}},
		{name: "missing nonce", cb: ports.LoginCallback{Code: "c", State: "s"}},
		{name: "exchange error", cb: validCallback, exchErr: errors.New("bad code")},
		{name: "blank user", cb: validCallback, identity: &domainauth.Identity{UserID: " "}},
		{
			name:     "expired identity",
			cb:       validCallback,
			identity: &domainauth.Identity{UserID: "alice", ExpiresAt: authNow.Add(-time.Second)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, svc := newAuthService(t)
			if tt.identity != nil || tt.exchErr != nil {
				var id domainauth.Identity
				if tt.identity != nil {
					id = *tt.identity
				}
				m.provider.EXPECT().Exchange(gomock.Any(), tt.cb).Return(id, tt.exchErr)
			}
			_, err := svc.CompleteLogin(context.Background(), tt.cb)
			require.Error(t, err)
		})
	}
}

func TestAuthService_CompleteLogin_SaveError(t *testing.T) {
	m, svc := newAuthService(t)
	m.provider.EXPECT().Exchange(gomock.Any(), validCallback).Return(domainauth.Identity{UserID: "alice"}, nil)
	m.roles.EXPECT().Map(gomock.Any()).Return(domainauth.RoleUser)
	m.sessions.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

	_, err := svc.CompleteLogin(context.Background(), validCallback)
	require.ErrorContains(t, err, "save session")
}

func TestAuthService_GetSession(t *testing.T) {
	m, svc := newAuthService(t)
	live := domainauth.Session{ID: "s1", UserID: "alice", ExpiresAt: authNow.Add(time.Minute)}
	m.sessions.EXPECT().Get(gomock.Any(), "s1").Return(live, nil)

	got, err := svc.GetSession(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "alice", got.UserID)
}

func TestAuthService_GetSession_Empty(t *testing.T) {
	_, svc := newAuthService(t)
	_, err := svc.GetSession(context.Background(), "")
	require.ErrorIs(t, err, ErrNoSession)
}

func TestAuthService_GetSession_ExpiredIsDeleted(t *testing.T) {
	m, svc := newAuthService(t)
	m.sessions.EXPECT().Get(gomock.Any(), "s1").
		Return(domainauth.Session{ID: "s1", ExpiresAt: authNow}, nil)
	m.sessions.EXPECT().Delete(gomock.Any(), "s1").Return(nil)

	_, err := svc.GetSession(context.Background(), "s1")
	require.ErrorIs(t, err, ErrSessionExpired)
}

func TestAuthService_GetSession_ExpiredDeleteFails(t *testing.T) {
	m, svc := newAuthService(t)
	m.sessions.EXPECT().Get(gomock.Any(), "s1").
		Return(domainauth.Session{ID: "s1", ExpiresAt: authNow.Add(-time.Hour)}, nil)
	m.sessions.EXPECT().Delete(gomock.Any(), "s1").Return(errors.New("redis down"))

	_, err := svc.GetSession(context.Background(), "s1")
	require.ErrorIs(t, err, ErrSessionExpired)
	require.ErrorContains(t, err, "redis down")
}

func TestAuthService_GetSession_StoreError(t *testing.T) {
	m, svc := newAuthService(t)
	m.sessions.EXPECT().Get(gomock.Any(), "s1").Return(domainauth.Session{}, errors.New("miss"))

	_, err := svc.GetSession(context.Background(), "s1")
	require.ErrorContains(t, err, "get session")
}

func TestAuthService_Logout(t *testing.T) {
	m, svc := newAuthService(t)
	m.sessions.EXPECT().Delete(gomock.Any(), "s1").Return(nil)
	require.NoError(t, svc.Logout(context.Background(), "s1"))
	require.NoError(t, svc.Logout(context.Background(), ""))

	m.sessions.EXPECT().Delete(gomock.Any(), "s2").Return(errors.New("redis down"))
	require.Error(t, svc.Logout(context.Background(), "s2"))
}
