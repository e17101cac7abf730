package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/client/persistence"
	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionFixture(t *testing.T) (*fixture, *UserDirectory, *SessionManager, models.User) {
	t.Helper()
	f := newFixture(t)
	d := f.users()
	u := register(t, d, "Ana", "Li", "ana@x.com", "Secret123")
	s := NewSessionManager(f.gw, d, nil)
	s.SetClock(f.clock())
	return f, d, s, u
}

// restartSession simulates a fresh process over the same store.
func restartSession(t *testing.T, f *fixture) *SessionManager {
	t.Helper()
	gw := f.restart()
	d := NewUserDirectory(gw, nil, WithHashParams(cheapParams))
	d.Hydrate(context.Background())
	return NewSessionManager(gw, d, nil)
}

func TestSession_StartsAnonymous(t *testing.T) {
	_, _, s, _ := sessionFixture(t)
	_, ok := s.Current()
	assert.False(t, ok)
}

func TestSession_LoginSuccess(t *testing.T) {
	ctx := context.Background()
	f, d, s, u := sessionFixture(t)

	sess, err := s.Login(ctx, "ANA@x.com", []byte("Secret123"), false)
	require.NoError(t, err)
	assert.Equal(t, models.Session{UserID: u.ID, Email: "ana@x.com", Name: "Ana Li", FirstName: "Ana", LastName: "Li"}, sess)

	cur, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, sess, cur)
	assert.Nil(t, f.raw(t, persistence.KeyCurrentUser))

	got, _ := d.Get(u.ID)
	require.NotNil(t, got.LastLogin)
	assert.True(t, f.now.Equal(*got.LastLogin))
}

func TestSession_LoginFailureKeepsState(t *testing.T) {
	ctx := context.Background()
	_, _, s, _ := sessionFixture(t)

	_, err := s.Login(ctx, "ana@x.com", []byte("nope"), true)
	require.ErrorIs(t, err, common.ErrorInvalidCredentials)
	_, ok := s.Current()
	assert.False(t, ok)

	_, err = s.Login(ctx, "ana@x.com", []byte("Secret123"), false)
	require.NoError(t, err)
	_, err = s.Login(ctx, "ghost@x.com", []byte("Secret123"), false)
	require.ErrorIs(t, err, common.ErrorInvalidCredentials)

	cur, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "ana@x.com", cur.Email)
}

func TestSession_NotRememberedDoesNotSurviveRestart(t *testing.T) {
	ctx := context.Background()
	f, _, s, _ := sessionFixture(t)

	_, err := s.Login(ctx, "ana@x.com", []byte("Secret123"), false)
	require.NoError(t, err)

	next := restartSession(t, f)
	_, ok := next.Resume(ctx)
	assert.False(t, ok)
	_, ok = next.Current()
	assert.False(t, ok)
}

func TestSession_RememberedSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	f, _, s, u := sessionFixture(t)

	_, err := s.Login(ctx, "ana@x.com", []byte("Secret123"), true)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"id":"`+u.ID+`","email":"ana@x.com","name":"Ana Li","firstName":"Ana","lastName":"Li"}`,
		string(f.raw(t, persistence.KeyCurrentUser)))

	next := restartSession(t, f)
	sess, ok := next.Resume(ctx)
	require.True(t, ok)
	assert.Equal(t, u.ID, sess.UserID)

	cur, ok := next.Current()
	require.True(t, ok)
	assert.Equal(t, sess, cur)
}

func TestSession_NonRememberedLoginForgetsEarlierSession(t *testing.T) {
	ctx := context.Background()
	f, _, s, _ := sessionFixture(t)

	_, err := s.Login(ctx, "ana@x.com", []byte("Secret123"), true)
	require.NoError(t, err)
	_, err = s.Login(ctx, "ana@x.com", []byte("Secret123"), false)
	require.NoError(t, err)

	assert.Nil(t, f.raw(t, persistence.KeyCurrentUser))
}

func TestSession_RememberSaveFailureKeepsAnonymous(t *testing.T) {
	ctx := context.Background()
	f, _, s, _ := sessionFixture(t)

	f.store.failWrites = true
	_, err := s.Login(ctx, "ana@x.com", []byte("Secret123"), true)
	require.ErrorIs(t, err, errDiskFull)
	_, ok := s.Current()
	assert.False(t, ok)
}

func TestSession_Logout(t *testing.T) {
	ctx := context.Background()
	f, _, s, _ := sessionFixture(t)

	require.NoError(t, s.Logout(ctx))

	_, err := s.Login(ctx, "ana@x.com", []byte("Secret123"), true)
	require.NoError(t, err)
	require.NoError(t, s.Logout(ctx))

	_, ok := s.Current()
	assert.False(t, ok)
	assert.Nil(t, f.raw(t, persistence.KeyCurrentUser))

	next := restartSession(t, f)
	_, ok = next.Resume(ctx)
	assert.False(t, ok)
}

func TestSession_LogoutStorageFailureStillLogsOut(t *testing.T) {
	ctx := context.Background()
	f, _, s, _ := sessionFixture(t)
	_, err := s.Login(ctx, "ana@x.com", []byte("Secret123"), true)
	require.NoError(t, err)

	f.store.failWrites = true
	require.ErrorIs(t, s.Logout(ctx), errDiskFull)
	_, ok := s.Current()
	assert.False(t, ok)
}

func TestSession_CurrentDropsDeactivatedOrDeletedUser(t *testing.T) {
	ctx := context.Background()
	_, d, s, u := sessionFixture(t)

	_, err := s.Login(ctx, "ana@x.com", []byte("Secret123"), true)
	require.NoError(t, err)
	assert.False(t, s.Stale())

	require.NoError(t, d.Deactivate(ctx, u.ID))
	_, ok := s.Current()
	assert.False(t, ok)
	assert.True(t, s.Stale())

	require.NoError(t, d.Activate(ctx, u.ID))
	require.NoError(t, d.Delete(ctx, u.ID))
	_, ok = s.Current()
	assert.False(t, ok)
	assert.True(t, s.Stale())

	require.NoError(t, s.Logout(ctx))
	assert.False(t, s.Stale())
}

func TestSession_CurrentAfterImportWithoutUser(t *testing.T) {
	ctx := context.Background()
	_, d, s, _ := sessionFixture(t)

	_, err := s.Login(ctx, "ana@x.com", []byte("Secret123"), false)
	require.NoError(t, err)

	_, err = d.Import(ctx, strings.NewReader(`[]`))
	require.NoError(t, err)
	_, ok := s.Current()
	assert.False(t, ok)
}

func TestSession_ResumeMalformed(t *testing.T) {
	ctx := context.Background()

	for name, raw := range map[string]string{
		"garbage": `{"id":`,
		"null":    `null`,
		"no id":   `{"email":"ana@x.com"}`,
	} {
		t.Run(name, func(t *testing.T) {
			f, _, s, _ := sessionFixture(t)
			require.NoError(t, f.store.Set(ctx, persistence.KeyCurrentUser, []byte(raw)))

			_, ok := s.Resume(ctx)
			assert.False(t, ok)
			assert.Nil(t, f.raw(t, persistence.KeyCurrentUser))
		})
	}
}

func TestSession_ResumeDanglingUser(t *testing.T) {
	ctx := context.Background()
	f, d, s, u := sessionFixture(t)

	_, err := s.Login(ctx, "ana@x.com", []byte("Secret123"), true)
	require.NoError(t, err)
	require.NoError(t, d.Delete(ctx, u.ID))

	next := restartSession(t, f)
	_, ok := next.Resume(ctx)
	assert.False(t, ok)
	assert.Nil(t, f.raw(t, persistence.KeyCurrentUser))
}

func TestSession_ResumeInactiveUser(t *testing.T) {
	ctx := context.Background()
	f, d, s, u := sessionFixture(t)

	_, err := s.Login(ctx, "ana@x.com", []byte("Secret123"), true)
	require.NoError(t, err)
	require.NoError(t, d.Deactivate(ctx, u.ID))

	next := restartSession(t, f)
	_, ok := next.Resume(ctx)
	assert.False(t, ok)
}

func TestSession_ResumeDoesNotCheckCredentials(t *testing.T) {
	ctx := context.Background()
	f, d, s, u := sessionFixture(t)

	_, err := s.Login(ctx, "ana@x.com", []byte("Secret123"), true)
	require.NoError(t, err)
	require.NoError(t, d.ChangePassword(ctx, u.ID, []byte("Secret123"), []byte("Changed99")))

	next := restartSession(t, f)
	_, ok := next.Resume(ctx)
	assert.True(t, ok)
}

type failingRecorder struct {
	*UserDirectory
}

func (failingRecorder) RecordLogin(context.Context, string, time.Time) error {
	return errDiskFull
}

func TestSession_RecordLoginFailureIsNotFatal(t *testing.T) {
	ctx := context.Background()
	f, d, _, _ := sessionFixture(t)
	s := NewSessionManager(f.gw, failingRecorder{d}, nil)

	_, err := s.Login(ctx, "ana@x.com", []byte("Secret123"), false)
	require.NoError(t, err)
	_, ok := s.Current()
	assert.True(t, ok)
}
