package session_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "github.com/styledecor/styledecor-web/internal/errors"
	"github.com/styledecor/styledecor-web/session"
	"github.com/styledecor/styledecor-web/users"
)

// fakeResolver is an in-memory stand-in for the backend client.
type fakeResolver struct {
	mu        sync.Mutex
	tokens    map[string]string      // email -> token issued on login
	usersByTk map[string]*users.User // token -> resolved user
	loginErr  error
	userErr   error

	userCalls atomic.Int64
	gate      chan struct{} // when non-nil, CurrentUser blocks until closed
}

func newFakeResolver() *fakeResolver {
	return &fakeResolver{
		tokens:    make(map[string]string),
		usersByTk: make(map[string]*users.User),
	}
}

func (f *fakeResolver) Login(_ context.Context, email, password string) (string, map[string]any, error) {
	if f.loginErr != nil {
		return "", nil, f.loginErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	token, ok := f.tokens[email]
	if !ok {
		return "", nil, apperrors.ErrInvalidCredentials
	}
	return token, map[string]any{"token": token}, nil
}

func (f *fakeResolver) CurrentUser(_ context.Context, token string) (*users.User, error) {
	f.userCalls.Add(1)
	if f.gate != nil {
		<-f.gate
	}
	if f.userErr != nil {
		return nil, f.userErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.usersByTk[token], nil
}

func (f *fakeResolver) seed(email, token string, u *users.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens[email] = token
	f.usersByTk[token] = u
}

func newStore(t *testing.T, r session.Resolver) *session.Store {
	t.Helper()
	s, err := session.NewStore(r)
	require.NoError(t, err)
	return s
}

func TestLoginResolvesUserAndRole(t *testing.T) {
	f := newFakeResolver()
	f.seed("a@b.com", "T1", &users.User{ID: "u1", Name: "A", Email: "a@b.com", Role: "Admin"})
	store := newStore(t, f)

	token, raw, err := store.Login(context.Background(), "a@b.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "T1", token)
	assert.Equal(t, "T1", raw["token"])

	sess := store.Snapshot(token)
	assert.False(t, sess.Loading)
	require.NotNil(t, sess.User)
	assert.Equal(t, "admin", sess.Role)
	// Login performs exactly one bootstrap fetch.
	assert.EqualValues(t, 1, f.userCalls.Load())
}

func TestLoginLocalValidationSkipsNetwork(t *testing.T) {
	f := newFakeResolver()
	store := newStore(t, f)

	_, _, err := store.Login(context.Background(), "", "secret1")
	assert.ErrorIs(t, err, apperrors.ErrMissingFields)
	_, _, err = store.Login(context.Background(), "a@b.com", "")
	assert.ErrorIs(t, err, apperrors.ErrMissingFields)
	assert.EqualValues(t, 0, f.userCalls.Load())
}

func TestFailedLoginLeavesNoSession(t *testing.T) {
	f := newFakeResolver()
	store := newStore(t, f)

	_, _, err := store.Login(context.Background(), "a@b.com", "wrong")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	assert.Equal(t, session.Session{}, store.Snapshot(""))
}

func TestLoginThenLogoutClearsEverything(t *testing.T) {
	f := newFakeResolver()
	f.seed("a@b.com", "T1", &users.User{ID: "u1", Email: "a@b.com", Role: "user"})
	store := newStore(t, f)

	token, _, err := store.Login(context.Background(), "a@b.com", "secret1")
	require.NoError(t, err)

	store.Logout(token)
	sess := store.Snapshot(token)
	assert.Nil(t, sess.User)
	assert.Empty(t, sess.Role)
}

func TestRefreshWithoutTokenIsNoOp(t *testing.T) {
	f := newFakeResolver()
	store := newStore(t, f)

	u, err := store.RefreshCurrentUser(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, u)
	assert.EqualValues(t, 0, f.userCalls.Load())
}

func TestRefreshUnusablePayloadClearsUserKeepsToken(t *testing.T) {
	f := newFakeResolver()
	f.seed("a@b.com", "T1", &users.User{ID: "u1", Email: "a@b.com", Role: "user"})
	store := newStore(t, f)

	_, err := store.RefreshCurrentUser(context.Background(), "T1")
	require.NoError(t, err)
	require.NotNil(t, store.Snapshot("T1").User)

	// Backend stops returning a usable user for this token.
	f.mu.Lock()
	f.usersByTk["T1"] = nil
	f.mu.Unlock()

	u, err := store.RefreshCurrentUser(context.Background(), "T1")
	require.NoError(t, err)
	assert.Nil(t, u)

	sess := store.Snapshot("T1")
	assert.Nil(t, sess.User)
	assert.Equal(t, "T1", sess.Token)
	assert.False(t, sess.Loading)
}

func TestConcurrentRefreshSharesOneFetch(t *testing.T) {
	f := newFakeResolver()
	f.seed("a@b.com", "T1", &users.User{ID: "u1", Email: "a@b.com", Role: "Decorator"})
	f.gate = make(chan struct{})
	store := newStore(t, f)

	var wg sync.WaitGroup
	results := make([]*users.User, 4)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			u, err := store.RefreshCurrentUser(context.Background(), "T1")
			assert.NoError(t, err)
			results[i] = u
		}(i)
	}

	// Let the callers pile up on the single in-flight fetch.
	time.Sleep(50 * time.Millisecond)
	close(f.gate)
	wg.Wait()

	assert.EqualValues(t, 1, f.userCalls.Load())
	for _, u := range results {
		require.NotNil(t, u)
		assert.Equal(t, "u1", u.ID)
	}
}

func TestRefreshIsIdempotent(t *testing.T) {
	f := newFakeResolver()
	f.seed("a@b.com", "T1", &users.User{ID: "u1", Email: "a@b.com", Role: "user"})
	store := newStore(t, f)

	first, err := store.RefreshCurrentUser(context.Background(), "T1")
	require.NoError(t, err)
	second, err := store.RefreshCurrentUser(context.Background(), "T1")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestResolveCachesPerTokenValue(t *testing.T) {
	f := newFakeResolver()
	f.seed("a@b.com", "T1", &users.User{ID: "u1", Email: "a@b.com", Role: "user"})
	store := newStore(t, f)

	for i := 0; i < 3; i++ {
		sess, err := store.Resolve(context.Background(), "T1")
		require.NoError(t, err)
		require.NotNil(t, sess.User)
	}
	assert.EqualValues(t, 1, f.userCalls.Load())
}

func TestBootstrapRoundTripReproducesSession(t *testing.T) {
	f := newFakeResolver()
	f.seed("a@b.com", "T1", &users.User{ID: "u1", Name: "A", Email: "a@b.com", Role: "Admin"})

	first := newStore(t, f)
	token, _, err := first.Login(context.Background(), "a@b.com", "secret1")
	require.NoError(t, err)
	before := first.Snapshot(token)

	// Simulated process reload: a new store bootstraps from the persisted
	// token alone.
	second := newStore(t, f)
	after, err := second.Resolve(context.Background(), token)
	require.NoError(t, err)

	assert.Equal(t, before.User, after.User)
	assert.Equal(t, before.Role, after.Role)
}

func TestInvalidatePurgesMidFlight(t *testing.T) {
	f := newFakeResolver()
	f.seed("a@b.com", "T1", &users.User{ID: "u1", Email: "a@b.com", Role: "user"})
	f.gate = make(chan struct{})
	store := newStore(t, f)

	errCh := make(chan error, 1)
	go func() {
		_, err := store.RefreshCurrentUser(context.Background(), "T1")
		errCh <- err
	}()

	time.Sleep(50 * time.Millisecond)
	store.Invalidate("T1")
	close(f.gate)

	// The stale result is discarded, not applied to a purged session.
	assert.ErrorIs(t, <-errCh, apperrors.ErrSessionExpired)
	assert.Nil(t, store.Snapshot("T1").User)
}

func TestSnapshotUnresolvedTokenReportsLoading(t *testing.T) {
	f := newFakeResolver()
	store := newStore(t, f)

	sess := store.Snapshot("never-resolved")
	assert.True(t, sess.Loading)
	assert.Nil(t, sess.User)
}
