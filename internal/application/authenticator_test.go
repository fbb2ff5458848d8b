package application

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelezco/redbag-claimer/internal/domain"
)

// fakeGateway scripts the remote reward API for tests and counts
// every network call the core makes.
type fakeGateway struct {
	mu         sync.Mutex
	loginCalls int
	claimCalls int

	loginFn func(userName, pwd string) (domain.Credentials, error)
	claimFn func(code string, creds domain.Credentials) (string, error)
}

func (f *fakeGateway) Login(_ context.Context, userName, pwd string) (domain.Credentials, error) {
	f.mu.Lock()
	f.loginCalls++
	f.mu.Unlock()

	if f.loginFn == nil {
		return domain.Credentials{MemberID: "m", SessionKey: "k"}, nil
	}
	return f.loginFn(userName, pwd)
}

func (f *fakeGateway) Claim(_ context.Context, code string, creds domain.Credentials) (string, error) {
	f.mu.Lock()
	f.claimCalls++
	f.mu.Unlock()

	if f.claimFn == nil {
		return "claimed", nil
	}
	return f.claimFn(code, creds)
}

func (f *fakeGateway) logins() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loginCalls
}

func (f *fakeGateway) claims() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.claimCalls
}

func md5hex(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

func TestAuthenticateNormalizesHandleAndDigestsSecret(t *testing.T) {
	t.Parallel()

	gateway := &fakeGateway{
		loginFn: func(userName, pwd string) (domain.Credentials, error) {
			assert.Equal(t, "+573001234567", userName)
			assert.Equal(t, md5hex("hunter2"), pwd)
			return domain.Credentials{MemberID: "m-1", SessionKey: "k-1"}, nil
		},
	}

	auth := NewAuthenticator(gateway, nil, "", 1, time.Millisecond)
	creds, err := auth.Authenticate(context.Background(), domain.Account{ID: "1", Handle: "300 123 4567", Secret: "hunter2"})
	require.NoError(t, err)
	assert.Equal(t, "m-1", creds.MemberID)
	assert.Equal(t, 1, gateway.logins())
}

func TestAuthenticateRetriesUpToBudget(t *testing.T) {
	t.Parallel()

	calls := 0
	gateway := &fakeGateway{
		loginFn: func(_, _ string) (domain.Credentials, error) {
			calls++
			if calls < 3 {
				return domain.Credentials{}, errors.New("connection reset")
			}
			return domain.Credentials{MemberID: "m", SessionKey: "k"}, nil
		},
	}

	auth := NewAuthenticator(gateway, nil, "", 3, time.Millisecond)
	creds, err := auth.Authenticate(context.Background(), domain.Account{ID: "1", Handle: "3001234567", Secret: "s"})
	require.NoError(t, err)
	assert.True(t, creds.Valid())
	assert.Equal(t, 3, gateway.logins())
}

func TestAuthenticateExhaustedBudgetIsAuthError(t *testing.T) {
	t.Parallel()

	gateway := &fakeGateway{
		loginFn: func(_, _ string) (domain.Credentials, error) {
			return domain.Credentials{}, errors.New("wrong password")
		},
	}

	auth := NewAuthenticator(gateway, nil, "", 2, time.Millisecond)
	_, err := auth.Authenticate(context.Background(), domain.Account{ID: "1", Handle: "3001234567", Secret: "s"})

	var authErr *domain.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Contains(t, authErr.Error(), "wrong password")
	assert.Equal(t, 2, gateway.logins())
}

func TestAuthenticateSingleAttemptByDefault(t *testing.T) {
	t.Parallel()

	gateway := &fakeGateway{
		loginFn: func(_, _ string) (domain.Credentials, error) {
			return domain.Credentials{}, errors.New("down")
		},
	}

	auth := NewAuthenticator(gateway, nil, "", 0, 0)
	_, err := auth.Authenticate(context.Background(), domain.Account{ID: "1", Handle: "3001234567", Secret: "s"})
	require.Error(t, err)
	assert.Equal(t, 1, gateway.logins())
}

func TestAuthenticateRejectsHandleWithoutDigits(t *testing.T) {
	t.Parallel()

	gateway := &fakeGateway{}
	auth := NewAuthenticator(gateway, nil, "", 1, time.Millisecond)

	_, err := auth.Authenticate(context.Background(), domain.Account{ID: "1", Handle: "not-a-number", Secret: "s"})

	var authErr *domain.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Zero(t, gateway.logins(), "no network call for an unusable handle")
}
