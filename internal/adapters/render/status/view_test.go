package status

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelezco/redbag-claimer/internal/application"
	"github.com/avelezco/redbag-claimer/internal/domain"
)

func TestRenderEmptyPool(t *testing.T) {
	output, err := Render(nil, RenderOptions{})
	require.NoError(t, err)
	assert.Contains(t, output, "Red Bag Claim Pool")
	assert.Contains(t, output, "accounts: 0")
	assert.Contains(t, output, "No accounts configured.")
}

func TestRenderShowsEveryAccountState(t *testing.T) {
	statuses := []application.AccountStatus{
		{
			Account: domain.Account{ID: "1", Handle: "+573001234567"},
			Session: domain.Session{Credentials: &domain.Credentials{MemberID: "m-1", SessionKey: "k"}},
		},
		{
			Account: domain.Account{ID: "2", Handle: "+573002222222"},
			Session: domain.Session{AuthPending: true},
		},
		{
			Account:           domain.Account{ID: "3", Handle: "+573003333333"},
			Session:           domain.Session{LastAttemptFailed: true},
			CooldownRemaining: 42 * time.Second,
		},
		{
			Account: domain.Account{ID: "4", Handle: "+573004444444"},
		},
	}

	output, err := Render(statuses, RenderOptions{Now: time.Now()})
	require.NoError(t, err)

	assert.Contains(t, output, "accounts: 4")
	assert.Contains(t, output, "session: authenticated")
	assert.Contains(t, output, "member m-1")
	assert.Contains(t, output, "session: login in flight")
	assert.Contains(t, output, "cooling down (42s left)")
	assert.Contains(t, output, "session: none yet")
}

func TestRenderMasksHandles(t *testing.T) {
	statuses := []application.AccountStatus{
		{Account: domain.Account{ID: "1", Handle: "+573001234567"}},
	}

	output, err := Render(statuses, RenderOptions{})
	require.NoError(t, err)
	assert.NotContains(t, output, "+573001234567", "full handle must never be printed")
	assert.Contains(t, output, "4567", "last digits stay visible for identification")
}

func TestMaskHandle(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "+573001234567", want: "+5730•••4567"},
		{input: "short", want: "short"},
		{input: "", want: ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, maskHandle(tt.input))
	}
}

func TestFormatRemaining(t *testing.T) {
	assert.Equal(t, "42s", formatRemaining(42*time.Second))
	assert.Equal(t, "1s", formatRemaining(200*time.Millisecond))
	assert.Equal(t, "1m", formatRemaining(time.Minute))
	assert.Equal(t, "1m30s", formatRemaining(90*time.Second))
}
