package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeHandle(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "bare local number", input: "3001234567", want: "+573001234567"},
		{name: "already prefixed", input: "+573001234567", want: "+573001234567"},
		{name: "country code without plus", input: "573001234567", want: "+573001234567"},
		{name: "formatted with separators", input: "300-123 45.67", want: "+573001234567"},
		{name: "short number starting with 57", input: "5712345", want: "+575712345"},
		{name: "empty input", input: "", want: ""},
		{name: "no digits at all", input: "abc-def", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeHandle(tt.input, ""))
		})
	}
}

func TestNormalizeHandleIsIdempotent(t *testing.T) {
	inputs := []string{"3001234567", "+573001234567", "573001234567", "311 222 3344"}

	for _, input := range inputs {
		once := NormalizeHandle(input, "")
		twice := NormalizeHandle(once, "")
		assert.Equal(t, once, twice, "input %q", input)
	}
}

func TestNormalizeHandleCustomCountryCode(t *testing.T) {
	assert.Equal(t, "+341234567890", NormalizeHandle("1234567890", "34"))
	assert.Equal(t, "+341234567890", NormalizeHandle("+34 123 456 7890", "34"))
}

func TestPoolValidate(t *testing.T) {
	tests := []struct {
		name    string
		pool    Pool
		wantErr string
	}{
		{
			name:    "empty pool",
			pool:    Pool{},
			wantErr: "account pool is empty",
		},
		{
			name: "missing handle",
			pool: Pool{Members: []Account{
				{ID: "1", Handle: " ", Secret: "s"},
			}},
			wantErr: "handle is required",
		},
		{
			name: "missing secret",
			pool: Pool{Members: []Account{
				{ID: "1", Handle: "+573001234567"},
			}},
			wantErr: "secret is required",
		},
		{
			name: "duplicate handle",
			pool: Pool{Members: []Account{
				{ID: "1", Handle: "+573001234567", Secret: "a"},
				{ID: "2", Handle: "+573001234567", Secret: "b"},
			}},
			wantErr: "duplicate handle",
		},
		{
			name: "valid pool",
			pool: Pool{Members: []Account{
				{ID: "1", Handle: "+573001234567", Secret: "a"},
				{ID: "2", Handle: "+573007654321", Secret: "b"},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.pool.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestPoolValidateEmptyIsSentinel(t *testing.T) {
	require.ErrorIs(t, Pool{}.Validate(), ErrEmptyPool)
}

func TestIsClaimCode(t *testing.T) {
	assert.True(t, IsClaimCode("ABC123"))
	assert.True(t, IsClaimCode("000000"))

	assert.False(t, IsClaimCode("abc123"))
	assert.False(t, IsClaimCode("ABC12"))
	assert.False(t, IsClaimCode("ABC1234"))
	assert.False(t, IsClaimCode("ABC 12"))
	assert.False(t, IsClaimCode(""))
}

func TestSessionAuthenticated(t *testing.T) {
	assert.False(t, Session{}.Authenticated())
	assert.False(t, Session{Credentials: &Credentials{MemberID: "m"}}.Authenticated())
	assert.False(t, Session{Credentials: &Credentials{SessionKey: "k"}}.Authenticated())
	assert.True(t, Session{Credentials: &Credentials{MemberID: "m", SessionKey: "k"}}.Authenticated())
}
