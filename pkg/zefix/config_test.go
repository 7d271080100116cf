package zefix_test

import (
	"testing"
	"time"

	"github.com/fivetwenty-io/zefix/pkg/zefix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		config  *zefix.Config
		wantErr error
		wantMsg string
	}{
		{
			name:   "minimal",
			config: &zefix.Config{BaseURL: "https://www.zefix.admin.ch/ZefixPublicREST"},
		},
		{
			name: "complete",
			config: &zefix.Config{
				BaseURL:      "https://www.zefix.admin.ch/ZefixPublicREST",
				Auth:         &zefix.BasicAuth{Username: "user", Password: "secret"},
				Throttle:     &zefix.ThrottleConfig{MinInterval: 500 * time.Millisecond},
				RetryMax:     3,
				RetryWaitMin: time.Second,
				RetryWaitMax: 5 * time.Second,
			},
		},
		{name: "nil", config: nil, wantErr: zefix.ErrConfigRequired},
		{name: "empty base URL", config: &zefix.Config{}, wantErr: zefix.ErrBaseURLRequired},
		{name: "malformed base URL", config: &zefix.Config{BaseURL: "not a url"}, wantMsg: "BaseURL"},
		{
			name:    "username without password",
			config:  &zefix.Config{BaseURL: "https://example.com", Auth: &zefix.BasicAuth{Username: "user"}},
			wantMsg: "Password",
		},
		{
			name:    "password without username",
			config:  &zefix.Config{BaseURL: "https://example.com", Auth: &zefix.BasicAuth{Password: "secret"}},
			wantMsg: "username",
		},
		{
			name:    "negative throttle",
			config:  &zefix.Config{BaseURL: "https://example.com", Throttle: &zefix.ThrottleConfig{MinInterval: -time.Second}},
			wantMsg: "min_interval",
		},
		{
			name:    "negative retries",
			config:  &zefix.Config{BaseURL: "https://example.com", RetryMax: -1},
			wantMsg: "RetryMax",
		},
		{
			name:   "empty credentials are allowed",
			config: &zefix.Config{BaseURL: "https://example.com", Auth: &zefix.BasicAuth{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.config.Validate()

			switch {
			case tt.wantErr != nil:
				require.ErrorIs(t, err, tt.wantErr)
			case tt.wantMsg != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), "invalid config")
				assert.Contains(t, err.Error(), tt.wantMsg)
			default:
				require.NoError(t, err)
			}
		})
	}
}

func TestCompanySearchRequest_Validate(t *testing.T) {
	t.Parallel()

	require.NoError(t, zefix.CompanySearchRequest{Name: "Migros"}.Validate())
	require.NoError(t, zefix.CompanySearchRequest{Name: "Migros", Canton: "ZH"}.Validate())

	err := zefix.CompanySearchRequest{}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), zefix.ErrSearchNameRequired.Error())

	require.Error(t, zefix.CompanySearchRequest{Name: "Migros", Canton: "Zürich"}.Validate())
}
