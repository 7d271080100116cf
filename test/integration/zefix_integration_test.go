//go:build integration

package integration

import (
	"testing"
	"time"

	"github.com/fivetwenty-io/zefix/pkg/uid"
	"github.com/fivetwenty-io/zefix/pkg/zefix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Migros-Genossenschafts-Bund, a long-lived registry entry.
const knownUID = "CHE-105.829.940"

func TestIntegration_LegalForms(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfNotConfigured(t)

	legalForms, err := config.NewClient(t).LegalForms().List(Context(t))
	require.NoError(t, err)
	assert.NotEmpty(t, legalForms)
}

func TestIntegration_CompanyLookup(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfNotConfigured(t)

	client := config.NewClient(t)
	ctx := Context(t)

	companies, err := client.Companies().Search(ctx, &zefix.CompanySearchRequest{Name: "Migros-Genossenschafts-Bund"})
	require.NoError(t, err)
	require.NotEmpty(t, companies)

	found := false
	for _, company := range companies {
		if uid.Equal(company.UID, knownUID) {
			found = true
		}
	}

	assert.True(t, found, "search result should contain %s", knownUID)

	details, err := client.Companies().GetByUID(ctx, "che105829940")
	require.NoError(t, err)
	require.NotEmpty(t, details)
	assert.Equal(t, knownUID, details[0].FormattedUID())
}

func TestIntegration_Throttle(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfNotConfigured(t)

	client := config.NewClient(t)
	client.SetThrottle(time.Second)

	start := time.Now()

	for range 3 {
		_, err := client.LegalForms().List(Context(t))
		require.NoError(t, err)
	}

	assert.GreaterOrEqual(t, time.Since(start), 2*time.Second)
}

func TestIntegration_BadCredentials(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfNotConfigured(t)

	client := config.NewClient(t)
	client.SetCredentials(config.Username, "not-the-password")

	_, err := client.Companies().GetByUID(Context(t), knownUID)
	require.Error(t, err)
	assert.True(t, zefix.IsUnauthorized(err))
	assert.NotContains(t, err.Error(), zefix.ToBase64(config.Username+":not-the-password"))
}
