package commands

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fivetwenty-io/zefix/pkg/zefix"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRegistryServer(t *testing.T) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/legalForm":
			writeJSON(t, w, http.StatusOK, []zefix.LegalForm{
				{ID: 3, Name: zefix.MultiLanguage{De: "Aktiengesellschaft", Fr: "Société anonyme"}, ShortName: zefix.MultiLanguage{De: "AG", Fr: "SA"}},
			})
		case "/api/v1/registryOfCommerce":
			writeJSON(t, w, http.StatusOK, []zefix.RegistryOffice{
				{RegistryOfCommerceID: 20, Canton: "ZH", Address1: "Handelsregisteramt", Address2: "Schöntalstrasse 5"},
			})
		case "/api/v1/community":
			writeJSON(t, w, http.StatusOK, []zefix.Community{
				{BFSID: 261, Name: "Zürich", Canton: "ZH"},
				{BFSID: 351, Name: "Bern", Canton: "BE"},
			})
		default:
			writeJSON(t, w, http.StatusNotFound, map[string]string{"error": "not found"})
		}
	}))

	t.Cleanup(server.Close)

	return server
}

func TestLegalFormsCommand(t *testing.T) {
	setupViper(t)
	viper.Set(KeyBaseURL, newRegistryServer(t).URL)

	cmd := NewLegalFormsCommand()
	assert.Equal(t, "legal-forms", cmd.Use)
	assert.Equal(t, "de", cmd.Flags().Lookup("lang").DefValue)

	stdout, _, err := execute(t, cmd, "--lang", "fr")
	require.NoError(t, err)
	assert.Contains(t, stdout, "SA")
	assert.Contains(t, stdout, "Société anonyme")
}

func TestRegistryOfficesCommand(t *testing.T) {
	setupViper(t)
	viper.Set(KeyBaseURL, newRegistryServer(t).URL)
	viper.Set(KeyOutput, "yaml")

	stdout, _, err := execute(t, NewRegistryOfficesCommand())
	require.NoError(t, err)
	assert.Contains(t, stdout, "canton: ZH")
	assert.Contains(t, stdout, "registryOfCommerceId: 20")
}

func TestCommunitiesCommand(t *testing.T) {
	setupViper(t)
	viper.Set(KeyBaseURL, newRegistryServer(t).URL)
	viper.Set(KeyOutput, "json")

	stdout, _, err := execute(t, NewCommunitiesCommand(), "--canton", "be")
	require.NoError(t, err)

	var communities []zefix.Community
	decodeJSON(t, stdout, &communities)
	require.Len(t, communities, 1)
	assert.Equal(t, "Bern", communities[0].Name)
}

func TestJoinNonEmpty(t *testing.T) {
	assert.Equal(t, "a, b", joinNonEmpty("a", " ", "", "b"))
	assert.Empty(t, joinNonEmpty())
}
