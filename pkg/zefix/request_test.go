package zefix_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/fivetwenty-io/zefix/pkg/zefix"
	"github.com/stretchr/testify/assert"
)

func TestRequest_Clone(t *testing.T) {
	t.Parallel()

	original := &zefix.Request{
		Method:   http.MethodPost,
		Path:     "/api/v1/company/search",
		Query:    url.Values{"lang": []string{"de"}},
		Headers:  http.Header{"Accept": []string{"application/json"}},
		Body:     []byte(`{"name":"Migros"}`),
		Metadata: map[string]interface{}{"key": "value"},
	}

	clone := original.Clone()
	assert.Equal(t, original, clone)

	clone.Query.Set("lang", "fr")
	clone.Headers.Set("Accept", "text/plain")
	clone.Body[2] = 'N'
	clone.Metadata["key"] = "changed"

	assert.Equal(t, "de", original.Query.Get("lang"))
	assert.Equal(t, "application/json", original.Headers.Get("Accept"))
	assert.Equal(t, `{"name":"Migros"}`, string(original.Body))
	assert.Equal(t, "value", original.Metadata["key"])
}

func TestRequest_CloneEmpty(t *testing.T) {
	t.Parallel()

	var nilRequest *zefix.Request

	clone := nilRequest.Clone()
	assert.NotNil(t, clone.Headers)

	clone = (&zefix.Request{Method: http.MethodGet}).Clone()
	assert.NotNil(t, clone.Headers)
	assert.Nil(t, clone.Query)
	assert.Nil(t, clone.Body)
}
