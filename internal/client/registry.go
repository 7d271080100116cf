package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fivetwenty-io/zefix/internal/constants"
	"github.com/fivetwenty-io/zefix/internal/http"
	"github.com/fivetwenty-io/zefix/pkg/zefix"
)

// listResource fetches a top level list endpoint such as /legalForm.
func listResource[T any](ctx context.Context, httpClient *http.Client, path, name string) ([]T, error) {
	resp, err := httpClient.Get(ctx, constants.APIPathPrefix+path, nil)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", name, err)
	}

	var list []T

	err = json.Unmarshal(resp.Body, &list)
	if err != nil {
		return nil, fmt.Errorf("parsing %s list: %w", name, err)
	}

	return list, nil
}

// LegalFormsClient implements zefix.LegalFormsClient.
type LegalFormsClient struct {
	httpClient *http.Client
}

// NewLegalFormsClient creates a new legal forms client.
func NewLegalFormsClient(httpClient *http.Client) *LegalFormsClient {
	return &LegalFormsClient{httpClient: httpClient}
}

// List implements zefix.LegalFormsClient.List.
func (c *LegalFormsClient) List(ctx context.Context) ([]zefix.LegalForm, error) {
	return listResource[zefix.LegalForm](ctx, c.httpClient, "/legalForm", "legal forms")
}

// RegistryOfficesClient implements zefix.RegistryOfficesClient.
type RegistryOfficesClient struct {
	httpClient *http.Client
}

// NewRegistryOfficesClient creates a new registry offices client.
func NewRegistryOfficesClient(httpClient *http.Client) *RegistryOfficesClient {
	return &RegistryOfficesClient{httpClient: httpClient}
}

// List implements zefix.RegistryOfficesClient.List.
func (c *RegistryOfficesClient) List(ctx context.Context) ([]zefix.RegistryOffice, error) {
	return listResource[zefix.RegistryOffice](ctx, c.httpClient, "/registryOfCommerce", "registry offices")
}

// CommunitiesClient implements zefix.CommunitiesClient.
type CommunitiesClient struct {
	httpClient *http.Client
}

// NewCommunitiesClient creates a new communities client.
func NewCommunitiesClient(httpClient *http.Client) *CommunitiesClient {
	return &CommunitiesClient{httpClient: httpClient}
}

// List implements zefix.CommunitiesClient.List.
func (c *CommunitiesClient) List(ctx context.Context) ([]zefix.Community, error) {
	return listResource[zefix.Community](ctx, c.httpClient, "/community", "communities")
}
