package client

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/fivetwenty-io/zefix/internal/constants"
	"github.com/fivetwenty-io/zefix/internal/http"
	"github.com/fivetwenty-io/zefix/pkg/uid"
	"github.com/fivetwenty-io/zefix/pkg/zefix"
	"golang.org/x/sync/errgroup"
)

var chidPattern = regexp.MustCompile(`^CH\d{11}$`)

// CompaniesClient implements zefix.CompaniesClient.
type CompaniesClient struct {
	httpClient *http.Client
}

// NewCompaniesClient creates a new companies client.
func NewCompaniesClient(httpClient *http.Client) *CompaniesClient {
	return &CompaniesClient{
		httpClient: httpClient,
	}
}

// Search implements zefix.CompaniesClient.Search.
func (c *CompaniesClient) Search(ctx context.Context, request *zefix.CompanySearchRequest) ([]zefix.Company, error) {
	if request == nil {
		return nil, zefix.ErrSearchNameRequired
	}

	err := request.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid search request: %w", err)
	}

	resp, err := c.httpClient.Post(ctx, constants.APIPathPrefix+"/company/search", request)
	if err != nil {
		return nil, fmt.Errorf("searching companies: %w", err)
	}

	var companies []zefix.Company

	err = json.Unmarshal(resp.Body, &companies)
	if err != nil {
		return nil, fmt.Errorf("parsing company search response: %w", err)
	}

	return companies, nil
}

// GetByUID implements zefix.CompaniesClient.GetByUID.
func (c *CompaniesClient) GetByUID(ctx context.Context, rawUID string) ([]zefix.CompanyFull, error) {
	normalized, ok := uid.Normalize(rawUID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", zefix.ErrInvalidUID, rawUID)
	}

	return c.getFull(ctx, "/company/uid/"+normalized.Compact(), "getting company by UID")
}

// GetByCHID implements zefix.CompaniesClient.GetByCHID. Separators and case
// are ignored, so "CH-020.3.020.656-9" and "ch02030206569" are equal.
func (c *CompaniesClient) GetByCHID(ctx context.Context, chid string) ([]zefix.CompanyFull, error) {
	compact := compactCHID(chid)
	if !chidPattern.MatchString(compact) {
		return nil, fmt.Errorf("%w: %q", zefix.ErrInvalidCHID, chid)
	}

	return c.getFull(ctx, "/company/chid/"+compact, "getting company by CH-ID")
}

// GetByEHRAID implements zefix.CompaniesClient.GetByEHRAID.
func (c *CompaniesClient) GetByEHRAID(ctx context.Context, ehraid int64) (*zefix.CompanyFull, error) {
	if ehraid <= 0 {
		return nil, fmt.Errorf("%w: %d", zefix.ErrInvalidEHRAID, ehraid)
	}

	path := constants.APIPathPrefix + "/company/ehraid/" + strconv.FormatInt(ehraid, 10)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting company by EHRA-ID: %w", err)
	}

	var company zefix.CompanyFull

	err = json.Unmarshal(resp.Body, &company)
	if err != nil {
		return nil, fmt.Errorf("parsing company response: %w", err)
	}

	return &company, nil
}

// GetMany implements zefix.CompaniesClient.GetMany. Inputs that normalize to
// the same UID are fetched once. The first failure cancels the remaining
// lookups.
func (c *CompaniesClient) GetMany(ctx context.Context, rawUIDs []string) (map[uid.UID][]zefix.CompanyFull, error) {
	distinct := make([]uid.UID, 0, len(rawUIDs))
	seen := make(map[uid.UID]struct{}, len(rawUIDs))

	for _, raw := range rawUIDs {
		normalized, ok := uid.Normalize(raw)
		if !ok {
			return nil, fmt.Errorf("%w: %q", zefix.ErrInvalidUID, raw)
		}

		if _, dup := seen[normalized]; dup {
			continue
		}

		seen[normalized] = struct{}{}
		distinct = append(distinct, normalized)
	}

	var (
		mu      sync.Mutex
		results = make(map[uid.UID][]zefix.CompanyFull, len(distinct))
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(constants.DefaultConcurrencyLimit)

	for _, id := range distinct {
		group.Go(func() error {
			companies, err := c.GetByUID(groupCtx, string(id))
			if err != nil {
				return fmt.Errorf("%s: %w", id.Formatted(), err)
			}

			mu.Lock()
			results[id] = companies
			mu.Unlock()

			return nil
		})
	}

	err := group.Wait()
	if err != nil {
		return nil, err
	}

	return results, nil
}

func (c *CompaniesClient) getFull(ctx context.Context, path, action string) ([]zefix.CompanyFull, error) {
	resp, err := c.httpClient.Get(ctx, constants.APIPathPrefix+path, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", action, err)
	}

	var companies []zefix.CompanyFull

	err = json.Unmarshal(resp.Body, &companies)
	if err != nil {
		return nil, fmt.Errorf("parsing company response: %w", err)
	}

	return companies, nil
}

func compactCHID(chid string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '.', '-', ' ':
			return -1
		}

		if r >= 'a' && r <= 'z' {
			return r - 'a' + 'A'
		}

		return r
	}, strings.TrimSpace(chid))
}
