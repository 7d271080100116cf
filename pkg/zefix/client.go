package zefix

import (
	"context"
	"time"

	"github.com/fivetwenty-io/zefix/pkg/uid"
)

// CompaniesClient looks up companies.
type CompaniesClient interface {
	Search(ctx context.Context, request *CompanySearchRequest) ([]Company, error)
	// GetByUID accepts any textual UID form; invalid input fails with
	// ErrInvalidUID before a request is made.
	GetByUID(ctx context.Context, rawUID string) ([]CompanyFull, error)
	GetByCHID(ctx context.Context, chid string) ([]CompanyFull, error)
	GetByEHRAID(ctx context.Context, ehraid int64) (*CompanyFull, error)
	// GetMany fetches several UIDs concurrently, one request per distinct UID.
	GetMany(ctx context.Context, rawUIDs []string) (map[uid.UID][]CompanyFull, error)
}

// LegalFormsClient lists legal forms.
type LegalFormsClient interface {
	List(ctx context.Context) ([]LegalForm, error)
}

// RegistryOfficesClient lists cantonal registry offices.
type RegistryOfficesClient interface {
	List(ctx context.Context) ([]RegistryOffice, error)
}

// CommunitiesClient lists municipalities.
type CommunitiesClient interface {
	List(ctx context.Context) ([]Community, error)
}

// SOGCClient reads gazette publications.
type SOGCClient interface {
	ByDate(ctx context.Context, date time.Time) ([]SOGCEntry, error)
	Get(ctx context.Context, id int64) ([]SOGCEntry, error)
}

// Client is the ZEFIX API client.
type Client interface {
	Companies() CompaniesClient
	LegalForms() LegalFormsClient
	RegistryOffices() RegistryOfficesClient
	Communities() CommunitiesClient
	SOGC() SOGCClient

	// SetCredentials replaces the Basic credentials of all subsequent requests.
	SetCredentials(username, password string)
	// ClearCredentials stops sending an Authorization header.
	ClearCredentials()
	// SetThrottle replaces the minimum interval between requests; zero disables it.
	SetThrottle(minInterval time.Duration)
}
