package zefix

import (
	"github.com/fivetwenty-io/zefix/pkg/uid"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Company status values.
const (
	StatusActive         = "ACTIVE"
	StatusCancelled      = "CANCELLED"
	StatusBeingCancelled = "BEING_CANCELLED"
)

// MultiLanguage holds a text in the four national languages.
type MultiLanguage struct {
	De string `json:"de,omitempty" yaml:"de,omitempty"`
	Fr string `json:"fr,omitempty" yaml:"fr,omitempty"`
	It string `json:"it,omitempty" yaml:"it,omitempty"`
	En string `json:"en,omitempty" yaml:"en,omitempty"`
}

// Get returns the text in lang ("de", "fr", "it", "en"), falling back to
// German, then to the first non-empty translation.
func (m MultiLanguage) Get(lang string) string {
	byLang := map[string]string{"de": m.De, "fr": m.Fr, "it": m.It, "en": m.En}
	if text := byLang[lang]; text != "" {
		return text
	}

	for _, text := range []string{m.De, m.Fr, m.It, m.En} {
		if text != "" {
			return text
		}
	}

	return ""
}

// LegalForm represents a legal form such as "Aktiengesellschaft".
type LegalForm struct {
	ID        int           `json:"id"        yaml:"id"`
	UID       string        `json:"uid"       yaml:"uid"`
	Name      MultiLanguage `json:"name"      yaml:"name"`
	ShortName MultiLanguage `json:"shortName" yaml:"shortName"`
}

// Company is the short company record returned by searches and publications.
type Company struct {
	Name                 string    `json:"name"                   yaml:"name"`
	EHRAID               int64     `json:"ehraid"                 yaml:"ehraid"`
	UID                  string    `json:"uid"                    yaml:"uid"`
	CHID                 string    `json:"chid"                   yaml:"chid"`
	LegalSeatID          int       `json:"legalSeatId"            yaml:"legalSeatId"`
	LegalSeat            string    `json:"legalSeat"              yaml:"legalSeat"`
	RegistryOfCommerceID int       `json:"registryOfCommerceId"   yaml:"registryOfCommerceId"`
	LegalForm            LegalForm `json:"legalForm"              yaml:"legalForm"`
	Status               string    `json:"status"                 yaml:"status"`
	SOGCDate             string    `json:"sogcDate,omitempty"     yaml:"sogcDate,omitempty"`
	DeletionDate         string    `json:"deletionDate,omitempty" yaml:"deletionDate,omitempty"`
}

// NormalizedUID returns the company UID in normalized form.
func (c Company) NormalizedUID() (uid.UID, bool) {
	return uid.Normalize(c.UID)
}

// FormattedUID returns the company UID in display form "CHE-DDD.DDD.DDD".
func (c Company) FormattedUID() string {
	return uid.Format(c.UID)
}

// Address represents a company domicile.
type Address struct {
	Organisation string `json:"organisation,omitempty" yaml:"organisation,omitempty"`
	CareOf       string `json:"careOf,omitempty"       yaml:"careOf,omitempty"`
	Street       string `json:"street,omitempty"       yaml:"street,omitempty"`
	HouseNumber  string `json:"houseNumber,omitempty"  yaml:"houseNumber,omitempty"`
	Addon        string `json:"addon,omitempty"        yaml:"addon,omitempty"`
	POBox        string `json:"poBox,omitempty"        yaml:"poBox,omitempty"`
	City         string `json:"city,omitempty"         yaml:"city,omitempty"`
	SwissZipCode string `json:"swissZipCode,omitempty" yaml:"swissZipCode,omitempty"`
}

// OldName is a former company name.
type OldName struct {
	Name     string `json:"name"       yaml:"name"`
	Sequence int    `json:"sequenceNr" yaml:"sequenceNr"`
}

// CompanyFull is the detailed company record.
type CompanyFull struct {
	Company `yaml:",inline"`

	Translation        []string          `json:"translation,omitempty"    yaml:"translation,omitempty"`
	Purpose            string            `json:"purpose,omitempty"        yaml:"purpose,omitempty"`
	SOGCPublications   []SOGCPublication `json:"sogcPub,omitempty"        yaml:"sogcPub,omitempty"`
	Address            Address           `json:"address"                  yaml:"address"`
	AuditFirms         []Company         `json:"auditFirms,omitempty"     yaml:"auditFirms,omitempty"`
	OldNames           []OldName         `json:"oldNames,omitempty"       yaml:"oldNames,omitempty"`
	BranchOffices      []Company         `json:"branchOffices,omitempty"  yaml:"branchOffices,omitempty"`
	HasTakenOver       []Company         `json:"hasTakenOver,omitempty"   yaml:"hasTakenOver,omitempty"`
	WasTakenOverBy     []Company         `json:"wasTakenOverBy,omitempty" yaml:"wasTakenOverBy,omitempty"`
	CantonalExcerptWeb string            `json:"cantonalExcerptWeb,omitempty" yaml:"cantonalExcerptWeb,omitempty"`
	ZefixDetailWeb     MultiLanguage     `json:"zefixDetailWeb"           yaml:"zefixDetailWeb"`
}

// Mutation is one change type announced by a publication.
type Mutation struct {
	Key string `json:"key" yaml:"key"`
}

// SOGCPublication is a Swiss Official Gazette of Commerce publication.
type SOGCPublication struct {
	SOGCDate                     string     `json:"sogcDate"                     yaml:"sogcDate"`
	SOGCID                       int64      `json:"sogcId"                       yaml:"sogcId"`
	RegistryOfCommerceID         int        `json:"registryOfCommerceId"         yaml:"registryOfCommerceId"`
	RegistryOfCommerceCanton     string     `json:"registryOfCommerceCanton"     yaml:"registryOfCommerceCanton"`
	RegistryOfCommerceJournalID  int64      `json:"registryOfCommerceJournalId"  yaml:"registryOfCommerceJournalId"`
	RegistryOfCommerceJournalDay string     `json:"registryOfCommerceJournalDate" yaml:"registryOfCommerceJournalDate"`
	Message                      string     `json:"message"                      yaml:"message"`
	Mutations                    []Mutation `json:"mutationTypes,omitempty"      yaml:"mutationTypes,omitempty"`
}

// SOGCEntry pairs a publication with the company it concerns.
type SOGCEntry struct {
	Company         Company         `json:"companyShort"    yaml:"companyShort"`
	SOGCPublication SOGCPublication `json:"sogcPublication" yaml:"sogcPublication"`
}

// RegistryOffice is a cantonal commercial registry office.
type RegistryOffice struct {
	RegistryOfCommerceID int    `json:"registryOfCommerceId" yaml:"registryOfCommerceId"`
	Canton               string `json:"canton"               yaml:"canton"`
	Address1             string `json:"address1,omitempty"   yaml:"address1,omitempty"`
	Address2             string `json:"address2,omitempty"   yaml:"address2,omitempty"`
	Address3             string `json:"address3,omitempty"   yaml:"address3,omitempty"`
	Address4             string `json:"address4,omitempty"   yaml:"address4,omitempty"`
	Homepage             string `json:"homepage,omitempty"   yaml:"homepage,omitempty"`
	Email                string `json:"email,omitempty"      yaml:"email,omitempty"`
}

// Community is a political municipality.
type Community struct {
	BFSID                int    `json:"bfsId"                yaml:"bfsId"`
	Canton               string `json:"canton"               yaml:"canton"`
	Name                 string `json:"name"                 yaml:"name"`
	RegistryOfCommerceID int    `json:"registryOfCommerceId" yaml:"registryOfCommerceId"`
}

// CompanySearchRequest is the body of a company search.
type CompanySearchRequest struct {
	Name                  string `json:"name"                            yaml:"name"`
	LegalFormIDs          []int  `json:"legalFormIds,omitempty"          yaml:"legalFormIds,omitempty"`
	LegalSeatIDs          []int  `json:"legalSeatIds,omitempty"          yaml:"legalSeatIds,omitempty"`
	RegistryOfCommerceIDs []int  `json:"registryOfCommerceIds,omitempty" yaml:"registryOfCommerceIds,omitempty"`
	Canton                string `json:"canton,omitempty"                yaml:"canton,omitempty"`
	ActiveOnly            bool   `json:"activeOnly"                      yaml:"activeOnly"`
}

// Validate checks the search request.
func (r CompanySearchRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required.Error(ErrSearchNameRequired.Error())),
		validation.Field(&r.Canton, validation.Length(2, 2)),
	)
}
