package commands

import (
	"fmt"
	"strings"

	"github.com/fivetwenty-io/zefix/internal/constants"
	"github.com/fivetwenty-io/zefix/pkg/uid"
	"github.com/fivetwenty-io/zefix/pkg/zefix"
	"github.com/spf13/cobra"
)

// NewCompanyCommand creates the company command group.
func NewCompanyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "company",
		Aliases: []string{"companies"},
		Short:   "Look up companies",
		Long:    "Search the commercial registry and fetch company details",
	}

	cmd.AddCommand(newCompanySearchCommand())
	cmd.AddCommand(newCompanyGetCommand())

	return cmd
}

func newCompanySearchCommand() *cobra.Command {
	var (
		canton     string
		activeOnly bool
		legalForms []int
	)

	cmd := &cobra.Command{
		Use:   "search NAME",
		Short: "Search companies by name",
		Long:  "Search companies by name. A * in NAME acts as a wildcard.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, id := range legalForms {
				if id <= 0 {
					return fmt.Errorf("%w: %d", constants.ErrInvalidLegalForm, id)
				}
			}

			request := &zefix.CompanySearchRequest{
				Name:         strings.Join(args, " "),
				LegalFormIDs: legalForms,
				Canton:       strings.ToUpper(canton),
				ActiveOnly:   activeOnly,
			}

			zefixClient, err := CreateClient(cmd)
			if err != nil {
				return err
			}

			companies, err := zefixClient.Companies().Search(commandContext(cmd), request)
			if err != nil {
				return fmt.Errorf("failed to search companies: %w", err)
			}

			return render(cmd.OutOrStdout(), companies, func() *table {
				t := &table{header: []string{"Name", "UID", "Seat", "Legal Form", "Status"}}
				companyRows(t, companies)

				return t
			})
		},
	}

	cmd.Flags().StringVar(&canton, "canton", "", "restrict to a canton, e.g. ZH")
	cmd.Flags().BoolVar(&activeOnly, "active-only", false, "only return active companies")
	cmd.Flags().IntSliceVar(&legalForms, "legal-form", nil, "restrict to legal form IDs (repeatable)")

	return cmd
}

func newCompanyGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get UID...",
		Short: "Get company details by UID",
		Long:  "Fetch the full records of one or more companies. UIDs may be given in any notation; duplicates are fetched once.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ordered := make([]uid.UID, 0, len(args))
			seen := make(map[uid.UID]bool, len(args))

			for _, raw := range args {
				normalized, ok := uid.Normalize(raw)
				if !ok {
					return fmt.Errorf("%w: %q", zefix.ErrInvalidUID, raw)
				}

				if !seen[normalized] {
					seen[normalized] = true
					ordered = append(ordered, normalized)
				}
			}

			zefixClient, err := CreateClient(cmd)
			if err != nil {
				return err
			}

			byUID, err := zefixClient.Companies().GetMany(commandContext(cmd), args)
			if err != nil {
				return fmt.Errorf("failed to get companies: %w", err)
			}

			companies := make([]zefix.CompanyFull, 0, len(ordered))
			for _, id := range ordered {
				companies = append(companies, byUID[id]...)
			}

			return render(cmd.OutOrStdout(), companies, func() *table {
				t := &table{header: []string{"Name", "UID", "Seat", "Legal Form", "Status", "Address"}}
				for _, company := range companies {
					t.add(
						company.Name,
						company.FormattedUID(),
						orNA(company.LegalSeat),
						orNA(company.LegalForm.ShortName.Get("de")),
						orNA(company.Status),
						orNA(formatAddress(company.Address)),
					)
				}

				return t
			})
		},
	}
}

func formatAddress(address zefix.Address) string {
	street := strings.TrimSpace(address.Street + " " + address.HouseNumber)
	city := strings.TrimSpace(address.SwissZipCode + " " + address.City)

	parts := make([]string, 0, 2)
	for _, part := range []string{street, city} {
		if part != "" {
			parts = append(parts, part)
		}
	}

	return strings.Join(parts, ", ")
}
