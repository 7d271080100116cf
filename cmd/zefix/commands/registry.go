package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fivetwenty-io/zefix/pkg/zefix"
	"github.com/spf13/cobra"
)

// NewLegalFormsCommand creates the legal-forms command.
func NewLegalFormsCommand() *cobra.Command {
	var lang string

	cmd := &cobra.Command{
		Use:   "legal-forms",
		Short: "List legal forms",
		Long:  "List the legal forms known to the registry with the IDs accepted by 'company search --legal-form'",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			zefixClient, err := CreateClient(cmd)
			if err != nil {
				return err
			}

			legalForms, err := zefixClient.LegalForms().List(commandContext(cmd))
			if err != nil {
				return fmt.Errorf("failed to list legal forms: %w", err)
			}

			return render(cmd.OutOrStdout(), legalForms, func() *table {
				t := &table{header: []string{"ID", "Short Name", "Name"}}
				for _, legalForm := range legalForms {
					t.add(
						strconv.Itoa(legalForm.ID),
						orNA(legalForm.ShortName.Get(lang)),
						orNA(legalForm.Name.Get(lang)),
					)
				}

				return t
			})
		},
	}

	cmd.Flags().StringVar(&lang, "lang", "de", "display language (de, fr, it, en)")

	return cmd
}

// NewRegistryOfficesCommand creates the registry-offices command.
func NewRegistryOfficesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "registry-offices",
		Short: "List cantonal registry offices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			zefixClient, err := CreateClient(cmd)
			if err != nil {
				return err
			}

			offices, err := zefixClient.RegistryOffices().List(commandContext(cmd))
			if err != nil {
				return fmt.Errorf("failed to list registry offices: %w", err)
			}

			return render(cmd.OutOrStdout(), offices, func() *table {
				t := &table{header: []string{"ID", "Canton", "Address", "Homepage"}}
				for _, office := range offices {
					t.add(
						strconv.Itoa(office.RegistryOfCommerceID),
						office.Canton,
						orNA(joinNonEmpty(office.Address1, office.Address2, office.Address3, office.Address4)),
						orNA(office.Homepage),
					)
				}

				return t
			})
		},
	}
}

// NewCommunitiesCommand creates the communities command.
func NewCommunitiesCommand() *cobra.Command {
	var canton string

	cmd := &cobra.Command{
		Use:   "communities",
		Short: "List municipalities",
		Long:  "List political municipalities with their BFS numbers, optionally restricted to one canton",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			zefixClient, err := CreateClient(cmd)
			if err != nil {
				return err
			}

			communities, err := zefixClient.Communities().List(commandContext(cmd))
			if err != nil {
				return fmt.Errorf("failed to list communities: %w", err)
			}

			communities = filterCommunities(communities, canton)

			return render(cmd.OutOrStdout(), communities, func() *table {
				t := &table{header: []string{"BFS ID", "Name", "Canton"}}
				for _, community := range communities {
					t.add(strconv.Itoa(community.BFSID), community.Name, community.Canton)
				}

				return t
			})
		},
	}

	cmd.Flags().StringVar(&canton, "canton", "", "only list communities of this canton, e.g. BE")

	return cmd
}

func filterCommunities(communities []zefix.Community, canton string) []zefix.Community {
	if canton == "" {
		return communities
	}

	filtered := make([]zefix.Community, 0, len(communities))
	for _, community := range communities {
		if strings.EqualFold(community.Canton, canton) {
			filtered = append(filtered, community)
		}
	}

	return filtered
}

func joinNonEmpty(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			kept = append(kept, part)
		}
	}

	return strings.Join(kept, ", ")
}
