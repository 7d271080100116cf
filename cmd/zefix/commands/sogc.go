package commands

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/fivetwenty-io/zefix/internal/constants"
	"github.com/fivetwenty-io/zefix/pkg/zefix"
	"github.com/spf13/cobra"
)

// NewSOGCCommand creates the sogc command group.
func NewSOGCCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sogc",
		Short: "Read Swiss Official Gazette of Commerce publications",
	}

	cmd.AddCommand(newSOGCByDateCommand())
	cmd.AddCommand(newSOGCGetCommand())

	return cmd
}

func newSOGCByDateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "bydate DATE",
		Short: "List publications of a day",
		Long:  "List the publications of one day. DATE accepts most notations, e.g. 2024-03-01, 01.03.2024 or \"March 1, 2024\".",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := parseDate(args[0])
			if err != nil {
				return err
			}

			zefixClient, err := CreateClient(cmd)
			if err != nil {
				return err
			}

			entries, err := zefixClient.SOGC().ByDate(commandContext(cmd), date)
			if err != nil {
				return fmt.Errorf("failed to list SOGC publications: %w", err)
			}

			return renderSOGCEntries(cmd, entries)
		},
	}
}

func newSOGCGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Get a publication by SOGC ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("%w: %q", zefix.ErrInvalidSOGCID, args[0])
			}

			zefixClient, err := CreateClient(cmd)
			if err != nil {
				return err
			}

			entries, err := zefixClient.SOGC().Get(commandContext(cmd), id)
			if err != nil {
				return fmt.Errorf("failed to get SOGC publication: %w", err)
			}

			return renderSOGCEntries(cmd, entries)
		},
	}
}

// swissDateLayout is the day-first dotted notation, e.g. 1.3.2024 or 01.03.2024.
const swissDateLayout = "2.1.2006"

// parseDate accepts free-form dates. Dotted dates are read day first.
func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)

	date, err := time.ParseInLocation(swissDateLayout, value, time.Local)
	if err == nil {
		return date, nil
	}

	date, err = dateparse.ParseIn(value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", constants.ErrInvalidDate, value)
	}

	return date, nil
}

func renderSOGCEntries(cmd *cobra.Command, entries []zefix.SOGCEntry) error {
	return render(cmd.OutOrStdout(), entries, func() *table {
		t := &table{header: []string{"SOGC ID", "Date", "Company", "UID", "Canton", "Mutations"}}
		for _, entry := range entries {
			mutations := make([]string, 0, len(entry.SOGCPublication.Mutations))
			for _, mutation := range entry.SOGCPublication.Mutations {
				mutations = append(mutations, mutation.Key)
			}

			t.add(
				strconv.FormatInt(entry.SOGCPublication.SOGCID, 10),
				entry.SOGCPublication.SOGCDate,
				entry.Company.Name,
				entry.Company.FormattedUID(),
				orNA(entry.SOGCPublication.RegistryOfCommerceCanton),
				orNA(strings.Join(mutations, ", ")),
			)
		}

		return t
	})
}
