package commands

import (
	"fmt"
	"strconv"

	"github.com/fivetwenty-io/zefix/pkg/uid"
	"github.com/fivetwenty-io/zefix/pkg/zefix"
	"github.com/spf13/cobra"
)

// uidResult is one row of the uid normalize and validate output.
type uidResult struct {
	Input     string `json:"input"               yaml:"input"`
	Valid     bool   `json:"valid"               yaml:"valid"`
	UID       string `json:"uid,omitempty"       yaml:"uid,omitempty"`
	Formatted string `json:"formatted,omitempty" yaml:"formatted,omitempty"`
	Compact   string `json:"compact,omitempty"   yaml:"compact,omitempty"`
}

func newUIDResult(raw string) uidResult {
	result := uidResult{Input: raw}

	normalized, ok := uid.Normalize(raw)
	if ok {
		result.Valid = true
		result.UID = normalized.String()
		result.Formatted = normalized.Formatted()
		result.Compact = normalized.Compact()
	}

	return result
}

// NewUIDCommand creates the uid command group. Its commands work offline.
func NewUIDCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "uid",
		Short: "Work with Swiss business identification numbers",
		Long:  "Normalize, format, validate and compare UIDs such as CHE-123.456.789 without calling the API",
	}

	cmd.AddCommand(newUIDNormalizeCommand())
	cmd.AddCommand(newUIDFormatCommand())
	cmd.AddCommand(newUIDValidateCommand())
	cmd.AddCommand(newUIDEqualsCommand())

	return cmd
}

func newUIDNormalizeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "normalize UID...",
		Short: "Normalize UIDs",
		Long:  "Print the normalized, display and compact forms of each UID. Fails when any input is not a UID.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results := make([]uidResult, 0, len(args))
			for _, raw := range args {
				result := newUIDResult(raw)
				if !result.Valid {
					return fmt.Errorf("%w: %q", zefix.ErrInvalidUID, raw)
				}

				results = append(results, result)
			}

			return render(cmd.OutOrStdout(), results, func() *table {
				t := &table{header: []string{"Input", "UID", "Formatted", "Compact"}}
				for _, result := range results {
					t.add(result.Input, result.UID, result.Formatted, result.Compact)
				}

				return t
			})
		},
	}
}

func newUIDFormatCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "format UID...",
		Short: "Format UIDs for display",
		Long:  "Print each UID as CHE-DDD.DDD.DDD, one per line. Inputs that are not UIDs are printed unchanged.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, raw := range args {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), uid.Format(raw))
			}

			return nil
		},
	}
}

func newUIDValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate UID...",
		Short: "Check whether inputs are UIDs",
		Long:  "Report for each input whether it is a well-formed UID. Exits with an error when any input is invalid.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results := make([]uidResult, 0, len(args))
			invalid := 0

			for _, raw := range args {
				result := newUIDResult(raw)
				if !result.Valid {
					invalid++
				}

				results = append(results, result)
			}

			err := render(cmd.OutOrStdout(), results, func() *table {
				t := &table{header: []string{"Input", "Valid", "Formatted"}}
				for _, result := range results {
					t.add(result.Input, strconv.FormatBool(result.Valid), orNA(result.Formatted))
				}

				return t
			})
			if err != nil {
				return err
			}

			if invalid > 0 {
				return fmt.Errorf("%w: %d of %d inputs", zefix.ErrInvalidUID, invalid, len(args))
			}

			return nil
		},
	}
}

func newUIDEqualsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "equals A B",
		Short: "Compare two UIDs",
		Long:  "Print true when both inputs are UIDs denoting the same number, regardless of notation",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), strconv.FormatBool(uid.Equal(args[0], args[1])))

			return nil
		},
	}
}
