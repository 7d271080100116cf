package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fivetwenty-io/zefix/internal/constants"
	"github.com/fivetwenty-io/zefix/pkg/zefix"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// outputFormat returns the selected output format.
func outputFormat() (string, error) {
	format := strings.ToLower(viper.GetString(KeyOutput))

	switch format {
	case "", constants.FormatTable:
		return constants.FormatTable, nil
	case constants.FormatJSON, constants.FormatYAML:
		return format, nil
	default:
		return "", fmt.Errorf("%w: %q", constants.ErrUnsupportedOutput, format)
	}
}

// table is a header plus rows rendered with tablewriter.
type table struct {
	header []string
	rows   [][]string
}

func (t *table) add(cells ...string) {
	t.rows = append(t.rows, cells)
}

func (t *table) render(writer io.Writer) error {
	tw := tablewriter.NewWriter(writer)
	tw.Header(toAny(t.header)...)

	for _, row := range t.rows {
		_ = tw.Append(toAny(row)...)
	}

	err := tw.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func toAny(cells []string) []any {
	values := make([]any, len(cells))
	for i, cell := range cells {
		values[i] = cell
	}

	return values
}

// render writes value as JSON or YAML, or builds and renders a table.
func render(writer io.Writer, value interface{}, buildTable func() *table) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}

	switch format {
	case constants.FormatJSON:
		encoder := json.NewEncoder(writer)
		encoder.SetIndent("", strings.Repeat(" ", constants.JSONIndentSize))

		return encoder.Encode(value)
	case constants.FormatYAML:
		encoder := yaml.NewEncoder(writer)
		defer func() { _ = encoder.Close() }()

		return encoder.Encode(value)
	default:
		return buildTable().render(writer)
	}
}

func orNA(value string) string {
	if value == "" {
		return constants.NotAvailable
	}

	return value
}

func companyRows(t *table, companies []zefix.Company) {
	for _, company := range companies {
		t.add(
			company.Name,
			company.FormattedUID(),
			orNA(company.LegalSeat),
			orNA(company.LegalForm.ShortName.Get("de")),
			orNA(company.Status),
		)
	}
}
