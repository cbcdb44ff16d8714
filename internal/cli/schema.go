package cli

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/ppiankov/lovekey/internal/model"
	"github.com/spf13/cobra"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON Schema of the report",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := reportSchema()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	},
}

// reportSchema reflects the wire shape of a report into JSON Schema
func reportSchema() ([]byte, error) {
	r := &jsonschema.Reflector{
		DoNotReference: true,
	}
	schema := r.Reflect(&model.ReportDocument{})
	schema.Title = "lovekey unity coefficient report"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	return data, nil
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}
