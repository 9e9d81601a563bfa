package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"config-splitter/internal/schema"
)

// ErrSchemaViolations is returned when a document fails validation.
var ErrSchemaViolations = errors.New("document does not match the schema")

var schemaOutput string

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Work with the configuration schema",
}

var schemaExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print the configuration schema as JSON Schema",
	Args:  cobra.NoArgs,
	RunE:  runSchemaExport,
}

var schemaValidateCmd = &cobra.Command{
	Use:   "validate FILE",
	Short: "Check a configuration against the schema",
	Args:  cobra.ExactArgs(1),
	RunE:  runSchemaValidate,
}

func init() {
	rootCmd.AddCommand(schemaCmd)
	schemaCmd.AddCommand(schemaExportCmd, schemaValidateCmd)

	schemaExportCmd.Flags().StringVarP(&schemaOutput, "output", "o", "", "write the schema to a file instead of stdout")
}

func runSchemaExport(cmd *cobra.Command, _ []string) error {
	data, err := schema.Builtin().ExportJSON()
	if err != nil {
		return err
	}

	if schemaOutput != "" {
		return os.WriteFile(schemaOutput, append(data, '\n'), 0o644)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))

	return err
}

func runSchemaValidate(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	return executeValidate(schema.Builtin(), data, cmd.OutOrStdout())
}

func executeValidate(reg *schema.Registry, data []byte, w io.Writer) error {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	v, err := reg.Validator()
	if err != nil {
		return err
	}

	violations := v.Validate(doc)
	if len(violations) == 0 {
		fmt.Fprintln(w, successStyle.Render("Document matches the schema"))
		return nil
	}

	printMessages(w, "Violations", errorStyle, violations)

	return fmt.Errorf("%w: %d violation(s)", ErrSchemaViolations, len(violations))
}
