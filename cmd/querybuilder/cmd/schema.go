package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/solatis/querybuilder/internal/core/schema"
	"github.com/solatis/querybuilder/internal/types"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the schema conditions can be built against",
	Args:  cobra.NoArgs,
	RunE:  runSchema,
}

func init() {
	rootCmd.AddCommand(schemaCmd)
	schemaCmd.Flags().StringP("output", "o", "text", "output format (text, json, yaml)")
}

func runSchema(cmd *cobra.Command, args []string) error {
	env, err := loadSessionEnv(cmd)
	if err != nil {
		return err
	}

	provider, err := schema.New(env.cfg, env.log)
	if err != nil {
		return err
	}
	info, err := provider.Fetch(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load schema: %w", err)
	}

	output, _ := cmd.Flags().GetString("output")
	return writeSchema(cmd.OutOrStdout(), info, output)
}

func writeSchema(w io.Writer, info *types.SchemaInfo, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(info)
	case "text":
		for id := range info.Subsets {
			fmt.Fprintf(w, "subset %d\n", id)
			for _, attr := range info.SubsetAttributes(id) {
				fmt.Fprintf(w, "  %-40s %s\n", attr.Name, attr.Type)
			}
		}
		fmt.Fprintf(w, "operators: %v\n", info.Operators)
		fmt.Fprintf(w, "connectors: %v\n", info.LogicalOperators)
		return nil
	default:
		return fmt.Errorf("unknown output format %q (expected text, json or yaml)", format)
	}
}
