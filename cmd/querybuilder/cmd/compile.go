package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/solatis/querybuilder/internal/core/schema"
	"github.com/solatis/querybuilder/internal/core/sink"
	"github.com/solatis/querybuilder/internal/filter"
	"github.com/solatis/querybuilder/internal/types"
)

var compileCmd = &cobra.Command{
	Use:   "compile <draft>",
	Short: "Validate a draft and compile it into a search request",
	Long: `compile loads a JSON or YAML draft, checks it against the session schema,
and prints the resulting request. With --send the request goes to the search
service (or the embedded results when mocked); with --out it is exported to
<export dir>/<name>.json.`,
	Args: cobra.ExactArgs(1),
	RunE: runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)
	compileCmd.Flags().Bool("send", false, "send the request and print the result rows")
	compileCmd.Flags().String("out", "", "export the request as <name>.json in the export directory")
	compileCmd.Flags().Bool("skip-schema-check", false, "compile without checking fields against the schema")
}

func runCompile(cmd *cobra.Command, args []string) error {
	env, err := loadSessionEnv(cmd)
	if err != nil {
		return err
	}

	session, err := loadDraftSession(args[0], env)
	if err != nil {
		return err
	}

	if skip, _ := cmd.Flags().GetBool("skip-schema-check"); !skip {
		if err := checkSchema(cmd, env, session); err != nil {
			return err
		}
	}

	req, err := session.Submit()
	if err != nil {
		return err
	}
	if labels := filter.UnknownOperatorLabels(filter.Export(session.Roots(), env.paths)); len(labels) > 0 {
		return fmt.Errorf("%w: %s", types.ErrUnknownOperator, strings.Join(labels, ", "))
	}
	env.log.Info("draft compiled",
		slog.String("component", "compile"),
		slog.Int("conditions", session.Len()),
		slog.String("filters", req.Filters))

	out := cmd.OutOrStdout()
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")

	if name, _ := cmd.Flags().GetString("out"); name != "" {
		fileSink := sink.NewFileSink(env.cfg.ExportDir, name, env.log)
		if _, err := fileSink.Send(cmd.Context(), req); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "exported %s\n", fileSink.Path())
	}

	if send, _ := cmd.Flags().GetBool("send"); send {
		rows, err := sink.New(env.cfg, env.log).Send(cmd.Context(), req)
		if err != nil {
			return err
		}
		return enc.Encode(rows)
	}
	return enc.Encode(req)
}

// loadDraftSession reads path and replays it into a fresh session.
func loadDraftSession(path string, env *sessionEnv) (*filter.Session, error) {
	draft, err := filter.LoadDraft(path)
	if err != nil {
		return nil, err
	}
	session := filter.NewSession(nil, env.paths)
	if err := session.Load(draft); err != nil {
		return nil, fmt.Errorf("failed to load draft: %w", err)
	}
	return session, nil
}

// checkSchema verifies the session's fields against the configured schema.
func checkSchema(cmd *cobra.Command, env *sessionEnv, session *filter.Session) error {
	provider, err := schema.New(env.cfg, env.log)
	if err != nil {
		return err
	}
	info, err := provider.Fetch(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load schema: %w", err)
	}
	if err := filter.ValidateAgainstSchema(session.Roots(), info); err != nil {
		return err
	}
	return filter.ValidateProjectionAgainstSchema(session.Projection(), info)
}
