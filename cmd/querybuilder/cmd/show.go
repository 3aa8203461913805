package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/solatis/querybuilder/internal/filter"
	"github.com/solatis/querybuilder/internal/render"
)

var showCmd = &cobra.Command{
	Use:   "show <draft>",
	Short: "Render a draft's condition tree and report whether it can be compiled",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	env, err := loadSessionEnv(cmd)
	if err != nil {
		return err
	}
	session, err := loadDraftSession(args[0], env)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, render.NewTreeRenderer(out).Render(session.Roots()))
	fmt.Fprintln(out)

	if err := filter.Validate(session.Roots(), session.Projection()); err != nil {
		fmt.Fprintf(out, "not ready: %v\n", err)
		return nil
	}
	fmt.Fprintf(out, "ready: %s\n", filter.Serialize(filter.Export(session.Roots(), env.paths)))
	return nil
}
