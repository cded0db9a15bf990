package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kilianp07/premium/app"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Load the configured artifacts and print the pipeline summary",
	Args:  cobra.NoArgs,
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	p, info, err := app.LoadPipeline(cfg.Pipeline)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "pipeline: %s\n", p.Mode())
	fmt.Fprintf(out, "model:    %s\n", p.ModelKind())
	if info.Detail != "" {
		fmt.Fprintf(out, "shape:    %s\n", info.Detail)
	}
	fmt.Fprintf(out, "files:    %s\n", strings.Join(info.Paths, ", "))
	fmt.Fprintf(out, "loaded in %s\n", info.LoadTime)
	return nil
}
