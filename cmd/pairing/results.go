package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"svw.info/pairing/internal/infrastructure/storage"
)

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Inspect saved result files",
	RunE:  runResultsList,
}

var resultsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List result files, newest first",
	RunE:  runResultsList,
}

var resultsShowCmd = &cobra.Command{
	Use:   "show <file>",
	Short: "Print one result file",
	Args:  cobra.ExactArgs(1),
	RunE:  runResultsShow,
}

func init() {
	resultsCmd.AddCommand(resultsListCmd, resultsShowCmd)
}

func runResultsList(cmd *cobra.Command, args []string) error {
	list, err := storage.NewFS(cfg.ResultsDir).List(cmd.Context())
	if err != nil {
		return fmt.Errorf("list results: %w", err)
	}
	out := cmd.OutOrStdout()
	if len(list) == 0 {
		fmt.Fprintf(out, "No results in %s\n", cfg.ResultsDir)
		return nil
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CODE\tSAVED\tFILE")
	for _, m := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", m.SessionCode, m.CreatedAt.Format("2006-01-02 15:04:05"), m.Name)
	}
	return tw.Flush()
}

func runResultsShow(cmd *cobra.Command, args []string) error {
	body, err := storage.NewFS(cfg.ResultsDir).Load(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(body)
	return err
}
