package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"config-splitter/internal/analyze"
	"config-splitter/internal/plan"
	"config-splitter/internal/service"
)

var analyzeDump bool

var analyzeCmd = &cobra.Command{
	Use:   "analyze FILE",
	Short: "Show the sections of a configuration and how it would be split",
	Long: `Analyze lists the top-level sections of FILE with their second-level
keys, as found by a line scan that tolerates documents the YAML parser
rejects, followed by the files a default split would produce.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().BoolVar(&analyzeDump, "dump", false, "dump the full split plan")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	return executeAnalyze(newService(appConfig), string(data), analyzeDump, cmd.OutOrStdout())
}

func executeAnalyze(svc *service.Service, content string, dump bool, w io.Writer) error {
	ix := analyze.Analyze(content)

	printTitle(w, fmt.Sprintf("%d section(s)", ix.Len()))
	fmt.Fprint(w, ix.String())

	p, err := svc.Plan(content, nil)
	if err != nil {
		return err
	}

	fmt.Fprintln(w)
	printTitle(w, fmt.Sprintf("Default split: %d file(s)", p.FilesCount()))

	for _, sp := range p.Sections {
		printItem(w, sp.Key, "")

		for _, child := range sp.SplitOut() {
			printItem(w, "  "+child, "(own file)")
		}
	}

	if dump {
		fmt.Fprintln(w)
		dumpPlan(w, p)
	}

	return nil
}

func dumpPlan(w io.Writer, p *plan.Plan) {
	cfg := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, SortKeys: true}
	cfg.Fdump(w, p)
}
