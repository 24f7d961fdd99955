package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/services"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [FILE]",
	Short: "Analyze a single resume and print the recruiter summary",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	addJobFlags(analyzeCmd)
	analyzeCmd.Flags().Bool("html", false, "print HTML (summary and score chart) instead of Markdown")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return services.ErrNoResume
	}

	ctx := cmd.Context()
	application, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer application.Logger.Sync()

	job, err := readJobFlags(cmd, application.Catalog)
	if err != nil {
		return err
	}

	analysis, err := application.Analyzer.AnalyzeSingle(ctx, models.AnalysisRequest{
		File:           models.FileRef{Path: args[0]},
		JobTitle:       job.JobTitle,
		JobDescription: job.JobDescription,
		Backend:        job.Backend,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if html, _ := cmd.Flags().GetBool("html"); html {
		fmt.Fprintln(out, analysis.HTML)
		fmt.Fprintln(out, analysis.Chart)
		return nil
	}

	fmt.Fprintln(out, analysis.Markdown)
	fmt.Fprintf(out, "Fit Score: %d%%\n", models.ClampScore(analysis.Result.FitScore))
	return nil
}
