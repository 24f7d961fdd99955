package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"alfredoptarigan/resume-analyzer/internal/logger"
	"alfredoptarigan/resume-analyzer/internal/models"
)

var rankCmd = &cobra.Command{
	Use:   "rank FILE...",
	Short: "Analyze many resumes concurrently, rank them by fit score and export a CSV",
	RunE:  runRank,
}

func init() {
	rootCmd.AddCommand(rankCmd)
	addJobFlags(rankCmd)
}

func runRank(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if len(args) == 0 {
		fmt.Fprintln(out, "No resumes supplied; nothing to rank.")
		return nil
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

	files := make([]models.FileRef, 0, len(args))
	for _, arg := range args {
		files = append(files, models.FileRef{Path: arg})
	}

	analysis, err := application.Analyzer.AnalyzeBulk(ctx, files, job.JobTitle, job.JobDescription, job.Backend)
	if err != nil {
		return err
	}

	if err := printTable(out, analysis.Rows); err != nil {
		return err
	}

	if analysis.ExportPath != "" {
		fmt.Fprintf(out, "\nCSV written to %s\n", analysis.ExportPath)
	}
	return nil
}

func printTable(w io.Writer, rows []models.ResultRow) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FILE\tFIT\tRECOMMENDATION\tTOP SKILLS\tTOP GAPS")
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\n",
			row.FileName,
			row.FitScore,
			logger.Preview(row.Recommendation, 40),
			logger.Preview(row.TopSkills, 40),
			logger.Preview(row.TopGaps, 40),
		)
	}
	return tw.Flush()
}
