package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/services"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "analyzer version: unknown\n" {
		t.Fatalf("output = %q", out)
	}
}

func TestAnalyzeWithoutFile(t *testing.T) {
	_, err := run(t, "analyze", "--model-choice", services.ChoiceOllama)
	if !errors.Is(err, services.ErrNoResume) {
		t.Fatalf("expected ErrNoResume, got %v", err)
	}
}

func TestRankWithoutFiles(t *testing.T) {
	out, err := run(t, "rank", "--model-choice", services.ChoiceOllama)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "nothing to rank") {
		t.Fatalf("output = %q", out)
	}
}

func TestPrintTable(t *testing.T) {
	var out bytes.Buffer
	rows := []models.ResultRow{
		{FileName: "b.pdf", FitScore: 90, TopSkills: "Go, SQL", Recommendation: "Hire"},
		{FileName: "a.pdf", FitScore: 65, TopGaps: "Spark", Recommendation: strings.Repeat("x", 60)},
	}

	if err := printTable(&out, rows); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and 2 rows, got %d lines:\n%s", len(lines), out.String())
	}
	if !strings.HasPrefix(lines[0], "FILE") || !strings.HasPrefix(lines[1], "b.pdf") {
		t.Fatalf("unexpected table:\n%s", out.String())
	}
	if !strings.Contains(lines[2], strings.Repeat("x", 40)+"...") {
		t.Fatalf("long recommendation not truncated:\n%s", lines[2])
	}
}
