package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"alfredoptarigan/resume-analyzer/internal/app"
	"alfredoptarigan/resume-analyzer/internal/config"
	"alfredoptarigan/resume-analyzer/internal/logger"
	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/services"
)

const appName = "analyzer"

var (
	cfgFile string

	rootCmd = &cobra.Command{
		Use:           appName,
		Short:         "analyzer scores resumes against a job description with an LLM",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute executes the root command.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default: environment and .env only)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

// addJobFlags registers the job-context and backend flags shared by analyze and rank.
func addJobFlags(cmd *cobra.Command) {
	cmd.Flags().String("job-title", "", "target role")
	cmd.Flags().String("job-description", "", "job description text")
	cmd.Flags().String("job-description-file", "", "read the job description from a file")
	cmd.Flags().String("model-choice", "", fmt.Sprintf("backend label, e.g. %q or %q", services.ChoiceOpenAI, services.ChoiceOllama))
	cmd.Flags().String("provider", "", "explicit provider: openai, ollama, gemini or anthropic")
	cmd.Flags().String("model", "", "model for the explicit provider (default: configured model)")
}

type jobFlags struct {
	JobTitle       string
	JobDescription string
	Backend        models.Backend
}

func readJobFlags(cmd *cobra.Command, catalog services.BackendCatalog) (jobFlags, error) {
	flags := cmd.Flags()
	jobTitle, _ := flags.GetString("job-title")
	jobDescription, _ := flags.GetString("job-description")
	jdFile, _ := flags.GetString("job-description-file")
	choice, _ := flags.GetString("model-choice")
	provider, _ := flags.GetString("provider")
	model, _ := flags.GetString("model")

	if jdFile != "" {
		data, err := os.ReadFile(jdFile)
		if err != nil {
			return jobFlags{}, fmt.Errorf("reading job description file: %w", err)
		}
		jobDescription = string(data)
	}

	if choice == "" && provider == "" {
		selected, err := promptModelChoice(catalog)
		if err != nil {
			return jobFlags{}, err
		}
		choice = selected
	}

	backend, err := catalog.Select(choice, provider, model)
	if err != nil {
		return jobFlags{}, err
	}

	return jobFlags{JobTitle: jobTitle, JobDescription: jobDescription, Backend: backend}, nil
}

// promptModelChoice asks for a backend on a terminal and takes the default otherwise.
func promptModelChoice(catalog services.BackendCatalog) (string, error) {
	choices := catalog.Choices()
	if !isTerminal(os.Stdin) {
		return choices[0], nil
	}

	prompt := promptui.Select{
		Label: "Choose Model",
		Items: choices,
	}
	_, result, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("choosing model: %w", err)
	}
	return result, nil
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// bootstrap loads configuration and wires the services for one command run.
func bootstrap(ctx context.Context) (*app.App, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	cfg.Log.Debug = cfg.Log.Debug || viper.GetBool("debug")
	cfg.Log.JSON = cfg.Log.JSON || viper.GetBool("json")

	zlog, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return nil, fmt.Errorf("creating a logger: %w", err)
	}

	zlog.Debug("configuration loaded", zap.String("config_file", cfgFile))

	return app.New(ctx, cfg, zlog)
}
