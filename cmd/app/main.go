package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yanqian/outfit-advisor/internal/domain/outfit"
	"github.com/yanqian/outfit-advisor/internal/infra/config"
)

var rootCmd = &cobra.Command{
	Use:           "outfit-advisor",
	Short:         "Weather aware outfit recommendations",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP gateway (default)",
	RunE:  runServe,
}

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Produce one day plan and print it as JSON",
	Long: `Runs the recommendation pipeline once for the given weather and prints
the normalized plan to stdout. Empty flags take the same defaults as the
HTTP endpoint.`,
	RunE: runRecommend,
}

var recommendFlags struct {
	temperature string
	description string
	wind        string
	location    string
}

func init() {
	f := recommendCmd.Flags()
	f.StringVar(&recommendFlags.temperature, "temp", "", "temperature in °C (default "+outfit.DefaultTemperature+")")
	f.StringVar(&recommendFlags.description, "description", "", "weather description (default "+outfit.DefaultDescription+")")
	f.StringVar(&recommendFlags.wind, "wind", "", "wind speed in km/h (default "+outfit.DefaultWind+")")
	f.StringVar(&recommendFlags.location, "location", "", "location name (default "+outfit.DefaultLocation+")")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(recommendCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	app, cleanup, err := initializeApp(cfg)
	if err != nil {
		return fmt.Errorf("failed to wire application: %w", err)
	}
	defer cleanup()

	if err := app.Run(cmd.Context()); err != nil {
		return fmt.Errorf("application stopped with error: %w", err)
	}
	return nil
}

func runRecommend(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	svc, cleanup, err := initializeRecommender(cfg)
	if err != nil {
		return fmt.Errorf("failed to wire recommender: %w", err)
	}
	defer cleanup()

	return writeRecommendation(cmd, svc, outfit.ParseQuery(map[string][]string{
		outfit.ParamTemperature: {recommendFlags.temperature},
		outfit.ParamDescription: {recommendFlags.description},
		outfit.ParamWind:        {recommendFlags.wind},
		outfit.ParamLocation:    {recommendFlags.location},
	}))
}

func writeRecommendation(cmd *cobra.Command, svc outfit.Service, query outfit.WeatherQuery) error {
	result, err := svc.Recommend(cmd.Context(), query)
	if err != nil {
		return err
	}
	body, err := outfit.Encode(result.Plan)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if _, err := out.Write(body); err != nil {
		return err
	}
	_, err = fmt.Fprintln(out)
	return err
}
