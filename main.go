package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/aldehir/rangesum/bench"
	"github.com/aldehir/rangesum/profiles/hotspot"
	"github.com/aldehir/rangesum/profiles/uniform"
	"github.com/aldehir/rangesum/profiles/writeheavy"
	"github.com/aldehir/rangesum/rangesum"
	"github.com/aldehir/rangesum/workload"
)

var rootCmd = &cobra.Command{
	Use:   "rangesum",
	Short: "Range-sum queries with an LRU result cache",
	Long:  "Range-sum queries over a mutable array, with an LRU cache of range results invalidated on point updates",
}

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Compare a query stream with and without the cache",
	RunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		asJSON, _ := cmd.Flags().GetBool("json")

		cfg, err := benchConfig(cmd)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		logger := newLogger(verbose)
		report, err := bench.NewRunner(logger).Run(ctx, cfg)
		if err != nil {
			return err
		}

		if asJSON {
			return report.WriteJSON(cmd.OutOrStdout())
		}
		return report.WriteText(cmd.OutOrStdout())
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve range sums and updates over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		listen, _ := cmd.Flags().GetString("listen")
		size, _ := cmd.Flags().GetInt("size")
		capacity, _ := cmd.Flags().GetInt("capacity")
		seed, _ := cmd.Flags().GetUint64("seed")
		verbose, _ := cmd.Flags().GetBool("verbose")

		if size <= 0 {
			return fmt.Errorf("size must be positive, got %d", size)
		}
		if capacity < 1 {
			return fmt.Errorf("capacity must be at least 1, got %d", capacity)
		}

		gen, err := workload.NewGenerator(hotspot.NewProfile(), seed)
		if err != nil {
			return err
		}
		array := rangesum.NewCachedArray(gen.Array(size), capacity)
		return startServer(listen, array, newLogger(verbose))
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(verbose bool) *slog.Logger {
	var logLevel slog.Level
	if verbose {
		logLevel = slog.LevelDebug
	} else {
		logLevel = slog.LevelInfo
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
}

func profileByName(name string) (workload.Profile, error) {
	switch name {
	case "hotspot":
		return hotspot.NewProfile(), nil
	case "uniform":
		return uniform.NewProfile(), nil
	case "writeheavy":
		return writeheavy.NewProfile(), nil
	default:
		return workload.Profile{}, fmt.Errorf("unknown profile %q (want hotspot, uniform or writeheavy)", name)
	}
}

func benchConfig(cmd *cobra.Command) (bench.Config, error) {
	flags := cmd.Flags()
	size, _ := flags.GetInt("size")
	queries, _ := flags.GetInt("queries")
	capacity, _ := flags.GetInt("capacity")
	seed, _ := flags.GetUint64("seed")
	profileName, _ := flags.GetString("profile")

	profile, err := profileByName(profileName)
	if err != nil {
		return bench.Config{}, err
	}
	if flags.Changed("hot-pool") {
		profile.HotPool, _ = flags.GetInt("hot-pool")
	}
	if flags.Changed("p-hot") {
		profile.PHot, _ = flags.GetFloat64("p-hot")
	}
	if flags.Changed("p-update") {
		profile.PUpdate, _ = flags.GetFloat64("p-update")
	}
	if !flags.Changed("seed") {
		seed = uint64(time.Now().UnixNano())
	}

	cfg := bench.Config{
		Size:     size,
		Queries:  queries,
		Capacity: capacity,
		Seed:     seed,
		Profile:  profile,
	}
	return cfg, cfg.Validate()
}

func startServer(addr string, array *rangesum.CachedArray, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	server := &http.Server{
		Addr:    addr,
		Handler: NewServer(array, logger),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting server", "addr", addr, "size", array.Len())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		logger.Error("Server failed to start", "error", err)
		return err
	case <-ctx.Done():
	}
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
		return err
	}

	logger.Info("Server exited")
	return nil
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug output")

	benchCmd.Flags().IntP("size", "n", bench.DefaultSize, "Array length")
	benchCmd.Flags().IntP("queries", "q", bench.DefaultQueries, "Number of queries to generate")
	benchCmd.Flags().IntP("capacity", "k", bench.DefaultCapacity, "Maximum number of cached ranges")
	benchCmd.Flags().Uint64("seed", 0, "Random seed (default: time based)")
	benchCmd.Flags().StringP("profile", "p", "hotspot", "Workload profile: hotspot, uniform or writeheavy")
	benchCmd.Flags().Int("hot-pool", 0, "Override the number of hot ranges")
	benchCmd.Flags().Float64("p-hot", 0, "Override the probability that a range query is hot")
	benchCmd.Flags().Float64("p-update", 0, "Override the probability that a query is an update")
	benchCmd.Flags().Bool("json", false, "Print the report as JSON")

	serveCmd.Flags().StringP("listen", "l", ":8006", "Address to listen on")
	serveCmd.Flags().IntP("size", "n", bench.DefaultSize, "Array length")
	serveCmd.Flags().IntP("capacity", "k", bench.DefaultCapacity, "Maximum number of cached ranges")
	serveCmd.Flags().Uint64("seed", 1, "Seed for the initial array values")

	rootCmd.AddCommand(benchCmd, serveCmd)
}

func main() {
	Execute()
}
