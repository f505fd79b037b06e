// Command sieve prints every prime up to a bound using the parallel sieve.
//
// Usage:
//
//	sieve --n 10000 --workers 4
//	sieve --n 1000000 --quiet --save run-1 --store local:./primes
//	sieve load --store local:./primes
//
// Every flag can also be set through a SIEVE_ environment variable
// (SIEVE_N, SIEVE_QUEUE_CAPACITY, ...) or a config file passed with --config.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hupe1980/sievego"
	"github.com/hupe1980/sievego/snapshot"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	os.Exit(execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// execute runs the CLI and returns the process exit code.
func execute(ctx context.Context, args []string, out, errOut io.Writer) int {
	cmd := newRootCmd(out)
	cmd.SetArgs(args)
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	if err := cmd.ExecuteContext(ctx); err != nil {
		switch {
		case errors.Is(err, sievego.ErrAllocation):
			fmt.Fprintln(errOut, "Memory allocation failed.")
		case errors.Is(err, sievego.ErrWorkerStart):
			fmt.Fprintln(errOut, "Thread creation failed.")
		}
		fmt.Fprintln(errOut, "Error:", err)
		return 1
	}
	return 0
}

func newRootCmd(out io.Writer) *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:           "sieve",
		Short:         "Print all primes up to N with a parallel sieve of Eratosthenes",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return loadConfig(v)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSieve(cmd.Context(), v, out)
		},
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "Config file (yaml, json or toml)")
	pf.String("log-level", "error", "Log level: debug, info, warn, error")
	pf.String("store", "", "Snapshot store: local:<dir>, mem:, s3://bucket/prefix, minio://bucket/prefix")
	pf.String("ddb-table", "", "DynamoDB table holding the LATEST pointer (s3 stores only)")
	pf.String("minio-endpoint", "localhost:9000", "MinIO endpoint")
	pf.String("minio-access-key", "", "MinIO access key")
	pf.String("minio-secret-key", "", "MinIO secret key")
	pf.Bool("minio-secure", false, "Use HTTPS for MinIO")
	pf.Bool("quiet", false, "Do not print the primes")

	f := root.Flags()
	f.Int("n", 10000, "Inclusive upper bound")
	f.Int("workers", 4, "Number of worker goroutines")
	f.Int("queue-capacity", 1000, "Capacity of the seed queue")
	f.Int64("memory-limit", 0, "Memory budget in bytes for table and queue (0 = unlimited)")
	f.Int("max-worker-slots", 0, "Maximum concurrently running workers (0 = unlimited)")
	f.String("save", "", "Save the result as a snapshot with this name")
	f.String("compression", "zstd", "Snapshot compression: none, lz4, zstd")

	_ = v.BindPFlags(pf)
	_ = v.BindPFlags(f)

	v.SetEnvPrefix("SIEVE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	root.AddCommand(newLoadCmd(v, out))
	return root
}

func newLoadCmd(v *viper.Viper, out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "load [name]",
		Short: "Print a saved snapshot (defaults to LATEST)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := openStore(ctx, v)
			if err != nil {
				return err
			}

			opts := []sievego.Option{sievego.WithLogger(newLogger(v))}
			var res *sievego.Result
			if len(args) == 1 {
				res, err = sievego.Load(ctx, store, args[0], opts...)
			} else {
				res, err = sievego.LoadLatest(ctx, store, opts...)
			}
			if err != nil {
				return err
			}
			return printResult(out, res, v.GetBool("quiet"))
		},
	}
	return cmd
}

func loadConfig(v *viper.Viper) error {
	path := v.GetString("config")
	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	return nil
}

func newLogger(v *viper.Viper) *sievego.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(v.GetString("log-level"))); err != nil {
		level = slog.LevelError
	}
	return sievego.NewTextLogger(level)
}

func runSieve(ctx context.Context, v *viper.Viper, out io.Writer) error {
	res, err := sievego.Run(ctx, v.GetInt("n"),
		sievego.WithWorkers(v.GetInt("workers")),
		sievego.WithQueueCapacity(v.GetInt("queue-capacity")),
		sievego.WithMemoryLimit(v.GetInt64("memory-limit")),
		sievego.WithMaxWorkerSlots(v.GetInt("max-worker-slots")),
		sievego.WithLogger(newLogger(v)),
	)
	if err != nil {
		return err
	}

	if err := printResult(out, res, v.GetBool("quiet")); err != nil {
		return err
	}

	name := v.GetString("save")
	if name == "" {
		return nil
	}
	comp, err := snapshot.ParseCompression(v.GetString("compression"))
	if err != nil {
		return err
	}
	store, err := openStore(ctx, v)
	if err != nil {
		return err
	}
	_, err = res.Save(ctx, store, name, snapshot.WithCompression(comp))
	return err
}

// printResult writes the primes, the count and the elapsed time.
func printResult(out io.Writer, res *sievego.Result, quiet bool) error {
	w := bufio.NewWriter(out)

	if !quiet {
		var buf []byte
		res.Range(func(p int) bool {
			buf = strconv.AppendInt(buf[:0], int64(p), 10)
			buf = append(buf, ' ')
			_, _ = w.Write(buf)
			return true
		})
		_ = w.WriteByte('\n')
	}
	fmt.Fprintf(w, "total_Primes=%d\n", res.Count())

	if res.Elapsed > 0 {
		secs := res.Elapsed / time.Second
		micros := (res.Elapsed % time.Second).Microseconds()
		fmt.Fprintf(w, "\nTime taken: %d seconds %d microseconds\n", int64(secs), micros)
	}
	return w.Flush()
}
