package kv

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/ValentinKolb/pdict/cmd/util"
	"github.com/ValentinKolb/pdict/lib/store"
	"github.com/ValentinKolb/pdict/lib/store/pstore"
	"github.com/dustin/go-humanize"
	"github.com/rcrowley/go-metrics"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	perfTestCmd = &cobra.Command{
		Use:     "perf",
		Short:   "Performance testing tool for store files",
		Long:    util.WrapString("Runs add, get, rewrite and remove against a scratch store file and prints latency statistics. The store selected with --file is not touched."),
		Args:    cobra.NoArgs,
		RunE:    runPerf,
		PreRunE: processPerfConfig,
	}
	perfKeyPrefix = "__test"
	perfValueSize = uint64(1024)
	perfThreads   = 4
	perfKeySpread = 200
	perfSkip      = make([]string, 0)
	perfDir       = ""

	// perfTests lists the benchmarks in execution order
	perfTests = []string{"add", "get", "rewrite", "remove"}
)

func init() {
	// add flags
	key := "skip"
	perfTestCmd.Flags().String(key, "", util.WrapString("Benchmarks to skip (comma separated - e.g. get,rewrite)"))
	key = "threads"
	perfTestCmd.Flags().Int(key, 4, util.WrapString("Number of goroutines used for the benchmark"))
	key = "value-size"
	perfTestCmd.Flags().String(key, "1KiB", util.WrapString("Size of each value (e.g. 512B, 4KiB, 1MB)"))
	key = "keys"
	perfTestCmd.Flags().Int(key, 200, util.WrapString("How many different keys to use for the tests"))
	key = "dir"
	perfTestCmd.Flags().String(key, "", util.WrapString("Directory for the scratch store (default: a new temp dir)"))
	key = "csv"
	perfTestCmd.Flags().String(key, "", util.WrapString("Optional path to save benchmark results as CSV"))
}

func processPerfConfig(cmd *cobra.Command, _ []string) error {
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	// Read the configuration from the command line flags and environment variables
	size, err := humanize.ParseBytes(viper.GetString("value-size"))
	if err != nil {
		return fmt.Errorf("invalid value size: %w", err)
	}
	if size > math.MaxInt32 {
		return fmt.Errorf("invalid value size: %s exceeds %s", humanize.IBytes(size), humanize.IBytes(math.MaxInt32))
	}
	perfValueSize = size
	perfKeySpread = viper.GetInt("keys")
	perfThreads = max(viper.GetInt("threads"), 1)
	perfSkip = strings.Split(viper.GetString("skip"), ",")
	perfDir = viper.GetString("dir")

	if perfKeySpread <= 0 {
		return fmt.Errorf("keys must be positive")
	}
	return nil
}

// perfResult is the outcome of a single benchmark
type perfResult struct {
	name    string
	elapsed time.Duration
	timer   metrics.Timer
	errors  metrics.Counter
}

func runPerf(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	dir := perfDir
	if dir == "" {
		tmp, err := os.MkdirTemp("", "pdict-perf-")
		if err != nil {
			return err
		}
		defer os.RemoveAll(tmp)
		dir = tmp
	}

	opts, err := util.GetStoreOptions(true)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "Performance testing tool for store files")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Configuration:")
	fmt.Fprintf(out, "  %-12s: %s\n", "Codec", opts.Codec.Name())
	fmt.Fprintf(out, "  %-12s: %s\n", "Value Size", humanize.IBytes(perfValueSize))
	fmt.Fprintf(out, "  %-12s: %d\n", "Keys", perfKeySpread)
	fmt.Fprintf(out, "  %-12s: %d\n", "Threads", perfThreads)
	fmt.Fprintln(out)

	registry := metrics.NewRegistry()
	value := strings.Repeat("x", int(perfValueSize))
	keys := perfKeys()

	var results []perfResult
	err = pstore.With[string](filepath.Join(dir, "perf.pdict"), opts, func(s store.IStore[string]) error {
		ops := map[string]func(key string) error{
			"add": func(key string) error {
				_, err := s.Add(store.E(key, value))
				return err
			},
			"get": func(key string) error {
				_, err := s.Load(key, true)
				return err
			},
			"rewrite": func(key string) error {
				return s.Rewrite(key, value, true)
			},
			"remove": func(key string) error {
				return s.Remove(key)
			},
		}

		for _, name := range perfTests {
			if shouldSkip(name) {
				printResult(out, perfResult{name: name})
				continue
			}
			if name == "get" && s.Len() == 0 {
				// get needs data, fill the store without measuring
				for _, k := range keys {
					if err := s.Set(k, value); err != nil {
						return err
					}
				}
			}
			res := runBenchmark(registry, name, keys, ops[name])
			results = append(results, res)
			printResult(out, res)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if csvPath := viper.GetString("csv"); csvPath != "" {
		if err := writeResultsToCSV(csvPath, results, opts.Codec.Name()); err != nil {
			return err
		}
		fmt.Fprintf(out, "\nresults written to %s\n", csvPath)
	}
	return nil
}

// runBenchmark runs op once for every key, spread over perfThreads goroutines
func runBenchmark(registry metrics.Registry, name string, keys []string, op func(key string) error) perfResult {
	res := perfResult{
		name:   name,
		timer:  metrics.GetOrRegisterTimer(name, registry),
		errors: metrics.GetOrRegisterCounter(name+".errors", registry),
	}

	start := time.Now()
	var wg sync.WaitGroup
	for worker := 0; worker < perfThreads; worker++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := worker; i < len(keys); i += perfThreads {
				opStart := time.Now()
				if err := op(keys[i]); err != nil {
					res.errors.Inc(1)
					log.Warningf("(%s) - error for key %s: %v", name, keys[i], err)
					continue
				}
				res.timer.UpdateSince(opStart)
			}
		}()
	}
	wg.Wait()
	res.elapsed = time.Since(start)

	return res
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

func shouldSkip(test string) bool {
	return slices.Contains(perfSkip, test)
}

// perfKeys creates the test keys
func perfKeys() []string {
	keys := make([]string, perfKeySpread)
	for i := range keys {
		keys[i] = fmt.Sprintf("%s-%d", perfKeyPrefix, i)
	}
	return keys
}

// opsPerSec returns the throughput of a benchmark
func (r perfResult) opsPerSec() float64 {
	if r.elapsed <= 0 {
		return 0
	}
	return float64(r.timer.Count()) / r.elapsed.Seconds()
}

// printResult prints the result of a benchmark test in a formatted way
func printResult(w io.Writer, res perfResult) {
	if res.timer == nil {
		fmt.Fprintf(w, "%-10sskipped\n", res.name)
		return
	}
	snap := res.timer.Snapshot()
	fmt.Fprintf(w, "%-10s%6d ops  mean %-10s p99 %-10s %8.0f ops/sec  errors %d\n",
		res.name,
		snap.Count(),
		time.Duration(snap.Mean()),
		time.Duration(snap.Percentile(0.99)),
		res.opsPerSec(),
		res.errors.Count(),
	)
}

// writeResultsToCSV writes benchmark results to a CSV file
func writeResultsToCSV(csvPath string, results []perfResult, codecName string) error {
	file, err := os.Create(csvPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	// Write header
	header := []string{
		"Test", "Ops", "MeanNs", "P99Ns", "OpsPerSec", "Errors",
		"Codec", "Threads", "ValueSizeBytes", "Keys",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %v", err)
	}

	// Write test results
	for _, res := range results {
		snap := res.timer.Snapshot()
		row := []string{
			res.name,
			strconv.FormatInt(snap.Count(), 10),
			fmt.Sprintf("%.0f", snap.Mean()),
			fmt.Sprintf("%.0f", snap.Percentile(0.99)),
			fmt.Sprintf("%.0f", res.opsPerSec()),
			strconv.FormatInt(res.errors.Count(), 10),
			codecName,
			strconv.Itoa(perfThreads),
			strconv.FormatUint(perfValueSize, 10),
			strconv.Itoa(perfKeySpread),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row for test %s: %v", res.name, err)
		}
	}

	writer.Flush()
	return writer.Error()
}
