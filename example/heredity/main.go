// Command heredity computes posterior gene and trait distributions for every
// member of a pedigree CSV, optionally recording the results in SQLite.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/carbocation/heredity"
	"github.com/carbocation/pfx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// config is read from the environment first; flags override it.
type config struct {
	Workers     int    `env:"HEREDITY_WORKERS" envDefault:"1"`
	DB          string `env:"HEREDITY_DB"`
	Tables      string `env:"HEREDITY_TABLES"`
	MetricsFile string `env:"HEREDITY_METRICS_FILE"`
	Verbose     bool   `env:"HEREDITY_VERBOSE"`
}

func main() {
	cfg, err := loadConfig()
	if err != nil {
		logrus.Fatalln(err)
	}

	if err := newRootCmd(&cfg).Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (config, error) {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		return config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

func newRootCmd(cfg *config) *cobra.Command {
	root := &cobra.Command{
		Use:          "heredity",
		Short:        "Exact inference of gene and trait probabilities in a pedigree",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
			if cfg.Verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
		},
	}
	root.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Log debug output")
	root.PersistentFlags().StringVar(&cfg.DB, "db", cfg.DB, "SQLite file in which runs are stored")
	root.PersistentFlags().StringVar(&cfg.Tables, "tables", cfg.Tables, "YAML file of probability tables (default: built-in)")

	root.AddCommand(newInferCmd(cfg), newRunsCmd(cfg), newShowCmd(cfg), newTablesCmd(cfg))
	return root
}

func newInferCmd(cfg *config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "infer data.csv",
		Short: "Compute every person's posterior distributions",
		Long: `Compute every person's posterior gene-count and trait distributions.

data.csv has the columns name, mother, father and trait. It may be local,
a gs://bucket/object URL, and may be gzip or zstd compressed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfer(cmd, cfg, args[0])
		},
	}
	cmd.Flags().IntVarP(&cfg.Workers, "workers", "w", cfg.Workers, "Goroutines sharing the enumeration")
	cmd.Flags().StringVar(&cfg.MetricsFile, "metrics-file", cfg.MetricsFile, "Write Prometheus metrics to this textfile after the run")
	return cmd
}

func runInfer(cmd *cobra.Command, cfg *config, path string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := heredity.Options{
		Workers: cfg.Workers,
		Logger:  logrus.StandardLogger(),
	}

	if cfg.Tables != "" {
		tables, err := heredity.LoadTablesYAML(cfg.Tables)
		if err != nil {
			return err
		}
		opts.Tables = &tables
	}

	var registry *prometheus.Registry
	if cfg.MetricsFile != "" {
		registry = prometheus.NewRegistry()
		opts.Metrics = heredity.NewMetrics(registry)
	}

	logrus.WithField("path", path).Infoln("Loading pedigree")
	ped, err := heredity.OpenPedigree(ctx, path)
	if err != nil {
		return err
	}

	started := time.Now()
	res, inferErr := heredity.Infer(ctx, ped, opts)

	if registry != nil {
		if err := prometheus.WriteToTextfile(cfg.MetricsFile, registry); err != nil {
			logrus.WithError(err).Warnln("Unable to write metrics")
		}
	}
	if inferErr != nil {
		return inferErr
	}

	logrus.WithFields(logrus.Fields{
		"people":  ped.Len(),
		"worlds":  res.Stats.Worlds,
		"pruned":  res.Stats.Pruned,
		"elapsed": time.Since(started),
	}).Infoln("Inference complete")

	if cfg.DB != "" {
		store, err := heredity.OpenResultStore(cfg.DB)
		if err != nil {
			return err
		}
		defer store.Close()

		rec, err := store.SaveRun(path, res)
		if err != nil {
			return err
		}
		logrus.WithFields(logrus.Fields{
			"run":    rec.ID,
			"db":     cfg.DB,
			"driver": heredity.WhichSQLiteDriver(),
		}).Infoln("Saved run")
	}

	return heredity.WriteReport(cmd.OutOrStdout(), res)
}

func openStore(cfg *config) (*heredity.ResultStore, error) {
	if cfg.DB == "" {
		return nil, pfx.Err(fmt.Errorf("no database given; set --db or HEREDITY_DB"))
	}
	return heredity.OpenResultStore(cfg.DB)
}

func newRunsCmd(cfg *config) *cobra.Command {
	return &cobra.Command{
		Use:   "runs",
		Short: "List stored runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.Runs()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, r := range runs {
				fmt.Fprintf(out, "%s\t%s\t%d people\t%d worlds\t%s\n", r.ID, r.CreatedAt, r.NPeople, r.Worlds, r.Source)
			}
			return nil
		},
	}
}

func newShowCmd(cfg *config) *cobra.Command {
	return &cobra.Command{
		Use:   "show run-id",
		Short: "Print a stored run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			res, err := store.Result(args[0])
			if err != nil {
				return err
			}
			return heredity.WriteReport(cmd.OutOrStdout(), res)
		},
	}
}

func newTablesCmd(cfg *config) *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "Print the probability tables in use as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tables := heredity.DefaultTables()
			if cfg.Tables != "" {
				var err error
				if tables, err = heredity.LoadTablesYAML(cfg.Tables); err != nil {
					return err
				}
			}
			return heredity.WriteTablesYAML(cmd.OutOrStdout(), tables)
		},
	}
}
