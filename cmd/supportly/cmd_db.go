package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/smallbiznis/supportly/internal/app"
	"github.com/smallbiznis/supportly/internal/migration"
	"github.com/smallbiznis/supportly/internal/seed"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	defaultDataDir = "database/data"
	defaultSQLFile = "database/seed_data.sql"
	defaultSeed    = 42

	commandTimeout = 5 * time.Minute
)

var (
	seedOut    string
	seedSQLIn  string
	seedSQLOut string
	seedLoadIn string
	seedRand   int64
)

// runOnce builds the infra stack plus opts, lets the invokes run, and stops.
func runOnce(opts ...fx.Option) error {
	application := fx.New(
		app.Infra(),
		fx.Options(opts...),
		fx.NopLogger,
	)
	if err := application.Err(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()
	if err := application.Start(ctx); err != nil {
		return err
	}
	return application.Stop(ctx)
}

// supportly migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the catalog and chat schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOnce(migration.Module)
	},
}

// supportly seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Generate, export and load synthetic catalog data",
}

// supportly seed generate
var seedGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write a generated dataset as JSON files",
	RunE: func(cmd *cobra.Command, args []string) error {
		ds := seed.Generate(seedRand)
		if err := seed.WriteJSON(seedOut, ds); err != nil {
			return err
		}
		printCounts(cmd, "generated", ds)
		return nil
	},
}

// supportly seed sql
var seedSQLCmd = &cobra.Command{
	Use:   "sql",
	Short: "Convert JSON seed files into a PostgreSQL script",
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := seed.ReadJSON(seedSQLIn)
		if err != nil {
			return err
		}

		if dir := filepath.Dir(seedSQLOut); dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
		}
		f, err := os.Create(seedSQLOut)
		if err != nil {
			return err
		}
		if err := seed.WriteSQL(f, ds); err != nil {
			_ = f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", seedSQLOut)
		return nil
	},
}

// supportly seed load
var seedLoadCmd = &cobra.Command{
	Use:   "load",
	Short: "Insert a dataset into the configured database",
	RunE: func(cmd *cobra.Command, args []string) error {
		var ds *seed.Dataset
		if strings.TrimSpace(seedLoadIn) == "" {
			ds = seed.Generate(seedRand)
		} else {
			read, err := seed.ReadJSON(seedLoadIn)
			if err != nil {
				return err
			}
			ds = read
		}

		err := runOnce(
			migration.Module,
			fx.Invoke(func(conn *gorm.DB, log *zap.Logger) error {
				ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
				defer cancel()
				if err := seed.Load(ctx, conn, ds); err != nil {
					return err
				}
				log.Info("seed data loaded", zap.Any("counts", ds.Counts()))
				return nil
			}),
		)
		if err != nil {
			return err
		}
		printCounts(cmd, "loaded", ds)
		return nil
	},
}

func printCounts(cmd *cobra.Command, verb string, ds *seed.Dataset) {
	out := cmd.OutOrStdout()
	for _, table := range seed.Tables {
		fmt.Fprintf(out, "%s %d %s\n", verb, ds.Counts()[table], table)
	}
}

func init() {
	seedGenerateCmd.Flags().StringVar(&seedOut, "out", defaultDataDir, "directory for the JSON files")
	seedGenerateCmd.Flags().Int64Var(&seedRand, "seed", defaultSeed, "random seed")

	seedSQLCmd.Flags().StringVar(&seedSQLIn, "in", defaultDataDir, "directory holding the JSON files")
	seedSQLCmd.Flags().StringVar(&seedSQLOut, "out", defaultSQLFile, "path of the SQL script")

	seedLoadCmd.Flags().StringVar(&seedLoadIn, "in", "", "directory holding the JSON files; empty generates a dataset")
	seedLoadCmd.Flags().Int64Var(&seedRand, "seed", defaultSeed, "random seed used when --in is empty")

	seedCmd.AddCommand(seedGenerateCmd)
	seedCmd.AddCommand(seedSQLCmd)
	seedCmd.AddCommand(seedLoadCmd)
}
