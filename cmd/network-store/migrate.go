package main

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	v1 "github.com/gridstore/network-store/api/v1"
	"github.com/gridstore/network-store/internal/config"
	"github.com/gridstore/network-store/internal/migration"
	"github.com/gridstore/network-store/internal/services"
	"github.com/gridstore/network-store/pkg/client"
	"github.com/gridstore/network-store/pkg/scheduler"
)

const allVariants = -1

type migrateOptions struct {
	unit       string
	networkID  string
	variantNum int
	remote     string
	token      string
}

func newMigrateCommand(cfg *config.Configuration) *cobra.Command {
	opts := migrateOptions{}
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Rewrite stored data of a network into the current encoding",
		Long: `Runs one migration unit on one variant, or on every variant of the network when
--variant is omitted. The store is opened directly unless --remote names a running server.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			networkID, err := uuid.Parse(opts.networkID)
			if err != nil {
				return fmt.Errorf("invalid network id %q: %w", opts.networkID, err)
			}

			var reports []v1.MigrationReport
			if opts.remote != "" {
				reports, err = migrateRemote(cmd.Context(), opts, networkID)
			} else {
				reports, err = migrateLocal(cmd.Context(), cfg, opts, networkID)
			}
			printReports(cmd.OutOrStdout(), reports)
			return err
		},
	}

	cmd.Flags().StringVar(&opts.unit, "unit", "", "migration unit name")
	cmd.Flags().StringVar(&opts.networkID, "network", "", "network id")
	cmd.Flags().IntVar(&opts.variantNum, "variant", allVariants, "variant number, every variant when omitted")
	cmd.Flags().StringVar(&opts.remote, "remote", "", "base url of a running network store")
	cmd.Flags().StringVar(&opts.token, "token", "", "bearer token for --remote")
	_ = cmd.MarkFlagRequired("unit")
	_ = cmd.MarkFlagRequired("network")
	addStoreFlags(cmd, cfg)
	return cmd
}

func migrateLocal(ctx context.Context, cfg *config.Configuration, opts migrateOptions, networkID uuid.UUID) ([]v1.MigrationReport, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	db, st, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	sched := scheduler.NewScheduler(cfg.Migration.NumWorkers)
	defer sched.Close()
	srv := services.NewMigrationService(st, migration.NewEngine(st), sched)

	if opts.variantNum != allVariants {
		r, err := srv.Migrate(ctx, opts.unit, networkID, opts.variantNum)
		if err != nil {
			return nil, err
		}
		return []v1.MigrationReport{v1.NewMigrationReportFromModel(r)}, nil
	}
	reports, err := srv.MigrateNetwork(ctx, opts.unit, networkID)
	return v1.NewMigrationReportsFromModel(reports), err
}

func migrateRemote(ctx context.Context, opts migrateOptions, networkID uuid.UUID) ([]v1.MigrationReport, error) {
	var clientOpts []client.Option
	if opts.token != "" {
		clientOpts = append(clientOpts, client.WithToken(opts.token))
	}
	c, err := client.NewClient(opts.remote, clientOpts...)
	if err != nil {
		return nil, err
	}

	if opts.variantNum != allVariants {
		r, err := client.Retry(ctx, func() (*v1.MigrationReport, error) {
			return c.Migrate(ctx, opts.unit, networkID, opts.variantNum)
		})
		if err != nil {
			return nil, err
		}
		return []v1.MigrationReport{*r}, nil
	}
	return client.Retry(ctx, func() ([]v1.MigrationReport, error) {
		return c.MigrateNetwork(ctx, opts.unit, networkID)
	})
}

func printReports(w io.Writer, reports []v1.MigrationReport) {
	green := color.New(color.FgGreen).SprintFunc()
	faint := color.New(color.Faint).SprintFunc()
	for _, r := range reports {
		status := green("migrated")
		if r.RowsRead == 0 && r.RowsWritten == 0 && r.RowsDeleted == 0 {
			status = faint("up to date")
		}
		fmt.Fprintf(w, "%s variant %d: %s (read %d, written %d, deleted %d)\n",
			r.Unit, r.VariantNum, status, r.RowsRead, r.RowsWritten, r.RowsDeleted)
	}
}
