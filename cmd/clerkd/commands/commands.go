package commands

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/tenancyjustice/clerk/modules"
	intakeservices "github.com/tenancyjustice/clerk/modules/intake/services"
	issueservices "github.com/tenancyjustice/clerk/modules/issue/services"
	"github.com/tenancyjustice/clerk/pkg/application"
	"github.com/tenancyjustice/clerk/pkg/composables"
	"github.com/tenancyjustice/clerk/pkg/configuration"
	"github.com/tenancyjustice/clerk/pkg/eventbus"
)

func NewMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply module schemas to the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, _, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			return app.Migrations().Apply(cmd.Context())
		},
	}
}

func NewResyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resync",
		Short: "Raise fileref counters to match allocated filerefs",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, pool, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}

			issueSvc := app.Service(issueservices.IssueService{}).(*issueservices.IssueService)
			return issueSvc.ResyncAll(composables.WithPool(cmd.Context(), pool))
		},
	}
}

func NewProcessCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "process",
		Short: "Process pending intake submissions until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, pool, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}

			conf := configuration.Use()
			logger := conf.Logger()
			intakeSvc := app.Service(intakeservices.IntakeService{}).(*intakeservices.IntakeService)
			ctx := composables.WithPool(cmd.Context(), pool)

			logger.Infof("processing submissions every %s", conf.Intake.PollInterval)
			ticker := time.NewTicker(conf.Intake.PollInterval)
			defer ticker.Stop()

			for {
				n, err := intakeSvc.ProcessPending(ctx, conf.Intake.BatchSize)
				if err != nil {
					logger.WithError(err).Error("processing batch failed")
				} else if n > 0 {
					logger.Infof("processed %d submission(s)", n)
				}

				select {
				case <-ctx.Done():
					return nil
				case <-ticker.C:
				}
			}
		},
	}
}

func bootstrap(ctx context.Context) (application.Application, *pgxpool.Pool, error) {
	conf := configuration.Use()
	logger := conf.Logger()

	poolCtx, cancel := context.WithTimeout(ctx, time.Second*5)
	defer cancel()
	pool, err := pgxpool.New(poolCtx, conf.Database.Opts)
	if err != nil {
		return nil, nil, err
	}

	app := application.New(&application.ApplicationOptions{
		Pool:     pool,
		EventBus: eventbus.NewEventPublisher(logger),
		Logger:   logger,
	})
	if err := modules.Load(app, modules.BuiltInModules...); err != nil {
		return nil, nil, err
	}
	return app, pool, nil
}
