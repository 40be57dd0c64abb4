package jobs

import (
	"context"
	"fmt"
	"io"

	"github.com/arca-digital/complaints-book-backend/pkg/clients/plesk_client"
	"github.com/arca-digital/complaints-book-backend/pkg/config"
	"github.com/arca-digital/complaints-book-backend/pkg/dao"
	"github.com/arca-digital/complaints-book-backend/pkg/db"
	"github.com/arca-digital/complaints-book-backend/pkg/notifications"
	"github.com/arca-digital/complaints-book-backend/pkg/tasks"
	"github.com/arca-digital/complaints-book-backend/pkg/tasks/worker"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func ProvisionDomainsAction(c *cli.Context) error {
	ctx := c.Context
	store, closeStore, err := openJobStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	cfg := config.Get()
	provisioner := tasks.NewProvisioner(
		cfg.Plesk,
		store,
		dao.GetSystemKVDao(db.DB),
		plesk_client.NewPleskClient(cfg.Plesk),
		notifications.NewNotifier(cfg.NotificationsClient, nil),
		nil,
	)
	return provisionDomains(ctx, provisioner, c.App.Writer)
}

// provisionDomains runs one pass and prints a line per job. Failed jobs do not
// fail the command, an incomplete panel configuration does.
func provisionDomains(ctx context.Context, runner worker.PassRunner, out io.Writer) error {
	result, err := runner.RunPass(ctx)
	if err != nil {
		return err
	}

	switch result.Outcome {
	case tasks.PassDisabled:
		fmt.Fprintln(out, "plesk.auto_provision disabled")
	case tasks.PassNoPending:
		fmt.Fprintln(out, "No pending jobs")
	}
	for _, job := range result.Jobs {
		if job.OK {
			fmt.Fprintf(out, "OK alias created: %s\n", job.Domain)
		} else {
			fmt.Fprintf(out, "FAIL %s: %s\n", job.Domain, job.Error)
		}
	}
	log.Info().
		Str("outcome", result.Outcome).
		Int("succeeded", result.Succeeded).
		Int("failed", result.Failed).
		Msg("Provisioning pass done")
	return nil
}
