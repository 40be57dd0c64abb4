package jobs

import (
	"context"
	"fmt"

	"github.com/arca-digital/complaints-book-backend/pkg/db"
	"github.com/arca-digital/complaints-book-backend/pkg/tasks/queue"
	"github.com/urfave/cli/v2"
)

// Commands are the maintenance jobs run through cmd/jobs, usually from cron.
func Commands() []*cli.Command {
	return []*cli.Command{
		{
			Name:   "provision-domains",
			Usage:  "process pending panel alias jobs once",
			Action: ProvisionDomainsAction,
		},
		{
			Name:   "plesk-ping",
			Usage:  "send a server info request to the panel with the configured credentials",
			Action: PleskPingAction,
		},
		{
			Name:  "enqueue-domain",
			Usage: "queue the panel alias of a domain again",
			Flags: []cli.Flag{
				&cli.Int64Flag{Name: "tenant-id", Usage: "tenant owning the domain", Required: true},
				&cli.StringFlag{Name: "domain", Usage: "domain to alias", Required: true},
			},
			Action: EnqueueDomainAction,
		},
		{
			Name:  "seed-platform",
			Usage: "create the platform tenant and its domain",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "platform-domain", Usage: "domain of the platform, defaults to platform.base_domain"},
			},
			Action: SeedPlatformAction,
		},
		{
			Name:  "create-tenant",
			Usage: "create a tenant and its platform subdomain",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "slug", Usage: "tenant slug, also the subdomain label", Required: true},
				&cli.StringFlag{Name: "name", Usage: "display name", Required: true},
			},
			Action: CreateTenantAction,
		},
	}
}

// openJobStore connects the pgx job store. The returned func closes the pool.
func openJobStore(ctx context.Context) (*queue.PgJobStore, func(), error) {
	pool, err := queue.NewPgxPool(ctx, db.GetUrl())
	if err != nil {
		return nil, nil, fmt.Errorf("error connecting job store: %w", err)
	}
	wrapper := queue.NewPgxPoolWrapper(pool)
	return queue.NewPgJobStore(wrapper), wrapper.Close, nil
}
