package jobs

import (
	"context"
	"fmt"
	"io"

	"github.com/arca-digital/complaints-book-backend/pkg/domainname"
	"github.com/arca-digital/complaints-book-backend/pkg/tasks/queue"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func EnqueueDomainAction(c *cli.Context) error {
	ctx := c.Context
	store, closeStore, err := openJobStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	return enqueueDomain(ctx, store, c.Int64("tenant-id"), c.String("domain"), c.App.Writer)
}

// enqueueDomain is the explicit re-enqueue of an alias job, a failed job goes
// back to pending with its attempts kept.
func enqueueDomain(ctx context.Context, store queue.JobStore, tenantID int64, raw string, out io.Writer) error {
	domain := domainname.Normalize(raw)
	if !domainname.IsValid(domain) {
		return fmt.Errorf("invalid domain %q", raw)
	}
	outcome, err := store.EnqueueAliasCreate(ctx, tenantID, domain)
	if err != nil {
		return err
	}
	log.Info().Int64("tenant_id", tenantID).Str("domain", domain).Str("outcome", string(outcome)).Msg("Enqueued domain alias")
	fmt.Fprintf(out, "%s: %s\n", domain, outcome)
	return nil
}
