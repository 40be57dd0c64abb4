package jobs

import (
	"context"
	"fmt"
	"io"

	"github.com/arca-digital/complaints-book-backend/pkg/config"
	"github.com/arca-digital/complaints-book-backend/pkg/dao"
	"github.com/arca-digital/complaints-book-backend/pkg/db"
	"github.com/arca-digital/complaints-book-backend/pkg/domainname"
	ce "github.com/arca-digital/complaints-book-backend/pkg/errors"
	"github.com/urfave/cli/v2"
)

const PlatformTenantName = "Plataforma Libro de Reclamaciones"

func SeedPlatformAction(c *cli.Context) error {
	domain := c.String("platform-domain")
	if domain == "" {
		domain = config.Get().Platform.BaseDomain
	}
	return seedPlatform(c.Context, dao.GetDaoRegistry(db.DB), config.Get().Platform, domain, c.App.Writer)
}

// seedPlatform creates or renames the platform tenant and makes domain its
// primary platform domain. Running it again changes nothing.
func seedPlatform(ctx context.Context, daoReg *dao.DaoRegistry, platform config.Platform, raw string, out io.Writer) error {
	domain := domainname.Normalize(raw)
	if domain == "" {
		return ce.NewConfigIncompleteError("platform.base_domain")
	}
	slug := platform.DefaultTenantSlug
	if slug == "" {
		slug = "platform"
	}

	tenant, err := daoReg.Tenant.Upsert(ctx, slug, PlatformTenantName)
	if err != nil {
		return fmt.Errorf("could not seed platform tenant: %w", err)
	}
	if _, err := daoReg.TenantDomain.UpsertPlatformDomain(ctx, tenant.ID, domain); err != nil {
		return fmt.Errorf("could not seed platform domain: %w", err)
	}
	fmt.Fprintln(out, "Seed OK")
	fmt.Fprintf(out, "Platform tenant: %s (%d)\n", tenant.Slug, tenant.ID)
	fmt.Fprintf(out, "Platform domain: %s\n", domain)
	return nil
}

func CreateTenantAction(c *cli.Context) error {
	return createTenant(c.Context, dao.GetDaoRegistry(db.DB), config.Get().Platform, c.String("slug"), c.String("name"), c.App.Writer)
}

// createTenant adds a tenant reachable on {slug}.{base_domain}.
func createTenant(ctx context.Context, daoReg *dao.DaoRegistry, platform config.Platform, slug string, name string, out io.Writer) error {
	if err := platform.Validate(); err != nil {
		return err
	}
	subdomain := domainname.Normalize(slug + "." + platform.BaseDomain)
	if !domainname.IsValid(subdomain) {
		return &ce.DaoError{Message: fmt.Sprintf("Slug %q cannot be used as a subdomain", slug), BadValidation: true}
	}

	tenant, err := daoReg.Tenant.Create(ctx, slug, name)
	if err != nil {
		return err
	}
	if _, err := daoReg.TenantDomain.UpsertSubdomain(ctx, tenant.ID, subdomain); err != nil {
		return err
	}
	fmt.Fprintf(out, "Tenant %s (%d) on %s\n", tenant.Slug, tenant.ID, subdomain)
	return nil
}
