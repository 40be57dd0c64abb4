package jobs

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/arca-digital/complaints-book-backend/pkg/clients/plesk_client"
	"github.com/arca-digital/complaints-book-backend/pkg/config"
	ce "github.com/arca-digital/complaints-book-backend/pkg/errors"
	"github.com/urfave/cli/v2"
)

var errPingFailed = errors.New("panel ping failed")

func PleskPingAction(c *cli.Context) error {
	cfg := config.Get().Plesk
	var missing []string
	if cfg.URL == "" {
		missing = append(missing, "plesk.url")
	}
	if cfg.APIKey == "" {
		missing = append(missing, "plesk.api_key")
	}
	if err := ce.NewConfigIncompleteError(missing...); err != nil {
		return err
	}
	return pleskPing(c.Context, plesk_client.NewPleskClient(cfg), c.App.Writer)
}

// pleskPing prints the panel status and body. Only a request that got no
// answer at all fails the command.
func pleskPing(ctx context.Context, client plesk_client.PleskClient, out io.Writer) error {
	res := client.Ping(ctx)
	if res.NetworkError {
		fmt.Fprintf(out, "network error: %s\n", res.Error)
		return errPingFailed
	}
	fmt.Fprintf(out, "HTTP %d\n", res.Status)
	if res.Body != "" {
		fmt.Fprintln(out, res.Body)
	}
	if !res.OK {
		fmt.Fprintf(out, "panel error: %s\n", res.Error)
	}
	return nil
}
