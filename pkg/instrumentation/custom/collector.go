package custom

import (
	"context"
	"time"

	"github.com/arca-digital/complaints-book-backend/pkg/config"
	"github.com/arca-digital/complaints-book-backend/pkg/dao"
	"github.com/arca-digital/complaints-book-backend/pkg/instrumentation"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const tickerDelay = 30 // in seconds

// Collector refreshes the gauges that are read from the database.
type Collector struct {
	context context.Context
	metrics *instrumentation.Metrics
	jobs    dao.ProvisioningJobDao
}

func NewCollector(context context.Context, metrics *instrumentation.Metrics, jobs dao.ProvisioningJobDao) *Collector {
	if context == nil {
		return nil
	}
	if metrics == nil {
		return nil
	}
	if jobs == nil {
		return nil
	}
	return &Collector{
		context: log.Logger.Level(zerolog.WarnLevel).WithContext(context),
		metrics: metrics,
		jobs:    jobs,
	}
}

func (c *Collector) iterate() {
	counts, err := c.jobs.CountByStatus(c.context)
	if err != nil {
		zerolog.Ctx(c.context).Warn().Err(err).Msg("could not count provisioning jobs")
		return
	}
	for _, status := range config.JobStatuses {
		c.metrics.ProvisioningJobsByStatus.With(prometheus.Labels{"status": status}).Set(float64(counts[status]))
	}
}

func (c *Collector) Run() {
	log.Info().Msg("Starting metrics collector go routine")
	c.iterate()
	ticker := time.NewTicker(tickerDelay * time.Second)
	for {
		select {
		case <-ticker.C:
			c.iterate()
		case <-c.context.Done():
			log.Info().Msgf("Stopping metrics collector go routine")
			ticker.Stop()
			return
		}
	}
}
