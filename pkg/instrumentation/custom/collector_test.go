package custom

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/arca-digital/complaints-book-backend/pkg/config"
	"github.com/arca-digital/complaints-book-backend/pkg/dao"
	"github.com/arca-digital/complaints-book-backend/pkg/instrumentation"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewCollector(t *testing.T) {
	var c *Collector
	jobs := dao.NewMockProvisioningJobDao(t)

	// Success case
	reg := prometheus.NewRegistry()
	metrics := instrumentation.NewMetrics(reg)
	c = NewCollector(context.Background(), metrics, jobs)
	assert.NotNil(t, c)

	// Forcing nil Context
	//nolint:staticcheck
	c = NewCollector(nil, metrics, jobs)
	assert.Nil(t, c)

	// metrics nil
	c = NewCollector(context.Background(), nil, jobs)
	assert.Nil(t, c)

	// dao nil
	c = NewCollector(context.Background(), metrics, nil)
	assert.Nil(t, c)
}

func TestIterateSetsJobGauges(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := instrumentation.NewMetrics(reg)
	jobs := dao.NewMockProvisioningJobDao(t)
	jobs.On("CountByStatus", mock.Anything).Return(map[string]int64{
		config.JobStatusPending: 3,
		config.JobStatusFailed:  1,
	}, nil).Once()

	c := NewCollector(context.Background(), metrics, jobs)
	require.NotNil(t, c)
	c.iterate()

	assert.Equal(t, float64(3), testutil.ToFloat64(metrics.ProvisioningJobsByStatus.WithLabelValues(config.JobStatusPending)))
	assert.Equal(t, float64(0), testutil.ToFloat64(metrics.ProvisioningJobsByStatus.WithLabelValues(config.JobStatusSuccess)))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.ProvisioningJobsByStatus.WithLabelValues(config.JobStatusFailed)))
}

func TestIterateKeepsGaugesOnError(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := instrumentation.NewMetrics(reg)
	metrics.ProvisioningJobsByStatus.WithLabelValues(config.JobStatusPending).Set(5)
	jobs := dao.NewMockProvisioningJobDao(t)
	jobs.On("CountByStatus", mock.Anything).Return(nil, errors.New("connection refused")).Once()

	c := NewCollector(context.Background(), metrics, jobs)
	assert.NotPanics(t, c.iterate)
	assert.Equal(t, float64(5), testutil.ToFloat64(metrics.ProvisioningJobsByStatus.WithLabelValues(config.JobStatusPending)))
}

func TestRunStopsWithContext(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := instrumentation.NewMetrics(reg)
	jobs := dao.NewMockProvisioningJobDao(t)
	jobs.On("CountByStatus", mock.Anything).Return(map[string]int64{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	c := NewCollector(ctx, metrics, jobs)
	done := make(chan struct{})
	go func() {
		c.Run()
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("collector did not stop")
	}
}
