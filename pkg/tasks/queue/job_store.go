package queue

import (
	"context"
	"errors"
	"fmt"

	"github.com/arca-digital/complaints-book-backend/pkg/config"
	"github.com/arca-digital/complaints-book-backend/pkg/domainname"
	ce "github.com/arca-digital/complaints-book-backend/pkg/errors"
	"github.com/arca-digital/complaints-book-backend/pkg/models"
	"github.com/jackc/pgx/v5"
)

// MaxErrorLength bounds last_error, the column is VARCHAR(255).
const MaxErrorLength = 255

const jobReturning = ` id, tenant_id, domain, action, status, attempts, last_error, created_at, processed_at `

const (
	sqlSelectJobForUpdate = `
		SELECT id, status
		FROM domain_provisioning_jobs
		WHERE tenant_id = $1 AND domain = $2 AND action = $3
		FOR UPDATE`
	sqlInsertJob = `
		INSERT INTO domain_provisioning_jobs (tenant_id, domain, action, status, attempts, created_at)
		VALUES ($1, $2, $3, 'pending', 0, statement_timestamp())
		ON CONFLICT (tenant_id, domain, action) DO NOTHING`
	sqlRequeueJob = `
		UPDATE domain_provisioning_jobs
		SET status = 'pending'
		WHERE id = $1 AND status <> 'success'`
	sqlListPending = `
		SELECT ` + jobReturning + `
		FROM domain_provisioning_jobs
		WHERE status = 'pending'
		ORDER BY id ASC
		LIMIT $1`
	sqlFetchJob = `
		SELECT ` + jobReturning + `
		FROM domain_provisioning_jobs
		WHERE id = $1`
	sqlMarkSuccess = `
		UPDATE domain_provisioning_jobs
		SET status = 'success', processed_at = statement_timestamp(), last_error = NULL
		WHERE id = $1`
	sqlMarkFailed = `
		UPDATE domain_provisioning_jobs
		SET status = 'failed', processed_at = statement_timestamp(), last_error = $2
		WHERE id = $1`
	sqlIncrementAttempts = `
		UPDATE domain_provisioning_jobs
		SET attempts = attempts + 1, last_error = $2
		WHERE id = $1`
	sqlDeleteAllJobs = `DELETE FROM domain_provisioning_jobs`
)

// EnqueueOutcome tells the caller what an enqueue did to the job row.
type EnqueueOutcome string

const (
	EnqueueCreated            EnqueueOutcome = "created"             // New pending row
	EnqueueRequeued           EnqueueOutcome = "requeued"            // Failed row set back to pending
	EnqueueAlreadyPending     EnqueueOutcome = "already_pending"     // Row was pending, nothing changed
	EnqueueAlreadyProvisioned EnqueueOutcome = "already_provisioned" // Row was success, nothing changed
)

// Changed reports whether the enqueue left a job waiting for the next pass.
func (o EnqueueOutcome) Changed() bool {
	return o == EnqueueCreated || o == EnqueueRequeued
}

//go:generate $GO_OUTPUT/mockery  --name JobStore --filename job_store_mock.go --inpackage
type JobStore interface {
	// EnqueueAliasCreate creates the alias_create job for (tenant, domain), or
	// resets it to pending unless it already succeeded. Attempts are kept.
	EnqueueAliasCreate(ctx context.Context, tenantID int64, domain string) (EnqueueOutcome, error)
	// ListPending returns up to limit pending jobs, oldest first.
	ListPending(ctx context.Context, limit int) ([]models.ProvisioningJob, error)
	MarkSuccess(ctx context.Context, id int64) error
	MarkFailed(ctx context.Context, id int64, errMsg string) error
	// IncrementAttempts bumps attempts and replaces last_error, nil clears it.
	IncrementAttempts(ctx context.Context, id int64, provisionalErr *string) error
	Fetch(ctx context.Context, id int64) (models.ProvisioningJob, error)
	// Retry re-enqueues an existing job by id.
	Retry(ctx context.Context, id int64) (models.ProvisioningJob, EnqueueOutcome, error)
	RemoveAllJobs(ctx context.Context) error
}

// PgJobStore keeps provisioning jobs in postgres through a pgx pool.
type PgJobStore struct {
	Pool Pool
}

func NewPgJobStore(pool Pool) *PgJobStore {
	return &PgJobStore{Pool: pool}
}

func (s *PgJobStore) EnqueueAliasCreate(ctx context.Context, tenantID int64, domain string) (outcome EnqueueOutcome, err error) {
	domain = domainname.Normalize(domain)
	if domain == "" || tenantID <= 0 {
		return "", &ce.DaoError{Message: "tenant and domain are required to enqueue a job", BadValidation: true}
	}

	tx, err := s.Pool.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("error starting database transaction: %w", err)
	}
	defer func() {
		errRollback := tx.Rollback(ctx)
		if errRollback != nil && !errors.Is(errRollback, pgx.ErrTxClosed) {
			err = fmt.Errorf("error rolling back enqueue transaction: %w: %v", errRollback, err)
		}
	}()

	var (
		id     int64
		status string
	)
	err = tx.QueryRow(ctx, sqlSelectJobForUpdate, tenantID, domain, config.ActionAliasCreate).Scan(&id, &status)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		tag, errInsert := tx.Exec(ctx, sqlInsertJob, tenantID, domain, config.ActionAliasCreate)
		if errInsert != nil {
			return "", fmt.Errorf("error enqueuing job: %w", errInsert)
		}
		if tag.RowsAffected() == 1 {
			outcome = EnqueueCreated
			break
		}
		// A concurrent enqueue inserted the row first, lock it and fall through.
		err = tx.QueryRow(ctx, sqlSelectJobForUpdate, tenantID, domain, config.ActionAliasCreate).Scan(&id, &status)
		if err != nil {
			return "", fmt.Errorf("error reading concurrently enqueued job: %w", err)
		}
		outcome, err = s.requeueLocked(ctx, tx, id, status)
		if err != nil {
			return "", err
		}
	case err != nil:
		return "", fmt.Errorf("error reading job: %w", err)
	default:
		outcome, err = s.requeueLocked(ctx, tx, id, status)
		if err != nil {
			return "", err
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("unable to commit database transaction: %w", err)
	}
	return outcome, nil
}

func (s *PgJobStore) requeueLocked(ctx context.Context, tx pgx.Tx, id int64, status string) (EnqueueOutcome, error) {
	switch status {
	case config.JobStatusSuccess:
		return EnqueueAlreadyProvisioned, nil
	case config.JobStatusPending:
		return EnqueueAlreadyPending, nil
	}
	if _, err := tx.Exec(ctx, sqlRequeueJob, id); err != nil {
		return "", fmt.Errorf("error requeuing job %d: %w", id, err)
	}
	return EnqueueRequeued, nil
}

func (s *PgJobStore) ListPending(ctx context.Context, limit int) ([]models.ProvisioningJob, error) {
	if limit <= 0 {
		limit = config.DefaultProvisioningBatch
	}
	rows, err := s.Pool.Query(ctx, sqlListPending, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing pending jobs: %w", err)
	}
	jobs, err := pgx.CollectRows(rows, scanJob)
	if err != nil {
		return nil, fmt.Errorf("error reading pending jobs: %w", err)
	}
	return jobs, nil
}

func (s *PgJobStore) MarkSuccess(ctx context.Context, id int64) error {
	return s.update(ctx, id, sqlMarkSuccess)
}

func (s *PgJobStore) MarkFailed(ctx context.Context, id int64, errMsg string) error {
	return s.update(ctx, id, sqlMarkFailed, truncateError(errMsg))
}

func (s *PgJobStore) IncrementAttempts(ctx context.Context, id int64, provisionalErr *string) error {
	var lastError *string
	if provisionalErr != nil {
		truncated := truncateError(*provisionalErr)
		lastError = &truncated
	}
	return s.update(ctx, id, sqlIncrementAttempts, lastError)
}

func (s *PgJobStore) update(ctx context.Context, id int64, sql string, args ...any) error {
	tag, err := s.Pool.Exec(ctx, sql, append([]any{id}, args...)...)
	if err != nil {
		return fmt.Errorf("error updating job %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return &ce.DaoError{Message: fmt.Sprintf("provisioning job %d not found", id), NotFound: true}
	}
	return nil
}

func (s *PgJobStore) Fetch(ctx context.Context, id int64) (models.ProvisioningJob, error) {
	rows, err := s.Pool.Query(ctx, sqlFetchJob, id)
	if err != nil {
		return models.ProvisioningJob{}, fmt.Errorf("error fetching job %d: %w", id, err)
	}
	job, err := pgx.CollectExactlyOneRow(rows, scanJob)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.ProvisioningJob{}, &ce.DaoError{Message: fmt.Sprintf("provisioning job %d not found", id), NotFound: true}
	}
	if err != nil {
		return models.ProvisioningJob{}, fmt.Errorf("error reading job %d: %w", id, err)
	}
	return job, nil
}

func (s *PgJobStore) Retry(ctx context.Context, id int64) (models.ProvisioningJob, EnqueueOutcome, error) {
	job, err := s.Fetch(ctx, id)
	if err != nil {
		return job, "", err
	}
	outcome, err := s.EnqueueAliasCreate(ctx, job.TenantID, job.Domain)
	if err != nil {
		return job, "", err
	}
	job, err = s.Fetch(ctx, id)
	return job, outcome, err
}

func (s *PgJobStore) RemoveAllJobs(ctx context.Context) error {
	_, err := s.Pool.Exec(ctx, sqlDeleteAllJobs)
	return err
}

func scanJob(row pgx.CollectableRow) (models.ProvisioningJob, error) {
	var job models.ProvisioningJob
	err := row.Scan(&job.ID, &job.TenantID, &job.Domain, &job.Action, &job.Status, &job.Attempts,
		&job.LastError, &job.CreatedAt, &job.ProcessedAt)
	return job, err
}

// truncateError cuts msg to MaxErrorLength runes.
func truncateError(msg string) string {
	runes := []rune(msg)
	if len(runes) <= MaxErrorLength {
		return msg
	}
	return string(runes[:MaxErrorLength])
}
