package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/kobopay/bvn-bulk-service/internal/core/domain"
	"github.com/kobopay/bvn-bulk-service/internal/core/ports"
	"github.com/kobopay/bvn-bulk-service/internal/log"
	"github.com/kobopay/bvn-bulk-service/internal/repositories"
	"github.com/kobopay/bvn-bulk-service/pkg/cache"
	"github.com/kobopay/bvn-bulk-service/pkg/pubsub"
)

const (
	// expiryWindow is how long a completed bulk result stays available.
	expiryWindow = 48 * time.Hour
	// lookupCacheTTL bounds the in process cache in front of the lookup table.
	lookupCacheTTL = 5 * time.Minute
)

// BulkConfig tunes the processing loop. Delay is the inter iteration throttle
// protecting the upstream provider and is required.
type BulkConfig struct {
	BatchSize   int
	Delay       time.Duration
	MaxInFlight int
}

// Bulk implements ports.BulkService: the bulk record processing engine.
type Bulk struct {
	bulkRepo     ports.BulkRepository
	recordRepo   ports.RecordRepository
	lookupRepo   ports.LookupRepository
	liveProvider ports.VerificationProvider
	mockProvider ports.VerificationProvider
	downstream   ports.DownstreamGateway
	publisher    pubsub.Publisher
	cachex       cache.Cache
	cfg          BulkConfig
}

// NewBulk creates the bulk processing service.
func NewBulk(
	bulkRepo ports.BulkRepository,
	recordRepo ports.RecordRepository,
	lookupRepo ports.LookupRepository,
	liveProvider ports.VerificationProvider,
	mockProvider ports.VerificationProvider,
	downstream ports.DownstreamGateway,
	publisher pubsub.Publisher,
	cachex cache.Cache,
	cfg BulkConfig,
) *Bulk {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 500
	}
	if cfg.MaxInFlight <= 0 {
		cfg.MaxInFlight = cfg.BatchSize
	}
	return &Bulk{
		bulkRepo:     bulkRepo,
		recordRepo:   recordRepo,
		lookupRepo:   lookupRepo,
		liveProvider: liveProvider,
		mockProvider: mockProvider,
		downstream:   downstream,
		publisher:    publisher,
		cachex:       cachex,
		cfg:          cfg,
	}
}

// Initiate validates the bulk, flips it to IN-PROGRESS and launches the
// processing loop on a detached goroutine. The caller gets its answer before
// any record is touched.
func (s *Bulk) Initiate(ctx context.Context, bulkFk int64) ports.InitiateResult {
	bulk, err := s.bulkRepo.GetByPK(ctx, bulkFk)
	if err != nil {
		if errors.Is(err, repositories.ErrBulkNotFound) {
			log.Info(ctx, "bulk not found", "bulk", bulkFk)
			return ports.Rejected(fmt.Sprintf("Bulk with id %d not found", bulkFk))
		}
		log.Error(ctx, "loading bulk", "bulk", bulkFk, "err", err)
		return ports.InternalError(err.Error())
	}

	if bulk.Active() {
		log.Info(ctx, "bulk already active", "bulk", bulkFk, "status", bulk.Status)
		return ports.Rejected(fmt.Sprintf("Bulk %d is %s", bulkFk, bulk.Status))
	}

	if err := s.bulkRepo.UpdateStatus(ctx, bulkFk, domain.BulkStatusInProgress); err != nil {
		log.Error(ctx, "flipping bulk to in-progress", "bulk", bulkFk, "err", err)
		return ports.InternalError(err.Error())
	}

	log.Info(ctx, "processing bulk", "bulk", bulkFk, "mode", bulk.ServiceMode)

	// Detached from the request lifecycle: only the logger travels along.
	loopCtx := log.CopyFromContext(ctx, context.Background())
	go func() {
		if err := s.ProcessBulk(loopCtx, bulkFk, bulk.ServiceMode); err != nil {
			log.Error(loopCtx, "bulk processing loop aborted", "bulk", bulkFk, "err", err)
		}
	}()

	return ports.Accepted(fmt.Sprintf("Request received successfully, bulk %d is in progress", bulkFk))
}

// ProcessBulk drives the claim, resolve, throttle loop until no unprocessed
// record remains, then finalizes the bulk. Termination is purely driven by
// record exhaustion: a provider outage that never completes records keeps the
// loop alive until the context is cancelled.
func (s *Bulk) ProcessBulk(ctx context.Context, bulkFk int64, mode domain.ServiceMode) error {
	ctx = log.With(ctx, "job-id", uuid.NewString(), "bulk", bulkFk)

	for {
		unprocessed, err := s.recordRepo.HasUnprocessed(ctx, bulkFk)
		if err != nil {
			return fmt.Errorf("checking unprocessed records: %w", err)
		}
		if !unprocessed {
			break
		}

		claimed, err := s.recordRepo.ClaimBatch(ctx, bulkFk, s.cfg.BatchSize)
		if err != nil {
			return fmt.Errorf("claiming record batch: %w", err)
		}
		log.Debug(ctx, "claimed record batch", "records", len(claimed))

		g := &errgroup.Group{}
		g.SetLimit(s.cfg.MaxInFlight)
		for _, record := range claimed {
			record := record
			g.Go(func() error {
				// All settled semantics: one record must never abort the rest.
				if err := s.resolveRecord(ctx, record, mode); err != nil {
					log.Error(ctx, "failed processing record",
						"searchParameter", record.SearchParameter, "record", record.PK, "err", err)
				}
				return nil
			})
		}
		_ = g.Wait()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.cfg.Delay):
		}
	}

	log.Info(ctx, "finished processing bulk")
	incomplete, err := s.Finalize(ctx, bulkFk, mode)
	if err != nil {
		return fmt.Errorf("finalizing bulk: %w", err)
	}
	if incomplete > 0 {
		log.Warn(ctx, "bulk left incomplete records after exhaustion", "incomplete", incomplete)
	}
	return nil
}

// Finalize verifies no record is left incomplete, marks the bulk COMPLETED
// with its expiry date and fires the downstream side effects. With incomplete
// records it returns their count and mutates nothing: a safety net against
// premature finalize calls.
func (s *Bulk) Finalize(ctx context.Context, bulkFk int64, mode domain.ServiceMode) (int, error) {
	incomplete, err := s.recordRepo.CountIncomplete(ctx, bulkFk)
	if err != nil {
		return 0, fmt.Errorf("counting incomplete records: %w", err)
	}
	if incomplete > 0 {
		return incomplete, nil
	}

	now := time.Now()
	if err := s.bulkRepo.Complete(ctx, bulkFk, now, now.Add(expiryWindow)); err != nil {
		return 0, fmt.Errorf("completing bulk: %w", err)
	}

	bulk, err := s.bulkRepo.GetByPK(ctx, bulkFk)
	if err != nil {
		return 0, fmt.Errorf("reloading completed bulk: %w", err)
	}

	// Side effects are best effort and never roll back the completion.
	if mode.IsLive() {
		if err := s.downstream.SendCompletionMail(ctx, bulkFk); err != nil {
			log.Error(ctx, "sending completion mail", "bulk", bulkFk, "err", err)
		}
	}
	log.Info(ctx, "generating report for bulk", "bulk", bulkFk)
	if err := s.downstream.UploadBulkResult(ctx, bulk.WrapperFk, bulk.PK, bulk.FileName); err != nil {
		log.Error(ctx, "uploading bulk result", "bulk", bulkFk, "err", err)
	}

	if s.publisher != nil {
		records, err := s.recordRepo.Count(ctx, bulkFk)
		if err != nil {
			log.Warn(ctx, "counting bulk records", "bulk", bulkFk, "err", err)
		}
		ev := pubsub.BulkCompletedEvent{BulkID: bulk.BulkID, ServiceMode: string(bulk.ServiceMode), Records: records}
		if err := s.publisher.Publish(ctx, pubsub.EventBulkCompleted, &ev); err != nil {
			log.Error(ctx, "publishing bulk completed event", "bulk", bulkFk, "err", err)
		}
	}

	return 0, nil
}

func (s *Bulk) resolveRecord(ctx context.Context, record domain.Record, mode domain.ServiceMode) error {
	bvn := record.SearchParameter

	hit, err := s.probeLookup(ctx, bvn)
	if err != nil {
		// A broken lookup store must not leave the record IN_PROGRESS,
		// the bulk would never finalize. Resolve it like a failed call.
		log.Error(ctx, "checking lookup table", "record", record.PK, "err", err)
		return s.recordRepo.Resolve(ctx, record.PK, domain.OutcomeNotVerified(err.Error()))
	}
	if hit {
		log.Debug(ctx, "identifier found in lookup table, skipping provider call", "record", record.PK)
		return s.recordRepo.Resolve(ctx, record.PK, domain.OutcomeLookupHit())
	}

	resp, err := s.provider(mode).Lookup(ctx, bvn)
	if err != nil {
		// Transport failures are terminal non matches, never retried here.
		log.Warn(ctx, "provider call failed", "record", record.PK, "err", err)
		return s.recordRepo.Resolve(ctx, record.PK, domain.OutcomeNotVerified(err.Error()))
	}

	switch {
	case resp.Successful():
		if resp.Data == nil {
			log.Warn(ctx, "provider reply carries no identity data", "record", record.PK)
			return s.recordRepo.Resolve(ctx, record.PK, domain.OutcomeNotVerified("provider reply carries no identity data"))
		}
		entry := domain.LookupEntryFromIdentity(bvn, *resp.Data)
		if err := s.lookupRepo.Upsert(ctx, entry); err != nil {
			log.Error(ctx, "upserting lookup entry", "record", record.PK, "err", err)
			return s.recordRepo.Resolve(ctx, record.PK, domain.OutcomeNotVerified(err.Error()))
		}
		if s.cachex != nil {
			if err := s.cachex.Set(ctx, lookupCacheKey(bvn), entry, lookupCacheTTL); err != nil {
				log.Warn(ctx, "caching lookup entry", "err", err)
			}
		}
		return s.recordRepo.Resolve(ctx, record.PK, domain.OutcomeVerified())
	case resp != nil && resp.StatusCode == 400:
		return s.recordRepo.Resolve(ctx, record.PK, domain.OutcomeNotVerified(resp.Message))
	default:
		status := 0
		if resp != nil {
			status = resp.StatusCode
		}
		log.Warn(ctx, "provider returned unexpected status", "record", record.PK, "status", status)
		return s.recordRepo.Resolve(ctx, record.PK, domain.OutcomeFailed())
	}
}

// probeLookup checks the in process cache first, then the lookup table. The
// probe runs on every attempt: the cache fills mid run and short circuits
// later rows of the same bulk.
func (s *Bulk) probeLookup(ctx context.Context, bvn string) (bool, error) {
	if s.cachex != nil {
		var cached domain.LookupEntry
		if s.cachex.Get(ctx, lookupCacheKey(bvn), &cached) {
			return true, nil
		}
	}

	entry, err := s.lookupRepo.Get(ctx, bvn)
	if err != nil {
		if errors.Is(err, repositories.ErrLookupEntryNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("probing lookup table: %w", err)
	}

	if s.cachex != nil {
		if err := s.cachex.Set(ctx, lookupCacheKey(bvn), *entry, lookupCacheTTL); err != nil {
			log.Warn(ctx, "caching lookup entry", "err", err)
		}
	}
	return true, nil
}

func (s *Bulk) provider(mode domain.ServiceMode) ports.VerificationProvider {
	if mode.IsLive() {
		return s.liveProvider
	}
	return s.mockProvider
}

func lookupCacheKey(bvn string) string {
	return "bvn-lookup-" + bvn
}
