package services

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/gifex/internal/core/domain"
	"github.com/custodia-labs/gifex/internal/core/ports/driven"
	"github.com/custodia-labs/gifex/internal/core/ports/driving"
	"github.com/custodia-labs/gifex/internal/logger"
)

// Ensure DispatchService implements the interface.
var _ driving.DispatchService = (*DispatchService)(nil)

// DispatchService opens result links through a LinkOpener.
type DispatchService struct {
	opener driven.LinkOpener
}

// NewDispatchService creates a new dispatch service.
func NewDispatchService(opener driven.LinkOpener) *DispatchService {
	return &DispatchService{opener: opener}
}

// Open launches a single link.
func (s *DispatchService) Open(ctx context.Context, link string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(link) == "" {
		return errors.New("empty link")
	}
	if s.opener == nil {
		return errors.New("no link opener configured")
	}
	return s.opener.Open(link)
}

// OpenAll launches the link of every record in set, in order, paced by a
// token bucket. A failed launch is recorded and the loop moves on; only
// cancellation of ctx stops it early, returning the partial report.
func (s *DispatchService) OpenAll(
	ctx context.Context,
	set *domain.ResultSet,
	opts domain.OpenOptions,
) (*domain.DispatchReport, error) {
	target := opts.Target
	if target == "" {
		target = domain.OpenTargetSrc
	}
	if !target.IsValid() {
		return nil, domain.ErrInvalidInput
	}
	if s.opener == nil && !opts.DryRun {
		return nil, errors.New("no link opener configured")
	}

	records := set.Records()
	report := &domain.DispatchReport{
		Requested: len(records),
		Opened:    make([]string, 0, len(records)),
		DryRun:    opts.DryRun,
	}

	limiter := newLimiter(opts)
	logger.Section("Open")
	logger.Debug("opening %d links (target=%s rate=%.2f/s dry-run=%t)", len(records), target, opts.Rate, opts.DryRun)

	for _, r := range records {
		link := strings.TrimSpace(r.Link(target))
		if link == "" {
			report.Failed = append(report.Failed, domain.LinkFailure{ID: r.ID, Reason: "empty link"})
			continue
		}

		if !opts.DryRun {
			if err := limiter.Wait(ctx); err != nil {
				return report, err
			}
			if err := s.opener.Open(link); err != nil {
				logger.Warn("open %s: %v", link, err)
				report.Failed = append(report.Failed, domain.LinkFailure{ID: r.ID, Link: link, Reason: err.Error()})
				continue
			}
		} else if err := ctx.Err(); err != nil {
			return report, err
		}
		report.Opened = append(report.Opened, link)
	}

	logger.Info("opened %d of %d links (%d failed)", len(report.Opened), report.Requested, len(report.Failed))
	return report, nil
}

// newLimiter builds the pacing limiter. A non-positive rate means no pacing.
func newLimiter(opts domain.OpenOptions) *rate.Limiter {
	burst := opts.Burst
	if burst < 1 {
		burst = 1
	}
	if opts.Rate <= 0 {
		return rate.NewLimiter(rate.Inf, burst)
	}
	return rate.NewLimiter(rate.Limit(opts.Rate), burst)
}
