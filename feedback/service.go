// Package feedback owns user feedback delivery: submissions land in the
// durable outbox first, then a flush pushes pending entries to the remote
// endpoint whenever connectivity allows.
package feedback

import (
	"context"
	"fmt"
	"sync"

	"github.com/dchitadze/fathersquotes/logging"
	"github.com/dchitadze/fathersquotes/models"
	"github.com/dchitadze/fathersquotes/remote"
	"github.com/dchitadze/fathersquotes/repositories/outbox"
)

// flushBatchSize caps how many pending entries one flush attempts.
const flushBatchSize = 20

// FlushResult reports one flush pass. Skipped is set when the device is
// offline or another flush is already running; neither is an error.
type FlushResult struct {
	Sent    int
	Skipped bool
}

// Service queues and delivers feedback.
type Service struct {
	outbox     outbox.Repository
	remote     remote.Provider
	net        remote.Connectivity
	platform   string
	appVersion string
	log        logging.Logger

	flushMu sync.Mutex
}

// New builds the feedback service. A nil log defaults to a no-op logger.
func New(ob outbox.Repository, provider remote.Provider, net remote.Connectivity, platform, appVersion string, log logging.Logger) *Service {
	if log == nil {
		log = logging.Nop()
	}
	return &Service{
		outbox:     ob,
		remote:     provider,
		net:        net,
		platform:   platform,
		appVersion: appVersion,
		log:        log.With("component", "feedback"),
	}
}

// Submit queues the message durably and then attempts an opportunistic
// flush. Enqueue failure is the only error; a flush that cannot deliver
// right now leaves the entry pending for a later pass.
func (s *Service) Submit(ctx context.Context, message string, contact *string, lang models.Language) error {
	if _, err := s.outbox.Enqueue(ctx, message, contact, lang); err != nil {
		return err
	}
	if _, err := s.Flush(ctx); err != nil {
		s.log.Warn(ctx, "post-submit flush failed", "error", err)
	}
	return nil
}

// Flush delivers up to flushBatchSize pending entries oldest-first. One
// entry's delivery failure marks it failed and never blocks the rest.
// Concurrent invocations are serialized: a second caller is skipped rather
// than risking duplicate remote submissions.
func (s *Service) Flush(ctx context.Context) (FlushResult, error) {
	if !s.flushMu.TryLock() {
		return FlushResult{Skipped: true}, nil
	}
	defer s.flushMu.Unlock()

	if !s.net.Online(ctx) {
		return FlushResult{Skipped: true}, nil
	}

	pending, err := s.outbox.Pending(ctx, flushBatchSize)
	if err != nil {
		return FlushResult{}, fmt.Errorf("failed to load pending feedback: %w", err)
	}

	var sent int
	for _, entry := range pending {
		err := s.remote.SubmitFeedback(ctx, remote.Feedback{
			Message:    entry.Message,
			Contact:    entry.Contact,
			Language:   string(entry.Language),
			Platform:   s.platform,
			AppVersion: s.appVersion,
		})
		if err != nil {
			s.log.Warn(ctx, "feedback delivery failed", "id", entry.ID, "error", err)
			if err := s.outbox.MarkFailed(ctx, entry.ID, err.Error()); err != nil {
				return FlushResult{Sent: sent}, err
			}
			continue
		}
		if err := s.outbox.MarkSent(ctx, entry.ID); err != nil {
			return FlushResult{Sent: sent}, err
		}
		sent++
	}

	return FlushResult{Sent: sent}, nil
}

// RetryFailed resets every failed entry back to pending and flushes again.
// This backs the manual retry-all affordance in the settings screen.
func (s *Service) RetryFailed(ctx context.Context) (FlushResult, error) {
	if _, err := s.outbox.RetryFailed(ctx); err != nil {
		return FlushResult{}, err
	}
	return s.Flush(ctx)
}
