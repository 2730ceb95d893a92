package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"assignment_service/internal/domain"
	"assignment_service/internal/errdefs"
	"assignment_service/internal/storage"
	"assignment_service/pkg/logger"
)

type ArtifactFetcher interface {
	Fetch(ctx context.Context, url string) (io.ReadCloser, string, error)
}

type ObjectUploader interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) error
	Bucket() string
}

type OutcomeNotifier interface {
	NotifyOutcome(ctx context.Context, recipient string, status domain.DeliveryStatus, message string) error
}

type OutcomeRecorder interface {
	Record(ctx context.Context, recipient string, status domain.DeliveryStatus) (*domain.DeliveryRecord, error)
}

// Fulfiller drives one fulfillment per delivered envelope:
// fetch the artifact, upload it under its deterministic key, notify the
// submitter, record the outcome. Notify runs exactly once on every branch
// and the ledger write runs even when notify fails. There is no internal
// retry; channel redelivery is the only recovery mechanism, and a
// redelivered envelope overwrites the same object while appending a new
// ledger row.
type Fulfiller struct {
	fetcher  ArtifactFetcher
	store    ObjectUploader
	notifier OutcomeNotifier
	ledger   OutcomeRecorder
	log      *logger.Logger
}

func NewFulfiller(
	fetcher ArtifactFetcher,
	store ObjectUploader,
	notifier OutcomeNotifier,
	ledger OutcomeRecorder,
	log *logger.Logger,
) *Fulfiller {
	return &Fulfiller{
		fetcher:  fetcher,
		store:    store,
		notifier: notifier,
		ledger:   ledger,
		log:      log,
	}
}

// Handle is the channel callback. Fulfillment errors are terminal per
// invocation: they are folded into the failure branch, never returned for
// redelivery.
func (f *Fulfiller) Handle(ctx context.Context, value []byte) error {
	var event domain.SubmissionEvent
	if err := json.Unmarshal(value, &event); err != nil {
		f.log.Error("Failed to unmarshal submission event", zap.Error(err))
		return fmt.Errorf("failed to unmarshal submission event: %w", err)
	}

	f.Fulfill(ctx, &event)
	return nil
}

func (f *Fulfiller) Fulfill(ctx context.Context, event *domain.SubmissionEvent) {
	key := storage.ObjectKey(event.Assignment, event.Email, event.Version)

	status := domain.DeliverySuccess
	message := fmt.Sprintf("Successfully uploaded - %s/%s", f.store.Bucket(), key)

	body, contentType, err := f.fetcher.Fetch(ctx, event.URL)
	if err != nil {
		status = domain.DeliveryFailure
		message = failureReason(err)
		f.log.Error("Artifact fetch failed", zap.String("url", event.URL), zap.Error(err))
	} else {
		uploadErr := f.store.Upload(ctx, key, body, contentType)
		_ = body.Close()
		if uploadErr != nil {
			status = domain.DeliveryFailure
			message = failureReason(uploadErr)
			f.log.Error("Artifact upload failed", zap.String("key", key), zap.Error(uploadErr))
		} else {
			f.log.Info("Artifact uploaded", zap.String("key", key))
		}
	}

	recordStatus := status
	if err := f.notifier.NotifyOutcome(ctx, event.Email, status, message); err != nil {
		// the ledger tracks notification outcomes, so a failed send is
		// recorded as a failure without masking the original reason
		recordStatus = domain.DeliveryFailure
		f.log.Error("Outcome notification failed", zap.String("recipient", event.Email), zap.Error(err))
	}

	record, err := f.ledger.Record(ctx, event.Email, recordStatus)
	if err != nil {
		f.log.Error("Ledger write failed", zap.String("recipient", event.Email), zap.Error(err))
		return
	}

	f.log.Info("Recorded delivery outcome",
		zap.String("message_id", record.MessageID),
		zap.String("recipient", record.Recipient),
		zap.String("status", string(record.Status)),
	)
}

func failureReason(err error) string {
	if errors.Is(err, errdefs.ErrArtifactNotFound) {
		return "Invalid submission URL"
	}
	return err.Error()
}
