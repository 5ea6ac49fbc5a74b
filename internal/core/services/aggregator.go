package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/gconnect/internal/core/domain"
	"github.com/custodia-labs/gconnect/internal/logger"
)

// FanOutPolicy decides what happens when one source of a fan-out fails.
type FanOutPolicy int

const (
	// FailFast fails the whole call on the first source error.
	FailFast FanOutPolicy = iota

	// BestEffort skips failed sources and fails only if every source failed.
	BestEffort
)

// fanOut calls fetch once per source concurrently and returns the results
// in source order. Failures are wrapped in domain.ErrAggregationFailed with
// the source error kept inspectable.
func fanOut[T any](
	ctx context.Context,
	sources []string,
	policy FanOutPolicy,
	fetch func(ctx context.Context, source string) ([]T, error),
) ([][]T, error) {
	results := make([][]T, len(sources))

	if policy == FailFast {
		g, gctx := errgroup.WithContext(ctx)
		for i, src := range sources {
			g.Go(func() error {
				items, err := fetch(gctx, src)
				if err != nil {
					return fmt.Errorf("%w: %s: %w", domain.ErrAggregationFailed, src, err)
				}
				results[i] = items
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		return results, nil
	}

	var g errgroup.Group
	errs := make([]error, len(sources))
	for i, src := range sources {
		g.Go(func() error {
			items, err := fetch(ctx, src)
			if err != nil {
				logger.Warn("skipping source %s: %v", src, err)
				errs[i] = fmt.Errorf("%s: %w", src, err)
				return nil
			}
			results[i] = items
			return nil
		})
	}
	_ = g.Wait()

	if len(sources) > 0 && !slices.Contains(errs, nil) {
		return nil, fmt.Errorf("%w: all sources failed: %w", domain.ErrAggregationFailed, errors.Join(errs...))
	}
	return results, nil
}

// MergeEvents normalises and concatenates per-source event lists in source
// order, then stable-sorts by the textual start key with unknown starts
// first. Ties keep their concatenation order.
//
// The comparison is lexical on purpose: all-day dates ("2025-01-02") and
// offset timestamps are compared as strings, exactly as received.
func MergeEvents(perSource ...[]domain.RawEvent) []domain.NormalizedEvent {
	var total int
	for _, events := range perSource {
		total += len(events)
	}

	merged := make([]domain.NormalizedEvent, 0, total)
	for _, events := range perSource {
		for _, ev := range events {
			merged = append(merged, NormalizeEvent(ev))
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].StartKey() < merged[j].StartKey()
	})
	return merged
}

// NormalizeEvent maps a raw event to its response shape.
func NormalizeEvent(ev domain.RawEvent) domain.NormalizedEvent {
	return domain.NormalizedEvent{
		Start:       domain.Optional(ev.Start.Value()),
		End:         domain.Optional(ev.End.Value()),
		Title:       domain.Optional(ev.Summary),
		Description: domain.Optional(ev.Description),
		Location:    domain.Optional(ev.Location),
	}
}

// NormalizeMessages maps raw messages in order. Messages without an id are
// dropped.
func NormalizeMessages(msgs []domain.RawMessage) []domain.NormalizedMessage {
	out := make([]domain.NormalizedMessage, 0, len(msgs))
	for _, m := range msgs {
		if m.ID == "" {
			logger.Debug("dropping message without id")
			continue
		}
		out = append(out, domain.NormalizedMessage{
			ID:       m.ID,
			ThreadID: domain.Optional(m.ThreadID),
			Sender:   domain.Optional(m.HeaderValue("From")),
			Subject:  domain.Optional(m.HeaderValue("Subject")),
			Snippet:  domain.Optional(m.Snippet),
		})
	}
	return out
}

// NormalizeFiles maps raw files in order. Files without an id are dropped.
func NormalizeFiles(files []domain.RawFile) []domain.NormalizedFile {
	out := make([]domain.NormalizedFile, 0, len(files))
	for _, f := range files {
		if f.ID == "" {
			logger.Debug("dropping file without id")
			continue
		}
		out = append(out, domain.NormalizedFile{
			ID:           f.ID,
			Name:         domain.Optional(f.Name),
			MimeType:     domain.Optional(f.MimeType),
			ModifiedTime: domain.Optional(f.ModifiedTime),
		})
	}
	return out
}

// NormalizeFileContent maps exported file content. The requested id is used
// when the provider omitted it.
func NormalizeFileContent(fileID string, fc *domain.RawFileContent) *domain.NormalizedFileContent {
	id := fc.ID
	if id == "" {
		id = fileID
	}
	return &domain.NormalizedFileContent{
		ID:       id,
		Name:     domain.Optional(fc.Name),
		MimeType: domain.Optional(fc.MimeType),
		Content:  fc.Content,
	}
}
