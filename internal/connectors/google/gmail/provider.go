// Package gmail reads message metadata from the Gmail API.
package gmail

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
	"google.golang.org/api/gmail/v1"

	"github.com/custodia-labs/gconnect/internal/connectors/google"
	"github.com/custodia-labs/gconnect/internal/core/domain"
	"github.com/custodia-labs/gconnect/internal/core/ports/driven"
	"github.com/custodia-labs/gconnect/internal/logger"
)

// Ensure Provider implements the interface.
var _ driven.MailProvider = (*Provider)(nil)

// userID addresses the authenticated user.
const userID = "me"

// DefaultFetchConcurrency bounds the parallel metadata fetches of one listing.
const DefaultFetchConcurrency = 8

// Provider lists messages and fetches their headers.
type Provider struct {
	opts        google.ServiceOptions
	rateLimiter *google.RateLimiter
	concurrency int
}

// New creates a Gmail provider.
func New(opts google.ServiceOptions, rateLimiter *google.RateLimiter) *Provider {
	return &Provider{
		opts:        opts,
		rateLimiter: rateLimiter,
		concurrency: DefaultFetchConcurrency,
	}
}

// ListMessages lists up to q.MaxResults messages matching the labels and
// query, then fetches From and Subject for each. The listing order is kept.
// Any failed fetch fails the whole call.
func (p *Provider) ListMessages(
	ctx context.Context, cred *domain.Credential, q domain.MessageQuery,
) ([]domain.RawMessage, error) {
	ctx, cancel := p.opts.WithTimeout(ctx)
	defer cancel()

	svc, err := google.NewGmailService(ctx, cred, p.opts)
	if err != nil {
		return nil, fmt.Errorf("create gmail service: %w", err)
	}

	list, err := google.Do(ctx, p.rateLimiter, func() (*gmail.ListMessagesResponse, error) {
		req := svc.Users.Messages.List(userID).MaxResults(int64(q.MaxResults))
		if len(q.LabelIDs) > 0 {
			req = req.LabelIds(q.LabelIDs...)
		}
		if q.Query != "" {
			req = req.Q(q.Query)
		}
		return req.Context(ctx).Do()
	})
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	refs := make([]string, 0, len(list.Messages))
	for _, ref := range list.Messages {
		if ref != nil && ref.Id != "" {
			refs = append(refs, ref.Id)
		}
	}

	msgs := make([]domain.RawMessage, len(refs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)
	for i, id := range refs {
		g.Go(func() error {
			msg, err := p.fetchMessage(gctx, svc, id)
			if err != nil {
				return fmt.Errorf("get message %s: %w", id, err)
			}
			msgs[i] = MessageToRaw(msg)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger.Debug("gmail: %d messages", len(msgs))
	return msgs, nil
}

// fetchMessage retrieves a message's metadata and the wanted headers.
func (p *Provider) fetchMessage(ctx context.Context, svc *gmail.Service, id string) (*gmail.Message, error) {
	return google.Do(ctx, p.rateLimiter, func() (*gmail.Message, error) {
		return svc.Users.Messages.Get(userID, id).
			Format("metadata").
			MetadataHeaders(metadataHeaders...).
			Context(ctx).
			Do()
	})
}
