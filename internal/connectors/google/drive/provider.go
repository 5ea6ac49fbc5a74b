// Package drive lists files and exports Google Docs from the Drive API.
package drive

import (
	"context"
	"fmt"
	"net/http"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"

	"github.com/custodia-labs/gconnect/internal/connectors/google"
	"github.com/custodia-labs/gconnect/internal/core/domain"
	"github.com/custodia-labs/gconnect/internal/core/ports/driven"
	"github.com/custodia-labs/gconnect/internal/logger"
)

// Ensure Provider implements the interface.
var _ driven.FileProvider = (*Provider)(nil)

// Provider lists and exports Drive files.
type Provider struct {
	opts        google.ServiceOptions
	rateLimiter *google.RateLimiter
}

// New creates a Drive provider.
func New(opts google.ServiceOptions, rateLimiter *google.RateLimiter) *Provider {
	return &Provider{opts: opts, rateLimiter: rateLimiter}
}

// ListFiles returns up to q.MaxResults files matching q.Query, sorted by
// q.OrderBy when set.
func (p *Provider) ListFiles(
	ctx context.Context, cred *domain.Credential, q domain.FileQuery,
) ([]domain.RawFile, error) {
	ctx, cancel := p.opts.WithTimeout(ctx)
	defer cancel()

	svc, err := google.NewDriveService(ctx, cred, p.opts)
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}

	list, err := google.Do(ctx, p.rateLimiter, func() (*drive.FileList, error) {
		req := svc.Files.List().
			Q(q.Query).
			PageSize(int64(q.MaxResults)).
			Fields(googleapi.Field("files(" + fileFields + ")"))
		if q.OrderBy != "" {
			req = req.OrderBy(q.OrderBy)
		}
		return req.Context(ctx).Do()
	})
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}

	files := make([]domain.RawFile, 0, len(list.Files))
	for _, f := range list.Files {
		if f == nil {
			continue
		}
		files = append(files, FileToRaw(f))
	}
	logger.Debug("drive: %d files for %q", len(files), q.Query)
	return files, nil
}

// ExportText returns the plain-text export of a Google Doc. Any other kind
// of file yields *domain.UnsupportedExportError without downloading.
func (p *Provider) ExportText(
	ctx context.Context, cred *domain.Credential, fileID string,
) (*domain.RawFileContent, error) {
	ctx, cancel := p.opts.WithTimeout(ctx)
	defer cancel()

	svc, err := google.NewDriveService(ctx, cred, p.opts)
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}

	file, err := google.Do(ctx, p.rateLimiter, func() (*drive.File, error) {
		return svc.Files.Get(fileID).Fields(googleapi.Field(fileFields)).Context(ctx).Do()
	})
	if err != nil {
		return nil, fmt.Errorf("get file %s: %w", fileID, err)
	}

	if !isExportable(file.MimeType) {
		return nil, &domain.UnsupportedExportError{MimeType: file.MimeType}
	}

	resp, err := google.Do(ctx, p.rateLimiter, func() (*http.Response, error) {
		return svc.Files.Export(fileID, ExportMimeText).Context(ctx).Download()
	})
	if err != nil {
		return nil, fmt.Errorf("export file %s: %w", fileID, err)
	}
	defer resp.Body.Close()

	content, err := readText(resp.Body)
	if err != nil {
		return nil, google.Classify(err)
	}

	return &domain.RawFileContent{
		RawFile: FileToRaw(file),
		Content: content,
	}, nil
}
