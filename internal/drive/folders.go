// Package drive lists member document folders from Google Drive. It is the
// storage side of the matching inputs: one folder per member, labeled
// free-text by staff.
package drive

import (
	"context"
	"fmt"
	"time"

	"transition-crm/internal/config"
	"transition-crm/internal/logger"
	"transition-crm/internal/matching"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

const (
	folderMimeType = "application/vnd.google-apps.folder"
	listFields     = "nextPageToken, files(id, name, parents, modifiedTime)"
	childFields    = "nextPageToken, files(mimeType)"
)

// Service lists member folders under a configured Drive root.
type Service struct {
	client   *drive.Service
	rootID   string
	pageSize int64
	workers  int
	limiter  *rate.Limiter
}

// NewService creates a Drive folder source. With no credentials file
// configured it falls back to application default credentials.
func NewService(ctx context.Context, cfg config.DriveConfig) (*Service, error) {
	opts := []option.ClientOption{option.WithScopes(drive.DriveReadonlyScope)}
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}

	workers := cfg.EnrichWorkers
	if workers < 1 {
		workers = 1
	}

	return &Service{
		client:   client,
		rootID:   cfg.RootFolderID,
		pageSize: cfg.PageSize,
		workers:  workers,
		limiter:  rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.RequestBurst),
	}, nil
}

// ListMemberFolders returns every non-trashed folder directly under the root,
// with parsed names and file counts filled in. Listing failures abort the
// scan (there is nothing to match without inputs); per-folder enrichment
// failures do not.
func (s *Service) ListMemberFolders(ctx context.Context) ([]matching.FolderRecord, error) {
	query := fmt.Sprintf("'%s' in parents and mimeType = '%s' and trashed = false", s.rootID, folderMimeType)

	records := []matching.FolderRecord{}
	pageToken := ""
	for {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		call := s.client.Files.List().
			Q(query).
			Fields(listFields).
			PageSize(s.pageSize).
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		resp, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("list drive folders: %w", err)
		}

		for _, f := range resp.Files {
			rec := matching.FolderRecord{
				ID:     f.Id,
				Name:   f.Name,
				Parsed: matching.Parse(f.Name),
			}
			if len(f.Parents) > 0 {
				rec.ParentID = f.Parents[0]
			}
			if t, err := time.Parse(time.RFC3339, f.ModifiedTime); err == nil {
				rec.LastModified = t
			}
			records = append(records, rec)
		}

		if resp.NextPageToken == "" {
			break
		}
		pageToken = resp.NextPageToken
	}

	s.enrichCounts(ctx, records)

	logger.Info().
		Int("folders", len(records)).
		Str("root", s.rootID).
		Msg("drive folder scan complete")

	return records, nil
}

// enrichCounts fills file and subfolder counts with bounded concurrency.
// A failed lookup leaves zero counts for that folder and the scan continues.
func (s *Service) enrichCounts(ctx context.Context, records []matching.FolderRecord) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i := range records {
		i := i
		g.Go(func() error {
			files, subfolders, err := s.countChildren(gctx, records[i].ID)
			if err != nil {
				logger.Warn().
					Err(err).
					Str("folder_id", records[i].ID).
					Str("folder_name", records[i].Name).
					Msg("failed to count folder contents, continuing scan")
				return nil
			}
			records[i].FileCount = files
			records[i].SubfolderCount = subfolders
			return nil
		})
	}
	g.Wait()
}

func (s *Service) countChildren(ctx context.Context, folderID string) (files, subfolders int, err error) {
	query := fmt.Sprintf("'%s' in parents and trashed = false", folderID)

	pageToken := ""
	for {
		if err := s.limiter.Wait(ctx); err != nil {
			return 0, 0, err
		}

		call := s.client.Files.List().
			Q(query).
			Fields(childFields).
			PageSize(1000).
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		resp, err := call.Do()
		if err != nil {
			return 0, 0, fmt.Errorf("list folder children: %w", err)
		}

		for _, f := range resp.Files {
			if f.MimeType == folderMimeType {
				subfolders++
			} else {
				files++
			}
		}

		if resp.NextPageToken == "" {
			break
		}
		pageToken = resp.NextPageToken
	}

	return files, subfolders, nil
}
