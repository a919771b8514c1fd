package pipeline

import (
	"context"
	"fmt"
	"path/filepath"

	"fergusquote/internal"
	"fergusquote/internal/config"
	"fergusquote/internal/extract"
	"fergusquote/internal/fergus"
	"fergusquote/internal/storage"
	"fergusquote/internal/util"
)

// Service ties the pipeline stages together: import files into stored
// batches, and push a batch's quote to the remote service. Every push
// builds its payload from scratch before the first network write, so
// a failed call leaves nothing half-done.
type Service struct {
	db     *storage.DB
	client *fergus.Client
	cfg    config.Config
}

func NewService(db *storage.DB, cfg config.Config) *Service {
	return &Service{db: db, client: fergus.NewClient(cfg), cfg: cfg}
}

func (s *Service) Client() *fergus.Client {
	return s.client
}

type ImportResult struct {
	Batch   internal.BatchRow
	Items   []internal.RawItem
	JobHint string
}

func (s *Service) ImportFile(path, kind string) (ImportResult, error) {
	items, jobHint, err := extract.FromFile(path, kind)
	if err != nil {
		return ImportResult{}, err
	}
	if len(items) == 0 {
		return ImportResult{}, fmt.Errorf("no takeoff items found in %s", path)
	}

	source := string(items[0].Source)
	batch, err := s.db.InsertBatch(source, filepath.Base(path), jobHint, items)
	if err != nil {
		return ImportResult{}, err
	}

	return ImportResult{Batch: batch, Items: items, JobHint: jobHint}, nil
}

func (s *Service) BatchItems(batchID int, groups []string) ([]internal.RawItem, error) {
	items, err := s.db.GetBatchItems(batchID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("no items for batch id=%d", batchID)
	}
	return FilterByGroups(items, groups), nil
}

type PushRequest struct {
	BatchID int
	JobNo   string
	QuoteID int
	Groups  []string
	// Title overrides the job description as the quote title.
	Title string
}

// Push builds and submits the quote for a batch. QuoteID zero creates
// a new quote; nonzero replaces the referenced quote's content, unless
// that quote is already accepted.
func (s *Service) Push(ctx context.Context, req PushRequest) (internal.PushResult, error) {
	items, err := s.BatchItems(req.BatchID, req.Groups)
	if err != nil {
		return internal.PushResult{Action: internal.PushFailed}, err
	}

	jobNo := util.ExtractDigits(req.JobNo)
	job, err := s.client.MustJobByNumber(ctx, jobNo)
	if err != nil {
		return internal.PushResult{Action: internal.PushFailed}, err
	}

	title := req.Title
	if title == "" {
		title = job.Description
	}
	payload := BuildQuotePayload(s.cfg, title, items)

	result := internal.PushResult{
		JobID:  job.ID,
		JobNo:  job.JobNo,
		WebURL: s.client.QuoteWebURL(job.JobNo),
	}

	if req.QuoteID > 0 {
		quotes, err := s.client.ListQuotes(ctx, job.ID)
		if err != nil {
			result.Action = internal.PushFailed
			return result, err
		}
		for _, q := range quotes {
			if q.ID == req.QuoteID && q.IsAccepted {
				result.Action = internal.PushFailed
				return result, fmt.Errorf("quote %d is accepted and cannot be updated", req.QuoteID)
			}
		}
		if err := s.client.UpdateQuote(ctx, job.ID, req.QuoteID, payload); err != nil {
			result.Action = internal.PushFailed
			return result, err
		}
		result.Action = internal.PushUpdated
		result.QuoteID = req.QuoteID
	} else {
		quoteID, err := s.client.CreateQuote(ctx, job.ID, payload)
		if err != nil {
			result.Action = internal.PushFailed
			return result, err
		}
		result.Action = internal.PushCreated
		result.QuoteID = quoteID
	}

	if err := s.db.InsertPush(req.BatchID, result, title, payload); err != nil {
		return result, err
	}
	_ = s.db.SetMetadata("lastJobNo", result.JobNo)
	return result, nil
}

func (s *Service) RecentBatches(limit int) ([]internal.BatchRow, error) {
	return s.db.ListBatches(limit)
}

func (s *Service) PushHistory(batchID int) ([]internal.PushRow, error) {
	return s.db.ListPushes(batchID)
}

// LastJobNo is the job number of the most recent successful push, used
// as the final fallback when neither the flags nor the imported file
// name a job.
func (s *Service) LastJobNo() string {
	v, err := s.db.GetMetadata("lastJobNo")
	if err != nil || v == nil {
		return ""
	}
	return *v
}
