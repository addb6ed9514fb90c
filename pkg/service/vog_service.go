package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	mydb "github.com/yumyai/vogdb/pkg/db"
	"github.com/yumyai/vogdb/pkg/handler/request"
	"github.com/yumyai/vogdb/pkg/model"
)

// VogService is the single entry point handlers talk to. It holds no mutable
// state, so one value is shared by every request.
type VogService struct {
	DB      *sql.DB
	DataDir string
	Files   *mydb.VogFiles

	// QueryTimeout bounds each call on top of the caller's context. Zero means no bound.
	QueryTimeout time.Duration
}

func New(db *sql.DB, dataDir string, files *mydb.VogFiles, timeout time.Duration) *VogService {
	return &VogService{
		DB:           db,
		DataDir:      dataDir,
		Files:        files,
		QueryTimeout: timeout,
	}
}

func (s *VogService) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.QueryTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.QueryTimeout)
}

func (s *VogService) SearchSpecies(ctx context.Context, f *request.SpeciesFilter) ([]int64, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()
	return model.SearchSpecies(ctx, s.DB, f)
}

func (s *VogService) SpeciesSummary(ctx context.Context, taxonIDs []int64) ([]*model.SpeciesProfile, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()
	return model.SpeciesSummary(ctx, s.DB, taxonIDs)
}

func (s *VogService) SearchVogs(ctx context.Context, f *request.VOGFilter) ([]string, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()
	return model.SearchVogs(ctx, s.DB, f)
}

func (s *VogService) VogSummary(ctx context.Context, ids []string) ([]*model.VOGProfile, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()
	return model.VogSummary(ctx, s.DB, ids)
}

func (s *VogService) SearchProteins(ctx context.Context, f *request.ProteinFilter) ([]string, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()
	return model.SearchProteins(ctx, s.DB, f)
}

func (s *VogService) ProteinSummary(ctx context.Context, ids []string) ([]*model.ProteinProfile, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()
	return model.ProteinSummary(ctx, s.DB, ids)
}

// Fetch returns the raw file content (HMM, MSA or FASTA) for req.IDs in
// request order. Missing data surfaces as mydb.ErrFileNotFound.
func (s *VogService) Fetch(ctx context.Context, req request.FetchRequest) ([]byte, error) {
	if len(req.IDs) == 0 {
		return nil, &request.FilterError{Field: "id", Reason: "at least one id is required"}
	}
	if s.Files == nil {
		return nil, fmt.Errorf("%w: no data directory configured", mydb.ErrFileNotFound)
	}

	ctx, cancel := s.bound(ctx)
	defer cancel()

	switch req.Kind {
	case request.FetchHMM:
		return s.Files.GetHMM(req.IDs)
	case request.FetchMSA:
		return s.Files.GetMSA(req.IDs)
	case request.FetchProteinFAA:
		return s.Files.GetProteinSequences(ctx, req.IDs)
	case request.FetchGeneFNA:
		return s.Files.GetGeneSequences(ctx, req.IDs)
	default:
		return nil, &request.FilterError{Field: "kind", Reason: fmt.Sprintf("unsupported fetch kind %q", req.Kind)}
	}
}

// Ping checks that the store answers within the query timeout.
func (s *VogService) Ping(ctx context.Context) error {
	ctx, cancel := s.bound(ctx)
	defer cancel()
	return s.DB.PingContext(ctx)
}
