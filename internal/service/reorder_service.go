// internal/service/reorder_service.go
package service

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/mcampagna/riordino/internal/config"
	"github.com/mcampagna/riordino/internal/domain"
	"github.com/mcampagna/riordino/internal/engine"
	"github.com/mcampagna/riordino/internal/report"
	"github.com/mcampagna/riordino/internal/sapexport"
	"github.com/mcampagna/riordino/internal/vendors"
)

// ReorderService runs the whole pipeline for uploaded sales exports: period
// resolution, parsing, the reorder engine and the workbook exports.
type ReorderService struct {
	outputDir         string
	defaultPeriodDays int
}

func NewReorderService(cfg *config.Config) *ReorderService {
	return &ReorderService{
		outputDir:         cfg.App.OutputDir,
		defaultPeriodDays: cfg.Reorder.DefaultPeriodDays,
	}
}

// ProcessFiles processes multiple exports concurrently. Any file failing
// fails the whole call; each export is otherwise independent.
func (s *ReorderService) ProcessFiles(ctx context.Context, files []*domain.UploadedFile, params domain.ReorderParameters, vendorRef map[string]domain.VendorInfo, mode report.SortMode) ([]*domain.RunSummary, error) {
	var (
		mu        sync.Mutex
		summaries = make([]*domain.RunSummary, len(files))
	)

	g, ctx := errgroup.WithContext(ctx)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			summary, err := s.ProcessFile(ctx, file, params, vendorRef, mode)
			if err != nil {
				return fmt.Errorf("error processing file %s: %w", file.Filename, err)
			}
			mu.Lock()
			summaries[i] = summary
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return summaries, nil
}

// ProcessFile runs one export end to end and writes both workbooks to the
// output directory.
func (s *ReorderService) ProcessFile(ctx context.Context, file *domain.UploadedFile, params domain.ReorderParameters, vendorRef map[string]domain.VendorInfo, mode report.SortMode) (*domain.RunSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	periodDays := s.defaultPeriodDays
	fromName := false
	if start, end, ok := sapexport.ExtractPeriodFromFilename(file.Filename); ok {
		periodDays = sapexport.PeriodDays(start, end)
		fromName = true
		log.Info().
			Str("filename", file.Filename).
			Str("from", start.Format("2006-01-02")).
			Str("to", end.Format("2006-01-02")).
			Int("period_days", periodDays).
			Msg("period detected from filename")
	} else {
		log.Warn().
			Str("filename", file.Filename).
			Int("period_days", periodDays).
			Msg("no date range in filename, using default period")
	}

	rows, err := sapexport.ReadFile(file.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse sales export: %w", err)
	}

	records, err := engine.Normalize(rows, periodDays)
	if err != nil {
		return nil, err
	}

	out, err := engine.Run(records, params, vendorRef)
	if err != nil {
		return nil, err
	}

	runID := newRunID(file.Filename)
	analysisPath := filepath.Join(s.outputDir, fmt.Sprintf("analisi_riordino_%s.xlsx", runID))
	byVendorPath := filepath.Join(s.outputDir, fmt.Sprintf("ordini_per_fornitore_%s.xlsx", runID))

	if err := report.WriteAnalysis(analysisPath, records, out); err != nil {
		return nil, fmt.Errorf("failed to write analysis workbook: %w", err)
	}
	if err := report.WriteByVendor(byVendorPath, out, mode); err != nil {
		return nil, fmt.Errorf("failed to write vendor workbook: %w", err)
	}

	summary := &domain.RunSummary{
		RunID:          runID,
		Filename:       file.Filename,
		PeriodDays:     periodDays,
		PeriodFromName: fromName,
		TotalItems:     len(out.Results),
		Vendors:        len(out.Groups),
		AnalysisPath:   analysisPath,
		ByVendorPath:   byVendorPath,
		ProcessedAt:    time.Now(),
	}
	for _, res := range out.Results {
		if res.RoundedRequirement > 0 {
			summary.ItemsToOrder++
			summary.TotalQty += res.RoundedRequirement
		}
	}

	log.Info().
		Str("run_id", runID).
		Int("items", summary.TotalItems).
		Int("items_to_order", summary.ItemsToOrder).
		Int("total_qty", summary.TotalQty).
		Int("vendors", summary.Vendors).
		Msg("reorder run completed")

	return summary, nil
}

// WriteVendorTemplate extracts the distinct vendor names of an export and
// writes the reference CSV skeleton next to the other outputs.
func (s *ReorderService) WriteVendorTemplate(file *domain.UploadedFile) (string, error) {
	rows, err := sapexport.ReadFile(file.Path)
	if err != nil {
		return "", fmt.Errorf("failed to parse sales export: %w", err)
	}

	names := make([]string, 0, len(rows))
	for _, row := range rows {
		names = append(names, row.VendorID)
	}

	path := filepath.Join(s.outputDir, fmt.Sprintf("vendors_template_%s.csv", newRunID(file.Filename)))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create vendor template %s: %w", path, err)
	}
	defer f.Close()

	if err := vendors.WriteTemplate(f, names); err != nil {
		return "", err
	}
	return path, nil
}

// newRunID builds a filesystem-safe run identifier from the upload's name,
// the processing time and a random tail, so same-named files processed in the
// same second still get distinct output paths.
func newRunID(filename string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	var b strings.Builder
	for _, r := range strings.ToLower(base) {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
		case b.Len() > 0 && !strings.HasSuffix(b.String(), "-"):
			b.WriteRune('-')
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		slug = "export"
	}
	if len(slug) > 40 {
		slug = slug[:40]
	}
	return fmt.Sprintf("%s_%s_%04x", slug, time.Now().Format("20060102T150405"), rand.Intn(0x10000))
}
