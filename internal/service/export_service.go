// internal/service/export_service.go
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"

	"github.com/stitchworks/stitcherp/internal/costing"
	"github.com/stitchworks/stitcherp/internal/domain"
	"github.com/stitchworks/stitcherp/internal/repository"
	"github.com/stitchworks/stitcherp/internal/storage"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportService builds cost-sheet workbooks for a style and archives them
// in object storage.
type ExportService struct {
	styleRepo repository.StyleRepository
	skuRepo   repository.SKURepository
	costing   *CostingService
	store     storage.ObjectStorage
	currency  string
}

func NewExportService(
	styleRepo repository.StyleRepository,
	skuRepo repository.SKURepository,
	costingService *CostingService,
	store storage.ObjectStorage,
	currency string,
) *ExportService {
	return &ExportService{
		styleRepo: styleRepo,
		skuRepo:   skuRepo,
		costing:   costingService,
		store:     store,
		currency:  currency,
	}
}

// CostSheetResult describes the archived workbook.
type CostSheetResult struct {
	StyleCode  string    `json:"style_code"`
	ObjectKey  string    `json:"object_key"`
	SKUCount   int       `json:"sku_count"`
	ExportedAt time.Time `json:"exported_at"`
}

// ExportStyleCostSheet rolls up every SKU of a style, writes one worksheet
// per SKU, and uploads the workbook. Rollups run concurrently; the workbook
// is assembled after all of them finish.
func (s *ExportService) ExportStyleCostSheet(ctx context.Context, styleCode string) (*CostSheetResult, error) {
	style, err := s.styleRepo.GetByCode(ctx, styleCode)
	if err != nil {
		return nil, fmt.Errorf("style %s: %w", styleCode, err)
	}

	skus, err := s.skuRepo.GetByStyle(ctx, styleCode)
	if err != nil {
		return nil, fmt.Errorf("failed to load skus for style %s: %w", styleCode, err)
	}
	if len(skus) == 0 {
		return nil, fmt.Errorf("style %s has no skus to export", styleCode)
	}

	var mu sync.Mutex
	summaries := make(map[string]*costing.BOMCostSummary, len(skus))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, sku := range skus {
		code := sku.Code
		g.Go(func() error {
			summary, err := s.costing.CostSKU(gctx, code)
			if err != nil {
				return fmt.Errorf("cost rollup for %s: %w", code, err)
			}
			mu.Lock()
			summaries[code] = summary
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	data, err := s.buildWorkbook(style.Name, skus, summaries)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	key := fmt.Sprintf("cost-sheets/%s/%s.xlsx", styleCode, now.Format("20060102-150405"))
	if err := s.store.Upload(ctx, key, data, xlsxContentType); err != nil {
		return nil, fmt.Errorf("failed to archive cost sheet: %w", err)
	}

	log.Info().Str("style_code", styleCode).Str("object_key", key).Int("sku_count", len(skus)).
		Msg("cost sheet exported")

	return &CostSheetResult{
		StyleCode:  styleCode,
		ObjectKey:  key,
		SKUCount:   len(skus),
		ExportedAt: now,
	}, nil
}

func (s *ExportService) buildWorkbook(styleName string, skus []domain.SKU, summaries map[string]*costing.BOMCostSummary) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	header := []interface{}{"Material", "Description", "Unit", "Consumption", "Wastage %",
		fmt.Sprintf("Unit Cost (%s)", s.currency), fmt.Sprintf("Line Cost (%s)", s.currency)}

	for i, sku := range skus {
		sheet := sku.Code
		if i == 0 {
			f.SetSheetName("Sheet1", sheet)
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				return nil, fmt.Errorf("failed to add sheet %s: %w", sheet, err)
			}
		}

		if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
			return nil, err
		}

		summary := summaries[sku.Code]
		row := 2
		for _, line := range summary.Lines {
			cell, _ := excelize.CoordinatesToCellName(1, row)
			values := []interface{}{
				line.MaterialCode, line.Description, line.Unit,
				line.Consumption.String(), line.WastagePct.String(),
				line.CostPerUnit.String(), line.LineCost.String(),
			}
			if err := f.SetSheetRow(sheet, cell, &values); err != nil {
				return nil, err
			}
			row++
		}

		totalCell, _ := excelize.CoordinatesToCellName(6, row+1)
		totalRow := []interface{}{"Total", summary.TotalCost.String()}
		if err := f.SetSheetRow(sheet, totalCell, &totalRow); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook for %s: %w", styleName, err)
	}

	return buf.Bytes(), nil
}
