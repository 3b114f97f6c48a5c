package service

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/ovenledger/bakehouse-api/internal/repository"
)

// ReportService renders read-only XLSX exports of a tenant's sales and
// inventory for downstream consumers.
type ReportService struct {
	sales    SaleRepository
	products ProductRepository
}

func NewReportService(sales SaleRepository, products ProductRepository) *ReportService {
	return &ReportService{
		sales:    sales,
		products: products,
	}
}

func (s *ReportService) SalesReport(ctx context.Context, tenantID uint, filter repository.SaleFilter) (*excelize.File, error) {
	sales, err := s.sales.FindAll(ctx, tenantID, filter)
	if err != nil {
		return nil, fmt.Errorf("s.sales.FindAll -> %w", err)
	}

	f := excelize.NewFile()
	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	header := []interface{}{"bill_number", "branch", "items", "total_amount", "discount", "net_payable", "sold_at"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("f.SetSheetRow -> %w", err)
	}

	for i, sale := range sales {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("excelize.CoordinatesToCellName -> %w", err)
		}

		row := []interface{}{
			sale.BillNumber,
			sale.Branch,
			len(sale.Items),
			sale.TotalAmount,
			sale.Discount,
			sale.NetPayable(),
			sale.CreatedAt.Format("2006-01-02 15:04"),
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("f.SetSheetRow -> %w", err)
		}
	}

	return f, nil
}

func (s *ReportService) InventoryReport(ctx context.Context, tenantID uint, filter repository.ProductFilter) (*excelize.File, error) {
	products, err := s.products.FindAll(ctx, tenantID, filter)
	if err != nil {
		return nil, fmt.Errorf("s.products.FindAll -> %w", err)
	}

	f := excelize.NewFile()
	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	header := []interface{}{"name", "category", "branch", "quantity", "price", "expiry_date", "expiry_status"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("f.SetSheetRow -> %w", err)
	}

	for i, p := range products {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("excelize.CoordinatesToCellName -> %w", err)
		}

		expiry := ""
		if p.ExpiryDate != nil {
			expiry = p.ExpiryDate.Format("2006-01-02")
		}

		row := []interface{}{
			p.Name,
			p.Category,
			p.Branch,
			p.Quantity,
			p.Price,
			expiry,
			string(p.ExpiryStatus()),
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("f.SetSheetRow -> %w", err)
		}
	}

	return f, nil
}
