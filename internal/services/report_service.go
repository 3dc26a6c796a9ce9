package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/sjperalta/frontdesk-api/internal/clock"
	"github.com/sjperalta/frontdesk-api/internal/models"
	"github.com/sjperalta/frontdesk-api/internal/repository"
	"github.com/xuri/excelize/v2"
)

var pendingHeader = []string{
	"Bill No", "Folio", "Guest", "Room", "Total", "Advance", "Paid", "Balance",
	"Status", "Last Payment", "Split", "Root Bill", "Sequence",
}

type ReportService struct {
	bills      *BillService
	lineage    *LineageService
	clock      clock.Clock
	letterhead *Letterhead
}

func NewReportService(bills *BillService, lineage *LineageService, clk clock.Clock) *ReportService {
	return &ReportService{bills: bills, lineage: lineage, clock: clk}
}

// SetLetterhead prints logo on every statement; nil removes it
func (s *ReportService) SetLetterhead(logo *Letterhead) {
	s.letterhead = logo
}

func (s *ReportService) pendingViews(ctx context.Context) ([]models.BillSettlementView, error) {
	query := repository.NewListQuery()
	query.PerPage = 0
	views, _, err := s.bills.ListPendingSettlements(ctx, query)
	return views, err
}

func pendingRecord(v models.BillSettlementView) []string {
	lastPayment := ""
	if v.LastPaymentDate != nil {
		lastPayment = v.LastPaymentDate.Format("2006-01-02 15:04")
	}
	split := "No"
	if v.IsSplitBill {
		split = "Yes"
	}
	return []string{
		v.BillNo,
		v.FolioNo,
		v.GuestName,
		v.RoomNo,
		v.TotalAmount.StringFixed(2),
		v.AdvanceAmount.StringFixed(2),
		v.PaidAmount.StringFixed(2),
		v.BalanceAmount.StringFixed(2),
		v.SettlementStatus,
		lastPayment,
		split,
		v.OriginalBillNo,
		fmt.Sprintf("%d", v.SplitSequence),
	}
}

// PendingSettlementsCSV exports open bills as CSV
func (s *ReportService) PendingSettlementsCSV(ctx context.Context) ([]byte, string, error) {
	views, err := s.pendingViews(ctx)
	if err != nil {
		return nil, "", err
	}

	b := &bytes.Buffer{}
	w := csv.NewWriter(b)
	if err := w.Write(pendingHeader); err != nil {
		return nil, "", err
	}
	for _, v := range views {
		if err := w.Write(pendingRecord(v)); err != nil {
			return nil, "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("pending_settlements_%s.csv", s.clock.Now().Format("2006-01-02"))
	return b.Bytes(), filename, nil
}

// PendingSettlementsXLSX exports open bills as a spreadsheet with a totals row
func (s *ReportService) PendingSettlementsXLSX(ctx context.Context) ([]byte, string, error) {
	views, err := s.pendingViews(ctx)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Pending Settlements"
	_ = f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	for col, title := range pendingHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		_ = f.SetCellValue(sheet, cell, title)
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(pendingHeader), 1)
	_ = f.SetCellStyle(sheet, "A1", lastHeader, headerStyle)

	for i, v := range views {
		row := i + 2
		// money columns (E..H) are written as numbers so the sheet can sum them
		amounts := map[int]float64{
			4: v.TotalAmount.InexactFloat64(),
			5: v.AdvanceAmount.InexactFloat64(),
			6: v.PaidAmount.InexactFloat64(),
			7: v.BalanceAmount.InexactFloat64(),
		}
		for col, value := range pendingRecord(v) {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if amount, ok := amounts[col]; ok {
				_ = f.SetCellValue(sheet, cell, amount)
				continue
			}
			_ = f.SetCellValue(sheet, cell, value)
		}
	}

	totalsRow := len(views) + 2
	_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", totalsRow), "Total")
	if len(views) > 0 {
		for _, col := range []string{"E", "F", "G", "H"} {
			_ = f.SetCellFormula(sheet, fmt.Sprintf("%s%d", col, totalsRow),
				fmt.Sprintf("SUM(%s2:%s%d)", col, col, totalsRow-1))
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("pending_settlements_%s.xlsx", s.clock.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

// BillStatementPDF renders the statement of a bill's whole lineage
func (s *ReportService) BillStatementPDF(ctx context.Context, billNo string) ([]byte, string, error) {
	lineage, err := s.lineage.GetRelatedBills(ctx, billNo)
	if err != nil {
		return nil, "", err
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	if s.letterhead != nil {
		opts := gofpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader("letterhead", opts, bytes.NewReader(s.letterhead.png))
		pageWidth, _ := pdf.GetPageSize()
		_, _, right, _ := pdf.GetMargins()
		// 60mm wide, height follows the aspect ratio
		pdf.ImageOptions("letterhead", pageWidth-right-60, 8, 60, 0, false, opts, 0, "")
		if err := pdf.Error(); err != nil {
			return nil, "", fmt.Errorf("draw letterhead: %w", err)
		}
	}

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Bill Statement")
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(40, 6, fmt.Sprintf("Root bill: %s", lineage.RootBillNo))
	pdf.Ln(6)
	if len(lineage.Bills) > 0 {
		first := lineage.Bills[0]
		pdf.Cell(40, 6, fmt.Sprintf("Guest: %s   Folio: %s", first.GuestName, first.FolioNo))
		pdf.Ln(6)
	}
	pdf.Cell(40, 6, fmt.Sprintf("Printed: %s", s.clock.Now().Format("2006-01-02 15:04")))
	pdf.Ln(10)

	widths := []float64{50, 18, 32, 32, 32, 32, 28, 40}
	headers := []string{"Bill No", "Seq", "Total", "Advance", "Paid", "Balance", "Status", "Settled On"}

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(224, 224, 224)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, b := range lineage.Bills {
		seq := "-"
		if b.IsSplitBill {
			seq = fmt.Sprintf("%d", b.SplitSequence)
		}
		settledOn := ""
		if b.SettlementDate != nil {
			settledOn = b.SettlementDate.Format("2006-01-02")
		}
		row := []string{
			b.BillNo,
			seq,
			b.TotalAmount.StringFixed(2),
			b.AdvanceAmount.StringFixed(2),
			b.PaidAmount.StringFixed(2),
			b.BalanceAmount.StringFixed(2),
			b.SettlementStatus,
			settledOn,
		}
		for i, value := range row {
			align := "L"
			if i >= 2 && i <= 5 {
				align = "R"
			}
			pdf.CellFormat(widths[i], 7, value, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(widths[0]+widths[1], 8, "Lineage total", "1", 0, "L", false, 0, "")
	pdf.CellFormat(widths[2], 8, lineage.TotalAmount().StringFixed(2), "1", 0, "R", false, 0, "")
	pdf.CellFormat(widths[3]+widths[4], 8, "", "1", 0, "", false, 0, "")
	pdf.CellFormat(widths[5], 8, lineage.BalanceAmount().StringFixed(2), "1", 0, "R", false, 0, "")
	pdf.CellFormat(widths[6]+widths[7], 8, "", "1", 0, "", false, 0, "")
	pdf.Ln(-1)

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("statement_%s.pdf", lineage.RootBillNo)
	return buf.Bytes(), filename, nil
}
