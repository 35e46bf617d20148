package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/sahzadahmad246/sonipaintingapp-sub002/config"
	"github.com/sahzadahmad246/sonipaintingapp-sub002/models"
)

// ReportHandler exports quotations and invoices as Excel workbooks
type ReportHandler struct {
	db *gorm.DB
}

func NewReportHandler() *ReportHandler {
	return &ReportHandler{db: config.DB}
}

// ExportQuotation exports one quotation as an Excel workbook
func (h *ReportHandler) ExportQuotation(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	number := vars["number"]

	var q models.Quotation
	if err := h.db.First(&q, "number = ?", number).Error; err != nil {
		http.Error(w, "Quotation not found", http.StatusNotFound)
		return
	}

	f := excelize.NewFile()
	sheetName := "Quotation"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		http.Error(w, "Failed to generate Excel file", http.StatusInternalServerError)
		return
	}
	f.SetActiveSheet(index)

	writeDocumentHeader(f, sheetName, "Quotation "+q.Number, q.ClientName, q.ClientAddress, q.ClientPhone, q.Date.Time())

	row := writeLineItems(f, sheetName, 7, q.LineItems)
	row++
	f.SetCellValue(sheetName, cellAt(1, row), "Subtotal")
	f.SetCellValue(sheetName, cellAt(4, row), q.Subtotal)
	row++
	f.SetCellValue(sheetName, cellAt(1, row), "Discount")
	f.SetCellValue(sheetName, cellAt(4, row), q.Discount)
	row++
	f.SetCellValue(sheetName, cellAt(1, row), "Grand Total")
	f.SetCellValue(sheetName, cellAt(4, row), q.GrandTotal)

	if len(q.Terms) > 0 {
		row += 2
		f.SetCellValue(sheetName, cellAt(1, row), "Terms & Conditions")
		for _, term := range q.Terms {
			row++
			f.SetCellValue(sheetName, cellAt(1, row), term)
		}
	}

	f.DeleteSheet("Sheet1")
	sendWorkbook(w, f, fmt.Sprintf("quotation_%s", q.Number))
}

// ExportInvoice exports one invoice as an Excel workbook
func (h *ReportHandler) ExportInvoice(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	number := vars["number"]

	var inv models.Invoice
	if err := h.db.First(&inv, "number = ?", number).Error; err != nil {
		http.Error(w, "Invoice not found", http.StatusNotFound)
		return
	}

	f := excelize.NewFile()
	sheetName := "Invoice"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		http.Error(w, "Failed to generate Excel file", http.StatusInternalServerError)
		return
	}
	f.SetActiveSheet(index)

	writeDocumentHeader(f, sheetName, "Invoice "+inv.Number, inv.ClientName, inv.ClientAddress, inv.ClientPhone, inv.Date.Time())

	row := writeLineItems(f, sheetName, 7, inv.LineItems)
	row++
	f.SetCellValue(sheetName, cellAt(1, row), "Grand Total")
	f.SetCellValue(sheetName, cellAt(4, row), inv.GrandTotal)

	if len(inv.PaymentHistory) > 0 {
		row += 2
		f.SetCellValue(sheetName, cellAt(1, row), "Payments")
		for _, p := range inv.PaymentHistory {
			row++
			f.SetCellValue(sheetName, cellAt(1, row), p.Date.Time().Format("2006-01-02"))
			f.SetCellValue(sheetName, cellAt(2, row), p.Note)
			f.SetCellValue(sheetName, cellAt(4, row), p.Amount)
		}
	}

	row += 2
	f.SetCellValue(sheetName, cellAt(1, row), "Amount Due")
	f.SetCellValue(sheetName, cellAt(4, row), inv.AmountDue)

	f.DeleteSheet("Sheet1")
	sendWorkbook(w, f, fmt.Sprintf("invoice_%s", inv.Number))
}

func writeDocumentHeader(f *excelize.File, sheet, title, clientName, clientAddress, clientPhone string, date time.Time) {
	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
			Size: 16,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "left",
			Vertical:   "center",
		},
	})
	f.SetCellValue(sheet, "A1", title)
	f.SetCellStyle(sheet, "A1", "A1", titleStyle)
	f.SetRowHeight(sheet, 1, 30)

	f.SetCellValue(sheet, "A2", "Client: "+clientName)
	f.SetCellValue(sheet, "A3", "Address: "+clientAddress)
	f.SetCellValue(sheet, "A4", "Phone: "+clientPhone)
	f.SetCellValue(sheet, "A5", "Date: "+date.Format("2006-01-02"))
}

// writeLineItems writes the items table starting at startRow and returns
// the last row written
func writeLineItems(f *excelize.File, sheet string, startRow int, items []models.LineItem) int {
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#4472C4"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})

	headers := []string{"Description", "Area (sqft)", "Rate", "Total"}
	for i, hdr := range headers {
		cell := cellAt(i+1, startRow)
		f.SetCellValue(sheet, cell, hdr)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}
	f.SetColWidth(sheet, "A", "A", 40)
	f.SetColWidth(sheet, "B", "D", 15)

	row := startRow
	for _, item := range items {
		row++
		f.SetCellValue(sheet, cellAt(1, row), item.Description)
		if item.Area != nil {
			f.SetCellValue(sheet, cellAt(2, row), *item.Area)
		}
		f.SetCellValue(sheet, cellAt(3, row), item.Rate)
		if item.Total != nil {
			f.SetCellValue(sheet, cellAt(4, row), *item.Total)
		}
	}
	return row
}

func sendWorkbook(w http.ResponseWriter, f *excelize.File, name string) {
	buffer, err := f.WriteToBuffer()
	if err != nil {
		http.Error(w, "Failed to write Excel file", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("%s_%s.xlsx", name, time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", buffer.Len()))

	w.WriteHeader(http.StatusOK)
	w.Write(buffer.Bytes())
}

func cellAt(col, row int) string {
	cell, _ := excelize.CoordinatesToCellName(col, row)
	return cell
}
