package api

import (
	"fmt"
	"net/http"
	"time"

	"shareit/internal/models"

	"github.com/xuri/excelize/v2"
)

// exportPageSize bounds a single export; the endpoint accepts from/size for
// anything larger.
const exportPageSize = 1000

// handleExportOwnerBookings streams an xlsx workbook of the owner's bookings.
func (s *HTTPServer) handleExportOwnerBookings(w http.ResponseWriter, r *http.Request) {
	caller, err := callerID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	page, err := s.parsePage(r)
	if err != nil {
		respondError(w, err)
		return
	}
	if r.URL.Query().Get("size") == "" {
		page.Size = exportPageSize
	}

	state := r.URL.Query().Get("state")
	if state == "" {
		state = models.StateAll
	}

	views, err := s.bookings.ListForOwner(r.Context(), caller, state, page)
	if err != nil {
		respondError(w, err)
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheetName = "Bookings"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		respondError(w, fmt.Errorf("error creating sheet: %w", err))
		return
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	headers := []string{"ID", "Item", "Booker", "Start", "End", "Status"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheetName, cell, header)
	}

	for row, v := range views {
		values := []interface{}{
			v.ID,
			v.ItemName,
			v.BookerName,
			v.StartAt.Format(time.RFC3339),
			v.EndAt.Format(time.RFC3339),
			v.Status,
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			_ = f.SetCellValue(sheetName, cell, value)
		}
	}

	_ = f.SetColWidth(sheetName, "B", "C", 25)
	_ = f.SetColWidth(sheetName, "D", "E", 22)

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="bookings.xlsx"`)
	if err := f.Write(w); err != nil {
		s.logger.Error().Err(err).Msg("write xlsx export")
	}
}
