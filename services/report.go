package services

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// Report exports for the admin back office. Both formats carry the same
// rollups: summary numbers, the 7-day visit series, category
// distribution and the top books.

func WritePDFReport(db *gorm.DB, w io.Writer) error {
	summary := GetAnalyticsSummary(db)
	visits := DailyVisits(db, 7)
	categories := CategoryStats(db)
	topBooks := TopBooks(db, 5)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("E-Library Portal - System Report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, "E-Library Portal - System Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(102, 102, 102)
	pdf.CellFormat(0, 6, "Generated: "+time.Now().Format("2006-01-02 15:04:05"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	section := func(title string) {
		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont("Helvetica", "B", 13)
		pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(51, 51, 51)
	}
	line := func(text string) {
		pdf.CellFormat(0, 6, text, "", 1, "L", false, 0, "")
	}

	section("System Summary")
	line(fmt.Sprintf("Total Registered Users: %d", summary.TotalUsers))
	line(fmt.Sprintf("Total Books in Catalog: %d", summary.TotalBooks))
	line(fmt.Sprintf("Today's Visits: %d", summary.TodayVisits))
	line(fmt.Sprintf("Active Users: %d", summary.ActiveUsers))
	pdf.Ln(3)

	section("Daily Visits (Last 7 Days)")
	for _, p := range visits {
		line(fmt.Sprintf("%s: %d visits", p.Date, p.Visits))
	}
	pdf.Ln(3)

	section("Category Distribution")
	for _, c := range categories {
		line(fmt.Sprintf("%s: %d books", c.Name, c.Count))
	}
	pdf.Ln(3)

	section("Top Books by Reads")
	for i, b := range topBooks {
		line(fmt.Sprintf("%d. %s - %d reads", i+1, b.Title, b.Reads))
	}
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(153, 153, 153)
	pdf.CellFormat(0, 5, "This is an automated report. Generated by E-Library Admin Portal.", "", 1, "C", false, 0, "")

	return pdf.Output(w)
}

func WriteExcelReport(db *gorm.DB, w io.Writer) error {
	summary := GetAnalyticsSummary(db)
	visits := DailyVisits(db, 7)
	categories := CategoryStats(db)
	topBooks := TopBooks(db, 5)

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Report"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	row := 1
	set := func(col string, v interface{}) {
		cell, _ := excelize.JoinCellName(col, row)
		f.SetCellValue(sheet, cell, v)
	}

	set("A", "E-Library Portal - System Report")
	row++
	set("A", "Generated")
	set("B", time.Now().Format("2006-01-02 15:04:05"))
	row += 2

	set("A", "Total Registered Users")
	set("B", summary.TotalUsers)
	row++
	set("A", "Total Books in Catalog")
	set("B", summary.TotalBooks)
	row++
	set("A", "Today's Visits")
	set("B", summary.TodayVisits)
	row++
	set("A", "Active Users")
	set("B", summary.ActiveUsers)
	row += 2

	set("A", "Daily Visits (Last 7 Days)")
	row++
	for _, p := range visits {
		set("A", p.Date)
		set("B", p.Visits)
		row++
	}
	row++

	set("A", "Category Distribution")
	row++
	for _, c := range categories {
		set("A", c.Name)
		set("B", c.Count)
		row++
	}
	row++

	set("A", "Top Books by Reads")
	row++
	for _, b := range topBooks {
		set("A", b.Title)
		set("B", b.Reads)
		row++
	}

	return f.Write(w)
}
