package pdf

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// Generator — интерфейс (удобно мокать в тестах)
type Generator interface {
	GenerateSummary(data SummaryData, w io.Writer) error
}

// ReportGenerator — реализация
type ReportGenerator struct {
	FontPath string // путь до TTF; пусто — используем встроенный Helvetica
	fontName string
}

type SummaryData struct {
	TenantName  string
	GeneratedAt time.Time

	LeadsTotal     int
	LeadsNew       int
	LeadsWorking   int
	LeadsQualified int
	LeadsConverted int
	LeadsLast7     int
	LeadsLast30    int

	OppsOpen   int
	OppsWon    int
	OppsLost   int
	OpenAmount float64
	WonAmount  float64
	LostAmount float64
	Currency   string
}

func NewReportGenerator(fontPath string) *ReportGenerator {
	g := &ReportGenerator{FontPath: fontPath, fontName: "Helvetica"}
	if fontPath != "" {
		g.fontName = "DejaVu"
	}
	return g
}

func (g *ReportGenerator) GenerateSummary(data SummaryData, w io.Writer) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("CRM Summary Report", false)
	pdf.SetAuthor("KF12 CRM", false)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)

	if g.FontPath != "" {
		pdf.AddUTF8Font(g.fontName, "", g.FontPath)
		pdf.AddUTF8Font(g.fontName, "B", g.FontPath)
	}
	pdf.AddPage()

	// ===== Заголовок
	pdf.SetFont(g.fontName, "B", 18)
	pdf.CellFormat(0, 10, "CRM SUMMARY REPORT", "", 1, "C", false, 0, "")

	pdf.SetFont(g.fontName, "", 12)
	sub := fmt.Sprintf("%s  —  %s", data.TenantName, data.GeneratedAt.Format("02.01.2006 15:04"))
	pdf.CellFormat(0, 7, sub, "", 1, "C", false, 0, "")
	g.hr(pdf)

	pdf.Ln(3)

	// ===== Лиды
	g.sectionTitle(pdf, "Leads")
	g.kvLine(pdf, "Total", fmt.Sprintf("%d", data.LeadsTotal))
	g.kvLine(pdf, "New", fmt.Sprintf("%d", data.LeadsNew))
	g.kvLine(pdf, "Working", fmt.Sprintf("%d", data.LeadsWorking))
	g.kvLine(pdf, "Qualified", fmt.Sprintf("%d", data.LeadsQualified))
	g.kvLine(pdf, "Converted", fmt.Sprintf("%d", data.LeadsConverted))
	g.kvLine(pdf, "Last 7 days", fmt.Sprintf("%d", data.LeadsLast7))
	g.kvLine(pdf, "Last 30 days", fmt.Sprintf("%d", data.LeadsLast30))
	pdf.Ln(2)
	g.hr(pdf)

	// ===== Сделки
	g.sectionTitle(pdf, "Opportunities")
	cur := data.Currency
	if cur == "" {
		cur = "USD"
	}
	g.kvLine(pdf, "Open", fmt.Sprintf("%d  (%.2f %s)", data.OppsOpen, data.OpenAmount, cur))
	g.kvLine(pdf, "Won", fmt.Sprintf("%d  (%.2f %s)", data.OppsWon, data.WonAmount, cur))
	g.kvLine(pdf, "Lost", fmt.Sprintf("%d  (%.2f %s)", data.OppsLost, data.LostAmount, cur))
	pdf.Ln(2)
	g.hr(pdf)

	// ===== Нумерация страниц
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(g.fontName, "", 10)
		pdf.CellFormat(0, 10,
			fmt.Sprintf("Page %d/{nb}", pdf.PageNo()),
			"", 0, "C", false, 0, "",
		)
	})

	return pdf.Output(w)
}

// ===== helpers =====

func (g *ReportGenerator) sectionTitle(pdf *gofpdf.Fpdf, s string) {
	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 7, s, "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
}

func (g *ReportGenerator) kvLine(pdf *gofpdf.Fpdf, key, val string) {
	pdf.SetFont(g.fontName, "B", 11)
	pdf.CellFormat(45, 6, key+":", "", 0, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, val, "", 1, "L", false, 0, "")
}

func (g *ReportGenerator) hr(pdf *gofpdf.Fpdf) {
	y := pdf.GetY() + 1.5
	pdf.SetLineWidth(0.2)
	pdf.Line(20, y, 190, y)
	pdf.SetY(y + 2)
}
