package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/FACorreiaa/roadtrip-genie/internal/types"
)

const (
	pageMargin   = 20.0
	lineHeight   = 6.0
	bodyFontSize = 11.0
	fontFamily   = "Helvetica"
)

type color struct{ r, g, b int }

var (
	bodyColor   = color{0x33, 0x33, 0x33}
	headerFill  = color{0x3a, 0x70, 0x45}
	borderColor = color{0xdd, 0xdd, 0xdd}
)

type headingStyle struct {
	size  float64
	color color
}

var headingStyles = map[int]headingStyle{
	1: {24, color{0x2c, 0x55, 0x30}},
	2: {18, color{0x3a, 0x70, 0x45}},
	3: {14, color{0x4a, 0x8a, 0x55}},
}

// RenderPDF lays out an itinerary as an A4 roadbook.
func RenderPDF(doc *types.ItineraryResponse) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.SetTitle("AI Roadtrip Genie - Itinerary", true)
	pdf.SetCreator("AI Roadtrip Genie", true)
	pdf.AddPage()

	w := &pdfWriter{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}

	w.heading(1, "AI Roadtrip Genie")
	if doc.TripSummary != "" {
		w.heading(2, "Your Premium Roadtrip Itinerary")
		w.paragraph(doc.TripSummary)
	}
	if doc.SeasonInfo != "" {
		w.heading(3, "Season")
		w.paragraph(doc.SeasonInfo)
	}
	if doc.ItineraryMarkdown != "" {
		w.markdown([]byte(doc.ItineraryMarkdown))
	}
	if doc.Budget != (types.BudgetBreakdown{}) {
		w.budgetTable(doc.Budget)
	}
	w.bulletSection("Risk Warnings", doc.RiskWarnings)
	w.bulletSection("Packing List", doc.PackingList)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

type pdfWriter struct {
	pdf    *fpdf.Fpdf
	tr     func(string) string
	bold   int
	italic int
}

func (w *pdfWriter) bodyFont() {
	style := ""
	if w.bold > 0 {
		style += "B"
	}
	if w.italic > 0 {
		style += "I"
	}
	w.pdf.SetFont(fontFamily, style, bodyFontSize)
	w.pdf.SetTextColor(bodyColor.r, bodyColor.g, bodyColor.b)
}

func (w *pdfWriter) heading(level int, title string) {
	style, ok := headingStyles[level]
	if !ok {
		style = headingStyles[3]
	}
	w.pdf.Ln(lineHeight / 2)
	w.pdf.SetFont(fontFamily, "B", style.size)
	w.pdf.SetTextColor(style.color.r, style.color.g, style.color.b)
	w.pdf.MultiCell(0, style.size*0.5, w.tr(title), "", "L", false)
	w.pdf.Ln(lineHeight / 2)
}

func (w *pdfWriter) paragraph(s string) {
	w.bodyFont()
	w.pdf.MultiCell(0, lineHeight, w.tr(s), "", "L", false)
	w.pdf.Ln(lineHeight / 2)
}

func (w *pdfWriter) write(s string) {
	w.bodyFont()
	w.pdf.Write(lineHeight, w.tr(s))
}

// markdown walks the goldmark AST and maps block and emphasis nodes onto
// fpdf calls. Anything richer than headings, paragraphs, lists and emphasis
// is flattened to plain text.
func (w *pdfWriter) markdown(src []byte) {
	root := goldmark.DefaultParser().Parse(text.NewReader(src))

	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		switch node := n.(type) {
		case *ast.Heading:
			if entering {
				w.heading(node.Level, plainText(node, src))
			}
			return ast.WalkSkipChildren, nil
		case *ast.Paragraph, *ast.TextBlock:
			if !entering {
				w.pdf.Ln(lineHeight)
				if n.Kind() == ast.KindParagraph {
					w.pdf.Ln(lineHeight / 2)
				}
			}
		case *ast.ListItem:
			if entering {
				w.write("- ")
			}
		case *ast.Emphasis:
			delta := 1
			if !entering {
				delta = -1
			}
			if node.Level >= 2 {
				w.bold += delta
			} else {
				w.italic += delta
			}
		case *ast.Text:
			if entering {
				w.write(string(node.Segment.Value(src)))
				if node.SoftLineBreak() || node.HardLineBreak() {
					w.pdf.Ln(lineHeight)
				}
			}
		case *ast.String:
			if entering {
				w.write(string(node.Value))
			}
		case *ast.ThematicBreak:
			if entering {
				y := w.pdf.GetY()
				pageW, _ := w.pdf.GetPageSize()
				w.pdf.SetDrawColor(borderColor.r, borderColor.g, borderColor.b)
				w.pdf.Line(pageMargin, y, pageW-pageMargin, y)
				w.pdf.Ln(lineHeight)
			}
		}
		return ast.WalkContinue, nil
	})
}

func plainText(n ast.Node, src []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(src))
		case *ast.String:
			b.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}

func (w *pdfWriter) budgetTable(budget types.BudgetBreakdown) {
	w.heading(2, "Budget")

	const labelWidth, amountWidth = 110.0, 60.0
	w.pdf.SetDrawColor(borderColor.r, borderColor.g, borderColor.b)
	w.pdf.SetFillColor(headerFill.r, headerFill.g, headerFill.b)
	w.pdf.SetTextColor(255, 255, 255)
	w.pdf.SetFont(fontFamily, "B", bodyFontSize)
	w.pdf.CellFormat(labelWidth, lineHeight+2, "Item", "1", 0, "L", true, 0, "")
	w.pdf.CellFormat(amountWidth, lineHeight+2, "Amount (USD)", "1", 1, "L", true, 0, "")

	rows := []struct {
		label  string
		amount float64
		strong bool
	}{
		{"Fuel", budget.FuelCost, false},
		{"Tolls", budget.TollFees, false},
		{"Accommodation", budget.Accommodation, false},
		{"Meals", budget.Meals, false},
		{"Activities", budget.Activities, false},
		{"Subtotal", budget.Subtotal, true},
		{"Buffer fund (10%)", budget.BufferFund, false},
		{"Total", budget.Total, true},
	}
	w.pdf.SetTextColor(bodyColor.r, bodyColor.g, bodyColor.b)
	for _, row := range rows {
		style := ""
		if row.strong {
			style = "B"
		}
		w.pdf.SetFont(fontFamily, style, bodyFontSize)
		w.pdf.CellFormat(labelWidth, lineHeight+2, w.tr(row.label), "1", 0, "L", false, 0, "")
		w.pdf.CellFormat(amountWidth, lineHeight+2, fmt.Sprintf("$%.2f", row.amount), "1", 1, "L", false, 0, "")
	}
	if budget.NumberOfPersons > 0 {
		w.pdf.Ln(lineHeight / 2)
		w.paragraph(fmt.Sprintf("Estimated for %d travelers.", budget.NumberOfPersons))
	}
	w.pdf.Ln(lineHeight / 2)
}

func (w *pdfWriter) bulletSection(title string, items []string) {
	if len(items) == 0 {
		return
	}
	w.heading(2, title)
	w.bodyFont()
	for _, item := range items {
		w.pdf.MultiCell(0, lineHeight, w.tr("- "+item), "", "L", false)
	}
	w.pdf.Ln(lineHeight / 2)
}
