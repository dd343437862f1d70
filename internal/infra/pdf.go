package infra

// pdf.go — daily summary PDF using go-pdf/fpdf.
// Renders an A4 report with:
//   - Studio header and report date
//   - One table row per comanda (status, gross, received, pending)
//   - Totals block
//   - Net receipts per payment method

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/deivisontravizan/one-travvizan-sub000/internal/dto"

	"github.com/go-pdf/fpdf"
)

// GerarResumoPDF renders the daily summary report.
// storagePath is the directory where the PDF is written (created if needed).
// Returns the absolute path to the generated file.
func GerarResumoPDF(resumo *dto.ResumoDiarioResponse, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("resumo_%s.pdf", resumo.Data)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, "Travvizan Studio", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, "Resumo diário da comanda", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW, 6, resumo.Data, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// ── Comandas table ───────────────────────────────────────────────────────
	col1 := contentW * 0.28 // comanda id (short)
	col2 := contentW * 0.15 // status
	col3 := contentW * 0.19 // gross
	col4 := contentW * 0.19 // received
	col5 := contentW * 0.19 // pending

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1, 6, "Comanda", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 6, "Status", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 6, "Bruto", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 6, "Recebido", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col5, 6, "Pendente", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, comanda := range resumo.Comandas {
		id := comanda.ID
		if len(id) > 8 {
			id = id[:8]
		}
		pdf.CellFormat(col1, 5, id, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, comanda.Status, "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 5, "R$ "+comanda.Totais.ServicosBrutos.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(col4, 5, "R$ "+comanda.Totais.LiquidoRecebido.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(col5, 5, "R$ "+comanda.Totais.SaldoPendente.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(3)
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(3)

	// ── Totals ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(col1+col2, 6, "Serviços brutos:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 6, "R$ "+resumo.Totais.ServicosBrutos.StringFixed(2), "", 1, "R", false, 0, "")
	pdf.CellFormat(col1+col2, 6, "Saldo pendente:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 6, "R$ "+resumo.Totais.SaldoPendente.StringFixed(2), "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(col1+col2, 7, "Líquido recebido:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 7, "R$ "+resumo.Totais.LiquidoRecebido.StringFixed(2), "", 1, "R", false, 0, "")

	// ── Per-method breakdown ─────────────────────────────────────────────────
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW, 6, "Recebimentos por método", "B", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	metodos := []struct {
		label string
		valor string
	}{
		{"Dinheiro", resumo.PorMetodo.Dinheiro.StringFixed(2)},
		{"Pix", resumo.PorMetodo.Pix.StringFixed(2)},
		{"Crédito", resumo.PorMetodo.Credito.StringFixed(2)},
		{"Débito", resumo.PorMetodo.Debito.StringFixed(2)},
	}
	for _, m := range metodos {
		pdf.CellFormat(col1, 5, m.label, "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 5, "R$ "+m.valor, "", 1, "R", false, 0, "")
	}
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1, 6, "Total", "T", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 6, "R$ "+resumo.PorMetodo.Total.StringFixed(2), "T", 1, "R", false, 0, "")

	// ── Footer ───────────────────────────────────────────────────────────────
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(contentW, 5, "Gerado em "+time.Now().Format("02/01/2006 15:04"), "", 1, "R", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}
