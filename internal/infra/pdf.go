package infra

// pdf.go — printable "ficha de corte" for field technicians: the cut's
// identity header, the wiring details and any supplementary notes, sized for
// a pocket A6 printout.

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/infogpstech/GPSpedia2.0/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerateFichaPDF writes the cut sheet under storagePath (created if needed)
// and returns the absolute path of the generated file.
func GenerateFichaPDF(corte *model.Corte, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0o755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("ficha_%d.pdf", corte.ID)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A6", "")
	pdf.SetMargins(8, 8, 8)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 16

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW, 7, "GPSpedia", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, "Ficha de corte", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	// ── Vehicle identity ─────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW, 6, fmt.Sprintf("%s %s", corte.Marca, corte.Modelo), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	anos := fmt.Sprintf("%d", corte.AnoDesde)
	if corte.AnoHasta != nil {
		anos = fmt.Sprintf("%d-%d", corte.AnoDesde, *corte.AnoHasta)
	}
	pdf.CellFormat(contentW, 4, fmt.Sprintf("Años: %s   Encendido: %s", anos, corte.TipoEncendido), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	// ── Cut details ──────────────────────────────────────────────────────────
	row := func(label, value string) {
		if value == "" {
			return
		}
		pdf.SetFont("Helvetica", "B", 8)
		pdf.CellFormat(26, 5, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 8)
		pdf.MultiCell(contentW-26, 5, value, "", "L", false)
	}
	row("Tipo de corte", corte.TipoCorte)
	row("Relay", corte.ConfiguracionRelay)
	row("Ubicación", corte.Ubicacion)
	row("Color de cable", corte.ColorCable)

	if len(corte.NotasAdicionales) > 0 {
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "B", 8)
		pdf.CellFormat(contentW, 5, "Notas", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 8)
		pdf.MultiCell(contentW, 4, strings.Join(corte.NotasAdicionales, "\n"), "", "L", false)
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write %s: %w", filePath, err)
	}
	return filePath, nil
}
