package infra

// pdf.go — PDF ticket generation using go-pdf/fpdf.
// Generates thermal receipt-style tickets with the business header, ticket
// number and timestamp, an item table with frozen names and prices, the bold
// total, the payment breakdown (including the credit surcharge line), and the
// loyalty summary when the shop prints it.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/wontivero/POS-2025-sub000/internal/model"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// GenerateTicketPDF writes the PDF receipt for a completed Venta into
// storagePath (created if needed) and returns the absolute file path.
func GenerateTicketPDF(venta *model.Venta, settings *model.AppSettings, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("ticket_%d.pdf", venta.NumeroTicket)
	filePath := filepath.Join(storagePath, fileName)

	// 74mm × 105mm — close to thermal receipt paper
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 74, Ht: 105},
	})
	pdf.SetMargins(4, 4, 4)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 8

	nombreComercio := settings.NombreComercio
	if nombreComercio == "" {
		nombreComercio = "PuntoPOS"
	}

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW, 7, nombreComercio, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	if settings.DireccionComercio != "" {
		pdf.CellFormat(contentW, 4, settings.DireccionComercio, "", 1, "C", false, 0, "")
	}
	if settings.CUITComercio != "" {
		pdf.CellFormat(contentW, 4, "CUIT "+settings.CUITComercio, "", 1, "C", false, 0, "")
	}
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, "Comprobante de Compra", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	// ── Ticket info ───────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Ticket N° %d", venta.NumeroTicket), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, venta.FechaDisplay, "", 1, "L", false, 0, "")
	if venta.ClienteNombre != nil {
		pdf.CellFormat(contentW, 4, "Cliente: "+*venta.ClienteNombre, "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)

	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	// ── Items ─────────────────────────────────────────────────────────────────
	col1 := contentW * 0.52
	col2 := contentW * 0.16
	col3 := contentW * 0.32

	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(col1, 5, "Producto", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, "Cant", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 5, "Subtotal", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	for _, item := range venta.Items {
		nombre := item.Nombre
		if len(nombre) > 22 {
			nombre = nombre[:21] + "…"
		}
		pdf.CellFormat(col1, 5, nombre, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, fmt.Sprintf("x%d", item.Cantidad), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 5, "$"+item.Subtotal.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	// ── Total ─────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1+col2, 6, "TOTAL:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 6, "$"+venta.Total.StringFixed(2), "", 1, "R", false, 0, "")

	// ── Payment breakdown ─────────────────────────────────────────────────────
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "", 7)
	pagos := []struct {
		label string
		monto decimal.Decimal
	}{
		{"Contado", venta.PagoContado},
		{"Transferencia", venta.PagoTransferencia},
		{"Débito", venta.PagoDebito},
		{"Crédito", venta.PagoCredito},
	}
	for _, p := range pagos {
		if p.monto.IsZero() {
			continue
		}
		pdf.CellFormat(col1+col2, 4, "Pago ("+p.label+"):", "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 4, "$"+p.monto.StringFixed(2), "", 1, "R", false, 0, "")
	}
	if venta.PagoCredito.IsPositive() && !venta.RecargoCreditoPct.IsZero() {
		pdf.CellFormat(contentW, 4,
			fmt.Sprintf("Incluye recargo crédito %s%%", venta.RecargoCreditoPct.StringFixed(0)),
			"", 1, "L", false, 0, "")
	}

	// ── Loyalty ───────────────────────────────────────────────────────────────
	if settings.LoyaltyImprimir && venta.PuntosGanados > 0 {
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "B", 7)
		pdf.CellFormat(contentW, 4, fmt.Sprintf("Puntos ganados: %d", venta.PuntosGanados), "", 1, "L", false, 0, "")
		if venta.PuntosTotalSnapshot != nil {
			pdf.SetFont("Helvetica", "", 7)
			pdf.CellFormat(contentW, 4, fmt.Sprintf("Puntos acumulados: %d", *venta.PuntosTotalSnapshot), "", 1, "L", false, 0, "")
		}
	}

	// ── Footer ────────────────────────────────────────────────────────────────
	pdf.Ln(3)
	pdf.SetFont("Helvetica", "I", 7)
	pdf.CellFormat(contentW, 4, "¡Gracias por su compra!", "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}
