package worker

// ticket_worker.go
// Processes jobs from QueueTickets: renders the PDF receipt for a finished
// venta and, when the sale has a customer email, mails it as an attachment.
// PDF generation and delivery are best-effort; a failed job never touches the
// committed sale.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/wontivero/POS-2025-sub000/internal/infra"
	"github.com/wontivero/POS-2025-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// TicketJobPayload is the job envelope sent to QueueTickets.
type TicketJobPayload struct {
	VentaID      string `json:"venta_id"`
	ClienteEmail string `json:"cliente_email,omitempty"`
}

type TicketWorker struct {
	ventas      repository.VentaRepository
	settings    repository.SettingsRepository
	mailer      *infra.Mailer
	storagePath string
}

func NewTicketWorker(ventas repository.VentaRepository, settings repository.SettingsRepository, mailer *infra.Mailer, storagePath string) *TicketWorker {
	return &TicketWorker{ventas: ventas, settings: settings, mailer: mailer, storagePath: storagePath}
}

// Process renders the ticket PDF and optionally emails it.
func (w *TicketWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload TicketJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("ticket_worker: invalid payload")
		return nil // malformed payloads are not retryable
	}

	ventaID, err := uuid.Parse(payload.VentaID)
	if err != nil {
		log.Error().Str("venta_id", payload.VentaID).Msg("ticket_worker: invalid venta_id")
		return nil
	}

	venta, err := w.ventas.FindByID(ctx, ventaID)
	if err != nil {
		return fmt.Errorf("ticket_worker: load venta %s: %w", payload.VentaID, err)
	}

	settings, err := w.settings.Get(ctx)
	if err != nil {
		return fmt.Errorf("ticket_worker: load settings: %w", err)
	}

	pdfPath, err := infra.GenerateTicketPDF(venta, settings, w.storagePath)
	if err != nil {
		return fmt.Errorf("ticket_worker: generate pdf: %w", err)
	}
	log.Info().Int("numero_ticket", venta.NumeroTicket).Str("path", pdfPath).Msg("ticket_worker: pdf generated")

	if payload.ClienteEmail == "" {
		return nil
	}

	subject := fmt.Sprintf("Tu comprobante — Ticket N° %d", venta.NumeroTicket)
	body := fmt.Sprintf("Gracias por tu compra. Adjuntamos el comprobante del ticket N° %d.", venta.NumeroTicket)
	if err := w.mailer.SendTicket(payload.ClienteEmail, subject, body, pdfPath); err != nil {
		return fmt.Errorf("ticket_worker: send email: %w", err)
	}
	log.Info().Str("to", payload.ClienteEmail).Msg("ticket_worker: ticket emailed")
	return nil
}
