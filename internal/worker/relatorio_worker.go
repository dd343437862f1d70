package worker

// relatorio_worker.go
// Processes daily-report jobs: renders the day's comanda summary as PDF and
// mails it to the operator.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/deivisontravizan/one-travvizan-sub000/internal/dto"
	"github.com/deivisontravizan/one-travvizan-sub000/internal/infra"

	"github.com/rs/zerolog/log"
)

// RelatorioJobPayload carries the fully computed summary so the worker does
// not have to reach back into the service layer.
type RelatorioJobPayload struct {
	Email  string                   `json:"email"`
	Resumo dto.ResumoDiarioResponse `json:"resumo"`
}

type RelatorioWorker struct {
	mailer      *infra.Mailer
	storagePath string
}

func NewRelatorioWorker(mailer *infra.Mailer, storagePath string) *RelatorioWorker {
	return &RelatorioWorker{mailer: mailer, storagePath: storagePath}
}

func (w *RelatorioWorker) Process(_ context.Context, raw json.RawMessage) error {
	var payload RelatorioJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("relatorio_worker: payload inválido: %w", err)
	}
	if payload.Email == "" {
		log.Warn().Msg("relatorio_worker: email vazio, job ignorado")
		return nil
	}

	pdfPath, err := infra.GerarResumoPDF(&payload.Resumo, w.storagePath)
	if err != nil {
		return fmt.Errorf("relatorio_worker: gerar PDF: %w", err)
	}

	subject := "Resumo do dia " + payload.Resumo.Data
	body := fmt.Sprintf("Resumo da comanda de %s em anexo.", payload.Resumo.Data)
	if err := w.mailer.Send(payload.Email, subject, body, pdfPath); err != nil {
		return fmt.Errorf("relatorio_worker: enviar email: %w", err)
	}

	log.Info().Str("to", payload.Email).Str("data", payload.Resumo.Data).Msg("relatorio_worker: resumo enviado")
	return nil
}
