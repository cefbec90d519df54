package messages

import (
	"context"
	"slices"

	"sst_portal_backend/internal/events"
	"sst_portal_backend/platform/apperr"
	"sst_portal_backend/platform/logger"
	"sst_portal_backend/platform/sanitize"

	"github.com/google/uuid"
)

const (
	msgThreadNotFound = "thread not found"
	msgEmptyMessage   = "Digite uma mensagem antes de enviar."
	msgSent           = "Mensagem enviada."
)

func seedThreads() []Thread {
	return []Thread{
		{
			ID:          "sesi",
			Name:        "Equipe SESI Saúde",
			Description: "Orientações sobre PGR e PCMSO",
			Messages: []Message{
				{From: FromSESI, Text: "Bom dia! Já recebemos o contrato assinado. Agora precisamos da Planilha M1.", Time: "09:12"},
				{From: FromClient, Text: "Perfeito, estou organizando com o RH.", Time: "09:30"},
				{From: FromSESI, Text: "Qualquer dúvida posso enviar o modelo preenchido como exemplo.", Time: "09:32"},
			},
		},
		{
			ID:          "suporte",
			Name:        "Suporte Técnico InfoSesi",
			Description: "Dúvidas de acesso ao sistema",
			Messages: []Message{
				{From: FromClient, Text: "Não estou conseguindo acessar o módulo de exames.", Time: "14:05"},
				{From: FromSESI, Text: "Já liberamos o seu perfil. Tente novamente por favor.", Time: "14:10"},
			},
		},
	}
}

// Service is the read-only thread store. Sent messages are announced but
// never appended to a transcript.
type Service struct {
	threads []Thread
	bus     events.Bus
	log     *logger.Logger
}

func NewService(bus events.Bus, log *logger.Logger) *Service {
	return &Service{threads: seedThreads(), bus: bus, log: log}
}

// ListThreads returns every thread in display order.
func (s *Service) ListThreads() []Thread {
	out := make([]Thread, len(s.threads))
	for i, t := range s.threads {
		out[i] = cloneThread(t)
	}
	return out
}

// GetThread returns one thread by ID.
func (s *Service) GetThread(id string) (Thread, error) {
	i := slices.IndexFunc(s.threads, func(t Thread) bool { return t.ID == id })
	if i < 0 {
		return Thread{}, apperr.NotFound(msgThreadNotFound)
	}
	return cloneThread(s.threads[i]), nil
}

// Send accepts a client message for a thread.
func (s *Service) Send(ctx context.Context, accountID uuid.UUID, threadID, text string) (SendResponse, error) {
	if _, err := s.GetThread(threadID); err != nil {
		return SendResponse{}, err
	}
	clean := sanitize.Text(text)
	if clean == "" {
		return SendResponse{}, apperr.Validation(msgEmptyMessage)
	}

	s.log.Info("client message sent", "accountId", accountID, "threadId", threadID)
	s.bus.Publish(ctx, events.MessageSent{
		BaseEvent: events.NewBaseEvent(),
		AccountID: accountID,
		ThreadID:  threadID,
		Text:      clean,
	})
	return SendResponse{ThreadID: threadID, Message: msgSent}, nil
}

func cloneThread(t Thread) Thread {
	t.Messages = slices.Clone(t.Messages)
	return t
}
