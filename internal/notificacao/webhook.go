package notificacao

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"os"
)

// Notificador dispara avisos para o serviço externo de notificação.
// O engine de checklist só conhece esta interface.
type Notificador interface {
	RevisaoRejeitada(vendaID, itemID uint, observacao string)
}

// Webhook envia os avisos via POST para a URL configurada em
// NOTIFICACAO_WEBHOOK_URL. Fire-and-forget: falha só gera log.
type Webhook struct {
	URL string
}

func NewWebhook() *Webhook {
	return &Webhook{URL: os.Getenv("NOTIFICACAO_WEBHOOK_URL")}
}

func (n *Webhook) RevisaoRejeitada(vendaID, itemID uint, observacao string) {
	if n.URL == "" {
		return
	}
	payload := map[string]interface{}{
		"mensagem":   "Documento rejeitado na revisão do checklist",
		"vendaId":    vendaID,
		"itemId":     itemID,
		"observacao": observacao,
	}
	body, _ := json.Marshal(payload)

	resp, err := http.Post(n.URL, "application/json", bytes.NewBuffer(body))
	if err != nil {
		log.Printf("Erro ao enviar webhook: %v", err)
		return
	}
	defer resp.Body.Close()
}
