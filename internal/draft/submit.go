package draft

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/viniciusbarbosa/pedidos-backoffice/internal/apiclient"
	"github.com/viniciusbarbosa/pedidos-backoffice/internal/model"
)

// ErrSubmitInFlight bloqueia envio duplicado do mesmo rascunho enquanto
// uma requisição ainda está no ar.
var ErrSubmitInFlight = errors.New("envio deste pedido já está em andamento")

// Submitter conduz o ciclo de envio de um rascunho:
// idle → validating → submitting → success | failed.
type Submitter struct {
	API    *apiclient.Client
	Drafts *Store

	inflight sync.Map // draftID → struct{}
}

// Submit valida o formulário, monta o formato de transporte e cria (sem
// OrderID) ou atualiza (com OrderID) o pedido na API.
//
// Validação barrada devolve *ValidationError sem chamada de rede. Falha de
// transporte/servidor é registrada e o rascunho volta inteiro para o
// atendente tentar de novo; não há retry automático nem mapeamento de erro
// do servidor para campos — o servidor aplica a requisição atomicamente.
func (s *Submitter) Submit(ctx context.Context, d *model.Draft) (*model.Order, error) {
	if _, busy := s.inflight.LoadOrStore(d.ID, struct{}{}); busy {
		return nil, ErrSubmitInFlight
	}
	defer s.inflight.Delete(d.ID)

	if d.Status == model.DraftSubmitting {
		return nil, ErrSubmitInFlight
	}

	d.Status = model.DraftValidating
	if verr := Validate(d); verr != nil {
		d.Status = model.DraftIdle
		if err := s.Drafts.Save(d); err != nil {
			log.Printf("AVISO: falha ao salvar rascunho %s após validação: %v", d.ID, err)
		}
		return nil, verr
	}

	d.Status = model.DraftSubmitting
	if err := s.Drafts.Save(d); err != nil {
		d.Status = model.DraftIdle
		return nil, err
	}

	order := BuildOrder(d)

	var persisted *model.Order
	var err error
	if d.OrderID != "" {
		persisted, err = s.API.UpdateOrder(ctx, order)
	} else {
		persisted, err = s.API.CreateOrder(ctx, order)
	}
	if err != nil {
		// Sem recuperação parcial: o estado local fica intacto e o
		// atendente permanece no formulário para reenviar.
		log.Printf("Erro ao enviar pedido (rascunho %s): %v", d.ID, err)
		d.Status = model.DraftFailed
		if saveErr := s.Drafts.Save(d); saveErr != nil {
			log.Printf("AVISO: falha ao registrar estado de erro do rascunho %s: %v", d.ID, saveErr)
		}
		return nil, err
	}

	d.Status = model.DraftSuccess
	d.OrderID = persisted.ID
	if saveErr := s.Drafts.Save(d); saveErr != nil {
		log.Printf("AVISO: pedido %s criado mas rascunho %s não foi atualizado: %v", persisted.ID, d.ID, saveErr)
	}
	return persisted, nil
}
