// Package view guarda estado de apresentação compartilhado entre as telas.
package view

import "sync"

// TitleStore é o título do cabeçalho da página, com contrato de último
// gravador vence. É injetado nos handlers e aceita assinantes opcionais
// para quem precisa reagir a trocas de tela.
type TitleStore struct {
	mu    sync.RWMutex
	title string
	subs  []chan string
}

func NewTitleStore(initial string) *TitleStore {
	return &TitleStore{title: initial}
}

// Set grava o título e notifica os assinantes sem bloquear neles.
func (t *TitleStore) Set(title string) {
	t.mu.Lock()
	t.title = title
	subs := make([]chan string, len(t.subs))
	copy(subs, t.subs)
	t.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- title:
		default:
			// Buffer cheio: descarta a atualização não consumida para
			// entregar a mais recente, sem bloquear em assinante lento.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- title:
			default:
			}
		}
	}
}

// Get devolve o título corrente.
func (t *TitleStore) Get() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.title
}

// Subscribe registra um canal que recebe cada novo título. O canal tem
// buffer de 1; atualização não consumida é substituída pela mais recente
// na próxima entrega possível.
func (t *TitleStore) Subscribe() <-chan string {
	ch := make(chan string, 1)
	t.mu.Lock()
	t.subs = append(t.subs, ch)
	t.mu.Unlock()
	return ch
}
