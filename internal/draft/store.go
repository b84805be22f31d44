package draft

import (
	"errors"

	"github.com/google/uuid"
	"github.com/viniciusbarbosa/pedidos-backoffice/internal/model"
	"gorm.io/gorm"
)

// ErrDraftNotFound indica rascunho inexistente ou já purgado.
var ErrDraftNotFound = errors.New("rascunho não encontrado")

// Store persiste rascunhos no banco local para que um formulário
// interrompido possa ser retomado.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Create abre um rascunho novo já persistido.
func (s *Store) Create(d *model.Draft) error {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	if d.Status == "" {
		d.Status = model.DraftIdle
	}
	for i := range d.Items {
		d.Items[i].DraftID = d.ID
	}
	return s.db.Create(d).Error
}

// Get carrega o rascunho com os itens na ordem posicional.
func (s *Store) Get(id string) (*model.Draft, error) {
	var d model.Draft
	err := s.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position asc")
	}).First(&d, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrDraftNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Save regrava o rascunho por inteiro. Os itens são substituídos em bloco:
// a coleção é posicional e remoções precisam sumir do banco também.
func (s *Store) Save(d *model.Draft) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("draft_id = ?", d.ID).Delete(&model.DraftItem{}).Error; err != nil {
			return err
		}
		for i := range d.Items {
			d.Items[i].ID = 0
			d.Items[i].DraftID = d.ID
			d.Items[i].Position = i
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(d).Error
	})
}

// Delete descarta um rascunho (pedido enviado ou cancelado pelo atendente).
func (s *Store) Delete(id string) error {
	return s.db.Delete(&model.Draft{}, "id = ?", id).Error
}
