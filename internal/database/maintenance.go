// /internal/database/maintenance.go
package database

import (
	"log"
	"time"

	"github.com/viniciusbarbosa/pedidos-backoffice/internal/model"
	"gorm.io/gorm"
)

// PurgeAbandonedDrafts remove rascunhos sem atualização há mais de maxAge
// que nunca chegaram a ser enviados. Rodado na subida do processo; um
// rascunho abandonado não tem dono para reclamá-lo.
func PurgeAbandonedDrafts(db *gorm.DB, maxAge time.Duration) {
	cutoff := time.Now().Add(-maxAge)

	result := db.Where("updated_at < ? AND status <> ?", cutoff, model.DraftSuccess).
		Delete(&model.Draft{})
	if result.Error != nil {
		log.Printf("AVISO: falha ao limpar rascunhos abandonados: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("Rascunhos abandonados removidos: %d", result.RowsAffected)
	}
}

// RecoverInterruptedSubmissions marca como falho todo rascunho que ficou
// preso em "submitting" por queda do processo no meio de um envio. Sem
// isso o rascunho responderia 409 para sempre e nunca poderia ser
// reenviado pelo atendente.
func RecoverInterruptedSubmissions(db *gorm.DB) {
	result := db.Model(&model.Draft{}).
		Where("status = ?", model.DraftSubmitting).
		Update("status", model.DraftFailed)
	if result.Error != nil {
		log.Printf("AVISO: falha ao recuperar rascunhos interrompidos: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("Rascunhos com envio interrompido recuperados: %d", result.RowsAffected)
	}
}
