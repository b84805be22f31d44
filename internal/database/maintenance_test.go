package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/viniciusbarbosa/pedidos-backoffice/internal/model"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Draft{}, &model.DraftItem{}))
	return db
}

func draftStatus(t *testing.T, db *gorm.DB, id string) (model.DraftStatus, bool) {
	t.Helper()
	var d model.Draft
	err := db.First(&d, "id = ?", id).Error
	if err == gorm.ErrRecordNotFound {
		return "", false
	}
	require.NoError(t, err)
	return d.Status, true
}

func TestPurgeAbandonedDrafts(t *testing.T) {
	db := testDB(t)
	old := time.Now().Add(-30 * 24 * time.Hour)

	require.NoError(t, db.Create(&model.Draft{ID: "velho", Status: model.DraftIdle}).Error)
	require.NoError(t, db.Create(&model.Draft{ID: "enviado", Status: model.DraftSuccess}).Error)
	require.NoError(t, db.Create(&model.Draft{ID: "recente", Status: model.DraftIdle}).Error)
	// UpdateColumn não carimba updated_at de novo, então dá para envelhecer.
	require.NoError(t, db.Model(&model.Draft{}).Where("id IN ?", []string{"velho", "enviado"}).
		UpdateColumn("updated_at", old).Error)

	PurgeAbandonedDrafts(db, 7*24*time.Hour)

	_, exists := draftStatus(t, db, "velho")
	assert.False(t, exists, "rascunho abandonado deveria ter sido removido")
	_, exists = draftStatus(t, db, "enviado")
	assert.True(t, exists, "rascunho enviado não entra na limpeza")
	_, exists = draftStatus(t, db, "recente")
	assert.True(t, exists, "rascunho recente não entra na limpeza")
}

func TestRecoverInterruptedSubmissions(t *testing.T) {
	db := testDB(t)

	// Queda do processo no meio do envio deixa o rascunho preso em
	// "submitting"; sem a recuperação ele responderia 409 para sempre.
	require.NoError(t, db.Create(&model.Draft{ID: "preso", Status: model.DraftSubmitting}).Error)
	require.NoError(t, db.Create(&model.Draft{ID: "parado", Status: model.DraftIdle}).Error)

	RecoverInterruptedSubmissions(db)

	status, _ := draftStatus(t, db, "preso")
	assert.Equal(t, model.DraftFailed, status)
	status, _ = draftStatus(t, db, "parado")
	assert.Equal(t, model.DraftIdle, status)
}
