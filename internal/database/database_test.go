package database

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"artshop/internal/models"
)

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open("oracle", "whatever")
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestOpenAndMigrate_SQLite(t *testing.T) {
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := Open("sqlite", dsn)
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	for _, model := range []interface{}{
		&models.User{}, &models.Artwork{}, &models.Print{},
		&models.ArtistInfo{}, &models.Order{}, &models.Inquiry{},
	} {
		assert.True(t, db.Migrator().HasTable(model), "%T table", model)
	}

	order := models.Order{OrderRef: "BT-AAAAAA", BuyerName: "A", BuyerEmail: "a@b.co",
		AddressLine1: "1 Road", City: "Leeds", Postcode: "LS1", Country: "UK",
		Section: models.SectionPrints, ItemTitle: "Sea", ItemPrice: "£125",
		ShippingZone: "uk", ShippingCost: "£8", Price: "£133", Status: models.OrderStatusPending}
	require.NoError(t, db.Create(&order).Error)
	assert.NotZero(t, order.ID)

	dup := order
	dup.ID = 0
	assert.ErrorIs(t, db.Create(&dup).Error, gorm.ErrDuplicatedKey)
}
