package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixtureRow struct {
	ID   int64 `gorm:"primaryKey"`
	Name string
}

// Connect with a non-postgres DSN must yield a usable handle; the
// sqlite path is what every local run and test setup goes through.
func TestConnectSQLite(t *testing.T) {
	db, err := Connect("file:database_connect_test?mode=memory&cache=shared")
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&fixtureRow{}))
	require.NoError(t, db.Create(&fixtureRow{ID: 1, Name: "first"}).Error)

	var got fixtureRow
	require.NoError(t, db.First(&got, 1).Error)
	assert.Equal(t, "first", got.Name)

	require.NoError(t, db.Create(&fixtureRow{ID: 7}).Error)
	assert.Error(t, db.Create(&fixtureRow{ID: 7}).Error)
}
