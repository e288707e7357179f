package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/killallgit/book-search/internal/models"
)

func TestInitialize(t *testing.T) {
	tests := []struct {
		name   string
		dbPath string
	}{
		{
			name:   "in-memory database",
			dbPath: MemoryPath,
		},
		{
			name:   "file database in a new directory",
			dbPath: filepath.Join(t.TempDir(), "nested", "history.db"),
		},
		{
			name:   "empty path falls back to memory",
			dbPath: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn, err := Initialize(tt.dbPath, false)
			require.NoError(t, err)
			require.NotNil(t, conn)
			assert.NotNil(t, conn.DB)
			assert.NoError(t, conn.HealthCheck())
			assert.NoError(t, conn.Close())
		})
	}
}

func TestDB_HealthCheck(t *testing.T) {
	tests := []struct {
		name      string
		setupConn func() (*DB, func())
		wantErr   bool
	}{
		{
			name: "healthy connection",
			setupConn: func() (*DB, func()) {
				conn, _ := Initialize(MemoryPath, false)
				return conn, func() {
					if conn != nil {
						conn.Close()
					}
				}
			},
			wantErr: false,
		},
		{
			name: "closed connection",
			setupConn: func() (*DB, func()) {
				conn, _ := Initialize(MemoryPath, false)
				conn.Close()
				return conn, func() {}
			},
			wantErr: true,
		},
		{
			name: "nil connection",
			setupConn: func() (*DB, func()) {
				return nil, func() {}
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn, cleanup := tt.setupConn()
			defer cleanup()

			err := conn.HealthCheck()

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDB_MemoryKeepsSingleConnection(t *testing.T) {
	conn, err := Initialize(MemoryPath, false)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.AutoMigrate(Models()...))

	sqlDB, err := conn.DB.DB()
	require.NoError(t, err)
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)

	// A second statement must see the table created by the first.
	assert.True(t, conn.Migrator().HasTable(&models.SearchRecord{}))
}

func TestOpenAndStatus(t *testing.T) {
	conn, err := Initialize(filepath.Join(t.TempDir(), "history.db"), false)
	require.NoError(t, err)

	before, err := conn.Status()
	require.NoError(t, err)
	require.Len(t, before, 1)
	assert.Equal(t, "search_records", before[0].Table)
	assert.False(t, before[0].Present)
	require.NoError(t, conn.Close())

	path := filepath.Join(t.TempDir(), "migrated.db")
	migrated, err := Open(path, false)
	require.NoError(t, err)
	defer migrated.Close()

	after, err := migrated.Status()
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.True(t, after[0].Present)
}

func TestDB_Transaction(t *testing.T) {
	conn, err := Open(MemoryPath, false)
	require.NoError(t, err)
	defer conn.Close()

	t.Run("successful transaction", func(t *testing.T) {
		err := conn.DB.Transaction(func(tx *gorm.DB) error {
			for i := 1; i <= 3; i++ {
				record := models.SearchRecord{SearchText: "dune", PageSize: 10, Page: i}
				if err := tx.Create(&record).Error; err != nil {
					return err
				}
			}
			return nil
		})
		assert.NoError(t, err)

		var count int64
		conn.DB.Model(&models.SearchRecord{}).Count(&count)
		assert.Equal(t, int64(3), count)
	})

	t.Run("failed transaction rollback", func(t *testing.T) {
		var countBefore int64
		conn.DB.Model(&models.SearchRecord{}).Count(&countBefore)

		err := conn.DB.Transaction(func(tx *gorm.DB) error {
			record := models.SearchRecord{SearchText: "rollback", PageSize: 10, Page: 1}
			if err := tx.Create(&record).Error; err != nil {
				return err
			}
			return gorm.ErrInvalidTransaction
		})
		assert.Error(t, err)

		var countAfter int64
		conn.DB.Model(&models.SearchRecord{}).Count(&countAfter)
		assert.Equal(t, countBefore, countAfter)
	})
}
