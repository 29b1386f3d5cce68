package migration

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockMigrator — мок для интерфейса Migrator
type MockMigrator struct {
	mock.Mock
}

func (m *MockMigrator) Up() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockMigrator) Close() (error, error) {
	args := m.Called()
	return args.Error(0), args.Error(1)
}

func engineFor(m Migrator) MigrationEngine {
	return func(_ fs.FS, _, _ string) (Migrator, error) {
		return m, nil
	}
}

func TestMigration_Up_Success(t *testing.T) {
	mockM := new(MockMigrator)
	mockM.On("Up").Return(nil)
	mockM.On("Close").Return(nil, nil)

	var gotDir, gotURL string
	engine := func(_ fs.FS, dir, url string) (Migrator, error) {
		gotDir, gotURL = dir, url
		return mockM, nil
	}

	err := NewMigration("sqlite3://data.db", SQLiteDir, engine).Up()

	assert.NoError(t, err)
	assert.Equal(t, SQLiteDir, gotDir)
	assert.Equal(t, "sqlite3://data.db", gotURL)
	mockM.AssertExpectations(t)
}

func TestMigration_Up_NoChange(t *testing.T) {
	mockM := new(MockMigrator)
	// ErrNoChange не должна считаться ошибкой в методе Up()
	mockM.On("Up").Return(migrate.ErrNoChange)
	mockM.On("Close").Return(nil, nil)

	err := NewMigration("", PostgresDir, engineFor(mockM)).Up()

	assert.NoError(t, err)
}

func TestMigration_Up_Failure(t *testing.T) {
	mockM := new(MockMigrator)
	mockM.On("Up").Return(errors.New("dirty database"))
	mockM.On("Close").Return(nil, errors.New("connection reset"))

	err := NewMigration("", PostgresDir, engineFor(mockM)).Up()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "dirty database")
	assert.Contains(t, err.Error(), "connection reset")
}

func TestMigration_Up_CloseErrorOnly(t *testing.T) {
	mockM := new(MockMigrator)
	mockM.On("Up").Return(nil)
	mockM.On("Close").Return(errors.New("source closed"), nil)

	err := NewMigration("", PostgresDir, engineFor(mockM)).Up()

	assert.EqualError(t, err, "source closed")
}

func TestMigration_Up_EngineError(t *testing.T) {
	// Ошибка на этапе создания мигратора (например, неверный драйвер)
	engine := func(_ fs.FS, _, _ string) (Migrator, error) {
		return nil, errors.New("engine crash")
	}

	err := NewMigration("", PostgresDir, engine).Up()

	assert.EqualError(t, err, "engine crash")
}

func TestEmbeddedMigrations(t *testing.T) {
	for _, dir := range []string{PostgresDir, SQLiteDir} {
		entries, err := fs.ReadDir(files, dir)
		require.NoError(t, err)
		assert.Len(t, entries, 4, dir)
	}
}
