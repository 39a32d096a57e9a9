package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisteredMigrations(t *testing.T) {
	ms := Migrations()
	require.NotEmpty(t, ms)

	for i := 1; i < len(ms); i++ {
		assert.Less(t, ms[i-1].Version, ms[i].Version, "migrations must be ordered by version")
	}

	for _, m := range ms {
		assert.NotEmpty(t, m.Name)
		assert.NotEmpty(t, m.UpScript)
		assert.NotEmpty(t, m.DownScript)
	}
}

func TestMigrationByVersion(t *testing.T) {
	m := migrationByVersion(1)
	require.NotNil(t, m)
	assert.Equal(t, "create_board_tables", m.Name)
	assert.Equal(t, "000001_create_board_tables", m.String())

	assert.Nil(t, migrationByVersion(999999))
}
