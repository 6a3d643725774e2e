package repositories

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGormStore(t *testing.T) {
	db, err := OpenSQLite(":memory:")
	require.NoError(t, err)

	store, err := NewGormStore(db)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	testStoreContract(t, store)
}
