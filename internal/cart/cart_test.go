package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elmatadero/carniceria-client/internal/catalog"
	"github.com/elmatadero/carniceria-client/internal/storage"
)

func newTestManager(t *testing.T) (*Manager, storage.Store) {
	t.Helper()
	store, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	return NewManager(store), store
}

func vacio() catalog.Product {
	return catalog.Product{ID: 1, Name: "Vacío", Cut: "Costillar", Price: decimal.RequireFromString("8.500"), Unit: "kg"}
}

func matambre() catalog.Product {
	return catalog.Product{ID: 2, Name: "Matambre", Cut: "Tapa", Price: decimal.RequireFromString("9.200"), Unit: "kg"}
}

func qty(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestAdd_MergesSameProduct(t *testing.T) {
	m, _ := newTestManager(t)

	require.NoError(t, m.Add(vacio(), qty("1.5")))
	require.NoError(t, m.Add(vacio(), qty("2")))

	require.Equal(t, 1, m.Len())
	e, ok := m.Find(1)
	require.True(t, ok)
	assert.True(t, e.Quantity.Equal(qty("3.5")), "got %s", e.Quantity)
}

func TestAdd_RejectsNonPositiveQuantity(t *testing.T) {
	m, _ := newTestManager(t)

	assert.ErrorIs(t, m.Add(vacio(), qty("0")), ErrInvalidQuantity)
	assert.ErrorIs(t, m.Add(vacio(), qty("-1")), ErrInvalidQuantity)
	assert.Equal(t, 0, m.Len())
}

func TestAdd_PreservesInsertionOrder(t *testing.T) {
	m, _ := newTestManager(t)

	require.NoError(t, m.Add(matambre(), qty("1")))
	require.NoError(t, m.Add(vacio(), qty("1")))

	entries := m.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, 2, entries[0].ProductID)
	assert.Equal(t, 1, entries[1].ProductID)
}

func TestSetQuantity_RejectionLeavesStateUnchanged(t *testing.T) {
	m, _ := newTestManager(t)
	require.NoError(t, m.Add(vacio(), qty("3")))

	err := m.SetQuantity(1, qty("-5"))
	require.ErrorIs(t, err, ErrInvalidQuantity)

	e, ok := m.Find(1)
	require.True(t, ok)
	assert.Equal(t, "3.00", e.Quantity.StringFixed(2))
}

func TestSetQuantity_Overwrites(t *testing.T) {
	m, _ := newTestManager(t)
	require.NoError(t, m.Add(vacio(), qty("3")))

	require.NoError(t, m.SetQuantity(1, qty("0.75")))

	e, _ := m.Find(1)
	assert.True(t, e.Quantity.Equal(qty("0.75")))
}

func TestSetQuantity_UnknownProductIsNoop(t *testing.T) {
	m, _ := newTestManager(t)
	require.NoError(t, m.Add(vacio(), qty("1")))

	require.NoError(t, m.SetQuantity(99, qty("5")))
	assert.Equal(t, 1, m.Len())
}

func TestRemove(t *testing.T) {
	m, _ := newTestManager(t)
	require.NoError(t, m.Add(vacio(), qty("1")))
	require.NoError(t, m.Add(matambre(), qty("1")))

	require.NoError(t, m.Remove(1))
	assert.Equal(t, 1, m.Len())
	_, ok := m.Find(1)
	assert.False(t, ok)

	// Removing an absent product is a no-op.
	require.NoError(t, m.Remove(1))
	assert.Equal(t, 1, m.Len())
}

func TestTotal_RecomputedFromEntries(t *testing.T) {
	m, _ := newTestManager(t)
	assert.True(t, m.Total().IsZero())

	require.NoError(t, m.Add(vacio(), qty("2")))     // 17.000
	require.NoError(t, m.Add(matambre(), qty("0.5"))) // 4.600

	assert.Equal(t, "21.600", m.Total().StringFixed(3))

	require.NoError(t, m.SetQuantity(1, qty("1")))
	assert.Equal(t, "13.100", m.Total().StringFixed(3))

	require.NoError(t, m.Clear())
	assert.True(t, m.Total().IsZero())
}

func TestPersistence_RoundTrip(t *testing.T) {
	m, store := newTestManager(t)
	require.NoError(t, m.Add(vacio(), qty("1.25")))

	restored := NewManager(store)
	restored.Restore()

	require.Equal(t, 1, restored.Len())
	e, ok := restored.Find(1)
	require.True(t, ok)
	assert.Equal(t, "Vacío", e.Name)
	assert.True(t, e.Quantity.Equal(qty("1.25")))
	assert.Equal(t, "10.625", restored.Total().StringFixed(3))
}

func TestRestore_CorruptSnapshotLeavesCartEmpty(t *testing.T) {
	store, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set(storage.KeyCart, "not a cart"))

	m := NewManager(store)
	m.Restore()
	assert.Equal(t, 0, m.Len())
}

func TestOnChange_FiresPerMutation(t *testing.T) {
	m, _ := newTestManager(t)
	var fired int
	m.OnChange(func() { fired++ })

	require.NoError(t, m.Add(vacio(), qty("1")))
	require.NoError(t, m.SetQuantity(1, qty("2")))
	require.NoError(t, m.Remove(1))
	require.NoError(t, m.Clear())

	assert.Equal(t, 4, fired)

	// Rejected mutations must not fire the hook.
	_ = m.Add(vacio(), qty("-1"))
	assert.Equal(t, 4, fired)
}
