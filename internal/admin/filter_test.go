package admin

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/elmatadero/carniceria-client/internal/api"
)

func sampleOrders() []api.AdminOrder {
	return []api.AdminOrder{
		{ID: 101, Name: "Ana", Surname: "Gómez", Email: "ana@example.com", Status: StatusPending, PaymentMethod: "efectivo"},
		{ID: 102, Name: "Luis", Surname: "Pérez", Email: "luis@example.com", Status: StatusCompleted, PaymentMethod: "tarjeta"},
		{ID: 203, Name: "Carla", Surname: "Anaya", Email: "carla@example.com", Status: StatusPending, PaymentMethod: "transferencia"},
	}
}

func ids(orders []api.AdminOrder) []int {
	out := make([]int, len(orders))
	for i, o := range orders {
		out[i] = o.ID
	}
	return out
}

func TestOrderFilter_Apply(t *testing.T) {
	tests := []struct {
		name   string
		filter OrderFilter
		want   []int
	}{
		{"empty filter keeps all", OrderFilter{}, []int{101, 102, 203}},
		{"by status", OrderFilter{Status: StatusPending}, []int{101, 203}},
		{"by method", OrderFilter{PaymentMethod: "tarjeta"}, []int{102}},
		{"query matches name case-insensitively", OrderFilter{Query: "ana"}, []int{101, 203}},
		{"query matches surname", OrderFilter{Query: "pérez"}, []int{102}},
		{"query matches email", OrderFilter{Query: "carla@"}, []int{203}},
		{"query matches id substring", OrderFilter{Query: "20"}, []int{203}},
		{"criteria combine conjunctively", OrderFilter{Status: StatusPending, Query: "ana"}, []int{101, 203}},
		{"conjunction can be empty", OrderFilter{Status: StatusCompleted, PaymentMethod: "efectivo"}, []int{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.filter.Apply(sampleOrders())
			assert.Equal(t, tc.want, ids(got))
		})
	}
}

func TestParseStatus(t *testing.T) {
	for _, valid := range []string{StatusPending, StatusCompleted, StatusCancelled} {
		got, err := ParseStatus(valid)
		assert.NoError(t, err)
		assert.Equal(t, valid, got)
	}

	_, err := ParseStatus("enviado")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}
