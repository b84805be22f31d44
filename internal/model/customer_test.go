package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetDefaultAddressClearsSiblings(t *testing.T) {
	// A é o padrão atual; marcar B como padrão tem que desmarcar A.
	addresses := []Address{
		{ID: "a", IsDefault: true},
		{ID: "b"},
		{ID: "c"},
	}

	SetDefaultAddress(addresses, 1)

	assert.False(t, addresses[0].IsDefault)
	assert.True(t, addresses[1].IsDefault)
	assert.False(t, addresses[2].IsDefault)

	def, ok := DefaultAddress(addresses)
	assert.True(t, ok)
	assert.Equal(t, "b", def.ID)
}

func TestDefaultAddressEmpty(t *testing.T) {
	_, ok := DefaultAddress([]Address{{ID: "a"}, {ID: "b"}})
	assert.False(t, ok)
}

func TestAddressFullText(t *testing.T) {
	a := Address{
		Street:       "Rua das Flores",
		Number:       "123",
		Neighborhood: "Centro",
		City:         "São Paulo",
		State:        "SP",
		CEP:          "01001-000",
	}
	assert.Equal(t, "Rua das Flores, 123, Centro, São Paulo - SP, 01001-000", a.FullText())

	sem := Address{Street: "Av. Brasil", Number: "9", City: "Campinas", State: "SP"}
	assert.Equal(t, "Av. Brasil, 9, Campinas - SP", sem.FullText())
}
