package catalog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodexpress/delivery-api/internal/core/domain"
)

func TestLoad_Embedded(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)

	assert.Len(t, c.Menu(), 7)
	assert.Len(t, c.Restaurants(), 5)

	p, err := c.Product(2)
	require.NoError(t, err)
	assert.Equal(t, "Vegan Pesto Pizza", p.Name)
	assert.InDelta(t, 14.50, p.Price, 1e-9)
}

func TestProduct_NotFound(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)

	_, err = c.Product(999)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("menu:\n  - {id: 9, name: Soup, price: 3}\n"), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []domain.Product{{ID: 9, Name: "Soup", Price: 3}}, c.Menu())
	assert.Empty(t, c.Restaurants())
}

func TestParse_Rejects(t *testing.T) {
	tests := map[string]string{
		"duplicate id":   "menu:\n  - {id: 1, name: A, price: 1}\n  - {id: 1, name: B, price: 2}\n",
		"zero id":        "menu:\n  - {id: 0, name: A, price: 1}\n",
		"negative price": "menu:\n  - {id: 1, name: A, price: -1}\n",
		"nan price":      "menu:\n  - {id: 1, name: A, price: .nan}\n",
		"infinite price": "menu:\n  - {id: 1, name: A, price: .inf}\n",
		"nan rating":     "restaurants:\n  - {id: 1, name: A, rating: .nan}\n",
		"not yaml":       "menu: [",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestMenu_ReturnsCopy(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)

	m := c.Menu()
	m[0].Name = "changed"
	assert.NotEqual(t, "changed", c.Menu()[0].Name)
}

func TestParse_EmptyListsEncodeAsArrays(t *testing.T) {
	c, err := Parse([]byte("menu: []\n"))
	require.NoError(t, err)

	menu, err := json.Marshal(c.Menu())
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(menu))

	restaurants, err := json.Marshal(c.Restaurants())
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(restaurants))
}
