package catalog

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catmerge/internal/tabular"
)

func productTable(rows ...tabular.Row) *tabular.Table {
	t := tabular.New(RequiredColumns...)
	for _, r := range rows {
		t.Append(r)
	}
	return t
}

func TestResolveJoinKey(t *testing.T) {
	key, found := ResolveJoinKey([]string{"order_id", "product_sku", "sku_code"})
	assert.True(t, found)
	assert.Equal(t, "product_sku", key)

	key, found = ResolveJoinKey([]string{"order_id", "SKU_Code", "other"})
	assert.True(t, found)
	assert.Equal(t, "SKU_Code", key)

	key, found = ResolveJoinKey([]string{"order_id", "qty"})
	assert.False(t, found)
	assert.Equal(t, "product_sku", key)
}

func TestJoinPreservesLeftCardinality(t *testing.T) {
	external := tabular.New("product_sku", "qty")
	external.Append(tabular.Row{"product_sku": "1", "qty": "2"})
	external.Append(tabular.Row{"product_sku": "2", "qty": "1"})
	external.Append(tabular.Row{"product_sku": "3", "qty": "5"})

	products := productTable(
		tabular.Row{"sku": "1", "name": "Widget", "brand": "Acme", "category": "a"},
		tabular.Row{"sku": "2", "name": "Gadget", "brand": "Zenith", "category": "b"},
	)

	joined, stats := Join(zerolog.Nop(), external, products)
	require.Len(t, joined.Rows, 3)
	assert.Equal(t, 2, stats.MatchedRows)
	assert.Equal(t, 1, stats.UnmatchedRows)

	unmatched := joined.Rows[2]
	assert.Equal(t, "3", unmatched["product_sku"])
	assert.Equal(t, "", unmatched["name"])
	assert.Equal(t, "", unmatched["brand"])
	assert.Equal(t, "", unmatched["category"])
	assert.Equal(t, "", unmatched["sku"])
}

func TestJoinFallbackKeyColumn(t *testing.T) {
	external := tabular.New("sku_code")
	external.Append(tabular.Row{"sku_code": "9"})

	products := productTable(tabular.Row{"sku": "9", "name": "Bolt", "brand": "", "category": "hw"})

	joined, stats := Join(zerolog.Nop(), external, products)
	require.Len(t, joined.Rows, 1)
	assert.Equal(t, "sku_code", stats.Key)
	assert.True(t, stats.KeyFound)
	assert.Equal(t, "Bolt", joined.Rows[0]["name"])
}

func TestJoinNumericKeysCompareAsText(t *testing.T) {
	dir := t.TempDir()
	path := writeCatalog(t, dir, "hw.json", `[{"id":100,"name":"Nut","brand":"Acme"}]`)
	products, _ := Merge(zerolog.Nop(), []string{path})

	external := tabular.New("product_sku")
	external.Append(tabular.Row{"product_sku": "100"})

	joined, stats := Join(zerolog.Nop(), external, products)
	require.Len(t, joined.Rows, 1)
	assert.Equal(t, 1, stats.MatchedRows)
	assert.Equal(t, "Nut", joined.Rows[0]["name"])
}

func TestJoinWithoutKeyColumnMatchesNothing(t *testing.T) {
	external := tabular.New("order_id")
	external.Append(tabular.Row{"order_id": "a"})
	external.Append(tabular.Row{"order_id": "b"})

	// An empty product sku must not match rows through the absent key.
	products := productTable(tabular.Row{"sku": "", "name": "Ghost", "brand": "", "category": "x"})

	joined, stats := Join(zerolog.Nop(), external, products)
	require.Len(t, joined.Rows, 2)
	assert.False(t, stats.KeyFound)
	assert.Equal(t, 0, stats.MatchedRows)
	assert.Equal(t, "", joined.Rows[0]["name"])
}

func TestJoinDuplicateSKUMultipliesRows(t *testing.T) {
	external := tabular.New("product_sku")
	external.Append(tabular.Row{"product_sku": "1"})

	products := productTable(
		tabular.Row{"sku": "1", "name": "A", "brand": "", "category": "x"},
		tabular.Row{"sku": "1", "name": "B", "brand": "", "category": "y"},
	)

	joined, _ := Join(zerolog.Nop(), external, products)
	require.Len(t, joined.Rows, 2)
}

func TestJoinPrefixesCollidingColumns(t *testing.T) {
	external := tabular.New("sku", "qty")
	external.Append(tabular.Row{"sku": "1", "qty": "3"})

	products := productTable(tabular.Row{"sku": "1", "name": "A", "brand": "", "category": "x"})

	joined, _ := Join(zerolog.Nop(), external, products)
	assert.Equal(t, []string{"sku", "qty", "catalog_sku", "name", "brand", "category"}, joined.Columns)
	require.Len(t, joined.Rows, 1)
	assert.Equal(t, "1", joined.Rows[0]["sku"])
	assert.Equal(t, "1", joined.Rows[0]["catalog_sku"])
}
