package cart_test

import (
	"encoding/json"
	"testing"

	"github.com/emberwake/merch-cart/internal/cart"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(productID, variantID, price string, quantity int) cart.LineItem {
	return cart.LineItem{
		ProductID: productID,
		VariantID: variantID,
		Title:     productID,
		UnitPrice: decimal.RequireFromString(price),
		Quantity:  quantity,
	}
}

func TestCartTotal(t *testing.T) {
	tests := []struct {
		name  string
		lines []cart.LineItem
		want  string
		count int
	}{
		{name: "Empty", lines: nil, want: "0", count: 0},
		{
			name:  "Shirt And Hoodie",
			lines: []cart.LineItem{line("demo-1", "v1-m", "25.00", 2), line("demo-2", "v2-l", "45.00", 1)},
			want:  "95.00",
			count: 3,
		},
		{
			name:  "Rounds Half Up",
			lines: []cart.LineItem{line("p", "v", "0.125", 1)},
			want:  "0.13",
			count: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := cart.FromLines(tt.lines)

			assert.True(t, decimal.RequireFromString(tt.want).Equal(c.Total()), "got %s", c.Total())
			assert.Equal(t, tt.count, c.ItemCount())
		})
	}
}

func TestFromLines(t *testing.T) {
	c := cart.FromLines([]cart.LineItem{
		line("a", "1", "10", 1),
		line("", "1", "10", 1),
		line("b", "2", "10", 0),
		line("a", "1", "10", 2),
		line("c", "3", "5", 1),
	})

	lines := c.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, cart.LineKey{ProductID: "a", VariantID: "1"}, lines[0].Key())
	assert.Equal(t, 3, lines[0].Quantity)
	assert.Equal(t, "c", lines[1].ProductID)
}

func TestCartJSON(t *testing.T) {
	t.Run("Round Trip Keeps Order", func(t *testing.T) {
		// Arrange
		original := cart.FromLines([]cart.LineItem{
			line("demo-2", "v2-l", "45", 1),
			line("demo-1", "v1-m", "25", 2),
		})

		// Act
		data, err := json.Marshal(original)
		require.NoError(t, err)

		var decoded cart.Cart
		err = json.Unmarshal(data, &decoded)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, original.Lines(), decoded.Lines())
	})

	t.Run("Empty Cart Is An Array", func(t *testing.T) {
		data, err := json.Marshal(cart.New())

		require.NoError(t, err)
		assert.JSONEq(t, `[]`, string(data))
	})

	t.Run("Malformed", func(t *testing.T) {
		var c cart.Cart

		assert.Error(t, json.Unmarshal([]byte(`{"lines":`), &c))
	})
}

func TestCartCopies(t *testing.T) {
	c := cart.FromLines([]cart.LineItem{line("a", "1", "10", 1)})

	lines := c.Lines()
	lines[0].Quantity = 9
	clone := c.Clone()

	got, ok := c.Line(cart.LineKey{ProductID: "a", VariantID: "1"})
	require.True(t, ok)
	assert.Equal(t, 1, got.Quantity)
	assert.Equal(t, c.Lines(), clone.Lines())
}
