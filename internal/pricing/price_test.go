package pricing

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsFree(t *testing.T) {
	cases := map[string]bool{
		"Free":         true,
		"FREE":         true,
		" free ":       true,
		"Free Access":  true,
		"totally FrEe": true,
		"0":            true,
		" 0 ":          true,
		"10":           false,
		"0.0":          false,
		"0.00":         false,
		"$0":           false,
		"":             false,
		"   ":          false,
	}

	for raw, want := range cases {
		assert.Equal(t, want, IsFree(raw), "IsFree(%q)", raw)
	}
}

func TestParse(t *testing.T) {
	p := Parse("Free")
	assert.Equal(t, Free, p.Kind)
	assert.True(t, p.IsFree())

	p = Parse("")
	assert.Equal(t, Unpriced, p.Kind)
	assert.False(t, p.IsFree())

	p = Parse("499")
	assert.Equal(t, Paid, p.Kind)
	assert.True(t, p.HasAmount)
	assert.Equal(t, int64(49900), p.Amount)
	assert.Equal(t, DefaultCurrency, p.Currency)

	p = Parse("$12.5")
	assert.Equal(t, int64(1250), p.Amount)
	assert.Equal(t, "USD", p.Currency)

	p = Parse("₹1,299")
	assert.Equal(t, int64(129900), p.Amount)
	assert.Equal(t, "INR", p.Currency)

	p = Parse("20 eur")
	assert.Equal(t, int64(2000), p.Amount)
	assert.Equal(t, "EUR", p.Currency)

	p = Parse("0.00")
	assert.Equal(t, Paid, p.Kind)
	assert.Equal(t, int64(0), p.Amount)

	p = Parse("ask us")
	assert.Equal(t, Paid, p.Kind)
	assert.False(t, p.HasAmount)

	p = Parse("100000000000000000")
	assert.Equal(t, Paid, p.Kind)
	assert.False(t, p.HasAmount)
	assert.Zero(t, p.Amount)

	p = Parse("92233720368547757")
	assert.True(t, p.HasAmount)
	assert.Equal(t, int64(9223372036854775700), p.Amount)
}

func TestPriceJSON(t *testing.T) {
	var course struct {
		Price Price `json:"price"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"price":"Free"}`), &course))
	assert.True(t, course.Price.IsFree())

	require.NoError(t, json.Unmarshal([]byte(`{"price":0}`), &course))
	assert.False(t, course.Price.IsFree())
	assert.Equal(t, Unpriced, course.Price.Kind)

	require.NoError(t, json.Unmarshal([]byte(`{"price":0.0}`), &course))
	assert.False(t, course.Price.IsFree())
	assert.Equal(t, Unpriced, course.Price.Kind)

	require.NoError(t, json.Unmarshal([]byte(`{"price":"0"}`), &course))
	assert.True(t, course.Price.IsFree())

	require.NoError(t, json.Unmarshal([]byte(`{"price":25}`), &course))
	assert.Equal(t, Paid, course.Price.Kind)
	assert.Equal(t, int64(2500), course.Price.Amount)

	require.NoError(t, json.Unmarshal([]byte(`{"price":null}`), &course))
	assert.Equal(t, Unpriced, course.Price.Kind)

	course.Price = Parse("$10")
	out, err := json.Marshal(course)
	require.NoError(t, err)
	assert.JSONEq(t, `{"price":"$10"}`, string(out))

	assert.Equal(t, "USD 10.50", NewAmount(1050, "usd").String())
}
