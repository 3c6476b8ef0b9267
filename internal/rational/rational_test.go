package rational

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArithmeticIsExact(t *testing.T) {
	third := New(1, 3)
	sum := Zero
	for i := 0; i < 3; i++ {
		sum = sum.Add(third)
	}
	assert.True(t, sum.Equal(One), "1/3 + 1/3 + 1/3 = %s", sum)

	assert.Equal(t, "5/6", New(1, 2).Add(third).String())
	assert.Equal(t, "1/6", New(1, 2).Sub(third).String())
	assert.Equal(t, "2/9", New(2, 3).Mul(third).String())
	assert.Equal(t, "2", New(2, 3).Div(third).String())
	assert.Equal(t, "3", third.Reciprocal().String())
}

func TestZeroValueIsZero(t *testing.T) {
	var r Rational
	assert.True(t, r.IsZero())
	assert.Equal(t, "0", r.String())
	assert.True(t, r.Add(One).Equal(One))
}

func TestCeilFloor(t *testing.T) {
	tests := []struct {
		in    Rational
		ceil  string
		floor string
	}{
		{New(7, 3), "3", "2"},
		{New(6, 3), "2", "2"},
		{Zero, "0", "0"},
		{New(1, 1000), "1", "0"},
		{New(-7, 3), "-2", "-3"},
	}
	for _, tt := range tests {
		t.Run(tt.in.String(), func(t *testing.T) {
			assert.Equal(t, tt.ceil, tt.in.Ceil().String())
			assert.Equal(t, tt.floor, tt.in.Floor().String())
		})
	}
}

func TestParse(t *testing.T) {
	r, err := Parse("2.5")
	require.NoError(t, err)
	assert.True(t, r.Equal(New(5, 2)))

	r, err = Parse(" 5/2 ")
	require.NoError(t, err)
	assert.True(t, r.Equal(New(5, 2)))

	_, err = Parse("fast")
	assert.Error(t, err)
}

func TestTextRoundTrip(t *testing.T) {
	in := New(22, 7)
	b, err := in.MarshalText()
	require.NoError(t, err)

	var out Rational
	require.NoError(t, out.UnmarshalText(b))
	assert.True(t, in.Equal(out))
}

func TestFromFloatIsExactBinary(t *testing.T) {
	assert.True(t, FromFloat(0.5).Equal(Half))
	assert.InDelta(t, 0.1, FromFloat(0.1).Float64(), 0)
	assert.True(t, FromFloat(2).Equal(FromInt(2)))
}

func TestDivByZeroPanics(t *testing.T) {
	assert.Panics(t, func() { One.Div(Zero) })
}

func TestMinMax(t *testing.T) {
	a, b := New(1, 3), New(1, 2)
	assert.True(t, Min(a, b).Equal(a))
	assert.True(t, Max(a, b).Equal(b))
	assert.Equal(t, "0.33", a.Decimal(2))
}
