// Package rational provides an immutable arbitrary-precision fraction used
// for every rate, count, and power quantity in the planner.
package rational

import (
	"fmt"
	"math/big"
	"strings"
)

// Rational is an immutable fraction. The zero value is 0.
type Rational struct {
	r *big.Rat
}

var (
	Zero = FromInt(0)
	One  = FromInt(1)
	Half = New(1, 2)
)

// New returns num/den. It panics if den is zero.
func New(num, den int64) Rational {
	if den == 0 {
		panic("rational: zero denominator")
	}
	return Rational{r: big.NewRat(num, den)}
}

// FromInt returns n/1.
func FromInt(n int64) Rational {
	return Rational{r: new(big.Rat).SetInt64(n)}
}

// FromFloat returns the exact binary value of f.
func FromFloat(f float64) Rational {
	r := new(big.Rat)
	if r.SetFloat64(f) == nil {
		// NaN or Inf
		return Zero
	}
	return Rational{r: r}
}

// Parse accepts integers, decimals ("2.5") and fractions ("5/2").
func Parse(s string) (Rational, error) {
	s = strings.TrimSpace(s)
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return Zero, fmt.Errorf("invalid rational %q", s)
	}
	return Rational{r: r}, nil
}

// MustParse is Parse for constants known to be valid.
func MustParse(s string) Rational {
	r, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return r
}

func (a Rational) rat() *big.Rat {
	if a.r == nil {
		return new(big.Rat)
	}
	return a.r
}

func (a Rational) Add(b Rational) Rational {
	return Rational{r: new(big.Rat).Add(a.rat(), b.rat())}
}

func (a Rational) Sub(b Rational) Rational {
	return Rational{r: new(big.Rat).Sub(a.rat(), b.rat())}
}

func (a Rational) Mul(b Rational) Rational {
	return Rational{r: new(big.Rat).Mul(a.rat(), b.rat())}
}

// Div returns a/b. It panics if b is zero.
func (a Rational) Div(b Rational) Rational {
	if b.IsZero() {
		panic("rational: division by zero")
	}
	return Rational{r: new(big.Rat).Quo(a.rat(), b.rat())}
}

// Reciprocal returns 1/a.
func (a Rational) Reciprocal() Rational {
	return One.Div(a)
}

// Ceil returns the smallest integer not less than a.
func (a Rational) Ceil() Rational {
	r := a.rat()
	q, m := new(big.Int).DivMod(r.Num(), r.Denom(), new(big.Int))
	if m.Sign() != 0 {
		q.Add(q, big.NewInt(1))
	}
	return Rational{r: new(big.Rat).SetInt(q)}
}

// Floor returns the largest integer not greater than a.
func (a Rational) Floor() Rational {
	r := a.rat()
	q := new(big.Int).Div(r.Num(), r.Denom())
	return Rational{r: new(big.Rat).SetInt(q)}
}

func (a Rational) Cmp(b Rational) int {
	return a.rat().Cmp(b.rat())
}

func (a Rational) Equal(b Rational) bool {
	return a.Cmp(b) == 0
}

func (a Rational) Less(b Rational) bool {
	return a.Cmp(b) < 0
}

func (a Rational) Sign() int {
	return a.rat().Sign()
}

func (a Rational) IsZero() bool {
	return a.Sign() == 0
}

// IsInteger reports whether the denominator is 1.
func (a Rational) IsInteger() bool {
	return a.rat().IsInt()
}

// Float64 returns the nearest float64 value.
func (a Rational) Float64() float64 {
	f, _ := a.rat().Float64()
	return f
}

// Decimal formats a with prec digits after the decimal point.
func (a Rational) Decimal(prec int) string {
	return a.rat().FloatString(prec)
}

// String returns "n" for integers and "n/d" otherwise.
func (a Rational) String() string {
	r := a.rat()
	if r.IsInt() {
		return r.Num().String()
	}
	return r.String()
}

// MarshalText encodes a in its String form.
func (a Rational) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText accepts anything Parse accepts.
func (a *Rational) UnmarshalText(text []byte) error {
	r, err := Parse(string(text))
	if err != nil {
		return err
	}
	*a = r
	return nil
}

// Min returns the smaller of a and b.
func Min(a, b Rational) Rational {
	if a.Less(b) {
		return a
	}
	return b
}

// Max returns the larger of a and b.
func Max(a, b Rational) Rational {
	if b.Less(a) {
		return a
	}
	return b
}
