package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMoney_Valid(t *testing.T) {
	cases := map[string]Money{
		"1500.50": 150050,
		"200":     20000,
		"0":       0,
		"0.5":     50,
		".75":     75,
		"$1,200":  120000,
		" 42.1 ":  4210,
	}
	for in, want := range cases {
		got, err := ParseMoney(in)
		require.NoError(t, err, "should accept %q", in)
		assert.Equal(t, want, got, "parsing %q", in)
	}
}

func TestParseMoney_Invalid(t *testing.T) {
	cases := []string{"", " ", ".", "-5", "abc", "1.234", "12a", "1e3"}
	for _, in := range cases {
		_, err := ParseMoney(in)
		assert.Error(t, err, "should reject %q", in)
	}
}

func TestMoney_StringRoundTrips(t *testing.T) {
	m := Money(150050)
	assert.Equal(t, "1500.50", m.String())

	back, err := ParseMoney(m.String())
	require.NoError(t, err)
	assert.Equal(t, m, back)
}

func TestMoneyFromPtrWithDefault(t *testing.T) {
	v := Money(99)
	assert.Equal(t, Money(99), MoneyFromPtrWithDefault(0, nil, &v))
	assert.Equal(t, Money(7), MoneyFromPtrWithDefault(7))
}
