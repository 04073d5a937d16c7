package money

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestRound2_HalfUp(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"10.005", "10.01"},
		{"10.004", "10"},
		{"0.125", "0.13"},
		{"-10.005", "-10.01"}, // away from zero
		{"99.999", "100"},
		{"42", "42"},
	}
	for _, c := range cases {
		got := Round2(decimal.RequireFromString(c.in))
		if !got.Equal(decimal.RequireFromString(c.want)) {
			t.Errorf("Round2(%s) = %s, want %s", c.in, got, c.want)
		}
	}
}

func TestFromFloat_TwoDecimals(t *testing.T) {
	got := FromFloat(150.10)
	if !got.Equal(decimal.RequireFromString("150.10")) {
		t.Fatalf("FromFloat(150.10) = %s", got)
	}
}

func TestMustFromString_PanicsOnGarbage(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	MustFromString("not-a-number")
}
