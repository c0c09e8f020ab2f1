package booking

import "testing"

func TestAmountInCents(t *testing.T) {
	cases := []struct {
		amount float64
		want   int64
	}{
		{50, 5000},
		{19.99, 1999}, // 19.99*100 is 1998.999... in float64; must round, not truncate
		{0.01, 1},
		{0, 0},
		{123.455, 12346},
	}
	for _, c := range cases {
		if got := amountInCents(c.amount); got != c.want {
			t.Fatalf("amountInCents(%v) = %d, want %d", c.amount, got, c.want)
		}
	}
}
