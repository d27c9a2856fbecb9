package model

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestMoney_MarshalJSONKeepsScale(t *testing.T) {
	cases := []struct {
		name   string
		amount string
		want   string
	}{
		{"trailing zero kept", "129.90", `"129.90"`},
		{"zero fraction added", "25", `"25.00"`},
		{"single digit padded", "299.8", `"299.80"`},
		{"already two digits", "149.95", `"149.95"`},
		{"zero", "0", `"0.00"`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := MoneyFromDecimal(decimal.RequireFromString(tc.amount))

			got, err := json.Marshal(m)
			if err != nil {
				t.Fatalf("Marshal() error = %v", err)
			}
			if string(got) != tc.want {
				t.Errorf("Marshal(%s) = %s, want %s", tc.amount, got, tc.want)
			}
		})
	}
}

func TestMoney_UnmarshalRoundTrip(t *testing.T) {
	var m Money
	if err := json.Unmarshal([]byte(`"149.90"`), &m); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if !m.Equal(decimal.RequireFromString("149.90")) {
		t.Errorf("Unmarshal() value = %s, want 149.90", m)
	}

	out, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(out) != `"149.90"` {
		t.Errorf("round trip = %s, want %q", out, `"149.90"`)
	}
}

func TestMoney_MarshalInsideStruct(t *testing.T) {
	product := Product{Name: "Board", Price: MoneyFromDecimal(decimal.RequireFromString("129.90"))}

	out, err := json.Marshal(product)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if want := `"price":"129.90"`; !strings.Contains(string(out), want) {
		t.Errorf("Marshal(Product) = %s, want it to contain %s", out, want)
	}
}
