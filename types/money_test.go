package types

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestMoneyConstructors(t *testing.T) {
	tests := []struct {
		name     string
		money    Money
		amount   int64
		currency string
		display  string
	}{
		{"USD", USD(4900), 4900, "usd", "$49.00"},
		{"EUR", EUR(19900), 19900, "eur", "€199.00"},
		{"GBP", GBP(9900), 9900, "gbp", "£99.00"},
		{"Minor", Minor(3000, "USD"), 3000, "usd", "$30.00"},
		{"Minor yen", Minor(100, "jpy"), 100, "jpy", "¥100"},
		{"Zero USD", Zero("USD"), 0, "usd", "$0.00"},
		{"Zero GBP", Zero("GBP"), 0, "gbp", "£0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.money.Amount != tt.amount {
				t.Errorf("Amount: got %d, want %d", tt.money.Amount, tt.amount)
			}
			if tt.money.Currency != tt.currency {
				t.Errorf("Currency: got %s, want %s", tt.money.Currency, tt.currency)
			}
			if tt.money.String() != tt.display {
				t.Errorf("Display: got %s, want %s", tt.money.String(), tt.display)
			}
		})
	}
}

func TestMoneyArithmetic(t *testing.T) {
	tests := []struct {
		name     string
		op       func() Money
		expected Money
	}{
		{"Add", func() Money { return USD(100).Add(USD(200)) }, USD(300)},
		{"Subtract", func() Money { return USD(500).Subtract(USD(200)) }, USD(300)},
		{"Negate", func() Money { return USD(100).Negate() }, USD(-100)},
		{"Abs positive", func() Money { return USD(100).Abs() }, USD(100)},
		{"Abs negative", func() Money { return USD(-100).Abs() }, USD(100)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.op()
			if !result.Equal(tt.expected) {
				t.Errorf("Got %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestMoneyCurrencyMismatch(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic for currency mismatch")
		}
	}()

	// This should panic
	_ = USD(100).Add(EUR(100))
}

func TestMoneyDecimal(t *testing.T) {
	tests := []struct {
		name  string
		money Money
		want  string
	}{
		{"USD whole", USD(3000), "30"},
		{"USD fractional", USD(1999), "19.99"},
		{"Negative", USD(-250), "-2.5"},
		{"Zero", Zero("usd"), "0"},
		{"Yen unscaled", Minor(100, "jpy"), "100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.money.Decimal()
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("Decimal: got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestMoneyPredicates(t *testing.T) {
	if !USD(0).IsZero() || USD(1).IsZero() {
		t.Error("IsZero")
	}
	if !USD(1).IsPositive() || USD(-1).IsPositive() {
		t.Error("IsPositive")
	}
	if !USD(-1).IsNegative() || USD(1).IsNegative() {
		t.Error("IsNegative")
	}
}

func TestSum(t *testing.T) {
	got := Sum(USD(100), USD(200), USD(300))
	if !got.Equal(USD(600)) {
		t.Errorf("Sum: got %v, want %v", got, USD(600))
	}

	if !Sum().IsZero() {
		t.Error("empty Sum should be zero")
	}
}

func TestMoneyJSON(t *testing.T) {
	data, err := USD(4900).MarshalJSON()
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	want := `{"amount":4900,"currency":"usd","display":"$49.00"}`
	if string(data) != want {
		t.Errorf("JSON: got %s, want %s", data, want)
	}
}
