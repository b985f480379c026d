package domain

import (
	"reflect"
	"testing"
)

func TestPublished(t *testing.T) {
	tests := []struct {
		status    string
		isActive  bool
		published bool
	}{
		{"Active", true, true},
		{"Active", false, false},
		{"Inactive", true, false},
		{"active", true, false}, // status comparison is case-sensitive
		{"", true, false},
	}

	for _, tt := range tests {
		m := MenuItem{Status: tt.status, IsActive: tt.isActive}
		if got := m.Published(); got != tt.published {
			t.Fatalf("status=%q isActive=%v: published=%v, want %v",
				tt.status, tt.isActive, got, tt.published)
		}
	}
}

func TestPriceTiers(t *testing.T) {
	v := func(f float64) *float64 { return &f }

	tests := []struct {
		name     string
		item     MenuItem
		expected []PriceTier
	}{
		{
			name:     "no prices",
			item:     MenuItem{},
			expected: []PriceTier{},
		},
		{
			name: "all tiers in fixed order",
			item: MenuItem{
				PriceLarge:   v(120),
				PriceSmall:   v(40),
				PriceRegular: v(80),
				PriceMedium:  v(60),
			},
			expected: []PriceTier{
				{Code: TierRegular, Label: "Regular", Amount: 80},
				{Code: TierSmall, Label: "Small", Amount: 40},
				{Code: TierMedium, Label: "Medium", Amount: 60},
				{Code: TierLarge, Label: "Large", Amount: 120},
			},
		},
		{
			name: "zero and negative prices are not displayable",
			item: MenuItem{
				PriceRegular: v(0),
				PriceSmall:   v(-5),
				PriceMedium:  v(55),
			},
			expected: []PriceTier{
				{Code: TierMedium, Label: "Medium", Amount: 55},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.item.PriceTiers()
			if !reflect.DeepEqual(got, tt.expected) {
				t.Fatalf("unexpected tiers.\nwant: %#v\ngot:  %#v", tt.expected, got)
			}
		})
	}
}
