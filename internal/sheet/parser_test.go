package sheet

import (
	"reflect"
	"testing"

	"menuboard/api/internal/domain"
)

const header = "Section,Category,Item Name,Description,Price Regular,Price Small,Price Medium,Price Large,Status,Is Active,Best Seller,Chef Special,Todays Special"

func price(v float64) *float64 {
	return &v
}

func TestSplitLineScenarios(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected []string
	}{
		{
			name:     "plain fields",
			line:     "South Indian,Breakfast,Idli,Steamed rice cake",
			expected: []string{"South Indian", "Breakfast", "Idli", "Steamed rice cake"},
		},
		{
			name:     "comma inside quoted field",
			line:     `South Indian,Breakfast,"Dosa, Masala",Crispy rice crepe`,
			expected: []string{"South Indian", "Breakfast", "Dosa, Masala", "Crispy rice crepe"},
		},
		{
			name:     "doubled quote becomes literal quote",
			line:     `Drinks,Hot,"The ""House"" Chai",Spiced tea`,
			expected: []string{"Drinks", "Hot", `The "House" Chai`, "Spiced tea"},
		},
		{
			name:     "unterminated quote swallows rest of line",
			line:     `Drinks,Hot,"Broken field,rest`,
			expected: []string{"Drinks", "Hot", "Broken field,rest"},
		},
		{
			name:     "fields are trimmed",
			line:     "  Drinks ,  Cold  , Lassi ,",
			expected: []string{"Drinks", "Cold", "Lassi", ""},
		},
		{
			name:     "trailing empty fields preserved",
			line:     "a,b,,",
			expected: []string{"a", "b", "", ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitLine(tt.line)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Fatalf("unexpected fields.\nwant: %#v\ngot:  %#v", tt.expected, got)
			}
		})
	}
}

func TestParseRoundTrip(t *testing.T) {
	csvText := header + "\n" +
		`South Indian,Breakfast,"Dosa, Masala",Crispy rice crepe,80,,,,Active,TRUE,FALSE,FALSE,FALSE` + "\n"

	items := Parse(csvText)
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}

	expected := domain.MenuItem{
		Section:      "South Indian",
		Category:     "Breakfast",
		ItemName:     "Dosa, Masala",
		Description:  "Crispy rice crepe",
		PriceRegular: price(80),
		Status:       "Active",
		IsActive:     true,
	}
	if !reflect.DeepEqual(items[0], expected) {
		t.Fatalf("unexpected item.\nwant: %#v\ngot:  %#v", expected, items[0])
	}
}

func TestParseFilterConjunction(t *testing.T) {
	// Only status "Active" together with isActive TRUE survives. Blank
	// status defaults to "Active", so it behaves like the explicit value.
	tests := []struct {
		status   string
		isActive string
		survives bool
	}{
		{"Active", "TRUE", true},
		{"Active", "FALSE", false},
		{"Active", "", false},
		{"Inactive", "TRUE", false},
		{"Inactive", "FALSE", false},
		{"Inactive", "", false},
		{"", "TRUE", true}, // blank status defaults to Active
		{"", "FALSE", false},
		{"", "", false},
	}

	for _, tt := range tests {
		csvText := header + "\n" +
			"Sec,Cat,Item,Desc,10,,,," + tt.status + "," + tt.isActive + ",FALSE,FALSE,FALSE\n"
		items := Parse(csvText)
		survived := len(items) == 1
		if survived != tt.survives {
			t.Fatalf("status=%q isActive=%q: survived=%v, want %v",
				tt.status, tt.isActive, survived, tt.survives)
		}
	}
}

func TestParseSkipsHeaderAndBlankLines(t *testing.T) {
	csvText := header + "\n" +
		"\n" +
		"   \n" +
		"Sec,Cat,One,,10,,,,Active,TRUE,,,\n" +
		"\n" +
		"Sec,Cat,Two,,20,,,,Active,TRUE,,,\n"

	items := Parse(csvText)
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].ItemName != "One" || items[1].ItemName != "Two" {
		t.Fatalf("unexpected items: %#v", items)
	}
}

func TestParseHeaderOnly(t *testing.T) {
	if items := Parse(header); items != nil {
		t.Fatalf("expected nil for header-only input, got %#v", items)
	}
	if items := Parse(""); items != nil {
		t.Fatalf("expected nil for empty input, got %#v", items)
	}
}

func TestItemFromRowPrices(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected *float64
	}{
		{"empty is absent", "", nil},
		{"whitespace is absent", "   ", nil},
		{"non-numeric is absent", "ninety", nil},
		{"nan is absent", "NaN", nil},
		{"infinity is absent", "Inf", nil},
		{"zero is kept as a value", "0", price(0)},
		{"decimal parses", "99.5", price(99.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := itemFromRow([]string{"Sec", "Cat", "Item", "", tt.raw})
			if !reflect.DeepEqual(item.PriceRegular, tt.expected) {
				t.Fatalf("priceRegular: want %v, got %v", tt.expected, item.PriceRegular)
			}
		})
	}
}

func TestItemFromRowShortRow(t *testing.T) {
	item := itemFromRow([]string{"Sec", "Cat"})
	if item.Section != "Sec" || item.Category != "Cat" {
		t.Fatalf("unexpected item: %#v", item)
	}
	if item.ItemName != "" || item.Description != "" {
		t.Fatalf("missing positions should default to empty: %#v", item)
	}
	if item.Status != "Active" {
		t.Fatalf("blank status should default to Active, got %q", item.Status)
	}
	if item.IsActive || item.BestSeller || item.ChefSpecial || item.TodaysSpecial {
		t.Fatalf("missing flags should default to false: %#v", item)
	}
}

func TestItemFromRowFlags(t *testing.T) {
	tests := []struct {
		raw      string
		expected bool
	}{
		{"TRUE", true},
		{"true", true},
		{"True", true},
		{" TRUE ", true},
		{"FALSE", false},
		{"yes", false},
		{"1", false},
		{"", false},
	}

	for _, tt := range tests {
		item := itemFromRow([]string{"", "", "", "", "", "", "", "", "", tt.raw})
		if item.IsActive != tt.expected {
			t.Fatalf("flag %q: want %v, got %v", tt.raw, tt.expected, item.IsActive)
		}
	}
}
