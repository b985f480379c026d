package sheet

import (
	"math"
	"strconv"
	"strings"

	"menuboard/api/internal/domain"

	log "github.com/sirupsen/logrus"
)

// Column positions in the sheet. The export has no schema; the sheet owner
// guarantees this order.
const (
	colSection = iota
	colCategory
	colItemName
	colDescription
	colPriceRegular
	colPriceSmall
	colPriceMedium
	colPriceLarge
	colStatus
	colIsActive
	colBestSeller
	colChefSpecial
	colTodaysSpecial
)

// Parse converts the raw CSV export into the published item list. The first
// line is the header and is dropped, blank lines are skipped, and rows whose
// status/isActive columns disagree are filtered out.
func Parse(csvText string) []domain.MenuItem {
	lines := strings.Split(csvText, "\n")
	if len(lines) < 2 {
		return nil
	}

	items := make([]domain.MenuItem, 0, len(lines)-1)
	dropped := 0
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		item := itemFromRow(splitLine(line))
		if !item.Published() {
			dropped++
			continue
		}
		items = append(items, item)
	}

	log.Debugf("Parsed %d published items (%d rows filtered out)", len(items), dropped)
	return items
}

// splitLine tokenizes one CSV line. Commas inside double-quoted spans do not
// split, a doubled quote inside a quoted span is a literal quote, and every
// field is trimmed. An unterminated quote is tolerated: the remainder of the
// line becomes part of the current field. Sheet contents are not under our
// control, so malformed quoting degrades instead of erroring.
func splitLine(line string) []string {
	var fields []string
	var current strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case ch == '"':
			if inQuotes && i+1 < len(line) && line[i+1] == '"' {
				current.WriteByte('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case ch == ',' && !inQuotes:
			fields = append(fields, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteByte(ch)
		}
	}
	fields = append(fields, strings.TrimSpace(current.String()))

	return fields
}

// itemFromRow maps positional fields to a MenuItem. Missing trailing columns
// default to the zero value of each field, except status which defaults to
// "Active" so that rows whose status column was never filled in are not
// silently rejected.
func itemFromRow(fields []string) domain.MenuItem {
	item := domain.MenuItem{
		Section:       fieldAt(fields, colSection),
		Category:      fieldAt(fields, colCategory),
		ItemName:      fieldAt(fields, colItemName),
		Description:   fieldAt(fields, colDescription),
		PriceRegular:  parsePrice(fieldAt(fields, colPriceRegular)),
		PriceSmall:    parsePrice(fieldAt(fields, colPriceSmall)),
		PriceMedium:   parsePrice(fieldAt(fields, colPriceMedium)),
		PriceLarge:    parsePrice(fieldAt(fields, colPriceLarge)),
		Status:        fieldAt(fields, colStatus),
		IsActive:      parseFlag(fieldAt(fields, colIsActive)),
		BestSeller:    parseFlag(fieldAt(fields, colBestSeller)),
		ChefSpecial:   parseFlag(fieldAt(fields, colChefSpecial)),
		TodaysSpecial: parseFlag(fieldAt(fields, colTodaysSpecial)),
	}
	if item.Status == "" {
		item.Status = "Active"
	}
	return item
}

func fieldAt(fields []string, pos int) string {
	if pos >= len(fields) {
		return ""
	}
	return strings.TrimSpace(fields[pos])
}

// parsePrice returns nil unless the field holds a finite number. Absent means
// the tier is not offered, which downstream code must keep distinct from 0.
func parsePrice(raw string) *float64 {
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return nil
	}
	return &value
}

// parseFlag is true only for a case-insensitive "TRUE"; anything else,
// including blank, is false.
func parseFlag(raw string) bool {
	return strings.EqualFold(raw, "TRUE")
}
