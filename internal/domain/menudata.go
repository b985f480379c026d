package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// MenuData is the hierarchical menu model: section -> category -> ordered
// items. Section and category keys keep first-seen insertion order and item
// order follows the source feed, so the structure is backed by slices with
// lookup maps instead of Go maps. The JSON form is the nested object shape
// {"section": {"category": [items]}} with keys emitted in insertion order.
type MenuData struct {
	sections []*menuSection
	index    map[string]*menuSection
}

type menuSection struct {
	name       string
	categories []*menuCategory
	index      map[string]*menuCategory
}

type menuCategory struct {
	name  string
	items []MenuItem
}

func NewMenuData() *MenuData {
	return &MenuData{index: make(map[string]*menuSection)}
}

// Group folds an ordered item list into a MenuData. Pure accumulation: no
// deduplication, no sorting.
func Group(items []MenuItem) *MenuData {
	data := NewMenuData()
	for _, item := range items {
		data.Add(item)
	}
	return data
}

// Add appends the item to its section/category bucket, creating buckets in
// first-seen order.
func (d *MenuData) Add(item MenuItem) {
	sec, ok := d.index[item.Section]
	if !ok {
		sec = &menuSection{name: item.Section, index: make(map[string]*menuCategory)}
		d.sections = append(d.sections, sec)
		d.index[item.Section] = sec
	}

	cat, ok := sec.index[item.Category]
	if !ok {
		cat = &menuCategory{name: item.Category}
		sec.categories = append(sec.categories, cat)
		sec.index[item.Category] = cat
	}

	cat.items = append(cat.items, item)
}

// Sections returns section names in insertion order.
func (d *MenuData) Sections() []string {
	names := make([]string, 0, len(d.sections))
	for _, sec := range d.sections {
		names = append(names, sec.name)
	}
	return names
}

// Categories returns the category names of a section in insertion order, or
// nil if the section does not exist.
func (d *MenuData) Categories(section string) []string {
	sec, ok := d.index[section]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(sec.categories))
	for _, cat := range sec.categories {
		names = append(names, cat.name)
	}
	return names
}

// Items returns the ordered items of a category, or nil if the bucket does
// not exist.
func (d *MenuData) Items(section, category string) []MenuItem {
	sec, ok := d.index[section]
	if !ok {
		return nil
	}
	cat, ok := sec.index[category]
	if !ok {
		return nil
	}
	return cat.items
}

// ItemCount returns the total number of items across all buckets.
func (d *MenuData) ItemCount() int {
	count := 0
	for _, sec := range d.sections {
		for _, cat := range sec.categories {
			count += len(cat.items)
		}
	}
	return count
}

// Walk visits every item in model order.
func (d *MenuData) Walk(fn func(section, category string, item MenuItem)) {
	for _, sec := range d.sections {
		for _, cat := range sec.categories {
			for _, item := range cat.items {
				fn(sec.name, cat.name, item)
			}
		}
	}
}

func (d *MenuData) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, sec := range d.sections {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSONKey(&buf, sec.name); err != nil {
			return nil, err
		}
		buf.WriteByte('{')
		for j, cat := range sec.categories {
			if j > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSONKey(&buf, cat.name); err != nil {
				return nil, err
			}
			items, err := json.Marshal(cat.items)
			if err != nil {
				return nil, err
			}
			buf.Write(items)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeJSONKey(buf *bytes.Buffer, key string) error {
	encoded, err := json.Marshal(key)
	if err != nil {
		return err
	}
	buf.Write(encoded)
	buf.WriteByte(':')
	return nil
}

// UnmarshalJSON decodes the nested object form token by token so that key
// order survives the round trip through the snapshot store.
func (d *MenuData) UnmarshalJSON(data []byte) error {
	*d = *NewMenuData()

	dec := json.NewDecoder(bytes.NewReader(data))
	if err := expectDelim(dec, '{'); err != nil {
		return fmt.Errorf("menu data: %w", err)
	}

	for dec.More() {
		section, err := nextKey(dec)
		if err != nil {
			return fmt.Errorf("menu data: %w", err)
		}
		if err := expectDelim(dec, '{'); err != nil {
			return fmt.Errorf("menu data: section %q: %w", section, err)
		}
		for dec.More() {
			category, err := nextKey(dec)
			if err != nil {
				return fmt.Errorf("menu data: section %q: %w", section, err)
			}
			var items []MenuItem
			if err := dec.Decode(&items); err != nil {
				return fmt.Errorf("menu data: category %q: %w", category, err)
			}
			for _, item := range items {
				item.Section = section
				item.Category = category
				d.Add(item)
			}
		}
		if err := expectDelim(dec, '}'); err != nil {
			return fmt.Errorf("menu data: section %q: %w", section, err)
		}
	}

	return expectDelim(dec, '}')
}

func nextKey(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", err
	}
	key, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("expected object key, got %v", tok)
	}
	return key, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	delim, ok := tok.(json.Delim)
	if !ok || delim != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}
