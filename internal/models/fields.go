package models

import (
	"bytes"
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// The content API is inconsistent about the shape of several fields depending
// on which endpoint produced the record. The types below accept every shape
// seen so far and never fail the surrounding decode.

// NameField holds a relational label (type, status, operation, zone, currency)
// sent either as a bare string or as an object with a name property.
type NameField string

var nameKeys = []string{"nombre", "name", "Nombre", "Name", "titulo", "label"}

func (n *NameField) UnmarshalJSON(b []byte) error {
	*n = ""
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		return nil
	}

	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err == nil {
			*n = NameField(strings.TrimSpace(s))
		}
	case '{':
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(b, &obj); err != nil {
			return nil
		}
		for _, key := range nameKeys {
			raw, ok := obj[key]
			if !ok {
				continue
			}
			var s string
			if json.Unmarshal(raw, &s) == nil && strings.TrimSpace(s) != "" {
				*n = NameField(strings.TrimSpace(s))
				return nil
			}
		}
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		*n = NameField(b)
	}
	return nil
}

func (n NameField) String() string { return string(n) }

// ImageRef is a media reference: a bare URL/path string or an upload object
// with a url property. Relative paths are resolved by the gateway.
type ImageRef struct {
	URL             string `json:"url"`
	AlternativeText string `json:"alternativeText,omitempty"`
}

func (r *ImageRef) UnmarshalJSON(b []byte) error {
	*r = ImageRef{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		return nil
	}

	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err == nil {
			r.URL = strings.TrimSpace(s)
		}
	case '{':
		var obj struct {
			URL             string `json:"url"`
			AlternativeText string `json:"alternativeText"`
		}
		if err := json.Unmarshal(b, &obj); err == nil {
			r.URL = strings.TrimSpace(obj.URL)
			r.AlternativeText = obj.AlternativeText
		}
	case '[':
		// Multi-media fields: keep the first usable entry.
		var list ImageList
		if err := json.Unmarshal(b, &list); err == nil && len(list) > 0 {
			*r = list[0]
		}
	}
	return nil
}

func (r ImageRef) IsZero() bool { return r.URL == "" }

// ImageList is an ordered gallery. A single object where a list is expected
// is treated as a one-element gallery.
type ImageList []ImageRef

func (l *ImageList) UnmarshalJSON(b []byte) error {
	*l = nil
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		return nil
	}

	if b[0] != '[' {
		var single ImageRef
		if err := json.Unmarshal(b, &single); err == nil && !single.IsZero() {
			*l = ImageList{single}
		}
		return nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil
	}
	out := make(ImageList, 0, len(raw))
	for _, item := range raw {
		var ref ImageRef
		if err := json.Unmarshal(item, &ref); err == nil && !ref.IsZero() {
			out = append(out, ref)
		}
	}
	*l = out
	return nil
}

// FlexInt accepts a JSON number, a numeric string or null.
type FlexInt struct {
	Value int
	Valid bool
}

func (f *FlexInt) UnmarshalJSON(b []byte) error {
	*f = FlexInt{}
	n, ok := parseNumber(b)
	if ok {
		*f = FlexInt{Value: int(n), Valid: true}
	}
	return nil
}

func (f FlexInt) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(f.Value)), nil
}

// Or returns the value, or def when the field was absent.
func (f FlexInt) Or(def int) int {
	if !f.Valid {
		return def
	}
	return f.Value
}

// FlexFloat accepts a JSON number, a numeric string or null.
type FlexFloat struct {
	Value float64
	Valid bool
}

func (f *FlexFloat) UnmarshalJSON(b []byte) error {
	*f = FlexFloat{}
	n, ok := parseNumber(b)
	if ok {
		*f = FlexFloat{Value: n, Valid: true}
	}
	return nil
}

func (f FlexFloat) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(f.Value, 'f', -1, 64)), nil
}

func parseNumber(b []byte) (float64, bool) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		return 0, false
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return 0, false
		}
		b = []byte(strings.TrimSpace(s))
	}
	n, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Price is a nullable amount. Upstream sends either a bare number (or numeric
// string) or an object carrying the amount and a nested currency.
type Price struct {
	Amount   decimal.NullDecimal
	Currency NameField
}

var (
	amountKeys   = []string{"monto", "valor", "precio", "amount", "value"}
	currencyKeys = []string{"moneda", "currency"}
)

func (p *Price) UnmarshalJSON(b []byte) error {
	*p = Price{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		return nil
	}

	if b[0] != '{' {
		p.Amount = parseAmount(b)
		return nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(b, &obj); err != nil {
		return nil
	}
	for _, key := range amountKeys {
		if raw, ok := obj[key]; ok {
			if amount := parseAmount(raw); amount.Valid {
				p.Amount = amount
				break
			}
		}
	}
	for _, key := range currencyKeys {
		if raw, ok := obj[key]; ok {
			_ = p.Currency.UnmarshalJSON(raw)
			if p.Currency != "" {
				break
			}
		}
	}
	return nil
}

func (p Price) MarshalJSON() ([]byte, error) {
	if !p.Amount.Valid {
		return []byte("null"), nil
	}
	return []byte(p.Amount.Decimal.String()), nil
}

func parseAmount(b []byte) decimal.NullDecimal {
	var d decimal.NullDecimal
	if err := d.UnmarshalJSON(b); err != nil {
		return decimal.NullDecimal{}
	}
	return d
}

// FeatureSet is a flat cluster of named booleans (services, amenities, ...).
// Non-boolean members, ids and component tags are dropped.
type FeatureSet map[string]bool

func (f *FeatureSet) UnmarshalJSON(b []byte) error {
	*f = nil
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(b, &obj); err != nil || obj == nil {
		return nil
	}
	set := make(FeatureSet, len(obj))
	for key, raw := range obj {
		if key == "id" || strings.HasPrefix(key, "__") {
			continue
		}
		var v bool
		if json.Unmarshal(raw, &v) == nil {
			set[key] = v
		}
	}
	*f = set
	return nil
}

// Keys returns the feature names in a stable order.
func (f FeatureSet) Keys() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// RichText is a text body sent either as a markup string or as a list of
// rich-text blocks. Blocks are flattened into one <p> per block.
type RichText string

type richTextNode struct {
	Text     string         `json:"text"`
	Children []richTextNode `json:"children"`
}

func (r *RichText) UnmarshalJSON(b []byte) error {
	*r = ""
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		return nil
	}

	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err == nil {
			*r = RichText(s)
		}
	case '[':
		var blocks []richTextNode
		if err := json.Unmarshal(b, &blocks); err != nil {
			return nil
		}
		var sb strings.Builder
		for _, block := range blocks {
			text := strings.TrimSpace(block.flatten())
			if text == "" {
				continue
			}
			sb.WriteString("<p>")
			sb.WriteString(text)
			sb.WriteString("</p>")
		}
		*r = RichText(sb.String())
	}
	return nil
}

func (n richTextNode) flatten() string {
	if len(n.Children) == 0 {
		return n.Text
	}
	var sb strings.Builder
	sb.WriteString(n.Text)
	for _, c := range n.Children {
		sb.WriteString(c.flatten())
	}
	return sb.String()
}

func (r RichText) String() string { return string(r) }
