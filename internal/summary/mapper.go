package summary

import "strings"

// MapSchema resolves the four canonical fields against a header row
// using the platform's column names. Header cells are compared after
// trimming. Returns a *SchemaError naming every unresolved field when
// any of them is absent.
func MapSchema(cols PlatformColumns, header []string) (FieldIndex, error) {
	find := func(want string) int {
		want = strings.TrimSpace(want)
		for i, h := range header {
			if strings.TrimSpace(h) == want {
				return i
			}
		}
		return -1
	}

	idx := FieldIndex{
		SKU:  find(cols.SKU),
		City: find(cols.City),
		Date: find(cols.Date),
		Qty:  find(cols.Qty),
	}

	var missing []MissingField
	if idx.SKU < 0 {
		missing = append(missing, MissingField{Field: "sku", Expected: cols.SKU})
	}
	if idx.City < 0 {
		missing = append(missing, MissingField{Field: "city", Expected: cols.City})
	}
	if idx.Date < 0 {
		missing = append(missing, MissingField{Field: "date", Expected: cols.Date})
	}
	if idx.Qty < 0 {
		missing = append(missing, MissingField{Field: "qty", Expected: cols.Qty})
	}
	if len(missing) > 0 {
		return FieldIndex{}, &SchemaError{Platform: cols.Platform, Missing: missing}
	}

	return idx, nil
}
