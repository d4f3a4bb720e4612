package summary

import "sort"

// SKUKey, CityKey and CitySKUKey are the three dimension key functions
// used per platform run.
func SKUKey(r Record) string  { return r.SKU }
func CityKey(r Record) string { return r.City }

// CitySKUKey formats the composite city x sku dimension key.
func CitySKUKey(r Record) string { return r.City + " - " + r.SKU }

// Aggregate sums quantities into a dimension-key by week grid. Every key
// that appears in the input gets a row pre-filled with zero for every
// week on the axis, so the table is dense even for combinations that
// never occur. Summation order does not affect the result.
func Aggregate(records []Record, dim func(Record) string, weeks []string) SummaryTable {
	table := make(SummaryTable)
	for _, r := range records {
		key := dim(r)
		row, ok := table[key]
		if !ok {
			row = make(map[string]float64, len(weeks))
			for _, w := range weeks {
				row[w] = 0
			}
			table[key] = row
		}
		row[r.Week] += r.Quantity
	}
	return table
}

// SortedKeys returns the table's dimension keys in presentation order
// (lexical ascending).
func SortedKeys(t SummaryTable) []string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
