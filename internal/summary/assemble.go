package summary

// Assemble runs the three dimension aggregations over validated records
// and joins them with the shared sorted week axis.
func Assemble(records []Record) *Bundle {
	weeks := Weeks(records)
	return &Bundle{
		Weeks:   weeks,
		SKU:     Aggregate(records, SKUKey, weeks),
		City:    Aggregate(records, CityKey, weeks),
		SKUCity: Aggregate(records, CitySKUKey, weeks),
	}
}

// Summarize runs the whole pipeline on one raw batch: header mapping,
// row validation, week bucketing and aggregation. rows[0] must be the
// header. Per-row problems are recovered as diagnostics; only
// whole-batch conditions come back as errors.
func Summarize(rows [][]string, cols PlatformColumns) (*Result, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyInput
	}

	idx, err := MapSchema(cols, rows[0])
	if err != nil {
		return nil, err
	}

	if len(rows) == 1 {
		return nil, ErrEmptyInput
	}

	records, skipped := ValidateRows(rows[1:], idx)
	if len(records) == 0 {
		return nil, ErrNoValidData
	}

	return &Result{
		Bundle:  Assemble(records),
		Records: records,
		Skipped: skipped,
	}, nil
}
