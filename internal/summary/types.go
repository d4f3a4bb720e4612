package summary

import "time"

// Record is a canonical sale record after column mapping and
// validation. Week is attached once at ingestion and never recomputed
// afterwards.
type Record struct {
	SKU      string    `json:"sku"`
	City     string    `json:"city"`
	Date     time.Time `json:"date"`
	Week     string    `json:"week"`
	Quantity float64   `json:"qty"`
	Platform string    `json:"platform,omitempty"`
}

// SummaryTable maps dimension key -> week label -> summed quantity.
// Tables are dense: every key carries an entry for every week on the
// run's axis, zero-filled.
type SummaryTable map[string]map[string]float64

// Bundle is the full output of one aggregation run: the shared sorted
// week axis plus the three dimension tables.
type Bundle struct {
	Weeks   []string     `json:"weeks"`
	SKU     SummaryTable `json:"sku"`
	City    SummaryTable `json:"city"`
	SKUCity SummaryTable `json:"skuCity"`
}

// Result bundles everything a caller needs from one pipeline run.
type Result struct {
	Bundle  *Bundle          `json:"bundle"`
	Records []Record         `json:"-"`
	Skipped []SkipDiagnostic `json:"skipped,omitempty"`
}

// PlatformColumns names the source columns for one platform's export
// format. Passed explicitly into MapSchema; there is no process-wide
// column registry.
type PlatformColumns struct {
	Platform string
	SKU      string
	City     string
	Date     string
	Qty      string
}

// FieldIndex maps the four canonical fields to header positions.
type FieldIndex struct {
	SKU  int
	City int
	Date int
	Qty  int
}
