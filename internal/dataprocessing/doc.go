// Package dataprocessing turns a raw survey export into the clean typed
// table the aggregation layer consumes. It is the core of the application.
//
// # Architecture
//
// The package is organized around three pieces:
//
// 1. Parser: reads the export (CSV or XLSX) into header-keyed raw records
// 2. Schema: the fixed rename/remap/repair lookup tables, as data not code
// 3. Normalizer: the ordered transformation pipeline producing a CleanTable
//
// # Usage
//
//	normalizer := dataprocessing.NewNormalizer(logger, dataprocessing.DefaultNormalizerConfig())
//	table, err := normalizer.Normalize(ctx, "data/survey_results.csv")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Data flow
//
//	Export file → Parser → RawRecords → Normalizer → CleanTable
//
// The pipeline is deterministic: identical raw input produces identical
// category labels and value sets. Stage order matters: consent filtering
// precedes the salary repairs, which precede the final type coercion.
//
// # Error handling
//
// Structural problems (unreadable file, missing consent or timestamp column,
// unparseable timestamp or numeric cell) abort the whole run with a
// MalformedInput error; no row is silently dropped to route around them. The
// one deliberate lossy step is multi-select expansion, which discards
// free-text tool answers outside the fixed category list.
package dataprocessing
