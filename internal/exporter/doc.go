// Package exporter writes fetched BankFind records and dashboard table
// views to CSV, JSON, and XLSX.
//
// CSVWriter and JSONWriter serialize []map[string]string records against a
// fixed field list, so both formats carry the same columns regardless of
// what extra keys the API returned. WriteTableXLSX produces the formatted
// branch-table download served by the export endpoint.
package exporter
