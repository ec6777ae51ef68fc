// Package catalog provides read-only access to a Lightroom CC catalog
// database (Managed Catalog.wfindex, a SQLite file).
//
// The on-disk schema belongs to Lightroom and may drift between releases;
// every table and column name is confined to this package so schema changes
// require edits in one place only. Consumers work with Album trees and Asset
// records, never with SQL.
package catalog
