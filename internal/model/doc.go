// Package model defines the data types shared across guardkit:
// the block-oriented report representation consumed by the filter
// and the clean-run record persisted to the history database.
package model
