// Package cli implements the oncampus command-line tool.
//
// Each run opens the configured store, reconciles the collections the command
// touches with their seed data, and then lists, adds or removes entries. The
// status command reconciles all three collections and reports which branch
// each one took. Output is a text table or, with --format json, indented JSON.
package cli
