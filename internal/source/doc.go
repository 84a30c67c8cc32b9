// Package source loads crawl rows from a results file and keeps them fresh.
//
// Files may be JSON or YAML, either a bare list of row objects or an object
// with a "rows" list. Watch uses fsnotify to reload on every write, so a
// crawler that rewrites its output file shows up in the grid without a
// backend. A failed reload keeps the previous rows in the store.
package source
