// Package export turns the grid's rows into a saved file.
//
// An Adapter allows one export at a time. Begin snapshots the rows and
// columns into a Job; the Job then either runs against a path chosen by the
// user or is cancelled, and both release the adapter. Large row sets are
// encoded as CSV before the backend call, smaller ones are sent as cells for
// an xlsx workbook. LocalBackend stands in for the crawler API when only a
// results file is loaded.
package export
