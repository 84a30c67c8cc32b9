// Package logtail reads the tail of the sitelens log for the in-app log
// panel.
//
// Read keeps a ring buffer of the last N lines, so memory stays bounded by
// N regardless of file size. Parse splits the text lines written by the
// logger into time, level and message so the UI can color them by level.
package logtail
