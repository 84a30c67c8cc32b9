// Package config loads the sitelens TOML configuration.
//
// # Configuration Discovery
//
// Load reads the given path, or ~/.config/sitelens/config.toml when the
// path is empty. A missing file is not an error: Default() is returned so
// sitelens works without any setup.
//
// # TOML Format
//
//	backend = "127.0.0.1:7710"     # crawler API; empty means offline
//	results_file = "~/crawl.json"  # JSON or YAML rows, watched for changes
//	log_file = "~/.local/state/sitelens/sitelens.log"
//	log_level = "info"
//	poll_seconds = 5
//	debounce_ms = 300
//	overscan = 18
//	row_height = 1
//	truncate = 120
//	min_pane = 5
//	csv_threshold = 1000
//	export_scope = "all"           # or "filtered"
//	export_dir = "~/exports"
//	key_field = "url"
//
//	[[columns]]
//	id = "url"
//	title = "URL"
//	width = 48
//	min_width = 12
//	align = "left"
//	flex = true
//
// Every field is optional. Blank strings and non-positive numbers fall back
// to their defaults. Paths get tilde expansion. Columns without an id and
// repeated ids are dropped.
package config
