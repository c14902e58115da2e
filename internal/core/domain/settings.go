package domain

import "time"

// Configuration keys understood by the settings service.
const (
	KeySessionDataDir   = "session.data_dir"
	KeyIngestBatchLimit = "ingest.batch_limit"
	KeyExportFilename   = "export.filename"
	KeyExportSheetName  = "export.sheet_name"
	KeyWatchDebounce    = "watch.debounce"
)

// Default settings values.
const (
	DefaultBatchLimit     = 50
	DefaultExportFilename = "methodosync-codebook.xlsx"
	DefaultSheetName      = "Codebook"
	DefaultWatchDebounce  = 500 * time.Millisecond
)

// Settings holds the resolved application configuration.
type Settings struct {
	// DataDir is where the session database lives. Empty means the default
	// location under the user's home directory.
	DataDir string

	// BatchLimit caps how many files a single ingest reads.
	BatchLimit int

	// ExportFilename is the default spreadsheet file name.
	ExportFilename string

	// SheetName is the worksheet name inside the spreadsheet.
	SheetName string

	// WatchDebounce is the minimum interval between watcher re-derivations.
	WatchDebounce time.Duration
}

// DefaultSettings returns settings with every default applied.
func DefaultSettings() Settings {
	return Settings{
		BatchLimit:     DefaultBatchLimit,
		ExportFilename: DefaultExportFilename,
		SheetName:      DefaultSheetName,
		WatchDebounce:  DefaultWatchDebounce,
	}
}

// SettingKeys lists every recognised configuration key.
func SettingKeys() []string {
	return []string{
		KeySessionDataDir,
		KeyIngestBatchLimit,
		KeyExportFilename,
		KeyExportSheetName,
		KeyWatchDebounce,
	}
}
