package services

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/simlab-siue/methodosync/internal/core/domain"
	"github.com/simlab-siue/methodosync/internal/core/ports/driven"
	"github.com/simlab-siue/methodosync/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// maxSheetNameLen is the spreadsheet limit on worksheet names.
const maxSheetNameLen = 31

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get returns the stored settings with defaults for anything unset or invalid.
func (s *SettingsService) Get() domain.Settings {
	settings := domain.DefaultSettings()

	settings.DataDir = s.configStore.GetString(domain.KeySessionDataDir)
	if n := s.configStore.GetInt(domain.KeyIngestBatchLimit); n > 0 {
		settings.BatchLimit = n
	}
	if v := s.configStore.GetString(domain.KeyExportFilename); v != "" {
		settings.ExportFilename = v
	}
	if v := s.configStore.GetString(domain.KeyExportSheetName); validSheetName(v) == nil {
		settings.SheetName = v
	}
	if d := s.configStore.GetDuration(domain.KeyWatchDebounce); d > 0 {
		settings.WatchDebounce = d
	}
	return settings
}

// Set validates value for key and persists it.
func (s *SettingsService) Set(key, value string) error {
	stored, err := parseSetting(key, strings.TrimSpace(value))
	if err != nil {
		return err
	}
	if err := s.configStore.Set(key, stored); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	if err := s.configStore.Save(); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	return nil
}

// Values returns every key with its resolved value as display text.
func (s *SettingsService) Values() map[string]string {
	settings := s.Get()
	dataDir := settings.DataDir
	if dataDir == "" {
		dataDir = "(default)"
	}
	return map[string]string{
		domain.KeySessionDataDir:   dataDir,
		domain.KeyIngestBatchLimit: strconv.Itoa(settings.BatchLimit),
		domain.KeyExportFilename:   settings.ExportFilename,
		domain.KeyExportSheetName:  settings.SheetName,
		domain.KeyWatchDebounce:    settings.WatchDebounce.String(),
	}
}

// Path returns the configuration file path.
func (s *SettingsService) Path() string {
	return s.configStore.Path()
}

// parseSetting converts value to the type stored for key.
func parseSetting(key, value string) (any, error) {
	switch key {
	case domain.KeySessionDataDir:
		return value, nil
	case domain.KeyIngestBatchLimit:
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("%w: %s must be a positive integer", domain.ErrInvalidInput, key)
		}
		return n, nil
	case domain.KeyExportFilename:
		if value == "" || filepath.Base(value) != value {
			return nil, fmt.Errorf("%w: %s must be a plain file name", domain.ErrInvalidInput, key)
		}
		if !strings.EqualFold(filepath.Ext(value), ".xlsx") {
			value += ".xlsx"
		}
		return value, nil
	case domain.KeyExportSheetName:
		if err := validSheetName(value); err != nil {
			return nil, err
		}
		return value, nil
	case domain.KeyWatchDebounce:
		d, err := time.ParseDuration(value)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("%w: %s must be a positive duration such as 500ms", domain.ErrInvalidInput, key)
		}
		return d.String(), nil
	default:
		return nil, fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
}

func validSheetName(name string) error {
	if name == "" || len([]rune(name)) > maxSheetNameLen || strings.ContainsAny(name, `[]:*?/\`) {
		return fmt.Errorf("%w: sheet name must be 1-%d characters without []:*?/\\", domain.ErrInvalidInput, maxSheetNameLen)
	}
	return nil
}
