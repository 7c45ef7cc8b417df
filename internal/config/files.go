package config

import (
	"os"
	"path/filepath"
)

const AppName = "vdash"

var (
	// AppConfigDir is ~/.config/vdash
	AppConfigDir string

	// AppDataDir is ~/.local/share/vdash
	AppDataDir string

	// AppStateDir is ~/.local/state/vdash
	AppStateDir string

	// AppConfigFile is ~/.config/vdash/config.yaml
	AppConfigFile string

	// AppHotkeysFile is ~/.config/vdash/hotkeys.yaml
	AppHotkeysFile string

	// AppAliasesFile is ~/.config/vdash/aliases.yaml
	AppAliasesFile string

	// AppMenuFile is ~/.config/vdash/menu.yaml
	AppMenuFile string

	// AppStoreDir is ~/.local/share/vdash/store
	AppStoreDir string

	// AppExportsDir is ~/.local/share/vdash/exports
	AppExportsDir string

	// AppLogFile is ~/.local/state/vdash/vdash.log
	AppLogFile string
)

// InitLocs initializes all application directory paths.
// It respects XDG environment variables if set.
func InitLocs() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		configHome = filepath.Join(home, ".config")
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		dataHome = filepath.Join(home, ".local", "share")
	}

	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		stateHome = filepath.Join(home, ".local", "state")
	}

	setLocs(configHome, dataHome, stateHome)

	for _, dir := range []string{AppConfigDir, AppDataDir, AppStateDir} {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return err
		}
	}

	return nil
}

func setLocs(configHome, dataHome, stateHome string) {
	AppConfigDir = filepath.Join(configHome, AppName)
	AppDataDir = filepath.Join(dataHome, AppName)
	AppStateDir = filepath.Join(stateHome, AppName)

	AppConfigFile = filepath.Join(AppConfigDir, "config.yaml")
	AppHotkeysFile = filepath.Join(AppConfigDir, "hotkeys.yaml")
	AppAliasesFile = filepath.Join(AppConfigDir, "aliases.yaml")
	AppMenuFile = filepath.Join(AppConfigDir, "menu.yaml")

	AppStoreDir = filepath.Join(AppDataDir, "store")
	AppExportsDir = filepath.Join(AppDataDir, "exports")
	AppLogFile = filepath.Join(AppStateDir, "vdash.log")
}

// InitLogLoc ensures the log directory exists
func InitLogLoc() error {
	return os.MkdirAll(filepath.Dir(AppLogFile), 0o700)
}
