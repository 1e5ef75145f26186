package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/alexisbeaulieu97/unitconv/internal/config"
	"github.com/alexisbeaulieu97/unitconv/internal/conversion"
	"github.com/alexisbeaulieu97/unitconv/internal/logger"
	"github.com/alexisbeaulieu97/unitconv/internal/registry"
)

var (
	appLogger     *logger.Logger
	appLogOptions logger.Options
)

// setAppLogger installs the startup logger and the options it was built with, so a
// config asking for another output format can rebuild it with the same writer.
func setAppLogger(log *logger.Logger, opts logger.Options) {
	appLogger = log
	appLogOptions = opts
}

// AppContext bundles long-lived services created before a command runs.
type AppContext struct {
	Config  *config.Config
	Service *conversion.Service
	Prefs   *registry.PreferenceStore
	Logger  *logger.Logger
}

func (a *AppContext) init(flags *rootFlags) error {
	cfg, path, err := loadConfig(flags.configPath)
	if err != nil {
		return newCommandError("load configuration", path, err, "Fix the reported field or pass a different file with --config.")
	}

	log, err := configuredLogger(cfg.Logging)
	if err != nil {
		return newCommandError("load configuration", "creating logger", err, "Check the logging section of the configuration.")
	}

	log = log.WithFields(map[string]any{"config": path})
	level := cfg.Logging.Level
	if flags.verbose {
		level = "debug"
	}
	if level != "" {
		if err := log.SetLevel(level); err != nil {
			return newCommandError("load configuration", "setting log level", err, "Use one of trace, debug, info, warn or error.")
		}
	}
	log.Debug("configuration loaded", "systems", len(cfg.Systems))

	reg := registry.NewDefault()
	service := conversion.NewService(reg)
	for _, sys := range cfg.UnitSystems() {
		if err := service.RegisterSystem(sys); err != nil {
			return newCommandError("load configuration", fmt.Sprintf("registering unit system %s", sys.ID), err, "Choose a unique system id and supported relative units.")
		}
		log.Debug("unit system registered", "system", sys.ID, "internal_unit", sys.InternalUnit, "units", len(sys.Units))
	}
	reg.Freeze()
	log.Debug("registry frozen", "systems", len(reg.List()))

	if err := checkDefaults(service, cfg.Defaults); err != nil {
		return newCommandError("load configuration", "checking defaults", err, "Point defaults.system and defaults.unit at a registered system and unit.")
	}

	prefsPath, err := defaultPreferencesPath()
	if err != nil {
		return newCommandError("load preferences", "determining preferences path", err, "Ensure your HOME directory is set correctly.")
	}
	prefs, err := registry.NewPreferenceStore(prefsPath)
	if err != nil {
		return newCommandError("load preferences", prefsPath, err, "Check preferences file permissions or delete the file to reset it.")
	}

	a.Config = cfg
	a.Service = service
	a.Prefs = prefs
	a.Logger = log
	return nil
}

// configuredLogger returns the startup logger, rebuilt with the same writer when the
// config turns off human readable output.
func configuredLogger(cfg config.Logging) (*logger.Logger, error) {
	if appLogger == nil {
		return logger.Nop(), nil
	}
	if cfg.HumanReadableLogs() == appLogOptions.HumanReadable {
		return appLogger, nil
	}

	opts := appLogOptions
	opts.HumanReadable = cfg.HumanReadableLogs()
	return logger.New(opts)
}

// loadConfig reads the given file, or the default file when path is empty. A missing
// default file yields the built-in defaults.
func loadConfig(path string) (*config.Config, string, error) {
	explicit := path != ""
	if !explicit {
		defaultPath, err := defaultConfigPath()
		if err != nil {
			return config.Default(), "", nil
		}
		path = defaultPath
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) && !explicit {
		return config.Default(), path, nil
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

func checkDefaults(service *conversion.Service, defaults config.Defaults) error {
	if defaults.System == "" {
		return nil
	}
	if _, ok := service.GetSystem(defaults.System); !ok {
		return fmt.Errorf("unit system %q is not registered", defaults.System)
	}
	if defaults.Unit != "" && !service.ValidateUnit(defaults.System, defaults.Unit) {
		return fmt.Errorf("unit %q is not part of system %q", defaults.Unit, defaults.System)
	}
	return nil
}

// resolveSystem picks the requested system, the configured default, or length.
func (a *AppContext) resolveSystem(requested string) string {
	if requested != "" {
		return requested
	}
	if a.Config != nil && a.Config.Defaults.System != "" {
		return a.Config.Defaults.System
	}
	return registry.SystemLength
}

// preferredUnit returns the stored preference, the configured default unit, or the
// system's internal unit.
func (a *AppContext) preferredUnit(systemID string) string {
	if unit, ok := a.Prefs.Get(systemID); ok && a.Service.ValidateUnit(systemID, unit) {
		return unit
	}
	if a.Config.Defaults.System == systemID && a.Config.Defaults.Unit != "" {
		return a.Config.Defaults.Unit
	}
	sys, _ := a.Service.GetSystem(systemID)
	return sys.InternalUnit
}
