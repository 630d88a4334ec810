package config

import (
	"sync"

	"github.com/spf13/viper"
)

var configMutex sync.Mutex

// UpdateDisplaySettings updates the default chart direction and saves to file
func (c *Config) UpdateDisplaySettings(rtl bool) error {
	configMutex.Lock()
	defer configMutex.Unlock()

	c.Display.RTL = rtl
	viper.Set("display.rtl", rtl)

	if viper.ConfigFileUsed() == "" {
		// Not file backed (defaults or tests)
		return nil
	}
	return viper.WriteConfig()
}

// DisplaySettings returns a consistent copy of the display settings
func (c *Config) DisplaySettings() DisplayConfig {
	configMutex.Lock()
	defer configMutex.Unlock()
	return c.Display
}
