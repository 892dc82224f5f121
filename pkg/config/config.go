// Package config loads and validates the firmware configuration
// file.
package config

import (
	"io/ioutil"

	"gopkg.in/yaml.v3"
)

// Config is the root of the configuration file.
type Config struct {
	Firmware FirmwareConfig `yaml:"firmware"`
}

// FirmwareConfig holds the runtime knobs of the simulated firmware.
type FirmwareConfig struct {
	PoolCapacity int  `yaml:"pool_capacity"`
	DebugMode    bool `yaml:"debug_mode"`

	UART      UARTConfig      `yaml:"uart"`
	SPI       SPIConfig       `yaml:"spi"`
	Transport TransportConfig `yaml:"transport"`
}

// UARTConfig configures the simulated UART.
type UARTConfig struct {
	BaudRate uint32 `yaml:"baud_rate"`
}

// SPIConfig configures the simulated SPI bus.
type SPIConfig struct {
	ClockHz uint32 `yaml:"clock_hz"`
	Mode    uint8  `yaml:"mode"`
}

// TransportConfig selects the outbound message transport. An empty
// MQTTURL keeps the default simulated transport.
type TransportConfig struct {
	MQTTURL string `yaml:"mqtt_url"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Firmware: FirmwareConfig{
			PoolCapacity: 1 << 20,
			UART:         UARTConfig{BaudRate: 115200},
			SPI:          SPIConfig{ClockHz: 1000000, Mode: 0},
		},
	}
}

// Load reads the YAML file at path on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
