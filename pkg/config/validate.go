package config

import (
	"fmt"
	"net/url"
)

// Validate checks configuration correctness. It performs declarative
// validation only and MUST NOT mutate the configuration.
func Validate(cfg *Config) error {
	fw := &cfg.Firmware

	if fw.PoolCapacity <= 0 {
		return fmt.Errorf("pool_capacity must be positive, got %d", fw.PoolCapacity)
	}
	if fw.PoolCapacity%8 != 0 {
		return fmt.Errorf("pool_capacity must be a multiple of 8, got %d", fw.PoolCapacity)
	}

	if fw.UART.BaudRate == 0 {
		return fmt.Errorf("uart baud_rate must be positive")
	}

	if fw.SPI.ClockHz == 0 {
		return fmt.Errorf("spi clock_hz must be positive")
	}
	if fw.SPI.Mode > 3 {
		return fmt.Errorf("spi mode must be 0-3, got %d", fw.SPI.Mode)
	}

	if fw.Transport.MQTTURL != "" {
		if _, err := url.Parse(fw.Transport.MQTTURL); err != nil {
			return fmt.Errorf("transport mqtt_url: %v", err)
		}
	}

	return nil
}
