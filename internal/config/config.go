package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type SPI struct {
	Bus     string `yaml:"bus"`      // e.g. /dev/spidev0.0, "" for the first bus
	SpeedHz int    `yaml:"speed_hz"` // e.g. 2500000
}

type Buttons struct {
	Chip       string `yaml:"chip"` // e.g. gpiochip0
	Left       int    `yaml:"left"`
	Center     int    `yaml:"center"`
	Right      int    `yaml:"right"`
	DebounceMs int    `yaml:"debounce_ms"`
}

type Buzzer struct {
	Pin string `yaml:"pin"` // periph pin name, e.g. GPIO38
}

type Eyes struct {
	Left  string `yaml:"left"` // periph pin names, e.g. GPIO21
	Right string `yaml:"right"`
}

type IMU struct {
	Bus     string `yaml:"bus"`      // periph I2C bus name, "" for the first
	ShakeMg int    `yaml:"shake_mg"` // shake threshold in milli-g
}

// Light is an ADS1015 converter carrying the light sensor.
type Light struct {
	Bus     string `yaml:"bus"`
	Addr    uint16 `yaml:"addr"`
	Channel int    `yaml:"channel"`
}

type Config struct {
	Driver     string  `yaml:"driver"` // "spi" | "pwm" | "console" | "sim"
	GPIO       int     `yaml:"gpio"`   // PWM data pin (BCM)
	ColorOrder string  `yaml:"color_order"`
	Wiring     string  `yaml:"wiring"` // serpentine | progressive | pixiboo
	Brightness float64 `yaml:"brightness"`
	FPS        int     `yaml:"fps"`

	SPI     SPI     `yaml:"spi,omitempty"`
	Buttons Buttons `yaml:"buttons,omitempty"`
	Buzzer  Buzzer  `yaml:"buzzer,omitempty"`
	Eyes    Eyes    `yaml:"eyes,omitempty"`
	IMU     IMU     `yaml:"imu,omitempty"`
	Light   Light   `yaml:"light,omitempty"`

	// Show names a sequencer program file (yaml) played by the "show" demo.
	Show string `yaml:"show,omitempty"`
}

// Default matches the Pixiboo board.
func Default() *Config {
	return &Config{
		Driver:     "sim",
		GPIO:       18,
		ColorOrder: "GRB",
		Wiring:     "pixiboo",
		Brightness: 0.2,
		FPS:        30,
		SPI:        SPI{SpeedHz: 2500000},
		Buttons: Buttons{
			Chip:       "gpiochip0",
			Left:       12,
			Center:     11,
			Right:      13,
			DebounceMs: 50,
		},
		Buzzer: Buzzer{Pin: "GPIO38"},
		Eyes:   Eyes{Left: "GPIO21", Right: "GPIO14"},
		IMU:    IMU{ShakeMg: 1500},
		Light:  Light{Addr: 0x48},
	}
}

// Load reads path over the defaults; keys missing from the file keep their
// default value.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, err
	}
	return c, nil
}

func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}
