package param

import (
	"fmt"
	"strings"
)

// VoltageParameter creates a knob in volts
func VoltageParameter(id uint32, name string, min, max, defaultVal float64) *Builder {
	return New(id, name).
		Range(min, max).
		Default(defaultVal).
		Unit("V").
		Formatter(VoltageFormatter, VoltageParser)
}

// RateParameter creates a knob in volts per second
func RateParameter(id uint32, name string, min, max, defaultVal float64) *Builder {
	return New(id, name).
		Range(min, max).
		Default(defaultVal).
		Unit("V/s").
		Formatter(func(v float64) string {
			return fmt.Sprintf("%.2f V/s", v)
		}, func(s string) (float64, error) {
			s = strings.TrimSuffix(strings.TrimSpace(s), "V/s")
			return parseFloat(strings.TrimSpace(s))
		})
}

// TimeParameter creates a time knob in seconds
func TimeParameter(id uint32, name string, minS, maxS, defaultS float64) *Builder {
	return New(id, name).
		Range(minS, maxS).
		Default(defaultS).
		Unit("s").
		Formatter(SecondsFormatter, SecondsParser)
}

// CountParameter creates a whole-number knob
func CountParameter(id uint32, name string, min, max, defaultVal float64) *Builder {
	return New(id, name).
		Range(min, max).
		Default(defaultVal).
		Snap()
}

// LevelParameter creates a 0-1 level knob shown in percent
func LevelParameter(id uint32, name string, defaultVal float64) *Builder {
	return New(id, name).
		Range(0, 1).
		Default(defaultVal).
		Unit("%").
		Formatter(func(v float64) string {
			return PercentFormatter(v * 100)
		}, func(s string) (float64, error) {
			v, err := PercentParser(s)
			return v / 100, err
		})
}

// ButtonParameter creates a momentary push button
func ButtonParameter(id uint32, name string) *Builder {
	return New(id, name).Momentary()
}

// SwitchParameter creates a latching on/off switch
func SwitchParameter(id uint32, name string) *Builder {
	return New(id, name).Toggle()
}

// Helper function to parse float with error handling
func parseFloat(s string) (float64, error) {
	var value float64
	_, err := fmt.Sscanf(s, "%f", &value)
	if err != nil {
		return 0, fmt.Errorf("invalid number: %s", s)
	}
	return value, nil
}
