package param

import (
	"fmt"
	"strconv"
	"strings"
)

// Common parameter formatters and parsers

// VoltageFormatter formats voltages with millivolt precision
func VoltageFormatter(v float64) string {
	return fmt.Sprintf("%.3f V", v)
}

// VoltageParser parses voltage strings, accepting V and mV
func VoltageParser(str string) (float64, error) {
	str = strings.TrimSpace(str)

	if strings.HasSuffix(str, "mV") {
		val, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(str, "mV")), 64)
		if err != nil {
			return 0, err
		}
		return val / 1000, nil
	}

	str = strings.TrimSuffix(strings.TrimSuffix(str, "V"), "v")
	return strconv.ParseFloat(strings.TrimSpace(str), 64)
}

// SecondsFormatter formats time values with appropriate units
func SecondsFormatter(s float64) string {
	if s < 1 {
		return fmt.Sprintf("%.1f ms", s*1000)
	}
	return fmt.Sprintf("%.2f s", s)
}

// SecondsParser parses time strings into seconds
func SecondsParser(str string) (float64, error) {
	str = strings.TrimSpace(strings.ToLower(str))

	if strings.HasSuffix(str, "ms") {
		val, err := parseFloat(strings.TrimSpace(strings.TrimSuffix(str, "ms")))
		if err != nil {
			return 0, err
		}
		return val / 1000, nil
	}

	str = strings.TrimSuffix(str, "s")
	return parseFloat(strings.TrimSpace(str))
}

// PercentFormatter formats percentage values
func PercentFormatter(value float64) string {
	return fmt.Sprintf("%.1f%%", value)
}

// PercentParser parses percentage strings
func PercentParser(str string) (float64, error) {
	str = strings.TrimSuffix(strings.TrimSpace(str), "%")
	return strconv.ParseFloat(strings.TrimSpace(str), 64)
}

// OnOffFormatter formats boolean as On/Off
func OnOffFormatter(value float64) string {
	if value > 0.5 {
		return "On"
	}
	return "Off"
}

// OnOffParser parses On/Off strings
func OnOffParser(str string) (float64, error) {
	str = strings.ToLower(strings.TrimSpace(str))
	switch str {
	case "on", "yes", "true", "1":
		return 1, nil
	case "off", "no", "false", "0":
		return 0, nil
	default:
		return 0, fmt.Errorf("expected 'on' or 'off', got: %s", str)
	}
}
