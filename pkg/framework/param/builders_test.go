package param

import (
	"math"
	"testing"
)

func TestVoltageParameter(t *testing.T) {
	param := VoltageParameter(1, "A", -10, 10, 0).Build()

	if got := param.GetPlainValue(); got != 0 {
		t.Errorf("Expected default 0 V, got %f", got)
	}

	tests := []struct {
		input    string
		expected float64
	}{
		{"5", 5},
		{"-2.5 V", -2.5},
		{"250 mV", 0.25},
	}

	for _, test := range tests {
		normalized, err := param.ParseValue(test.input)
		if err != nil {
			t.Errorf("ParseValue(%s) error: %v", test.input, err)
			continue
		}
		if plain := param.Denormalize(normalized); math.Abs(plain-test.expected) > 1e-9 {
			t.Errorf("ParseValue(%s) = %f, want %f", test.input, plain, test.expected)
		}
	}

	if s := param.FormatValue(0.75); s != "5.000 V" {
		t.Errorf("FormatValue(0.75) = %s, want 5.000 V", s)
	}
}

func TestCountParameter(t *testing.T) {
	param := CountParameter(2, "Count", 1, 128, 5).Build()

	if got := param.GetPlainValue(); got != 5 {
		t.Errorf("Expected default 5, got %f", got)
	}

	param.SetPlainValue(7.4)
	if got := param.GetPlainValue(); got != 7 {
		t.Errorf("Expected snapped 7, got %f", got)
	}

	param.SetPlainValue(500)
	if got := param.GetPlainValue(); got != 128 {
		t.Errorf("Expected clamped 128, got %f", got)
	}
}

func TestTimeParameter(t *testing.T) {
	param := TimeParameter(3, "Max time", 0, 1, 0).Build()

	tests := []struct {
		plain    float64
		expected string
	}{
		{0.25, "250.0 ms"},
		{1, "1.00 s"},
	}
	for _, test := range tests {
		if s := param.FormatValue(param.Normalize(test.plain)); s != test.expected {
			t.Errorf("FormatValue(%f) = %s, want %s", test.plain, s, test.expected)
		}
	}

	normalized, err := param.ParseValue("500ms")
	if err != nil {
		t.Fatalf("ParseValue error: %v", err)
	}
	if plain := param.Denormalize(normalized); math.Abs(plain-0.5) > 1e-9 {
		t.Errorf("Expected 0.5 s, got %f", plain)
	}
}

func TestButtonParameter(t *testing.T) {
	param := ButtonParameter(4, "Reset").Build()

	if param.Flags&IsMomentary == 0 {
		t.Error("Expected button to be momentary")
	}
	if param.FormatValue(1) != "On" || param.FormatValue(0) != "Off" {
		t.Error("Expected On/Off formatting")
	}
}
