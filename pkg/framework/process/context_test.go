package process

import (
	"math"
	"testing"

	"github.com/grough/lilac-modules-vcv/pkg/framework/param"
	"github.com/grough/lilac-modules-vcv/pkg/framework/port"
)

func newTestContext(t *testing.T) *Context {
	t.Helper()

	registry := param.NewRegistry()
	if err := registry.Add(
		param.VoltageParameter(0, "Level", -10, 10, 0).Build(),
		param.SwitchParameter(1, "Mode").Build(),
	); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	inputs := []*port.Port{{}, {}}
	outputs := []*port.Port{{}}
	return NewContext(44100, registry, inputs, outputs)
}

func TestContextSampleRate(t *testing.T) {
	ctx := newTestContext(t)
	if ctx.SampleRate != 44100 {
		t.Errorf("SampleRate = %f, want 44100", ctx.SampleRate)
	}
	if math.Abs(float64(ctx.SampleTime)-1.0/44100.0) > 1e-9 {
		t.Errorf("SampleTime = %g, want %g", ctx.SampleTime, 1.0/44100.0)
	}

	ctx.SetSampleRate(0)
	if ctx.SampleRate != DefaultSampleRate {
		t.Errorf("Invalid rate should fall back to default, got %f", ctx.SampleRate)
	}
}

func TestContextParams(t *testing.T) {
	ctx := newTestContext(t)

	if got := ctx.Param(0); got != 0 {
		t.Errorf("Default voltage = %f, want 0", got)
	}
	ctx.Params().Get(0).SetPlainValue(2.5)
	if got := ctx.Param(0); math.Abs(float64(got)-2.5) > 1e-5 {
		t.Errorf("Param = %f, want 2.5", got)
	}

	if ctx.ParamBool(1) {
		t.Error("Switch should start off")
	}
	ctx.Params().Get(1).SetValue(1)
	if !ctx.ParamBool(1) {
		t.Error("Switch should be on")
	}

	if ctx.Param(99) != 0 || ctx.ParamNormalized(99) != 0 {
		t.Error("Unknown parameter should read 0")
	}
}

func TestContextPorts(t *testing.T) {
	ctx := newTestContext(t)

	ctx.Input(1).Feed(1, 2, 3)
	if ctx.Inputs[1].Channels() != 3 {
		t.Error("Input should return the configured port")
	}

	// Out of range IDs are harmless
	ghost := ctx.Output(7)
	ghost.SetVoltage(0, 5)
	if ctx.Input(-1).Voltage(0) != 0 || ctx.Input(-1).IsConnected() {
		t.Error("Unknown input should read as unpatched")
	}

	ctx.Output(0).Connect()
	ctx.Output(0).SetChannels(2)
	ctx.Output(0).SetVoltage(1, 4)
	ctx.ClearOutputs()
	if ctx.Output(0).Voltage(1) != 0 || ctx.Output(0).Channels() != 2 {
		t.Error("ClearOutputs should zero lanes and keep width")
	}
}

func TestContextClock(t *testing.T) {
	ctx := newTestContext(t)
	for i := 0; i < 44100; i++ {
		ctx.Advance()
	}
	if ctx.Frame != 44100 {
		t.Errorf("Frame = %d, want 44100", ctx.Frame)
	}
	if math.Abs(ctx.Time()-1.0) > 1e-9 {
		t.Errorf("Time = %f, want 1", ctx.Time())
	}
}
