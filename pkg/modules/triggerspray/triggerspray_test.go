package triggerspray

import (
	"testing"

	"github.com/grough/lilac-modules-vcv/pkg/framework/port"
)

func TestZeroDelayFiresAllLanes(t *testing.T) {
	m := New()
	ctx := m.NewContext(1000)
	out := m.Output(OutputTrigger)
	out.Connect()

	m.Input(InputTrigger).Feed(10)
	m.Process(ctx)
	if out.Channels() != port.MaxChannels {
		t.Fatalf("Channels = %d, want %d", out.Channels(), port.MaxChannels)
	}

	m.Process(ctx)
	for c := 0; c < port.MaxChannels; c++ {
		if out.Voltage(c) != 10 {
			t.Errorf("Lane %d = %f one sample after the trigger, want 10", c, out.Voltage(c))
		}
	}
}

func TestDelayScaledByInput(t *testing.T) {
	tests := []struct {
		name  string
		input []float32
		limit float32
	}{
		{"unpatched", nil, 0.5},
		{"half", []float32{5}, 0.25},
		{"zero", []float32{0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New()
			m.Burst().Seed(7)
			m.Parameters().Get(ParamDelayTime).SetPlainValue(0.5)
			m.Input(InputDelayTime).Feed(tt.input...)
			m.Input(InputTrigger).Feed(10)

			m.Process(m.NewContext(1000))

			for c := 0; c < port.MaxChannels; c++ {
				d := m.Burst().Delay(c)
				if d < 0 || d > tt.limit {
					t.Errorf("Lane %d delay = %f, want within [0, %f]", c, d, tt.limit)
				}
			}
		})
	}
}

func TestHeldTriggerFiresOnce(t *testing.T) {
	m := New()
	ctx := m.NewContext(1000)
	m.Parameters().Get(ParamDelayTime).SetPlainValue(1)
	m.Input(InputTrigger).Feed(10)
	m.Process(ctx)

	first := m.Burst().Delay(0)
	for i := 0; i < 10; i++ {
		m.Process(ctx)
	}
	if m.Burst().Delay(0) != first {
		t.Error("Holding the trigger redrew the delays")
	}
}
