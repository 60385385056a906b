package spray

import (
	"testing"

	"github.com/grough/lilac-modules-vcv/pkg/framework/process"
)

func run(m *Spray, ctx *process.Context, samples int) {
	for i := 0; i < samples; i++ {
		m.Process(ctx)
	}
}

func TestVoicesReadPeriodically(t *testing.T) {
	m := New()
	ctx := m.NewContext(48000)
	out := m.Output(OutputTrigger)
	out.Connect()
	m.Parameters().Get(ParamVoices).SetPlainValue(9)

	run(m, ctx, ParamDivision-1)
	if m.Voices() != DefaultVoices {
		t.Errorf("Voices = %d before the divider fires, want %d", m.Voices(), DefaultVoices)
	}

	run(m, ctx, 1)
	if m.Voices() != 9 {
		t.Errorf("Voices = %d, want 9", m.Voices())
	}
	if out.Channels() != 9 {
		t.Errorf("Channels = %d, want 9", out.Channels())
	}
}

func TestFiresOnlyActiveVoices(t *testing.T) {
	m := New()
	ctx := m.NewContext(1000)
	out := m.Output(OutputTrigger)
	out.Connect()

	m.Input(InputTrigger).Feed(5, 5)
	run(m, ctx, 1)
	run(m, ctx, 1)

	for c := 0; c < DefaultVoices; c++ {
		if out.Voltage(c) != 10 {
			t.Errorf("Voice %d = %f, want 10", c, out.Voltage(c))
		}
	}
	if m.Burst().Armed(DefaultVoices) || out.Voltage(DefaultVoices) != 0 {
		t.Error("A voice beyond the count fired")
	}
}

func TestSummedTrigger(t *testing.T) {
	m := New()
	ctx := m.NewContext(1000)
	m.Parameters().Get(ParamDelayTime).SetPlainValue(1)

	m.Input(InputTrigger).Feed(5, -5)
	run(m, ctx, 1)
	if m.Burst().Armed(0) {
		t.Fatal("Fired on a zero-sum trigger")
	}

	m.Input(InputTrigger).Feed(5, -4)
	run(m, ctx, 1)
	if !m.Burst().Armed(0) {
		t.Error("Did not fire on a positive sum")
	}
}

func TestReset(t *testing.T) {
	m := New()
	ctx := m.NewContext(48000)
	m.Parameters().Get(ParamVoices).SetPlainValue(12)
	run(m, ctx, ParamDivision)

	m.Reset()
	if m.Voices() != DefaultVoices {
		t.Errorf("Voices = %d after reset, want %d", m.Voices(), DefaultVoices)
	}
	if got := m.Parameters().Get(ParamVoices).GetPlainValue(); got != DefaultVoices {
		t.Errorf("Voices knob = %f after reset, want %d", got, DefaultVoices)
	}
}
