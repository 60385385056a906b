package pitchgate

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/grough/lilac-modules-vcv/pkg/framework/debug"
)

const sampleRate = 48000

func TestLanePeriod(t *testing.T) {
	tests := []struct {
		name  string
		volts float32
	}{
		{"C4", 0},
		{"C5", 1},
		{"C3", -1},
		{"A4", 0.75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var l Lane
			dt := float32(1.0 / sampleRate)

			open := 0
			if l.Process(dt, tt.volts, 10) {
				open++
			}
			for i := 0; i < sampleRate/10; i++ {
				if l.Process(dt, tt.volts, 10) {
					open++
				}
			}

			period := 1 / (261.6256 * math.Exp2(float64(tt.volts)))
			want := period * sampleRate
			if math.Abs(float64(open)-want) > 2 {
				t.Errorf("Open for %d samples, want about %.1f", open, want)
			}
		})
	}
}

func TestLaneNeedsRearm(t *testing.T) {
	var l Lane
	dt := float32(1.0 / sampleRate)
	l.Process(dt, 0, 10)
	for i := 0; i < sampleRate/100; i++ {
		l.Process(dt, 0, 10)
	}
	if l.Process(dt, 0, 10) {
		t.Fatal("Held trigger kept the gate open")
	}

	l.Process(dt, 0, 0)
	if !l.Process(dt, 0, 10) {
		t.Error("Gate did not reopen after the trigger fell and rose")
	}
}

func TestBothSections(t *testing.T) {
	m := New()
	ctx := m.NewContext(sampleRate)
	m.Output(OutputGate1).Connect()
	m.Output(OutputGate2).Connect()

	m.Input(InputPitch1).Feed(0, 0)
	m.Input(InputTrig1).Feed(0, 0)
	m.Input(InputPitch2).Feed(1)
	m.Input(InputTrig2).Feed(0)
	for i := 0; i < ChannelDivision; i++ {
		m.Process(ctx)
	}
	if m.Channels(0) != 2 || m.Channels(1) != 1 {
		t.Fatalf("Channels = %d, %d, want 2, 1", m.Channels(0), m.Channels(1))
	}

	m.Input(InputTrig1).Feed(0, 10)
	m.Input(InputTrig2).Feed(10)
	m.Process(ctx)

	g1, g2 := m.Output(OutputGate1), m.Output(OutputGate2)
	if g1.Voltage(0) != 0 || g1.Voltage(1) != 10 {
		t.Errorf("Gate 1 = [%f %f], want [0 10]", g1.Voltage(0), g1.Voltage(1))
	}
	if g2.Voltage(0) != 10 {
		t.Errorf("Gate 2 = %f, want 10", g2.Voltage(0))
	}
	if g1.Channels() != 2 {
		t.Errorf("Gate 1 channels = %d, want 2", g1.Channels())
	}
}

func TestUnpatchedSectionGoesIdle(t *testing.T) {
	m := New()
	ctx := m.NewContext(sampleRate)
	for i := 0; i < ChannelDivision; i++ {
		m.Process(ctx)
	}
	if m.Channels(0) != 0 {
		t.Errorf("Channels = %d with nothing patched, want 0", m.Channels(0))
	}

	m.Reset()
	if m.Channels(0) != 1 {
		t.Errorf("Channels = %d after reset, want 1", m.Channels(0))
	}
}

func TestPeriodicLog(t *testing.T) {
	var buf bytes.Buffer
	m := New()
	m.SetLogger(debug.New(&buf, "pitchgate", 0))
	m.Logger().SetLevel(debug.LogLevelDebug)

	ctx := m.NewContext(sampleRate)
	for i := 0; i < 2*LogDivision; i++ {
		m.Process(ctx)
	}
	if got := strings.Count(buf.String(), "gate channels="); got != 2 {
		t.Errorf("Logged %d reports, want 2:\n%s", got, buf.String())
	}
}
