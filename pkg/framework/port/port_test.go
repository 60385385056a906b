package port

import (
	"testing"
)

func TestDisconnectedPort(t *testing.T) {
	var p Port

	if p.IsConnected() {
		t.Error("Expected new port to be disconnected")
	}
	if p.Channels() != 0 {
		t.Errorf("Expected 0 channels, got %d", p.Channels())
	}
	if v := p.Voltage(0); v != 0 {
		t.Errorf("Expected 0 V, got %f", v)
	}

	// Outputs without a cable ignore channel changes
	p.SetChannels(4)
	if p.Channels() != 0 {
		t.Errorf("Expected disconnected port to stay at 0 channels, got %d", p.Channels())
	}
}

func TestSetChannels(t *testing.T) {
	t.Run("ClampsToRange", func(t *testing.T) {
		var p Port
		p.Connect()

		p.SetChannels(40)
		if p.Channels() != MaxChannels {
			t.Errorf("Expected %d channels, got %d", MaxChannels, p.Channels())
		}

		p.SetChannels(0)
		if p.Channels() != 1 {
			t.Errorf("Expected connected port to keep 1 channel, got %d", p.Channels())
		}
	})

	t.Run("ZeroesDroppedLanes", func(t *testing.T) {
		var p Port
		p.Feed(1, 2, 3, 4)
		p.SetChannels(2)
		p.SetChannels(4)

		if p.Voltage(2) != 0 || p.Voltage(3) != 0 {
			t.Errorf("Expected dropped lanes to be zeroed, got %v", p.Lanes())
		}
		if p.Voltage(1) != 2 {
			t.Errorf("Expected lane 1 to survive, got %f", p.Voltage(1))
		}
	})
}

func TestPolyVoltage(t *testing.T) {
	var mono, poly Port
	mono.Feed(3.5)
	poly.Feed(1, 2, 3)

	for c := 0; c < MaxChannels; c++ {
		if v := mono.PolyVoltage(c); v != 3.5 {
			t.Errorf("Mono lane %d: expected broadcast 3.5, got %f", c, v)
		}
	}

	if v := poly.PolyVoltage(2); v != 3 {
		t.Errorf("Expected 3, got %f", v)
	}
	if v := poly.PolyVoltage(5); v != 0 {
		t.Errorf("Expected unused poly lane to read 0, got %f", v)
	}
}

func TestFeed(t *testing.T) {
	var p Port
	p.Feed(1, -1, 2)

	if !p.IsConnected() || !p.IsPolyphonic() || p.IsMonophonic() {
		t.Error("Expected connected polyphonic port")
	}
	if sum := p.VoltageSum(); sum != 2 {
		t.Errorf("Expected sum 2, got %f", sum)
	}

	p.Feed()
	if p.IsConnected() || p.Channels() != 0 {
		t.Error("Expected empty feed to disconnect the port")
	}

	lanes := make([]float32, 20)
	p.Feed(lanes...)
	if p.Channels() != MaxChannels {
		t.Errorf("Expected feed to cap at %d lanes, got %d", MaxChannels, p.Channels())
	}
}

func TestOutOfRangeLanes(t *testing.T) {
	var p Port
	p.SetVoltage(-1, 5)
	p.SetVoltage(MaxChannels, 5)

	if p.Voltage(-1) != 0 || p.Voltage(MaxChannels) != 0 {
		t.Error("Expected out of range lanes to read 0")
	}
}
