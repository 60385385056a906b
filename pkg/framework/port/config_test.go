package port

import (
	"testing"
)

func TestBuilder(t *testing.T) {
	t.Run("AssignsIDsInOrder", func(t *testing.T) {
		config, err := NewBuilder().
			Input("Rate").
			Input("Reset").
			Output("Sum").
			Build()
		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}

		if config.Count(DirectionInput) != 2 {
			t.Errorf("Expected 2 inputs, got %d", config.Count(DirectionInput))
		}
		if config.Count(DirectionOutput) != 1 {
			t.Errorf("Expected 1 output, got %d", config.Count(DirectionOutput))
		}

		reset := config.Info(DirectionInput, 1)
		if reset == nil || reset.Name != "Reset" || reset.ID != 1 {
			t.Errorf("Unexpected input info: %+v", reset)
		}

		if id, ok := config.Lookup(DirectionOutput, "Sum"); !ok || id != 0 {
			t.Errorf("Expected Sum at 0, got %d (%v)", id, ok)
		}
		if _, ok := config.Lookup(DirectionInput, "Missing"); ok {
			t.Error("Expected lookup of unknown port to fail")
		}
		if config.Info(DirectionOutput, 3) != nil {
			t.Error("Expected nil info for unknown port")
		}
	})

	t.Run("RejectsDuplicates", func(t *testing.T) {
		_, err := NewBuilder().Input("A").Input("A").Build()
		if err == nil {
			t.Error("Expected duplicate input to fail")
		}

		// The same name may be used once per direction
		if _, err := NewBuilder().Input("A").Output("A").Build(); err != nil {
			t.Errorf("Expected input and output to share a name: %v", err)
		}
	})
}

func TestAllocate(t *testing.T) {
	config := NewBuilder().Input("In").Output("Out 1").Output("Out 2").MustBuild()
	inputs, outputs := config.Allocate()

	if len(inputs) != 1 || len(outputs) != 2 {
		t.Fatalf("Expected 1 input and 2 outputs, got %d and %d", len(inputs), len(outputs))
	}
	if outputs[0] == outputs[1] {
		t.Error("Expected distinct port instances")
	}
}
