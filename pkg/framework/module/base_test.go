package module

import (
	"bytes"
	"strings"
	"testing"

	"github.com/grough/lilac-modules-vcv/pkg/framework/debug"
	"github.com/grough/lilac-modules-vcv/pkg/framework/param"
	"github.com/grough/lilac-modules-vcv/pkg/framework/port"
)

func TestInfoValidate(t *testing.T) {
	tests := []struct {
		name    string
		slug    string
		wantErr bool
	}{
		{"Simple", "Accumulator", false},
		{"With dash and digits", "Trigger-Spray_2", false},
		{"Empty", "", true},
		{"Space", "Pitch Gate", true},
		{"Slash", "lilac/Rounder", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Info{Slug: tt.slug}.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate(%q) error = %v, wantErr %v", tt.slug, err, tt.wantErr)
			}
		})
	}
}

func TestInfoDisplayName(t *testing.T) {
	if (Info{Slug: "Rounder"}).DisplayName() != "Rounder" {
		t.Error("Should fall back to slug")
	}
	if (Info{Slug: "Rounder", Name: "Round"}).DisplayName() != "Round" {
		t.Error("Should prefer name")
	}
}

func TestBase(t *testing.T) {
	ports := port.NewBuilder().
		Input("In").
		Input("Reset").
		Output("Out").
		MustBuild()

	b := NewBase(Info{Slug: "Test"}, ports, 2)

	if len(b.Inputs()) != 2 || len(b.Outputs()) != 1 {
		t.Fatalf("Allocated %d inputs and %d outputs, want 2 and 1", len(b.Inputs()), len(b.Outputs()))
	}
	if b.Input(1) != b.Inputs()[1] || b.Input(5) != nil || b.Output(-1) != nil {
		t.Error("Port lookup mismatch")
	}

	b.SetLight(1, 0.5)
	b.SetLight(9, 1)
	if b.Light(1) != 0.5 || b.Light(9) != 0 {
		t.Error("Light access mismatch")
	}

	if err := b.Parameters().Add(param.New(0, "Knob").Range(0, 10).Default(5).Build()); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	b.Parameters().Get(0).SetPlainValue(8)
	b.ResetParameters()
	if got := b.Parameters().Get(0).GetPlainValue(); got != 5 {
		t.Errorf("ResetParameters left %f, want 5", got)
	}

	ctx := b.NewContext(48000)
	if ctx.Input(0) != b.Inputs()[0] {
		t.Error("Context should share the module's ports")
	}
	if ctx.Param(0) != 5 {
		t.Errorf("Context param = %f, want 5", ctx.Param(0))
	}
}

func TestBaseLogger(t *testing.T) {
	b := NewBase(Info{Slug: "Counter"}, nil, 0)
	if !strings.HasSuffix(b.Logger().Prefix(), "Counter") {
		t.Errorf("Logger prefix %q should end with the slug", b.Logger().Prefix())
	}

	var buf bytes.Buffer
	b.SetLogger(debug.New(&buf, "custom", debug.FlagPrefix))
	b.Logger().Info("hello")
	if !strings.Contains(buf.String(), "[custom] hello") {
		t.Errorf("Unexpected output %q", buf.String())
	}
}
