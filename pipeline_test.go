package particles

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestPipelineBuild(t *testing.T) {
	noop := func(*World, *Resources) {}

	tests := []struct {
		name    string
		stages  []Stage
		wantErr bool
		dupKey  bool
	}{
		{name: "empty pipeline", stages: nil},
		{name: "ordered stages", stages: []Stage{{Name: "a", Run: noop}, {Name: "b", Run: noop}}},
		{name: "empty name", stages: []Stage{{Run: noop}}, wantErr: true},
		{name: "nil run", stages: []Stage{{Name: "a"}}, wantErr: true},
		{name: "duplicate name", stages: []Stage{{Name: "a", Run: noop}, {Name: "a", Run: noop}}, wantErr: true, dupKey: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Factory.NewPipelineBuilder().Add(tt.stages...).Build()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Build error %v, wantErr %v", err, tt.wantErr)
			}
			if tt.dupKey && !errors.As(err, &DuplicateKeyError{}) {
				t.Errorf("duplicate stage error should wrap DuplicateKeyError: %v", err)
			}
			if err != nil {
				return
			}
			if len(p.Stages()) != len(tt.stages) {
				t.Errorf("Stages %v", p.Stages())
			}
			if p.State() != PipelineBuilt {
				t.Errorf("state %v, want built", p.State())
			}
		})
	}
}

func TestPipelineExecutesInOrder(t *testing.T) {
	k := newTestKinds()
	w := Factory.NewWorld(k.position, k.velocity)
	w.Extend(Bundle{k.position.Bind(Position{}), k.velocity.Bind(Velocity{X: 1, Y: 2})})
	res := Factory.NewResources()
	InsertResource(res, testTime{Elapsed: 0.5})

	var order []string
	var p *Pipeline
	record := func(name string) StageFunc {
		return func(*World, *Resources) {
			order = append(order, name)
			if p.State() != PipelineExecuting {
				t.Errorf("stage %s ran while state %v", name, p.State())
			}
		}
	}
	integrate := func(w *World, res *Resources) {
		dt := MustGetResource[testTime](res).Elapsed
		for pos, vel := range NewView2(w, k.position, k.velocity).IterMut() {
			pos.X += vel.X * dt
			pos.Y += vel.Y * dt
		}
		order = append(order, "integrate")
	}

	var err error
	p, err = Factory.NewPipelineBuilder().
		Add(Stage{Name: "first", Run: record("first")}).
		Add(Stage{
			Name:      "integrate",
			Reads:     []Component{k.velocity},
			Writes:    []Component{k.position},
			Resources: []reflect.Type{ResourceType[testTime]()},
			Run:       integrate,
		}).
		Add(Stage{Name: "last", Run: record("last")}).
		Build()
	if err != nil {
		t.Fatal(err)
	}

	p.Execute(w, res)
	p.Execute(w, res)

	want := []string{"first", "integrate", "last", "first", "integrate", "last"}
	if strings.Join(order, ",") != strings.Join(want, ",") {
		t.Errorf("order %v, want %v", order, want)
	}
	for pos := range NewView1(w, k.position).Iter() {
		if pos.X != 1 || pos.Y != 2 {
			t.Errorf("position %v, want {1 2}", *pos)
		}
	}
	if p.State() != PipelineBuilt {
		t.Errorf("state after execute %v", p.State())
	}
}

func TestPipelineContractViolations(t *testing.T) {
	k := newTestKinds()
	ran := false
	run := func(*World, *Resources) { ran = true }

	t.Run("unregistered component", func(t *testing.T) {
		p, _ := Factory.NewPipelineBuilder().
			Add(Stage{Name: "heal", Writes: []Component{k.health}, Run: run}).
			Build()
		err := expectPanic[StageContractError](t, func() {
			p.Execute(Factory.NewWorld(k.position), Factory.NewResources())
		})
		if err.Stage != "heal" || ran {
			t.Errorf("got %v, ran=%v", err, ran)
		}
		if p.State() != PipelineBuilt {
			t.Error("a panicking execute must leave the pipeline built")
		}
	})

	t.Run("missing resource", func(t *testing.T) {
		p, _ := Factory.NewPipelineBuilder().
			Add(Stage{Name: "tick", Resources: []reflect.Type{ResourceType[testTime]()}, Run: run}).
			Build()
		expectPanic[MissingResourceError](t, func() {
			p.Execute(Factory.NewWorld(), Factory.NewResources())
		})
		if ran {
			t.Error("stage ran despite a missing resource")
		}
	})

	t.Run("reentrant execute", func(t *testing.T) {
		var p *Pipeline
		w, res := Factory.NewWorld(), Factory.NewResources()
		p, _ = Factory.NewPipelineBuilder().
			Add(Stage{Name: "recurse", Run: func(w *World, res *Resources) { p.Execute(w, res) }}).
			Build()
		expectPanic[ReentrantExecutionError](t, func() { p.Execute(w, res) })
	})
}

func TestPipelineLogging(t *testing.T) {
	previous := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	t.Cleanup(func() { zerolog.SetGlobalLevel(previous) })

	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.TraceLevel)

	p, err := Factory.NewPipelineBuilder().
		WithLogger(logger).
		Add(Stage{Name: "only", Run: func(*World, *Resources) {}}).
		Build()
	if err != nil {
		t.Fatal(err)
	}
	p.Execute(Factory.NewWorld(), Factory.NewResources())

	out := buf.String()
	for _, want := range []string{`"message":"pipeline built"`, `"stage":"only"`} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %s:\n%s", want, out)
		}
	}
}
