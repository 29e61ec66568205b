package particles

import (
	"reflect"
	"time"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"github.com/TheBitDrifter/particles/internal/statsd"
)

// StageFunc mutates the world using values read from the resource table.
type StageFunc func(w *World, res *Resources)

// Stage is one step of a pipeline together with what it touches.
type Stage struct {
	Name      string
	Reads     []Component
	Writes    []Component
	Resources []reflect.Type
	Run       StageFunc
}

// PipelineState is either Built or Executing.
type PipelineState int

const (
	PipelineBuilt PipelineState = iota
	PipelineExecuting
)

func (s PipelineState) String() string {
	if s == PipelineExecuting {
		return "executing"
	}
	return "built"
}

// Pipeline runs a fixed list of stages in declaration order, once per Execute.
// The stage list cannot change after Build.
type Pipeline struct {
	stages    Cache[Stage]
	executing bool
	logger    zerolog.Logger
}

type PipelineBuilder struct {
	stages []Stage
	logger *zerolog.Logger
}

func newPipelineBuilder() *PipelineBuilder {
	return &PipelineBuilder{}
}

// Add appends stages; they run in the order added.
func (b *PipelineBuilder) Add(stages ...Stage) *PipelineBuilder {
	b.stages = append(b.stages, stages...)
	return b
}

func (b *PipelineBuilder) WithLogger(logger zerolog.Logger) *PipelineBuilder {
	b.logger = &logger
	return b
}

func (b *PipelineBuilder) Build() (*Pipeline, error) {
	stages := FactoryNewCache[Stage](len(b.stages))
	for _, stage := range b.stages {
		if stage.Name == "" {
			return nil, eris.New("stage name must not be empty")
		}
		if stage.Run == nil {
			return nil, eris.Errorf("stage %q has no run function", stage.Name)
		}
		if _, err := stages.Register(stage.Name, stage); err != nil {
			return nil, eris.Wrapf(err, "failed to register stage %q", stage.Name)
		}
	}

	logger := Config.Logger()
	if b.logger != nil {
		logger = *b.logger
	}
	p := &Pipeline{
		stages: stages,
		logger: logger,
	}
	p.logger.Debug().Int("total_stages", stages.Len()).Strs("stages", p.Stages()).Msg("pipeline built")
	return p, nil
}

// Stages returns the stage names in execution order.
func (p *Pipeline) Stages() []string {
	names := make([]string, p.stages.Len())
	for i := range names {
		names[i] = p.stages.GetItem(i).Name
	}
	return names
}

func (p *Pipeline) State() PipelineState {
	if p.executing {
		return PipelineExecuting
	}
	return PipelineBuilt
}

// Execute runs every stage exactly once, in order, against the same world and
// resources. A stage whose declared components or resources are absent panics
// before it runs.
func (p *Pipeline) Execute(w *World, res *Resources) {
	if p.executing {
		panic(ReentrantExecutionError{})
	}
	p.executing = true
	defer func() { p.executing = false }()

	allStagesStart := time.Now()
	for i := 0; i < p.stages.Len(); i++ {
		stage := p.stages.GetItem(i)
		if err := stage.check(w, res); err != nil {
			panic(err)
		}

		stageStart := time.Now()
		stage.Run(w, res)
		statsd.EmitStageStat(stageStart, stage.Name)
		p.logger.Trace().Str("stage", stage.Name).Dur("took", time.Since(stageStart)).Msg("stage done")
	}
	statsd.EmitStageStat(allStagesStart, "all_stages")
}

func (s *Stage) check(w *World, res *Resources) error {
	for _, group := range [][]Component{s.Reads, s.Writes} {
		for _, c := range group {
			if !w.Registered(c) {
				return StageContractError{Stage: s.Name, Component: kindName(c)}
			}
		}
	}
	for _, t := range s.Resources {
		if !res.Has(t) {
			return MissingResourceError{Type: t}
		}
	}
	return nil
}
