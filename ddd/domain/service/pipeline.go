package service

import (
	"context"

	"encode-service/ddd/domain/vo"
)

// pipelineStep is one named processing step scheduled against a source file.
type pipelineStep struct {
	name string
	run  func(ctx context.Context, enc *Encoder) error
}

// Pipeline collects named processing steps and runs them in registration
// order against one encoder. It is the declarative surface over the two
// encode operations.
type Pipeline struct {
	steps []pipelineStep
}

// EncodeStep schedules the primary encode of format. A nil options value
// means an empty configuration.
func (p *Pipeline) EncodeStep(format string, opts *vo.EncodeOptions) *Pipeline {
	if opts == nil {
		opts = &vo.EncodeOptions{}
	}
	p.steps = append(p.steps, pipelineStep{
		name: "encode_" + format,
		run: func(ctx context.Context, enc *Encoder) error {
			_, err := enc.Encode(ctx, format, opts)
			return err
		},
	})
	return p
}

// EncodeAlternateStep schedules the alternate-container encode. A nil
// options value means an empty configuration.
func (p *Pipeline) EncodeAlternateStep(opts *vo.EncodeOptions) *Pipeline {
	if opts == nil {
		opts = &vo.EncodeOptions{}
	}
	p.steps = append(p.steps, pipelineStep{
		name: "encode_" + AlternateContainerExt,
		run: func(ctx context.Context, enc *Encoder) error {
			_, err := enc.EncodeAlternate(ctx, opts)
			return err
		},
	})
	return p
}

// StepNames lists the registered steps in order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, 0, len(p.steps))
	for _, s := range p.steps {
		names = append(names, s.name)
	}
	return names
}

// Run executes the registered steps in order, stopping at the first failure.
func (p *Pipeline) Run(ctx context.Context, enc *Encoder) error {
	for _, s := range p.steps {
		if err := s.run(ctx, enc); err != nil {
			return err
		}
	}
	return nil
}
