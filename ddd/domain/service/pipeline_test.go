package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipelineStepNames(t *testing.T) {
	p := (&Pipeline{}).
		EncodeStep("webm", nil).
		EncodeStep("mp4", nil).
		EncodeAlternateStep(nil)

	assert.Equal(t, []string{"encode_webm", "encode_mp4", "encode_ogv"}, p.StepNames())
}

func TestPipelineRunsStepsInOrder(t *testing.T) {
	engine := &fakeEngine{}
	fs := &fakeFS{}
	tr := &fakeAlternate{}
	enc := newTestEncoder(engine, fs, &fakeAltFactory{tr: tr})

	p := (&Pipeline{}).
		EncodeStep("webm", nil).
		EncodeAlternateStep(nil)

	require.NoError(t, p.Run(context.Background(), enc))
	assert.Len(t, engine.invocations, 1)
	assert.Equal(t, 1, tr.runs)
}

func TestPipelineStopsAtFirstFailure(t *testing.T) {
	engine := &fakeEngine{transcodeErr: errors.New("exit status 1")}
	tr := &fakeAlternate{}
	enc := newTestEncoder(engine, &fakeFS{}, &fakeAltFactory{tr: tr})

	p := (&Pipeline{}).
		EncodeStep("webm", nil).
		EncodeAlternateStep(nil)

	err := p.Run(context.Background(), enc)
	require.Error(t, err)

	var perr *ProcessingError
	assert.ErrorAs(t, err, &perr)
	assert.Equal(t, 0, tr.runs, "later steps are skipped after a failure")
}
