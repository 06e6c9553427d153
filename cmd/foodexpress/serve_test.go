package main

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordingServer struct {
	calls *[]string
	err   error
}

func (s recordingServer) Shutdown(ctx context.Context) error {
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("shutdown without deadline")
	}
	*s.calls = append(*s.calls, "shutdown")
	return s.err
}

func TestDrain_StopsWorkersAfterServer(t *testing.T) {
	var calls []string
	err := drain(recordingServer{calls: &calls}, func() { calls = append(calls, "workers") })
	assert.NoError(t, err)
	assert.Equal(t, []string{"shutdown", "workers"}, calls)
}

func TestDrain_StopsWorkersWhenShutdownFails(t *testing.T) {
	var calls []string
	boom := errors.New("deadline exceeded")
	err := drain(recordingServer{calls: &calls, err: boom}, func() { calls = append(calls, "workers") })
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"shutdown", "workers"}, calls)
}
