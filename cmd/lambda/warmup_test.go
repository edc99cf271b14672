package main

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	lambdasdk "github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsWarmupEvent(t *testing.T) {
	tests := []struct {
		name            string
		event           string
		wantOK          bool
		wantConcurrency int
	}{
		{name: "plain warmup", event: `{"source": "warmup"}`, wantOK: true},
		{name: "with concurrency", event: `{"source": "warmup", "concurrency": 5}`, wantOK: true, wantConcurrency: 5},
		{name: "negative concurrency", event: `{"source": "warmup", "concurrency": -2}`, wantOK: true},
		{name: "huge concurrency is capped", event: `{"source": "warmup", "concurrency": 100000}`, wantOK: true, wantConcurrency: MaxWarmupConcurrency},
		{name: "other source", event: `{"source": "aws.events"}`},
		{name: "skill request", event: `{"request": {"type": "LaunchRequest"}}`},
		{name: "not an object", event: `"warmup"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warmup, ok := IsWarmupEvent(json.RawMessage(tt.event))
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantConcurrency, warmup.Concurrency)
			}
		})
	}
}

func TestHandleWarmup(t *testing.T) {
	t.Run("no concurrency skips invoke", func(t *testing.T) {
		out, err := HandleWarmup(context.Background(), &WarmupEvent{Source: WarmupSource}, func(context.Context, int) (int, error) {
			t.Fatal("invoke must not be called")
			return 0, nil
		})
		assert.NoError(t, err)
		assert.Equal(t, WarmupResponse{Status: "warm", InstancesWarmed: 1}, out)
	})

	t.Run("partial failure counts successful invokes", func(t *testing.T) {
		out, err := HandleWarmup(context.Background(), &WarmupEvent{Source: WarmupSource, Concurrency: 3}, func(context.Context, int) (int, error) {
			return 2, errors.New("throttled")
		})
		assert.NoError(t, err)
		assert.Equal(t, WarmupResponse{Status: "warm", InstancesWarmed: 3}, out)
	})

	t.Run("concurrency above limit is capped", func(t *testing.T) {
		out, err := HandleWarmup(context.Background(), &WarmupEvent{Source: WarmupSource, Concurrency: 500}, func(_ context.Context, count int) (int, error) {
			assert.Equal(t, MaxWarmupConcurrency, count)
			return count, nil
		})
		assert.NoError(t, err)
		assert.Equal(t, WarmupResponse{Status: "warm", InstancesWarmed: MaxWarmupConcurrency + 1}, out)
	})
}

type fakeLambda struct {
	mu       sync.Mutex
	active   int
	peak     int
	inputs   []*lambdasdk.InvokeInput
	failures int
}

func (f *fakeLambda) Invoke(_ context.Context, params *lambdasdk.InvokeInput, _ ...func(*lambdasdk.Options)) (*lambdasdk.InvokeOutput, error) {
	f.mu.Lock()
	f.active++
	if f.active > f.peak {
		f.peak = f.active
	}
	f.inputs = append(f.inputs, params)
	fail := f.failures > 0
	if fail {
		f.failures--
	}
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.active--
		f.mu.Unlock()
	}()

	if fail {
		return nil, errors.New("throttled")
	}
	return &lambdasdk.InvokeOutput{StatusCode: 202}, nil
}

func TestSelfInvoker(t *testing.T) {
	client := &fakeLambda{failures: 2}
	s := &selfInvoker{client: client, functionName: "video-skill"}

	invoked, err := s.Invoke(context.Background(), 7)
	assert.Error(t, err)
	assert.Equal(t, 5, invoked)

	require.Len(t, client.inputs, 7)
	assert.LessOrEqual(t, client.peak, warmupParallelism)
	for _, in := range client.inputs {
		assert.Equal(t, "video-skill", *in.FunctionName)
		assert.Equal(t, types.InvocationTypeEvent, in.InvocationType)
		assert.JSONEq(t, `{"source": "warmup", "concurrency": 0}`, string(in.Payload))
	}
}

func TestNewSelfInvoker_NoFunctionName(t *testing.T) {
	_, err := newSelfInvoker(context.Background(), "")
	assert.Error(t, err)
}
