package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	lambdasdk "github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"go.uber.org/zap"

	"github.com/wurt83ow/video-skill/internal/logger"
)

const (
	// WarmupSource — значение поля source у прогревочных событий.
	WarmupSource = "warmup"

	// MaxWarmupConcurrency ограничивает число дополнительно прогреваемых экземпляров,
	// сколько бы ни попросило событие.
	MaxWarmupConcurrency = 10

	// warmupParallelism — сколько вызовов Invoke выполняется одновременно.
	warmupParallelism = 4

	// WarmupDelay держит экземпляр занятым, пока стартуют остальные,
	// иначе платформа отдаст их вызовы этому же экземпляру.
	WarmupDelay = 75 * time.Millisecond
)

// WarmupEvent — событие планировщика для прогрева функции.
type WarmupEvent struct {
	Source      string `json:"source"`
	Concurrency int    `json:"concurrency"`
}

// WarmupResponse возвращается на прогревочное событие.
type WarmupResponse struct {
	Status          string `json:"status"`
	InstancesWarmed int    `json:"instancesWarmed"`
}

// invoker асинхронно вызывает эту же функцию count раз и возвращает число удачных вызовов.
type invoker func(ctx context.Context, count int) (int, error)

// IsWarmupEvent проверяет, что событие прогревочное. Concurrency приводится
// к диапазону [0, MaxWarmupConcurrency].
func IsWarmupEvent(event json.RawMessage) (*WarmupEvent, bool) {
	var raw struct {
		Source      string  `json:"source"`
		Concurrency float64 `json:"concurrency"`
	}
	if err := json.Unmarshal(event, &raw); err != nil || raw.Source != WarmupSource {
		return nil, false
	}

	warmup := &WarmupEvent{Source: raw.Source}
	switch {
	case raw.Concurrency >= MaxWarmupConcurrency:
		warmup.Concurrency = MaxWarmupConcurrency
	case raw.Concurrency > 0:
		warmup.Concurrency = int(raw.Concurrency)
	}
	return warmup, true
}

// HandleWarmup отвечает на прогрев и при необходимости прогревает ещё Concurrency экземпляров.
func HandleWarmup(ctx context.Context, warmup *WarmupEvent, invoke invoker) (interface{}, error) {
	instancesWarmed := 1 // этот экземпляр уже прогрет

	if warmup.Concurrency > 0 && invoke != nil {
		invoked, err := invoke(ctx, min(warmup.Concurrency, MaxWarmupConcurrency))
		if err != nil {
			logger.Log.Warn("warmup self-invoke failed",
				zap.Int("requested", warmup.Concurrency),
				zap.Int("invoked", invoked),
				zap.Error(err),
			)
		}
		instancesWarmed += invoked
	}

	select {
	case <-time.After(WarmupDelay):
	case <-ctx.Done():
	}

	return WarmupResponse{
		Status:          "warm",
		InstancesWarmed: instancesWarmed,
	}, nil
}

// lambdaInvoker — часть клиента Lambda, нужная для самовызова.
type lambdaInvoker interface {
	Invoke(ctx context.Context, params *lambdasdk.InvokeInput, optFns ...func(*lambdasdk.Options)) (*lambdasdk.InvokeOutput, error)
}

// selfInvoker вызывает функцию functionName асинхронными событиями прогрева.
type selfInvoker struct {
	client       lambdaInvoker
	functionName string
}

// newSelfInvoker создаёт клиент Lambda один раз на холодном старте.
func newSelfInvoker(ctx context.Context, functionName string) (*selfInvoker, error) {
	if functionName == "" {
		return nil, errors.New("function name is unknown")
	}
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &selfInvoker{client: lambdasdk.NewFromConfig(cfg), functionName: functionName}, nil
}

// Invoke отправляет count событий прогрева, не больше warmupParallelism одновременно.
func (s *selfInvoker) Invoke(ctx context.Context, count int) (int, error) {
	// дочерние вызовы получают concurrency=0, иначе прогрев станет бесконечным
	payload, err := json.Marshal(WarmupEvent{Source: WarmupSource})
	if err != nil {
		return 0, err
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		invoked int
		errs    []error
	)
	sem := make(chan struct{}, warmupParallelism)

	for i := 0; i < count; i++ {
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer func() {
				<-sem
				wg.Done()
			}()

			_, err := s.client.Invoke(ctx, &lambdasdk.InvokeInput{
				FunctionName:   aws.String(s.functionName),
				InvocationType: types.InvocationTypeEvent,
				Payload:        payload,
			})

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return
			}
			invoked++
		}()
	}

	wg.Wait()
	return invoked, errors.Join(errs...)
}
