package service

import (
	"context"
	"fmt"
	"math/rand/v2"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"thenumbers/internal/models"
	"thenumbers/pkg/config"
)

const instrumentationName = "thenumbers/internal/service"

// Source 提供 [0, n) 的均勻整數
type Source interface {
	IntN(n int) int
}

// globalSource 使用 math/rand/v2 的全域產生器，可以被多個 goroutine 同時使用
type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// DefaultSource 回傳可安全並行使用的亂數來源
func DefaultSource() Source {
	return globalSource{}
}

type NumberService struct {
	even   config.RangeConfig
	random config.RangeConfig
	src    Source

	tracer trace.Tracer
	draws  metric.Int64Counter
}

// NewNumberService 驗證範圍並建立 NumberService，src 為 nil 時使用 DefaultSource
func NewNumberService(cfg config.NumbersConfig, src Source) (*NumberService, error) {
	if err := cfg.Even.ValidateEven(); err != nil {
		return nil, fmt.Errorf("even range: %w", err)
	}
	if err := cfg.Random.Validate(); err != nil {
		return nil, fmt.Errorf("random range: %w", err)
	}
	if src == nil {
		src = DefaultSource()
	}

	draws, err := otel.Meter(instrumentationName).Int64Counter("numbers.draws",
		metric.WithDescription("The number of numbers drawn by kind"),
		metric.WithUnit("{draw}"))
	if err != nil {
		return nil, fmt.Errorf("create draw counter: %w", err)
	}

	return &NumberService{
		even:   cfg.Even,
		random: cfg.Random,
		src:    src,
		tracer: otel.Tracer(instrumentationName),
		draws:  draws,
	}, nil
}

// Even 回傳偶數區間內均勻分佈的偶數
func (s *NumberService) Even(ctx context.Context) (int, error) {
	ctx, span := s.tracer.Start(ctx, "numbers.even")
	defer span.End()

	lo := ceilEven(s.even.Min)
	hi := floorEven(s.even.Max)
	value := lo + 2*s.src.IntN((hi-lo)/2+1)

	s.record(ctx, span, models.NumberKindEven, value)
	return value, nil
}

// Random 回傳隨機區間內均勻分佈的整數
func (s *NumberService) Random(ctx context.Context) (int, error) {
	ctx, span := s.tracer.Start(ctx, "numbers.random")
	defer span.End()

	value := s.random.Min + s.src.IntN(s.random.Max-s.random.Min+1)

	s.record(ctx, span, models.NumberKindRandom, value)
	return value, nil
}

func (s *NumberService) record(ctx context.Context, span trace.Span, kind models.NumberKind, value int) {
	span.SetAttributes(attribute.Int("number.value", value))
	s.draws.Add(ctx, 1, metric.WithAttributes(attribute.String("number.kind", string(kind))))
}

func ceilEven(n int) int {
	if n%2 != 0 {
		return n + 1
	}
	return n
}

func floorEven(n int) int {
	if n%2 != 0 {
		return n - 1
	}
	return n
}
