package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/petmercado/petmercado/internal/domain"
)

const tracerName = "github.com/petmercado/petmercado/internal/adapter/otel"

// TracingRecordRepository wraps a domain.RecordRepository with
// OpenTelemetry tracing. Each method creates a span with semantic
// attributes and records errors.
type TracingRecordRepository struct {
	next   domain.RecordRepository
	tracer trace.Tracer
}

// Compile-time check: TracingRecordRepository implements domain.RecordRepository.
var _ domain.RecordRepository = (*TracingRecordRepository)(nil)

// NewTracingRecordRepository creates a tracing decorator around the given
// repository.
func NewTracingRecordRepository(next domain.RecordRepository) *TracingRecordRepository {
	return &TracingRecordRepository{
		next:   next,
		tracer: otel.Tracer(tracerName),
	}
}

func (r *TracingRecordRepository) Create(ctx context.Context, record domain.Record) error {
	ctx, span := r.tracer.Start(ctx, "RecordRepository.Create",
		trace.WithAttributes(
			attribute.String("record.id", record.ID),
			attribute.String("record.kind", string(record.Kind)),
		),
	)
	defer span.End()

	err := r.next.Create(ctx, record)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (r *TracingRecordRepository) GetByID(ctx context.Context, id string) (domain.Record, error) {
	ctx, span := r.tracer.Start(ctx, "RecordRepository.GetByID",
		trace.WithAttributes(attribute.String("record.id", id)),
	)
	defer span.End()

	record, err := r.next.GetByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return record, err
}

func (r *TracingRecordRepository) List(ctx context.Context, filter domain.ListFilter) ([]domain.Record, error) {
	ctx, span := r.tracer.Start(ctx, "RecordRepository.List",
		trace.WithAttributes(
			attribute.Int("filter.limit", filter.Limit),
			attribute.Int("filter.offset", filter.Offset),
		),
	)
	defer span.End()

	if filter.Kind != nil {
		span.SetAttributes(attribute.String("filter.kind", string(*filter.Kind)))
	}
	if filter.Status != nil {
		span.SetAttributes(attribute.String("filter.status", string(*filter.Status)))
	}

	records, err := r.next.List(ctx, filter)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetAttributes(attribute.Int("result.count", len(records)))
	}
	return records, err
}

func (r *TracingRecordRepository) Update(ctx context.Context, record domain.Record, expectedStatus domain.Status) error {
	ctx, span := r.tracer.Start(ctx, "RecordRepository.Update",
		trace.WithAttributes(
			attribute.String("record.id", record.ID),
			attribute.String("record.status", string(record.Status)),
			attribute.String("record.expected_status", string(expectedStatus)),
		),
	)
	defer span.End()

	err := r.next.Update(ctx, record, expectedStatus)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}
