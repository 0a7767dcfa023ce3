package otel_test

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	adapter "github.com/petmercado/petmercado/internal/adapter/otel"
	"github.com/petmercado/petmercado/internal/domain"
)

// --- Test tracer setup ---

func setupTestTracer(t *testing.T) *tracetest.InMemoryExporter {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return exporter
}

// --- Mock repository ---

type mockRepo struct {
	records map[string]domain.Record
}

func newMockRepo() *mockRepo {
	return &mockRepo{records: make(map[string]domain.Record)}
}

func (m *mockRepo) Create(_ context.Context, r domain.Record) error {
	m.records[r.ID] = r
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id string) (domain.Record, error) {
	r, ok := m.records[id]
	if !ok {
		return domain.Record{}, domain.ErrNotFound
	}
	return r, nil
}

func (m *mockRepo) List(_ context.Context, _ domain.ListFilter) ([]domain.Record, error) {
	out := make([]domain.Record, 0, len(m.records))
	for _, r := range m.records {
		out = append(out, r)
	}
	return out, nil
}

func (m *mockRepo) Update(_ context.Context, r domain.Record, expected domain.Status) error {
	stored, ok := m.records[r.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if stored.Status != expected {
		return domain.ErrConflict
	}
	m.records[r.ID] = r
	return nil
}

// --- Tests ---

func TestTracingRepository_Create_RecordsSpan(t *testing.T) {
	exporter := setupTestTracer(t)
	inner := newMockRepo()
	repo := adapter.NewTracingRecordRepository(inner)

	record := domain.NewCampaign("r-1", "u-1", domain.CampaignDetails{Title: "t", GoalCents: 1})
	if err := repo.Create(context.Background(), record); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	if spans[0].Name != "RecordRepository.Create" {
		t.Errorf("span name = %q, want %q", spans[0].Name, "RecordRepository.Create")
	}

	assertAttribute(t, spans[0], "record.id", "r-1")
	assertAttribute(t, spans[0], "record.kind", "campaign")
}

func TestTracingRepository_GetByID_RecordsError(t *testing.T) {
	exporter := setupTestTracer(t)
	inner := newMockRepo()
	repo := adapter.NewTracingRecordRepository(inner)

	_, err := repo.GetByID(context.Background(), "nonexistent")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}

	if spans[0].Status.Code != codes.Error {
		t.Errorf("span status = %v, want %v", spans[0].Status.Code, codes.Error)
	}

	if len(spans[0].Events) == 0 {
		t.Error("expected error event on span")
	}
}

func TestTracingRepository_List_RecordsResultCount(t *testing.T) {
	exporter := setupTestTracer(t)
	inner := newMockRepo()
	repo := adapter.NewTracingRecordRepository(inner)

	inner.records["r-1"] = domain.NewCampaign("r-1", "u-1", domain.CampaignDetails{Title: "a", GoalCents: 1})
	inner.records["r-2"] = domain.NewProduct("r-2", "u-1", domain.ProductDetails{Name: "b", PriceCents: 1})

	records, err := repo.List(context.Background(), domain.ListFilter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("got %d records, want 2", len(records))
	}

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}

	assertAttribute(t, spans[0], "result.count", "2")
}

func TestTracingRepository_Update_RecordsSpan(t *testing.T) {
	exporter := setupTestTracer(t)
	inner := newMockRepo()
	repo := adapter.NewTracingRecordRepository(inner)

	record := domain.NewContract("r-1", "u-1", domain.ContractDetails{ProviderID: "p-1"})
	inner.records["r-1"] = record

	record.Status = domain.ContractActive
	if err := repo.Update(context.Background(), record, domain.StatusPending); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	if spans[0].Name != "RecordRepository.Update" {
		t.Errorf("span name = %q, want %q", spans[0].Name, "RecordRepository.Update")
	}

	assertAttribute(t, spans[0], "record.status", "ativo")
	assertAttribute(t, spans[0], "record.expected_status", "pendente")
}

// assertAttribute checks that a span has an attribute with the given key and string value.
func assertAttribute(t *testing.T, span tracetest.SpanStub, key, want string) {
	t.Helper()
	for _, attr := range span.Attributes {
		if string(attr.Key) == key {
			got := attr.Value.Emit()
			if got != want {
				t.Errorf("attribute %q = %q, want %q", key, got, want)
			}
			return
		}
	}
	t.Errorf("attribute %q not found on span %q", key, span.Name)
}
