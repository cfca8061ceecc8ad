package hashed

import (
	"context"
	"math"
	"testing"
)

func TestEmbed_Deterministic(t *testing.T) {
	svc := NewEmbeddingService(64)
	ctx := context.Background()

	first, err := svc.Embed(ctx, "the quarterly revenue forecast")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.Embed(ctx, "the quarterly revenue forecast")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(first) != 64 {
		t.Fatalf("expected 64 dimensions, got %d", len(first))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("component %d differs between calls: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestEmbed_DistinctTextsDiverge(t *testing.T) {
	svc := NewEmbeddingService(64)
	ctx := context.Background()

	a, _ := svc.Embed(ctx, "alpha")
	b, _ := svc.Embed(ctx, "beta")

	same := true
	for i := range a {
		if a[i] != b[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("expected distinct texts to produce distinct vectors")
	}
}

func TestEmbed_UnitNorm(t *testing.T) {
	svc := NewEmbeddingService(256)

	vec, err := svc.Embed(context.Background(), "normalisation check")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	norm = math.Sqrt(norm)

	if math.Abs(norm-1.0) > 1e-6 {
		t.Errorf("expected unit norm, got %v", norm)
	}
}

func TestEmbedBatch_PreservesOrder(t *testing.T) {
	svc := NewEmbeddingService(32)
	ctx := context.Background()

	texts := []string{"one", "two", "three"}
	batch, err := svc.EmbedBatch(ctx, texts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(batch) != len(texts) {
		t.Fatalf("expected %d vectors, got %d", len(texts), len(batch))
	}

	for i, text := range texts {
		single, _ := svc.Embed(ctx, text)
		for j := range single {
			if batch[i][j] != single[j] {
				t.Fatalf("batch vector %d differs from single embed", i)
			}
		}
	}
}

func TestDescribe(t *testing.T) {
	svc := NewEmbeddingService(128)
	info := svc.Describe()
	if info.Provider != Provider {
		t.Errorf("expected provider %q, got %q", Provider, info.Provider)
	}
	if info.Dimension != 128 {
		t.Errorf("expected dimension 128, got %d", info.Dimension)
	}
}
