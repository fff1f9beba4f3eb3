package path

import (
	"context"
	"testing"
)

func TestFindPathsBatch(t *testing.T) {
	topo := buildRing(t)
	reqs := []Request{
		{Start: 0, Goal: 2},
		{Start: 1, Goal: 1},
		{Start: 3, Goal: 0},
		{Start: 0, Goal: 99}, // invalid goal
	}

	results, err := FindPaths(context.Background(), topo, reqs, 2)
	if err != nil {
		t.Fatalf("batch: %v", err)
	}
	if len(results) != len(reqs) {
		t.Fatalf("result count: got %d, want %d", len(results), len(reqs))
	}

	if !results[0].Found || len(results[0].Nodes) != 3 {
		t.Fatalf("request 0: %+v", results[0])
	}
	if !results[1].Found || len(results[1].Nodes) != 1 || results[1].Cost != 0 {
		t.Fatalf("request 1: %+v", results[1])
	}
	if !results[2].Found || len(results[2].Nodes) != 2 {
		t.Fatalf("request 2: %+v", results[2])
	}
	if results[3].Found || results[3].Nodes != nil {
		t.Fatalf("request 3 should fail: %+v", results[3])
	}
}

func TestFindPathsCanceled(t *testing.T) {
	topo := buildRing(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reqs := make([]Request, 64)
	for i := range reqs {
		reqs[i] = Request{Start: 0, Goal: 2}
	}
	if _, err := FindPaths(ctx, topo, reqs, 1); err == nil {
		t.Fatalf("expected context error")
	}
}
