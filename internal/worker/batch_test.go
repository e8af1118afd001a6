package worker

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/bivenue/copilot/internal/model"
)

// MockAdviser implements Adviser interface
type MockAdviser struct {
	ShouldError bool
}

func (m *MockAdviser) Advise(ctx context.Context, problem string, profile *model.CompanyProfile) (*model.Advisory, error) {
	time.Sleep(10 * time.Millisecond) // Simulate work
	if m.ShouldError {
		return nil, errors.New("advise error")
	}
	return &model.Advisory{
		Problem: problem,
		Domain:  model.LabelGeneralFinance,
	}, nil
}

func TestBatchProcessor_ProcessProblems(t *testing.T) {
	adviser := &MockAdviser{}
	processor := NewBatchProcessor(adviser, 2)

	problems := []string{
		"intercompany balances never tie out",
		"p2p invoice exceptions pile up",
		"month-end close takes two weeks",
	}
	ctx := context.Background()

	results := processor.ProcessProblems(ctx, problems)

	if len(results) != 3 {
		t.Errorf("expected 3 results, got %d", len(results))
	}

	successCount := 0
	for _, res := range results {
		if res.Error == nil {
			successCount++
			if res.Advisory == nil {
				t.Error("expected advisory for successful run")
			}
		} else {
			t.Errorf("unexpected error for %q: %v", res.Problem, res.Error)
		}
	}

	if successCount != 3 {
		t.Errorf("expected 3 successes, got %d", successCount)
	}
}

func TestBatchProcessor_ProcessProblems_Error(t *testing.T) {
	adviser := &MockAdviser{ShouldError: true}
	processor := NewBatchProcessor(adviser, 2)

	ctx := context.Background()

	results := processor.ProcessProblems(ctx, []string{"some problem"})

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}

	if results[0].Error == nil {
		t.Error("expected error, got nil")
	}
	if results[0].Advisory != nil {
		t.Error("expected nil advisory on error")
	}
}

func TestBatchProcessor_ManyProblemsFewWorkers(t *testing.T) {
	// Many more statements than the worker count: every submission
	// happens before results are drained, and the run must still finish
	adviser := &MockAdviser{}
	processor := NewBatchProcessor(adviser, 1)

	problems := make([]string, 12)
	for i := range problems {
		problems[i] = "problem statement " + string(rune('a'+i))
	}

	done := make(chan []*AdviseResult)
	go func() {
		done <- processor.ProcessProblems(context.Background(), problems)
	}()

	select {
	case results := <-done:
		if len(results) != len(problems) {
			t.Errorf("expected %d results, got %d", len(problems), len(results))
		}
	case <-time.After(5 * time.Second):
		t.Fatal("ProcessProblems stalled with 12 problems and 1 worker")
	}
}

func TestBatchProcessor_ContextCancellation(t *testing.T) {
	adviser := &BlockingAdviser{}
	processor := NewBatchProcessor(adviser, 1)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	done := make(chan []*AdviseResult)
	go func() {
		done <- processor.ProcessProblems(ctx, []string{"p1", "p2", "p3", "p4"})
	}()

	select {
	case results := <-done:
		for _, res := range results {
			if res.Error == nil {
				t.Errorf("expected context error for %q, got nil", res.Problem)
			}
		}
	case <-time.After(3 * time.Second):
		t.Fatal("expected batch timeout to cancel in-flight advising")
	}
}

// BlockingAdviser blocks until its context is cancelled
type BlockingAdviser struct{}

func (a *BlockingAdviser) Advise(ctx context.Context, problem string, profile *model.CompanyProfile) (*model.Advisory, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestBatchProcessor_ProcessProblems_Empty(t *testing.T) {
	adviser := &MockAdviser{}
	processor := NewBatchProcessor(adviser, 2)

	results := processor.ProcessProblems(context.Background(), []string{})
	if len(results) != 0 {
		t.Errorf("expected 0 results, got %d", len(results))
	}
}

func TestReadProblemsFromFile(t *testing.T) {
	content := `intercompany mismatch at month end
# comment
consolidation adjustments are manual

vendor procure cycle is broken   `

	tmpfile, err := os.CreateTemp("", "problems")
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		_ = os.Remove(tmpfile.Name())
	}()

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	problems, err := ReadProblemsFromFile(tmpfile.Name())
	if err != nil {
		t.Fatalf("ReadProblemsFromFile failed: %v", err)
	}

	expected := []string{
		"intercompany mismatch at month end",
		"consolidation adjustments are manual",
		"vendor procure cycle is broken",
	}
	if len(problems) != len(expected) {
		t.Fatalf("expected %d problems, got %d", len(expected), len(problems))
	}

	for i, p := range problems {
		if p != expected[i] {
			t.Errorf("expected %q at index %d, got %q", expected[i], i, p)
		}
	}
}

func TestReadProblemsFromFile_NonExistent(t *testing.T) {
	_, err := ReadProblemsFromFile("non_existent_file.txt")
	if err == nil {
		t.Error("expected error for non-existent file, got nil")
	}
}

func TestAdviseResult_GetError(t *testing.T) {
	r1 := &AdviseResult{Problem: "p", Error: nil}
	if r1.GetError() != nil {
		t.Errorf("expected nil error, got %v", r1.GetError())
	}

	expected := errors.New("advise failed")
	r2 := &AdviseResult{Problem: "p", Error: expected}
	if r2.GetError() != expected {
		t.Errorf("expected %v, got %v", expected, r2.GetError())
	}
}

func TestBatchProcessor_ProcessFile(t *testing.T) {
	content := "intercompany mismatch\nr2r reconciliations are late\n# comment\n\norder to cash delays\n"

	tmpfile, err := os.CreateTemp("", "batch_problems")
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = os.Remove(tmpfile.Name()) }()

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	adviser := &MockAdviser{}
	processor := NewBatchProcessor(adviser, 2)

	results, err := processor.ProcessFile(context.Background(), tmpfile.Name())
	if err != nil {
		t.Fatalf("ProcessFile failed: %v", err)
	}

	if len(results) != 3 {
		t.Errorf("expected 3 results, got %d", len(results))
	}
}

func TestBatchProcessor_ProcessFile_NonExistent(t *testing.T) {
	adviser := &MockAdviser{}
	processor := NewBatchProcessor(adviser, 2)

	_, err := processor.ProcessFile(context.Background(), "no_such_file.txt")
	if err == nil {
		t.Error("expected error for non-existent file, got nil")
	}
}

func TestBatchProcessor_ProcessFile_Empty(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "empty_problems")
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = os.Remove(tmpfile.Name()) }()
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	adviser := &MockAdviser{}
	processor := NewBatchProcessor(adviser, 2)

	results, err := processor.ProcessFile(context.Background(), tmpfile.Name())
	if err != nil {
		t.Fatalf("ProcessFile failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected 0 results for empty file, got %d", len(results))
	}
}

func TestReadProblemsFromFile_Deduplication(t *testing.T) {
	content := `the same problem statement
the same problem statement`

	tmpfile, err := os.CreateTemp("", "problems_dedup")
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		_ = os.Remove(tmpfile.Name())
	}()

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	problems, err := ReadProblemsFromFile(tmpfile.Name())
	if err != nil {
		t.Fatalf("ReadProblemsFromFile failed: %v", err)
	}

	if len(problems) != 1 {
		t.Errorf("expected 1 problem after deduplication, got %d", len(problems))
	}
}
