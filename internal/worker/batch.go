package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/bivenue/copilot/internal/model"
)

// Adviser defines the interface for producing an advisory from a
// problem statement
type Adviser interface {
	Advise(ctx context.Context, problem string, profile *model.CompanyProfile) (*model.Advisory, error)
}

// AdviseJob represents a single problem-statement job
type AdviseJob struct {
	Problem string
	Adviser Adviser
}

// Execute executes the advise job
func (j *AdviseJob) Execute(ctx context.Context) Result {
	advisory, err := j.Adviser.Advise(ctx, j.Problem, nil)
	if err != nil {
		return &AdviseResult{
			Problem:  j.Problem,
			Advisory: nil,
			Error:    err,
		}
	}
	return &AdviseResult{
		Problem:  j.Problem,
		Advisory: advisory,
		Error:    nil,
	}
}

// AdviseResult represents the result of an advise job
type AdviseResult struct {
	Problem  string
	Advisory *model.Advisory
	Error    error
}

// GetError returns the error from the advise result
func (r *AdviseResult) GetError() error {
	return r.Error
}

// BatchProcessor advises on multiple problem statements concurrently
type BatchProcessor struct {
	adviser     Adviser
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(adviser Adviser, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		adviser:     adviser,
		concurrency: concurrency,
	}
}

// ProcessProblems advises on multiple problem statements concurrently
func (b *BatchProcessor) ProcessProblems(ctx context.Context, problems []string) []*AdviseResult {
	if len(problems) == 0 {
		return []*AdviseResult{}
	}

	// Create worker pool under the caller's context so batch timeouts
	// cancel in-flight advising
	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	// Submit jobs
	for _, problem := range problems {
		job := &AdviseJob{
			Problem: problem,
			Adviser: b.adviser,
		}
		pool.Submit(job)
	}

	// Wait for all jobs to complete
	results := pool.Wait()

	// Convert to AdviseResults
	adviseResults := make([]*AdviseResult, len(results))
	for i, result := range results {
		adviseResults[i] = result.(*AdviseResult)
	}

	return adviseResults
}

// ProcessFile reads problem statements from a file and advises on them
// concurrently
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*AdviseResult, error) {
	problems, err := ReadProblemsFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read problems: %w", err)
	}

	return b.ProcessProblems(ctx, problems), nil
}

// ReadProblemsFromFile reads problem statements from a file (one per line)
func ReadProblemsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var problems []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Deduplicate statements
		if !seen[line] {
			seen[line] = true
			problems = append(problems, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return problems, nil
}
