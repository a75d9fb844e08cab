package util

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/gosuri/uilive"
)

// TerminalPrinter redraws a fixed set of progress lines in place
type TerminalPrinter struct {
	parallelOutputs []*ParallelOutput
	frequency       time.Duration
	doneCh          chan struct{}
	stoppedCh       chan struct{}
	started         bool
	stopOnce        *sync.Once

	writer  *uilive.Writer
	writers []io.Writer
}

func NewTerminalPrinter(out io.Writer, frequency time.Duration) *TerminalPrinter {
	writer := uilive.New()
	if out != nil {
		writer.Out = out
	}
	return &TerminalPrinter{
		parallelOutputs: make([]*ParallelOutput, 0),
		frequency:       frequency,
		doneCh:          make(chan struct{}),
		stoppedCh:       make(chan struct{}),
		stopOnce:        new(sync.Once),

		writer:  writer,
		writers: make([]io.Writer, 0),
	}
}

// NewOutput registers a new line. Must be called before Start.
func (p *TerminalPrinter) NewOutput() *ParallelOutput {
	out := NewParallelOutput()
	p.parallelOutputs = append(p.parallelOutputs, out)
	p.writers = append(p.writers, p.writer.Newline())
	return out
}

func (p *TerminalPrinter) Start(ctx context.Context) {
	p.started = true
	go func() {
		defer close(p.stoppedCh)
		for {
			select {
			case <-p.doneCh:
				p.print()
				return
			case <-ctx.Done():
				return
			case <-time.After(p.frequency):
				p.print()
			}
		}
	}()
}

// Stop prints the final state of all lines and waits for the redraw loop to exit
func (p *TerminalPrinter) Stop() {
	p.stopOnce.Do(func() {
		close(p.doneCh)
	})
	if p.started {
		<-p.stoppedCh
	}
}

func (p *TerminalPrinter) print() {
	for i, output := range p.parallelOutputs {
		fmt.Fprint(p.writers[i], output.Get()+"\n")
	}
	p.writer.Flush()
}

// ParallelOutput holds the latest line written by one producer
type ParallelOutput struct {
	mu        *sync.Mutex
	printable string
}

var _ io.Writer = &ParallelOutput{}

func NewParallelOutput() *ParallelOutput {
	return &ParallelOutput{
		mu:        new(sync.Mutex),
		printable: "",
	}
}

// Set the output string (blocking)
func (p *ParallelOutput) Set(s string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.printable = s
}

// Write replaces the current line with the last line in bs
func (p *ParallelOutput) Write(bs []byte) (int, error) {
	s := string(bs)
	for len(s) > 0 && s[len(s)-1] == '\n' {
		s = s[:len(s)-1]
	}
	p.Set(s)
	return len(bs), nil
}

// Get the output string (blocking)
func (p *ParallelOutput) Get() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.printable
}
