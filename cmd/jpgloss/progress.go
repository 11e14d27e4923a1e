package main

import (
	"io"
	"sync"

	"github.com/gosuri/uiprogress"
)

// progressBar renders lookup progress. The bar is created on the first
// update, once the number of words is known. A nil *progressBar is a no-op.
type progressBar struct {
	out      io.Writer
	mu       sync.Mutex
	progress *uiprogress.Progress
	bar      *uiprogress.Bar
}

func newProgressBar(out io.Writer) *progressBar {
	return &progressBar{out: out}
}

// Update is a gloss.ProgressFunc.
func (p *progressBar) Update(done, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if total == 0 {
		return
	}
	if p.bar == nil {
		p.progress = uiprogress.New()
		p.progress.SetOut(p.out)
		p.progress.Start()
		p.bar = p.progress.AddBar(total)
		p.bar.AppendCompleted()
		p.bar.PrependElapsed()
	}
	if done > 0 {
		p.bar.Incr()
	}
}

// Stop stops rendering.
func (p *progressBar) Stop() {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.progress != nil {
		p.progress.Stop()
	}
}
