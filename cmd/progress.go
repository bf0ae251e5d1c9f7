package cmd

import (
	"context"
	"os"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// chapterProgress draws one bar for the chapters of a build.
type chapterProgress struct {
	p   *mpb.Progress
	bar *mpb.Bar
}

func newChapterProgress(ctx context.Context) *chapterProgress {
	p := mpb.NewWithContext(ctx,
		mpb.WithWidth(52),
		mpb.WithOutput(os.Stdout),
		mpb.WithRefreshRate(120*time.Millisecond),
	)
	return &chapterProgress{p: p}
}

func (c *chapterProgress) SetTotal(total int) {
	if total == 0 {
		return
	}
	c.bar = c.p.New(int64(total),
		mpb.BarStyle().Rbound("]"),
		mpb.PrependDecorators(
			decor.Name("chapters  "),
		),
		mpb.AppendDecorators(
			decor.Percentage(decor.WCSyncWidth),
			decor.CountersNoUnit(" | %d/%d", decor.WCSyncWidth),
			decor.Elapsed(decor.ET_STYLE_GO, decor.WCSyncSpace),
		),
	)
}

func (c *chapterProgress) Increment() {
	if c.bar != nil {
		c.bar.Increment()
	}
}

// Close waits for the bar to finish drawing. An unfinished bar is aborted
// first so Wait cannot block.
func (c *chapterProgress) Close(ok bool) {
	if c.bar != nil && !ok {
		c.bar.Abort(false)
	}
	c.p.Wait()
}
