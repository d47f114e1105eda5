package trackers

import (
	"fmt"
	"io"

	ts "github.com/samuelfneumann/pegsolitaire/timestep"
	"github.com/samuelfneumann/pegsolitaire/utils/progressbar"
)

// Progress displays a progress bar which advances once per finished
// episode. The number of pegs remaining at the end of the most recent
// episode is shown after the bar.
type Progress struct {
	bar *progressbar.ManualProgressBar
}

// NewProgress returns a new Progress Tracker printing to out which
// reaches 100% after episodes episodes
func NewProgress(out io.Writer, episodes int) *Progress {
	return &Progress{progressbar.NewManualProgressBar(out, 40, episodes)}
}

// Track advances and displays the progress bar at the end of each
// episode
func (p *Progress) Track(t ts.TimeStep) {
	if !t.Last() {
		return
	}
	p.bar.Increment()
	p.bar.Display(fmt.Sprintf("episode %d | remaining pegs: %d", t.Episode+1,
		t.Remaining))
}

// Save finishes displaying the progress bar. It never returns an error.
func (p *Progress) Save() error {
	p.bar.Close()
	return nil
}
