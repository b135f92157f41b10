package style

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
)

var frames = [...]string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧"}

const frameInterval = 80 * time.Millisecond

// Spinner animates a message while a long step such as the frontend build
// runs. Writers that are not terminals get the message once, unanimated.
type Spinner struct {
	w     io.Writer
	msg   string
	done  chan struct{}
	once  sync.Once
	wg    sync.WaitGroup
	isTTY bool
}

// StartSpinner shows msg on w until Stop is called.
func StartSpinner(w io.Writer, msg string) *Spinner {
	s := &Spinner{w: w, msg: msg, done: make(chan struct{})}
	if f, ok := w.(*os.File); ok {
		s.isTTY = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	if !s.isTTY {
		fmt.Fprintf(w, "%s\n", msg)
		return s
	}

	s.wg.Add(1)
	go s.spin()
	return s
}

func (s *Spinner) spin() {
	defer s.wg.Done()
	t := time.NewTicker(frameInterval)
	defer t.Stop()
	for i := 0; ; i++ {
		fmt.Fprintf(s.w, "\r%s %s", Dim.Render(frames[i%len(frames)]), s.msg)
		select {
		case <-s.done:
			fmt.Fprint(s.w, "\r\033[K")
			return
		case <-t.C:
		}
	}
}

// Stop ends the animation and clears the line. It is safe to call twice.
func (s *Spinner) Stop() {
	s.once.Do(func() {
		close(s.done)
		s.wg.Wait()
	})
}
