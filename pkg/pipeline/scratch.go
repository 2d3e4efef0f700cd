package pipeline

import (
	"os"
	"sync"

	"github.com/arthur-debert/prettycat/pkg/errors"
	"github.com/arthur-debert/prettycat/pkg/logging"
)

// Scratch owns the private temporary directory for one invocation. Every
// scratch artifact a reformatter produces lives inside it, so one RemoveAll
// releases everything.
type Scratch struct {
	dir  string
	once sync.Once
}

var (
	activeMu      sync.Mutex
	activeScratch = map[*Scratch]struct{}{}
)

// AcquireScratch creates the scratch directory. Failure here is the one
// hard process failure the pipeline has: without scratch space no
// reformatter can run safely.
func AcquireScratch() (*Scratch, error) {
	dir, err := os.MkdirTemp("", "prettycat-*")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrScratchCreate, "cannot create scratch directory")
	}

	s := &Scratch{dir: dir}
	activeMu.Lock()
	activeScratch[s] = struct{}{}
	activeMu.Unlock()
	return s, nil
}

// Dir returns the scratch directory path.
func (s *Scratch) Dir() string { return s.dir }

// Release removes the scratch directory. Safe to call more than once; the
// signal handler and the normal defer may both reach it.
func (s *Scratch) Release() {
	s.once.Do(func() {
		if err := os.RemoveAll(s.dir); err != nil {
			logger := logging.GetLogger("pipeline.scratch")
			logger.Warn().Err(err).Str("dir", s.dir).Msg("scratch cleanup failed")
		}
	})
	activeMu.Lock()
	delete(activeScratch, s)
	activeMu.Unlock()
}

// ReleaseAll tears down every live scratch directory. The signal handler
// calls this so an interrupted exit still leaves no files behind.
func ReleaseAll() {
	activeMu.Lock()
	live := make([]*Scratch, 0, len(activeScratch))
	for s := range activeScratch {
		live = append(live, s)
	}
	activeMu.Unlock()

	for _, s := range live {
		s.Release()
	}
}
