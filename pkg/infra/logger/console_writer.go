package logger

import (
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

// ConsoleHook mirrors entries to the console while the main output goes to
// the async file writer.
type ConsoleHook struct {
	mu     sync.Mutex
	out    io.Writer
	levels []logrus.Level
}

func NewConsoleHook() *ConsoleHook {
	return newConsoleHook(os.Stdout, logrus.AllLevels)
}

func newConsoleHook(out io.Writer, levels []logrus.Level) *ConsoleHook {
	return &ConsoleHook{out: out, levels: levels}
}

func (h *ConsoleHook) Fire(entry *logrus.Entry) error {
	line, err := entry.Logger.Formatter.Format(entry)
	if err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	_, err = h.out.Write(line)
	return err
}

func (h *ConsoleHook) Levels() []logrus.Level {
	return h.levels
}
