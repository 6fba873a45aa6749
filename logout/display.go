package logout

import (
	"fmt"
	"io"
	"sync"
)

// TextStatus keeps the latest status text and optionally echoes each
// update to a writer
type TextStatus struct {
	mu   sync.Mutex
	text string
	out  io.Writer
}

func NewTextStatus(out io.Writer) *TextStatus {
	return &TextStatus{out: out}
}

func (s *TextStatus) SetText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.text == text {
		return
	}
	s.text = text
	if s.out != nil {
		_, _ = fmt.Fprintln(s.out, text)
	}
}

func (s *TextStatus) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.text
}

// RecordingNavigator remembers the last navigation target and optionally
// reports it on a writer
type RecordingNavigator struct {
	mu     sync.Mutex
	target string
	out    io.Writer
}

func NewRecordingNavigator(out io.Writer) *RecordingNavigator {
	return &RecordingNavigator{out: out}
}

func (n *RecordingNavigator) Navigate(url string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.target = url
	if n.out != nil {
		_, _ = fmt.Fprintf(n.out, "navigate: %s\n", url)
	}
}

func (n *RecordingNavigator) Target() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.target
}
