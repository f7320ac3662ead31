package multiselect

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"multiselect/internal/lifecycle"
)

// closeDueMsg is delivered by the tick of a scheduled callback
type closeDueMsg struct {
	instance string
	seq      int
}

// tickScheduler turns AfterFunc into tea.Tick commands. Callbacks run in
// Update when their message comes back, unless stopped in the meantime.
type tickScheduler struct {
	instance string
	seq      int
	timers   map[int]func()
	queued   []tea.Cmd
}

func newTickScheduler(instance string) *tickScheduler {
	return &tickScheduler{
		instance: instance,
		timers:   make(map[int]func()),
	}
}

type tickTimer struct {
	owner *tickScheduler
	seq   int
}

func (t tickTimer) Stop() bool {
	if _, ok := t.owner.timers[t.seq]; !ok {
		return false
	}
	delete(t.owner.timers, t.seq)
	return true
}

func (s *tickScheduler) AfterFunc(d time.Duration, f func()) lifecycle.Timer {
	s.seq++
	seq := s.seq
	s.timers[seq] = f
	instance := s.instance
	s.queued = append(s.queued, tea.Tick(d, func(time.Time) tea.Msg {
		return closeDueMsg{instance: instance, seq: seq}
	}))
	return tickTimer{owner: s, seq: seq}
}

// fire runs the callback for msg if it is still pending
func (s *tickScheduler) fire(msg closeDueMsg) bool {
	if msg.instance != s.instance {
		return false
	}
	f, ok := s.timers[msg.seq]
	if !ok {
		return false
	}
	delete(s.timers, msg.seq)
	f()
	return true
}

// drain returns the ticks scheduled since the last call
func (s *tickScheduler) drain() tea.Cmd {
	if len(s.queued) == 0 {
		return nil
	}
	cmds := s.queued
	s.queued = nil
	return tea.Batch(cmds...)
}

func (s *tickScheduler) pending() int {
	return len(s.timers)
}
