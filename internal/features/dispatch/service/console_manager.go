package service

import (
	"context"
	"sync"

	"dispatch-console/internal/core/gateway"
	sessiondomain "dispatch-console/internal/features/session/domain"

	"go.uber.org/zap"
)

// ConsoleFactory builds a console for a signed-in user.
type ConsoleFactory func(userID string) *Console

// ConsoleManager ties the console's lifetime to the session: signing in starts
// one, signing out or losing the session stops it.
type ConsoleManager struct {
	ctx     context.Context
	factory ConsoleFactory
	log     *zap.Logger

	mu      sync.Mutex
	current *Console
	wg      sync.WaitGroup
}

// NewConsoleManager creates a manager whose consoles live at most as long as ctx.
func NewConsoleManager(ctx context.Context, factory ConsoleFactory, log *zap.Logger) *ConsoleManager {
	if log == nil {
		log = zap.NewNop()
	}
	return &ConsoleManager{ctx: ctx, factory: factory, log: log}
}

// HandleSession reacts to a session change. It never blocks on the network:
// consoles are started and stopped in the background.
func (m *ConsoleManager) HandleSession(s *sessiondomain.Session) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s != nil && m.current != nil && m.current.UserID == s.User.ID {
		return
	}

	if old := m.current; old != nil {
		m.current = nil
		m.wg.Add(1)
		go func() {
			defer m.wg.Done()
			old.Stop()
		}()
	}

	if s == nil {
		return
	}

	c := m.factory(s.User.ID)
	m.current = c
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		c.Start(m.ctx)
	}()
	m.log.Info("Console opened", zap.String("console_id", c.ID.String()), zap.String("user_id", s.User.ID))
}

// Current returns the active console or gateway.ErrNoSession.
func (m *ConsoleManager) Current() (*Console, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return nil, gateway.ErrNoSession
	}
	return m.current, nil
}

// Shutdown stops the active console and waits for background work.
func (m *ConsoleManager) Shutdown() {
	m.HandleSession(nil)
	m.wg.Wait()
}
