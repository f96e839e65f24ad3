package services

import (
	"context"
	"sync"
	"time"
)

type fakeGenerator struct {
	reply   string
	err     error
	prompts []string
}

func (g *fakeGenerator) GenerateText(_ context.Context, prompt string) (string, error) {
	g.prompts = append(g.prompts, prompt)
	return g.reply, g.err
}

// testClock is a settable clock for services that take WithClock.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func amount(v float64) *float64 { return &v }
