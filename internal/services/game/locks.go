package game

import (
	"sync"

	"github.com/salvo-game/salvo/internal/model"
)

// gameLocks serializes the read-validate-write sequences for a single
// game. The duplicate-move check and the count-then-transition win check
// are only correct if no two requests interleave on the same game.
//
// Lock entries are never removed; they are tiny and bounded by the
// number of distinct games handled by this process.
type gameLocks struct {
	mu    sync.Mutex
	locks map[model.GameID]*sync.Mutex
}

func newGameLocks() *gameLocks {
	return &gameLocks{
		locks: make(map[model.GameID]*sync.Mutex),
	}
}

// acquire locks the named game and returns the unlock function
func (l *gameLocks) acquire(id model.GameID) func() {
	l.mu.Lock()
	lock, ok := l.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[id] = lock
	}
	l.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
