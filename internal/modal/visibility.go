// Package modal tracks which course's payment dialog is open.
package modal

import (
	"errors"
	"fmt"
	"sync"
)

var ErrOutOfRange = errors.New("row index out of range")

// Visibility is one open/closed flag per fetched course, indexed by the
// course's position in the fetched list.
type Visibility struct {
	mu   sync.Mutex
	open []bool
}

func New(n int) *Visibility {
	return &Visibility{open: make([]bool, n)}
}

// Reset closes every dialog and resizes to n rows.
func (v *Visibility) Reset(n int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.open = make([]bool, n)
}

func (v *Visibility) Open(i int) error {
	return v.set(i, true)
}

func (v *Visibility) Close(i int) error {
	return v.set(i, false)
}

func (v *Visibility) set(i int, open bool) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if i < 0 || i >= len(v.open) {
		return fmt.Errorf("%w: %d of %d", ErrOutOfRange, i, len(v.open))
	}
	v.open[i] = open
	return nil
}

func (v *Visibility) IsOpen(i int) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return i >= 0 && i < len(v.open) && v.open[i]
}

func (v *Visibility) AnyOpen() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, open := range v.open {
		if open {
			return true
		}
	}
	return false
}

func (v *Visibility) Len() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.open)
}
