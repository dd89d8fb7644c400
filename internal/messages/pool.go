// Package messages holds the opaque reminder text pool.
package messages

import (
	"errors"
	"math/rand"
)

var ErrEmptyPool = errors.New("empty message pool")

// Pool hands out one message per delivery, chosen uniformly at random.
// The content is opaque to the rest of the system.
type Pool struct {
	msgs []string
}

func NewPool(msgs []string) (*Pool, error) {
	if len(msgs) == 0 {
		return nil, ErrEmptyPool
	}
	return &Pool{msgs: msgs}, nil
}

// PickOne returns a random message. The global rand source is
// goroutine-safe, so concurrent fires need no extra locking here.
func (p *Pool) PickOne() string {
	return p.msgs[rand.Intn(len(p.msgs))]
}
