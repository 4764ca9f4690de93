package idgen

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// DigitSource yields fixed-width numeric strings. Account numbers and one-time
// secrets come from here so tests can plug in a deterministic sequence and
// exercise collision handling.
type DigitSource interface {
	AccountNumber() string
	OTP() string
}

type randomSource struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewRandomSource() DigitSource {
	return &randomSource{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// AccountNumber returns an 8-digit number in [10000000, 99999999].
func (s *randomSource) AccountNumber() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fmt.Sprintf("%d", 10000000+s.rnd.Intn(90000000))
}

// OTP returns a 6-digit secret in [100000, 999999].
func (s *randomSource) OTP() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fmt.Sprintf("%d", 100000+s.rnd.Intn(900000))
}
