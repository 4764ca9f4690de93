package implementations

import (
	"fmt"

	"github.com/Rajmund09/Mini-Banking-System/src/internal/domain"
)

// persistenceError classifies an infrastructure failure so callers can tell
// it apart from the domain outcomes the gateway reports as sentinels.
func persistenceError(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", domain.ErrPersistence, op, err)
}
