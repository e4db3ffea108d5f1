package chat

import (
	"testing"

	"go.uber.org/goleak"
)

// Streams spawn goroutines; none may outlive the tests.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
