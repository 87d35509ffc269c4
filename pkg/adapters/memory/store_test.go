package memory

import (
	"testing"

	"platcheck/pkg/ports/tests"
)

func TestFailureStoreContract(t *testing.T) {
	tests.FailureStoreContractTest(t, NewFailureStore())
}
