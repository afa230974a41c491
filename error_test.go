package fetcher_test

import (
	"fmt"
	"testing"

	"github.com/fwojciec/fetcher"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := fetcher.Errorf(fetcher.EFETCH, "status code: %d", 404)

	assert.Equal(t, fetcher.EFETCH, fetcher.ErrorCode(err))
	assert.Equal(t, "status code: 404", fetcher.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, fetcher.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, fetcher.ErrorMessage(nil))
}

func TestErrorCode_Wrapped(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("persist: %w", fetcher.Errorf(fetcher.EFILESYSTEM, "disk full"))

	assert.Equal(t, fetcher.EFILESYSTEM, fetcher.ErrorCode(err))
	assert.Equal(t, "disk full", fetcher.ErrorMessage(err))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("boom")

	assert.Equal(t, fetcher.EINTERNAL, fetcher.ErrorCode(err))
	assert.Equal(t, "Internal error.", fetcher.ErrorMessage(err))
}
