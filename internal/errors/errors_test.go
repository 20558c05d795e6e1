package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapKeepsCause(t *testing.T) {
	cause := stderrors.New("disk full")
	err := FileSystemError(cause, "failed to write script")

	assert.Equal(t, "failed to write script: disk full", err.Error())
	assert.True(t, stderrors.Is(err, cause))
	assert.Equal(t, ErrorTypeFileSystem, GetType(err))
	assert.False(t, IsFatal(err))

	assert.Nil(t, Wrap(nil, ErrorTypeInternal, SeverityLow, "nothing"))
}

func TestTypeMatchingThroughChain(t *testing.T) {
	err := fmt.Errorf("load pattern: %w", ValidationErrorf("bad level %d", 9))

	assert.True(t, IsType(err, ErrorTypeValidation))
	assert.False(t, IsType(err, ErrorTypeExternal))
	assert.True(t, stderrors.Is(err, &Error{Type: ErrorTypeValidation}))
	assert.Equal(t, ErrorTypeInternal, GetType(stderrors.New("plain")))
}

func TestSeverity(t *testing.T) {
	assert.True(t, IsFatal(ConfigErrorf("missing %s", "key")))
	assert.True(t, IsFatal(InternalErrorf("boom")))
	assert.False(t, IsFatal(ExternalError(stderrors.New("timeout"), "suggestion failed")))
	assert.False(t, IsFatal(nil))
}

func TestDetailedString(t *testing.T) {
	err := StorageError(stderrors.New("locked"), "open prefs").
		WithContext("path", "/tmp/prefs.db").
		WithContext("bucket", "prefs")

	s := err.DetailedString()
	assert.Contains(t, s, "[HIGH] [STORAGE] open prefs")
	assert.Contains(t, s, "Caused by: locked")
	assert.Regexp(t, `(?s)bucket: prefs.*path: /tmp/prefs.db`, s)
}
