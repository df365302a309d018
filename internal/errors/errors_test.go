package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapKeepsCode(t *testing.T) {
	base := ParseError("failed to read CSV", stderrors.New("bare \" in non-quoted field"))
	wrapped := Wrap(base, "failed to load upload")

	assert.Equal(t, CodeParseError, GetCode(wrapped))
	assert.True(t, stderrors.Is(wrapped, base))
	assert.Equal(t, "failed to load upload: failed to read CSV: bare \" in non-quoted field", wrapped.Error())
}

func TestWrapPlainErrorIsInternal(t *testing.T) {
	err := Wrapf(stderrors.New("boom"), "step %d", 3)
	assert.Equal(t, CodeInternalError, GetCode(err))
	assert.Equal(t, "step 3: boom", err.Error())
	assert.Nil(t, Wrap(nil, "ignored"))
}

func TestGetCodeThroughFmtWrap(t *testing.T) {
	err := fmt.Errorf("outer: %w", NotFound("column \"x\""))
	assert.True(t, HasCode(err, CodeNotFound))
	assert.True(t, IsAppError(err))
	assert.Equal(t, "UNKNOWN", GetCode(stderrors.New("plain")))
}

func TestWithCode(t *testing.T) {
	cause := stderrors.New("zero variance")
	err := WithCode(CodeComputation, cause)
	assert.Equal(t, CodeComputation, GetCode(err))
	assert.True(t, stderrors.Is(err, cause))
}
