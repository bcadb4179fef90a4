package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslate(t *testing.T) {
	t.Run("bad request passes through", func(t *testing.T) {
		got := Translate(NewBadRequestError(MsgNameEmailMissing))
		assert.Equal(t, http.StatusBadRequest, got.Status)
		assert.Equal(t, MsgNameEmailMissing, got.Message)
	})

	t.Run("not found passes through when wrapped", func(t *testing.T) {
		err := fmt.Errorf("get user: %w", NewNotFoundError(MsgUserNotFound))
		got := Translate(err)
		assert.Equal(t, http.StatusNotFound, got.Status)
		assert.Equal(t, MsgUserNotFound, got.Message)
	})

	t.Run("too many requests passes through", func(t *testing.T) {
		got := Translate(NewTooManyRequestsError())
		assert.Equal(t, http.StatusTooManyRequests, got.Status)
		assert.Equal(t, MsgTooManyRequests, got.Message)
	})

	t.Run("unknown error becomes internal", func(t *testing.T) {
		cause := errors.New("disk on fire")
		got := Translate(cause)
		assert.Equal(t, http.StatusInternalServerError, got.Status)
		assert.Equal(t, MsgInternal, got.Message)
		assert.ErrorIs(t, got, cause)
	})

	t.Run("nil error becomes internal", func(t *testing.T) {
		got := Translate(nil)
		assert.Equal(t, http.StatusInternalServerError, got.Status)
	})
}

func TestKindHelpers(t *testing.T) {
	assert.True(t, IsBadRequest(NewBadRequestError("x")))
	assert.False(t, IsBadRequest(NewNotFoundError("x")))
	assert.True(t, IsNotFound(NewNotFoundError("x")))
	assert.False(t, IsNotFound(errors.New("x")))
}

func TestAPIError_Error(t *testing.T) {
	assert.Equal(t, "User not found", NewNotFoundError(MsgUserNotFound).Error())
	assert.Equal(t, "Internal server error: boom", NewInternalError(errors.New("boom")).Error())
}
