package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"viewtube/internal/service"

	"github.com/stretchr/testify/assert"
)

func TestHandleCommentErrorIncompleteDeleteIsBadRequest(t *testing.T) {
	err := fmt.Errorf("%w: %v", service.ErrCascadeIncomplete,
		fmt.Errorf("delete comment likes: %w", errors.New("table locked")))

	c, w := newTestContext()
	handleCommentError(c, err)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "delete comment likes")
}

func TestHandleCommentErrorNotFound(t *testing.T) {
	c, w := newTestContext()
	handleCommentError(c, service.ErrCommentNotFound)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
