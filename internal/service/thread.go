package service

import (
	"fmt"
	"net/http"

	"github.com/gushi-cookie/chan-parser/shared/domain"
	internal_errors "github.com/gushi-cookie/chan-parser/shared/errors"
)

type ThreadService interface {
	Delete(id domain.ThreadId) error
}

type Thread struct {
	storage ThreadStorage
}

type ThreadStorage interface {
	DeleteThread(id domain.ThreadId) (int64, error)
}

func NewThread(storage ThreadStorage) *Thread {
	return &Thread{storage}
}

// Delete physically removes a thread; posts and files cascade away with it.
func (t *Thread) Delete(id domain.ThreadId) error {
	affected, err := t.storage.DeleteThread(id)
	if err != nil {
		return fmt.Errorf("failed to delete thread: %w", err)
	}
	if affected == 0 {
		return &internal_errors.ErrorWithStatusCode{
			Message:    "Thread not found",
			StatusCode: http.StatusNotFound,
		}
	}
	return nil
}
