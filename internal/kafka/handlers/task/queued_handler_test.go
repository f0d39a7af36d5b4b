package task

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/akarpenko/image-normalizer/internal/model"
	"github.com/akarpenko/image-normalizer/internal/normalize"
)

type fakeService struct {
	got model.Task
	err error
}

func (s *fakeService) ProcessTask(_ context.Context, t model.Task) error {
	s.got = t
	return s.err
}

func TestHandle(t *testing.T) {
	want := model.Task{
		ID:      uuid.New(),
		URLs:    []string{"http://shop.test/a.png"},
		Options: normalize.Options{MaxWidth: 100, MaxHeight: 100, MaxSize: 5000},
	}
	data, err := json.Marshal(want)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	svc := &fakeService{}
	h := NewQueuedHandler(svc)

	if err := h.Handle(context.Background(), kafka.Message{Value: data}); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if svc.got.ID != want.ID || len(svc.got.URLs) != 1 || svc.got.Options != want.Options {
		t.Errorf("service got %+v, want %+v", svc.got, want)
	}
}

func TestHandle_BadPayload(t *testing.T) {
	h := NewQueuedHandler(&fakeService{})
	if err := h.Handle(context.Background(), kafka.Message{Value: []byte("not json")}); err == nil {
		t.Error("expected error for malformed payload")
	}
}

func TestHandle_ServiceError(t *testing.T) {
	svc := &fakeService{err: errors.New("boom")}
	h := NewQueuedHandler(svc)

	data, _ := json.Marshal(model.Task{ID: uuid.New()})
	if err := h.Handle(context.Background(), kafka.Message{Value: data}); err == nil {
		t.Error("expected error when service fails")
	}
}
