package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/xdplay/internal/ports/primary"
	"github.com/example/xdplay/internal/ports/secondary"
)

func TestHistoryService_ListCompletions(t *testing.T) {
	repo := &mockHistoryRepository{records: []*secondary.CompletionRecord{
		{XDID: "b", User: "ann", Cells: 15, Solvers: 2, ElapsedSeconds: 90},
		{XDID: "a", User: "ann", Cells: 9},
	}}
	service := NewHistoryService(repo)

	got, err := service.ListCompletions(context.Background(), primary.ListCompletionsRequest{User: "ann", Limit: 5})
	if err != nil {
		t.Fatalf("ListCompletions failed: %v", err)
	}
	if repo.filters.User != "ann" || repo.filters.Limit != 5 {
		t.Errorf("filters = %+v", repo.filters)
	}
	if len(got) != 2 || got[0].XDID != "b" {
		t.Fatalf("got %+v", got)
	}
	if got[0].Elapsed != 90*time.Second || got[0].Solvers != 2 {
		t.Errorf("first = %+v", got[0])
	}
}

func TestHistoryService_ListError(t *testing.T) {
	repo := &mockHistoryRepository{listErr: errors.New("disk gone")}
	_, err := NewHistoryService(repo).ListCompletions(context.Background(), primary.ListCompletionsRequest{})
	if !errors.Is(err, repo.listErr) {
		t.Errorf("err = %v, want wrapped repo error", err)
	}
}

func TestHistoryService_GetCompletion(t *testing.T) {
	repo := &mockHistoryRepository{records: []*secondary.CompletionRecord{{XDID: "a", Title: "Mini"}}}
	service := NewHistoryService(repo)

	got, err := service.GetCompletion(context.Background(), "a")
	if err != nil || got.Title != "Mini" {
		t.Errorf("GetCompletion = %+v, %v", got, err)
	}
	if _, err := service.GetCompletion(context.Background(), "zzz"); err == nil {
		t.Error("expected not found error")
	}
}
