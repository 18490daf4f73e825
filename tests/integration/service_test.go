//go:build integration

package integration

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/petal-labs/dialog/core"
	"github.com/petal-labs/dialog/dataservice"
)

func newLiveService(t *testing.T) *dataservice.Service {
	t.Helper()
	skipIfNoAccessToken(t)

	svc, err := dataservice.New(core.NewConfiguration(getAccessToken(t), core.LanguageEnglish))
	if err != nil {
		t.Fatalf("dataservice.New() error = %v", err)
	}
	return svc
}

func TestService_TextQuery(t *testing.T) {
	svc := newLiveService(t)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	resp, err := svc.TextQuery(ctx, "hello", nil)
	if err != nil {
		t.Fatalf("TextQuery() error = %v", err)
	}
	if resp.IsError() {
		t.Fatalf("response status = %v", resp.Status)
	}
	if resp.Result == nil {
		t.Fatal("response has no result")
	}
	if resp.Result.ResolvedQuery == "" {
		t.Error("ResolvedQuery is empty")
	}
	t.Logf("Action: %s", resp.Result.Action)
}

func TestService_ContextsAndReset(t *testing.T) {
	svc := newLiveService(t)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	extras := &core.RequestExtras{Contexts: []core.Context{core.NewContext("integration").WithLifespan(2)}}
	if _, err := svc.TextQuery(ctx, "hello", extras); err != nil {
		t.Fatalf("TextQuery() error = %v", err)
	}

	if !svc.ResetContexts(ctx) {
		t.Error("ResetContexts() = false, want true")
	}
}

func TestService_UploadUserEntity(t *testing.T) {
	svc := newLiveService(t)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	entity := core.Entity{Name: "integration_colors"}
	entity.AddEntry("teal", "teal", "blue green")

	if _, err := svc.UploadUserEntity(ctx, entity); err != nil {
		t.Fatalf("UploadUserEntity() error = %v", err)
	}
}

func TestService_BadToken(t *testing.T) {
	skipIfNoAccessToken(t)

	svc, err := dataservice.New(core.NewConfiguration("not-a-real-token", core.LanguageEnglish))
	if err != nil {
		t.Fatalf("dataservice.New() error = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	_, err = svc.TextQuery(ctx, "hello", nil)
	if !errors.Is(err, core.ErrServiceError) {
		t.Fatalf("TextQuery() error = %v, want ErrServiceError", err)
	}
	if code := core.KindOf(err); code != core.KindServiceError {
		t.Errorf("KindOf() = %v, want %v", code, core.KindServiceError)
	}
}
