package messages

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"sst_portal_backend/internal/events"
	"sst_portal_backend/platform/apperr"
	"sst_portal_backend/platform/httpkit"
	"sst_portal_backend/platform/logger"
	"sst_portal_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func TestListThreads(t *testing.T) {
	svc := NewService(events.NewInMemoryBus(logger.Discard()), logger.Discard())
	threads := svc.ListThreads()
	if len(threads) != 2 || threads[0].ID != "sesi" || threads[1].ID != "suporte" {
		t.Fatalf("unexpected threads %+v", threads)
	}
	if len(threads[0].Messages) != 3 || len(threads[1].Messages) != 2 {
		t.Fatal("unexpected transcript sizes")
	}

	threads[0].Messages[0].Text = "changed"
	again, _ := svc.GetThread("sesi")
	if again.Messages[0].Text == "changed" {
		t.Fatal("callers must not mutate the store")
	}
}

func TestSend(t *testing.T) {
	log := logger.Discard()
	bus := events.NewInMemoryBus(log)
	svc := NewService(bus, log)

	var published atomic.Int32
	bus.Subscribe(events.MessageSent{}.EventName(), events.HandlerFunc(func(context.Context, events.Event) error {
		published.Add(1)
		return nil
	}))

	ctx := context.Background()
	if _, err := svc.Send(ctx, uuid.New(), "sesi", "   "); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error for blank message, got %v", err)
	}
	if _, err := svc.Send(ctx, uuid.New(), "vendas", "oi"); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found for unknown thread, got %v", err)
	}

	resp, err := svc.Send(ctx, uuid.New(), "suporte", "Consegui acessar, obrigado!")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if resp.ThreadID != "suporte" {
		t.Fatalf("unexpected response %+v", resp)
	}
	bus.Wait()
	if published.Load() != 1 {
		t.Fatalf("expected one event, got %d", published.Load())
	}

	thread, _ := svc.GetThread("suporte")
	if len(thread.Messages) != 2 {
		t.Fatal("sent messages are not appended to the transcript")
	}
}

func TestHandlers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log := logger.Discard()
	h := NewHandler(NewService(events.NewInMemoryBus(log), log), validator.New())

	engine := gin.New()
	group := engine.Group("/threads", func(c *gin.Context) {
		httpkit.SetIdentity(c, uuid.New(), httpkit.AccountInfo{ID: uuid.New()})
	})
	group.GET("", h.ListThreads)
	group.GET("/:id", h.GetThread)
	group.POST("/:id", h.Send)

	tests := []struct {
		method string
		path   string
		body   string
		status int
	}{
		{http.MethodGet, "/threads", "", http.StatusOK},
		{http.MethodGet, "/threads/sesi", "", http.StatusOK},
		{http.MethodGet, "/threads/outro", "", http.StatusNotFound},
		{http.MethodPost, "/threads/sesi", `{"text":"Olá"}`, http.StatusAccepted},
		{http.MethodPost, "/threads/sesi", `{"text":""}`, http.StatusBadRequest},
		{http.MethodPost, "/threads/sesi", `not json`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, tt.path, bytes.NewBufferString(tt.body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)
		if rec.Code != tt.status {
			t.Fatalf("%s %s: expected %d, got %d %s", tt.method, tt.path, tt.status, rec.Code, rec.Body.String())
		}
	}
}
