package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	domainErrors "github.com/polkiloo/bookshop/internal/domain/errors"
	"github.com/polkiloo/bookshop/internal/domain/model"
	testhelpers "github.com/polkiloo/bookshop/internal/test"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serveWithUser(identifier UserIdentifier, header string, handler gin.HandlerFunc) *httptest.ResponseRecorder {
	router := gin.New()
	router.Use(UserRequired(identifier))
	router.GET("/", handler)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(UserIDHeader, header)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestUserRequired(t *testing.T) {
	noop := func(c *gin.Context) { c.Status(http.StatusOK) }

	resp := serveWithUser(testhelpers.IdentityFacadeStub{}, "", noop)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without header, got %d", resp.Code)
	}

	resp = serveWithUser(testhelpers.IdentityFacadeStub{Err: domainErrors.ErrInvalidRequest}, "abc", noop)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for malformed id, got %d", resp.Code)
	}

	resp = serveWithUser(testhelpers.IdentityFacadeStub{Err: domainErrors.ErrNotFound}, "99", noop)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unknown user, got %d", resp.Code)
	}

	resp = serveWithUser(testhelpers.IdentityFacadeStub{Err: context.DeadlineExceeded}, "1", noop)
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}

	var raw string
	identifier := testhelpers.IdentityFacadeStub{IdentifyFn: func(_ context.Context, userID string) (*model.User, error) {
		raw = userID
		return &model.User{ID: 42, GradeName: "GOLD"}, nil
	}}
	var stored *model.User
	resp = serveWithUser(identifier, "42", func(c *gin.Context) {
		if v, ok := c.Get(UserContextKey); ok {
			stored, _ = v.(*model.User)
		}
		c.Status(http.StatusOK)
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if raw != "42" {
		t.Fatalf("expected header value to be forwarded, got %q", raw)
	}
	if stored == nil || stored.ID != 42 {
		t.Fatalf("expected user 42 in context, got %+v", stored)
	}
}

func TestOperatorRequired(t *testing.T) {
	serve := func(token, header string) int {
		router := gin.New()
		router.Use(OperatorRequired(token))
		router.POST("/", func(c *gin.Context) { c.Status(http.StatusOK) })

		req := httptest.NewRequest(http.MethodPost, "/", nil)
		if header != "" {
			req.Header.Set(OperatorTokenHeader, header)
		}
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		return resp.Code
	}

	if code := serve("s3cret", "s3cret"); code != http.StatusOK {
		t.Fatalf("expected 200 with matching token, got %d", code)
	}
	if code := serve("s3cret", ""); code != http.StatusForbidden {
		t.Fatalf("expected 403 without token, got %d", code)
	}
	if code := serve("s3cret", "s3cre"); code != http.StatusForbidden {
		t.Fatalf("expected 403 for wrong token, got %d", code)
	}
	if code := serve("", ""); code != http.StatusForbidden {
		t.Fatalf("expected 403 when no token is configured, got %d", code)
	}
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)

	router := gin.New()
	router.Use(RequestLogger(zap.New(core)))
	router.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/fail", func(c *gin.Context) {
		_ = c.Error(context.Canceled)
		c.Status(http.StatusInternalServerError)
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/fail", nil))

	entries := logs.FilterMessage("http request").AllUntimed()
	if len(entries) != 2 {
		t.Fatalf("expected 2 request logs, got %d", len(entries))
	}
	if entries[0].Level != zapcore.InfoLevel || entries[0].ContextMap()["status"] != int64(http.StatusOK) {
		t.Fatalf("unexpected first entry %+v", entries[0].ContextMap())
	}
	if entries[1].Level != zapcore.ErrorLevel {
		t.Fatalf("expected error level for 500, got %v", entries[1].Level)
	}
	if _, ok := entries[1].ContextMap()["errors"]; !ok {
		t.Fatalf("expected gin errors to be logged")
	}
}
