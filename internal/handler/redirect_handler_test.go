package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"shrinklink/internal/model"
	"shrinklink/internal/ratelimit"
	"shrinklink/internal/reachability"
	"shrinklink/internal/service"
)

// codeStore is a minimal LinkStore fake for redirect tests.
type codeStore struct {
	links map[string]*model.Link
}

func (s *codeStore) Create(context.Context, *model.Link) error { return nil }
func (s *codeStore) GetByID(context.Context, uint) (*model.Link, error) {
	return nil, nil
}
func (s *codeStore) GetByShortCode(_ context.Context, code string) (*model.Link, error) {
	if link, ok := s.links[code]; ok {
		clone := *link
		return &clone, nil
	}
	return nil, nil
}
func (s *codeStore) ExistsByShortCode(_ context.Context, code string) (bool, error) {
	_, ok := s.links[code]
	return ok, nil
}
func (s *codeStore) UpdateFields(context.Context, uint, map[string]interface{}) error { return nil }
func (s *codeStore) Delete(context.Context, uint) error                              { return nil }
func (s *codeStore) AddClicks(context.Context, uint, int64) error                    { return nil }
func (s *codeStore) ListByOwner(context.Context, string, int, int, *uint, string) ([]model.Link, int64, error) {
	return nil, 0, nil
}
func (s *codeStore) ListByGroup(context.Context, uint) ([]model.Link, error) { return nil, nil }
func (s *codeStore) ListAll(context.Context) ([]model.Link, error)           { return nil, nil }

type emptyGroupStore struct{}

func (emptyGroupStore) Create(context.Context, *model.Group) error          { return nil }
func (emptyGroupStore) GetByID(context.Context, uint) (*model.Group, error) { return nil, nil }
func (emptyGroupStore) Delete(context.Context, uint) error                  { return nil }
func (emptyGroupStore) ListByOwner(context.Context, string, int, int) ([]model.Group, int64, error) {
	return nil, 0, nil
}

type passChecker struct{}

func (passChecker) Validate(context.Context, string) reachability.Result {
	return reachability.Result{OK: true}
}

func redirectRouter(links map[string]*model.Link) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := service.NewLinkService(&codeStore{links: links}, emptyGroupStore{}, ratelimit.NewMemoryLimiter(10, time.Hour), passChecker{}, nil)
	h := NewRedirectHandler(svc)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}
		h.Redirect(c)
	})
	return r
}

func TestRedirectFound(t *testing.T) {
	r := redirectRouter(map[string]*model.Link{
		"aZ3kT9": {
			BaseModel:   model.BaseModel{ID: 1},
			ShortCode:   "aZ3kT9",
			OriginalURL: "https://example.com",
			Expiration:  time.Now().Unix() + 1000,
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/aZ3kT9", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rr.Code)
	}
	if loc := rr.Header().Get("Location"); loc != "https://example.com" {
		t.Errorf("expected redirect to stored URL, got %q", loc)
	}
	if cc := rr.Header().Get("Cache-Control"); cc == "" {
		t.Error("redirect must not be cacheable")
	}
}

func TestRedirectUnknownCode(t *testing.T) {
	r := redirectRouter(map[string]*model.Link{})

	req := httptest.NewRequest(http.MethodGet, "/nosuch", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestRedirectExpiredCode(t *testing.T) {
	r := redirectRouter(map[string]*model.Link{
		"oldone": {
			BaseModel:   model.BaseModel{ID: 1},
			ShortCode:   "oldone",
			OriginalURL: "https://example.com",
			Expiration:  time.Now().Unix() - 1,
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/oldone", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusGone {
		t.Fatalf("expected 410 for expired link, got %d", rr.Code)
	}
}
