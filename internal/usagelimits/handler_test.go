package usagelimits

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestRouter(repo Repo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewHandler(NewService(repo)).RegisterRoutes(router)
	return router
}

func TestListEmptyCollection(t *testing.T) {
	router := newTestRouter(NewMemoryRepo())

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/modelLimit", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if got := resp.Body.String(); got != "[]" {
		t.Fatalf("expected empty array body, got %s", got)
	}
}

func TestListRoundTrip(t *testing.T) {
	repo := NewMemoryRepo()
	repo.Seed(UsageLimit{Date: "2025-11-26", JrUsed: 10, SrUsed: 5, JrLimit: 100, SrLimit: 50})
	router := newTestRouter(repo)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/modelLimit", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var got []UsageLimit
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 record, got %d", len(got))
	}
	rec := got[0]
	if rec.ID == "" {
		t.Fatalf("expected derived id, got empty")
	}
	if rec.Date != "2025-11-26" || rec.JrUsed != 10 || rec.SrUsed != 5 || rec.JrLimit != 100 || rec.SrLimit != 50 {
		t.Fatalf("record did not round-trip: %+v", rec)
	}
}

func TestListPreservesInsertionOrder(t *testing.T) {
	repo := NewMemoryRepo()
	dates := []string{"2025-11-24", "2025-11-25", "2025-11-26"}
	for _, d := range dates {
		repo.Seed(UsageLimit{Date: d, JrLimit: 100, SrLimit: 50})
	}
	router := newTestRouter(repo)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/modelLimit", nil))

	var got []UsageLimit
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(got) != len(dates) {
		t.Fatalf("expected %d records, got %d", len(dates), len(got))
	}
	for i, d := range dates {
		if got[i].Date != d {
			t.Fatalf("expected %s at index %d, got %s", d, i, got[i].Date)
		}
	}
}

type failingRepo struct{}

func (failingRepo) List(ctx context.Context) ([]UsageLimit, error) {
	return nil, errors.New("connection reset")
}

func (failingRepo) GetByDate(ctx context.Context, date string) (UsageLimit, error) {
	return UsageLimit{}, errors.New("connection reset")
}

func (failingRepo) IncrementUsed(ctx context.Context, date, tier string) error {
	return errors.New("connection reset")
}

func TestListStorageFailure(t *testing.T) {
	router := newTestRouter(failingRepo{})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/modelLimit", nil))

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 on storage failure, got %d", resp.Code)
	}
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body.Error.Code != "internal_error" {
		t.Fatalf("expected internal_error code, got %q", body.Error.Code)
	}
}

func TestListConcurrentRequests(t *testing.T) {
	repo := NewMemoryRepo()
	for i := 0; i < 3; i++ {
		repo.Seed(UsageLimit{Date: "2025-11-2" + string(rune('4'+i)), JrLimit: 100, SrLimit: 50})
	}
	router := newTestRouter(repo)

	const workers = 50
	var wg sync.WaitGroup
	codes := make([]int, workers)
	lengths := make([]int, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/modelLimit", nil))
			codes[i] = resp.Code
			var got []UsageLimit
			if err := json.NewDecoder(resp.Body).Decode(&got); err == nil {
				lengths[i] = len(got)
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		if codes[i] != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, codes[i])
		}
		if lengths[i] != 3 {
			t.Fatalf("request %d: expected 3 records, got %d", i, lengths[i])
		}
	}
}
