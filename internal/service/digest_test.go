package service

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"otoran/internal/digest"
	"otoran/internal/domain"
	"otoran/internal/logger"
)

// Mock search client for testing
type mockSearchClient struct {
	result       *domain.SearchResult
	searchErr    error
	lastModified time.Time
	versionErr   error
	params       []url.Values
}

func (m *mockSearchClient) Search(ctx context.Context, params url.Values) (*domain.SearchResult, error) {
	m.params = append(m.params, params)
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	return m.result, nil
}

func (m *mockSearchClient) LastModified(ctx context.Context) (time.Time, error) {
	if m.versionErr != nil {
		return time.Time{}, m.versionErr
	}
	return m.lastModified, nil
}

// Mock view repository for testing
type mockViewRepository struct {
	views     []domain.DigestView
	createErr error
	popular   []domain.PopularDigest
}

func (m *mockViewRepository) Create(ctx context.Context, view *domain.DigestView) error {
	if m.createErr != nil {
		return m.createErr
	}
	view.ID = len(m.views) + 1
	m.views = append(m.views, *view)
	return nil
}

func (m *mockViewRepository) GetPopularDigests(ctx context.Context, timeWindowDays, numResults int) ([]domain.PopularDigest, error) {
	return m.popular, nil
}

func newTestDigestService(search *mockSearchClient, views *mockViewRepository) *DigestService {
	log := logger.New(logger.Config{Level: "error", Format: "text"})
	return NewDigestService(digest.DefaultCollections(), search, views, log)
}

func TestDigestService_GetDigest(t *testing.T) {
	search := &mockSearchClient{
		result: &domain.SearchResult{
			TotalCount: 120,
			Videos: []domain.Video{
				{ContentID: "sm1", Tags: "音MAD VOCALOID", MylistCounter: 1},
				{ContentID: "sm2", Tags: "音MAD 音mad", MylistCounter: 5},
				{ContentID: "sm3", Tags: "", MylistCounter: 3},
			},
		},
	}
	views := &mockViewRepository{}
	svc := newTestDigestService(search, views)

	plan, err := svc.Plan("otomad", "2020", "7", "27")
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}

	d, err := svc.GetDigest(context.Background(), plan)
	if err != nil {
		t.Fatalf("GetDigest() error = %v", err)
	}

	if d.TotalCount != 120 {
		t.Errorf("GetDigest() TotalCount = %d, want 120", d.TotalCount)
	}

	wantOrder := []string{"sm2", "sm3", "sm1"}
	for i, id := range wantOrder {
		if d.Videos[i].ContentID != id {
			t.Errorf("GetDigest() Videos[%d] = %s, want %s", i, d.Videos[i].ContentID, id)
		}
	}

	if len(d.MajorTags) != 1 || d.MajorTags[0] != (domain.TagCount{Tag: "音MAD", Count: 3}) {
		t.Errorf("GetDigest() MajorTags = %+v, want [{音MAD 3}]", d.MajorTags)
	}

	if d.Path != "/daily/otomad/2020/07/27" || d.PrevPath != "/daily/otomad/2020/07/26" || d.NextPath != "/daily/otomad/2020/07/28" {
		t.Errorf("GetDigest() paths = %s %s %s", d.Path, d.PrevPath, d.NextPath)
	}

	if len(search.params) != 1 {
		t.Fatalf("expected exactly one search call, got %d", len(search.params))
	}
	if got := search.params[0].Get("_sort"); got != digest.SortByLike {
		t.Errorf("search _sort = %s, want %s", got, digest.SortByLike)
	}

	if len(views.views) != 1 {
		t.Fatalf("expected one recorded view, got %d", len(views.views))
	}
	if views.views[0].Day != "2020/07/27" || views.views[0].ShownCount != 3 {
		t.Errorf("recorded view = %+v", views.views[0])
	}
}

func TestDigestService_GetDigest_SearchError(t *testing.T) {
	searchErr := errors.New("boom")
	views := &mockViewRepository{}
	svc := newTestDigestService(&mockSearchClient{searchErr: searchErr}, views)

	plan, err := svc.Plan("otomad", "2020", "07", "26")
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}

	d, err := svc.GetDigest(context.Background(), plan)
	if !errors.Is(err, searchErr) {
		t.Errorf("GetDigest() error = %v, want wrapped %v", err, searchErr)
	}
	if d != nil {
		t.Error("GetDigest() should not return a partial digest")
	}
	if len(views.views) != 0 {
		t.Error("failed digests should not be recorded")
	}
}

func TestDigestService_GetDigest_ViewErrorIgnored(t *testing.T) {
	search := &mockSearchClient{result: &domain.SearchResult{}}
	svc := newTestDigestService(search, &mockViewRepository{createErr: errors.New("disk full")})

	plan, _ := svc.Plan("otomad", "2020", "07", "26")
	d, err := svc.GetDigest(context.Background(), plan)
	if err != nil {
		t.Fatalf("GetDigest() error = %v", err)
	}
	if len(d.Videos) != 0 || len(d.MajorTags) != 0 {
		t.Errorf("empty result should give an empty digest, got %+v", d)
	}
}

func TestDigestService_Plan(t *testing.T) {
	svc := newTestDigestService(&mockSearchClient{}, &mockViewRepository{})

	if _, err := svc.Plan("unknown", "2020", "1", "1"); !errors.Is(err, digest.ErrUnknownCollection) {
		t.Errorf("Plan() unknown word error = %v", err)
	}

	var dateErr digest.MalformedDateError
	if _, err := svc.Plan("otomad", "2020", "x", "1"); !errors.As(err, &dateErr) {
		t.Errorf("Plan() malformed date error = %v", err)
	}

	plan, err := svc.Plan("otomad", "2020", "13", "1")
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	if plan.CanonicalPath != "/daily/otomad/2021/01/01" {
		t.Errorf("Plan() CanonicalPath = %s", plan.CanonicalPath)
	}
}

func TestDigestService_LatestPath(t *testing.T) {
	tests := []struct {
		name         string
		word         string
		lastModified time.Time
		versionErr   error
		want         string
		wantErr      bool
	}{
		{
			name:         "previous day in service zone",
			word:         "otomad",
			lastModified: time.Date(2020, 7, 28, 5, 0, 0, 0, digest.ServiceZone),
			want:         "/daily/otomad/2020/07/27",
		},
		{
			name:         "utc timestamp crossing midnight",
			word:         "ytpmv",
			lastModified: time.Date(2020, 7, 27, 20, 0, 0, 0, time.UTC),
			want:         "/daily/ytpmv/2020/07/27",
		},
		{
			name:       "version endpoint down",
			word:       "otomad",
			versionErr: errors.New("unreachable"),
			wantErr:    true,
		},
		{
			name:    "unknown word",
			word:    "nope",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestDigestService(&mockSearchClient{
				lastModified: tt.lastModified,
				versionErr:   tt.versionErr,
			}, &mockViewRepository{})

			got, err := svc.LatestPath(context.Background(), tt.word)
			if (err != nil) != tt.wantErr {
				t.Fatalf("LatestPath() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("LatestPath() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestDigestService_GetPopularDigests(t *testing.T) {
	views := &mockViewRepository{popular: []domain.PopularDigest{{Count: 2, Word: "otomad", Day: "2020/07/27"}}}
	svc := newTestDigestService(&mockSearchClient{}, views)

	got, err := svc.GetPopularDigests(context.Background())
	if err != nil {
		t.Fatalf("GetPopularDigests() error = %v", err)
	}
	if len(got) != 1 || got[0].Word != "otomad" {
		t.Errorf("GetPopularDigests() = %+v", got)
	}

	if n := len(svc.Collections()); n != 3 {
		t.Errorf("Collections() returned %d collections, want 3", n)
	}
}
