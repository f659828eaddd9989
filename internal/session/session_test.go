package session

import (
	"sync"
	"testing"
	"time"

	"SocialFlow/internal/backend"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestNew_EmptyDefaults(t *testing.T) {
	s := New()
	st := s.Snapshot()

	assert.Nil(t, st.User)
	assert.Nil(t, st.Brand)
	assert.NotNil(t, st.Contents)
	assert.Empty(t, st.Contents)
	assert.False(t, st.IsAuthenticated)
	assert.NotEmpty(t, s.ID())
	assert.False(t, s.StartTime().IsZero())
}

func TestSetUser_TracksAuthentication(t *testing.T) {
	s := New()

	s.SetUser(&User{ID: "1", Email: "a@b.com", Name: "A", Subscription: SubscriptionPro})
	assert.True(t, s.IsAuthenticated())
	assert.Equal(t, "1", s.User().ID)

	s.SetUser(nil)
	assert.False(t, s.IsAuthenticated())
	assert.Nil(t, s.User())
}

func TestSetIsAuthenticated(t *testing.T) {
	s := New()
	s.SetIsAuthenticated(true)
	assert.True(t, s.IsAuthenticated())
	assert.Nil(t, s.User())
}

func TestLogout_ClearsEverything(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*Store)
	}{
		{"empty", func(*Store) {}},
		{"user only", func(s *Store) {
			s.SetUser(&User{ID: "1"})
		}},
		{"fully populated", func(s *Store) {
			s.SetUser(&User{ID: "1", Email: "a@b.com"})
			s.SetBrand(&BrandProfile{BusinessName: "Acme", BrandColors: []string{"#6366F1"}})
			s.SetContents([]Content{{ID: "1"}, {ID: "2"}})
		}},
		{"flag set without user", func(s *Store) {
			s.SetIsAuthenticated(true)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			tt.setup(s)
			s.Logout()

			st := s.Snapshot()
			assert.Nil(t, st.User)
			assert.Nil(t, st.Brand)
			assert.Empty(t, st.Contents)
			assert.False(t, st.IsAuthenticated)
		})
	}
}

func TestSnapshot_IsACopy(t *testing.T) {
	s := New()
	s.SetBrand(&BrandProfile{BusinessName: "Acme", BrandColors: []string{"#111"}})
	s.SetContents([]Content{{ID: "1", Body: "original"}})

	st := s.Snapshot()
	st.Brand.BrandColors[0] = "#999"
	st.Contents[0].Body = "changed"

	again := s.Snapshot()
	assert.Equal(t, "#111", again.Brand.BrandColors[0])
	assert.Equal(t, "original", again.Contents[0].Body)
}

func TestSetContents_NilBecomesEmpty(t *testing.T) {
	s := New()
	s.SetContents([]Content{{ID: "1"}})
	s.SetContents(nil)
	assert.NotNil(t, s.Snapshot().Contents)
	assert.Empty(t, s.Snapshot().Contents)
}

func TestSubscribe(t *testing.T) {
	s := New()

	var got []State
	unsubscribe := s.Subscribe(func(st State) {
		got = append(got, st)
	})

	s.SetUser(&User{ID: "1"})
	s.Logout()
	require.Len(t, got, 2)
	assert.True(t, got[0].IsAuthenticated)
	assert.False(t, got[1].IsAuthenticated)

	unsubscribe()
	s.SetUser(&User{ID: "2"})
	assert.Len(t, got, 2)
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.SetUser(&User{ID: "1"})
			s.SetContents([]Content{{ID: "x"}})
		}()
		go func() {
			defer wg.Done()
			_ = s.Snapshot()
			s.Logout()
		}()
	}
	wg.Wait()
}

func TestUserFromMe(t *testing.T) {
	u := UserFromMe(&backend.MeResponse{ID: "1", Email: "a@b.com", Name: "A", Subscription: "pro"})
	assert.Equal(t, &User{ID: "1", Email: "a@b.com", Name: "A", Subscription: "pro"}, u)

	u = UserFromMe(&backend.MeResponse{ID: "2", Email: "c@d.com"})
	assert.Equal(t, SubscriptionFree, u.Subscription)
}

func TestContentFromWire(t *testing.T) {
	c := ContentFromWire(backend.Content{
		ID:            "7",
		Platform:      "instagram",
		ContentType:   "post",
		Body:          "hello",
		ScheduledDate: "2026-10-20T10:00:00",
		CreatedAt:     "2026-10-17T09:30:00.123456",
	})

	assert.Equal(t, "7", c.ID)
	assert.Equal(t, StatusDraft, c.Status)
	require.NotNil(t, c.ScheduledDate)
	assert.Equal(t, time.Date(2026, 10, 20, 10, 0, 0, 0, time.UTC), *c.ScheduledDate)
	assert.Equal(t, 2026, c.CreatedAt.Year())

	c = ContentFromWire(backend.Content{ID: "8", ScheduledDate: "not a date"})
	assert.Nil(t, c.ScheduledDate)
}

func TestBrandRoundTrip(t *testing.T) {
	in := BrandProfile{
		BusinessName: "Acme", Industry: "Retail", Tone: "Casual",
		BrandColors: []string{"#6366F1"},
	}
	out := BrandFromWire(ptr(BrandToWire(in)))
	assert.Equal(t, in, *out)
	assert.Nil(t, BrandFromWire(nil))
}

func ptr[T any](v T) *T { return &v }
