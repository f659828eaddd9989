package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"SocialFlow/internal/backend"
	"SocialFlow/internal/credentials"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *credentials.MemoryStore) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	creds := credentials.NewMemoryStore()
	return NewClient(server.URL, creds), creds
}

func TestRequest_AuthorizationHeader(t *testing.T) {
	var gotAuth atomic.Value
	client, creds := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth.Store(r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Write([]byte(`{}`))
	})
	ctx := context.Background()

	// No token, no header
	require.NoError(t, client.Request(ctx, http.MethodGet, "/api/health", nil, nil))
	assert.Equal(t, "", gotAuth.Load())

	require.NoError(t, creds.SetToken(ctx, "abc123"))
	require.NoError(t, client.Request(ctx, http.MethodGet, "/api/health", nil, nil))
	assert.Equal(t, "Bearer abc123", gotAuth.Load())

	require.NoError(t, creds.RemoveToken(ctx))
	require.NoError(t, client.Request(ctx, http.MethodGet, "/api/health", nil, nil))
	assert.Equal(t, "", gotAuth.Load())
}

func TestRequest_CallerHeadersWin(t *testing.T) {
	client, creds := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "text/plain", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer override", r.Header.Get("Authorization"))
		assert.Equal(t, "yes", r.Header.Get("X-Extra"))
		w.Write([]byte(`{}`))
	})
	ctx := context.Background()
	require.NoError(t, creds.SetToken(ctx, "abc123"))

	err := client.Request(ctx, http.MethodPost, "/api/brand", nil, nil,
		WithHeader("Content-Type", "text/plain"),
		WithHeader("Authorization", "Bearer override"),
		WithHeader("X-Extra", "yes"),
	)
	require.NoError(t, err)
}

func TestRequest_ErrorDetail(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantDetail string
	}{
		{"json detail", http.StatusBadRequest, `{"detail":"Email already registered"}`, "Email already registered"},
		{"validation list", http.StatusUnprocessableEntity, `{"detail":[{"msg":"field required"}]}`, "field required"},
		{"json without detail", http.StatusInternalServerError, `{"error":"boom"}`, DefaultErrorDetail},
		{"html body", http.StatusBadGateway, `<html>Bad Gateway</html>`, DefaultErrorDetail},
		{"empty body", http.StatusUnauthorized, ``, DefaultErrorDetail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			err := client.Request(context.Background(), http.MethodGet, "/api/auth/me", nil, nil)
			require.Error(t, err)

			var reqErr *RequestError
			require.True(t, errors.As(err, &reqErr))
			assert.Equal(t, tt.status, reqErr.Status)
			assert.Equal(t, tt.wantDetail, reqErr.Detail)
			assert.Equal(t, tt.wantDetail, err.Error())
			assert.False(t, IsTransport(err))
		})
	}
}

func TestRequest_DecodesBodyAsIs(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"anything":[1,2,3],"nested":{"ok":true}}`))
	})

	var out map[string]any
	require.NoError(t, client.Request(context.Background(), http.MethodGet, "/x", nil, &out))
	assert.Equal(t, []any{1.0, 2.0, 3.0}, out["anything"])
	assert.Equal(t, map[string]any{"ok": true}, out["nested"])
}

func TestRequest_SendsJSONBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "a@b.com", body["email"])
		w.Write([]byte(`{"access_token":"tok"}`))
	})

	resp, err := client.Login(context.Background(), backend.LoginRequest{Email: "a@b.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "tok", resp.AccessToken)
}

func TestRequest_UndecodableBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>maintenance</html>"))
	})

	var out backend.HealthResponse
	err := client.Request(context.Background(), http.MethodGet, "/api/health", nil, &out)
	var decErr *DecodeError
	require.ErrorAs(t, err, &decErr)
	assert.Equal(t, http.StatusOK, decErr.Status)
	assert.Equal(t, "<html>maintenance</html>", string(decErr.Body))
	assert.False(t, IsTransport(err))
}

func TestRequest_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewClient(url, credentials.NewMemoryStore())
	err := client.Request(context.Background(), http.MethodGet, "/api/health", nil, nil)
	require.Error(t, err)
	assert.True(t, IsTransport(err))
}

func TestRequest_Cancelled(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := client.Request(ctx, http.MethodGet, "/api/health", nil, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestClient_SameOrigin(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "/api/health", r.URL.Path)
		w.Write([]byte(`{"status":"healthy"}`))
	}))
	defer server.Close()

	client := NewClient("", credentials.NewMemoryStore(), WithSameOrigin(server.URL+"/"))
	assert.Equal(t, "", client.BaseURL())
	assert.Equal(t, server.URL+"/api/health", client.URL("/api/health"))

	resp, err := client.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, int32(1), hits.Load())
}

func TestClient_Telemetry(t *testing.T) {
	spans := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spans))
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, credentials.NewMemoryStore(),
		WithTelemetry(tp.Tracer("test"), mp.Meter("test")))
	require.NoError(t, client.Request(context.Background(), http.MethodGet, "/api/health", nil, nil))

	ended := spans.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "api.request", ended[0].Name())

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	require.NotEmpty(t, rm.ScopeMetrics)
	assert.Equal(t, "http.client.request.duration", rm.ScopeMetrics[0].Metrics[0].Name)
}

func TestEndpoints(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":1,"email":"a@b.com","name":"A","subscription":"pro"}`))
	})
	mux.HandleFunc("/api/content/generate", func(w http.ResponseWriter, r *http.Request) {
		var req backend.GenerateContentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "instagram", req.Platform)
		w.Write([]byte(`{"content":["one","two"]}`))
	})
	mux.HandleFunc("/api/images/generate", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"images":["https://img.example.com/1.png"]}`))
	})
	mux.HandleFunc("/api/brand", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			w.Write([]byte(`{"business_name":"Acme","industry":"Retail","tone":"Casual","brand_colors":"#111,#222"}`))
			return
		}
		w.Write([]byte(`{"success":true,"message":"Brand profile saved"}`))
	})
	mux.HandleFunc("/api/content", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			w.Write([]byte(`[{"id":3,"platform":"twitter","content_type":"post","body":"b","status":"draft","created_at":"2026-10-01T00:00:00"}]`))
			return
		}
		w.Write([]byte(`{"id":4,"success":true}`))
	})
	mux.HandleFunc("/api/payments/stk-push", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false}`))
	})
	mux.HandleFunc("/api/subscription", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"plan":"free","expiry":null}`))
	})
	mux.HandleFunc("/api/subscription/activate", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "pro", r.URL.Query().Get("plan"))
		w.Write([]byte(`{"success":true,"plan":"pro","expiry":"2026-11-16T00:00:00"}`))
	})

	server := httptest.NewServer(mux)
	defer server.Close()
	client := NewClient(server.URL, credentials.NewMemoryStore())
	ctx := context.Background()

	me, err := client.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, backend.ID("1"), me.ID)

	gen, err := client.GenerateContent(ctx, backend.GenerateContentRequest{
		Platform: "instagram", ContentType: "post", Tone: "Casual", Topic: "launch",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, gen.Content)

	imgs, err := client.GenerateImages(ctx, backend.GenerateImagesRequest{Prompt: "office", Style: "modern"})
	require.NoError(t, err)
	assert.Len(t, imgs.Images, 1)

	brand, err := client.Brand(ctx)
	require.NoError(t, err)
	require.NotNil(t, brand)
	assert.Equal(t, backend.ColorList{"#111", "#222"}, brand.BrandColors)

	saved, err := client.SaveBrand(ctx, *brand)
	require.NoError(t, err)
	assert.True(t, saved.Success)

	contents, err := client.Contents(ctx)
	require.NoError(t, err)
	require.Len(t, contents, 1)
	assert.Equal(t, backend.ID("3"), contents[0].ID)

	created, err := client.CreateContent(ctx, backend.CreateContentRequest{
		Platform: "twitter", ContentType: "post", Body: "b", Status: "draft",
	})
	require.NoError(t, err)
	assert.Equal(t, backend.ID("4"), created.ID)

	push, err := client.STKPush(ctx, backend.STKPushRequest{Phone: "254712345678", Amount: 2500, Plan: "pro"})
	require.NoError(t, err)
	assert.False(t, push.Success)

	sub, err := client.Subscription(ctx)
	require.NoError(t, err)
	assert.Equal(t, "free", sub.Plan)

	act, err := client.ActivateSubscription(ctx, "pro")
	require.NoError(t, err)
	assert.Equal(t, "pro", act.Plan)
}

func TestEndpoints_SchemaViolations(t *testing.T) {
	var hits atomic.Int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if strings.HasSuffix(r.URL.Path, "/generate") {
			w.Write([]byte(`{"content":null}`))
			return
		}
		w.Write([]byte(`{"token_type":"bearer"}`))
	})
	ctx := context.Background()

	// Response without access_token
	_, err := client.Login(ctx, backend.LoginRequest{Email: "a@b.com", Password: "pw"})
	var schemaErr *backend.SchemaError
	require.True(t, errors.As(err, &schemaErr))

	// Response without content
	_, err = client.GenerateContent(ctx, backend.GenerateContentRequest{
		Platform: "instagram", ContentType: "post", Tone: "Casual", Topic: "launch",
	})
	require.True(t, errors.As(err, &schemaErr))
	assert.Equal(t, int32(2), hits.Load())

	// Invalid requests never leave the client
	_, err = client.Login(ctx, backend.LoginRequest{Email: "nope"})
	require.True(t, errors.As(err, &schemaErr))
	assert.Equal(t, int32(2), hits.Load())
}
