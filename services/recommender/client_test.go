package recommender_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tubewise/models"
	"tubewise/services/recommender"
)

type capturedRequest struct {
	Method   string
	Path     string
	RawQuery string
	Body     string
	Header   http.Header
}

// recorderServer answers every request with status and body and remembers
// what it saw.
type recorderServer struct {
	*httptest.Server
	mu       sync.Mutex
	requests []capturedRequest
}

func newRecorderServer(t *testing.T, status int, body string) *recorderServer {
	t.Helper()
	rs := &recorderServer{}
	rs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		rs.mu.Lock()
		rs.requests = append(rs.requests, capturedRequest{
			Method:   r.Method,
			Path:     r.URL.Path,
			RawQuery: r.URL.RawQuery,
			Body:     string(data),
			Header:   r.Header.Clone(),
		})
		rs.mu.Unlock()
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(rs.Close)
	return rs
}

func (rs *recorderServer) last(t *testing.T) capturedRequest {
	t.Helper()
	rs.mu.Lock()
	defer rs.mu.Unlock()
	require.NotEmpty(t, rs.requests, "no request reached the server")
	return rs.requests[len(rs.requests)-1]
}

func newClient(rs *recorderServer) *recommender.Client {
	return recommender.NewClient(recommender.Config{BaseURL: rs.URL + "/api", UserID: 1})
}

func TestRecommendEncodesQuery(t *testing.T) {
	rs := newRecorderServer(t, http.StatusOK, `{"aiResponse":"Start with **bridges**.","videos":[{"videoId":"a1","title":"Bridges"}]}`)

	rec, err := newClient(rs).Recommend(context.Background(), "docker networking basics")
	require.NoError(t, err)

	req := rs.last(t)
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "/api/recommendations/ask", req.Path)
	assert.Equal(t, "userId=1&query=docker%20networking%20basics", req.RawQuery)
	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
	assert.Contains(t, req.Header.Get("Accept"), "application/json")
	assert.Equal(t, "tubewise/1.0", req.Header.Get("User-Agent"))

	assert.Equal(t, "Start with **bridges**.", rec.AIResponse)
	require.Len(t, rec.Videos, 1)
	assert.Equal(t, "a1", rec.Videos[0].VideoID)
}

func TestRecommendEscapesReservedCharacters(t *testing.T) {
	rs := newRecorderServer(t, http.StatusOK, `{"aiResponse":"","videos":[]}`)

	_, err := newClient(rs).Recommend(context.Background(), "c++ & go?")
	require.NoError(t, err)
	assert.Equal(t, "userId=1&query=c%2B%2B%20%26%20go%3F", rs.last(t).RawQuery)
}

func TestTriggerIngestion(t *testing.T) {
	rs := newRecorderServer(t, http.StatusOK, "Ingested 5 videos for topic 'go concurrency'")

	msg, err := newClient(rs).TriggerIngestion(context.Background(), "go concurrency", 5)
	require.NoError(t, err)
	assert.Equal(t, "Ingested 5 videos for topic 'go concurrency'", msg)

	req := rs.last(t)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/api/ingestion/trigger", req.Path)
	assert.Equal(t, "topic=go%20concurrency&max=5", req.RawQuery)
	assert.Empty(t, req.Body)
}

func TestRecordInteractionBody(t *testing.T) {
	rs := newRecorderServer(t, http.StatusOK, `{"interactionId":3}`)

	require.NoError(t, newClient(rs).RecordInteraction(context.Background(), "xyz", models.ActionToggleWatchLater))

	req := rs.last(t)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/api/interactions", req.Path)
	assert.Empty(t, req.RawQuery)
	assert.JSONEq(t, `{"userId":1,"videoId":"xyz","action":"TOGGLE_WATCH_LATER"}`, req.Body)
}

func TestDeleteInteraction(t *testing.T) {
	rs := newRecorderServer(t, http.StatusNoContent, "")

	require.NoError(t, newClient(rs).DeleteInteraction(context.Background(), "xyz"))

	req := rs.last(t)
	assert.Equal(t, http.MethodDelete, req.Method)
	assert.Equal(t, "/api/interactions", req.Path)
	assert.Equal(t, "userId=1&videoId=xyz", req.RawQuery)
}

func TestHistoryUsesLimit(t *testing.T) {
	rs := newRecorderServer(t, http.StatusOK, `[{"video":{"videoId":"a"},"watchStatus":"FULL","lastModified":"2024-03-01T12:00:00"}]`)

	items, err := newClient(rs).History(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, models.WatchStatusFull, items[0].WatchStatus)
	assert.Equal(t, "userId=1&limit=50", rs.last(t).RawQuery)
	assert.Equal(t, "/api/interactions/history", rs.last(t).Path)

	limited := recommender.NewClient(recommender.Config{BaseURL: rs.URL + "/api/", UserID: 2, HistoryLimit: 10})
	_, err = limited.History(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "userId=2&limit=10", rs.last(t).RawQuery)
	assert.Equal(t, "/api/interactions/history", rs.last(t).Path)
}

func TestWatchLater(t *testing.T) {
	rs := newRecorderServer(t, http.StatusOK, `[]`)

	items, err := newClient(rs).WatchLater(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, "/api/interactions/watch-later", rs.last(t).Path)
	assert.Equal(t, "userId=1", rs.last(t).RawQuery)
}

func TestGetUserNotFound(t *testing.T) {
	rs := newRecorderServer(t, http.StatusNotFound, "")

	_, err := newClient(rs).GetUser(context.Background())
	require.Error(t, err)
	assert.True(t, recommender.IsNotFound(err))
	assert.True(t, errors.Is(err, recommender.ErrNotFound))

	var apiErr *recommender.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "/users/1", apiErr.Path)
}

func TestServerErrorIsNotNotFound(t *testing.T) {
	rs := newRecorderServer(t, http.StatusInternalServerError, "boom")

	_, err := newClient(rs).Recommend(context.Background(), "x")
	require.Error(t, err)
	assert.False(t, recommender.IsNotFound(err))
	assert.Contains(t, err.Error(), "500")
	assert.Contains(t, err.Error(), "boom")
}

func TestRegister(t *testing.T) {
	rs := newRecorderServer(t, http.StatusOK, `{"userId":12,"username":"ada","email":"ada@example.com","createdAt":"2024-06-01T09:30:00"}`)

	user, err := newClient(rs).Register(context.Background(), models.Registration{
		Username:  "ada",
		Email:     "ada@example.com",
		Interests: []string{"go", "databases"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(12), user.UserID)

	req := rs.last(t)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/api/users", req.Path)

	var sent models.Registration
	require.NoError(t, json.Unmarshal([]byte(req.Body), &sent))
	assert.Equal(t, []string{"go", "databases"}, sent.Interests)
}

func TestPingTreatsHTTPErrorsAsReachable(t *testing.T) {
	rs := newRecorderServer(t, http.StatusNotFound, "")
	assert.NoError(t, newClient(rs).Ping(context.Background()))

	down := recommender.NewClient(recommender.Config{BaseURL: "http://127.0.0.1:1/api", UserID: 1})
	assert.Error(t, down.Ping(context.Background()))
}

func TestTransportErrorIsWrapped(t *testing.T) {
	rs := newRecorderServer(t, http.StatusOK, `{}`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newClient(rs).Recommend(ctx, "x")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTimeoutIsConfigurable(t *testing.T) {
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(slow.Close)

	c := recommender.NewClient(recommender.Config{BaseURL: slow.URL, UserID: 1, Timeout: 50 * time.Millisecond})
	_, err := c.WatchLater(context.Background())
	require.Error(t, err)
	var apiErr *recommender.APIError
	assert.False(t, errors.As(err, &apiErr))
}
