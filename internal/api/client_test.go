package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 5*time.Second, nil)
}

func TestRequestCarriesAuthHeaders(t *testing.T) {
	var gotAuth, gotRequestID, gotAccept string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		gotAccept = r.Header.Get("Accept")
		w.Write([]byte(`{}`))
	})
	c.SetToken("secret-token")

	var out struct{}
	require.NoError(t, c.Get(context.Background(), "/api/ping", &out))

	assert.Equal(t, "Bearer secret-token", gotAuth)
	assert.Equal(t, "application/json", gotAccept)
	_, err := uuid.Parse(gotRequestID)
	assert.NoError(t, err, "X-Request-ID must be a UUID")
}

func TestClearedTokenOmitsAuthHeader(t *testing.T) {
	var gotAuth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	})
	c.SetToken("secret-token")
	c.SetToken("")

	var out struct{}
	require.NoError(t, c.Get(context.Background(), "/api/ping", &out))
	assert.Empty(t, gotAuth)
}

func TestUnauthorizedBecomesAuthError(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		})

		_, err := c.MyNotifications(context.Background())
		require.Error(t, err)
		assert.True(t, IsAuthError(err), "status %d must classify as an auth error", status)

		var authErr *AuthError
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, status, authErr.Status)
	}
}

func TestServerErrorIsNotAuthError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"database unavailable"}`))
	})

	_, err := c.MyNotifications(context.Background())
	require.Error(t, err)
	assert.False(t, IsAuthError(err))
	assert.ErrorContains(t, err, "database unavailable")
}

func TestMyNotificationsPreservesServerOrder(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/notifications/my", r.URL.Path)
		w.Write([]byte(`[
			{"id":"n3","message":"third","read":false},
			{"id":"n1","message":"first","read":true},
			{"id":"n2","message":"second","read":false}
		]`))
	})

	list, err := c.MyNotifications(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "n3", list[0].ID)
	assert.Equal(t, "n1", list[1].ID)
	assert.Equal(t, "n2", list[2].ID)
}

func TestMarkNotificationRead(t *testing.T) {
	var gotMethod, gotPath string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, c.MarkNotificationRead(context.Background(), "n42"))
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/api/notifications/n42/read", gotPath)
}

func TestLoginStoresTokenOnClient(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		w.Write([]byte(`{
			"token":"fresh-token",
			"user":{"id":9,"name":"Officer Reyes","role":"officer"}
		}`))
	})

	p, err := c.Login(context.Background(), LoginRequest{
		Email: "reyes@example.gov", Password: "pw", Role: "officer",
	})
	require.NoError(t, err)

	assert.Equal(t, "fresh-token", c.Token())
	assert.Equal(t, "fresh-token", p.Token)
	assert.True(t, p.Authenticated)
	assert.Equal(t, "Officer Reyes", p.Name)
}

func TestLoginRejectedDoesNotStoreToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := c.Login(context.Background(), LoginRequest{
		Email: "reyes@example.gov", Password: "wrong", Role: "officer",
	})
	require.Error(t, err)
	assert.True(t, IsAuthError(err))
	assert.Empty(t, c.Token())
}

func TestContextCancellationAborts(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := c.MyNotifications(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}
