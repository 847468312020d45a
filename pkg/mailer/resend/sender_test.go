package resend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailtpl/pkg/mailer"
)

type capturedRequest struct {
	path string
	body map[string]any
}

func newTestServer(t *testing.T, status int, response string) (*httptest.Server, func() capturedRequest) {
	t.Helper()

	var (
		mu  sync.Mutex
		got capturedRequest
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		got.path = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&got.body)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(srv.Close)

	return srv, func() capturedRequest {
		mu.Lock()
		defer mu.Unlock()
		return got
	}
}

func TestSender_Send_Multipart(t *testing.T) {
	t.Parallel()

	srv, captured := newTestServer(t, http.StatusOK, `{"id":"msg_1"}`)
	s, err := New(Config{APIKey: "re_test", SenderEmail: "team@example.com", SenderName: "Team", BaseURL: srv.URL})
	require.NoError(t, err)

	email := &mailer.Email{
		ID:             "id-1",
		Subject:        "Welcome",
		Body:           "Hello",
		ContentSubtype: mailer.SubtypePlain,
		To:             []string{"ann@example.com"},
		Language:       "fr",
		Priority:       mailer.PriorityHigh,
		Tags:           mailer.SimpleTags("welcome"),
	}
	email.AttachAlternative("<p>Hello</p>", mailer.MIMETypeHTML)

	require.NoError(t, s.Send(context.Background(), email))

	got := captured()
	require.True(t, strings.HasSuffix(got.path, "/emails"))
	require.Equal(t, "Team <team@example.com>", got.body["from"])
	require.Equal(t, "Welcome", got.body["subject"])
	require.Equal(t, "Hello", got.body["text"])
	require.Equal(t, "<p>Hello</p>", got.body["html"])
	require.Equal(t, []any{"ann@example.com"}, got.body["to"])

	hdrs, ok := got.body["headers"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "1", hdrs["X-Priority"])
	require.Equal(t, "fr", hdrs["Content-Language"])
}

func TestSender_Send_HTMLOnly(t *testing.T) {
	t.Parallel()

	srv, captured := newTestServer(t, http.StatusOK, `{"id":"msg_2"}`)
	s, err := New(Config{APIKey: "re_test", SenderEmail: "team@example.com", BaseURL: srv.URL})
	require.NoError(t, err)

	err = s.Send(context.Background(), &mailer.Email{
		Subject:        "Hi",
		Body:           "<p>Hi</p>",
		ContentSubtype: mailer.SubtypeHTML,
		From:           "override@example.com",
		To:             []string{"bob@example.com"},
	})
	require.NoError(t, err)

	got := captured()
	require.Equal(t, "override@example.com", got.body["from"])
	require.Equal(t, "<p>Hi</p>", got.body["html"])
	require.NotContains(t, got.body, "text")
}

func TestSender_Send_APIError(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t, http.StatusUnprocessableEntity,
		`{"statusCode":422,"name":"validation_error","message":"invalid from"}`)
	s, err := New(Config{APIKey: "re_test", SenderEmail: "bad", BaseURL: srv.URL})
	require.NoError(t, err)

	err = s.Send(context.Background(), &mailer.Email{
		ID:             "id-3",
		Subject:        "Hi",
		Body:           "Hi",
		ContentSubtype: mailer.SubtypePlain,
		To:             []string{"bob@example.com"},
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "id-3")
}

func TestNew_InvalidBaseURL(t *testing.T) {
	t.Parallel()

	_, err := New(Config{BaseURL: "://nope"})
	require.Error(t, err)
}

func TestHeaders(t *testing.T) {
	t.Parallel()

	require.Nil(t, headers(&mailer.Email{Priority: mailer.PriorityStandard}))

	h := headers(&mailer.Email{
		Priority: mailer.PriorityLow,
		Headers:  map[string]string{"X-Campaign": "spring"},
	})
	require.Equal(t, map[string]string{"X-Campaign": "spring", "X-Priority": "5"}, h)
}

func TestTagValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   any
		want string
	}{
		{in: struct{}{}, want: "true"},
		{in: nil, want: "true"},
		{in: "v", want: "v"},
		{in: false, want: "false"},
		{in: 42, want: "42"},
		{in: int64(7), want: "7"},
		{in: 1.5, want: "1.5"},
		{in: mailer.PriorityHigh, want: "high"},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, tagValue(tt.in))
	}
}
