package notify_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/pos/internal/service/notify"
)

func testLogger() *logrus.Entry {
	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)
	return logger.WithField("component", "test")
}

func TestLineClientPush(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client, err := notify.NewLineClient("token-123", "U-recipient", testLogger(), notify.WithEndpoint(srv.URL))
	require.NoError(t, err)

	require.NoError(t, client.Push(context.Background(), "สรุปยอดขาย"))

	require.Equal(t, "Bearer token-123", gotAuth)
	require.Equal(t, "U-recipient", gotBody["to"])
	messages := gotBody["messages"].([]any)
	require.Len(t, messages, 1)
	first := messages[0].(map[string]any)
	require.Equal(t, "text", first["type"])
	require.Equal(t, "สรุปยอดขาย", first["text"])
}

func TestLineClientPushRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"invalid token"}`))
	}))
	defer srv.Close()

	client, err := notify.NewLineClient("bad-token", "U-recipient", testLogger(), notify.WithEndpoint(srv.URL))
	require.NoError(t, err)

	err = client.Push(context.Background(), "digest")
	require.Error(t, err)
	require.Contains(t, err.Error(), "status=401")
}

func TestNewLineClientValidation(t *testing.T) {
	_, err := notify.NewLineClient("", "U-recipient", testLogger())
	require.Error(t, err)

	_, err = notify.NewLineClient("token", "  ", testLogger())
	require.Error(t, err)
}

func TestNopNotifier(t *testing.T) {
	n := notify.NopNotifier{Logger: testLogger()}
	require.NoError(t, n.Push(context.Background(), "anything"))
}
