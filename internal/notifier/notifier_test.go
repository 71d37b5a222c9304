package notifier

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"AssetCompare/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleReport() model.Report {
	return model.Report{
		SeriesA: "A",
		SeriesB: "B",
		Range:   "2024-01-01..2024-01-05",
		Rows:    5,
		Correlations: []model.Correlation{
			{Method: model.MethodPearson, SeriesA: "A", SeriesB: "B", Value: 0.9449111825230679},
			{Method: model.MethodQuantDare, SeriesA: "A", SeriesB: "B", Undefined: "zero magnitude in series B"},
		},
	}
}

func TestFormatReport_Text(t *testing.T) {
	out, err := FormatReport(sampleReport(), FormatText)
	require.NoError(t, err)
	assert.Equal(t, "A vs B, 2024-01-01..2024-01-05, 5 rows\n"+
		"Pearson correlation of A and B: 0.94491\n"+
		"QuantDare correlation of A and B: undefined (zero magnitude in series B)\n", out)
}

func TestFormatReport_JSONAndYAML(t *testing.T) {
	out, err := FormatReport(sampleReport(), FormatJSON)
	require.NoError(t, err)
	var fromJSON model.Report
	require.NoError(t, json.Unmarshal([]byte(out), &fromJSON))
	assert.Equal(t, 0.94491, fromJSON.Correlations[0].Value)
	assert.Equal(t, "zero magnitude in series B", fromJSON.Correlations[1].Undefined)

	out, err = FormatReport(sampleReport(), "YAML")
	require.NoError(t, err)
	var fromYAML model.Report
	require.NoError(t, yaml.Unmarshal([]byte(out), &fromYAML))
	assert.Equal(t, 0.94491, fromYAML.Correlations[0].Value)
	assert.Equal(t, 5, fromYAML.Rows)

	_, err = FormatReport(sampleReport(), "xml")
	assert.Error(t, err)
}

func TestFormatMessage_EscapesHTML(t *testing.T) {
	r := sampleReport()
	r.SeriesA = "<A>"
	msg := FormatMessage(r)
	assert.True(t, strings.HasPrefix(msg, "<b>&lt;A&gt; vs B</b>"))
}

func newTestNotifier(srv *httptest.Server) *TelegramNotifier {
	n := NewTelegramNotifier("TOKEN", "42", "", nil)
	n.BaseURL = srv.URL
	n.RetryBase = time.Millisecond
	return n
}

func TestSend_Payload(t *testing.T) {
	var got map[string]string
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &got)
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	require.NoError(t, newTestNotifier(srv).Send(context.Background(), "hello"))
	assert.Equal(t, "/botTOKEN/sendMessage", path)
	assert.Equal(t, "42", got["chat_id"])
	assert.Equal(t, "hello", got["text"])
	assert.Equal(t, "HTML", got["parse_mode"])
}

func TestSendWithRetry(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			http.Error(w, "busy", http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	n := newTestNotifier(srv)
	require.NoError(t, n.SendWithRetry(context.Background(), "hi", 3))
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))

	atomic.StoreInt32(&calls, -10)
	err := n.SendWithRetry(context.Background(), "hi", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "all 2 attempts failed")
	assert.Contains(t, err.Error(), "status 502")
}

func TestStartPolling_RepliesToCommands(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var polls int32
	replies := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/getUpdates"):
			if atomic.AddInt32(&polls, 1) == 1 {
				assert.Equal(t, "0", r.URL.Query().Get("offset"))
				w.Write([]byte(`{"ok":true,"result":[{"update_id":7,"message":{"text":" /help "}}]}`))
				return
			}
			assert.Equal(t, "8", r.URL.Query().Get("offset"))
			cancel()
			w.Write([]byte(`{"ok":true,"result":[]}`))
		case strings.HasSuffix(r.URL.Path, "/sendMessage"):
			var got map[string]string
			body, _ := io.ReadAll(r.Body)
			json.Unmarshal(body, &got)
			replies <- got["text"]
			w.Write([]byte(`{"ok":true}`))
		}
	}))
	defer srv.Close()

	var seen string
	newTestNotifier(srv).StartPolling(ctx, func(_ context.Context, cmd string) string {
		seen = cmd
		return "commands: /corr /help"
	})
	assert.Equal(t, "/help", seen)
	assert.Equal(t, "commands: /corr /help", <-replies)
}
