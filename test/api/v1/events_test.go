package api_test

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syncflowhq/syncflow/internal/api/v1/middleware"
	"github.com/syncflowhq/syncflow/internal/types"
	"github.com/syncflowhq/syncflow/test"
)

// startStreamServer serves the suite's app on a raw TCP listener. The event
// stream needs real chunked writes, which the buffering test-server adaptor
// cannot relay.
func startStreamServer(t *testing.T, suite *test.Suite) string {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = suite.App.Listener(ln) }()
	// A stream that outlives its client only notices on the next keepalive,
	// so shutdown must not wait for it.
	t.Cleanup(func() { _ = suite.App.ShutdownWithTimeout(time.Second) })

	return "http://" + ln.Addr().String()
}

// openStream connects to an SSE endpoint and consumes the opening comment, so
// callers know the subscription is live before they trigger writes.
func openStream(t *testing.T, suite *test.Suite, url string, header http.Header) *bufio.Reader {
	t.Helper()

	req, err := http.NewRequestWithContext(suite.Context(), http.MethodGet, url, nil)
	require.NoError(t, err)
	for key, values := range header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	line := readLine(t, reader)
	require.True(t, strings.HasPrefix(line, ": connected"), "unexpected opening line %q", line)
	require.Empty(t, readLine(t, reader))
	return reader
}

func readLine(t *testing.T, r *bufio.Reader) string {
	t.Helper()
	line, err := r.ReadString('\n')
	require.NoError(t, err)
	return strings.TrimRight(line, "\n")
}

// readEvent scans past comments to the next event frame.
func readEvent(t *testing.T, r *bufio.Reader) (string, string) {
	t.Helper()
	for {
		line := readLine(t, r)
		if !strings.HasPrefix(line, "event:") {
			continue
		}
		event := strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		data := readLine(t, r)
		require.True(t, strings.HasPrefix(data, "data:"), "expected a data line, got %q", data)
		return event, strings.TrimSpace(strings.TrimPrefix(data, "data:"))
	}
}

func TestPublicEventStream(t *testing.T) {
	suite := test.NewTestSuite(t)
	defer suite.Cleanup()
	base := startStreamServer(t, suite)

	created, err := suite.APIClient.CreateProject(suite.Context(), ownerSession, &defaultCreateRequest)
	require.NoError(t, err)

	reader := openStream(t, suite, base+"/api/v1/p/"+created.Slug+"/events", nil)

	_, err = suite.APIClient.UpdateStatus(suite.Context(), ownerSession, created.ID, &types.UpdateStatusRequest{
		Progress:     60,
		CurrentFocus: "Building checkout",
		Status:       "active",
	})
	require.NoError(t, err)

	event, data := readEvent(t, reader)
	assert.Equal(t, "project_updated", event)
	assert.Contains(t, data, `"progress":60`)
	assert.Contains(t, data, `"current_stage"`)
	// The public projection never carries the client email
	assert.NotContains(t, data, "client@acme.test")

	// An unknown slug gets no stream
	resp, err := http.Get(base + "/api/v1/p/no-such-slug/events")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestOwnerFeedbackEventStream(t *testing.T) {
	suite := test.NewTestSuite(t)
	defer suite.Cleanup()
	base := startStreamServer(t, suite)

	created, err := suite.APIClient.CreateProject(suite.Context(), ownerSession, &defaultCreateRequest)
	require.NoError(t, err)

	header := http.Header{}
	header.Set(middleware.HeaderOwnerID, strconv.FormatUint(uint64(ownerSession.OwnerID), 10))
	header.Set(middleware.HeaderOwnerEmail, ownerSession.OwnerEmail)
	url := fmt.Sprintf("%s/api/v1/projects/%d/feedback/events", base, created.ID)

	reader := openStream(t, suite, url, header)

	_, err = suite.APIClient.AddPublicFeedback(suite.Context(), created.Slug, "Looks great so far")
	require.NoError(t, err)

	event, data := readEvent(t, reader)
	assert.Equal(t, "feedback_added", event)
	assert.Contains(t, data, "Looks great so far")

	// No session, no stream
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
