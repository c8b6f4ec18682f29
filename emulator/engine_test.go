package emulator

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aura-studio/lambda-runtime/dispatch"
	"github.com/aura-studio/lambda-runtime/runtime"
	"github.com/aura-studio/lambda-runtime/transport"
)

// Full local loop: a runtime engine polls the emulator, the emulator feeds
// it events posted to the invocations endpoint, and results flow back to
// the HTTP caller.
func TestEmulatorEndToEnd(t *testing.T) {
	e := NewEngine(WithFunctionName("demo"), WithFunctionTimeout(10*time.Second))
	srv := httptest.NewServer(e)

	type in struct {
		Name string `json:"name"`
		Fail bool   `json:"fail"`
	}
	handler := dispatch.NewHandler(func(ctx context.Context, req in) (string, error) {
		if req.Fail {
			return "", errors.New("requested failure")
		}
		return "Hello " + req.Name, nil
	})

	loop, err := runtime.NewEngine(handler, nil,
		[]transport.Option{transport.WithEndpoint(strings.TrimPrefix(srv.URL, "http://"))})
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- loop.Run(context.Background()) }()

	invokeURL := srv.URL + "/2015-03-31/functions/demo/invocations"

	// Success path.
	resp, err := http.Post(invokeURL, "application/json", strings.NewReader(`{"name":"world"}`))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, resp.Header.Get("X-Amz-Function-Error"))
	assert.Equal(t, `"Hello world"`, string(body))

	// Failure path: still HTTP 200, with the classification in the header
	// and the error envelope as the body.
	resp, err = http.Post(invokeURL, "application/json", strings.NewReader(`{"fail":true}`))
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Amz-Function-Error"))
	assert.Contains(t, string(body), "requested failure")

	// Tearing the connection down fails the outstanding poll, which is
	// terminal for the loop.
	srv.CloseClientConnections()
	srv.Close()

	select {
	case err := <-done:
		require.Error(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("runtime loop did not terminate after transport failure")
	}
}

func TestEmulatorRejectsUnknownRequestID(t *testing.T) {
	e := NewEngine()
	srv := httptest.NewServer(e)
	defer srv.Close()

	resp, err := http.Post(
		srv.URL+"/2018-06-01/runtime/invocation/no-such-id/response",
		"application/json",
		strings.NewReader(`"late"`),
	)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestEmulatorWrapsBareErrorPayloads(t *testing.T) {
	e := NewEngine()
	srv := httptest.NewServer(e)
	defer srv.Close()

	// Poll in the background so the queued invocation gets picked up and
	// we learn its request id.
	idCh := make(chan string, 1)
	go func() {
		resp, err := http.Get(srv.URL + "/2018-06-01/runtime/invocation/next")
		if err != nil {
			return
		}
		defer resp.Body.Close()
		io.Copy(io.Discard, resp.Body)
		idCh <- resp.Header.Get("Lambda-Runtime-Aws-Request-Id")
	}()

	resultCh := make(chan *http.Response, 1)
	go func() {
		resp, err := http.Post(
			srv.URL+"/2015-03-31/functions/demo/invocations",
			"application/json",
			strings.NewReader(`{}`),
		)
		if err == nil {
			resultCh <- resp
		}
	}()

	var id string
	select {
	case id = <-idCh:
	case <-time.After(5 * time.Second):
		t.Fatal("poll did not deliver the queued invocation")
	}
	require.NotEmpty(t, id)

	// Report a raw, non-JSON failure body; the emulator must wrap it.
	resp, err := http.Post(
		srv.URL+"/2018-06-01/runtime/invocation/"+id+"/error",
		"application/json",
		strings.NewReader("something went sideways"),
	)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusAccepted, resp.StatusCode)

	select {
	case result := <-resultCh:
		body, _ := io.ReadAll(result.Body)
		result.Body.Close()
		assert.Equal(t, "Runtime.Unknown", result.Header.Get("X-Amz-Function-Error"))
		assert.Contains(t, string(body), `"errorMessage"`)
		assert.Contains(t, string(body), "something went sideways")
	case <-time.After(5 * time.Second):
		t.Fatal("invocation result never arrived")
	}
}
