// Package emulator provides a local stand-in for the execution
// environment's runtime API, so handlers can be exercised end to end
// without deploying: post a payload to the invocations endpoint, and a
// runtime loop pointed at the emulator picks it up, runs the handler, and
// reports back the result.
package emulator

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

const (
	headerRequestID     = "Lambda-Runtime-Aws-Request-Id"
	headerDeadlineMS    = "Lambda-Runtime-Deadline-Ms"
	headerFunctionARN   = "Lambda-Runtime-Invoked-Function-Arn"
	headerTraceID       = "Lambda-Runtime-Trace-Id"
	headerFunctionError = "X-Amz-Function-Error"
)

// task is one queued invocation waiting for a runtime loop to pick it up
// and report a result.
type task struct {
	id      string
	payload []byte
	done    chan outcome
}

// outcome is the reported result; errorType is non-empty for failures.
type outcome struct {
	payload   []byte
	errorType string
}

type Engine struct {
	*Options
	*gin.Engine
	queue   chan *task
	pending sync.Map // request id -> *task
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		Options: NewOptions(opts...),
		queue:   make(chan *task),
	}

	if !e.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}
	e.Engine = gin.Default()

	e.InstallHandlers()
	return e
}

func (e *Engine) InstallHandlers() {
	e.POST("/2015-03-31/functions/:function/invocations", e.Invoke)

	api := e.Group("/2018-06-01/runtime")
	api.GET("/invocation/next", e.Next)
	api.POST("/invocation/:id/response", e.Response)
	api.POST("/invocation/:id/error", e.Error)
	api.POST("/init/error", e.InitError)
}

// Invoke accepts a test event, queues it for the runtime loop, and waits
// for the reported result. Failed invocations still answer 200, with the
// error classification in the X-Amz-Function-Error header, matching the
// managed environment's behavior.
func (e *Engine) Invoke(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.String(http.StatusBadRequest, "read invocation payload: %v", err)
		return
	}

	t := &task{
		id:      uuid.New().String(),
		payload: payload,
		done:    make(chan outcome, 1),
	}

	if e.DebugMode {
		log.Printf("[Emulator] Invocation queued: id=%s function=%s", t.id, c.Param("function"))
	}

	select {
	case e.queue <- t:
	case <-c.Request.Context().Done():
		c.String(http.StatusServiceUnavailable, "no runtime polled the invocation")
		return
	}

	select {
	case out := <-t.done:
		if out.errorType != "" {
			c.Header(headerFunctionError, out.errorType)
		}
		c.Data(http.StatusOK, "application/json", out.payload)
	case <-c.Request.Context().Done():
		c.String(http.StatusServiceUnavailable, "invocation abandoned")
	}
}

// Next long-polls for the next queued invocation and delivers it with the
// runtime API metadata headers.
func (e *Engine) Next(c *gin.Context) {
	select {
	case t := <-e.queue:
		e.pending.Store(t.id, t)

		deadline := time.Now().Add(e.FunctionTimeout)
		c.Header(headerRequestID, t.id)
		c.Header(headerDeadlineMS, strconv.FormatInt(deadline.UnixMilli(), 10))
		c.Header(headerFunctionARN, e.functionARN())
		c.Header(headerTraceID, newTraceID())
		c.Data(http.StatusOK, "application/json", t.payload)
	case <-c.Request.Context().Done():
		c.Status(http.StatusServiceUnavailable)
	}
}

// Response resolves a pending invocation with a success payload.
func (e *Engine) Response(c *gin.Context) {
	t, ok := e.take(c.Param("id"))
	if !ok {
		c.String(http.StatusBadRequest, "unknown request id: %s", c.Param("id"))
		return
	}

	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.String(http.StatusBadRequest, "read response payload: %v", err)
		return
	}

	t.done <- outcome{payload: payload}
	c.Status(http.StatusAccepted)
}

// Error resolves a pending invocation with a failure report. Reports that
// do not carry the error schema are wrapped into one so callers always see
// a well-formed {errorMessage, errorType} envelope.
func (e *Engine) Error(c *gin.Context) {
	t, ok := e.take(c.Param("id"))
	if !ok {
		c.String(http.StatusBadRequest, "unknown request id: %s", c.Param("id"))
		return
	}

	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.String(http.StatusBadRequest, "read error payload: %v", err)
		return
	}

	errorType := "Runtime.Unknown"
	if gjson.ValidBytes(payload) && gjson.GetBytes(payload, "errorMessage").Exists() {
		if et := gjson.GetBytes(payload, "errorType"); et.String() != "" {
			errorType = et.String()
		}
	} else {
		wrapped, _ := sjson.SetBytes([]byte(`{}`), "errorMessage", string(payload))
		wrapped, _ = sjson.SetBytes(wrapped, "errorType", errorType)
		payload = wrapped
	}

	if e.DebugMode {
		log.Printf("[Emulator] Invocation failed: id=%s type=%s", t.id, errorType)
	}

	t.done <- outcome{payload: payload, errorType: errorType}
	c.Status(http.StatusAccepted)
}

// InitError records a pre-invocation initialization failure.
func (e *Engine) InitError(c *gin.Context) {
	payload, _ := io.ReadAll(c.Request.Body)
	log.Printf("[Emulator] Init error: %s", payload)
	c.Status(http.StatusAccepted)
}

func (e *Engine) take(id string) (*task, bool) {
	v, ok := e.pending.LoadAndDelete(id)
	if !ok {
		return nil, false
	}
	return v.(*task), true
}

func (e *Engine) functionARN() string {
	return fmt.Sprintf("arn:aws:lambda:us-east-1:000000000000:function:%s", e.FunctionName)
}

func newTraceID() string {
	id := strings.ReplaceAll(uuid.New().String(), "-", "")
	return fmt.Sprintf("Root=1-%08x-%s;Sampled=0", time.Now().Unix(), id[:24])
}
