package dispatch

import (
	"context"
	"errors"
	"testing"

	"github.com/aura-studio/lambda-runtime/failure"
)

func TestDispatchHello(t *testing.T) {
	h := NewHandler(func(ctx context.Context, _ struct{}) (string, error) {
		return "Hello", nil
	})

	res := Dispatch(context.Background(), h, []byte(`{}`))
	if !res.OK() {
		t.Fatalf("Failure = %+v, want success", res.Failure)
	}
	if string(res.Payload) != `"Hello"` {
		t.Errorf("Payload = %s, want %s", res.Payload, `"Hello"`)
	}
}

func TestDispatchTypedInput(t *testing.T) {
	type in struct {
		Name string `json:"name"`
	}
	h := NewHandler(func(ctx context.Context, req in) (string, error) {
		return "Hello " + req.Name, nil
	})

	res := Dispatch(context.Background(), h, []byte(`{"name":"world"}`))
	if !res.OK() {
		t.Fatalf("Failure = %+v, want success", res.Failure)
	}
	if string(res.Payload) != `"Hello world"` {
		t.Errorf("Payload = %s", res.Payload)
	}
}

func TestDispatchHandlerError(t *testing.T) {
	h := NewHandler(func(ctx context.Context, _ struct{}) (string, error) {
		return "", errors.New("boom")
	})

	res := Dispatch(context.Background(), h, []byte(`{}`))
	if res.OK() {
		t.Fatal("want failure for explicit error return")
	}
	if res.Failure.ErrorMessage != "boom" {
		t.Errorf("ErrorMessage = %q, want %q", res.Failure.ErrorMessage, "boom")
	}
}

func TestDispatchInvalidInput(t *testing.T) {
	called := false
	h := NewHandler(func(ctx context.Context, _ struct{ N int }) (string, error) {
		called = true
		return "", nil
	})

	res := Dispatch(context.Background(), h, []byte(`{not json`))
	if res.OK() {
		t.Fatal("want failure for malformed body")
	}
	if res.Failure.ErrorType != "InvalidInput" {
		t.Errorf("ErrorType = %q, want InvalidInput", res.Failure.ErrorType)
	}
	if len(res.Failure.StackTrace) != 0 {
		t.Errorf("StackTrace = %v, want none for a data-shape problem", res.Failure.StackTrace)
	}
	if called {
		t.Error("handler must not run on decode failure")
	}
}

func TestDispatchInvalidOutput(t *testing.T) {
	h := NewHandler(func(ctx context.Context, _ struct{}) (chan int, error) {
		return make(chan int), nil
	})

	res := Dispatch(context.Background(), h, []byte(`{}`))
	if res.OK() {
		t.Fatal("want failure for unencodable output")
	}
	if res.Failure.ErrorType != "InvalidOutput" {
		t.Errorf("ErrorType = %q, want InvalidOutput", res.Failure.ErrorType)
	}
}

func TestDispatchFaultBoundary(t *testing.T) {
	h := NewHandler(func(ctx context.Context, _ struct{}) (string, error) {
		var values []int
		return "", errors.New(string(rune(values[3]))) // out-of-bounds fault
	})

	res := Dispatch(context.Background(), h, []byte(`{}`))
	if res.OK() {
		t.Fatal("want failure for panicking handler")
	}
	if res.Failure.ErrorMessage == "" {
		t.Error("panic failure must carry a message")
	}
}

func TestDispatchFaultBoundaryCapturesTrace(t *testing.T) {
	defer failure.EnableCapture(failure.CaptureEnabled())
	failure.EnableCapture(true)

	h := HandlerFunc(func(ctx context.Context, payload []byte) ([]byte, error) {
		panic("kaboom")
	})

	res := Dispatch(context.Background(), h, nil)
	if res.OK() {
		t.Fatal("want failure")
	}
	if res.Failure.ErrorMessage != "kaboom" {
		t.Errorf("ErrorMessage = %q", res.Failure.ErrorMessage)
	}
	if len(res.Failure.StackTrace) == 0 {
		t.Error("want captured frames for a fault with capture enabled")
	}
}

func TestDispatchErrorDescriptionPassthrough(t *testing.T) {
	desc := &failure.ErrorDescription{ErrorMessage: "boom", ErrorType: "Handler.Custom"}
	h := HandlerFunc(func(ctx context.Context, payload []byte) ([]byte, error) {
		return nil, desc
	})

	res := Dispatch(context.Background(), h, nil)
	if res.Failure != desc {
		t.Errorf("Failure = %+v, want the handler's own description", res.Failure)
	}
}
