// Package invocation defines the per-invocation record delivered by the
// runtime API and the read-only context view handed to handlers.
package invocation

import "time"

// Invocation is one request cycle as delivered by a poll. It is consumed
// exactly once by the runtime driver and never outlives its report.
type Invocation struct {
	// RequestID correlates the report call with this invocation.
	RequestID string
	// Deadline is the absolute time by which a result must be reported.
	// Zero when the environment did not supply one.
	Deadline time.Time
	// InvokedFunctionARN is the full ARN the caller used to invoke.
	InvokedFunctionARN string
	// TraceID is the tracing header propagated from the caller.
	TraceID string
	// ClientContext is caller-supplied data, present for SDK-originated calls.
	ClientContext *ClientContext
	// Identity is present only for mobile-SDK-originated calls.
	Identity *CognitoIdentity
	// Payload is the raw invocation body, typically UTF-8 JSON.
	Payload []byte
}

// Context derives the read-only metadata view for this invocation.
func (inv *Invocation) Context() *Context {
	return &Context{
		RequestID:          inv.RequestID,
		Deadline:           inv.Deadline,
		InvokedFunctionARN: inv.InvokedFunctionARN,
		TraceID:            inv.TraceID,
		ClientContext:      inv.ClientContext,
		Identity:           inv.Identity,
	}
}

// ClientApplication identifies the calling application inside a
// client context.
type ClientApplication struct {
	InstallationID string `json:"installation_id"`
	AppTitle       string `json:"app_title"`
	AppVersionCode string `json:"app_version_code"`
	AppPackageName string `json:"app_package_name"`
}

// ClientContext is the opaque, caller-supplied context attached to an
// invocation by SDK clients.
type ClientContext struct {
	Client ClientApplication `json:"client"`
	Env    map[string]string `json:"env"`
	Custom map[string]string `json:"custom"`
}

// CognitoIdentity carries the identity information attached to
// mobile-SDK-originated invocations.
type CognitoIdentity struct {
	IdentityID     string `json:"cognitoIdentityId"`
	IdentityPoolID string `json:"cognitoIdentityPoolId"`
}
