package access

import "context"

// Role is the capability level of a visitor for one league.
type Role string

const (
	// RoleOwner is the signed-in teacher viewing their own league.
	RoleOwner Role = "owner"
	// RoleGuest passed the access-code gate of a shared link.
	RoleGuest Role = "guest"
	// RoleViewer opened a read-only shared link.
	RoleViewer Role = "viewer"
	// RoleAnonymous has not been admitted to any league yet.
	RoleAnonymous Role = "anonymous"
)

// Viewer is the resolved identity of a request, threaded explicitly into services.
type Viewer struct {
	OwnerID   string `json:"owner_id"`
	AccountID string `json:"account_id,omitempty"`
	Role      Role   `json:"role"`
}

// CanView reports whether standings and history are visible.
func (v Viewer) CanView() bool {
	return v.OwnerID != "" && (v.Role == RoleOwner || v.Role == RoleGuest || v.Role == RoleViewer)
}

// CanRecord reports whether matches may be entered or edited.
func (v Viewer) CanRecord() bool {
	return v.OwnerID != "" && (v.Role == RoleOwner || v.Role == RoleGuest)
}

// CanAdmin reports whether admin operations are allowed without an access code.
func (v Viewer) CanAdmin() bool {
	return v.OwnerID != "" && v.Role == RoleOwner
}

// ReadOnly reports whether the viewer arrived through a read-only link.
func (v Viewer) ReadOnly() bool {
	return v.Role == RoleViewer
}

// Resolve derives the viewer from the shared-link parameters, the signed-in account (if any)
// and whether a guest pass for ref was presented.
func Resolve(ref string, readOnly bool, accountID string, hasGuestPass bool) Viewer {
	if ref == "" || ref == accountID {
		if accountID == "" {
			return Viewer{Role: RoleAnonymous}
		}
		return Viewer{OwnerID: accountID, AccountID: accountID, Role: RoleOwner}
	}

	v := Viewer{OwnerID: ref, AccountID: accountID}
	switch {
	case readOnly:
		v.Role = RoleViewer
	case hasGuestPass:
		v.Role = RoleGuest
	default:
		v.Role = RoleAnonymous
	}
	return v
}

type viewerContextKey struct{}

// ContextWithViewer stores v in ctx.
func ContextWithViewer(ctx context.Context, v Viewer) context.Context {
	return context.WithValue(ctx, viewerContextKey{}, v)
}

// ViewerFromContext returns the viewer stored in ctx, or an anonymous viewer.
func ViewerFromContext(ctx context.Context) Viewer {
	if ctx == nil {
		return Viewer{Role: RoleAnonymous}
	}
	v, ok := ctx.Value(viewerContextKey{}).(Viewer)
	if !ok {
		return Viewer{Role: RoleAnonymous}
	}
	return v
}
