package entities

// PermissionState is the answer to a permission query.
type PermissionState string

const (
	PermissionGranted PermissionState = "granted"
	PermissionDenied  PermissionState = "denied"
	PermissionPrompt  PermissionState = "prompt"
)

// PermissionStatusInfo is a serialisable snapshot of a permission status.
type PermissionStatusInfo struct {
	Name  string          `json:"name"`
	State PermissionState `json:"state"`
}

// VisibilityState reports whether the document is shown to the user.
type VisibilityState string

const (
	VisibilityHidden  VisibilityState = "hidden"
	VisibilityVisible VisibilityState = "visible"
)
