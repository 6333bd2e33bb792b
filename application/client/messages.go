package client

// Entry point names as seen by page scripts.
const (
	OpCopyToClipboard               = "copyToClipboard"
	OpPasteFromClipboard            = "paste_from_clipbaord"
	OpCopyImageToClipboard          = "copy_image_to_clipboard"
	OpIsOnline                      = "is_online"
	OpCheckConnectivity             = "check_connectivity"
	OpListenConnectivity            = "listen_connectivity"
	OpGetNetworkInformation         = "get_network_information"
	OpGetType                       = "get_type"
	OpRequestFullscreen             = "requestFullscreen"
	OpExitFullscreen                = "exitFullscreen"
	OpIsFullscreen                  = "isFullscreen"
	OpGetGeolocationObject          = "get_geolocation_object"
	OpGetCurrentPosition            = "get_current_position"
	OpGetCurrentPositionWithOptions = "get_current_position_with_options"
	OpGetLanguages                  = "get_languages"
	OpGetLanguage                   = "getLanguage"
	OpGetPermissionStatus           = "get_permission_status"
	OpGetVisibilityState            = "get_visibility_state"
)

// Messages returned to page scripts. The wording is kept stable because
// existing pages match on it.
const (
	MsgCopied               = "Copied to clipboard!"
	MsgClipboardUnavailable = "Clipboard API doesn't seem available on your browser!"
	MsgCopyFailed           = "Error occured whilst copying to clipboard!"
	MsgCopyImageFailed      = "Error occured whilst copying image to clipboard!"
	MsgPasteFailed          = "Error occured whilst pasting to clipboard!"
	MsgFullscreenEnabled    = "Enabled full-screen"
	MsgFullscreenFailed     = "Failed to enable full-screen: "
	MsgLanguageUnavailable  = "Error occured whilst getting language!"
	MsgDocumentUndefined    = "document is undefined"
)

// Abort messages, one set per wrapper group.
const (
	msgServerSideCall     = "Error occured! Are you calling this function in the server?"
	msgNoWindow           = "no global `window` exists"
	msgNoWindowInBrowser  = "no global `window` exists. Make sure you are calling this function in the browser"
	msgWindowMissing      = "`window` doesn't exists. Make sure you are calling this function in the browser"
	msgDocumentMissing    = "type `Document` doesn't exist in the current scope!"
	msgNoWindowObject     = "Can't find the window object. Ensure you are calling this API in the browser"
	msgNoDocumentElement  = "error occured! expected document element"
	msgNoConnection       = "no `connection` object found on navigator"
	msgNoGeolocation      = "no `geolocation` object found on navigator"
	msgNoPermissions      = "no permissions object found"
	msgNoPermissionStatus = "no permission status found"
)

// ImageDataPrefix is prepended to base64 PNG payloads before they are
// written to the clipboard as text.
const ImageDataPrefix = "data:image/png;base64,"
