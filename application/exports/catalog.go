package exports

import (
	"context"

	pwa "github.com/remix-pwa/pwa-client"
	"github.com/remix-pwa/pwa-client/application/client"
	"github.com/remix-pwa/pwa-client/domain/entities"
	"github.com/remix-pwa/pwa-client/domain/ports"
)

// Services published by the module.
var (
	ClipboardService   = ServiceDef{Name: "clipboard", Description: "Clipboard read and write"}
	ConnectionService  = ServiceDef{Name: "connection", Description: "Online status and network information"}
	FullscreenService  = ServiceDef{Name: "fullscreen", Description: "Fullscreen control"}
	GeolocationService = ServiceDef{Name: "geolocation", Description: "Device position"}
	LanguageService    = ServiceDef{Name: "language", Description: "Language preferences"}
	PermissionsService = ServiceDef{Name: "permissions", Description: "Permission status queries"}
	VisibilityService  = ServiceDef{Name: "visibility", Description: "Document visibility"}
)

// TextInput is the input of copyToClipboard.
type TextInput struct {
	Text string `json:"text"`
}

// ImageInput is the input of copy_image_to_clipboard.
type ImageInput struct {
	Image string `json:"image" jsonschema:"contentEncoding=base64"`
}

// ConnectivityInput is the input of check_connectivity.
type ConnectivityInput struct {
	Online  Callback `json:"-" arg:"online"`
	Offline Callback `json:"-" arg:"offline"`
}

// ListenerInput is the input of listen_connectivity. The listener receives
// true when the host goes online and false when it goes offline.
type ListenerInput struct {
	Listener Callback `json:"-" arg:"listener"`
}

// PositionInput is the input of get_current_position.
type PositionInput struct {
	Success Callback `json:"-" arg:"success_callback"`
}

// PositionOptionsInput is the input of get_current_position_with_options.
type PositionOptionsInput struct {
	Success Callback                  `json:"-" arg:"success_callback"`
	Error   Callback                  `json:"-" arg:"error_callback,optional"`
	Options *entities.PositionOptions `json:"options,omitempty"`
}

// PermissionInput is the input of get_permission_status.
type PermissionInput struct {
	Permission string `json:"permission" jsonschema:"minLength=1"`
}

// Catalog returns a definition holding every entry point.
func Catalog() *Definition {
	d := Define(Def{
		Name:        pwa.ModuleName,
		Version:     pwa.Version,
		Description: "Browser platform capabilities for progressive web apps",
	})
	registerClipboard(d)
	registerConnection(d)
	registerFullscreen(d)
	registerGeolocation(d)
	registerLanguage(d)
	registerPermissions(d)
	registerVisibility(d)
	return d
}

func ptr[T any](v T) *T { return &v }

func registerClipboard(d *Definition) {
	MustRegisterOp(d, ClipboardService, Op[TextInput, entities.ClientResponse]{
		Name:        client.OpCopyToClipboard,
		Description: "Write text to the clipboard",
		Handler: func(ctx context.Context, c *client.Client, in TextInput) (entities.ClientResponse, error) {
			return c.CopyToClipboard(ctx, in.Text)
		},
		Examples: []Example[TextInput, entities.ClientResponse]{
			{
				Name:           "basic",
				Input:          TextInput{Text: "Hello World!"},
				ExpectedOutput: ptr(entities.SuccessResponse(client.MsgCopied)),
			},
		},
	})

	MustRegisterOp(d, ClipboardService, Op[NoInput, string]{
		Name:        client.OpPasteFromClipboard,
		Description: "Read text from the clipboard; failures resolve to the error message",
		Handler: func(ctx context.Context, c *client.Client, _ NoInput) (string, error) {
			return c.PasteFromClipboard(ctx)
		},
		Examples: []Example[NoInput, string]{
			{Name: "empty clipboard", ExpectedOutput: ptr("")},
		},
	})

	MustRegisterOp(d, ClipboardService, Op[ImageInput, entities.ClientResponse]{
		Name:        client.OpCopyImageToClipboard,
		Description: "Write a base64 PNG to the clipboard as a data URL (unstable)",
		Handler: func(ctx context.Context, c *client.Client, in ImageInput) (entities.ClientResponse, error) {
			return c.CopyImageToClipboard(ctx, in.Image)
		},
		Examples: []Example[ImageInput, entities.ClientResponse]{
			{
				Name:           "png",
				Input:          ImageInput{Image: "iVBORw0KGgoAAAANSUhEUgAAABAAAAAQCAYAAAAf8/9h"},
				ExpectedOutput: ptr(entities.SuccessResponse(client.MsgCopied)),
			},
		},
	})
}

func registerConnection(d *Definition) {
	MustRegisterOp(d, ConnectionService, Op[NoInput, bool]{
		Name:        client.OpIsOnline,
		Description: "Report whether the browser is online",
		Handler: func(ctx context.Context, c *client.Client, _ NoInput) (bool, error) {
			return c.IsOnline(ctx)
		},
		Examples: []Example[NoInput, bool]{{Name: "online", ExpectedOutput: ptr(true)}},
	})

	MustRegisterOp(d, ConnectionService, Op[ConnectivityInput, Void]{
		Name:        client.OpCheckConnectivity,
		Description: "Call online or offline depending on the current status",
		Handler: func(ctx context.Context, c *client.Client, in ConnectivityInput) (Void, error) {
			return Void{}, c.CheckConnectivity(ctx, func() { in.Online() }, func() { in.Offline() })
		},
	})

	MustRegisterOp(d, ConnectionService, Op[ListenerInput, *Subscription]{
		Name:        client.OpListenConnectivity,
		Description: "Call listener on every online/offline transition; resolves to an unsubscribe function",
		Handler: func(ctx context.Context, c *client.Client, in ListenerInput) (*Subscription, error) {
			remove, err := c.ListenConnectivity(context.WithoutCancel(ctx), func(online bool) { in.Listener(online) })
			if err != nil {
				return nil, err
			}
			return NewSubscription(remove), nil
		},
	})

	MustRegisterOp(d, ConnectionService, Op[NoInput, ports.Connection]{
		Name:        client.OpGetNetworkInformation,
		Description: "Return the navigator connection object",
		Handler: func(ctx context.Context, c *client.Client, _ NoInput) (ports.Connection, error) {
			return c.GetNetworkInformation(ctx)
		},
	})

	MustRegisterOp(d, ConnectionService, Op[NoInput, entities.ConnectionType]{
		Name:        client.OpGetType,
		Description: "Return the network link type",
		Handler: func(ctx context.Context, c *client.Client, _ NoInput) (entities.ConnectionType, error) {
			return c.GetType(ctx)
		},
		Examples: []Example[NoInput, entities.ConnectionType]{{Name: "wifi", ExpectedOutput: ptr(entities.ConnectionWifi)}},
	})
}

func registerFullscreen(d *Definition) {
	MustRegisterOp(d, FullscreenService, Op[NoInput, entities.ClientResponse]{
		Name:        client.OpRequestFullscreen,
		Description: "Put the document element into fullscreen",
		Handler: func(ctx context.Context, c *client.Client, _ NoInput) (entities.ClientResponse, error) {
			return c.RequestFullscreen(ctx)
		},
		Examples: []Example[NoInput, entities.ClientResponse]{
			{Name: "enabled", ExpectedOutput: ptr(entities.SuccessResponse(client.MsgFullscreenEnabled))},
		},
	})

	MustRegisterOp(d, FullscreenService, Op[NoInput, Void]{
		Name:        client.OpExitFullscreen,
		Description: "Leave fullscreen",
		Handler: func(ctx context.Context, c *client.Client, _ NoInput) (Void, error) {
			return Void{}, c.ExitFullscreen(ctx)
		},
	})

	MustRegisterOp(d, FullscreenService, Op[NoInput, bool]{
		Name:        client.OpIsFullscreen,
		Description: "Report whether an element is fullscreen",
		Handler: func(ctx context.Context, c *client.Client, _ NoInput) (bool, error) {
			return c.IsFullscreen(ctx)
		},
		Examples: []Example[NoInput, bool]{{Name: "windowed", ExpectedOutput: ptr(false)}},
	})
}

func registerGeolocation(d *Definition) {
	MustRegisterOp(d, GeolocationService, Op[NoInput, ports.Geolocation]{
		Name:        client.OpGetGeolocationObject,
		Description: "Return the navigator geolocation object",
		Handler: func(ctx context.Context, c *client.Client, _ NoInput) (ports.Geolocation, error) {
			return c.GetGeolocationObject(ctx)
		},
	})

	MustRegisterOp(d, GeolocationService, Op[PositionInput, Void]{
		Name:        client.OpGetCurrentPosition,
		Description: "Request a position fix; success_callback receives the position",
		Handler: func(ctx context.Context, c *client.Client, in PositionInput) (Void, error) {
			return Void{}, c.GetCurrentPosition(ctx, func(p entities.Position) { in.Success(p) })
		},
	})

	MustRegisterOp(d, GeolocationService, Op[PositionOptionsInput, Void]{
		Name:        client.OpGetCurrentPositionWithOptions,
		Description: "Request a position fix with options and an error callback",
		Handler: func(ctx context.Context, c *client.Client, in PositionOptionsInput) (Void, error) {
			var failure func(*entities.PositionError)
			if in.Error != nil {
				failure = func(e *entities.PositionError) { in.Error(e) }
			}
			return Void{}, c.GetCurrentPositionWithOptions(ctx, in.Options, func(p entities.Position) { in.Success(p) }, failure)
		},
	})
}

func registerLanguage(d *Definition) {
	MustRegisterOp(d, LanguageService, Op[NoInput, []string]{
		Name:        client.OpGetLanguages,
		Description: "Return the preferred languages in order",
		Handler: func(ctx context.Context, c *client.Client, _ NoInput) ([]string, error) {
			return c.GetLanguages(ctx)
		},
		Examples: []Example[NoInput, []string]{{Name: "default", ExpectedOutput: ptr([]string{"en-US", "en"})}},
	})

	MustRegisterOp(d, LanguageService, Op[NoInput, string]{
		Name:        client.OpGetLanguage,
		Description: "Return the preferred language",
		Handler: func(ctx context.Context, c *client.Client, _ NoInput) (string, error) {
			return c.GetLanguage(ctx)
		},
		Examples: []Example[NoInput, string]{{Name: "default", ExpectedOutput: ptr("en-US")}},
	})
}

func registerPermissions(d *Definition) {
	MustRegisterOp(d, PermissionsService, Op[PermissionInput, ports.PermissionStatus]{
		Name:        client.OpGetPermissionStatus,
		Description: "Query the status of a permission",
		Handler: func(ctx context.Context, c *client.Client, in PermissionInput) (ports.PermissionStatus, error) {
			return c.GetPermissionStatus(ctx, in.Permission)
		},
		Examples: []Example[PermissionInput, ports.PermissionStatus]{
			{
				Name:          "unknown permission",
				Input:         PermissionInput{Permission: "telepathy"},
				ExpectedError: "no permission status found",
			},
		},
	})
}

func registerVisibility(d *Definition) {
	MustRegisterOp(d, VisibilityService, Op[NoInput, entities.VisibilityState]{
		Name:        client.OpGetVisibilityState,
		Description: "Return the document visibility state",
		Sync:        true,
		Handler: func(ctx context.Context, c *client.Client, _ NoInput) (entities.VisibilityState, error) {
			return c.GetVisibilityState(ctx)
		},
		Examples: []Example[NoInput, entities.VisibilityState]{{Name: "visible", ExpectedOutput: ptr(entities.VisibilityVisible)}},
	})
}
