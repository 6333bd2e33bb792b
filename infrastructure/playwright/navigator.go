//go:build !js

package playwright

import (
	"context"

	"github.com/remix-pwa/pwa-client/domain/entities"
	"github.com/remix-pwa/pwa-client/domain/ports"
)

type navigator Host

func (n *navigator) host() *Host { return (*Host)(n) }

func (n *navigator) Clipboard() (ports.Clipboard, bool) {
	if !n.host().check(exprHasClipboard) {
		return nil, false
	}
	return (*clipboard)(n), true
}

func (n *navigator) OnLine() bool {
	return n.host().check(exprOnLine)
}

func (n *navigator) Connection() (ports.Connection, bool) {
	var info *entities.NetworkInformation
	if err := n.host().evalInto(context.Background(), &info, exprConnection); err != nil || info == nil {
		return nil, false
	}
	info.Type = entities.ParseConnectionType(string(info.Type))
	return connection{info: *info}, true
}

func (n *navigator) Geolocation() (ports.Geolocation, bool) {
	if !n.host().check(exprHasGeolocation) {
		return nil, false
	}
	return (*geolocation)(n), true
}

func (n *navigator) Language() (string, bool) {
	var lang *string
	if err := n.host().evalInto(context.Background(), &lang, exprLanguage); err != nil || lang == nil {
		return "", false
	}
	return *lang, true
}

func (n *navigator) Languages() []string {
	var langs []string
	if err := n.host().evalInto(context.Background(), &langs, exprLanguages); err != nil {
		return nil
	}
	return langs
}

func (n *navigator) Permissions() (ports.Permissions, bool) {
	if !n.host().check(exprHasPermissions) {
		return nil, false
	}
	return (*permissions)(n), true
}

type clipboard Host

func (c *clipboard) WriteText(ctx context.Context, text string) error {
	_, err := (*Host)(c).eval(ctx, fnWriteText, text)
	return err
}

func (c *clipboard) ReadText(ctx context.Context) (string, error) {
	var text string
	if err := (*Host)(c).evalInto(ctx, &text, fnReadText); err != nil {
		return "", err
	}
	return text, nil
}

type connection struct {
	info entities.NetworkInformation
}

func (c connection) Type() entities.ConnectionType { return c.info.Type }
func (c connection) Info() entities.NetworkInformation { return c.info }

type permissions Host

func (p *permissions) Query(ctx context.Context, name string) (ports.PermissionStatus, error) {
	var res struct {
		Name  string                   `json:"name"`
		State entities.PermissionState `json:"state"`
		Error string                   `json:"error"`
	}
	if err := (*Host)(p).evalInto(ctx, &res, fnQueryPermission, name); err != nil {
		return nil, err
	}
	if res.Error != "" {
		return nil, &ports.HostError{Value: res.Error, Message: res.Error, Err: ports.ErrNotInvoked}
	}
	return permissionStatus{name: res.Name, state: res.State}, nil
}

type permissionStatus struct {
	name  string
	state entities.PermissionState
}

func (s permissionStatus) Name() string { return s.name }
func (s permissionStatus) State() entities.PermissionState { return s.state }

type geolocation Host

// GetCurrentPosition evaluates the request on a new goroutine and reports
// through success or failure.
func (g *geolocation) GetCurrentPosition(success func(entities.Position), failure func(*entities.PositionError), opts *entities.PositionOptions) error {
	h := (*Host)(g)

	arg := positionArg(opts)

	go func() {
		ctx := context.Background()
		if timeout, ok := opts.TimeoutDuration(); ok {
			var cancel context.CancelFunc
			// Leave the page its own timeout before giving up here.
			ctx, cancel = context.WithTimeout(ctx, timeout+h.timeout)
			defer cancel()
		}

		var res struct {
			OK        bool                 `json:"ok"`
			Timestamp float64              `json:"timestamp"`
			Coords    entities.Coordinates `json:"coords"`
			Code      int                  `json:"code"`
			Message   string               `json:"message"`
		}
		if err := h.evalInto(ctx, &res, fnCurrentPosition, arg); err != nil {
			if failure != nil {
				failure(&entities.PositionError{Code: entities.PositionUnavailable, Message: err.Error()})
			}
			return
		}
		if !res.OK {
			if failure != nil {
				failure(&entities.PositionError{Code: res.Code, Message: res.Message})
			}
			return
		}
		success(entities.Position{Coords: res.Coords, Timestamp: int64(res.Timestamp)})
	}()
	return nil
}

// positionArg spells out the options for the page. Unset fields stay absent
// so the browser applies its defaults.
func positionArg(opts *entities.PositionOptions) any {
	if opts == nil {
		return nil
	}
	arg := map[string]interface{}{"enableHighAccuracy": opts.EnableHighAccuracy}
	if opts.Timeout != nil {
		arg["timeout"] = *opts.Timeout
	}
	if opts.MaximumAge != nil {
		arg["maximumAge"] = *opts.MaximumAge
	}
	return arg
}
