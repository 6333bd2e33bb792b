//go:build js && wasm

package browser

import (
	"context"
	"syscall/js"

	"github.com/remix-pwa/pwa-client/domain/entities"
	"github.com/remix-pwa/pwa-client/domain/ports"
	"github.com/remix-pwa/pwa-client/internal/jsbridge"
)

type navigator struct {
	v js.Value
}

func (n *navigator) JSValue() js.Value { return n.v }

func (n *navigator) Clipboard() (ports.Clipboard, bool) {
	c := n.v.Get("clipboard")
	if !jsbridge.Defined(c) {
		return nil, false
	}
	return &clipboard{v: c}, true
}

func (n *navigator) OnLine() bool {
	return n.v.Get("onLine").Truthy()
}

func (n *navigator) Connection() (ports.Connection, bool) {
	c := n.v.Get("connection")
	if !jsbridge.Defined(c) {
		return nil, false
	}
	return &connection{v: c}, true
}

func (n *navigator) Geolocation() (ports.Geolocation, bool) {
	g := n.v.Get("geolocation")
	if !jsbridge.Defined(g) {
		return nil, false
	}
	return &geolocation{v: g}, true
}

func (n *navigator) Language() (string, bool) {
	l := n.v.Get("language")
	if l.Type() != js.TypeString {
		return "", false
	}
	return l.String(), true
}

func (n *navigator) Languages() []string {
	return jsbridge.Strings(n.v.Get("languages"))
}

func (n *navigator) Permissions() (ports.Permissions, bool) {
	p := n.v.Get("permissions")
	if !jsbridge.Defined(p) {
		return nil, false
	}
	return &permissions{v: p}, true
}

type clipboard struct {
	v js.Value
}

func (c *clipboard) WriteText(ctx context.Context, text string) error {
	return callAndAwait(ctx, c.v, "writeText", text)
}

func (c *clipboard) ReadText(ctx context.Context) (string, error) {
	v, err := callAwaitValue(ctx, c.v, "readText")
	if err != nil {
		return "", err
	}
	if v.Type() != js.TypeString {
		return "", nil
	}
	return v.String(), nil
}

// connection wraps navigator.connection (Network Information API).
type connection struct {
	v js.Value
}

func (c *connection) JSValue() js.Value { return c.v }

func (c *connection) Type() entities.ConnectionType {
	if t := c.v.Get("type"); t.Type() == js.TypeString {
		return entities.ParseConnectionType(t.String())
	}
	return entities.ConnectionUnknown
}

func (c *connection) Info() entities.NetworkInformation {
	info := entities.NetworkInformation{Type: c.Type()}
	if et := c.v.Get("effectiveType"); et.Type() == js.TypeString {
		info.EffectiveType = et.String()
	}
	if f := jsbridge.Float(c.v, "downlink"); f != nil {
		info.Downlink = *f
	}
	if f := jsbridge.Float(c.v, "downlinkMax"); f != nil {
		info.DownlinkMax = *f
	}
	if f := jsbridge.Float(c.v, "rtt"); f != nil {
		info.RTT = int(*f)
	}
	info.SaveData = c.v.Get("saveData").Truthy()
	return info
}

type permissions struct {
	v js.Value
}

func (p *permissions) JSValue() js.Value { return p.v }

func (p *permissions) Query(ctx context.Context, name string) (ports.PermissionStatus, error) {
	desc := js.Global().Get("Object").New()
	desc.Set("name", name)

	v, err := callAwaitValue(ctx, p.v, "query", desc)
	if err != nil {
		return nil, err
	}
	return &permissionStatus{v: v, name: name}, nil
}

type permissionStatus struct {
	v    js.Value
	name string
}

func (s *permissionStatus) JSValue() js.Value { return s.v }

func (s *permissionStatus) Name() string {
	if n := s.v.Get("name"); n.Type() == js.TypeString {
		return n.String()
	}
	return s.name
}

func (s *permissionStatus) State() entities.PermissionState {
	return entities.PermissionState(s.v.Get("state").String())
}
