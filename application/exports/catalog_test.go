package exports_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pwa "github.com/remix-pwa/pwa-client"
	"github.com/remix-pwa/pwa-client/application/client"
	"github.com/remix-pwa/pwa-client/application/exports"
	"github.com/remix-pwa/pwa-client/domain/entities"
	"github.com/remix-pwa/pwa-client/domain/ports"
	"github.com/remix-pwa/pwa-client/infrastructure/memory"
)

func TestCatalogExamples(t *testing.T) {
	exports.GenerateExampleTests(t, exports.Catalog(), func() ports.Host {
		return memory.NewDefaultHost()
	})
}

func TestCatalog_EntryPoints(t *testing.T) {
	def := exports.Catalog()

	want := map[string][]string{
		"clipboard":   {"copyToClipboard", "copy_image_to_clipboard", "paste_from_clipbaord"},
		"connection":  {"check_connectivity", "get_network_information", "get_type", "is_online", "listen_connectivity"},
		"fullscreen":  {"exitFullscreen", "isFullscreen", "requestFullscreen"},
		"geolocation": {"get_current_position", "get_current_position_with_options", "get_geolocation_object"},
		"language":    {"getLanguage", "get_languages"},
		"permissions": {"get_permission_status"},
		"visibility":  {"get_visibility_state"},
	}

	got := make(map[string][]string)
	for _, op := range def.Operations() {
		got[op.Service] = append(got[op.Service], op.Name)
	}
	assert.Equal(t, want, got)
}

func TestCatalog_Manifest(t *testing.T) {
	m := exports.Catalog().Manifest()
	assert.Equal(t, pwa.ModuleName, m.Name)
	assert.Equal(t, pwa.Version, m.SDKVersion)

	ops := make(map[string]entities.OperationManifest)
	for _, svc := range m.Services {
		for _, op := range svc.Operations {
			ops[op.Name] = op
		}
	}

	assert.Equal(t, []string{"text"}, ops["copyToClipboard"].Params)
	assert.Equal(t, []string{"online", "offline"}, ops["check_connectivity"].Params)
	assert.Equal(t, []string{"success_callback", "error_callback", "options"}, ops["get_current_position_with_options"].Params)
	assert.Nil(t, ops["is_online"].Params)
	assert.True(t, ops["get_visibility_state"].Sync)
	assert.False(t, ops["getLanguage"].Sync)

	var out map[string]any
	require.NoError(t, json.Unmarshal(ops["copyToClipboard"].OutputSchema, &out))
	props, ok := out["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, props, "status")
	assert.Contains(t, props, "message")

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"copyToClipboard"`)
}

func newInvocation(host ports.Host, args ...any) *exports.Invocation {
	return &exports.Invocation{
		Client: client.New(host, client.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))),
		Args:   args,
	}
}

func lookup(t *testing.T, def *exports.Definition, name string) exports.HandlerFunc {
	t.Helper()
	op, ok := def.Lookup(name)
	require.True(t, ok, "entry point %s", name)
	return op.Handler
}

func TestInvocation_Positional(t *testing.T) {
	def := exports.Catalog()
	ctx := context.Background()

	t.Run("string argument", func(t *testing.T) {
		host := memory.NewDefaultHost()
		out, err := lookup(t, def, "copyToClipboard")(ctx, newInvocation(host, "positional"))
		require.NoError(t, err)
		assert.Equal(t, entities.SuccessResponse(client.MsgCopied), out)

		text, _ := host.ClipboardText()
		assert.Equal(t, "positional", text)
	})

	t.Run("wrong type is a validation error", func(t *testing.T) {
		_, err := lookup(t, def, "copyToClipboard")(ctx, newInvocation(memory.NewDefaultHost(), 42.0))
		var valErr *pwa.ValidationError
		require.True(t, errors.As(err, &valErr))
		assert.Equal(t, "text", valErr.Field)
	})

	t.Run("missing argument is a validation error", func(t *testing.T) {
		_, err := lookup(t, def, "get_permission_status")(ctx, newInvocation(memory.NewDefaultHost()))
		var valErr *pwa.ValidationError
		assert.True(t, errors.As(err, &valErr))
	})

	t.Run("error response keeps its value", func(t *testing.T) {
		host := memory.NewHost(memory.DefaultProfile())
		host.Update(func(p *memory.Profile) { p.Clipboard = nil })
		out, err := lookup(t, def, "copyToClipboard")(ctx, newInvocation(host, "x"))
		require.Error(t, err)
		assert.Equal(t, entities.ErrorResponse(client.MsgClipboardUnavailable), out)
	})
}

func TestInvocation_Callbacks(t *testing.T) {
	def := exports.Catalog()
	ctx := context.Background()

	t.Run("check_connectivity offline", func(t *testing.T) {
		host := memory.NewDefaultHost()
		host.SetOnline(false)

		var calls []string
		online := exports.Callback(func(...any) { calls = append(calls, "online") })
		offline := exports.Callback(func(...any) { calls = append(calls, "offline") })

		_, err := lookup(t, def, "check_connectivity")(ctx, newInvocation(host, online, offline))
		require.NoError(t, err)
		assert.Equal(t, []string{"offline"}, calls)
	})

	t.Run("plain func is accepted", func(t *testing.T) {
		var called bool
		fn := func(...any) { called = true }
		_, err := lookup(t, def, "check_connectivity")(ctx, newInvocation(memory.NewDefaultHost(), fn, fn))
		require.NoError(t, err)
		assert.True(t, called)
	})

	t.Run("non-function argument", func(t *testing.T) {
		_, err := lookup(t, def, "check_connectivity")(ctx, newInvocation(memory.NewDefaultHost(), "online", "offline"))
		var valErr *pwa.ValidationError
		require.True(t, errors.As(err, &valErr))
		assert.Equal(t, "online", valErr.Field)
	})

	t.Run("position with options and no error callback", func(t *testing.T) {
		host := memory.NewDefaultHost()
		var got []any
		success := exports.Callback(func(args ...any) { got = append(got, args...) })
		opts := map[string]any{"enableHighAccuracy": true, "timeout": 1500.0}

		_, err := lookup(t, def, "get_current_position_with_options")(ctx, newInvocation(host, success, nil, opts))
		require.NoError(t, err)
		require.Len(t, got, 1)
		pos, ok := got[0].(entities.Position)
		require.True(t, ok)
		assert.InDelta(t, 51.5074, pos.Coords.Latitude, 1e-9)
		assert.Equal(t, &entities.PositionOptions{EnableHighAccuracy: true, Timeout: entities.Millis(1500)}, host.LastPositionOptions())
	})

	t.Run("position error reaches error callback", func(t *testing.T) {
		host := memory.NewDefaultHost()
		host.Update(func(p *memory.Profile) {
			p.Geolocation.Error = &entities.PositionError{Code: entities.PositionPermissionDenied, Message: "denied"}
		})
		var gotErr *entities.PositionError
		success := exports.Callback(func(...any) { t.Error("unexpected success") })
		failure := exports.Callback(func(args ...any) { gotErr, _ = args[0].(*entities.PositionError) })

		_, err := lookup(t, def, "get_current_position_with_options")(ctx, newInvocation(host, success, failure))
		require.NoError(t, err)
		require.NotNil(t, gotErr)
		assert.Equal(t, entities.PositionPermissionDenied, gotErr.Code)
	})

	t.Run("listen_connectivity subscription", func(t *testing.T) {
		host := memory.NewDefaultHost()
		var seen []any
		listener := exports.Callback(func(args ...any) { seen = append(seen, args...) })

		out, err := lookup(t, def, "listen_connectivity")(ctx, newInvocation(host, listener))
		require.NoError(t, err)
		sub, ok := out.(*exports.Subscription)
		require.True(t, ok)

		host.SetOnline(false)
		sub.Cancel()
		sub.Cancel()
		host.SetOnline(true)

		assert.Equal(t, []any{false}, seen)
		assert.Equal(t, 0, host.ListenerCount())
	})
}

func TestInvocation_Named(t *testing.T) {
	def := exports.Catalog()
	host := memory.NewDefaultHost()

	var calls int
	inv := newInvocation(host)
	inv.Raw = json.RawMessage(`{}`)
	inv.Callbacks = map[string]exports.Callback{
		"online":  func(...any) { calls++ },
		"offline": func(...any) { t.Error("unexpected offline") },
	}

	_, err := lookup(t, def, "check_connectivity")(context.Background(), inv)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	inv = newInvocation(host)
	inv.Raw = json.RawMessage(`not json`)
	_, err = lookup(t, def, "get_permission_status")(context.Background(), inv)
	var valErr *pwa.ValidationError
	assert.True(t, errors.As(err, &valErr))
}

func TestSnapshot(t *testing.T) {
	host := memory.NewDefaultHost()
	c := client.New(host, client.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	ctx := context.Background()

	conn, err := c.GetNetworkInformation(ctx)
	require.NoError(t, err)
	assert.Equal(t, conn.Info(), exports.Snapshot(conn))

	status, err := c.GetPermissionStatus(ctx, "notifications")
	require.NoError(t, err)
	assert.Equal(t, entities.PermissionStatusInfo{Name: "notifications", State: entities.PermissionDenied}, exports.Snapshot(status))

	geo, err := c.GetGeolocationObject(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"available": true}, exports.Snapshot(geo))

	assert.Nil(t, exports.Snapshot(exports.Void{}))
	assert.Equal(t, "en", exports.Snapshot("en"))
}
