//go:build !js

package playwright

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	pwa "github.com/remix-pwa/pwa-client"
	"github.com/remix-pwa/pwa-client/application/client"
	"github.com/remix-pwa/pwa-client/domain/entities"
)

// fakePage answers scripts from a table. Entries may be values, errors or
// functions of the evaluation argument.
type fakePage struct {
	mu      sync.Mutex
	results map[string]any
	calls   []string
	args    map[string][]interface{}
}

func newFakePage() *fakePage {
	return &fakePage{
		results: map[string]any{
			exprHasWindow:      true,
			exprHasDocument:    true,
			exprHasClipboard:   true,
			exprOnLine:         true,
			exprHasGeolocation: true,
			exprLanguage:       "en-US",
			exprLanguages:      []interface{}{"en-US", "en"},
			exprHasPermissions: true,
			exprHasElement:     true,
			exprFullscreen:     false,
			exprVisibility:     "visible",
			exprConnection: map[string]interface{}{
				"type": "unknown", "effectiveType": "4g", "downlink": 10, "rtt": 50, "saveData": false,
			},
			fnWriteText:         nil,
			fnReadText:          "pasted",
			fnExitFullscreen:    nil,
			fnRequestFullscreen: nil,
		},
		args: make(map[string][]interface{}),
	}
}

func (p *fakePage) Evaluate(expression string, arg ...interface{}) (interface{}, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.calls = append(p.calls, expression)
	p.args[expression] = arg

	r, ok := p.results[expression]
	if !ok {
		return nil, errors.New("unexpected expression")
	}
	switch v := r.(type) {
	case error:
		return nil, v
	case func([]interface{}) (interface{}, error):
		return v(arg)
	default:
		return v, nil
	}
}

func (p *fakePage) set(expr string, v any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.results[expr] = v
}

func (p *fakePage) argsFor(expr string) []interface{} {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.args[expr]
}

type HostSuite struct {
	suite.Suite
	page   *fakePage
	host   *Host
	client *client.Client
	ctx    context.Context
}

func (s *HostSuite) SetupTest() {
	s.page = newFakePage()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.host = NewHost(s.page, WithLogger(logger), WithTimeout(time.Second), WithPollInterval(5*time.Millisecond))
	s.client = client.New(s.host, client.WithLogger(logger))
	s.ctx = context.Background()
}

func (s *HostSuite) TestLanguages() {
	langs, err := s.client.GetLanguages(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"en-US", "en"}, langs)

	lang, err := s.client.GetLanguage(s.ctx)
	s.Require().NoError(err)
	s.Equal("en-US", lang)
}

func (s *HostSuite) TestNoWindow() {
	s.page.set(exprHasWindow, false)

	_, err := s.client.GetLanguage(s.ctx)
	var abortErr *pwa.AbortError
	s.True(errors.As(err, &abortErr))
}

func (s *HostSuite) TestClipboard() {
	resp, err := s.client.CopyToClipboard(s.ctx, "hello")
	s.Require().NoError(err)
	s.True(resp.IsSuccess())
	s.Equal([]interface{}{"hello"}, s.page.argsFor(fnWriteText))

	text, err := s.client.PasteFromClipboard(s.ctx)
	s.Require().NoError(err)
	s.Equal("pasted", text)
}

func (s *HostSuite) TestClipboardRejected() {
	s.page.set(fnWriteText, errors.New("NotAllowedError: Write permission denied."))

	resp, err := s.client.CopyToClipboard(s.ctx, "hello")
	var respErr *pwa.ResponseError
	s.Require().True(errors.As(err, &respErr))
	s.Equal(client.MsgCopyFailed, resp.Message())
}

func (s *HostSuite) TestNetworkInformation() {
	conn, err := s.client.GetNetworkInformation(s.ctx)
	s.Require().NoError(err)

	info := conn.Info()
	s.Equal(entities.ConnectionUnknown, info.Type)
	s.Equal("4g", info.EffectiveType)
	s.InDelta(10, info.Downlink, 1e-9)
	s.Equal(50, info.RTT)

	s.page.set(exprConnection, nil)
	_, err = s.client.GetType(s.ctx)
	var abortErr *pwa.AbortError
	s.True(errors.As(err, &abortErr))
}

func (s *HostSuite) TestFullscreen() {
	resp, err := s.client.RequestFullscreen(s.ctx)
	s.Require().NoError(err)
	s.Equal(client.MsgFullscreenEnabled, resp.Message())

	s.page.set(exprFullscreen, true)
	fs, err := s.client.IsFullscreen(s.ctx)
	s.Require().NoError(err)
	s.True(fs)
}

func (s *HostSuite) TestVisibility() {
	s.page.set(exprVisibility, "hidden")
	state, err := s.client.GetVisibilityState(s.ctx)
	s.Require().NoError(err)
	s.Equal(entities.VisibilityHidden, state)
}

func (s *HostSuite) TestPermissions() {
	s.page.set(fnQueryPermission, func(arg []interface{}) (interface{}, error) {
		if arg[0] == "geolocation" {
			return map[string]interface{}{"name": "geolocation", "state": "granted"}, nil
		}
		return map[string]interface{}{"error": "The provided value is not a valid enum value"}, nil
	})

	status, err := s.client.GetPermissionStatus(s.ctx, "geolocation")
	s.Require().NoError(err)
	s.Equal("geolocation", status.Name())
	s.Equal(entities.PermissionGranted, status.State())

	_, err = s.client.GetPermissionStatus(s.ctx, "telepathy")
	var abortErr *pwa.AbortError
	s.True(errors.As(err, &abortErr))
}

func (s *HostSuite) TestGeolocation() {
	s.page.set(fnCurrentPosition, map[string]interface{}{
		"ok":        true,
		"timestamp": 1700000000000.0,
		"coords": map[string]interface{}{
			"latitude": 51.5, "longitude": -0.12, "accuracy": 20, "altitude": nil,
		},
	})

	pos, err := s.client.CurrentPosition(s.ctx, &entities.PositionOptions{Timeout: entities.Millis(0), MaximumAge: entities.Millis(1000)})
	s.Require().NoError(err)
	s.InDelta(51.5, pos.Coords.Latitude, 1e-9)
	s.Nil(pos.Coords.Altitude)
	s.Equal(int64(1700000000000), pos.Timestamp)
	s.Equal([]interface{}{map[string]interface{}{
		"enableHighAccuracy": false, "timeout": int64(0), "maximumAge": int64(1000),
	}}, s.page.argsFor(fnCurrentPosition))
}

func (s *HostSuite) TestGeolocationError() {
	s.page.set(fnCurrentPosition, map[string]interface{}{"ok": false, "code": 1, "message": "User denied Geolocation"})

	_, err := s.client.CurrentPosition(s.ctx, nil)
	var posErr *entities.PositionError
	s.Require().True(errors.As(err, &posErr))
	s.Equal(entities.PositionPermissionDenied, posErr.Code)
	s.Equal("User denied Geolocation", posErr.Message)
}

func (s *HostSuite) TestConnectivityListener() {
	events := make(chan bool, 4)
	w, ok := s.host.Window()
	s.Require().True(ok)
	remove := w.AddConnectivityListener(func(v bool) { events <- v })
	defer remove()

	s.page.set(exprOnLine, false)
	select {
	case v := <-events:
		s.False(v)
	case <-time.After(2 * time.Second):
		s.Fail("no connectivity event")
	}
}

func (s *HostSuite) TestClose() {
	var closed int
	s.host.closers = []func() error{
		func() error { closed++; return nil },
		func() error { closed++; return errors.New("stop failed") },
	}
	s.EqualError(s.host.Close(), "stop failed")
	s.Equal(2, closed)
	s.NoError(s.host.Close())
}

func TestHostSuite(t *testing.T) {
	suite.Run(t, new(HostSuite))
}

func TestEvalTimeout(t *testing.T) {
	block := make(chan struct{})
	defer close(block)

	page := newFakePage()
	page.set(exprOnLine, func([]interface{}) (interface{}, error) {
		<-block
		return true, nil
	})
	h := NewHost(page, WithTimeout(10*time.Millisecond))

	_, err := h.eval(context.Background(), exprOnLine)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
