package memory

import (
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/remix-pwa/pwa-client/domain/entities"
)

// Profile describes the state of an in-memory browser. Nil pointers and
// false presence flags model capabilities the browser does not offer.
type Profile struct {
	Name            string                              `yaml:"name"`
	Window          bool                                `yaml:"window"`
	Document        bool                                `yaml:"document"`
	DocumentElement bool                                `yaml:"document_element"`
	Online          bool                                `yaml:"online"`
	Language        string                              `yaml:"language"`
	Languages       []string                            `yaml:"languages" validate:"dive,required"`
	Clipboard       *ClipboardProfile                   `yaml:"clipboard"`
	Connection      *entities.NetworkInformation        `yaml:"connection"`
	Geolocation     *GeolocationProfile                 `yaml:"geolocation"`
	Permissions     map[string]entities.PermissionState `yaml:"permissions" validate:"omitempty,dive,keys,required,endkeys,oneof=granted denied prompt"`
	// PermissionErrors makes a query for the named permission reject.
	PermissionErrors map[string]string        `yaml:"permission_errors"`
	Fullscreen       bool                     `yaml:"fullscreen"`
	FullscreenError  string                   `yaml:"fullscreen_error"`
	Visibility       entities.VisibilityState `yaml:"visibility" validate:"omitempty,oneof=hidden visible"`
}

// ClipboardProfile is the clipboard state. Non-empty error strings make the
// corresponding operation fail with that message.
type ClipboardProfile struct {
	Text       string `yaml:"text"`
	WriteError string `yaml:"write_error"`
	ReadError  string `yaml:"read_error"`
}

// GeolocationProfile is the geolocation state. Refuse makes the request fail
// to start; Error is delivered to the failure callback; otherwise Position is
// delivered to the success callback.
type GeolocationProfile struct {
	Position *entities.Position      `yaml:"position"`
	Error    *entities.PositionError `yaml:"error"`
	Refuse   string                  `yaml:"refuse"`
}

// Clone returns a copy of p that shares no memory with it.
func (p Profile) Clone() Profile {
	p.Languages = slices.Clone(p.Languages)
	p.Permissions = maps.Clone(p.Permissions)
	p.PermissionErrors = maps.Clone(p.PermissionErrors)
	if p.Clipboard != nil {
		c := *p.Clipboard
		p.Clipboard = &c
	}
	if p.Connection != nil {
		c := *p.Connection
		p.Connection = &c
	}
	if p.Geolocation != nil {
		g := *p.Geolocation
		if g.Position != nil {
			pos := *g.Position
			pos.Coords.Altitude = clonePtr(pos.Coords.Altitude)
			pos.Coords.AltitudeAccuracy = clonePtr(pos.Coords.AltitudeAccuracy)
			pos.Coords.Heading = clonePtr(pos.Coords.Heading)
			pos.Coords.Speed = clonePtr(pos.Coords.Speed)
			g.Position = &pos
		}
		if g.Error != nil {
			e := *g.Error
			g.Error = &e
		}
		p.Geolocation = &g
	}
	return p
}

func clonePtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// DefaultProfile returns a visible, online desktop browser with every
// capability present.
func DefaultProfile() Profile {
	return Profile{
		Name:            "default",
		Window:          true,
		Document:        true,
		DocumentElement: true,
		Online:          true,
		Language:        "en-US",
		Languages:       []string{"en-US", "en"},
		Clipboard:       &ClipboardProfile{},
		Connection: &entities.NetworkInformation{
			Type:          entities.ConnectionWifi,
			EffectiveType: "4g",
			Downlink:      10,
			RTT:           50,
		},
		Geolocation: &GeolocationProfile{
			Position: &entities.Position{
				Coords: entities.Coordinates{Latitude: 51.5074, Longitude: -0.1278, Accuracy: 20},
			},
		},
		Permissions: map[string]entities.PermissionState{
			"clipboard-read":  entities.PermissionPrompt,
			"clipboard-write": entities.PermissionGranted,
			"geolocation":     entities.PermissionPrompt,
			"notifications":   entities.PermissionDenied,
		},
		Visibility: entities.VisibilityVisible,
	}
}

// ServerProfile returns a profile with no global window, matching a call
// made during server-side rendering.
func ServerProfile() Profile {
	return Profile{Name: "server"}
}

var profileValidator = validator.New()

// ParseProfile decodes a YAML profile on top of DefaultProfile, so that
// omitted keys keep their defaults.
func ParseProfile(data []byte) (Profile, error) {
	p := DefaultProfile()
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("failed to parse profile: %w", err)
	}
	if err := profileValidator.Struct(p); err != nil {
		return Profile{}, fmt.Errorf("invalid profile %q: %w", p.Name, err)
	}
	return p, nil
}

// LoadProfile reads and parses a YAML profile file.
func LoadProfile(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("failed to read profile: %w", err)
	}
	return ParseProfile(data)
}
