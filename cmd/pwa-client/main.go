//go:build js && wasm

// Command pwa-client is the WebAssembly module loaded by pages. It installs
// the browser capability entry points on the global scope (or on the
// configured namespace) and then keeps the Go runtime alive.
package main

import (
	"log/slog"
	"syscall/js"

	pwa "github.com/remix-pwa/pwa-client"
	"github.com/remix-pwa/pwa-client/application/client"
	"github.com/remix-pwa/pwa-client/application/config"
	"github.com/remix-pwa/pwa-client/application/exports"
	"github.com/remix-pwa/pwa-client/application/policy"
	"github.com/remix-pwa/pwa-client/infrastructure/browser"
	"github.com/remix-pwa/pwa-client/infrastructure/wasm"
	"github.com/remix-pwa/pwa-client/internal/jsbridge"
	"github.com/remix-pwa/pwa-client/log"
)

// configGlobal is the optional page-provided configuration object.
const configGlobal = "pwaClientConfig"

func main() {
	cfg, cfgErr := loadConfig()

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	log.Install(level)

	if cfgErr != nil {
		slog.Error("pwa: invalid configuration, using defaults", "error", cfgErr)
		cfg = config.Default()
	}

	logger := slog.Default()
	checker, err := policy.NewExposeChecker(cfg.Expose, policy.WithDeny(cfg.Deny...), policy.WithExposeLogger(logger))
	if err != nil {
		slog.Error("pwa: invalid expose patterns, exposing everything", "error", err)
		checker, _ = policy.NewExposeChecker([]string{"**"})
	}

	c := client.New(browser.NewHost(), client.WithLogger(logger))
	wasm.Register(exports.Catalog(), c, checker, wasm.WithLogger(logger), wasm.WithNamespace(cfg.Namespace))

	js.Global().Get("console").Call("debug", pwa.ModuleName+" WASM module loaded successfully")

	select {}
}

// loadConfig reads globalThis.pwaClientConfig through its JSON form. A
// missing object yields the defaults.
func loadConfig() (config.Config, error) {
	v := js.Global().Get(configGlobal)
	if !jsbridge.Defined(v) {
		return config.Default(), nil
	}
	raw, err := jsbridge.Stringify(v)
	if err != nil {
		return config.Default(), err
	}
	// YAML is a superset of JSON.
	return config.Parse([]byte(raw))
}
