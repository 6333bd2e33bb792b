//go:build !js

// Command pwa-probe runs the browser capability entry points outside a
// browser: against the local machine, an in-memory profile or a Chromium
// page driven by Playwright.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	pwa "github.com/remix-pwa/pwa-client"
	"github.com/remix-pwa/pwa-client/application/client"
	"github.com/remix-pwa/pwa-client/application/config"
	"github.com/remix-pwa/pwa-client/application/exports"
	"github.com/remix-pwa/pwa-client/application/policy"
	"github.com/remix-pwa/pwa-client/domain/ports"
	"github.com/remix-pwa/pwa-client/infrastructure/memory"
	"github.com/remix-pwa/pwa-client/infrastructure/native"
	"github.com/remix-pwa/pwa-client/infrastructure/playwright"
	"github.com/remix-pwa/pwa-client/log"
	"github.com/remix-pwa/pwa-client/wireformat"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// callbackPrefix marks a call argument that stands for a callback.
const callbackPrefix = "fn:"

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

type options struct {
	host    string
	profile string
	config  string
	format  string
	wait    time.Duration
}

func run(argv []string, stdout, stderr io.Writer) int {
	var opts options
	fs := flag.NewFlagSet("pwa-probe", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.host, "host", "memory", "Host to run against: native, memory or browser.")
	fs.StringVar(&opts.profile, "profile", "", "YAML host profile for the memory host (optional).")
	fs.StringVar(&opts.config, "config", "", "YAML or JSON configuration file (optional).")
	fs.StringVar(&opts.format, "format", "json", "Output format: json or yaml.")
	fs.DurationVar(&opts.wait, "wait", 3*time.Second, "How long to wait for callbacks after a call.")
	fs.Usage = func() { writeHelp(stderr, fs) }

	if err := fs.Parse(argv[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	rest := fs.Args()
	if len(rest) == 0 {
		writeHelp(stderr, fs)
		return exitUsage
	}
	if opts.format != "json" && opts.format != "yaml" {
		fmt.Fprintf(stderr, "unknown format %q\n", opts.format)
		return exitUsage
	}

	cfg := config.Default()
	if opts.config != "" {
		var err error
		if cfg, err = config.Load(opts.config); err != nil {
			fmt.Fprintln(stderr, err)
			return exitError
		}
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	checker, err := policy.NewExposeChecker(cfg.Expose, policy.WithDeny(cfg.Deny...), policy.WithExposeLogger(logger))
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitError
	}

	def := exports.Catalog()
	out := &printer{w: stdout, format: opts.format}

	switch cmd, args := rest[0], rest[1:]; cmd {
	case "help":
		writeHelp(stdout, fs)
		return exitOK
	case "manifest":
		return out.print(def.Manifest(), stderr)
	case "list":
		for _, op := range def.Operations() {
			if !checker.Allowed(op.Service, op.Name) {
				continue
			}
			fmt.Fprintf(stdout, "%s/%s\t%s\n", op.Service, op.Name, strings.Join(op.Params, ", "))
		}
		return exitOK
	case "call":
		if len(args) == 0 {
			fmt.Fprintln(stderr, "call: missing entry point name")
			return exitUsage
		}
		host, closeHost, err := newHost(opts, cfg, logger)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return exitError
		}
		defer closeHost()

		c := client.New(host, client.WithLogger(logger))
		return call(def, checker, c, args[0], args[1:], opts.wait, out, stdout, stderr)
	default:
		fmt.Fprintf(stderr, "unknown command: %s\n", cmd)
		writeHelp(stderr, fs)
		return exitUsage
	}
}

func newHost(opts options, cfg config.Config, logger *slog.Logger) (ports.Host, func(), error) {
	noop := func() {}

	switch opts.host {
	case "memory":
		if opts.profile == "" {
			return memory.NewDefaultHost(), noop, nil
		}
		p, err := memory.LoadProfile(opts.profile)
		if err != nil {
			return nil, nil, err
		}
		return memory.NewHost(p), noop, nil
	case "native":
		hostOpts := []native.Option{native.WithLogger(logger)}
		if cfg.Geolocation.APIKey != "" {
			loc, err := native.NewGoogleLocator(cfg.Geolocation.APIKey)
			if err != nil {
				return nil, nil, fmt.Errorf("geolocation: %w", err)
			}
			hostOpts = append(hostOpts, native.WithLocator(loc))
		}
		return native.NewHost(hostOpts...), noop, nil
	case "browser":
		h, err := playwright.Launch(cfg.Browser, playwright.WithLogger(logger))
		if err != nil {
			return nil, nil, err
		}
		return h, func() {
			if err := h.Close(); err != nil {
				logger.Warn("pwa-probe: closing browser failed", "error", err)
			}
		}, nil
	default:
		return nil, nil, fmt.Errorf("unknown host %q", opts.host)
	}
}

func call(def *exports.Definition, checker *policy.ExposeChecker, c *client.Client, name string, rawArgs []string, wait time.Duration, out *printer, stdout, stderr io.Writer) int {
	op, ok := def.Lookup(name)
	if !ok {
		fmt.Fprintf(stderr, "unknown entry point: %s\n", name)
		return exitError
	}
	if err := checker.Check(op.Service, op.Name); err != nil {
		fmt.Fprintln(stderr, err)
		return exitError
	}

	fired := make(chan struct{}, 1)
	var mu sync.Mutex
	args := make([]any, len(rawArgs))
	callbacks := 0
	for i, raw := range rawArgs {
		if cbName, ok := strings.CutPrefix(raw, callbackPrefix); ok {
			callbacks++
			args[i] = exports.Callback(func(values ...any) {
				mu.Lock()
				defer mu.Unlock()
				printCallback(stdout, cbName, values)
				select {
				case fired <- struct{}{}:
				default:
				}
			})
			continue
		}
		args[i] = parseArg(raw)
	}

	requestID := uuid.NewString()
	ctx := log.WithRequestID(context.Background(), requestID)
	result, err := op.Handler(ctx, &exports.Invocation{Client: c, Args: args})

	if sub, ok := result.(*exports.Subscription); ok && err == nil {
		time.Sleep(wait)
		sub.Cancel()
	} else if callbacks > 0 && err == nil {
		select {
		case <-fired:
		case <-time.After(wait):
			fmt.Fprintln(stderr, "pwa-probe: no callback within", wait)
		}
	}

	mu.Lock()
	defer mu.Unlock()
	res := wireformat.ResultWire{
		RequestID: requestID,
		Operation: op.Name,
		Value:     exports.Snapshot(result),
		Error:     pwa.ToErrorDetail(err),
	}
	if code := out.print(res, stderr); code != exitOK {
		return code
	}
	if err != nil {
		return exitError
	}
	return exitOK
}

// parseArg reads an argument as JSON, falling back to a plain string.
func parseArg(raw string) any {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err == nil {
		return v
	}
	return raw
}

func printCallback(w io.Writer, name string, values []any) {
	parts := make([]string, len(values))
	for i, v := range values {
		b, err := json.Marshal(v)
		if err != nil {
			parts[i] = fmt.Sprintf("%v", v)
			continue
		}
		parts[i] = string(b)
	}
	fmt.Fprintf(w, "%s(%s)\n", name, strings.Join(parts, ", "))
}

type printer struct {
	w      io.Writer
	format string
}

func (p *printer) print(v any, stderr io.Writer) int {
	var (
		data []byte
		err  error
	)
	if p.format == "yaml" {
		data, err = toYAML(v)
	} else {
		data, err = json.MarshalIndent(v, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		fmt.Fprintf(stderr, "failed to encode output: %v\n", err)
		return exitError
	}
	_, _ = p.w.Write(data)
	return exitOK
}

// toYAML renders v through its JSON form so that json tags and custom
// marshalers decide the field names.
func toYAML(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var generic any
	if err := json.Unmarshal(b, &generic); err != nil {
		return nil, err
	}
	return yaml.Marshal(generic)
}

func writeHelp(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "usage: pwa-probe [flags] <manifest|list|call NAME [ARGS...]>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Call arguments are parsed as JSON when possible; fn:NAME passes a")
	fmt.Fprintln(w, "callback that prints NAME and its arguments.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "flags:")
	fs.SetOutput(w)
	fs.PrintDefaults()
}
