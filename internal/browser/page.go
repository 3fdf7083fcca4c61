// Copyright (c) 2023-2025 RapidaAI
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

// Package internal_browser is the one real-socket dependency standing in
// for the headless browser engine, reached only through an interface so
// callers never depend on a concrete CDP client directly. Page is that
// interface; cdpPage is a minimal Chrome DevTools Protocol client over a
// websocket.
package internal_browser

import "context"

// Page is the capability set Meeting Clients need from a browser tab. It
// deliberately mirrors a tiny slice of CDP rather than exposing the whole
// protocol, surfacing only the handful of operations a caller needs.
type Page interface {
	// Navigate asks the page to load url. It returns once the browser has
	// accepted the navigation and does not wait for the load event.
	Navigate(ctx context.Context, url string) error
	// Eval runs js in the page's main world and unmarshals the JSON result
	// into out (pass a pointer, or nil to discard the result).
	Eval(ctx context.Context, js string, out interface{}) error
	// Click dispatches a mouse click at the center of the first element
	// matching selector. Returns an error if no element matches.
	Click(ctx context.Context, selector string) error
	// Type sends keystrokes for text into the currently focused element.
	Type(ctx context.Context, text string) error
	// WaitForSelector polls until selector matches at least one element or
	// timeout elapses.
	WaitForSelector(ctx context.Context, selector string) (bool, error)
	// URL returns the page's current URL.
	URL(ctx context.Context) (string, error)
	// Closed reports whether the underlying page/socket has disconnected.
	Closed() bool
	// Close tears down the CDP connection. Safe to call multiple times.
	Close() error
}

// Launcher starts a browser process and returns a Page attached to its
// first tab. The concrete implementation shells out to the browser binary
// (path supplied by the Platform Adapter) and connects to its DevTools
// websocket endpoint.
type Launcher interface {
	Launch(ctx context.Context, args []string) (Page, error)
}
