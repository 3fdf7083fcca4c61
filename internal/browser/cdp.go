// Copyright (c) 2023-2025 RapidaAI
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package internal_browser

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rapidaai/meetingbot/pkg/commons"
)

// cdpMessage is the envelope every CDP request/response/event uses.
type cdpMessage struct {
	ID     int64           `json:"id,omitempty"`
	Method string          `json:"method,omitempty"`
	Params json.RawMessage `json:"params,omitempty"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  *cdpError       `json:"error,omitempty"`
}

type cdpError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// cdpPage is a minimal Chrome DevTools Protocol client: enough to drive a
// join flow (navigate, evaluate JS for DOM/selector inspection, synthesize
// input) without pulling in a full browser-automation dependency absent
// from the example corpus.
type cdpPage struct {
	logger commons.Logger
	conn   *websocket.Conn

	mu      sync.Mutex
	nextID  int64
	pending map[int64]chan cdpMessage
	closed  atomic.Bool
}

// Dial connects to a page's DevTools websocket debugger URL (as returned
// by the browser's /json/list HTTP endpoint).
func Dial(ctx context.Context, logger commons.Logger, debuggerURL string) (Page, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, debuggerURL, nil)
	if err != nil {
		return nil, fmt.Errorf("browser: failed to dial CDP endpoint %s: %w", debuggerURL, err)
	}
	p := &cdpPage{
		logger:  logger,
		conn:    conn,
		pending: make(map[int64]chan cdpMessage),
	}
	go p.readLoop()

	for _, domain := range []string{"Page.enable", "Runtime.enable", "DOM.enable", "Input.enable"} {
		if _, err := p.call(ctx, domain, nil); err != nil {
			logger.Warnf("browser: failed to enable domain %s: %v", domain, err)
		}
	}
	return p, nil
}

func (p *cdpPage) readLoop() {
	for {
		_, data, err := p.conn.ReadMessage()
		if err != nil {
			p.closed.Store(true)
			p.failAllPending(err)
			return
		}
		var msg cdpMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}
		if msg.ID == 0 {
			continue // event we don't track; Meeting Clients poll via Eval instead
		}
		p.mu.Lock()
		ch, ok := p.pending[msg.ID]
		delete(p.pending, msg.ID)
		p.mu.Unlock()
		if ok {
			ch <- msg
		}
	}
}

func (p *cdpPage) failAllPending(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for id, ch := range p.pending {
		ch <- cdpMessage{ID: id, Error: &cdpError{Message: err.Error()}}
		delete(p.pending, id)
	}
}

func (p *cdpPage) call(ctx context.Context, method string, params interface{}) (json.RawMessage, error) {
	if p.closed.Load() {
		return nil, fmt.Errorf("browser: page is closed")
	}
	id := atomic.AddInt64(&p.nextID, 1)
	var raw json.RawMessage
	if params != nil {
		var err error
		raw, err = json.Marshal(params)
		if err != nil {
			return nil, err
		}
	}
	req := cdpMessage{ID: id, Method: method, Params: raw}
	data, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	ch := make(chan cdpMessage, 1)
	p.mu.Lock()
	p.pending[id] = ch
	p.mu.Unlock()

	if err := p.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return nil, fmt.Errorf("browser: write %s failed: %w", method, err)
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case resp := <-ch:
		if resp.Error != nil {
			return nil, fmt.Errorf("browser: %s failed: %s", method, resp.Error.Message)
		}
		return resp.Result, nil
	}
}

func (p *cdpPage) Navigate(ctx context.Context, url string) error {
	_, err := p.call(ctx, "Page.navigate", map[string]string{"url": url})
	return err
}

func (p *cdpPage) Eval(ctx context.Context, js string, out interface{}) error {
	result, err := p.call(ctx, "Runtime.evaluate", map[string]interface{}{
		"expression":    js,
		"returnByValue": true,
		"awaitPromise":  true,
	})
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	var wrapper struct {
		Result struct {
			Value json.RawMessage `json:"value"`
		} `json:"result"`
	}
	if err := json.Unmarshal(result, &wrapper); err != nil {
		return err
	}
	if len(wrapper.Result.Value) == 0 {
		return nil
	}
	return json.Unmarshal(wrapper.Result.Value, out)
}

func (p *cdpPage) Click(ctx context.Context, selector string) error {
	var rect struct {
		Found       bool    `json:"found"`
		X           float64 `json:"x"`
		Y           float64 `json:"y"`
	}
	js := fmt.Sprintf(`(() => {
		const el = document.querySelector(%q);
		if (!el) return {found:false,x:0,y:0};
		const r = el.getBoundingClientRect();
		return {found:true, x:r.x+r.width/2, y:r.y+r.height/2};
	})()`, selector)
	if err := p.Eval(ctx, js, &rect); err != nil {
		return err
	}
	if !rect.Found {
		return fmt.Errorf("browser: click target %q not found", selector)
	}
	for _, t := range []string{"mousePressed", "mouseReleased"} {
		if _, err := p.call(ctx, "Input.dispatchMouseEvent", map[string]interface{}{
			"type": t, "x": rect.X, "y": rect.Y, "button": "left", "clickCount": 1,
		}); err != nil {
			return err
		}
	}
	return nil
}

func (p *cdpPage) Type(ctx context.Context, text string) error {
	for _, r := range text {
		ch := string(r)
		if _, err := p.call(ctx, "Input.dispatchKeyEvent", map[string]interface{}{
			"type": "char", "text": ch,
		}); err != nil {
			return err
		}
	}
	return nil
}

func (p *cdpPage) WaitForSelector(ctx context.Context, selector string) (bool, error) {
	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) {
		var found bool
		js := fmt.Sprintf(`document.querySelector(%q) !== null`, selector)
		if err := p.Eval(ctx, js, &found); err != nil {
			return false, err
		}
		if found {
			return true, nil
		}
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-time.After(200 * time.Millisecond):
		}
	}
	return false, nil
}

func (p *cdpPage) URL(ctx context.Context) (string, error) {
	var url string
	if err := p.Eval(ctx, "window.location.href", &url); err != nil {
		return "", err
	}
	return url, nil
}

func (p *cdpPage) Closed() bool {
	return p.closed.Load()
}

func (p *cdpPage) Close() error {
	if p.closed.Swap(true) {
		return nil
	}
	return p.conn.Close()
}
