// Copyright (c) 2023-2025 RapidaAI
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package internal_recorder

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// uploadSegment POSTs one finalized segment to /transcribe-webm. Only one
// upload may be in flight at a time; the mutex makes that explicit rather
// than relying on the ≥300s segment cadence.
func (r *Recorder) uploadSegment(ctx context.Context, path string, mtime time.Time, duration float64, speakerHint string) error {
	r.uploadMu.Lock()
	defer r.uploadMu.Unlock()

	client := resty.New().SetTimeout(uploadTimeout)
	req := client.R().
		SetContext(ctx).
		SetFile("audio", path).
		SetFormData(map[string]string{
			"start_time": mtime.Add(-time.Duration(duration * float64(time.Second))).Format(time.RFC3339),
			"duration":   fmt.Sprintf("%.3fs", duration),
			"platform":   string(r.platform),
		})
	if speakerHint != "" {
		req.SetFormData(map[string]string{"speaker_name": speakerHint})
	}

	resp, err := req.Post(r.uploadURL)
	if err != nil {
		return fmt.Errorf("recorder: transcribe-webm request failed: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("recorder: transcribe-webm returned %s: %s", resp.Status(), resp.String())
	}
	return nil
}
