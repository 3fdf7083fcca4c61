// Copyright (c) 2023-2025 RapidaAI
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package internal_report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	internal_ipc "github.com/rapidaai/meetingbot/internal/ipc"
	internal_meeting "github.com/rapidaai/meetingbot/internal/meeting"
	internal_persistence "github.com/rapidaai/meetingbot/internal/persistence"
	internal_storage "github.com/rapidaai/meetingbot/internal/storage"
	"github.com/rapidaai/meetingbot/pkg/commons"
)

// LLM is the narrow surface Build needs from internal/transcription's
// Gemini client, so this package doesn't import transcription's retry
// internals directly.
type LLM interface {
	GenerateTextOnly(ctx context.Context, prompt string) (string, error)
}

// Builder runs the Report Builder pipeline.
type Builder struct {
	logger    commons.Logger
	store     *internal_ipc.Store
	llm       LLM
	blobStore internal_storage.Store
	persist   internal_persistence.Store
	reportDir string
}

// New constructs a Builder. blobStore/persist may be nil, in which case
// Build still produces and preserves the local report/transcript files but
// skips the upload and database insert steps (useful for the standalone
// `meetingbot report` CLI invocation against a job with no configured
// credentials, and for tests).
func New(logger commons.Logger, store *internal_ipc.Store, llm LLM, blobStore internal_storage.Store, persist internal_persistence.Store, reportDir string) *Builder {
	return &Builder{logger: logger, store: store, llm: llm, blobStore: blobStore, persist: persist, reportDir: reportDir}
}

// Result summarizes what Build produced, for logging and tests.
type Result struct {
	LocalReportPath     string
	LocalTranscriptPath string
	ReportURL           string
	TranscriptURL       string
	UnknownSpeakers     []string
	Uploaded            bool
	Persisted           bool
}

// Build implements end to end: load inputs, compute statistics,
// derive diarization hints, call the LLM for the HTML body, wrap it in the
// fixed shell, upload both artifacts, and insert a database row. A failure
// at upload or insert still leaves the local files on disk (step 6).
func (b *Builder) Build(ctx context.Context, job internal_ipc.Job) (*Result, error) {
	transcript, _ := b.store.ReadTranscript()
	activity, _ := b.store.ReadActivityLog()
	snapshot, hasSnapshot := b.store.LoadParticipantSnapshot()

	var participants []string
	if hasSnapshot {
		participants = internal_meeting.FilterNonHumanNames(snapshot.Participants, job.BotDisplayName)
	}

	stats := ComputeStatistics(activity)
	candidates := ExtractSpeakerNames(transcript)
	_, unknown := CrossValidateSpeakers(candidates, participants)

	title := job.Title
	if title == "" {
		title = fmt.Sprintf("%s meeting on %s", capitalize(string(job.Platform)), time.Now().Format("2006-01-02"))
	}

	var htmlBody string
	if b.llm != nil {
		prompt := BuildSummaryPrompt(title, transcript, stats, unknown)
		raw, err := b.llm.GenerateTextOnly(ctx, prompt)
		if err != nil {
			b.logger.Warnf("report: llm summary generation failed, falling back to a stats-only body: %v", err)
			htmlBody = fallbackBody(stats, unknown)
		} else {
			htmlBody = StripHTMLFences(raw)
		}
	} else {
		htmlBody = fallbackBody(stats, unknown)
	}

	fullHTML := WrapHTMLShell(title, htmlBody, time.Now())

	meetingID := job.MeetingID
	if meetingID == "" {
		meetingID = fmt.Sprintf("%s-%d", job.Platform, time.Now().Unix())
	}

	result := &Result{UnknownSpeakers: unknown}
	var err error
	if result.LocalReportPath, err = b.writeLocal(meetingID+".html", fullHTML); err != nil {
		return nil, err
	}
	if result.LocalTranscriptPath, err = b.writeLocal(meetingID+".txt", transcript); err != nil {
		return nil, err
	}

	if b.blobStore == nil {
		return result, nil
	}

	reportURL, err := b.blobStore.PutHTML(ctx, internal_storage.ReportKey(meetingID), []byte(fullHTML))
	if err != nil {
		b.logger.Warnf("report: upload of html report failed, local copy preserved at %s: %v", result.LocalReportPath, err)
		return result, nil
	}
	transcriptURL, err := b.blobStore.PutText(ctx, internal_storage.TranscriptKey(meetingID), []byte(transcript))
	if err != nil {
		b.logger.Warnf("report: upload of transcript failed, local copy preserved at %s: %v", result.LocalTranscriptPath, err)
		return result, nil
	}
	result.ReportURL, result.TranscriptURL, result.Uploaded = reportURL, transcriptURL, true

	if b.persist == nil {
		return result, nil
	}
	row := &internal_persistence.MeetingReport{
		UserID:          job.UserID,
		Platform:        string(job.Platform),
		Title:           title,
		MeetingID:       meetingID,
		ReportURL:       reportURL,
		TranscriptURL:   transcriptURL,
		UnknownSpeakers: strings.Join(unknown, ", "),
	}
	if err := b.persist.Insert(ctx, row); err != nil {
		b.logger.Warnf("report: database insert failed, artifacts remain uploaded and preserved locally: %v", err)
		return result, nil
	}
	result.Persisted = true
	return result, nil
}

func (b *Builder) writeLocal(name, content string) (string, error) {
	if err := os.MkdirAll(b.reportDir, 0o755); err != nil {
		return "", fmt.Errorf("report: failed to create report dir: %w", err)
	}
	path := filepath.Join(b.reportDir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("report: failed to write %s: %w", path, err)
	}
	return path, nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func fallbackBody(stats []SpeakerStat, unknown []string) string {
	var b strings.Builder
	b.WriteString("<h2>Summary</h2><p>Automated summary unavailable.</p>")
	b.WriteString("<h2>Ideas &amp; Decisions</h2><p>None recorded.</p>")
	b.WriteString("<h2>Action Items</h2><table><tr><th>Owner</th><th>Task</th></tr></table>")
	b.WriteString("<h2>Participation Quality</h2><table><tr><th>Speaker</th><th>Talk Time</th><th>Turns</th></tr>")
	for _, s := range stats {
		fmt.Fprintf(&b, "<tr><td>%s</td><td>%s</td><td>%d</td></tr>", s.Name, s.TalkTime.Round(time.Second), s.TurnCount)
	}
	b.WriteString("</table>")
	if len(unknown) > 0 {
		fmt.Fprintf(&b, "<p>Unmatched speaker labels: %s</p>", strings.Join(unknown, ", "))
	}
	return b.String()
}
