// Copyright (c) 2023-2025 RapidaAI
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package internal_transcription

import (
	"context"
	"time"

	internal_ipc "github.com/rapidaai/meetingbot/internal/ipc"
	"github.com/rapidaai/meetingbot/pkg/commons"
)

// Request mirrors the multipart fields of /transcribe-webm.
type Request struct {
	Audio       []byte
	MimeType    string
	StartTime   time.Time
	Duration    time.Duration
	SpeakerName string
	Platform    internal_ipc.Platform
}

// Service implements the /transcribe-webm contract server-side.
type Service struct {
	logger commons.Logger
	store  *internal_ipc.Store
	llm    *LLM
}

// NewService constructs a transcription Service bound to the shared IPC
// store and a Gemini client.
func NewService(logger commons.Logger, store *internal_ipc.Store, llm *LLM) *Service {
	return &Service{logger: logger, store: store, llm: llm}
}

// Transcribe runs the full pipeline: resolve hint, build prompt,
// call the LLM with retry, filter ghost output, canonicalize names, and
// append with dedup. Returns whether text was appended.
func (s *Service) Transcribe(ctx context.Context, req Request) (bool, error) {
	hint := ResolveHint(s.store, req.StartTime, req.Duration, req.SpeakerName)
	prompt := BuildPrompt(hint, req.Platform)

	raw, err := s.llm.GenerateText(ctx, prompt, req.Audio, req.MimeType)
	if err != nil {
		if err == ErrQuotaExhausted {
			s.logger.Warnf("transcription: daily quota exhausted, aborting without append")
			return false, ErrQuotaExhausted
		}
		return false, err
	}

	cleaned, ok := FilterGhostOutput(raw)
	if !ok {
		return false, nil
	}

	participants := s.participantNames()
	cleaned = CanonicalizeNames(cleaned, participants)

	return s.store.AppendTranscript(cleaned)
}

func (s *Service) participantNames() []string {
	snap, ok := s.store.LoadParticipantSnapshot()
	if !ok {
		return nil
	}
	return snap.Participants
}
