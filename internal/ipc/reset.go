// Copyright (c) 2023-2025 RapidaAI
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package internal_ipc

// ResetForNewJob clears every per-job document so a fresh Worker starts
// from a clean slate: stale IPC artifacts removed, speaker_timeline and
// the transcript cache reset.
func (s *Store) ResetForNewJob() error {
	for _, fn := range []func() error{
		s.TruncateTimeline,
		s.TruncateTranscript,
		s.TruncateActivityLog,
		s.ClearParticipantSnapshot,
		s.ClearRecorderStatus,
		s.ClearStopSignal,
	} {
		if err := fn(); err != nil {
			return err
		}
	}
	return nil
}

// ResetAll clears every IPC document, including Job/Command/WorkerStatus.
// Used by /force-reset.
func (s *Store) ResetAll() error {
	if err := s.ResetForNewJob(); err != nil {
		return err
	}
	for _, fn := range []func() error{
		s.DeleteJob,
		s.ClearCommand,
		s.ResetWorkerStatus,
	} {
		if err := fn(); err != nil {
			return err
		}
	}
	return nil
}
