// Copyright (c) 2023-2025 RapidaAI
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

// Command worker is conventionally invoked as `meetingbot worker` to drive
// a single staged Job without the Dispatcher's poll loop. It answers to
// every subcommand, since it must also serve as `recorder`/`report` when
// re-exec'd by the Worker it runs.
package main

import internal_cli "github.com/rapidaai/meetingbot/internal/cli"

func main() {
	internal_cli.Main()
}
