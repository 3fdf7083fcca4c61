// Copyright (c) 2023-2025 RapidaAI
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

// Command dispatcher is conventionally deployed as `meetingbot dispatcher`,
// the long-lived poll loop. It answers to every subcommand, not
// just its own name, because the Worker it runs re-execs os.Args[0] as
// `recorder` and `report` for its children.
package main

import internal_cli "github.com/rapidaai/meetingbot/internal/cli"

func main() {
	internal_cli.Main()
}
