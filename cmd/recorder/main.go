// Copyright (c) 2023-2025 RapidaAI
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

// Command recorder is the deployment entry point for the `recorder`
// subcommand, the one a Worker re-execs its own binary with. Also answers to
// the other subcommands so it can stand in for the full multicall binary.
package main

import internal_cli "github.com/rapidaai/meetingbot/internal/cli"

func main() {
	internal_cli.Main()
}
