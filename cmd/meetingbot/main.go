// Copyright (c) 2023-2025 RapidaAI
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package main

import internal_cli "github.com/rapidaai/meetingbot/internal/cli"

func main() {
	internal_cli.Main()
}
