package cmd

import "github.com/dionysius/docweave/internal/playbook"

// loadPlaybookForLogging loads the playbook early enough to size the log
// handler's verbosity before any subcommand runs. A load failure here is
// not fatal: the subcommand reloads and reports it properly.
func loadPlaybookForLogging(path string) (playbook.Playbook, error) {
	return playbook.Load(path)
}
