package power

import (
	"os/exec"
)

// CommandCheck is the result of resolving one configured command.
type CommandCheck struct {
	Action    Action
	Command   []string
	Available bool
	// Path is the resolved binary, when found
	Path    string
	Message string
}

// CheckCommands resolves every configured command against PATH.
func CheckCommands(config Config) []CommandCheck {
	var checks []CommandCheck
	for _, action := range []Action{PowerOff, Restart} {
		argv := config.Command(action)
		check := CommandCheck{Action: action, Command: argv}
		if len(argv) == 0 {
			check.Message = "no command configured"
			checks = append(checks, check)
			continue
		}
		path, err := exec.LookPath(argv[0])
		if err != nil {
			check.Message = argv[0] + " not found in PATH"
		} else {
			check.Available = true
			check.Path = path
			check.Message = "found at " + path
		}
		checks = append(checks, check)
	}
	return checks
}
