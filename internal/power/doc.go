// Package power runs the privileged commands behind the power-off and
// restart buttons.
//
// Each Action maps to an argv (by default "halt" and "reboot"). The
// CommandExecutor runs it through os/exec with a timeout and captures its
// output; DryRun only records what would have run, which is what the
// simulator and --dry-run use.
//
// Failures are returned as *ActionError so callers can show the command and
// its output on the panel:
//
//	if err := exec.Execute(ctx, power.PowerOff); err != nil {
//	    var actionErr *power.ActionError
//	    if errors.As(err, &actionErr) {
//	        // actionErr.Output holds combined stdout/stderr
//	    }
//	}
package power
