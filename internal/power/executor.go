package power

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Config holds the commands run for each action.
type Config struct {
	// PowerOff is the argv run for PowerOff.
	// Default: ["halt"]
	PowerOff []string

	// Restart is the argv run for Restart.
	// Default: ["reboot"]
	Restart []string

	// Timeout bounds how long a command may run before it is killed.
	// Default: 30 seconds
	Timeout time.Duration
}

// DefaultConfig returns the stock halt/reboot commands.
func DefaultConfig() Config {
	return Config{
		PowerOff: []string{"halt"},
		Restart:  []string{"reboot"},
		Timeout:  30 * time.Second,
	}
}

// Command returns the argv configured for action.
func (c Config) Command(action Action) []string {
	switch action {
	case PowerOff:
		return c.PowerOff
	case Restart:
		return c.Restart
	default:
		return nil
	}
}

// CommandExecutor runs power actions via os/exec.
type CommandExecutor struct {
	config Config
	logger *zap.Logger
}

// NewCommandExecutor creates an executor for the given commands.
func NewCommandExecutor(config Config, logger *zap.Logger) *CommandExecutor {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultConfig().Timeout
	}
	return &CommandExecutor{config: config, logger: logger}
}

// Execute runs the command for action and waits for it to exit.
func (e *CommandExecutor) Execute(ctx context.Context, action Action) error {
	argv := e.config.Command(action)
	if len(argv) == 0 {
		return &ActionError{Action: action, Err: errors.New("no command configured")}
	}

	e.logger.Info("Running power command",
		zap.Stringer("action", action),
		zap.Strings("command", argv),
	)

	timeoutCtx, cancel := context.WithTimeout(ctx, e.config.Timeout)
	defer cancel()

	var out bytes.Buffer
	cmd := exec.CommandContext(timeoutCtx, argv[0], argv[1:]...)
	cmd.Stdout = &out
	cmd.Stderr = &out

	start := time.Now()
	err := cmd.Run()

	e.logger.Debug("Power command finished",
		zap.Stringer("action", action),
		zap.Duration("duration", time.Since(start)),
		zap.String("output", out.String()),
		zap.Error(err),
	)

	if timeoutCtx.Err() == context.DeadlineExceeded {
		err = fmt.Errorf("timed out after %s", e.config.Timeout)
	}
	if err != nil {
		return &ActionError{
			Action:  action,
			Command: argv,
			Output:  out.String(),
			Err:     err,
		}
	}
	return nil
}

// DryRun records actions instead of running them.
type DryRun struct {
	mu      sync.Mutex
	actions []Action
	// Err, when set, is returned from every Execute
	Err error
}

// Execute implements Executor.
func (d *DryRun) Execute(ctx context.Context, action Action) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.actions = append(d.actions, action)
	if d.Err != nil {
		return &ActionError{Action: action, Err: d.Err}
	}
	return nil
}

// Actions returns the actions executed so far.
func (d *DryRun) Actions() []Action {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Action(nil), d.actions...)
}
