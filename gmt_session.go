package gmtstamp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const defaultCallTimeout = 2 * time.Minute

type GMTSessionOptions struct {
	// Path or name of the gmt executable. Defaults to "gmt" looked up in PATH.
	Binary string

	// Directory the figures are written to. Defaults to the current directory.
	WorkDir string

	// Per call timeout. Defaults to 2 minutes.
	Timeout time.Duration
}

// GMTSession drives the gmt executable in modern mode. Every call is a
// separate process; they share one modern mode session through
// GMT_SESSION_NAME.
type GMTSession struct {
	binary  string
	workDir string
	timeout time.Duration
	name    string

	versionOnce sync.Once
	version     EngineVersion
	versionErr  error

	logger logrus.FieldLogger
}

func NewGMTSession(opts GMTSessionOptions) *GMTSession {
	binary := opts.Binary
	if strings.TrimSpace(binary) == "" {
		binary = "gmt"
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultCallTimeout
	}

	name := strings.ReplaceAll(uuid.NewString(), "-", "")

	return &GMTSession{
		binary:  binary,
		workDir: opts.WorkDir,
		timeout: timeout,
		name:    name,
		logger: logrus.WithFields(logrus.Fields{
			"tag":     "GMTSession",
			"session": name,
		}),
	}
}

// WithGMTSession begins a modern mode session, runs fn and always ends the
// session afterwards. The first error encountered is returned.
func WithGMTSession(ctx context.Context, opts GMTSessionOptions, fn func(*GMTSession) error) (err error) {
	s := NewGMTSession(opts)
	if err := s.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		endErr := s.End(ctx)
		if err == nil {
			err = endErr
		}
	}()

	return fn(s)
}

func (s *GMTSession) Begin(ctx context.Context) error {
	return s.CallModule(ctx, "begin", nil)
}

// End closes the session. GMT converts and writes out all figures here.
func (s *GMTSession) End(ctx context.Context) error {
	return s.CallModule(ctx, "end", nil)
}

func (s *GMTSession) Version(ctx context.Context) (EngineVersion, error) {
	s.versionOnce.Do(func() {
		result, err := s.run(ctx, "--version")
		if err != nil {
			s.versionErr = err
			return
		}

		s.version, s.versionErr = ParseEngineVersion(result.stdout)
		if s.versionErr == nil {
			s.logger.WithField("version", s.version).Debug("detected GMT version")
		}
	})

	return s.version, s.versionErr
}

func (s *GMTSession) CallModule(ctx context.Context, module string, args []string) error {
	logger := s.logger.WithFields(logrus.Fields{
		"module": module,
		"args":   args,
	})

	start := time.Now()
	_, err := s.run(ctx, append([]string{module}, args...)...)
	if err != nil {
		logger.WithError(err).Warn("module call failed")
		return err
	}

	logger.WithField("took", time.Since(start)).Debug("module call finished")
	return nil
}

type commandResult struct {
	exitCode int
	stdout   string
	stderr   string
}

func (s *GMTSession) run(ctx context.Context, args ...string) (commandResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, s.binary, args...)
	if strings.TrimSpace(s.workDir) != "" {
		cmd.Dir = s.workDir
	}
	cmd.Env = append(os.Environ(), "GMT_SESSION_NAME="+s.name)

	var outBuf bytes.Buffer
	var errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	command := "gmt " + strings.Join(args, " ")

	if err := cmd.Start(); err != nil {
		return commandResult{exitCode: -1}, newError(KindEngine, "failed to start "+s.binary, err)
	}

	waitErr := cmd.Wait()

	result := commandResult{
		stdout: outBuf.String(),
		stderr: errBuf.String(),
	}

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		result.exitCode = -1
		return result, newError(KindEngine, fmt.Sprintf("%s timed out after %s", command, s.timeout), ctx.Err())
	}

	if waitErr != nil {
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			result.exitCode = exitErr.ExitCode()
		} else {
			result.exitCode = 1
		}

		cause := waitErr
		if stderr := strings.TrimSpace(result.stderr); stderr != "" {
			cause = errors.New(stderr)
		}
		return result, newError(KindEngine, fmt.Sprintf("%s exited with code %d", command, result.exitCode), cause)
	}

	return result, nil
}

func (s *GMTSession) WorkDir() string {
	return s.workDir
}
