package gmtstamp

import (
	"os/exec"
	"runtime"

	"github.com/sirupsen/logrus"
)

// Overridden in tests so nothing is actually launched.
var startViewer = func(cmd *exec.Cmd) error {
	return cmd.Start()
}

func viewerCommand(path string) *exec.Cmd {
	var cmd string
	var args []string

	switch runtime.GOOS {
	case "windows":
		cmd = "cmd"
		args = []string{"/c", "start"}
	case "darwin":
		cmd = "open"
	default: // "linux", "freebsd", "openbsd", "netbsd"
		cmd = "xdg-open"
	}
	args = append(args, path)
	return exec.Command(cmd, args...)
}

func openViewer(path string) error {
	err := startViewer(viewerCommand(path))
	if err != nil {
		logrus.WithField("path", path).WithError(err).Warn("failed to open the figure automatically")
	}
	return err
}
