package gmtstamp

import (
	"context"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const DefaultFigureFormat = "png"

// Figure is a GMT modern mode figure. It carries no plot state of its own;
// GMT keeps that inside the session.
type Figure struct {
	name    string
	format  string
	session Session

	logger logrus.FieldLogger
}

func NewFigure(session Session, format string) *Figure {
	if format == "" {
		format = DefaultFigureFormat
	}

	name := uuid.NewString()

	return &Figure{
		name:    name,
		format:  format,
		session: session,
		logger: logrus.WithFields(logrus.Fields{
			"tag":    "Figure",
			"figure": name,
		}),
	}
}

func (f *Figure) Name() string {
	return f.name
}

// Path of the file GMT writes the figure to once the session ends.
func (f *Figure) Path(dir string) string {
	return filepath.Join(dir, f.name+"."+f.format)
}

// Makes this figure the current one so the following module calls draw on it.
func (f *Figure) preprocess(ctx context.Context) error {
	return f.session.CallModule(ctx, "figure", []string{f.name, f.format})
}

// Timestamp plots the GMT timestamp logo on the figure. The request is
// validated before GMT is called, so a rejected request leaves the figure
// untouched.
func (f *Figure) Timestamp(ctx context.Context, req TimestampRequest) error {
	version, err := f.session.Version(ctx)
	if err != nil {
		return err
	}

	invocation, err := BuildTimestamp(req, version)
	if err != nil {
		f.logger.WithError(err).WithField("version", version).Warn("rejected timestamp request")
		return err
	}

	if err := f.preprocess(ctx); err != nil {
		return err
	}

	f.logger.WithField("invocation", invocation.String()).Info("plotting timestamp")
	return f.session.CallModule(ctx, invocation.Module, invocation.Args())
}

// Show opens a rendered figure file in the platform viewer.
func (f *Figure) Show(dir string) error {
	return openViewer(f.Path(dir))
}
