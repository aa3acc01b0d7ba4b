package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/cactusdynamics/gmtstamp"
	"github.com/jessevdk/go-flags"
	"github.com/kballard/go-shellquote"
	"github.com/sirupsen/logrus"
)

type options struct {
	Config string `short:"c" long:"config" description:"YAML config file"`

	Text          string   `long:"text" description:"Text replacing the UNIX time in the logo (GMT>=6.5.0, at most 64 characters)"`
	Label         string   `long:"label" description:"Text shown after the logo"`
	Justification string   `short:"j" long:"justification" description:"Two character anchor code, e.g. BL or TR"`
	Offset        []string `short:"o" long:"offset" description:"Anchor offset; give once for both axes or twice for x and y"`
	Font          string   `long:"font" description:"Font of the logo and label, e.g. Helvetica,black"`
	TimeFormat    string   `long:"timefmt" description:"strftime format of the UNIX time"`

	Format  string        `long:"format" description:"Figure file format (png, pdf, ...)"`
	GMT     string        `long:"gmt" description:"Path to the gmt executable"`
	WorkDir string        `long:"workdir" description:"Directory the figure is written to"`
	Timeout time.Duration `long:"timeout" description:"Timeout of a single GMT call"`
	Show    bool          `long:"show" description:"Open the figure once it is written"`

	DryRun        bool   `short:"n" long:"dry-run" description:"Print the GMT calls instead of running them"`
	EngineVersion string `long:"engine-version" default:"6.5.0" description:"GMT version assumed by --dry-run"`

	Verbose []bool `short:"v" long:"verbose" description:"More logging, repeat for debug output"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdout))
}

func run(ctx context.Context, args []string, stdout io.Writer) int {
	var opts options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.ParseArgs(args); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			return 0
		}
		return 1
	}

	config, err := loadConfig(opts, parser)
	if err != nil {
		logrus.WithError(err).Error("invalid configuration")
		return 1
	}

	configureLogging(config.LogLevel, len(opts.Verbose))

	logrus.WithField("preview", gmtstamp.PreviewTimeFormat(config.Timestamp.TimeFormat, time.Now())).Debug("time stamp format")

	if opts.DryRun {
		err = dryRun(ctx, config, opts.EngineVersion, stdout)
	} else {
		err = plot(ctx, config)
	}

	if err != nil {
		logrus.WithError(err).Error("failed to plot the timestamp")
		return 1
	}

	return 0
}

func loadConfig(opts options, parser *flags.Parser) (gmtstamp.Config, error) {
	config := gmtstamp.DefaultConfig()
	if opts.Config != "" {
		var err error
		config, err = gmtstamp.LoadConfig(opts.Config)
		if err != nil {
			return gmtstamp.Config{}, err
		}
	}

	isSet := func(name string) bool {
		option := parser.FindOptionByLongName(name)
		return option != nil && option.IsSet()
	}

	req := &config.Timestamp
	if isSet("text") {
		req.Text = gmtstamp.Ptr(opts.Text)
	}
	if isSet("label") {
		req.Label = opts.Label
	}
	if opts.Justification != "" {
		req.Justification = opts.Justification
	}
	switch len(opts.Offset) {
	case 0:
	case 1:
		req.Offset = gmtstamp.SingleOffset(opts.Offset[0])
	case 2:
		req.Offset = gmtstamp.PairOffset(opts.Offset[0], opts.Offset[1])
	default:
		return gmtstamp.Config{}, fmt.Errorf("--offset given %d times, at most 2 are allowed", len(opts.Offset))
	}
	if opts.Font != "" {
		req.Font = opts.Font
	}
	if opts.TimeFormat != "" {
		req.TimeFormat = opts.TimeFormat
	}

	if opts.Format != "" {
		config.Figure.Format = opts.Format
	}
	if opts.GMT != "" {
		config.GMT.Binary = opts.GMT
	}
	if opts.WorkDir != "" {
		config.GMT.WorkDir = opts.WorkDir
	}
	if opts.Timeout > 0 {
		config.GMT.Timeout = opts.Timeout
	}
	if opts.Show {
		config.Figure.Show = true
	}

	return config, nil
}

func configureLogging(level string, verbosity int) {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logrus.SetOutput(os.Stderr)

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.WithField("level", level).Warn("unknown log level, using info")
		parsed = logrus.InfoLevel
	}

	for i := 0; i < verbosity && parsed < logrus.TraceLevel; i++ {
		parsed++
	}

	logrus.SetLevel(parsed)
}

func plot(ctx context.Context, config gmtstamp.Config) error {
	var figure *gmtstamp.Figure

	err := gmtstamp.WithGMTSession(ctx, config.SessionOptions(), func(session *gmtstamp.GMTSession) error {
		figure = gmtstamp.NewFigure(session, config.Figure.Format)
		return figure.Timestamp(ctx, config.Timestamp)
	})
	if err != nil {
		return err
	}

	path := figure.Path(config.GMT.WorkDir)
	logrus.WithField("path", path).Info("figure written")

	if config.Figure.Show {
		return figure.Show(config.GMT.WorkDir)
	}
	return nil
}

func dryRun(ctx context.Context, config gmtstamp.Config, engineVersion string, stdout io.Writer) error {
	version, err := gmtstamp.ParseEngineVersion(engineVersion)
	if err != nil {
		return err
	}

	session := gmtstamp.NewRecordingSession(version, 16)
	figure := gmtstamp.NewFigure(session, config.Figure.Format)
	if err := figure.Timestamp(ctx, config.Timestamp); err != nil {
		return err
	}

	for _, call := range session.Calls() {
		line := shellquote.Join(append([]string{config.GMT.Binary, call.Module}, call.Args...)...)
		fmt.Fprintln(stdout, strings.TrimSpace(line))
	}

	return nil
}
