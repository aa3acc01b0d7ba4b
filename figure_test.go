package gmtstamp

import (
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFigureTimestamp(t *testing.T) {
	t.Run("activates the figure then plots", func(t *testing.T) {
		ctx := context.Background()
		session := NewRecordingSession(gmt650, 8)
		figure := NewFigure(session, "")

		err := figure.Timestamp(ctx, TimestampRequest{Label: "Powered by PyGMT"})
		if err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}

		want := []Call{
			{Module: "figure", Args: []string{figure.Name(), "png"}},
			{Module: "plot", Args: []string{
				"--FONT_LOGO=Helvetica,black",
				"--FORMAT_TIME_STAMP=%Y %b %d %H:%M:%S",
				"-T",
				"-UPowered by PyGMT+jBL+o-54p/-54p",
			}},
		}
		if diff := cmp.Diff(want, session.Calls()); diff != "" {
			t.Fatalf("unexpected calls (-want +got):\n%s", diff)
		}
	})

	t.Run("rejected request makes no calls", func(t *testing.T) {
		ctx := context.Background()
		session := NewRecordingSession(gmt640, 8)
		figure := NewFigure(session, "pdf")

		err := figure.Timestamp(ctx, TimestampRequest{Text: Ptr("hello")})
		if !IsUnsupportedFeature(err) {
			t.Fatalf("expected unsupported feature error, got %v", err)
		}
		if calls := session.Calls(); len(calls) != 0 {
			t.Fatalf("expected no calls, got %v", calls)
		}
	})

	t.Run("engine failure is forwarded", func(t *testing.T) {
		ctx := context.Background()
		engineErr := errors.New("plot [ERROR]: Option -U: Unrecognized justification")
		session := NewRecordingSession(gmt650, 8)
		session.Fail = func(call Call) error {
			if call.Module == "plot" {
				return engineErr
			}
			return nil
		}
		figure := NewFigure(session, "")

		err := figure.Timestamp(ctx, TimestampRequest{Justification: "ZZ"})
		if !IsEngine(err) {
			t.Fatalf("expected engine error, got %v", err)
		}
		if !errors.Is(err, engineErr) {
			t.Fatalf("expected the engine error to be wrapped, got %v", err)
		}
		if got := len(session.CallsTo("plot")); got != 1 {
			t.Fatalf("expected 1 plot call, got %d", got)
		}
	})

	t.Run("unique names", func(t *testing.T) {
		session := NewRecordingSession(gmt650, 1)
		a := NewFigure(session, "")
		b := NewFigure(session, "")
		if a.Name() == b.Name() {
			t.Fatalf("figures share the name %q", a.Name())
		}
	})

	t.Run("path", func(t *testing.T) {
		figure := NewFigure(NewRecordingSession(gmt650, 1), "pdf")
		want := filepath.Join("out", figure.Name()+".pdf")
		if got := figure.Path("out"); got != want {
			t.Fatalf("Path = %q, want %q", got, want)
		}
	})
}

func TestFigureShow(t *testing.T) {
	original := startViewer
	defer func() { startViewer = original }()

	var started *exec.Cmd
	startViewer = func(cmd *exec.Cmd) error {
		started = cmd
		return nil
	}

	figure := NewFigure(NewRecordingSession(gmt650, 1), "png")
	if err := figure.Show("out"); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	if started == nil {
		t.Fatalf("viewer was not started")
	}
	if got := started.Args[len(started.Args)-1]; got != figure.Path("out") {
		t.Fatalf("viewer opened %q, want %q", got, figure.Path("out"))
	}

	viewerErr := errors.New("no viewer")
	startViewer = func(cmd *exec.Cmd) error { return viewerErr }
	if err := figure.Show("out"); !errors.Is(err, viewerErr) {
		t.Fatalf("expected viewer error, got %v", err)
	}
}
