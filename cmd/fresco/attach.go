package main

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/frescoui/fresco/pkg/render"
	"github.com/frescoui/fresco/pkg/render/shm"
	rtcell "github.com/frescoui/fresco/pkg/render/tcell"
	"github.com/frescoui/fresco/pkg/terminal"
	"github.com/frescoui/fresco/pkg/ui/cellbuf"
)

// writerStaleAfter is how long the runtime may go without a heartbeat
// before attach assumes it is gone and exits.
const writerStaleAfter = 3 * time.Second

func cmdAttach(out *terminal.Writer, args []string) error {
	fs := flag.NewFlagSet("attach", flag.ContinueOnError)
	shmPath := fs.String("shm-path", "", "shared-memory segment path (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *shmPath == "" {
		return fmt.Errorf("attach requires -shm-path")
	}

	reader, err := shm.OpenReader(*shmPath)
	if err != nil {
		return fmt.Errorf("opening segment %s: %w", *shmPath, err)
	}
	defer reader.Close()

	local, err := rtcell.New()
	if err != nil {
		return fmt.Errorf("starting terminal: %w", err)
	}
	defer local.Cleanup()

	// Tell the runtime how big this terminal is before the first frame.
	size := local.Size()
	reader.SendEvent(render.ResizeEvent{Width: size.Width, Height: size.Height})

	for {
		reader.Beat()
		if !reader.WriterAlive(writerStaleAfter) {
			out.Info("runtime went away, detaching")
			return nil
		}

		switch ev := local.PollEvent(50 * time.Millisecond).(type) {
		case render.KeyEvent:
			if ev.IsCtrl('c') {
				return nil
			}
			reader.SendEvent(ev)
		case render.ResizeEvent:
			reader.SendEvent(ev)
		case render.Event:
			reader.SendEvent(ev)
		}

		frame, _, fresh := reader.Poll()
		if !fresh {
			continue
		}
		// The frame keeps the runtime's size; paint it into a canvas of
		// this terminal's size so Draw never sees a mismatch.
		canvas := cellbuf.New(local.Size())
		canvas.Merge(frame, 0, 0)
		if err := local.Draw(canvas); err != nil {
			var mismatch *render.SizeMismatchError
			if errors.As(err, &mismatch) {
				continue // resize raced the frame, next poll catches up
			}
			return fmt.Errorf("draw: %w", err)
		}
		if err := local.Flush(); err != nil {
			return fmt.Errorf("flush: %w", err)
		}
	}
}
