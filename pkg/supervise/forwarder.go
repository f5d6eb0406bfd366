package supervise

import (
	"context"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/mitchellh/go-linereader"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"glow.dev.maio.me/seanj/srvany/pkg/io/multiwritercloser"
)

// attachForwarder wires a fresh pipe pair to the command's stdout and
// stderr. Must be called before cmd.Start.
func attachForwarder(cmd *exec.Cmd, outputFile string) (*forwarder, error) {
	f := &forwarder{outputFile: outputFile}

	var err error
	if f.stdoutR, f.stdoutW, err = os.Pipe(); err != nil {
		return nil, errors.Wrap(err, "could not create stdout pipe")
	}

	if f.stderrR, f.stderrW, err = os.Pipe(); err != nil {
		f.abort()
		return nil, errors.Wrap(err, "could not create stderr pipe")
	}

	cmd.Stdout = f.stdoutW
	cmd.Stderr = f.stderrW

	return f, nil
}

// abort releases the pipes of a forwarder whose child never started.
func (f *forwarder) abort() {
	if f == nil {
		return
	}

	for _, file := range []*os.File{f.stdoutR, f.stdoutW, f.stderrR, f.stderrW} {
		if file != nil {
			_ = file.Close()
		}
	}
}

// Start begins forwarding once the child is running. The forwarder stops
// when both streams reach EOF or ctx is cancelled.
func (f *forwarder) Start(ctx context.Context, pid int) {
	if f == nil {
		return
	}

	// The child holds its own copies of the write ends.
	_ = f.stdoutW.Close()
	_ = f.stderrW.Close()

	f.stdoutCh = linereader.New(f.stdoutR)
	f.stderrCh = linereader.New(f.stderrR)

	fwdCtx, cancel := context.WithCancel(ctx)
	f.cancel = cancel

	go f.run(fwdCtx, pid)
}

func (f *forwarder) Stop() {
	if f == nil || f.cancel == nil {
		return
	}

	f.cancel()
}

func (f *forwarder) outlets(pid int) (io.WriteCloser, io.WriteCloser) {
	entry := log.WithField("pid", pid)
	stdoutLog := entry.WithField("stream", "stdout").WriterLevel(logrus.InfoLevel)
	stderrLog := entry.WithField("stream", "stderr").WriterLevel(logrus.WarnLevel)

	if f.outputFile == "" {
		return stdoutLog, stderrLog
	}

	file, err := os.OpenFile(f.outputFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		log.WithError(err).Errorf("Could not open child output file `%s`", f.outputFile)
		return stdoutLog, stderrLog
	}

	// The file is shared; only the stdout outlet owns and closes it.
	return multiwritercloser.New(stdoutLog, file), multiwritercloser.New(stderrLog, struct{ io.Writer }{file})
}

func (f *forwarder) run(ctx context.Context, pid int) {
	f.Lock()
	defer f.Unlock()

	multiOut, multiErr := f.outlets(pid)
	stdout, stderr := f.stdoutCh.Ch, f.stderrCh.Ch

	defer func() {
		_ = multiOut.Close()
		_ = multiErr.Close()
		_ = f.stdoutR.Close()
		_ = f.stderrR.Close()

		// Unblock the line readers so their goroutines can finish.
		for _, ch := range []<-chan string{stdout, stderr} {
			if ch != nil {
				go drain(ch)
			}
		}
	}()

	for stdout != nil || stderr != nil {
		select {
		case <-ctx.Done():
			log.WithField("pid", pid).Debugf("Child output forwarder exiting")
			return
		case line, ok := <-stdout:
			if !ok {
				stdout = nil
				continue
			}

			writeLine(multiOut, line)
		case line, ok := <-stderr:
			if !ok {
				stderr = nil
				continue
			}

			writeLine(multiErr, line)
		}
	}
}

func writeLine(w io.Writer, line string) {
	line = strings.TrimRight(line, "\r\n")
	if strings.TrimSpace(line) == "" {
		return
	}

	_, _ = w.Write([]byte(line + "\n"))
}

func drain(ch <-chan string) {
	for range ch {
	}
}
