package services

import (
	"bufio"
	"encoding/json"
	"errors"
	"io"
	"os/exec"
	"strings"
	"sync"
)

// AnalysisService is one client's handle on the external frame-analysis
// process. Frames go in verbatim (base64 JPEG payloads, no envelope); each
// result comes out as one JSON record, either the detector's analysis line
// or an {"error": ...} wrapper. Close releases the process exactly once.
type AnalysisService interface {
	SubmitFrame(frame []byte) error
	Results() <-chan json.RawMessage
	Close() error
}

// DetectorProcess shells out to the detection script and speaks its
// line-oriented stdin/stdout protocol. One process per connection.
type DetectorProcess struct {
	cmd   *exec.Cmd
	stdin io.WriteCloser

	writeMu sync.Mutex
	results chan json.RawMessage

	closeOnce sync.Once
}

// StartDetector spawns the analysis process described by command
// (program + args) and begins relaying its output.
func StartDetector(command []string) (*DetectorProcess, error) {
	if len(command) == 0 {
		return nil, errors.New("empty detector command")
	}

	cmd := exec.Command(command[0], command[1:]...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, err
	}

	d := &DetectorProcess{
		cmd:     cmd,
		stdin:   stdin,
		results: make(chan json.RawMessage, 16),
	}

	var readers sync.WaitGroup
	readers.Add(2)
	go func() {
		defer readers.Done()
		d.relayStdout(stdout)
	}()
	go func() {
		defer readers.Done()
		d.relayStderr(stderr)
	}()
	go func() {
		readers.Wait()
		close(d.results)
	}()

	return d, nil
}

// SubmitFrame writes one frame payload as a line on the detector's stdin.
func (d *DetectorProcess) SubmitFrame(frame []byte) error {
	d.writeMu.Lock()
	defer d.writeMu.Unlock()
	if _, err := d.stdin.Write(frame); err != nil {
		return err
	}
	_, err := d.stdin.Write([]byte("\n"))
	return err
}

// Results yields one record per detector output line. The channel closes
// after Close (or after the process exits on its own).
func (d *DetectorProcess) Results() <-chan json.RawMessage {
	return d.results
}

// Close terminates the detector process. Safe to call more than once; the
// exit status of a process we killed ourselves is not an error.
func (d *DetectorProcess) Close() error {
	d.closeOnce.Do(func() {
		_ = d.stdin.Close()
		if d.cmd.Process != nil {
			_ = d.cmd.Process.Kill()
		}
		_ = d.cmd.Wait()
	})
	return nil
}

// relayStdout forwards detector result lines. A line that is not valid JSON
// still reaches the client, wrapped as an error record, so one malformed
// line never stalls or closes the stream.
func (d *DetectorProcess) relayStdout(stdout io.Reader) {
	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if json.Valid([]byte(line)) {
			d.results <- json.RawMessage(line)
		} else {
			d.results <- ErrorRecord(line)
		}
	}
}

// relayStderr maps detector diagnostics to error records instead of
// dropping the connection.
func (d *DetectorProcess) relayStderr(stderr io.Reader) {
	scanner := bufio.NewScanner(stderr)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		d.results <- ErrorRecord(line)
	}
}

// ErrorRecord wraps a message as the {"error": ...} record the detector
// protocol uses for failures.
func ErrorRecord(msg string) json.RawMessage {
	rec, err := json.Marshal(map[string]string{"error": msg})
	if err != nil {
		return json.RawMessage(`{"error":"analysis failed"}`)
	}
	return json.RawMessage(rec)
}
