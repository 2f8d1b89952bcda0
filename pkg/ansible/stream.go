package ansible

import (
	"bufio"
	"encoding/json"
	"io"
	"regexp"
	"sort"

	"github.com/roots/playlog/pkg/transcript"
)

var rolePathPattern = regexp.MustCompile(`roles/([^/]+)/`)

// Processor consumes a JSONL callback event stream and feeds each
// host-bound result into the transcript classifier. Malformed lines and
// unknown event types are skipped; a bad upstream line never aborts the
// transcript.
type Processor struct {
	classifier *transcript.Classifier
	statsSeen  bool
}

func NewProcessor(classifier *transcript.Classifier) *Processor {
	return &Processor{classifier: classifier}
}

// Process reads events until EOF. If the stream ends without a stats
// event (an interrupted run), the document is closed with an empty
// recap so the output is still valid JSON.
func (p *Processor) Process(reader io.Reader) error {
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		p.processLine(scanner.Bytes())
	}

	if !p.statsSeen {
		p.classifier.OnStats(transcript.Stats{})
	}

	if err := scanner.Err(); err != nil && err != io.EOF {
		return err
	}

	return nil
}

func (p *Processor) processLine(line []byte) {
	var event Event
	if err := json.Unmarshal(line, &event); err != nil {
		return
	}

	switch event.Event {
	case "v2_playbook_on_start", "v2_playbook_on_play_start":
		p.classifier.OnPlaybookStart()
	case "v2_playbook_on_task_start":
		// No host binding yet; the classifier ignores task starts.
	case "v2_runner_on_ok":
		p.dispatchRunner(line, p.classifier.OnOk)
	case "v2_runner_item_on_ok":
		p.dispatchRunner(line, p.classifier.OnItemOk)
	case "v2_runner_on_failed":
		p.dispatchRunner(line, p.classifier.OnFailed)
	case "v2_runner_on_unreachable":
		p.dispatchRunner(line, p.classifier.OnUnreachable)
	case "v2_playbook_on_stats":
		p.handleStats(line)
	}
}

func (p *Processor) dispatchRunner(line []byte, handle func(transcript.Result)) {
	var event RunnerEvent
	if err := json.Unmarshal(line, &event); err != nil {
		return
	}

	hosts := make([]string, 0, len(event.Hosts))
	for host := range event.Hosts {
		hosts = append(hosts, host)
	}
	sort.Strings(hosts)

	for _, host := range hosts {
		var data map[string]interface{}
		if err := json.Unmarshal(event.Hosts[host], &data); err != nil {
			data = map[string]interface{}{}
		}

		handle(transcript.Result{
			Host: host,
			Task: taskInfo{task: event.Task, action: textField(data, "action")},
			Data: data,
		})
	}
}

func (p *Processor) handleStats(line []byte) {
	var event PlaybookOnStatsEvent
	if err := json.Unmarshal(line, &event); err != nil {
		return
	}

	stats := make(transcript.Stats, len(event.Stats))
	for host, s := range event.Stats {
		stats[host] = transcript.Summary{
			Ok:          s.Ok,
			Changed:     s.Changed,
			Unreachable: s.Unreachable,
			Failed:      s.Failures,
			Skipped:     s.Skipped,
			Rescued:     s.Rescued,
			Ignored:     s.Ignored,
		}
	}

	p.statsSeen = true
	p.classifier.OnStats(stats)
}

// taskInfo adapts a JSONL task record to the classifier's read-only
// task surface. The role comes from the task's file path and the action
// from the result data, which is where the callback reports them.
type taskInfo struct {
	task   Task
	action string
}

func (t taskInfo) Name() string { return t.task.Name }

func (t taskInfo) Role() string {
	matches := rolePathPattern.FindStringSubmatch(t.task.Path)
	if len(matches) > 1 {
		return matches[1]
	}

	return ""
}

func (t taskInfo) Action() string { return t.action }

func (t taskInfo) ID() string { return t.task.ID }

func textField(data map[string]interface{}, key string) string {
	value, _ := data[key].(string)
	return value
}
