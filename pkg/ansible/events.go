package ansible

import (
	"encoding/json"
	"time"
)

// Event is the common header of every JSONL callback event emitted by
// the ansible.posix.jsonl stdout callback.
type Event struct {
	Event     string    `json:"_event"`
	Timestamp time.Time `json:"_timestamp"`
}

type Task struct {
	Duration struct {
		Start time.Time `json:"start"`
		End   time.Time `json:"end"`
	} `json:"duration"`
	ID   string `json:"id"`
	Name string `json:"name"`
	Path string `json:"path"`
}

type Play struct {
	Duration struct {
		Start time.Time `json:"start"`
	} `json:"duration"`
	ID   string `json:"id"`
	Name string `json:"name"`
}

type PlaybookOnPlayStartEvent struct {
	Event
	Play Play `json:"play"`
}

// RunnerEvent covers the v2_runner_on_* event family. Host result
// payloads stay raw: the transcript core sanitizes whatever shape a
// module produced, so decoding them into fixed structs here would only
// lose data.
type RunnerEvent struct {
	Event
	Hosts map[string]json.RawMessage `json:"hosts"`
	Task  Task                       `json:"task"`
}

type PlaybookOnStatsEvent struct {
	Event
	Stats map[string]struct {
		Ok          int `json:"ok"`
		Changed     int `json:"changed"`
		Failures    int `json:"failures"`
		Unreachable int `json:"unreachable"`
		Skipped     int `json:"skipped"`
		Rescued     int `json:"rescued"`
		Ignored     int `json:"ignored"`
	} `json:"stats"`
}
