package transcript

// TaskInfo is the narrow read-only surface the classifier needs from a
// task. The host runtime adapter implements it; no concrete runtime
// types leak into this package.
type TaskInfo interface {
	// Name returns the task's display name.
	Name() string
	// Role returns the enclosing role name, or "" when the task runs
	// outside a role.
	Role() string
	// Action returns the task's action (module) identifier.
	Action() string
	// ID returns the task's stable unique identifier, or "" when the
	// runtime did not supply one.
	ID() string
}

// Result bundles one host-bound task outcome.
type Result struct {
	Host string
	Task TaskInfo
	Data map[string]interface{}
}

// Classifier inspects task results and decides which transcript events
// they produce. All hooks are safe to call in any order; events flow
// into the emitter in classification order.
type Classifier struct {
	emitter *Emitter

	// ShowUnchangedOk controls whether unchanged successful tasks emit
	// an `ok` event. Off by default: the transcript focuses on debug
	// output, changes and failures.
	ShowUnchangedOk bool
}

func NewClassifier(emitter *Emitter, showUnchangedOk bool) *Classifier {
	return &Classifier{emitter: emitter, ShowUnchangedOk: showUnchangedOk}
}

func (c *Classifier) OnPlaybookStart() {
	c.emitter.Open()
}

// OnTaskStart is intentionally a no-op: task start carries no concrete
// host, and the transcript only reports host-bound results.
func (c *Classifier) OnTaskStart(task TaskInfo) {
}

// OnOk handles a whole-task success. Per-item sub-results are skipped
// here; OnItemOk reports them, which prevents looped tasks from
// double-emitting their parent event.
func (c *Classifier) OnOk(result Result) {
	if isItemResult(result.Data) {
		return
	}

	c.handleOk(result)
}

// OnItemOk handles a per-item success within a looped task.
func (c *Classifier) OnItemOk(result Result) {
	c.handleOk(result)
}

func (c *Classifier) OnFailed(result Result) {
	c.emitResultEvent("failed", result, StyleError)
}

func (c *Classifier) OnUnreachable(result Result) {
	c.emitResultEvent("unreachable", result, StyleUnreachable)
}

// OnStats closes the document with the per-host recap.
func (c *Classifier) OnStats(stats Stats) {
	c.emitter.CloseWithRecap(stats)
}

func (c *Classifier) handleOk(result Result) {
	task := result.Task
	data := result.Data

	if isDebugAction(task.Action()) {
		if !c.emitter.ShouldEmit("debug", result.Host, taskIdentity(task)) {
			return
		}

		c.emitter.Emit(eventPayload("task", result).Set("action", task.Action()), StyleTask)

		msg, ok := data["msg"]
		if !ok {
			msg = data
		}
		c.emitter.Emit(eventPayload("debug", result).Set("msg", msg), StyleDebug)
		return
	}

	if isChanged(data) {
		if !c.emitter.ShouldEmit("changed", result.Host, taskIdentity(task)) {
			return
		}

		c.emitter.Emit(eventPayload("changed", result), StyleChanged)
		return
	}

	if c.ShowUnchangedOk {
		if !c.emitter.ShouldEmit("ok", result.Host, taskIdentity(task)) {
			return
		}

		c.emitter.Emit(eventPayload("ok", result).Set("changed", false), StyleOk)
	}
}

func (c *Classifier) emitResultEvent(kind string, result Result, style Style) {
	if !c.emitter.ShouldEmit(kind, result.Host, taskIdentity(result.Task)) {
		return
	}

	c.emitter.Emit(eventPayload(kind, result).Set("result", result.Data), style)
}

// eventPayload builds the common event/host/role/task prefix shared by
// every event shape.
func eventPayload(kind string, result Result) *Payload {
	payload := NewPayload()
	payload.Set("event", kind)
	payload.Set("host", result.Host)

	if role := result.Task.Role(); role != "" {
		payload.Set("role", role)
	} else {
		payload.Set("role", nil)
	}

	payload.Set("task", result.Task.Name())
	return payload
}

func taskIdentity(task TaskInfo) string {
	if id := task.ID(); id != "" {
		return id
	}

	return task.Name()
}

func isDebugAction(action string) bool {
	return action == "debug" || action == "ansible.builtin.debug"
}

// isChanged reports a state change from the top-level changed flag or,
// for looped tasks, from any nested result item carrying its own flag.
func isChanged(data map[string]interface{}) bool {
	if truthy(data["changed"]) {
		return true
	}

	results, ok := data["results"].([]interface{})
	if !ok {
		return false
	}

	for _, item := range results {
		if entry, ok := item.(map[string]interface{}); ok && truthy(entry["changed"]) {
			return true
		}
	}

	return false
}

func isItemResult(data map[string]interface{}) bool {
	return truthy(data["_ansible_item_result"])
}

func truthy(value interface{}) bool {
	b, ok := value.(bool)
	return ok && b
}
