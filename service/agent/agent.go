// Package agent models the role-scoped text generators driving the pipeline
// as plain data records: a persona descriptor plus a task template handed to
// one shared generation capability. No polymorphism is involved since every
// stage shares the identical call shape.
package agent

import "strings"

// Agent describes a role-scoped persona for the generation capability.
type Agent struct {
	Name      string `json:"name" yaml:"name"`
	Role      string `json:"role" yaml:"role"`
	Goal      string `json:"goal" yaml:"goal"`
	Backstory string `json:"backstory" yaml:"backstory"`
}

// TaskSpec is the instruction template an agent executes. Description may
// contain {field} placeholders resolved via Interpolate.
type TaskSpec struct {
	Description    string `json:"description" yaml:"description"`
	ExpectedOutput string `json:"expectedOutput" yaml:"expectedOutput"`
}

// System renders the persona as a system-level instruction.
func (a *Agent) System() string {
	var b strings.Builder
	b.WriteString("You are " + a.Role + ".\n")
	if a.Goal != "" {
		b.WriteString("Your goal: " + a.Goal + "\n")
	}
	if a.Backstory != "" {
		b.WriteString(a.Backstory + "\n")
	}
	return b.String()
}

// Interpolate substitutes {name} placeholders in template with the supplied
// field values. Placeholders without a matching field are left intact.
func Interpolate(template string, fields map[string]string) string {
	if len(fields) == 0 {
		return template
	}
	oldNew := make([]string, 0, 2*len(fields))
	for name, value := range fields {
		oldNew = append(oldNew, "{"+name+"}", value)
	}
	return strings.NewReplacer(oldNew...).Replace(template)
}
