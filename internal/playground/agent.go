package playground

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

// MaxQueryLen is the longest query accepted, in runes.
const MaxQueryLen = 500

// SampleNotice is appended to every answer.
const SampleNotice = "Sample data: this playground replies from a fixed script, not a live model."

var (
	ErrEmptyQuery = errors.New("query is empty")
	ErrLongQuery  = errors.New("query is too long")
)

// StepKind tells the client how to show a step.
type StepKind string

const (
	StepStatus StepKind = "status"
	StepReply  StepKind = "reply"
	StepNotice StepKind = "notice"
)

// Step is one message of a scripted answer. Delay is waited before the step
// is emitted.
type Step struct {
	Kind  StepKind      `json:"kind"`
	Text  string        `json:"text"`
	Topic string        `json:"topic,omitempty"`
	Delay time.Duration `json:"-"`
}

// Script is the staged answer for a topic.
func Script(t Topic) []Step {
	return []Step{
		{Kind: StepStatus, Text: "Parsing query", Delay: 300 * time.Millisecond},
		{Kind: StepStatus, Text: "Retrieving context", Delay: 600 * time.Millisecond},
		{Kind: StepStatus, Text: "Ranking " + t.Name + " notes", Delay: 450 * time.Millisecond},
		{Kind: StepStatus, Text: "Composing answer", Delay: 500 * time.Millisecond},
		{Kind: StepReply, Text: t.Reply, Topic: t.Name, Delay: 250 * time.Millisecond},
		{Kind: StepNotice, Text: SampleNotice},
	}
}

// Sleeper waits d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// Sleep is the real-time Sleeper.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Agent plays scripts.
type Agent struct {
	Sleep Sleeper
}

func NewAgent() *Agent {
	return &Agent{Sleep: Sleep}
}

// Validate trims query and checks its length.
func Validate(query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", ErrEmptyQuery
	}
	if utf8.RuneCountInString(query) > MaxQueryLen {
		return "", ErrLongQuery
	}
	return query, nil
}

// Run classifies query and emits its script step by step. It stops at the
// first emit error or when ctx is done, and returns the matched topic.
func (a *Agent) Run(ctx context.Context, query string, emit func(Step) error) (Topic, error) {
	query, err := Validate(query)
	if err != nil {
		return Topic{}, err
	}

	sleep := a.Sleep
	if sleep == nil {
		sleep = Sleep
	}
	topic := Classify(query)
	for _, step := range Script(topic) {
		if err := sleep(ctx, step.Delay); err != nil {
			return topic, err
		}
		if err := emit(step); err != nil {
			return topic, err
		}
	}
	return topic, nil
}
