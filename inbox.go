package hatlights

// This file contains the hand off between the HTTP control surface, whose
// handlers run on their own goroutines, and the network task which is the
// only code allowed to apply their commands to the configuration

import (
	"context"
	"sync"
	"time"

	"github.com/go-stack/stack"
	"github.com/karlmutch/errors"
)

type commandRequest struct {
	cmds   []Command
	replyC chan string
}

// CommandInbox queues control requests until the network task polls for them
type CommandInbox struct {
	pending []*commandRequest
	sync.Mutex
}

func NewCommandInbox() (inbox *CommandInbox) {
	return &CommandInbox{
		pending: []*commandRequest{},
	}
}

// Submit queues the commands and waits for the acknowledgment produced once
// they have been applied.  When the wait times out the commands stay queued
// and will still be applied, only the acknowledgment is lost
func (inbox *CommandInbox) Submit(ctx context.Context, cmds []Command, timeout time.Duration) (resp string, err errors.Error) {
	req := &commandRequest{
		cmds:   cmds,
		replyC: make(chan string, 1),
	}

	inbox.Lock()
	inbox.pending = append(inbox.pending, req)
	inbox.Unlock()

	select {
	case resp = <-req.replyC:
		return resp, nil
	case <-time.After(timeout):
		return "", errors.New("command acknowledgment timed out").With("timeout", timeout).With("stack", stack.Trace().TrimRuntime())
	case <-ctx.Done():
		return "", errors.Wrap(ctx.Err()).With("stack", stack.Trace().TrimRuntime())
	}
}

// Len is the number of requests waiting to be applied
func (inbox *CommandInbox) Len() int {
	inbox.Lock()
	defer inbox.Unlock()
	return len(inbox.pending)
}

func (inbox *CommandInbox) drain() (reqs []*commandRequest) {
	inbox.Lock()
	defer inbox.Unlock()

	reqs = inbox.pending
	inbox.pending = []*commandRequest{}
	return reqs
}
