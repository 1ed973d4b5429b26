// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package confirm gates destructive operations behind an interactive
// confirmation. A declined confirmation is a cancellation, never an error
// shown to the user.
package confirm

import (
	"context"
	"errors"
	"sync"

	"github.com/AliceG32/project-frontend-movies/internal/platform/ctxutil"
)

// ErrDeclined is returned by gated operations when the user says no.
var ErrDeclined = errors.New("confirm: declined by user")

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(context context.Context, prompt string) bool
}

// Func adapts a plain function to [Confirmer].
type Func func(context context.Context, prompt string) bool

// Confirm implements [Confirmer].
func (fn Func) Confirm(context context.Context, prompt string) bool {
	return fn(context, prompt)
}

// Static answers every prompt the same way.
type Static bool

// Confirm implements [Confirmer].
func (static Static) Confirm(context.Context, string) bool {
	return bool(static)
}

// FromContext answers with the value recorded by [ctxutil.WithConfirmation].
// A request that carries no answer is treated as declined.
type FromContext struct{}

// Confirm implements [Confirmer].
func (FromContext) Confirm(context context.Context, _ string) bool {
	accepted, ok := ctxutil.GetConfirmation(context)
	return ok && accepted
}

// Recorder answers with a fixed value and remembers every prompt it was shown.
type Recorder struct {
	Answer bool

	mu      sync.Mutex
	prompts []string
}

// Confirm implements [Confirmer].
func (recorder *Recorder) Confirm(_ context.Context, prompt string) bool {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	recorder.prompts = append(recorder.prompts, prompt)
	return recorder.Answer
}

// Prompts returns the prompts shown so far.
func (recorder *Recorder) Prompts() []string {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	return append([]string(nil), recorder.prompts...)
}
