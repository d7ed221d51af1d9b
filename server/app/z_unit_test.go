// Copyright 2025 Zintix Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package app

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type failing struct {
	stopped atomic.Bool
}

func (f *failing) Run() error { return errors.New("boom") }

func (f *failing) Shutdown(context.Context) error {
	f.stopped.Store(true)
	return nil
}

func TestRunStopsAllOnComponentError(t *testing.T) {
	var closed atomic.Int32
	f := &failing{}
	a := NewWith(OnShutdown(func() { closed.Add(1) }), f).WithShutdownTimeout(time.Second)
	if err := a.RunContext(context.Background()); err == nil || err.Error() != "boom" {
		t.Fatalf("expected component error, got %v", err)
	}
	if closed.Load() != 1 || !f.stopped.Load() {
		t.Fatalf("all components must be shut down")
	}
}

func TestRunContextCancel(t *testing.T) {
	var closed atomic.Int32
	c := OnShutdown(func() { closed.Add(1) })
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := NewWith(c).RunContext(ctx); err != nil {
		t.Fatalf("cancel must stop cleanly, got %v", err)
	}
	_ = c.Shutdown(context.Background())
	if closed.Load() != 1 {
		t.Fatalf("close must run exactly once, got %d", closed.Load())
	}
}
