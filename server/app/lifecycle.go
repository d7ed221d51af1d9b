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

// Package app 管理長期運行元件的啟動與優雅關閉。
package app

import "context"

// Component 為可啟動 / 可關閉的長生命週期元件。
//   - Run 為阻塞呼叫，直到元件停止。
//   - Shutdown 要求優雅關閉，須尊重 ctx deadline。
type Component interface {
	Run() error
	Shutdown(ctx context.Context) error
}

// closer 把只需要關閉的資源（例如搜尋 runtime）包成 Component：Run 阻塞到 Shutdown 為止。
type closer struct {
	stop  chan struct{}
	close func()
}

// OnShutdown 回傳一個在關閉階段呼叫 fn 的 Component。
func OnShutdown(fn func()) Component {
	return &closer{stop: make(chan struct{}), close: fn}
}

func (c *closer) Run() error {
	<-c.stop
	return nil
}

func (c *closer) Shutdown(context.Context) error {
	select {
	case <-c.stop:
	default:
		close(c.stop)
		if c.close != nil {
			c.close()
		}
	}
	return nil
}
