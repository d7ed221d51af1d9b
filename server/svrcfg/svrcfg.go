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

package svrcfg

import (
	"log/slog"
	"time"

	"github.com/zintix-labs/rnglab"
	"github.com/zintix-labs/rnglab/errs"
	"github.com/zintix-labs/rnglab/server/logger"
)

const (
	DefaultAddr    = ":5808"
	DefaultTimeout = 30 * time.Second
	maxSlots       = 16
)

type SvrCfg struct {
	Log  *slog.Logger
	Addr string
	// Slots 同時執行的搜尋上限（1..16）
	Slots int
	// Workers 每次搜尋的併發數，<= 0 使用 CPU 數
	Workers int
	// Timeout 單一請求的搜尋時限
	Timeout time.Duration
	Lab     *rnglab.Lab
}

// Valid 補上預設值並檢查必要欄位。
func (sc *SvrCfg) Valid() error {
	if sc.Log != nil {
		if ah, ok := sc.Log.Handler().(*logger.AsyncHandler); ok && !ah.Ready() {
			return errs.NewFatal("nil default log handler: async handler is nil")
		}
	} else {
		sc.Log = logger.New(logger.ModeSilence)
	}
	if sc.Addr == "" {
		sc.Addr = DefaultAddr
	}
	sc.Slots = min(maxSlots, max(1, sc.Slots))
	if sc.Timeout <= 0 {
		sc.Timeout = DefaultTimeout
	}
	if sc.Lab == nil {
		return errs.NewFatal("lab is required")
	}
	return nil
}
