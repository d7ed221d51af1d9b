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

// Package v1 為 /v1 的 HTTP handler。所有計算都經由 SearchRuntime，受 slot 上限與請求時限約束。
package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/zintix-labs/rnglab"
	"github.com/zintix-labs/rnglab/errs"
	"github.com/zintix-labs/rnglab/server/httperr"
	"github.com/zintix-labs/rnglab/server/svrcfg"
)

type Handler struct {
	rt      *rnglab.SearchRuntime
	log     *slog.Logger
	timeout time.Duration
}

func New(sCfg *svrcfg.SvrCfg) (*Handler, error) {
	rt, err := sCfg.Lab.BuildRuntime(sCfg.Slots, sCfg.Workers)
	if err != nil {
		return nil, errs.Wrap(err, "build search runtime error")
	}
	return &Handler{rt: rt, log: sCfg.Log, timeout: sCfg.Timeout}, nil
}

// Runtime 回傳 handler 使用的 runtime，供組裝層在關閉時 Close。
func (h *Handler) Runtime() *rnglab.SearchRuntime {
	return h.rt
}

func (h *Handler) context(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), h.timeout)
}

// fail 寫回錯誤並記錄需要關注的部分。
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, msg string, err error) {
	httperr.Log(h.log, msg, err)
	httperr.Errs(w, r, err)
}

// writeJSON 先完整編碼再寫回，避免寫到一半才失敗。
func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	var b bytes.Buffer
	if err := json.NewEncoder(&b).Encode(v); err != nil {
		httperr.Errs(w, r, errs.Wrap(err, "encode response failed"))
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b.Bytes())
}
