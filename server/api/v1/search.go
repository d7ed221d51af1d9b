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

package v1

import (
	"net/http"
	"time"

	"github.com/zintix-labs/rnglab/dto"
	"github.com/zintix-labs/rnglab/errs"
	"github.com/zintix-labs/rnglab/search"
)

// Search 對單一情境或單一目標搜尋（GET/POST /v1/search）。
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	h.search(w, r, false)
}

// SearchTarget 只接受 target（GET/POST /v1/search/target）。
func (h *Handler) SearchTarget(w http.ResponseWriter, r *http.Request) {
	h.search(w, r, true)
}

func (h *Handler) search(w http.ResponseWriter, r *http.Request, targetOnly bool) {
	req, err := dto.DecodeSearchRequest(r)
	if err != nil {
		h.fail(w, r, "v1.search", err)
		return
	}
	if targetOnly && req.Target == "" {
		h.fail(w, r, "v1.search", errs.NewWarn("target is required"))
		return
	}
	obj, opts, err := req.Parse()
	if err != nil {
		h.fail(w, r, "v1.search", err)
		return
	}

	ctx, cancel := h.context(r)
	defer cancel()
	start := time.Now()
	var rs []search.Result
	if req.Target != "" {
		rs, err = h.rt.SearchTarget(ctx, req.Target, obj, opts)
	} else {
		rs, err = h.rt.Search(ctx, req.Scenario, obj, opts)
	}
	if err != nil {
		h.fail(w, r, "v1.search", err)
		return
	}
	writeJSON(w, r, dto.NewSearchResponse(rs, time.Since(start).String()))
}
