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

package api

import (
	"log/slog"
	"net/http"

	"github.com/zintix-labs/rnglab"
	v1 "github.com/zintix-labs/rnglab/server/api/v1"
	"github.com/zintix-labs/rnglab/server/netsvr"
	"github.com/zintix-labs/rnglab/server/netsvr/middleware"
	"github.com/zintix-labs/rnglab/server/svrcfg"
)

// RegisterRoutes 註冊 middleware、主頁與 v1 api，回傳 v1 使用的 runtime 供關閉時 Close。
func RegisterRoutes(svr netsvr.NetSvr, sCfg *svrcfg.SvrCfg) (*rnglab.SearchRuntime, error) {
	h, err := v1.New(sCfg)
	if err != nil {
		return nil, err
	}
	registerMiddleware(svr, sCfg.Log)
	svr.Get("/", index)
	svr.Group("/v1", func(r netsvr.NetRouter) {
		r.Get("/scenarios", h.Scenarios)
		r.Get("/runtime", h.Metrics)
		r.Get("/advance", h.Advance)
		r.Get("/cycles", h.Cycles)
		r.Post("/generate", h.Generate)
		r.Get("/search", h.Search)
		r.Post("/search", h.Search)
		r.Get("/search/target", h.SearchTarget)
		r.Post("/search/target", h.SearchTarget)
	})
	return h.Runtime(), nil
}

func registerMiddleware(svr netsvr.NetSvr, log *slog.Logger) {
	svr.Use(middleware.RequestID)
	svr.Use(middleware.AccessLog(log))
	svr.Use(middleware.Recover(log))
	svr.Use(middleware.Compression)
}

const indexPage = `rnglab v1

GET  /v1/scenarios?target=
GET  /v1/runtime
GET  /v1/advance?seed=&n=
GET  /v1/cycles?dividend=&divisor=&signed=
POST /v1/generate          {"seed","state_b64u","advance","setting"}
GET  /v1/search?scenario=|target=&start=&max_advances=
POST /v1/search            {"scenario"|"target","objective","start","max_advances","chunk_size"}
POST /v1/search/target     {"target","objective",...}
`

func index(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(indexPage))
}
