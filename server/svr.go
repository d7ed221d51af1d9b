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

// Package server 組裝 HTTP 服務：chi 路由、middleware、v1 api 與生命週期管理。
package server

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/zintix-labs/rnglab/errs"
	"github.com/zintix-labs/rnglab/server/api"
	"github.com/zintix-labs/rnglab/server/app"
	"github.com/zintix-labs/rnglab/server/netsvr"
	"github.com/zintix-labs/rnglab/server/svrcfg"
)

// Run 以 sCfg.Addr 建立預設的 chi 服務並阻塞運行。
func Run(sCfg *svrcfg.SvrCfg) error {
	if err := sCfg.Valid(); err != nil {
		// logger 可能不可用
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	to := netsvr.DefaultTimeouts
	to.Write = max(to.Write, sCfg.Timeout+5*time.Second)
	return RunWithSvr(sCfg, netsvr.NewChiServer(sCfg.Addr, to))
}

// RunWithSvr 使用外部建立的 NetSvr。
func RunWithSvr(sCfg *svrcfg.SvrCfg, svr netsvr.NetSvr) error {
	if err := sCfg.Valid(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	if svr == nil {
		return errs.NewFatal("svr is required")
	}
	if s, ok := svr.(*netsvr.ChiAdapter); ok && !s.Ready() {
		return errs.NewFatal("default server is not ready")
	}
	rt, err := api.RegisterRoutes(svr, sCfg)
	if err != nil {
		return err
	}

	// 先停 http 再關 runtime，讓 inflight 請求跑完
	a := app.NewWith(svr, app.OnShutdown(rt.Close)).WithLogger(sCfg.Log)
	sCfg.Log.Info("[rnglab] listening", slog.String("addr", svr.Address()), slog.Int("slots", sCfg.Slots))
	if err := a.Run(); err != nil {
		sCfg.Log.Error("app stopped", slog.Any("err", err))
		return err
	}
	return nil
}
