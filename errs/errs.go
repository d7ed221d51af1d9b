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

// Package errs 定義 rnglab 統一的錯誤型別與分級。
//
// 熱路徑（產生器、除法模型、搜尋迴圈）不回傳錯誤，只使用哨兵值；
// 只有設定解析、組裝與宿主層（CLI / HTTP）會建立 *E。
package errs

import (
	"errors"
	"fmt"
)

// ErrLevel : Error 分級，讓最上層判斷要中止、回報呼叫端，或只記錄。
type ErrLevel uint8

const (
	None  ErrLevel = iota
	Fatal          // 系統或組裝錯誤，需中止
	Warn           // 呼叫端輸入錯誤（設定、請求內容）
	Log            // 僅記錄
)

// String 回傳分級名稱，None 為空字串。
func (l ErrLevel) String() string {
	switch l {
	case Fatal:
		return "fatal"
	case Warn:
		return "warn"
	case Log:
		return "log"
	default:
		return ""
	}
}

// ErrLv 保留舊呼叫方式
func ErrLv(errlv ErrLevel) string {
	return errlv.String()
}

// E 是統一的錯誤型別。
// Message 為主訊息；Extra 為額外上下文（例如欄位名稱、情境 id）；
// Cause 串接下層錯誤；ErrLv 為嚴重度。
type E struct {
	Message string
	Extra   string
	Cause   error
	ErrLv   ErrLevel
}

// Error 實作 error 介面。
func (e *E) Error() string {
	base := fmt.Sprintf("errlv=%s %s", e.ErrLv, e.Message)
	if e.Extra != "" {
		base += " | extra: " + e.Extra
	}
	if e.Cause != nil {
		base += fmt.Sprintf(" (cause: %v)", e.Cause)
	}
	return base
}

// Unwrap 讓 errors.Is / errors.As 能夠向下展開。
func (e *E) Unwrap() error { return e.Cause }

func New(errLv ErrLevel, msg string) *E {
	return &E{Message: msg, ErrLv: errLv}
}

func NewFatal(msg string) *E { return New(Fatal, msg) }

func NewWarn(msg string) *E { return New(Warn, msg) }

func NewLog(msg string) *E { return New(Log, msg) }

func Fatalf(format string, a ...any) *E {
	return NewFatal(fmt.Sprintf(format, a...))
}

func Warnf(format string, a ...any) *E {
	return NewWarn(fmt.Sprintf(format, a...))
}

func Logf(format string, a ...any) *E {
	return NewLog(fmt.Sprintf(format, a...))
}

// NewWithExtra 與 New 相同，但附加上下文字串（不影響主訊息）。
func NewWithExtra(errLv ErrLevel, msg string, extra string) *E {
	e := New(errLv, msg)
	e.Extra = extra
	return e
}

// Wrap 包裝底層錯誤。
//
// 分級規則：cause 鏈上若已有 *E 則沿用其 ErrLv，否則（標準庫或三方錯誤）一律視為 Fatal。
// 已知是呼叫端輸入問題時，請直接用 NewWarn / Warnf，不要 Wrap。
func Wrap(cause error, msg string) *E {
	return WrapWithExtra(cause, msg, "")
}

// WrapWithExtra 同 Wrap，並附加上下文。
func WrapWithExtra(cause error, msg string, extra string) *E {
	r := NewWithExtra(Level(cause), msg, extra)
	if r.ErrLv == None {
		r.ErrLv = Fatal
	}
	r.Cause = cause
	return r
}

// WrapWarn 包裝錯誤並強制標記為 Warn，用於解碼呼叫端提供的內容（YAML/JSON）。
func WrapWarn(cause error, msg string) *E {
	r := NewWarn(msg)
	r.Cause = cause
	return r
}

// Level 回傳錯誤鏈上第一個 *E 的分級；沒有 *E 時回傳 None。
func Level(err error) ErrLevel {
	if e, ok := AsErr(err); ok {
		return e.ErrLv
	}
	return None
}

func AsErr(err error) (*E, bool) {
	var e *E
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
