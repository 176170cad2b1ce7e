// Package period 处理上传周期键的解析与展示
//
// 周期键在核心逻辑里只是不透明的分区键，所有格式相关的处理集中在这里：
// 常规/高潜批次使用 YYYY-MM 或 YYYY-MM-DD / YYYYMMDD（周维度），
// 飙升批次使用 RK-YYYYMM。无法识别的键原样展示，绝不报错。
package period

import (
	"fmt"
	"strings"
	"time"
)

// Key 上传周期键
type Key string

// Label 返回面向用户的展示标签
//
// 支持的格式：
//   - YYYYMMDD / YYYY-MM-DD → "Week starting January 2, 2006"
//   - YYYY-MM               → "January 2006"
//   - RK-YYYYMM             → "Rising January 2006"
//   - 其他                   → 原样返回
func (k Key) Label() string {
	raw := string(k)

	if rest, ok := strings.CutPrefix(raw, "RK-"); ok {
		if t, err := time.Parse("200601", rest); err == nil {
			return "Rising " + t.Format("January 2006")
		}
		return raw
	}

	if t, err := time.Parse("20060102", raw); err == nil {
		return fmt.Sprintf("Week starting %s", t.Format("January 2, 2006"))
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return fmt.Sprintf("Week starting %s", t.Format("January 2, 2006"))
	}
	if t, err := time.Parse("2006-01", raw); err == nil {
		return t.Format("January 2006")
	}

	return raw
}

// Window 返回周期对应的观察窗口，解析失败时两端均为 nil
func (k Key) Window() (*time.Time, *time.Time) {
	raw := string(k)

	if rest, ok := strings.CutPrefix(raw, "RK-"); ok {
		raw = rest
		if t, err := time.Parse("200601", raw); err == nil {
			return monthWindow(t)
		}
		return nil, nil
	}

	if t, err := time.Parse("20060102", raw); err == nil {
		return weekWindow(t)
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return weekWindow(t)
	}
	if t, err := time.Parse("2006-01", raw); err == nil {
		return monthWindow(t)
	}
	return nil, nil
}

func weekWindow(start time.Time) (*time.Time, *time.Time) {
	end := start.AddDate(0, 0, 6)
	return &start, &end
}

func monthWindow(start time.Time) (*time.Time, *time.Time) {
	end := start.AddDate(0, 1, -1)
	return &start, &end
}
