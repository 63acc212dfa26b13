package domain_util

import "fmt"

// FormatFuzzyDate 将外部源的结构化日期格式化为 YYYY-MM-DD（零填充）。
// 年份缺失返回空串，调用方据此跳过覆盖；月、日缺失按1补
func FormatFuzzyDate(year, month, day *int) string {
	if year == nil {
		return ""
	}
	m, d := 1, 1
	if month != nil {
		m = *month
	}
	if day != nil {
		d = *day
	}
	return fmt.Sprintf("%04d-%02d-%02d", *year, m, d)
}
