package domain_util

import (
	"strings"
	"unicode"

	"github.com/mozillazg/go-pinyin"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var pinyinArgs = pinyin.NewArgs()

// 去掉变音符号：NFD分解后删除组合标记再合回
var foldTransformer = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// Slugify 由标题确定性地派生文档ID。
// 同一标题任何时候都得到同一slug，建档后不再变化。
// 中文标题先转拼音，带变音符的拉丁字母折叠为基字母
func Slugify(title string) string {
	var sb strings.Builder
	for _, r := range title {
		if unicode.Is(unicode.Han, r) {
			// 每个汉字展开为拼音音节，音节间留分隔
			syllables := pinyin.LazyConvert(string(r), &pinyinArgs)
			for _, s := range syllables {
				sb.WriteString(s)
				sb.WriteByte(' ')
			}
			continue
		}
		sb.WriteRune(r)
	}

	folded, _, err := transform.String(foldTransformer, sb.String())
	if err != nil {
		folded = sb.String()
	}

	var out strings.Builder
	lastDash := true // 抑制前导'-'
	for _, r := range strings.ToLower(folded) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			out.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				out.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(out.String(), "-")
}

// CapitalizeFirst 检索词归一：首字母大写，其余保持原样。
// 库内标题以大写开头存储，前缀范围查询依赖这一约定
func CapitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
