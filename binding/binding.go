// Package binding fills ${...} placeholders in output name templates.
package binding

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var exprPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Interpolate 将文本中的 ${key}、${a.b}、${a[0]} 替换为 data 中的值。
// 路径不存在时保留原占位符。
func Interpolate(text string, data map[string]any) string {
	if len(data) == 0 {
		return text
	}
	return exprPattern.ReplaceAllStringFunc(text, func(match string) string {
		path := strings.TrimSpace(match[2 : len(match)-1])
		if path == "" {
			return match
		}
		if val, ok := resolvePath(data, path); ok {
			return fmt.Sprint(val)
		}
		return match
	})
}

func resolvePath(data map[string]any, path string) (any, bool) {
	var current any = data
	for _, segment := range strings.Split(path, ".") {
		name, indexes := parseSegment(segment)
		if name != "" {
			m, ok := current.(map[string]any)
			if !ok {
				return nil, false
			}
			if current, ok = m[name]; !ok {
				return nil, false
			}
		}
		for _, idxStr := range indexes {
			idx, err := strconv.Atoi(idxStr)
			if err != nil {
				return nil, false
			}
			arr, ok := current.([]any)
			if !ok || idx < 0 || idx >= len(arr) {
				return nil, false
			}
			current = arr[idx]
		}
	}
	return current, true
}

func parseSegment(segment string) (string, []string) {
	i := strings.IndexByte(segment, '[')
	if i == -1 {
		return segment, nil
	}
	name, rest := segment[:i], segment[i:]
	var indexes []string
	for len(rest) > 0 && rest[0] == '[' {
		end := strings.IndexByte(rest, ']')
		if end == -1 {
			break
		}
		indexes = append(indexes, rest[1:end])
		rest = rest[end+1:]
	}
	return name, indexes
}

// DefaultName is used when a filename sanitizes to nothing.
const DefaultName = "zine"

var invalidFilenameChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1F\x7F]`)

// SanitizeName 返回去掉扩展名、可安全用于 Content-Disposition 的文件名主干。
func SanitizeName(filename string) string {
	name := norm.NFKC.String(filename)
	// 浏览器可能上传带目录的路径，两种分隔符都只取最后一段
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	name = strings.TrimSuffix(name, filepath.Ext(name))
	name = invalidFilenameChars.ReplaceAllString(strings.TrimSpace(name), "_")
	name = strings.Trim(name, ". ")
	if name == "" {
		return DefaultName
	}
	return name
}
