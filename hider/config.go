/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package hider

import (
	"bytes"
	"strings"
)

// StripComments scans content line by line and returns the segments
// covering every line that does not begin with '#' (leading whitespace
// ignored), each segment including its trailing newline. Concatenating
// the segments reproduces content with comment lines removed.
func StripComments(content []byte) []Segment {
	var segs []Segment
	start := 0
	for start <= len(content) {
		nl := bytes.IndexByte(content[start:], '\n')
		var lineEnd, next int
		if nl < 0 {
			lineEnd, next = len(content), len(content)+1
		} else {
			lineEnd, next = start+nl+1, start+nl+1
		}
		if lineEnd > len(content) {
			lineEnd = len(content)
		}
		line := content[start:lineEnd]
		if !isCommentLine(line) && len(line) > 0 {
			seg := Segment{Start: int64(start), Length: int64(lineEnd - start)}
			if n := len(segs); n > 0 && segs[n-1].Start+segs[n-1].Length == seg.Start {
				segs[n-1].Length += seg.Length
			} else {
				segs = append(segs, seg)
			}
		}
		start = next
	}
	return segs
}

func isCommentLine(line []byte) bool {
	trimmed := strings.TrimLeft(string(line), " \t")
	return strings.HasPrefix(trimmed, "#")
}

// SelectSection returns the segment spanning a named "[section]" header
// and every line up to (not including) the next section header or EOF.
// It returns nil if the section is not present.
func SelectSection(content []byte, name string) []Segment {
	header := "[" + name + "]"
	lines := splitLinesKeepEnds(content)

	start := -1
	startOff := int64(0)
	var off int64
	for i, line := range lines {
		trimmed := strings.TrimSpace(string(line))
		if start == -1 && trimmed == header {
			start = i
			startOff = off
		} else if start != -1 && strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			return []Segment{{Start: startOff, Length: off - startOff}}
		}
		off += int64(len(line))
	}
	if start == -1 {
		return nil
	}
	return []Segment{{Start: startOff, Length: off - startOff}}
}

func splitLinesKeepEnds(content []byte) [][]byte {
	var lines [][]byte
	start := 0
	for start < len(content) {
		nl := bytes.IndexByte(content[start:], '\n')
		if nl < 0 {
			lines = append(lines, content[start:])
			break
		}
		lines = append(lines, content[start:start+nl+1])
		start += nl + 1
	}
	return lines
}
