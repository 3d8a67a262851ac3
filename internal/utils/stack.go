package utils

import (
	"strconv"
	"strings"
)

// StackFrame is one parsed frame of a goroutine stack trace.
type StackFrame struct {
	File       string `json:"file"`
	MethodName string `json:"methodName"`
	LineNumber int    `json:"lineNumber"`
}

// ParseStack turns the output of debug.Stack into structured frames. The
// format is a header line followed by pairs: a function line, then a
// tab-indented "file:line +0x..." line.
func ParseStack(buf []byte) []StackFrame {
	lines := strings.Split(string(buf), "\n")
	var frames []StackFrame
	for i := 0; i < len(lines)-1; i++ {
		loc := lines[i+1]
		if !strings.HasPrefix(loc, "\t") {
			continue
		}
		frame := StackFrame{MethodName: lines[i]}
		loc = strings.TrimSpace(loc)
		if idx := strings.LastIndex(loc, " +0x"); idx >= 0 {
			loc = loc[:idx]
		}
		if idx := strings.LastIndex(loc, ":"); idx >= 0 {
			frame.File = loc[:idx]
			if n, err := strconv.Atoi(loc[idx+1:]); err == nil {
				frame.LineNumber = n
			}
		} else {
			frame.File = loc
		}
		frames = append(frames, frame)
		i++
	}
	return frames
}
