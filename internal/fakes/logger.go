package fakes

import (
	"fmt"
	"sync"
)

// Logger запоминает сообщения для проверок в тестах
type Logger struct {
	mu       sync.Mutex
	Messages []string
}

func (l *Logger) Info(format string, v ...interface{})  { l.add("INFO", format, v...) }
func (l *Logger) Warn(format string, v ...interface{})  { l.add("WARN", format, v...) }
func (l *Logger) Error(format string, v ...interface{}) { l.add("ERROR", format, v...) }

func (l *Logger) add(level, format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Messages = append(l.Messages, level+" "+fmt.Sprintf(format, v...))
}
