package common

import (
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// ContextHook adds the calling function, file and line to every entry under "stck"
type ContextHook struct{}

func (hook ContextHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (hook ContextHook) Fire(entry *logrus.Entry) error {
	// Skip if already provided
	if _, ok := entry.Data["stck"]; ok {
		return nil
	}

	pc := make([]uintptr, 3)
	cnt := runtime.Callers(6, pc)

	for i := 0; i < cnt; i++ {
		fu := runtime.FuncForPC(pc[i] - 1)
		if fu == nil {
			continue
		}

		name := fu.Name()
		if !strings.Contains(name, "github.com/sirupsen/logrus") {
			file, line := fu.FileLine(pc[i] - 1)

			entry.Data["stck"] = filepath.Base(name) + ":" + filepath.Base(file) + ":" + strconv.Itoa(line)
			break
		}
	}
	return nil
}

// STDLogProxy routes writes from the standard library logger into logrus
type STDLogProxy struct{}

func (p *STDLogProxy) Write(b []byte) (n int, err error) {
	n = len(b)

	pc := make([]uintptr, 3)
	runtime.Callers(4, pc)

	data := make(logrus.Fields)

	if fu := runtime.FuncForPC(pc[0] - 1); fu != nil {
		file, line := fu.FileLine(pc[0] - 1)
		data["stck"] = filepath.Base(fu.Name()) + ":" + filepath.Base(file) + ":" + strconv.Itoa(line)
	}

	logLine := strings.TrimSuffix(string(b), "\n")
	logrus.WithFields(data).Info(logLine)

	return
}
