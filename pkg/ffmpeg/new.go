package ffmpeg

import (
	"os/exec"

	"github.com/nguyentantai21042004/recap-flow/pkg/executor"
)

type implRuntime struct {
	binary   string
	tempRoot string
	executor executor.Executor
	lookPath func(file string) (string, error)

	path   string
	dir    string
	loaded bool
}

// New creates a Runtime backed by the ffmpeg binary.
// The scratch filesystem is created under tempRoot on Load.
func New(binary, tempRoot string, exec executor.Executor) Runtime {
	return &implRuntime{
		binary:   binary,
		tempRoot: tempRoot,
		executor: exec,
		lookPath: lookPath,
	}
}

func lookPath(file string) (string, error) {
	return exec.LookPath(file)
}
