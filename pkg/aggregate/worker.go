package aggregate

import (
	"fmt"
	"io/fs"
	"runtime"
	"strings"
	"sync"
)

// readResult holds the outcome of reading one file.
type readResult struct {
	content string
	err     error
}

// readFiles reads files with a bounded worker pool. results[i] always
// corresponds to files[i], whatever order the workers finish in.
func (e *Engine) readFiles(files []string, maxWorkers, maxFileSizeKB int) []readResult {
	results := make([]readResult, len(files))
	if len(files) == 0 {
		return results
	}

	if maxWorkers <= 0 {
		maxWorkers = runtime.NumCPU()
	}
	maxWorkers = min(maxWorkers, len(files))

	jobs := make(chan int, len(files))
	var wg sync.WaitGroup
	for w := 0; w < maxWorkers; w++ {
		wg.Add(1)
		go e.worker(jobs, files, results, maxFileSizeKB, &wg)
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}

// worker drains jobs; each index is written by exactly one worker.
func (e *Engine) worker(jobs <-chan int, files []string, results []readResult, maxFileSizeKB int, wg *sync.WaitGroup) {
	defer wg.Done()
	for i := range jobs {
		content, err := e.readFile(files[i], maxFileSizeKB)
		results[i] = readResult{content: content, err: err}
	}
}

// readFile loads a single matched file as text.
func (e *Engine) readFile(rel string, maxFileSizeKB int) (string, error) {
	if hasBinaryExtension(rel) {
		return "", fmt.Errorf("%w: binary file extension", ErrNotText)
	}

	if maxFileSizeKB > 0 {
		info, err := fs.Stat(e.fsys, rel)
		if err != nil {
			return "", err
		}
		if info.Size() > int64(maxFileSizeKB)*1024 {
			return "", fmt.Errorf("%w: %d bytes, limit is %d KB", ErrTooLarge, info.Size(), maxFileSizeKB)
		}
	}

	data, err := fs.ReadFile(e.fsys, rel)
	if err != nil {
		return "", err
	}
	if isBinaryContent(data) {
		return "", fmt.Errorf("%w: binary or non UTF-8 content", ErrNotText)
	}

	return strings.TrimPrefix(string(data), "\uFEFF"), nil
}
