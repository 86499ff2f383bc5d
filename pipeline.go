package enigmatrix

import (
	"fmt"
	"runtime"
	"sync"
)

// PipelineConfig controls the bounded-parallel block pipeline.
type PipelineConfig struct {
	// Cores is the number of blocks processed concurrently. 0 means
	// runtime.NumCPU(), mirroring the teacher's ParallelConfig convention.
	Cores int
}

// DefaultPipelineConfig returns a configuration that uses all available
// CPUs.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{Cores: runtime.NumCPU()}
}

// Validate checks the configuration.
func (c PipelineConfig) Validate() error {
	if c.Cores < 0 {
		return NewInvalidKeyError("cores", c.Cores, "cores cannot be negative")
	}
	return nil
}

func (c PipelineConfig) resolvedCores(numBlocks int64) int {
	cores := c.Cores
	if cores <= 0 {
		cores = runtime.NumCPU()
	}
	if int64(cores) > numBlocks {
		cores = int(numBlocks)
	}
	if cores < 1 {
		cores = 1
	}
	return cores
}

type blockResult struct {
	index int64
	data  []byte
	err   error
}

// RunPipeline processes blocks [0, numBlocks) with at most cfg.Cores
// blocks ever in flight, and writes each one through write in strict
// index order — matching the reference implementation's
// preload-cores/wait-for-one/submit-replacement loop (encryptor.py
// encrypt_file/decrypt_file), reimplemented as a fixed worker pool
// draining a job channel (parallel.go's idiom) instead of a
// ThreadPoolExecutor + futures dict. process is expected to do its own
// block I/O, so no more than cfg.Cores blocks are ever resident in
// memory at once.
func RunPipeline(numBlocks int64, cfg PipelineConfig, process func(index int64) ([]byte, error), write func(index int64, data []byte) error) error {
	if numBlocks <= 0 {
		return nil
	}

	cores := cfg.resolvedCores(numBlocks)
	jobs := make(chan int64)
	results := make(chan blockResult, cores)
	cancel := make(chan struct{})
	// slots holds one token per block submitted but not yet written, so at
	// most cores blocks are outstanding at any time.
	slots := make(chan struct{}, cores)

	var wg sync.WaitGroup
	for w := 0; w < cores; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				data, err := safeProcessBlock(process, idx)
				select {
				case results <- blockResult{index: idx, data: data, err: err}:
				case <-cancel:
					return
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i := int64(0); i < numBlocks; i++ {
			select {
			case slots <- struct{}{}:
			case <-cancel:
				return
			}
			select {
			case jobs <- i:
			case <-cancel:
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	pending := make(map[int64][]byte)
	var next int64
	var firstErr error
	cancelled := false

	for res := range results {
		if res.err != nil {
			if firstErr == nil {
				firstErr = res.err
			}
			if !cancelled {
				close(cancel)
				cancelled = true
			}
			continue
		}
		pending[res.index] = res.data
		for {
			data, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			next++
			<-slots
			if firstErr == nil {
				if err := write(next-1, data); err != nil {
					firstErr = err
					if !cancelled {
						close(cancel)
						cancelled = true
					}
				}
			}
		}
	}

	return firstErr
}

func safeProcessBlock(process func(int64) ([]byte, error), idx int64) (data []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic processing block %d: %v", idx, r)
		}
	}()
	return process(idx)
}
