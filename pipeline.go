package gimtool

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// FileError records the failure to convert a single file.
type FileError struct {
	File string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.File, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

func (c *Converter) queueFiles(ctx context.Context, files []string) <-chan string {
	out := make(chan string)
	go func() {
		defer close(out)
		for _, file := range files {
			select {
			case out <- file:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// conversionWorker converts each file it receives. A failure is sent on the
// returned channel and the worker carries on with the next file.
func (c *Converter) conversionWorker(in <-chan string) <-chan error {
	errc := make(chan error)
	go func() {
		defer close(errc)
		for file := range in {
			if _, err := c.ConvertFile(file); err != nil {
				errc <- &FileError{File: file, Err: err}
			}
		}
	}()
	return errc
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Convert converts each file in turn, or concurrently if more than one
// worker is configured. A file that fails to convert is reported and does
// not stop the remaining files; the returned error only summarises how many
// failed.
func (c *Converter) Convert(files []string) error {
	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	in := c.queueFiles(ctx, files)

	var errcList []<-chan error
	for i := 0; i < c.opts.Workers; i++ {
		errcList = append(errcList, c.conversionWorker(in))
	}

	var failed int
	for err := range mergeErrors(errcList...) {
		failed++
		var fe *FileError
		if errors.As(err, &fe) {
			c.report.Printf("Error processing file %s: %v\n", fe.File, fe.Err)
			continue
		}
		c.report.Println(err)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed to convert", failed, len(files))
	}

	return nil
}
