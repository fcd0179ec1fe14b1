package convert

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

type job struct {
	src, dst string
	o        Options
}

func isImage(file string) bool {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".png", ".gif", ".jpg", ".jpeg":
		return true
	}
	return false
}

// Texture path alongside the image
func textureName(file string) string {
	return strings.TrimSuffix(file, filepath.Ext(file)) + ".txi"
}

func (c *Converter) findImages(ctx context.Context, base string, o Options) (<-chan job, <-chan error, error) {
	out := make(chan job)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories, otherwise we end up fighting with things like Spotlight, etc.
			if info.Name()[0] == '.' && file != base {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			// Ignore anything that isn't a normal image file
			if !info.Mode().IsRegular() || !isImage(file) {
				return nil
			}

			select {
			case out <- job{src: file, dst: textureName(file), o: o}:
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}

			return nil
		})
	}()
	return out, errc, nil
}

func (c *Converter) listJobs(ctx context.Context, jobs []job) (<-chan job, <-chan error, error) {
	out := make(chan job)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		for _, j := range jobs {
			select {
			case out <- j:
			case <-ctx.Done():
				errc <- errors.New("manifest cancelled")
				return
			}
		}
	}()
	return out, errc, nil
}

func (c *Converter) imageWorker(ctx context.Context, in <-chan job) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for j := range in {
			if err := c.File(j.src, j.dst, j.o); err != nil {
				errc <- err
				return
			}
		}
	}()
	return errc, nil
}

// Returns the first error reported by any stage. Each stage sends at most
// one error so the buffer lets the rest finish after an early return.
func firstError(stages ...<-chan error) error {
	merged := make(chan error, len(stages))

	var wg sync.WaitGroup
	for _, stage := range stages {
		wg.Add(1)
		go func(stage <-chan error) {
			defer wg.Done()
			for err := range stage {
				merged <- err
			}
		}(stage)
	}

	go func() {
		wg.Wait()
		close(merged)
	}()

	for err := range merged {
		if err != nil {
			return err
		}
	}
	return nil
}

type source func(context.Context) (<-chan job, <-chan error, error)

func (c *Converter) run(src source) error {
	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	jobs, errc, err := src(ctx)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	for i := 0; i < c.workers; i++ {
		errc, err := c.imageWorker(ctx, jobs)
		if err != nil {
			return err
		}
		errcList = append(errcList, errc)
	}

	return firstError(errcList...)
}

// Dir converts every image under path, writing each texture next to its
// image with a .txi extension. Hidden files and directories are skipped.
func (c *Converter) Dir(path string, o Options) error {
	dir, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	return c.run(func(ctx context.Context) (<-chan job, <-chan error, error) {
		return c.findImages(ctx, dir, o)
	})
}
