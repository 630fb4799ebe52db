// Package parallel 提供并发上限可控的泛型并行映射，
// 供目录扫描组件按文件并行加载。
package parallel

import (
	"context"
	"sync"
)

// Map 以最多 workers 个并发对 items 逐项执行 fn，结果按原顺序返回。
//
// 任一 fn 返回错误即取消其余执行并返回首个错误；
// workers 小于等于 1 时退化为顺序执行。
func Map[T, R any](ctx context.Context, items []T, workers int, fn func(context.Context, T) (R, error)) ([]R, error) {
	results := make([]R, len(items))

	if workers <= 1 {
		for i, item := range items {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			r, err := fn(ctx, item)
			if err != nil {
				return nil, err
			}
			results[i] = r
		}
		return results, nil
	}

	parent := ctx
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)

	sem := make(chan struct{}, workers)
	for i := range items {
		select {
		case <-ctx.Done():
		case sem <- struct{}{}:
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				defer func() { <-sem }()

				r, err := fn(ctx, items[i])
				if err != nil {
					errOnce.Do(func() {
						firstErr = err
						cancel()
					})
					return
				}
				results[i] = r
			}(i)
		}
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := parent.Err(); err != nil {
		return nil, err
	}

	return results, nil
}
