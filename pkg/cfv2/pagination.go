package cfv2

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/cfv2-client/internal/constants"
	"github.com/fivetwenty-io/cfv2-client/pkg/cfapi"
	"golang.org/x/sync/errgroup"
)

// PageFetcher requests one page of a list, starting at 1.
type PageFetcher[R any] func(ctx context.Context, page int) *cfapi.Future[PaginatedResponse[R]]

// RequestResources fetches every page of a list. The first page is fetched
// alone; the remaining pages are fetched concurrently. The result holds all
// resources in page order and the totals reported by the first page. A list
// of more than constants.MaxPages pages fails with cfapi.ErrPageLimitExceeded.
func RequestResources[R any](ctx context.Context, fetch PageFetcher[R]) *cfapi.Future[PaginatedResponse[R]] {
	return cfapi.NewFuture(ctx, nil, func(ctx context.Context) (*PaginatedResponse[R], error) {
		first, err := fetch(ctx, 1).Await(ctx)
		if err != nil {
			return nil, fmt.Errorf("fetching page 1: %w", err)
		}

		if first == nil {
			return &PaginatedResponse[R]{}, nil
		}

		if first.TotalPages > constants.MaxPages {
			return nil, fmt.Errorf("%w: %d pages reported, limit is %d", cfapi.ErrPageLimitExceeded, first.TotalPages, constants.MaxPages)
		}

		totalPages := max(first.TotalPages, 1)
		pages := make([][]R, totalPages)
		pages[0] = first.Resources

		group, groupCtx := errgroup.WithContext(ctx)
		group.SetLimit(constants.DefaultConcurrencyLimit)

		for page := 2; page <= totalPages; page++ {
			page := page
			group.Go(func() error {
				response, err := fetch(groupCtx, page).Await(groupCtx)
				if err != nil {
					return fmt.Errorf("fetching page %d: %w", page, err)
				}

				if response != nil {
					pages[page-1] = response.Resources
				}

				return nil
			})
		}

		err = group.Wait()
		if err != nil {
			return nil, err
		}

		resources := make([]R, 0, first.TotalResults)
		for _, page := range pages {
			resources = append(resources, page...)
		}

		return &PaginatedResponse[R]{
			TotalResults: first.TotalResults,
			TotalPages:   first.TotalPages,
			Resources:    resources,
		}, nil
	})
}

// PageIterator walks the resources of a list one at a time, fetching pages
// as they are needed. It follows next_url until a page has none. Needing a
// page past constants.MaxPages yields cfapi.ErrPageLimitExceeded.
type PageIterator[R any] struct {
	ctx   context.Context
	fetch PageFetcher[R]

	page         int
	current      []R
	index        int
	hasMore      bool
	started      bool
	err          error
	totalPages   int
	totalResults int
}

// NewPageIterator creates an iterator. No request is made until HasNext or
// Next is called.
func NewPageIterator[R any](ctx context.Context, fetch PageFetcher[R]) *PageIterator[R] {
	return &PageIterator[R]{
		ctx:   ctx,
		fetch: fetch,
	}
}

// HasNext reports whether Next will return a resource or an error.
func (it *PageIterator[R]) HasNext() bool {
	for it.index >= len(it.current) {
		if it.err != nil {
			return true
		}

		if it.started && !it.hasMore {
			return false
		}

		it.loadNextPage()
	}

	return true
}

// Next returns the next resource. ErrNoMoreItems is returned after the last
// one.
func (it *PageIterator[R]) Next() (*R, error) {
	if !it.HasNext() {
		return nil, cfapi.ErrNoMoreItems
	}

	if it.err != nil {
		return nil, it.err
	}

	item := &it.current[it.index]
	it.index++

	return item, nil
}

// All drains the iterator.
func (it *PageIterator[R]) All() ([]R, error) {
	var all []R

	for it.HasNext() {
		item, err := it.Next()
		if err != nil {
			return all, err
		}

		all = append(all, *item)
	}

	return all, nil
}

// ForEach calls fn for every remaining resource, stopping at the first error.
func (it *PageIterator[R]) ForEach(fn func(R) error) error {
	for it.HasNext() {
		item, err := it.Next()
		if err != nil {
			return err
		}

		err = fn(*item)
		if err != nil {
			return err
		}
	}

	return nil
}

// TotalPages is the page count reported by the first page.
func (it *PageIterator[R]) TotalPages() int {
	return it.totalPages
}

// TotalResults is the resource count reported by the first page.
func (it *PageIterator[R]) TotalResults() int {
	return it.totalResults
}

func (it *PageIterator[R]) loadNextPage() {
	if it.page >= constants.MaxPages {
		it.err = fmt.Errorf("%w: stopped after %d pages", cfapi.ErrPageLimitExceeded, constants.MaxPages)

		return
	}

	it.page++

	response, err := it.fetch(it.ctx, it.page).Await(it.ctx)
	if err != nil {
		it.err = fmt.Errorf("fetching page %d: %w", it.page, err)

		return
	}

	it.current = nil
	it.index = 0
	it.hasMore = false

	if response != nil {
		it.current = response.Resources
		it.hasMore = response.NextURL != nil

		if !it.started {
			it.totalPages = response.TotalPages
			it.totalResults = response.TotalResults
		}
	}

	it.started = true
}
