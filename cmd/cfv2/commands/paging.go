package commands

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/cfv2-client/internal/constants"
	"github.com/fivetwenty-io/cfv2-client/pkg/cfapi"
	"github.com/fivetwenty-io/cfv2-client/pkg/cfv2"
	"github.com/spf13/cobra"
)

// pageOptions holds the paging flags shared by the list commands.
type pageOptions struct {
	all     bool
	page    int
	perPage int
	order   string
}

func (o *pageOptions) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&o.all, "all", false, "fetch all pages")
	cmd.Flags().IntVar(&o.page, "page", 1, "page to fetch")
	cmd.Flags().IntVar(&o.perPage, "per-page", constants.DefaultPageSize, "results per page")
	cmd.Flags().StringVar(&o.order, "order", "", "order direction (asc or desc)")
}

func (o *pageOptions) request() cfv2.PaginatedRequest {
	request := cfv2.PaginatedRequest{
		OrderDirection: cfv2.OrderDirection(o.order),
		ResultsPerPage: cfv2.IntPtr(o.perPage),
	}

	if o.page > 1 {
		request.Page = cfv2.IntPtr(o.page)
	}

	return request
}

// listPage fetches the selected page, or every page when --all is set.
func listPage[R any](ctx context.Context, opts *pageOptions, fetch func(context.Context, cfv2.PaginatedRequest) *cfapi.Future[cfv2.PaginatedResponse[R]]) (*cfv2.PaginatedResponse[R], error) {
	base := opts.request()

	if !opts.all {
		return fetch(ctx, base).Await(ctx)
	}

	return cfv2.RequestResources(ctx, func(ctx context.Context, page int) *cfapi.Future[cfv2.PaginatedResponse[R]] {
		return fetch(ctx, base.WithPage(page))
	}).Await(ctx)
}

func printPageHint[R any](cmd *cobra.Command, opts *pageOptions, response *cfv2.PaginatedResponse[R]) {
	if opts.all || response.TotalPages <= 1 || !isTableOutput() {
		return
	}

	page := max(opts.page, 1)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\nShowing page %d of %d. Use --all to fetch all pages.\n", page, response.TotalPages)
}
